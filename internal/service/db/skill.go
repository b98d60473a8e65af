package db

import (
	"github.com/qiniu/x/xlog"
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/solutions/hire-cube/internal/common/utils"
	errors2 "github.com/solutions/hire-cube/internal/protodef/errors"
	"github.com/solutions/hire-cube/internal/protodef/model"
	"github.com/solutions/hire-cube/internal/service/db/dao"
)

// SkillService 技能词表维护。岗位要求与面试官特长都引用这里的技能ID。
type SkillService struct {
	mongoClient *mgo.Session
	skillColl   *mgo.Collection
	xl          *xlog.Logger
}

func NewSkillService(conf utils.MongoConfig, xl *xlog.Logger) (*SkillService, error) {
	if xl == nil {
		xl = xlog.New("hire-cube-skill-db")
	}
	mongoClient, err := mgo.Dial(conf.URI + "/" + conf.Database)
	if err != nil {
		xl.Errorf("failed to create mongo client, error %v", err)
		return nil, err
	}
	skillColl := mongoClient.DB(conf.Database).C(dao.CollectionSkill)
	return &SkillService{
		mongoClient: mongoClient,
		skillColl:   skillColl,
		xl:          xl,
	}, nil
}

// CreateSkill 新增技能词条。
func (c *SkillService) CreateSkill(xl *xlog.Logger, skill *model.SkillDo) error {
	if xl == nil {
		xl = c.xl
	}
	if skill.ID == "" {
		skill.ID = utils.NewID()
	}
	err := c.skillColl.Insert(skill)
	if err != nil {
		if mgo.IsDup(err) {
			return &errors2.ServerError{Code: errors2.ServerErrorDuplicateKey, Summary: "skill already exists"}
		}
		xl.Errorf("failed to insert skill, error %v", err)
		return err
	}
	return nil
}

// GetSkillByID 使用ID查找技能。
func (c *SkillService) GetSkillByID(xl *xlog.Logger, id string) (*model.SkillDo, error) {
	if xl == nil {
		xl = c.xl
	}
	skill := model.SkillDo{}
	err := c.skillColl.Find(bson.M{"_id": id}).One(&skill)
	if err != nil {
		if err == mgo.ErrNotFound {
			xl.Infof("no such skill %s", id)
			return nil, &errors2.ServerError{Code: errors2.ServerErrorSkillNotFound}
		}
		xl.Errorf("failed to get skill %s, error %v", id, err)
		return nil, err
	}
	return &skill, nil
}

// ListSkills 列出全部技能词条。
func (c *SkillService) ListSkills(xl *xlog.Logger) ([]model.SkillDo, error) {
	if xl == nil {
		xl = c.xl
	}
	skills := []model.SkillDo{}
	err := c.skillColl.Find(nil).Sort("name").All(&skills)
	if err != nil {
		xl.Errorf("failed to list skills, error %v", err)
		return nil, err
	}
	return skills, nil
}
