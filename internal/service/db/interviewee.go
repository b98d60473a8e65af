package db

import (
	"time"

	"github.com/qiniu/x/xlog"
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/solutions/hire-cube/internal/common/utils"
	errors2 "github.com/solutions/hire-cube/internal/protodef/errors"
	"github.com/solutions/hire-cube/internal/protodef/model"
	"github.com/solutions/hire-cube/internal/service/db/dao"
)

// IntervieweeService 候选人建档与去重。身份键为(organizationId, lowerEmail)，
// 同名不同邮箱永远不合并。
type IntervieweeService struct {
	mongoClient     *mgo.Session
	intervieweeColl *mgo.Collection
	xl              *xlog.Logger
}

func NewIntervieweeService(conf utils.MongoConfig, xl *xlog.Logger) (*IntervieweeService, error) {
	if xl == nil {
		xl = xlog.New("hire-cube-interviewee-db")
	}
	mongoClient, err := mgo.Dial(conf.URI + "/" + conf.Database)
	if err != nil {
		xl.Errorf("failed to create mongo client, error %v", err)
		return nil, err
	}
	intervieweeColl := mongoClient.DB(conf.Database).C(dao.CollectionInterviewee)
	err = intervieweeColl.EnsureIndex(mgo.Index{
		Key:    []string{"organizationId", "lowerEmail"},
		Unique: true,
	})
	if err != nil {
		xl.Errorf("failed to ensure interviewee index, error %v", err)
		return nil, err
	}
	return &IntervieweeService{
		mongoClient:     mongoClient,
		intervieweeColl: intervieweeColl,
		xl:              xl,
	}, nil
}

// intervieweeStore 候选人身份解析用到的最小存储操作。查无记录时
// FindByIdentity返回mgo.ErrNotFound，撞唯一索引的Insert错误满足mgo.IsDup。
type intervieweeStore interface {
	FindByIdentity(organizationID, lowerEmail string) (*model.IntervieweeDo, error)
	CountNameCollisions(organizationID, name, lowerEmail string) (int, error)
	Insert(interviewee *model.IntervieweeDo) error
}

// FindByIdentity 按(组织, 归一化邮箱)查找候选人。
func (c *IntervieweeService) FindByIdentity(organizationID, lowerEmail string) (*model.IntervieweeDo, error) {
	existing := model.IntervieweeDo{}
	err := c.intervieweeColl.Find(bson.M{"organizationId": organizationID, "lowerEmail": lowerEmail}).One(&existing)
	if err != nil {
		return nil, err
	}
	return &existing, nil
}

// CountNameCollisions 统计组织内同名但不同邮箱的候选人数。
func (c *IntervieweeService) CountNameCollisions(organizationID, name, lowerEmail string) (int, error) {
	return c.intervieweeColl.Find(bson.M{
		"organizationId": organizationID,
		"name":           name,
		"lowerEmail":     bson.M{"$ne": lowerEmail},
	}).Count()
}

// Insert 落库一条候选人记录。
func (c *IntervieweeService) Insert(interviewee *model.IntervieweeDo) error {
	return c.intervieweeColl.Insert(interviewee)
}

// ResolveInterviewee 按(组织, 邮箱)查找候选人，没有则建档。
// 已有记录的name/roleApplied不做覆盖。并发建档撞唯一索引时重查一次，
// 当作别人刚建好处理。nameCollision表示组织内存在同名但不同邮箱的候选人，
// 仅作提示，不阻断流程。
func (c *IntervieweeService) ResolveInterviewee(xl *xlog.Logger, organizationID, name, email, roleApplied string) (interviewee *model.IntervieweeDo, created bool, nameCollision bool, err error) {
	if xl == nil {
		xl = c.xl
	}
	return resolveInterviewee(xl, c, organizationID, name, email, roleApplied)
}

func resolveInterviewee(xl *xlog.Logger, store intervieweeStore, organizationID, name, email, roleApplied string) (interviewee *model.IntervieweeDo, created bool, nameCollision bool, err error) {
	lowerEmail := utils.NormalizeEmail(email)

	collisionCount, countErr := store.CountNameCollisions(organizationID, name, lowerEmail)
	if countErr != nil {
		xl.Errorf("failed to check name collision for %s, error %v", name, countErr)
	}
	nameCollision = collisionCount > 0

	existing, err := store.FindByIdentity(organizationID, lowerEmail)
	if err == nil {
		return existing, false, nameCollision, nil
	}
	if err != mgo.ErrNotFound {
		xl.Errorf("failed to look up interviewee by email, error %v", err)
		return nil, false, false, err
	}

	fresh := &model.IntervieweeDo{
		ID:             utils.NewID(),
		Name:           name,
		Email:          email,
		LowerEmail:     lowerEmail,
		RoleApplied:    roleApplied,
		OrganizationID: organizationID,
		CreateTime:     time.Now(),
	}
	err = store.Insert(fresh)
	if err == nil {
		xl.Infof("created interviewee %s for %s in organization %s", fresh.ID, lowerEmail, organizationID)
		return fresh, true, nameCollision, nil
	}
	if !mgo.IsDup(err) {
		xl.Errorf("failed to insert interviewee, error %v", err)
		return nil, false, false, err
	}
	// 并发请求刚建了同一候选人，按查找命中处理。
	xl.Infof("interviewee %s just created concurrently, retrying lookup", lowerEmail)
	existing, err = store.FindByIdentity(organizationID, lowerEmail)
	if err != nil {
		xl.Errorf("failed to re-fetch interviewee after duplicate insert, error %v", err)
		return nil, false, false, err
	}
	return existing, false, nameCollision, nil
}

// GetIntervieweeByID 使用ID查找候选人。
func (c *IntervieweeService) GetIntervieweeByID(xl *xlog.Logger, id string) (*model.IntervieweeDo, error) {
	if xl == nil {
		xl = c.xl
	}
	interviewee := model.IntervieweeDo{}
	err := c.intervieweeColl.Find(bson.M{"_id": id}).One(&interviewee)
	if err != nil {
		if err == mgo.ErrNotFound {
			xl.Infof("no such interviewee %s", id)
			return nil, &errors2.ServerError{Code: errors2.ServerErrorIntervieweeNotFound}
		}
		xl.Errorf("failed to get interviewee %s, error %v", id, err)
		return nil, err
	}
	return &interviewee, nil
}

// ListByOrganization 列出组织下全部候选人。
func (c *IntervieweeService) ListByOrganization(xl *xlog.Logger, organizationID string) ([]model.IntervieweeDo, error) {
	if xl == nil {
		xl = c.xl
	}
	interviewees := []model.IntervieweeDo{}
	err := c.intervieweeColl.Find(bson.M{"organizationId": organizationID}).Sort("name").All(&interviewees)
	if err != nil {
		xl.Errorf("failed to list interviewees of organization %s, error %v", organizationID, err)
		return nil, err
	}
	return interviewees, nil
}
