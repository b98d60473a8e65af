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

// InterviewerService 面试官信息维护与按技能检索。
type InterviewerService struct {
	mongoClient     *mgo.Session
	interviewerColl *mgo.Collection
	xl              *xlog.Logger
}

func NewInterviewerService(conf utils.MongoConfig, xl *xlog.Logger) (*InterviewerService, error) {
	if xl == nil {
		xl = xlog.New("hire-cube-interviewer-db")
	}
	mongoClient, err := mgo.Dial(conf.URI + "/" + conf.Database)
	if err != nil {
		xl.Errorf("failed to create mongo client, error %v", err)
		return nil, err
	}
	interviewerColl := mongoClient.DB(conf.Database).C(dao.CollectionInterviewer)
	// (organizationId, lowerEmail)唯一，组织内邮箱即面试官身份键。
	err = interviewerColl.EnsureIndex(mgo.Index{
		Key:    []string{"organizationId", "lowerEmail"},
		Unique: true,
	})
	if err != nil {
		xl.Errorf("failed to ensure interviewer index, error %v", err)
		return nil, err
	}
	return &InterviewerService{
		mongoClient:     mongoClient,
		interviewerColl: interviewerColl,
		xl:              xl,
	}, nil
}

// UpsertInterviewer 新建面试官。组织内邮箱重复时，未经确认返回重复键错误；
// force表示操作者已确认，改为更新已有记录而不是另建一行。
func (c *InterviewerService) UpsertInterviewer(xl *xlog.Logger, interviewer *model.InterviewerDo, force bool) (*model.InterviewerDo, error) {
	if xl == nil {
		xl = c.xl
	}
	if interviewer.ID == "" {
		interviewer.ID = utils.NewID()
	}
	interviewer.LowerEmail = utils.NormalizeEmail(interviewer.Email)
	now := time.Now()
	interviewer.CreateTime = now
	interviewer.UpdateTime = now
	err := c.interviewerColl.Insert(interviewer)
	if err == nil {
		xl.Infof("created interviewer %s in organization %s", interviewer.ID, interviewer.OrganizationID)
		return interviewer, nil
	}
	if !mgo.IsDup(err) {
		xl.Errorf("failed to insert interviewer, error %v", err)
		return nil, err
	}
	if !force {
		return nil, &errors2.ServerError{
			Code:    errors2.ServerErrorDuplicateKey,
			Summary: "interviewer email already registered in organization",
		}
	}
	existing := model.InterviewerDo{}
	findErr := c.interviewerColl.Find(bson.M{
		"organizationId": interviewer.OrganizationID,
		"lowerEmail":     interviewer.LowerEmail,
	}).One(&existing)
	if findErr != nil {
		xl.Errorf("failed to find existing interviewer after duplicate insert, error %v", findErr)
		return nil, findErr
	}
	updateErr := c.interviewerColl.Update(bson.M{"_id": existing.ID}, bson.M{"$set": bson.M{
		"name":       interviewer.Name,
		"skills":     interviewer.Skills,
		"updateTime": now,
	}})
	if updateErr != nil {
		xl.Errorf("failed to update interviewer %s, error %v", existing.ID, updateErr)
		return nil, updateErr
	}
	existing.Name = interviewer.Name
	existing.Skills = interviewer.Skills
	existing.UpdateTime = now
	xl.Infof("interviewer %s updated via confirmed duplicate email", existing.ID)
	return &existing, nil
}

// GetInterviewerByID 使用ID查找面试官。
func (c *InterviewerService) GetInterviewerByID(xl *xlog.Logger, id string) (*model.InterviewerDo, error) {
	if xl == nil {
		xl = c.xl
	}
	interviewer := model.InterviewerDo{}
	err := c.interviewerColl.Find(bson.M{"_id": id}).One(&interviewer)
	if err != nil {
		if err == mgo.ErrNotFound {
			xl.Infof("no such interviewer %s", id)
			return nil, &errors2.ServerError{Code: errors2.ServerErrorInterviewerNotFound}
		}
		xl.Errorf("failed to get interviewer %s, error %v", id, err)
		return nil, err
	}
	return &interviewer, nil
}

// ListByOrganization 列出组织下全部面试官。
func (c *InterviewerService) ListByOrganization(xl *xlog.Logger, organizationID string) ([]model.InterviewerDo, error) {
	if xl == nil {
		xl = c.xl
	}
	interviewers := []model.InterviewerDo{}
	err := c.interviewerColl.Find(bson.M{"organizationId": organizationID}).Sort("name").All(&interviewers)
	if err != nil {
		xl.Errorf("failed to list interviewers of organization %s, error %v", organizationID, err)
		return nil, err
	}
	return interviewers, nil
}

// ListBySkills 列出组织内技能与skills有交集的面试官，每人只出现一次。
func (c *InterviewerService) ListBySkills(xl *xlog.Logger, organizationID string, skills []string) ([]model.InterviewerDo, error) {
	if xl == nil {
		xl = c.xl
	}
	interviewers := []model.InterviewerDo{}
	err := c.interviewerColl.Find(bson.M{
		"organizationId": organizationID,
		"skills":         bson.M{"$in": skills},
	}).All(&interviewers)
	if err != nil {
		xl.Errorf("failed to list interviewers by skills, error %v", err)
		return nil, err
	}
	return interviewers, nil
}

// DeleteInterviewer 删除面试官。
func (c *InterviewerService) DeleteInterviewer(xl *xlog.Logger, id string) error {
	if xl == nil {
		xl = c.xl
	}
	err := c.interviewerColl.RemoveId(id)
	if err == mgo.ErrNotFound {
		return &errors2.ServerError{Code: errors2.ServerErrorInterviewerNotFound}
	}
	return err
}
