package db

import (
	"regexp"
	"time"

	"github.com/qiniu/x/xlog"
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/solutions/hire-cube/internal/common/utils"
	errors2 "github.com/solutions/hire-cube/internal/protodef/errors"
	"github.com/solutions/hire-cube/internal/protodef/model"
	"github.com/solutions/hire-cube/internal/service/db/dao"
)

// InterviewService 面试生命周期与过滤查询。状态只通过定义好的流转修改，
// Delete是状态机之外的管理后门。
type InterviewService struct {
	mongoClient   *mgo.Session
	interviewColl *mgo.Collection
	feedbackColl  *mgo.Collection
	xl            *xlog.Logger
}

func NewInterviewService(conf utils.MongoConfig, xl *xlog.Logger) (*InterviewService, error) {
	if xl == nil {
		xl = xlog.New("hire-cube-interview-db")
	}
	mongoClient, err := mgo.Dial(conf.URI + "/" + conf.Database)
	if err != nil {
		xl.Errorf("failed to create mongo client, error %v", err)
		return nil, err
	}
	interviewColl := mongoClient.DB(conf.Database).C(dao.CollectionInterview)
	feedbackColl := mongoClient.DB(conf.Database).C(dao.CollectionFeedback)
	return &InterviewService{
		mongoClient:   mongoClient,
		interviewColl: interviewColl,
		feedbackColl:  feedbackColl,
		xl:            xl,
	}, nil
}

// CreateInterview 落库一条新面试，初始状态scheduled，未提交反馈。
func (c *InterviewService) CreateInterview(xl *xlog.Logger, interview *model.InterviewDo) (*model.InterviewDo, error) {
	if xl == nil {
		xl = c.xl
	}
	if interview.ID == "" {
		interview.ID = utils.NewID()
	}
	now := time.Now()
	interview.Status = model.InterviewStatusCodeScheduled
	interview.FeedbackSubmitted = false
	interview.CreateTime = now
	interview.UpdateTime = now
	err := c.interviewColl.Insert(interview)
	if err != nil {
		xl.Errorf("failed to insert interview, error %v", err)
		return nil, err
	}
	xl.Infof("user %s created interview %s", interview.Creator, interview.ID)
	return interview, nil
}

// GetInterviewByFields 根据一组 key/value 关系查找面试。
func (c *InterviewService) GetInterviewByFields(xl *xlog.Logger, fields map[string]interface{}) (*model.InterviewDo, error) {
	if xl == nil {
		xl = c.xl
	}
	interview := model.InterviewDo{}
	err := c.interviewColl.Find(fields).One(&interview)
	if err != nil {
		if err == mgo.ErrNotFound {
			xl.Infof("no such interview for fields %v", fields)
			return nil, &errors2.ServerError{Code: errors2.ServerErrorInterviewNotFound}
		}
		xl.Errorf("failed to get interview, error %v", err)
		return nil, err
	}
	return &interview, nil
}

func (c *InterviewService) GetInterviewByID(xl *xlog.Logger, interviewID string) (*model.InterviewDo, error) {
	return c.GetInterviewByFields(xl, map[string]interface{}{"_id": interviewID})
}

// InterviewFilter 列表与报表共用的过滤条件，全部字段可选，AND组合。
type InterviewFilter struct {
	Status          *model.InterviewStatusCode
	InterviewerName string
	Search          string
	From            time.Time
	To              time.Time
}

// BuildListQuery 把过滤条件编译成mongo查询。search在候选人姓名与岗位标题
// 上做大小写无关的子串匹配（二者取OR），其余条件取AND。
func BuildListQuery(organizationID string, filter InterviewFilter) bson.M {
	query := bson.M{"organizationId": organizationID}
	if filter.Status != nil {
		query["status"] = *filter.Status
	}
	if filter.InterviewerName != "" {
		query["interviewerName"] = bson.RegEx{Pattern: "^" + regexp.QuoteMeta(filter.InterviewerName) + "$", Options: "i"}
	}
	if filter.Search != "" {
		pattern := bson.RegEx{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = []bson.M{
			{"candidateName": pattern},
			{"roleTitle": pattern},
		}
	}
	scheduledRange := bson.M{}
	if !filter.From.IsZero() {
		scheduledRange["$gte"] = filter.From
	}
	if !filter.To.IsZero() {
		scheduledRange["$lte"] = filter.To
	}
	if len(scheduledRange) > 0 {
		query["scheduledAt"] = scheduledRange
	}
	return query
}

// ListInterviews 按过滤条件列出面试，scheduledAt升序。pageSize<=0时
// 返回全部命中记录，报表导出走这条路径，与交互列表共用同一查询。
func (c *InterviewService) ListInterviews(xl *xlog.Logger, organizationID string, filter InterviewFilter, pageNum, pageSize int) ([]model.InterviewDo, int, error) {
	if xl == nil {
		xl = c.xl
	}
	query := BuildListQuery(organizationID, filter)
	interviews := []model.InterviewDo{}
	find := c.interviewColl.Find(query).Sort("scheduledAt")
	if pageSize > 0 {
		if pageNum < 1 {
			pageNum = 1
		}
		find = find.Skip((pageNum - 1) * pageSize).Limit(pageSize)
	}
	err := find.All(&interviews)
	if err != nil {
		xl.Errorf("failed to list interviews of organization %s, error %v", organizationID, err)
		return nil, 0, err
	}
	total, err := c.interviewColl.Find(query).Count()
	if err != nil {
		xl.Errorf("failed to count interviews of organization %s, error %v", organizationID, err)
		return nil, 0, err
	}
	return interviews, total, nil
}

// changeInterviewStatus 校验状态机后做带守卫的更新，撞上并发修改时
// 以最新状态重判一次。
func (c *InterviewService) changeInterviewStatus(xl *xlog.Logger, interviewID, op string, to model.InterviewStatusCode, set bson.M) (*model.InterviewDo, error) {
	interview, err := c.GetInterviewByID(xl, interviewID)
	if err != nil {
		return nil, err
	}
	if !model.CanTransition(interview.Status, to) {
		return nil, errors2.NewServerErrorInvalidTransition(op, model.InterviewStatusName(interview.Status))
	}
	if set == nil {
		set = bson.M{}
	}
	set["status"] = to
	set["updateTime"] = time.Now()
	err = c.interviewColl.Update(bson.M{"_id": interviewID, "status": interview.Status}, bson.M{"$set": set})
	if err == mgo.ErrNotFound {
		current, getErr := c.GetInterviewByID(xl, interviewID)
		if getErr != nil {
			return nil, getErr
		}
		if current.Status == to {
			return current, nil
		}
		return nil, errors2.NewServerErrorInvalidTransition(op, model.InterviewStatusName(current.Status))
	}
	if err != nil {
		xl.Errorf("failed to update interview %s, error %v", interviewID, err)
		return nil, err
	}
	interview.Status = to
	return interview, nil
}

// JoinInterview scheduled→inProgress。双方并发加入是常态，已在进行中的
// 重复join按成功处理，不报错。
func (c *InterviewService) JoinInterview(xl *xlog.Logger, interviewID string, updator string) (*model.InterviewDo, error) {
	if xl == nil {
		xl = c.xl
	}
	interview, err := c.GetInterviewByID(xl, interviewID)
	if err != nil {
		return nil, err
	}
	switch interview.Status {
	case model.InterviewStatusCodeInProgress:
		return interview, nil
	case model.InterviewStatusCodeScheduled:
		updated, err := c.changeInterviewStatus(xl, interviewID, "join", model.InterviewStatusCodeInProgress, bson.M{"updator": updator})
		if err != nil {
			return nil, err
		}
		xl.Infof("user %s joined interview %s", updator, interviewID)
		return updated, nil
	default:
		return nil, errors2.NewServerErrorInvalidTransition("join", model.InterviewStatusName(interview.Status))
	}
}

// CompleteInterview 结束面试。scheduled直接complete也允许，爽约的场次
// 不必先走进行中。
func (c *InterviewService) CompleteInterview(xl *xlog.Logger, interviewID string, updator string) (*model.InterviewDo, error) {
	if xl == nil {
		xl = c.xl
	}
	interview, err := c.changeInterviewStatus(xl, interviewID, "complete", model.InterviewStatusCodeCompleted, bson.M{"updator": updator})
	if err != nil {
		return nil, err
	}
	xl.Infof("user %s completed interview %s", updator, interviewID)
	return interview, nil
}

// CancelInterview 取消面试，原因可选，终态。
func (c *InterviewService) CancelInterview(xl *xlog.Logger, interviewID string, reason string, updator string) (*model.InterviewDo, error) {
	if xl == nil {
		xl = c.xl
	}
	set := bson.M{"updator": updator}
	if reason != "" {
		set["cancelReason"] = reason
	}
	interview, err := c.changeInterviewStatus(xl, interviewID, "cancel", model.InterviewStatusCodeCancelled, set)
	if err != nil {
		return nil, err
	}
	xl.Infof("user %s cancelled interview %s", updator, interviewID)
	return interview, nil
}

// DeleteInterview 管理员物理删除，绕过状态机。连带清掉反馈行，
// 避免孤儿反馈破坏feedbackSubmitted不变量。
func (c *InterviewService) DeleteInterview(xl *xlog.Logger, interviewID string) error {
	if xl == nil {
		xl = c.xl
	}
	err := c.interviewColl.RemoveId(interviewID)
	if err == mgo.ErrNotFound {
		return &errors2.ServerError{Code: errors2.ServerErrorInterviewNotFound}
	}
	if err != nil {
		xl.Errorf("failed to delete interview %s, error %v", interviewID, err)
		return err
	}
	_, err = c.feedbackColl.RemoveAll(bson.M{"interviewId": interviewID})
	if err != nil {
		xl.Errorf("failed to delete feedback of interview %s, error %v", interviewID, err)
		return err
	}
	xl.Infof("interview %s deleted", interviewID)
	return nil
}

// feedbackStore 提交反馈用到的最小存储操作，插入与置位两步的回滚逻辑
// 建立在它之上。
type feedbackStore interface {
	GetInterview(interviewID string) (*model.InterviewDo, error)
	InsertFeedback(feedback *model.FeedbackDo) error
	MarkFeedbackSubmitted(interviewID string) error
	RemoveFeedback(feedbackID string) error
}

// GetInterview 按ID查找面试，查无记录返回ServerError。
func (c *InterviewService) GetInterview(interviewID string) (*model.InterviewDo, error) {
	return c.GetInterviewByID(nil, interviewID)
}

// InsertFeedback 落库一条反馈。
func (c *InterviewService) InsertFeedback(feedback *model.FeedbackDo) error {
	return c.feedbackColl.Insert(feedback)
}

// MarkFeedbackSubmitted 置位面试的feedbackSubmitted。
func (c *InterviewService) MarkFeedbackSubmitted(interviewID string) error {
	return c.interviewColl.Update(bson.M{"_id": interviewID}, bson.M{"$set": bson.M{
		"feedbackSubmitted": true,
		"updateTime":        time.Now(),
	}})
}

// RemoveFeedback 删除一条反馈行。
func (c *InterviewService) RemoveFeedback(feedbackID string) error {
	return c.feedbackColl.RemoveId(feedbackID)
}

// SubmitFeedback 写入反馈并置feedbackSubmitted。两步要么都生效要么都不：
// 标记失败时把刚插入的反馈行删掉回滚。
func (c *InterviewService) SubmitFeedback(xl *xlog.Logger, interviewID string, givenBy string, rating int, comments string) (*model.FeedbackDo, error) {
	if xl == nil {
		xl = c.xl
	}
	return submitFeedback(xl, c, interviewID, givenBy, rating, comments)
}

func submitFeedback(xl *xlog.Logger, store feedbackStore, interviewID string, givenBy string, rating int, comments string) (*model.FeedbackDo, error) {
	interview, err := store.GetInterview(interviewID)
	if err != nil {
		return nil, err
	}
	if interview.Status != model.InterviewStatusCodeCompleted {
		return nil, errors2.NewServerErrorInvalidTransition("submit feedback for", model.InterviewStatusName(interview.Status))
	}
	feedback := &model.FeedbackDo{
		ID:          utils.NewID(),
		InterviewID: interviewID,
		GivenBy:     givenBy,
		Rating:      rating,
		Comments:    comments,
		SubmittedAt: time.Now(),
	}
	err = store.InsertFeedback(feedback)
	if err != nil {
		xl.Errorf("failed to insert feedback for interview %s, error %v", interviewID, err)
		return nil, err
	}
	err = store.MarkFeedbackSubmitted(interviewID)
	if err != nil {
		xl.Errorf("failed to mark feedback submitted on interview %s, rolling back feedback row, error %v", interviewID, err)
		if removeErr := store.RemoveFeedback(feedback.ID); removeErr != nil {
			xl.Errorf("failed to roll back feedback %s, error %v", feedback.ID, removeErr)
		}
		return nil, err
	}
	xl.Infof("user %s submitted feedback for interview %s", givenBy, interviewID)
	return feedback, nil
}

// ListFeedback 列出一场面试的全部反馈。
func (c *InterviewService) ListFeedback(xl *xlog.Logger, interviewID string) ([]model.FeedbackDo, error) {
	if xl == nil {
		xl = c.xl
	}
	feedback := []model.FeedbackDo{}
	err := c.feedbackColl.Find(bson.M{"interviewId": interviewID}).Sort("submittedAt").All(&feedback)
	if err != nil {
		xl.Errorf("failed to list feedback of interview %s, error %v", interviewID, err)
		return nil, err
	}
	return feedback, nil
}
