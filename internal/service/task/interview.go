package task

import (
	"time"

	"github.com/qiniu/x/log"
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/solutions/hire-cube/internal/protodef/model"
	"github.com/solutions/hire-cube/internal/service/db/dao"
)

// OverdueGrace 超出预定结束时间多久后由后台收尾。
const OverdueGrace = 24 * time.Hour

// InterviewTask 定时收尾遗留的面试：一直没人加入的scheduled置cancelled，
// 没人手动结束的inProgress置completed。只走状态机允许的边。
type InterviewTask struct {
	mongoClient   *mgo.Session
	interviewColl *mgo.Collection
}

func NewInterviewTask(mongoURI string, database string) (*InterviewTask, error) {
	mongoClient, err := mgo.Dial(mongoURI + "/" + database)
	if err != nil {
		log.Errorf("failed to create mongo client, error %v", err)
		return nil, err
	}
	interviewColl := mongoClient.DB(database).C(dao.CollectionInterview)
	return &InterviewTask{
		mongoClient:   mongoClient,
		interviewColl: interviewColl,
	}, nil
}

func (t *InterviewTask) ListOverdueInterviews(dataSize int) ([]model.InterviewDo, error) {
	if dataSize <= 0 {
		dataSize = 10
	}
	interviews := []model.InterviewDo{}
	err := t.interviewColl.Find(bson.M{"status": bson.M{"$in": []model.InterviewStatusCode{
		model.InterviewStatusCodeScheduled,
		model.InterviewStatusCodeInProgress,
	}}}).Sort("scheduledAt").Limit(dataSize).All(&interviews)
	if err != nil {
		log.Errorf("failed to list overdue interviews, error %v", err)
		return nil, err
	}
	return interviews, nil
}

// TaskForExpireInterviews 每小时由gocron触发。
func (t *InterviewTask) TaskForExpireInterviews() {
	log.Infof("taskForExpireInterviews run at %s", time.Now().String())

	interviews, err := t.ListOverdueInterviews(100)
	if err != nil {
		log.Errorf("TaskForExpireInterviews find interviews, error: %v", err)
		return
	}
	if len(interviews) == 0 {
		log.Infof("taskForExpireInterviews find no interviews")
		return
	}
	now := time.Now()
	for _, interview := range interviews {
		deadline := interview.ScheduledAt.Add(time.Duration(interview.DurationMinutes) * time.Minute).Add(OverdueGrace)
		if now.Before(deadline) {
			continue
		}
		var to model.InterviewStatusCode
		switch interview.Status {
		case model.InterviewStatusCodeScheduled:
			to = model.InterviewStatusCodeCancelled
		case model.InterviewStatusCodeInProgress:
			to = model.InterviewStatusCodeCompleted
		default:
			continue
		}
		if !model.CanTransition(interview.Status, to) {
			continue
		}
		log.Infof("TaskForExpireInterviews closing interview %s, status: %d, scheduledAt: %s",
			interview.ID, interview.Status, interview.ScheduledAt)
		err := t.interviewColl.Update(
			bson.M{"_id": interview.ID, "status": interview.Status},
			bson.M{"$set": bson.M{"status": to, "updateTime": now, "updator": "overdue-task"}},
		)
		if err != nil && err != mgo.ErrNotFound {
			log.Errorf("TaskForExpireInterviews update err, %v", err)
		}
	}
}
