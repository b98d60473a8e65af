package form

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/solutions/hire-cube/internal/protodef/model"
)

const (
	ErrNameMsg     = "姓名长度需在2-100之间"
	ErrEmailMsg    = "邮箱校验失败"
	ErrDateMsg     = "面试日期不可早于今天"
	ErrDurationMsg = "时长需为正数"
	ErrRatingMsg   = "评分需在1-5之间"
)

var interviewFormats = []interface{}{"video", "phone", "onsite"}

// InterviewCreateForm 创建面试的参数。候选人按(组织, 邮箱)自动查找或建档。
type InterviewCreateForm struct {
	CandidateName   string `json:"candidateName" form:"candidateName"`
	CandidateEmail  string `json:"candidateEmail" form:"candidateEmail"`
	RoleApplied     string `json:"roleApplied" form:"roleApplied"`
	RoleID          string `json:"roleId" form:"roleId"`
	InterviewerID   string `json:"interviewerId" form:"interviewerId"`
	ScheduledAt     int64  `json:"scheduledAt" form:"scheduledAt"`
	DurationMinutes int    `json:"durationMinutes" form:"durationMinutes"`
	Format          string `json:"format" form:"format"`
	Notes           string `json:"notes" form:"notes"`
}

// ScheduledDateNotPast 只校验日期部分：当天已过整点的时间仍然放行。
func ScheduledDateNotPast(value interface{}) error {
	ts, ok := value.(int64)
	if !ok || ts == 0 {
		return nil
	}
	scheduled := time.Unix(ts, 0)
	y, m, d := scheduled.Date()
	scheduledDay := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	y, m, d = time.Now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	if scheduledDay.Before(today) {
		return fmt.Errorf(ErrDateMsg)
	}
	return nil
}

func (i *InterviewCreateForm) Validate() error {
	return validation.ValidateStruct(i,
		validation.Field(&i.CandidateName, validation.Required, validation.Length(2, 100).Error(ErrNameMsg)),
		validation.Field(&i.CandidateEmail, validation.Required, is.Email.Error(ErrEmailMsg)),
		validation.Field(&i.RoleApplied, validation.Required),
		validation.Field(&i.InterviewerID, validation.Required),
		validation.Field(&i.ScheduledAt, validation.Required, validation.By(ScheduledDateNotPast)),
		validation.Field(&i.DurationMinutes, validation.Required, validation.Min(1).Error(ErrDurationMsg)),
		validation.Field(&i.Format, validation.In(interviewFormats...)),
	)
}

func (i *InterviewCreateForm) FillDefault() {
	if i.Format == "" {
		i.Format = "video"
	}
	if i.DurationMinutes == 0 {
		i.DurationMinutes = 60
	}
}

// InterviewCancelForm 取消面试的参数，原因可选。
type InterviewCancelForm struct {
	Reason string `json:"reason" form:"reason"`
}

// FeedbackForm 提交反馈的参数。
type FeedbackForm struct {
	Rating   int    `json:"rating" form:"rating"`
	Comments string `json:"comments" form:"comments"`
}

func (f *FeedbackForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.Rating, validation.Required, validation.Min(1).Error(ErrRatingMsg), validation.Max(5).Error(ErrRatingMsg)),
	)
}

// InterviewListForm 列表/报表共用的过滤参数，全部可选，取AND语义。
type InterviewListForm struct {
	Status          string `json:"status" form:"status"`
	InterviewerName string `json:"interviewerName" form:"interviewer_name"`
	Search          string `json:"search" form:"search"`
	From            int64  `json:"from" form:"from"`
	To              int64  `json:"to" form:"to"`
}

func (l *InterviewListForm) Validate() error {
	return validation.ValidateStruct(l,
		validation.Field(&l.Status, validation.By(func(value interface{}) error {
			name, _ := value.(string)
			if name == "" {
				return nil
			}
			if _, ok := model.ParseInterviewStatus(name); !ok {
				return fmt.Errorf("未知的面试状态 %s", name)
			}
			return nil
		})),
	)
}
