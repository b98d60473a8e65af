package model

import (
	"time"
)

/*
	db_model.go: 规定数据存储的格式。
*/

// OrganizationDo 组织信息。面试官与候选人均归属某一组织。
type OrganizationDo struct {
	ID         string    `json:"id" bson:"_id"`
	Name       string    `json:"name" bson:"name"`
	CreateTime time.Time `json:"createTime" bson:"createTime"`
}

// SkillDo 技能词表，岗位要求与面试官特长共用。
type SkillDo struct {
	ID   string `json:"id" bson:"_id"`
	Name string `json:"name" bson:"name"`
}

// InterviewerDo 面试官信息。
type InterviewerDo struct {
	ID             string   `json:"id" bson:"_id"`
	Name           string   `json:"name" bson:"name"`
	Email          string   `json:"email" bson:"email"`
	// LowerEmail 去重用的归一化邮箱，(organizationId, lowerEmail)全局唯一。
	LowerEmail     string   `json:"-" bson:"lowerEmail"`
	OrganizationID string   `json:"organizationId" bson:"organizationId"`
	// Skills 技能ID列表，面试官匹配以此为准。
	Skills         []string  `json:"skills" bson:"skills"`
	CreateTime     time.Time `json:"createTime" bson:"createTime"`
	UpdateTime     time.Time `json:"updateTime" bson:"updateTime"`
}

// IntervieweeDo 候选人信息。身份键为(organizationId, lowerEmail)。
type IntervieweeDo struct {
	ID             string    `json:"id" bson:"_id"`
	Name           string    `json:"name" bson:"name"`
	Email          string    `json:"email" bson:"email"`
	LowerEmail     string    `json:"-" bson:"lowerEmail"`
	RoleApplied    string    `json:"roleApplied" bson:"roleApplied"`
	OrganizationID string    `json:"organizationId" bson:"organizationId"`
	CreateTime     time.Time `json:"createTime" bson:"createTime"`
}

// RoleRequirementDo 在招岗位及其要求技能。
type RoleRequirementDo struct {
	ID             string    `json:"id" bson:"_id"`
	Title          string    `json:"title" bson:"title"`
	OrganizationID string    `json:"organizationId" bson:"organizationId"`
	RequiredSkills []string  `json:"requiredSkills" bson:"requiredSkills"`
	CreateTime     time.Time `json:"createTime" bson:"createTime"`
}

// InterviewStatusCode 面试状态码。
type InterviewStatusCode int

const (
	InterviewStatusCodeScheduled  InterviewStatusCode = 0
	InterviewStatusCodeInProgress InterviewStatusCode = 10
	InterviewStatusCodeCompleted  InterviewStatusCode = 20
	InterviewStatusCodeCancelled  InterviewStatusCode = -10
)

const (
	InterviewStatusNameScheduled  = "scheduled"
	InterviewStatusNameInProgress = "inProgress"
	InterviewStatusNameCompleted  = "completed"
	InterviewStatusNameCancelled  = "cancelled"
)

// InterviewStatusName 状态码对应的对外名称。
func InterviewStatusName(code InterviewStatusCode) string {
	switch code {
	case InterviewStatusCodeScheduled:
		return InterviewStatusNameScheduled
	case InterviewStatusCodeInProgress:
		return InterviewStatusNameInProgress
	case InterviewStatusCodeCompleted:
		return InterviewStatusNameCompleted
	case InterviewStatusCodeCancelled:
		return InterviewStatusNameCancelled
	default:
		return ""
	}
}

// ParseInterviewStatus 对外名称转状态码。
func ParseInterviewStatus(name string) (InterviewStatusCode, bool) {
	switch name {
	case InterviewStatusNameScheduled:
		return InterviewStatusCodeScheduled, true
	case InterviewStatusNameInProgress:
		return InterviewStatusCodeInProgress, true
	case InterviewStatusNameCompleted:
		return InterviewStatusCodeCompleted, true
	case InterviewStatusNameCancelled:
		return InterviewStatusCodeCancelled, true
	default:
		return 0, false
	}
}

// interviewTransitions 状态机允许的边。completed/cancelled为终态。
var interviewTransitions = map[InterviewStatusCode][]InterviewStatusCode{
	InterviewStatusCodeScheduled:  {InterviewStatusCodeInProgress, InterviewStatusCodeCompleted, InterviewStatusCodeCancelled},
	InterviewStatusCodeInProgress: {InterviewStatusCodeCompleted, InterviewStatusCodeCancelled},
}

// CanTransition 判断面试状态能否从from流转到to。
func CanTransition(from, to InterviewStatusCode) bool {
	for _, next := range interviewTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// InterviewDo 面试信息。candidateName/interviewerName/roleTitle为冗余字段，
// 供列表检索与报表共用同一查询。
type InterviewDo struct {
	ID                string              `json:"id" bson:"_id"`
	OrganizationID    string              `json:"organizationId" bson:"organizationId"`
	IntervieweeID     string              `json:"intervieweeId" bson:"intervieweeId"`
	InterviewerID     string              `json:"interviewerId" bson:"interviewerId"`
	RoleID            string              `json:"roleId,omitempty" bson:"roleId,omitempty"`
	CandidateName     string              `json:"candidateName" bson:"candidateName"`
	InterviewerName   string              `json:"interviewerName" bson:"interviewerName"`
	RoleTitle         string              `json:"roleTitle" bson:"roleTitle"`
	ScheduledAt       time.Time           `json:"scheduledAt" bson:"scheduledAt"`
	DurationMinutes   int                 `json:"durationMinutes" bson:"durationMinutes"`
	Format            string              `json:"format" bson:"format"`
	Status            InterviewStatusCode `json:"status" bson:"status"`
	FeedbackSubmitted bool                `json:"feedbackSubmitted" bson:"feedbackSubmitted"`
	Notes             string              `json:"notes,omitempty" bson:"notes,omitempty"`
	CancelReason      string              `json:"cancelReason,omitempty" bson:"cancelReason,omitempty"`
	Creator           string              `json:"creator" bson:"creator"`
	Updator           string              `json:"updator" bson:"updator"`
	CreateTime        time.Time           `json:"createTime" bson:"createTime"`
	UpdateTime        time.Time           `json:"updateTime" bson:"updateTime"`
}

// FeedbackDo 面试反馈。反馈行的存在与interview.feedbackSubmitted保持一致。
type FeedbackDo struct {
	ID          string    `json:"id" bson:"_id"`
	InterviewID string    `json:"interviewId" bson:"interviewId"`
	GivenBy     string    `json:"givenBy" bson:"givenBy"`
	Rating      int       `json:"rating" bson:"rating"`
	Comments    string    `json:"comments" bson:"comments"`
	SubmittedAt time.Time `json:"submittedAt" bson:"submittedAt"`
}
