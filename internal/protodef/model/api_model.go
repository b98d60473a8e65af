package model

/*
	api_model.go: 各接口返回体格式，***Response表示 *** 接口的返回体。
*/

type InterviewResponse struct {
	ID                string `json:"id"`
	OrganizationID    string `json:"organizationId"`
	CandidateID       string `json:"candidateId"`
	CandidateName     string `json:"candidateName"`
	InterviewerID     string `json:"interviewerId"`
	InterviewerName   string `json:"interviewerName"`
	RoleID            string `json:"roleId,omitempty"`
	RoleTitle         string `json:"roleTitle"`
	ScheduledAt       int64  `json:"scheduledAt"`
	DurationMinutes   int    `json:"durationMinutes"`
	Format            string `json:"format"`
	Status            string `json:"status"`
	StatusCode        int    `json:"statusCode"`
	FeedbackSubmitted bool   `json:"feedbackSubmitted"`
	Notes             string `json:"notes,omitempty"`
	CancelReason      string `json:"cancelReason,omitempty"`
}

type InterviewListResponse struct {
	List           []InterviewResponse `json:"list"`
	Total          int                 `json:"total"`
	Cnt            int                 `json:"cnt"`
	CurrentPageNum int                 `json:"currentPageNum"`
	NextPageNum    int                 `json:"nextPageNum"`
	PageSize       int                 `json:"pageSize"`
	EndPage        bool                `json:"endPage"`
}

type UpsertInterviewResponse struct {
	ID string `json:"interviewId"`
}

// JoinInterviewResponse 加入面试的返回体，RoomToken与MeetingURL对调用方
// 是不透明凭证。
type JoinInterviewResponse struct {
	Interview  InterviewResponse `json:"interview"`
	RoomToken  string            `json:"roomToken"`
	MeetingURL string            `json:"meetingUrl"`
}

type FeedbackResponse struct {
	ID          string `json:"id"`
	InterviewID string `json:"interviewId"`
	GivenBy     string `json:"givenBy"`
	Rating      int    `json:"rating"`
	Comments    string `json:"comments"`
	SubmittedAt int64  `json:"submittedAt"`
}

// MatchedInterviewersResponse 岗位匹配结果，InterviewerIds按技能重合数降序。
type MatchedInterviewersResponse struct {
	InterviewerIds []string        `json:"interviewerIds"`
	List           []InterviewerDo `json:"list"`
}
