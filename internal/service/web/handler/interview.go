package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/qiniu/x/xlog"

	"github.com/solutions/hire-cube/internal/common/utils"
	"github.com/solutions/hire-cube/internal/protodef/form"
	"github.com/solutions/hire-cube/internal/protodef/model"
	"github.com/solutions/hire-cube/internal/service/cloud"
	"github.com/solutions/hire-cube/internal/service/db"
	"github.com/solutions/hire-cube/internal/service/web/middleware"
)

type InterviewApiHandler struct {
	Interview   InterviewInterface
	Interviewer *db.InterviewerService
	Interviewee *db.IntervieweeService
	Role        *db.RoleService
	RTC         *cloud.RTCService
}

type InterviewInterface interface {
	// 创建面试
	CreateInterview(xl *xlog.Logger, interview *model.InterviewDo) (*model.InterviewDo, error)
	GetInterviewByID(xl *xlog.Logger, interviewID string) (*model.InterviewDo, error)
	ListInterviews(xl *xlog.Logger, organizationID string, filter db.InterviewFilter, pageNum, pageSize int) ([]model.InterviewDo, int, error)
	JoinInterview(xl *xlog.Logger, interviewID string, updator string) (*model.InterviewDo, error)
	CompleteInterview(xl *xlog.Logger, interviewID string, updator string) (*model.InterviewDo, error)
	CancelInterview(xl *xlog.Logger, interviewID string, reason string, updator string) (*model.InterviewDo, error)
	DeleteInterview(xl *xlog.Logger, interviewID string) error
	SubmitFeedback(xl *xlog.Logger, interviewID string, givenBy string, rating int, comments string) (*model.FeedbackDo, error)
	ListFeedback(xl *xlog.Logger, interviewID string) ([]model.FeedbackDo, error)
}

func NewInterviewApiHandler(conf utils.Config) *InterviewApiHandler {
	i := new(InterviewApiHandler)
	i.RTC = cloud.NewRtcService(conf)
	var err error
	i.Interview, err = db.NewInterviewService(*conf.Mongo, nil)
	if err != nil {
		panic(err)
	}
	i.Interviewer, err = db.NewInterviewerService(*conf.Mongo, nil)
	if err != nil {
		panic(err)
	}
	i.Interviewee, err = db.NewIntervieweeService(*conf.Mongo, nil)
	if err != nil {
		panic(err)
	}
	i.Role, err = db.NewRoleService(*conf.Mongo, nil)
	if err != nil {
		panic(err)
	}
	return i
}

// NameCollisionWarning 同组织内存在同名不同邮箱的候选人时附带的提示。
const NameCollisionWarning = "another interviewee with the same name but a different email exists in this organization"

func makeInterviewResponse(interview *model.InterviewDo) model.InterviewResponse {
	return model.InterviewResponse{
		ID:                interview.ID,
		OrganizationID:    interview.OrganizationID,
		CandidateID:       interview.IntervieweeID,
		CandidateName:     interview.CandidateName,
		InterviewerID:     interview.InterviewerID,
		InterviewerName:   interview.InterviewerName,
		RoleID:            interview.RoleID,
		RoleTitle:         interview.RoleTitle,
		ScheduledAt:       interview.ScheduledAt.Unix(),
		DurationMinutes:   interview.DurationMinutes,
		Format:            interview.Format,
		Status:            model.InterviewStatusName(interview.Status),
		StatusCode:        int(interview.Status),
		FeedbackSubmitted: interview.FeedbackSubmitted,
		Notes:             interview.Notes,
		CancelReason:      interview.CancelReason,
	}
}

func (h *InterviewApiHandler) CreateInterview(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	userID := c.GetString(model.UserIDContextKey)
	organizationID := c.GetString(model.OrganizationIDContextKey)
	args := &form.InterviewCreateForm{}
	err := c.ShouldBind(args)
	if err != nil {
		xl.Infof("invalid args in body, error %v", err)
		responseErr := model.NewResponseErrorBadRequest()
		resp := model.NewFailResponse(*responseErr).WithRequestID(requestID)
		c.JSON(http.StatusOK, resp)
		return
	}
	args.FillDefault()
	if err := args.Validate(); err != nil {
		xl.Infof("form validation error: %v", err)
		responseErr := model.NewResponseErrorValidation(err)
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}

	interviewer, err := h.Interviewer.GetInterviewerByID(xl, args.InterviewerID)
	if err != nil {
		sendServerError(xl, c, requestID, err)
		return
	}
	if organizationID != "" && interviewer.OrganizationID != organizationID {
		xl.Infof("interviewer %s belongs to another organization", interviewer.ID)
		responseErr := model.NewResponseErrorNoSuchInterviewer()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	if organizationID == "" {
		organizationID = interviewer.OrganizationID
	}

	roleTitle := args.RoleApplied
	if args.RoleID != "" {
		role, err := h.Role.GetRoleByID(xl, args.RoleID)
		if err != nil {
			sendServerError(xl, c, requestID, err)
			return
		}
		if role.OrganizationID != organizationID {
			xl.Infof("role %s belongs to another organization", role.ID)
			responseErr := model.NewResponseErrorNoSuchRole()
			model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
			return
		}
		roleTitle = role.Title
	}

	interviewee, created, nameCollision, err := h.Interviewee.ResolveInterviewee(xl, organizationID, args.CandidateName, args.CandidateEmail, args.RoleApplied)
	if err != nil {
		sendServerError(xl, c, requestID, err)
		return
	}
	if !created {
		xl.Infof("reusing interviewee %s for email %s", interviewee.ID, args.CandidateEmail)
	}

	interview := &model.InterviewDo{
		OrganizationID:  organizationID,
		IntervieweeID:   interviewee.ID,
		InterviewerID:   interviewer.ID,
		RoleID:          args.RoleID,
		CandidateName:   interviewee.Name,
		InterviewerName: interviewer.Name,
		RoleTitle:       roleTitle,
		ScheduledAt:     time.Unix(args.ScheduledAt, 0),
		DurationMinutes: args.DurationMinutes,
		Format:          args.Format,
		Notes:           args.Notes,
		Creator:         userID,
		Updator:         userID,
	}
	interviewRes, err := h.Interview.CreateInterview(xl, interview)
	if err != nil {
		sendServerError(xl, c, requestID, err)
		return
	}

	xl.Infof("user %s scheduled interview %s for candidate %s", userID, interviewRes.ID, interviewee.ID)
	resp := model.NewSuccessResponse(model.UpsertInterviewResponse{
		ID: interviewRes.ID,
	}).WithRequestID(requestID)
	if nameCollision {
		resp = resp.WithWarnings([]string{NameCollisionWarning})
	}
	resp.Send(c)
}

func (h *InterviewApiHandler) ListInterviews(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	organizationID := c.GetString(model.OrganizationIDContextKey)
	args := &form.InterviewListForm{}
	err := c.ShouldBind(args)
	if err != nil {
		xl.Infof("invalid args in query, error %v", err)
		responseErr := model.NewResponseErrorBadRequest()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	if err := args.Validate(); err != nil {
		xl.Infof("form validation error: %v", err)
		responseErr := model.NewResponseErrorValidation(err)
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}

	filter := db.InterviewFilter{
		InterviewerName: args.InterviewerName,
		Search:          args.Search,
	}
	if args.Status != "" {
		statusCode, _ := model.ParseInterviewStatus(args.Status)
		filter.Status = &statusCode
	}
	if args.From > 0 {
		filter.From = time.Unix(args.From, 0)
	}
	if args.To > 0 {
		filter.To = time.Unix(args.To, 0)
	}

	pageNum := c.GetInt(model.PageNumContextKey)
	pageSize := c.GetInt(model.PageSizeContextKey)
	interviews, total, err := h.Interview.ListInterviews(xl, organizationID, filter, pageNum, pageSize)
	if err != nil {
		sendServerError(xl, c, requestID, err)
		return
	}

	list := make([]model.InterviewResponse, 0, len(interviews))
	for i := range interviews {
		list = append(list, makeInterviewResponse(&interviews[i]))
	}
	listResp := model.InterviewListResponse{
		List:           list,
		Total:          total,
		Cnt:            len(list),
		CurrentPageNum: pageNum,
		PageSize:       pageSize,
		EndPage:        true,
	}
	if pageSize > 0 {
		listResp.EndPage = pageNum*pageSize >= total
		if !listResp.EndPage {
			listResp.NextPageNum = pageNum + 1
		}
	} else {
		// 不分页路径，一把全量。
		listResp.CurrentPageNum = 1
	}
	model.NewSuccessResponse(listResp).WithRequestID(requestID).Send(c)
}

func (h *InterviewApiHandler) GetInterview(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	interviewID := c.Param("interviewId")
	interview, err := h.Interview.GetInterviewByID(xl, interviewID)
	if err != nil {
		sendServerError(xl, c, requestID, err)
		return
	}
	organizationID := c.GetString(model.OrganizationIDContextKey)
	if organizationID != "" && interview.OrganizationID != organizationID {
		xl.Infof("interview %s belongs to another organization", interviewID)
		responseErr := model.NewResponseErrorNoSuchInterview()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	model.NewSuccessResponse(makeInterviewResponse(interview)).WithRequestID(requestID).Send(c)
}

func (h *InterviewApiHandler) JoinInterview(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	userID := c.GetString(model.UserIDContextKey)
	interviewID := c.Param("interviewId")
	actorRole := middleware.ActorRole(c)

	interview, err := h.Interview.GetInterviewByID(xl, interviewID)
	if err != nil {
		sendServerError(xl, c, requestID, err)
		return
	}
	// 时间窗口只拦参与者，管理员旁观不受限。窗口判断在状态流转之前，
	// 窗口外的请求不应产生任何状态变化。
	if !model.CanJoin(actorRole, interview.ScheduledAt, time.Now()) {
		xl.Infof("user %s rejected by join window of interview %s, scheduledAt %s", userID, interviewID, interview.ScheduledAt)
		responseErr := model.NewResponseErrorJoinWindow("interview can only be joined between 15 minutes before and 60 minutes after its scheduled time")
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}

	joined, err := h.Interview.JoinInterview(xl, interviewID, userID)
	if err != nil {
		sendServerError(xl, c, requestID, err)
		return
	}

	roomToken := h.RTC.GenerateRTCRoomToken(interviewID, userID, "user")
	resp := model.JoinInterviewResponse{
		Interview:  makeInterviewResponse(joined),
		RoomToken:  roomToken,
		MeetingURL: h.RTC.MeetingURL(interviewID, userID, string(actorRole)),
	}
	xl.Infof("user %s joined interview %s as %s", userID, interviewID, actorRole)
	model.NewSuccessResponse(resp).WithRequestID(requestID).Send(c)
}

func (h *InterviewApiHandler) CompleteInterview(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	userID := c.GetString(model.UserIDContextKey)
	interviewID := c.Param("interviewId")
	interview, err := h.Interview.CompleteInterview(xl, interviewID, userID)
	if err != nil {
		sendServerError(xl, c, requestID, err)
		return
	}
	model.NewSuccessResponse(makeInterviewResponse(interview)).WithRequestID(requestID).Send(c)
}

func (h *InterviewApiHandler) CancelInterview(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	userID := c.GetString(model.UserIDContextKey)
	interviewID := c.Param("interviewId")
	args := &form.InterviewCancelForm{}
	// 取消原因可选，body为空也放行。Bind绑定失败会直接写400头，这里不能用。
	if err := c.ShouldBind(args); err != nil {
		xl.Debugf("no parsable cancel reason in body: %v", err)
		args.Reason = ""
	}
	interview, err := h.Interview.CancelInterview(xl, interviewID, args.Reason, userID)
	if err != nil {
		sendServerError(xl, c, requestID, err)
		return
	}
	model.NewSuccessResponse(makeInterviewResponse(interview)).WithRequestID(requestID).Send(c)
}

func (h *InterviewApiHandler) DeleteInterview(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	if !requireAdmin(xl, c, requestID) {
		return
	}
	interviewID := c.Param("interviewId")
	err := h.Interview.DeleteInterview(xl, interviewID)
	if err != nil {
		sendServerError(xl, c, requestID, err)
		return
	}
	model.NewSuccessResponse(nil).WithRequestID(requestID).Send(c)
}

func (h *InterviewApiHandler) SubmitFeedback(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	userID := c.GetString(model.UserIDContextKey)
	interviewID := c.Param("interviewId")
	args := &form.FeedbackForm{}
	err := c.ShouldBind(args)
	if err != nil {
		xl.Infof("invalid args in body, error %v", err)
		responseErr := model.NewResponseErrorBadRequest()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	if err := args.Validate(); err != nil {
		xl.Infof("form validation error: %v", err)
		responseErr := model.NewResponseErrorValidation(err)
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	feedback, err := h.Interview.SubmitFeedback(xl, interviewID, userID, args.Rating, args.Comments)
	if err != nil {
		sendServerError(xl, c, requestID, err)
		return
	}
	model.NewSuccessResponse(model.FeedbackResponse{
		ID:          feedback.ID,
		InterviewID: feedback.InterviewID,
		GivenBy:     feedback.GivenBy,
		Rating:      feedback.Rating,
		Comments:    feedback.Comments,
		SubmittedAt: feedback.SubmittedAt.Unix(),
	}).WithRequestID(requestID).Send(c)
}

func (h *InterviewApiHandler) ListFeedback(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	interviewID := c.Param("interviewId")
	if _, err := h.Interview.GetInterviewByID(xl, interviewID); err != nil {
		sendServerError(xl, c, requestID, err)
		return
	}
	feedback, err := h.Interview.ListFeedback(xl, interviewID)
	if err != nil {
		sendServerError(xl, c, requestID, err)
		return
	}
	list := make([]model.FeedbackResponse, 0, len(feedback))
	for _, f := range feedback {
		list = append(list, model.FeedbackResponse{
			ID:          f.ID,
			InterviewID: f.InterviewID,
			GivenBy:     f.GivenBy,
			Rating:      f.Rating,
			Comments:    f.Comments,
			SubmittedAt: f.SubmittedAt.Unix(),
		})
	}
	model.NewSuccessResponse(list).WithRequestID(requestID).Send(c)
}
