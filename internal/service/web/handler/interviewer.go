package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/qiniu/x/xlog"

	"github.com/solutions/hire-cube/internal/common/utils"
	"github.com/solutions/hire-cube/internal/protodef/form"
	"github.com/solutions/hire-cube/internal/protodef/model"
	"github.com/solutions/hire-cube/internal/service/db"
)

// InterviewerApiHandler 面试官信息维护接口。
type InterviewerApiHandler struct {
	Interviewer  *db.InterviewerService
	Organization *db.OrganizationService
	Skill        SkillInterface
}

func NewInterviewerApiHandler(conf utils.Config) *InterviewerApiHandler {
	i := new(InterviewerApiHandler)
	var err error
	i.Interviewer, err = db.NewInterviewerService(*conf.Mongo, nil)
	if err != nil {
		panic(err)
	}
	i.Organization, err = db.NewOrganizationService(*conf.Mongo, nil)
	if err != nil {
		panic(err)
	}
	i.Skill, err = db.NewSkillService(*conf.Mongo, nil)
	if err != nil {
		panic(err)
	}
	return i
}

// UpsertInterviewer 新建面试官。同组织邮箱重复时返回冲突，
// 带force重发表示操作者已确认，改为更新已有记录。
func (h *InterviewerApiHandler) UpsertInterviewer(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	if !requireAdmin(xl, c, requestID) {
		return
	}
	args := &form.InterviewerUpsertForm{}
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
	// 特长必须是词表里已有的词条，拼错的技能会让匹配悄悄失效。
	for _, skillID := range args.Skills {
		if _, err := h.Skill.GetSkillByID(xl, skillID); err != nil {
			sendServerError(xl, c, requestID, err)
			return
		}
	}
	if _, err := h.Organization.GetOrganizationByID(xl, args.OrganizationID); err != nil {
		sendServerError(xl, c, requestID, err)
		return
	}
	interviewer := &model.InterviewerDo{
		Name:           args.Name,
		Email:          args.Email,
		OrganizationID: args.OrganizationID,
		Skills:         args.Skills,
	}
	interviewerRes, err := h.Interviewer.UpsertInterviewer(xl, interviewer, args.Force)
	if err != nil {
		sendServerError(xl, c, requestID, err)
		return
	}
	model.NewSuccessResponse(interviewerRes).WithRequestID(requestID).Send(c)
}

func (h *InterviewerApiHandler) GetInterviewer(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	interviewer, err := h.Interviewer.GetInterviewerByID(xl, c.Param("interviewerId"))
	if err != nil {
		sendServerError(xl, c, requestID, err)
		return
	}
	model.NewSuccessResponse(interviewer).WithRequestID(requestID).Send(c)
}

func (h *InterviewerApiHandler) ListInterviewers(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	organizationID := c.Query("organizationId")
	if organizationID == "" {
		organizationID = c.GetString(model.OrganizationIDContextKey)
	}
	interviewers, err := h.Interviewer.ListByOrganization(xl, organizationID)
	if err != nil {
		sendServerError(xl, c, requestID, err)
		return
	}
	model.NewSuccessResponse(interviewers).WithRequestID(requestID).Send(c)
}

func (h *InterviewerApiHandler) DeleteInterviewer(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	if !requireAdmin(xl, c, requestID) {
		return
	}
	if err := h.Interviewer.DeleteInterviewer(xl, c.Param("interviewerId")); err != nil {
		sendServerError(xl, c, requestID, err)
		return
	}
	model.NewSuccessResponse(nil).WithRequestID(requestID).Send(c)
}
