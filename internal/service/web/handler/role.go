package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/qiniu/x/xlog"

	"github.com/solutions/hire-cube/internal/common/utils"
	"github.com/solutions/hire-cube/internal/protodef/form"
	"github.com/solutions/hire-cube/internal/protodef/model"
	"github.com/solutions/hire-cube/internal/service/db"
)

// SkillInterface 技能词表校验用到的查询。
type SkillInterface interface {
	GetSkillByID(xl *xlog.Logger, id string) (*model.SkillDo, error)
}

// RoleApiHandler 在招岗位维护与面试官匹配。
type RoleApiHandler struct {
	Role  *db.RoleService
	Skill SkillInterface
}

func NewRoleApiHandler(conf utils.Config) *RoleApiHandler {
	r := new(RoleApiHandler)
	var err error
	r.Role, err = db.NewRoleService(*conf.Mongo, nil)
	if err != nil {
		panic(err)
	}
	r.Skill, err = db.NewSkillService(*conf.Mongo, nil)
	if err != nil {
		panic(err)
	}
	return r
}

func (h *RoleApiHandler) CreateRole(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	if !requireAdmin(xl, c, requestID) {
		return
	}
	args := &form.RoleCreateForm{}
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
	// 要求技能必须是词表里已有的词条，避免拼错的技能悄悄让匹配失效。
	for _, skillID := range args.RequiredSkills {
		if _, err := h.Skill.GetSkillByID(xl, skillID); err != nil {
			sendServerError(xl, c, requestID, err)
			return
		}
	}
	role := &model.RoleRequirementDo{
		Title:          args.Title,
		OrganizationID: args.OrganizationID,
		RequiredSkills: args.RequiredSkills,
	}
	if err := h.Role.CreateRole(xl, role); err != nil {
		sendServerError(xl, c, requestID, err)
		return
	}
	xl.Infof("created role requirement %s in organization %s", role.ID, role.OrganizationID)
	model.NewSuccessResponse(role).WithRequestID(requestID).Send(c)
}

func (h *RoleApiHandler) ListRoles(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	organizationID := c.Query("organizationId")
	if organizationID == "" {
		organizationID = c.GetString(model.OrganizationIDContextKey)
	}
	roles, err := h.Role.ListByOrganization(xl, organizationID)
	if err != nil {
		sendServerError(xl, c, requestID, err)
		return
	}
	model.NewSuccessResponse(roles).WithRequestID(requestID).Send(c)
}

// FindInterviewers 返回该岗位可用的面试官，按要求技能重合数降序。
func (h *RoleApiHandler) FindInterviewers(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	roleID := c.Param("roleId")
	interviewers, err := h.Role.MatchInterviewers(xl, roleID)
	if err != nil {
		sendServerError(xl, c, requestID, err)
		return
	}
	ids := make([]string, 0, len(interviewers))
	for _, interviewer := range interviewers {
		ids = append(ids, interviewer.ID)
	}
	model.NewSuccessResponse(model.MatchedInterviewersResponse{
		InterviewerIds: ids,
		List:           interviewers,
	}).WithRequestID(requestID).Send(c)
}
