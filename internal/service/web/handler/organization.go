package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/qiniu/x/xlog"

	"github.com/solutions/hire-cube/internal/common/utils"
	"github.com/solutions/hire-cube/internal/protodef/form"
	"github.com/solutions/hire-cube/internal/protodef/model"
	"github.com/solutions/hire-cube/internal/service/db"
)

// OrganizationApiHandler 组织与技能词表的管理接口。
type OrganizationApiHandler struct {
	Organization *db.OrganizationService
	Skill        *db.SkillService
}

func NewOrganizationApiHandler(conf utils.Config) *OrganizationApiHandler {
	o := new(OrganizationApiHandler)
	var err error
	o.Organization, err = db.NewOrganizationService(*conf.Mongo, nil)
	if err != nil {
		panic(err)
	}
	o.Skill, err = db.NewSkillService(*conf.Mongo, nil)
	if err != nil {
		panic(err)
	}
	return o
}

func (h *OrganizationApiHandler) CreateOrganization(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	if !requireAdmin(xl, c, requestID) {
		return
	}
	args := &form.OrganizationCreateForm{}
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
	organization := &model.OrganizationDo{Name: args.Name}
	if err := h.Organization.CreateOrganization(xl, organization); err != nil {
		sendServerError(xl, c, requestID, err)
		return
	}
	xl.Infof("created organization %s", organization.ID)
	model.NewSuccessResponse(organization).WithRequestID(requestID).Send(c)
}

func (h *OrganizationApiHandler) GetOrganization(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	organization, err := h.Organization.GetOrganizationByID(xl, c.Param("organizationId"))
	if err != nil {
		sendServerError(xl, c, requestID, err)
		return
	}
	model.NewSuccessResponse(organization).WithRequestID(requestID).Send(c)
}

func (h *OrganizationApiHandler) ListOrganizations(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	organizations, err := h.Organization.ListOrganizations(xl)
	if err != nil {
		sendServerError(xl, c, requestID, err)
		return
	}
	model.NewSuccessResponse(organizations).WithRequestID(requestID).Send(c)
}

func (h *OrganizationApiHandler) CreateSkill(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	if !requireAdmin(xl, c, requestID) {
		return
	}
	args := &form.SkillCreateForm{}
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
	skill := &model.SkillDo{Name: args.Name}
	if err := h.Skill.CreateSkill(xl, skill); err != nil {
		sendServerError(xl, c, requestID, err)
		return
	}
	model.NewSuccessResponse(skill).WithRequestID(requestID).Send(c)
}

func (h *OrganizationApiHandler) ListSkills(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	skills, err := h.Skill.ListSkills(xl)
	if err != nil {
		sendServerError(xl, c, requestID, err)
		return
	}
	model.NewSuccessResponse(skills).WithRequestID(requestID).Send(c)
}
