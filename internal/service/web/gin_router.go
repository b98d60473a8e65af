// Copyright 2020 Qiniu Cloud (qiniu.com)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package web

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/qiniu/x/xlog"

	"github.com/solutions/hire-cube/internal/common/utils"
	"github.com/solutions/hire-cube/internal/protodef/model"
	"github.com/solutions/hire-cube/internal/service/web/handler"
	"github.com/solutions/hire-cube/internal/service/web/middleware"
)

// NewRouter 返回gin router，分流API。
func NewRouter(config *utils.Config) (*gin.Engine, error) {
	// 1. 初始化GIN
	router := gin.New()
	router.Use(gin.Recovery())
	// 1.1. 全局CORS配置
	router.Use(corsMiddleware())

	// 2. 声明Handler
	interviewApiHandler := handler.NewInterviewApiHandler(*config)
	roleApiHandler := handler.NewRoleApiHandler(*config)
	organizationApiHandler := handler.NewOrganizationApiHandler(*config)
	interviewerApiHandler := handler.NewInterviewerApiHandler(*config)

	middleware.InitMiddleware(*config)

	// 3. 配置V1路径
	v1 := router.Group("/v1", addRequestID, middleware.FetchPageInfo)

	baseAuth := v1.Group("", middleware.Authenticate)
	{
		// 3.1 排定面试
		baseAuth.POST("interviews", interviewApiHandler.CreateInterview)
		baseAuth.POST("interviews/", interviewApiHandler.CreateInterview)
		// 3.2 面试列表/报表，过滤参数全部可选
		baseAuth.GET("interviews", interviewApiHandler.ListInterviews)
		baseAuth.GET("interviews/", interviewApiHandler.ListInterviews)
		// 3.3 结束面试
		baseAuth.PATCH("interviews/:interviewId/complete", interviewApiHandler.CompleteInterview)
		// 3.4 取消面试
		baseAuth.PATCH("interviews/:interviewId/cancel", interviewApiHandler.CancelInterview)
		// 3.5 删除面试，仅管理员
		baseAuth.DELETE("interviews/:interviewId", interviewApiHandler.DeleteInterview)
		// 3.6 提交/查看反馈
		baseAuth.POST("interviews/:interviewId/feedback", interviewApiHandler.SubmitFeedback)
		baseAuth.GET("interviews/:interviewId/feedback", interviewApiHandler.ListFeedback)

		// 3.7 岗位与面试官匹配
		baseAuth.POST("roles", roleApiHandler.CreateRole)
		baseAuth.GET("roles", roleApiHandler.ListRoles)
		baseAuth.GET("roles/:roleId/interviewers", roleApiHandler.FindInterviewers)

		// 3.8 组织与技能词表管理
		baseAuth.POST("organizations", organizationApiHandler.CreateOrganization)
		baseAuth.GET("organizations", organizationApiHandler.ListOrganizations)
		baseAuth.GET("organizations/:organizationId", organizationApiHandler.GetOrganization)
		baseAuth.POST("skills", organizationApiHandler.CreateSkill)
		baseAuth.GET("skills", organizationApiHandler.ListSkills)

		// 3.9 面试官管理
		baseAuth.POST("interviewers", interviewerApiHandler.UpsertInterviewer)
		baseAuth.GET("interviewers", interviewerApiHandler.ListInterviewers)
		baseAuth.GET("interviewers/:interviewerId", interviewerApiHandler.GetInterviewer)
		baseAuth.DELETE("interviewers/:interviewerId", interviewerApiHandler.DeleteInterviewer)
	}

	// 无状态登录：进入面试的链接带interviewToken，候选人没有登录态。
	stateLessAuth := v1.Group("", middleware.AfapAuthenticate)
	{
		// 3.10 进入面试
		stateLessAuth.PATCH("interviews/:interviewId/join", interviewApiHandler.JoinInterview)
		// 3.11 面试详情
		stateLessAuth.GET("interviews/:interviewId", interviewApiHandler.GetInterview)
	}

	router.NoRoute(addRequestID, returnNotFound)
	router.RedirectTrailingSlash = false

	return router, nil
}

func addRequestID(c *gin.Context) {
	requestID := ""
	if requestID = c.Request.Header.Get(model.RequestIDHeader); requestID == "" {
		requestID = utils.NewReqID()
		c.Request.Header.Set(model.RequestIDHeader, requestID)
	}
	xl := xlog.New(requestID)
	xl.Debugf("request: %s %s", c.Request.Method, c.Request.URL.Path)
	c.Set(model.XLogKey, xl)
	c.Set(model.RequestStartKey, time.Now())
}

func returnNotFound(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	xl.Debugf("%s %s: not found", c.Request.Method, c.Request.URL.Path)
	responseErr := model.NewResponseErrorNotFound()
	resp := model.NewFailResponse(*responseErr)
	c.JSON(http.StatusOK, resp)
}

func corsMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodHead, http.MethodOptions},
		AllowHeaders:    []string{"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With", model.RequestIDHeader},
		MaxAge:          12 * time.Hour,
	})
}
