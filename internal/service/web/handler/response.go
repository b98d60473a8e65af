package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qiniu/x/xlog"

	"github.com/solutions/hire-cube/internal/protodef/errors"
	"github.com/solutions/hire-cube/internal/protodef/model"
	"github.com/solutions/hire-cube/internal/service/web/middleware"
)

// sendServerError 把服务层的ServerError翻译成对外返回体。识别不了的
// 一律按内部错误返回，不把底层细节漏给调用方。
func sendServerError(xl *xlog.Logger, c *gin.Context, requestID string, err error) {
	var responseErr *model.ResponseError
	serverErr, ok := err.(*errors.ServerError)
	if !ok {
		xl.Errorf("unexpected service error %v", err)
		responseErr = model.NewResponseErrorInternal()
	} else {
		switch serverErr.Code {
		case errors.ServerErrorOrganizationNotFound:
			responseErr = model.NewResponseErrorNoSuchOrg()
		case errors.ServerErrorInterviewerNotFound:
			responseErr = model.NewResponseErrorNoSuchInterviewer()
		case errors.ServerErrorIntervieweeNotFound:
			responseErr = model.NewResponseErrorNoSuchInterviewee()
		case errors.ServerErrorRoleNotFound:
			responseErr = model.NewResponseErrorNoSuchRole()
		case errors.ServerErrorInterviewNotFound:
			responseErr = model.NewResponseErrorNoSuchInterview()
		case errors.ServerErrorSkillNotFound:
			responseErr = model.NewResponseErrorNotFound()
		case errors.ServerErrorDuplicateKey:
			responseErr = model.NewResponseErrorConflict(serverErr.Summary)
		case errors.ServerErrorInvalidTransition:
			responseErr = model.NewResponseErrorInvalidTransition(serverErr.Summary)
		case errors.ServerErrorJoinWindowClosed:
			responseErr = model.NewResponseErrorJoinWindow(serverErr.Summary)
		case errors.ServerErrorValidation:
			responseErr = model.NewResponseErrorValidation(serverErr)
		case errors.ServerErrorUserNoPermission:
			responseErr = model.NewResponseErrorUnauthorized()
		case errors.ServerErrorUserNotLoggedin:
			responseErr = model.NewResponseErrorNotLoggedIn()
		default:
			xl.Errorf("unmapped server error code %d", serverErr.Code)
			responseErr = model.NewResponseErrorInternal()
		}
	}
	resp := model.NewFailResponse(*responseErr).WithRequestID(requestID)
	c.JSON(http.StatusOK, resp)
}

// requireAdmin 管理操作的角色闸门。返回false时已写好返回体。
func requireAdmin(xl *xlog.Logger, c *gin.Context, requestID string) bool {
	if middleware.ActorRole(c) == model.ActorRoleAdmin {
		return true
	}
	xl.Infof("%s %s: rejected, admin role required", c.Request.Method, c.Request.URL.Path)
	responseErr := model.NewResponseErrorUnauthorized()
	model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
	return false
}
