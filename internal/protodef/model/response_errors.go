package model

type ResponseError struct {
	// 自定义错误码。
	Code int `json:"code"`
	// 请求ID。
	RequestID string `json:"requestID"`
	// Message
	Message string `json:"message"`
}

const (
	ResponseErrorBadRequest        = 400000
	ResponseErrorValidation        = 400001
	ResponseErrorNotLoggedIn       = 401001
	ResponseErrorBadToken          = 401003
	ResponseErrorUnauthorized      = 401000
	ResponseErrorJoinWindow        = 403001
	ResponseErrorNotFound          = 404000
	ResponseErrorNoSuchInterview   = 404002
	ResponseErrorNoSuchInterviewer = 404005
	ResponseErrorNoSuchInterviewee = 404006
	ResponseErrorNoSuchRole        = 404007
	ResponseErrorNoSuchOrg         = 404008
	ResponseErrorConflict          = 409001
	ResponseErrorInvalidTransition = 409002
	ResponseErrorInternal          = 500000
)

// NewResponseErrorBadRequest 参数错误。
func NewResponseErrorBadRequest() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorBadRequest,
		Message: "参数错误",
	}
}

// NewResponseErrorValidation 表单校验失败，message带上具体字段信息。
func NewResponseErrorValidation(err error) *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorValidation,
		Message: err.Error(),
	}
}

// NewResponseErrorNotLoggedIn 用户未登录。
func NewResponseErrorNotLoggedIn() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorNotLoggedIn,
		Message: "not logged in",
	}
}

// NewResponseErrorBadToken 登录token错误。
func NewResponseErrorBadToken() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorBadToken,
		Message: "bad token",
	}
}

// NewResponseErrorUnauthorized 一般的HTTP Unauthorized 错误。
func NewResponseErrorUnauthorized() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorUnauthorized,
		Message: "unauthorized",
	}
}

// NewResponseErrorJoinWindow 不在允许加入的时间窗口内。
func NewResponseErrorJoinWindow(message string) *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorJoinWindow,
		Message: message,
	}
}

func NewResponseErrorNotFound() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorNotFound,
		Message: "not found",
	}
}

// NewResponseErrorNoSuchInterview 无此面试。
func NewResponseErrorNoSuchInterview() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorNoSuchInterview,
		Message: "no such interview",
	}
}

// NewResponseErrorNoSuchInterviewer 无此面试官。
func NewResponseErrorNoSuchInterviewer() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorNoSuchInterviewer,
		Message: "no such interviewer",
	}
}

// NewResponseErrorNoSuchInterviewee 无此候选人。
func NewResponseErrorNoSuchInterviewee() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorNoSuchInterviewee,
		Message: "no such interviewee",
	}
}

// NewResponseErrorNoSuchRole 无此岗位。
func NewResponseErrorNoSuchRole() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorNoSuchRole,
		Message: "no such role requirement",
	}
}

// NewResponseErrorNoSuchOrg 无此组织。
func NewResponseErrorNoSuchOrg() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorNoSuchOrg,
		Message: "no such organization",
	}
}

// NewResponseErrorConflict 唯一键冲突。
func NewResponseErrorConflict(message string) *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorConflict,
		Message: message,
	}
}

// NewResponseErrorInvalidTransition 非法的状态流转。
func NewResponseErrorInvalidTransition(message string) *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorInvalidTransition,
		Message: message,
	}
}

// NewResponseErrorInternal 其他内部服务错误。
func NewResponseErrorInternal() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorInternal,
		Message: "internal server error",
	}
}
