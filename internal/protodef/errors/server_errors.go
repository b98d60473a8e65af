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

package errors

import (
	"encoding/json"
	"fmt"
)

// ServerError 服务端内部错误与非正常返回结果定义
type ServerError struct {
	Code    int    `json:"code"`
	Summary string `json:"summary"`
}

func (e *ServerError) Error() string {
	buf, _ := json.Marshal(e)
	return string(buf)
}

// 各种服务端内部错误的错误码定义。错误码为5位数字。
const (
	// 1开头表示服务端内部，或数据库访问相关的错误。
	ServerErrorUserNotLoggedin       = 10001
	ServerErrorUserNoPermission      = 10003
	ServerErrorOrganizationNotFound  = 10004
	ServerErrorInterviewerNotFound   = 10005
	ServerErrorIntervieweeNotFound   = 10006
	ServerErrorRoleNotFound          = 10007
	ServerErrorInterviewNotFound     = 10008
	ServerErrorSkillNotFound         = 10009
	ServerErrorDuplicateKey          = 10010
	ServerErrorInvalidTransition     = 10011
	ServerErrorJoinWindowClosed      = 10012
	ServerErrorValidation            = 10013
	ServerErrorMongoOpFail           = 11000
)

// NewServerErrorInvalidTransition 非法的面试状态流转，summary中注明尝试的边。
func NewServerErrorInvalidTransition(op string, statusName string) *ServerError {
	return &ServerError{
		Code:    ServerErrorInvalidTransition,
		Summary: fmt.Sprintf("cannot %s interview in status %s", op, statusName),
	}
}

// NewServerErrorJoinWindowClosed 加入时间不在允许窗口内。
func NewServerErrorJoinWindowClosed(summary string) *ServerError {
	return &ServerError{
		Code:    ServerErrorJoinWindowClosed,
		Summary: summary,
	}
}

// NewServerErrorValidation 参数校验失败，summary为具体字段错误。
func NewServerErrorValidation(summary string) *ServerError {
	return &ServerError{
		Code:    ServerErrorValidation,
		Summary: summary,
	}
}

// IsCode 判断err是否为指定错误码的ServerError。
func IsCode(err error, code int) bool {
	serverErr, ok := err.(*ServerError)
	return ok && serverErr.Code == code
}
