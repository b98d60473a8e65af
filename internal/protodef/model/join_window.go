package model

import "time"

// ActorRole 请求方角色，由鉴权中间件注入。
type ActorRole string

const (
	ActorRoleAdmin       ActorRole = "admin"
	ActorRoleInterviewer ActorRole = "interviewer"
	ActorRoleInterviewee ActorRole = "interviewee"
)

const (
	// JoinWindowBefore 开始前多久允许参与者进入。
	JoinWindowBefore = 15 * time.Minute
	// JoinWindowAfter 开始后多久仍允许参与者进入。
	JoinWindowAfter = 60 * time.Minute
)

// CanJoin 判断now时刻role角色能否进入预定在scheduledAt的面试。
// 参与者限定在[scheduledAt-15min, scheduledAt+60min]，边界含。
// 管理员仅作旁观，不受窗口限制。纯函数，不改任何状态。
func CanJoin(role ActorRole, scheduledAt, now time.Time) bool {
	if role == ActorRoleAdmin {
		return true
	}
	if now.Before(scheduledAt.Add(-JoinWindowBefore)) {
		return false
	}
	if now.After(scheduledAt.Add(JoinWindowAfter)) {
		return false
	}
	return true
}
