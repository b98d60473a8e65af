package utils

import (
	"math/rand"
	"strings"

	"github.com/google/uuid"
)

const AlphaNum = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewID 生成实体ID，全局唯一。
func NewID() string {
	return uuid.NewString()
}

// NewReqID utils func: for 12-digit random request id generation
func NewReqID() string {
	idLength := 12
	stringBuilder := strings.Builder{}
	for i := 0; i < idLength; i++ {
		index := rand.Intn(36)
		stringBuilder.WriteRune(rune(AlphaNum[index]))
	}
	return stringBuilder.String()
}

// NormalizeEmail 邮箱归一化，candidate/interviewer去重均以此为准。
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
