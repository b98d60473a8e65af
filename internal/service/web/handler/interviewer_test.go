package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/qiniu/x/xlog"

	errors2 "github.com/solutions/hire-cube/internal/protodef/errors"
	"github.com/solutions/hire-cube/internal/protodef/model"
)

// fakeSkillService 只认词表里登记过的技能ID。
type fakeSkillService struct {
	known map[string]bool
}

func (f *fakeSkillService) GetSkillByID(xl *xlog.Logger, id string) (*model.SkillDo, error) {
	if f.known[id] {
		return &model.SkillDo{ID: id, Name: id}, nil
	}
	return nil, &errors2.ServerError{Code: errors2.ServerErrorSkillNotFound}
}

func doUpsertInterviewer(t *testing.T, h *InterviewerApiHandler, body string) *model.Response {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodPost, "/v1/interviewers", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(model.XLogKey, xlog.New("interviewer-test"))
	c.Set(model.UserIDContextKey, "admin-1")
	c.Set(model.UserRoleContextKey, model.ActorRoleAdmin)

	h.UpsertInterviewer(c)

	resp := &model.Response{}
	if err := json.Unmarshal(recorder.Body.Bytes(), resp); err != nil {
		t.Fatalf("failed to unmarshal response body: %v", err)
	}
	return resp
}

func TestUpsertInterviewerRejectsUnknownSkill(t *testing.T) {
	// 特长引用词表之外的技能必须在落库前被拦下，否则匹配会悄悄漏掉这个人。
	h := &InterviewerApiHandler{
		Skill: &fakeSkillService{known: map[string]bool{"skill-go": true}},
	}
	resp := doUpsertInterviewer(t, h, `{
		"name": "Li Lei",
		"email": "lilei@x.com",
		"organizationId": "org-1",
		"skills": ["skill-go", "skill-tyop"]
	}`)
	if resp.Code != model.ResponseErrorNotFound {
		t.Fatalf("expected code %d for unknown skill, got %d message %s", model.ResponseErrorNotFound, resp.Code, resp.Message)
	}
}

func TestUpsertInterviewerRequiresAdmin(t *testing.T) {
	h := &InterviewerApiHandler{}
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodPost, "/v1/interviewers", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(model.XLogKey, xlog.New("interviewer-test"))
	c.Set(model.UserIDContextKey, "user-1")
	c.Set(model.UserRoleContextKey, model.ActorRoleInterviewer)

	h.UpsertInterviewer(c)

	resp := &model.Response{}
	if err := json.Unmarshal(recorder.Body.Bytes(), resp); err != nil {
		t.Fatalf("failed to unmarshal response body: %v", err)
	}
	if resp.Code != model.ResponseErrorUnauthorized {
		t.Fatalf("expected code %d, got %d", model.ResponseErrorUnauthorized, resp.Code)
	}
}
