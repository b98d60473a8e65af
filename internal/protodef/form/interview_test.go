package form

import (
	"testing"
	"time"
)

func validCreateForm() *InterviewCreateForm {
	return &InterviewCreateForm{
		CandidateName:   "Jane Garcia",
		CandidateEmail:  "jane@x.com",
		RoleApplied:     "Backend Engineer",
		InterviewerID:   "interviewer-1",
		ScheduledAt:     time.Now().Add(48 * time.Hour).Unix(),
		DurationMinutes: 60,
		Format:          "video",
	}
}

func TestInterviewCreateFormValidate(t *testing.T) {
	if err := validCreateForm().Validate(); err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*InterviewCreateForm)
	}{
		{"missing candidate name", func(f *InterviewCreateForm) { f.CandidateName = "" }},
		{"candidate name too short", func(f *InterviewCreateForm) { f.CandidateName = "J" }},
		{"bad email", func(f *InterviewCreateForm) { f.CandidateEmail = "not-an-email" }},
		{"missing role", func(f *InterviewCreateForm) { f.RoleApplied = "" }},
		{"missing interviewer", func(f *InterviewCreateForm) { f.InterviewerID = "" }},
		{"past date", func(f *InterviewCreateForm) { f.ScheduledAt = time.Now().Add(-48 * time.Hour).Unix() }},
		{"non-positive duration", func(f *InterviewCreateForm) { f.DurationMinutes = -30 }},
		{"unknown format", func(f *InterviewCreateForm) { f.Format = "hologram" }},
	}
	for _, c := range cases {
		f := validCreateForm()
		c.mutate(f)
		if err := f.Validate(); err == nil {
			t.Errorf("%s: expected validation error, got nil", c.name)
		}
	}
}

func TestScheduledDateNotPastSameDay(t *testing.T) {
	// 当天早些时候的时间点仍然允许，只校验日期。
	y, m, d := time.Now().Date()
	earlierToday := time.Date(y, m, d, 0, 0, 1, 0, time.Local).Unix()
	if err := ScheduledDateNotPast(earlierToday); err != nil {
		t.Errorf("same-day time rejected: %v", err)
	}
	yesterday := time.Now().Add(-24 * time.Hour).Unix()
	if err := ScheduledDateNotPast(yesterday); err == nil {
		t.Error("yesterday accepted, want error")
	}
}

func TestFeedbackFormValidate(t *testing.T) {
	for rating, wantErr := range map[int]bool{0: true, 1: false, 5: false, 6: true} {
		f := &FeedbackForm{Rating: rating, Comments: "solid"}
		err := f.Validate()
		if (err != nil) != wantErr {
			t.Errorf("rating %d: err = %v, wantErr %v", rating, err, wantErr)
		}
	}
}

func TestInterviewListFormValidate(t *testing.T) {
	ok := &InterviewListForm{Status: "scheduled", Search: "garcia"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid list form rejected: %v", err)
	}
	bad := &InterviewListForm{Status: "pending"}
	if err := bad.Validate(); err == nil {
		t.Error("unknown status accepted")
	}
}
