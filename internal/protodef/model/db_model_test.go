package model

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to InterviewStatusCode
		want     bool
	}{
		{InterviewStatusCodeScheduled, InterviewStatusCodeInProgress, true},
		{InterviewStatusCodeScheduled, InterviewStatusCodeCompleted, true},
		{InterviewStatusCodeScheduled, InterviewStatusCodeCancelled, true},
		{InterviewStatusCodeInProgress, InterviewStatusCodeCompleted, true},
		{InterviewStatusCodeInProgress, InterviewStatusCodeCancelled, true},
		{InterviewStatusCodeInProgress, InterviewStatusCodeScheduled, false},
		// completed/cancelled为终态，任何边都不允许。
		{InterviewStatusCodeCompleted, InterviewStatusCodeInProgress, false},
		{InterviewStatusCodeCompleted, InterviewStatusCodeCancelled, false},
		{InterviewStatusCodeCompleted, InterviewStatusCodeScheduled, false},
		{InterviewStatusCodeCancelled, InterviewStatusCodeInProgress, false},
		{InterviewStatusCodeCancelled, InterviewStatusCodeCompleted, false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v",
				InterviewStatusName(c.from), InterviewStatusName(c.to), got, c.want)
		}
	}
}

func TestParseInterviewStatus(t *testing.T) {
	for _, code := range []InterviewStatusCode{
		InterviewStatusCodeScheduled,
		InterviewStatusCodeInProgress,
		InterviewStatusCodeCompleted,
		InterviewStatusCodeCancelled,
	} {
		name := InterviewStatusName(code)
		parsed, ok := ParseInterviewStatus(name)
		if !ok || parsed != code {
			t.Errorf("ParseInterviewStatus(%q) = %v, %v, want %v, true", name, parsed, ok, code)
		}
	}
	if _, ok := ParseInterviewStatus("pending"); ok {
		t.Error("ParseInterviewStatus accepted unknown status name")
	}
}
