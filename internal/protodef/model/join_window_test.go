package model

import (
	"testing"
	"time"
)

func TestCanJoinWindowBoundary(t *testing.T) {
	scheduledAt := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"one second before window opens", time.Date(2025, 1, 1, 9, 44, 59, 0, time.UTC), false},
		{"window opens", time.Date(2025, 1, 1, 9, 45, 0, 0, time.UTC), true},
		{"at scheduled time", scheduledAt, true},
		{"window closes", time.Date(2025, 1, 1, 11, 0, 0, 0, time.UTC), true},
		{"one second after window closes", time.Date(2025, 1, 1, 11, 0, 1, 0, time.UTC), false},
	}
	for _, c := range cases {
		if got := CanJoin(ActorRoleInterviewee, scheduledAt, c.now); got != c.want {
			t.Errorf("%s: CanJoin(interviewee) = %v, want %v", c.name, got, c.want)
		}
		if got := CanJoin(ActorRoleInterviewer, scheduledAt, c.now); got != c.want {
			t.Errorf("%s: CanJoin(interviewer) = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestCanJoinAdminIgnoresWindow(t *testing.T) {
	scheduledAt := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	times := []time.Time{
		time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC),
		scheduledAt,
		time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	for _, now := range times {
		if !CanJoin(ActorRoleAdmin, scheduledAt, now) {
			t.Errorf("CanJoin(admin) at %v = false, want true", now)
		}
	}
}
