package utils

import (
	"testing"
)

func TestNormalizeEmail(t *testing.T) {
	cases := map[string]string{
		"Jane@X.com":      "jane@x.com",
		" jane@x.com ":    "jane@x.com",
		"JANE@X.COM":      "jane@x.com",
		"jane.doe@x.com":  "jane.doe@x.com",
		"":                "",
	}
	for in, want := range cases {
		if got := NormalizeEmail(in); got != want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewReqID(t *testing.T) {
	id := NewReqID()
	if len(id) != 12 {
		t.Errorf("NewReqID length = %d, want 12", len(id))
	}
	for _, r := range id {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'z')) {
			t.Errorf("NewReqID contains unexpected rune %q", r)
		}
	}
}

func TestNewID(t *testing.T) {
	if NewID() == NewID() {
		t.Error("NewID returned the same value twice")
	}
}
