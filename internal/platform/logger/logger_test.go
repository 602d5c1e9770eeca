package logger

import (
	"strings"
	"testing"
)

func TestSanitizeValue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		key  string
		val  interface{}
		want func(got interface{}) bool
	}{
		{"password redacted", "password", "hunter2", func(got interface{}) bool { return got == "[REDACTED]" }},
		{"gemini key redacted", "gemini_api_key", "abc", func(got interface{}) bool { return got == "[REDACTED]" }},
		{"mood note redacted", "note", "rough day", func(got interface{}) bool { return got == "[REDACTED]" }},
		{"chat message redacted", "message", "hello", func(got interface{}) bool { return got == "[REDACTED]" }},
		{"user id hashed", "user_id", "6f1c", func(got interface{}) bool {
			s, ok := got.(string)
			return ok && strings.HasPrefix(s, "hash:") && len(s) == len("hash:")+12
		}},
		{"jwt-shaped value redacted", "value", "eyJhbGciOiJIUzI1.eyJzdWIiOiIxMjM0.sig", func(got interface{}) bool { return got == "[REDACTED]" }},
		{"plain value kept", "status", 200, func(got interface{}) bool { return got == 200 }},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := sanitizeValue(tc.key, tc.val)
			if !tc.want(got) {
				t.Fatalf("sanitizeValue(%q): unexpected=%v", tc.key, got)
			}
		})
	}
}

func TestHashValueIsStable(t *testing.T) {
	a := hashValue("report_1.pdf")
	b := hashValue("report_1.pdf")
	if a != b {
		t.Fatalf("hash: want stable got=%q and %q", a, b)
	}
	if hashValue("") != "" {
		t.Fatalf("hash of empty: want empty")
	}
}
