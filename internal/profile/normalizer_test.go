package profile

import "testing"

func TestNormalizeKey(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple phrase", "Favorite Color", "favorite_color"},
		{"mixed case", "FaVoRiTe CoLoR", "favorite_color"},
		{"surrounding whitespace", "  nickname  ", "nickname"},
		{"interior quotes removed", `zhen's "nickname"`, "zhens_nickname"},
		{"punctuation to space", "birthday (month/day)", "birthday_month_day"},
		{"runs of whitespace", "favorite \t  color", "favorite_color"},
		{"collapsed underscores", "a -- b", "a_b"},
		{"trimmed underscores", "!important!", "important"},
		{"already normalized", "favorite_color", "favorite_color"},
		{"only punctuation", "!!! ???", ""},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		got := NormalizeKey(tc.in)
		if got != tc.want {
			t.Errorf("%s: NormalizeKey(%q) = %q, want %q", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestNormalizeKeyIdempotent(t *testing.T) {
	inputs := []string{"Favorite Color!", "  zhen's  dog  ", "a--b--c", "plain"}
	for _, in := range inputs {
		once := NormalizeKey(in)
		twice := NormalizeKey(once)
		if once != twice {
			t.Errorf("NormalizeKey not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}
