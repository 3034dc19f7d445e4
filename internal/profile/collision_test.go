package profile

import (
	"strings"
	"testing"
)

func takenSet(keys ...string) func(string) bool {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return func(k string) bool { return set[k] }
}

func TestResolveCollisionFreeKey(t *testing.T) {
	got := ResolveCollision("nickname", takenSet())
	if got != "nickname" {
		t.Errorf("expected free key unchanged, got %q", got)
	}
}

func TestResolveCollisionNumberedVariants(t *testing.T) {
	got := ResolveCollision("nickname", takenSet("nickname"))
	if got != "nickname_2" {
		t.Errorf("expected nickname_2, got %q", got)
	}

	got = ResolveCollision("nickname", takenSet("nickname", "nickname_2", "nickname_3"))
	if got != "nickname_4" {
		t.Errorf("expected nickname_4, got %q", got)
	}
}

func TestResolveCollisionTimestampFallback(t *testing.T) {
	taken := []string{"nickname"}
	for i := 2; i < 10; i++ {
		taken = append(taken, "nickname_"+string(rune('0'+i)))
	}

	got := ResolveCollision("nickname", takenSet(taken...))
	if !strings.HasPrefix(got, "nickname_") {
		t.Fatalf("expected fallback with nickname_ prefix, got %q", got)
	}
	// Fallback suffix is MMDD_HHMM, 9 characters.
	suffix := strings.TrimPrefix(got, "nickname_")
	if len(suffix) != 9 {
		t.Errorf("expected 9-char timestamp suffix, got %q", suffix)
	}
}
