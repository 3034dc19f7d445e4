package profile

import (
	"testing"

	"github.com/MorningZephyr/zhen-bot/internal/models"
)

func profileWithFacts(facts map[string]models.FactRecord) *models.Profile {
	p := models.NewProfile()
	for k, v := range facts {
		p.Facts[k] = v
		p.Keys = append(p.Keys, k)
	}
	return p
}

func TestSearchEmptyProfile(t *testing.T) {
	result := Search(models.NewProfile(), "anything")
	if result.Status != models.StatusEmpty {
		t.Errorf("expected status empty, got %s", result.Status)
	}

	result = Search(nil, "anything")
	if result.Status != models.StatusEmpty {
		t.Errorf("expected status empty for nil profile, got %s", result.Status)
	}
}

func TestSearchMatchesKeyValueAndSource(t *testing.T) {
	p := profileWithFacts(map[string]models.FactRecord{
		"favorite_color": {Value: "blue", SourceStatement: "My favorite color is blue"},
		"dog_name":       {Value: "Rex", SourceStatement: "My dog is called Rex"},
	})

	// Match on key.
	result := Search(p, "color")
	if result.Status != models.StatusFound {
		t.Fatalf("expected found, got %s", result.Status)
	}
	if _, ok := result.Matches["favorite_color"]; !ok {
		t.Error("expected favorite_color in matches")
	}
	if _, ok := result.Matches["dog_name"]; ok {
		t.Error("dog_name should not match query 'color'")
	}

	// Match on value.
	result = Search(p, "rex")
	if _, ok := result.Matches["dog_name"]; !ok {
		t.Error("expected dog_name to match on value")
	}

	// Match on source statement.
	result = Search(p, "called")
	if _, ok := result.Matches["dog_name"]; !ok {
		t.Error("expected dog_name to match on source statement")
	}
}

func TestSearchTokenFallback(t *testing.T) {
	p := profileWithFacts(map[string]models.FactRecord{
		"favorite_color": {Value: "blue", SourceStatement: "My favorite color is blue"},
	})

	// The full query is absent, but the token "blue" matches.
	result := Search(p, "blue banana")
	if result.Status != models.StatusFound {
		t.Fatalf("expected found via token match, got %s", result.Status)
	}
}

func TestSearchNotFound(t *testing.T) {
	p := profileWithFacts(map[string]models.FactRecord{
		"favorite_color": {Value: "blue", SourceStatement: "My favorite color is blue"},
	})

	result := Search(p, "banana")
	if result.Status != models.StatusNotFound {
		t.Fatalf("expected not_found, got %s", result.Status)
	}
	if result.Message != "No facts found matching 'banana'." {
		t.Errorf("unexpected message: %q", result.Message)
	}
}

func TestSearchMessageCountsMatches(t *testing.T) {
	p := profileWithFacts(map[string]models.FactRecord{
		"favorite_color": {Value: "blue", SourceStatement: "My favorite color is blue"},
		"car_color":      {Value: "blue", SourceStatement: "My car is blue"},
	})

	result := Search(p, "blue")
	if len(result.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(result.Matches))
	}
	if result.Message != "Found 2 facts matching 'blue'." {
		t.Errorf("unexpected message: %q", result.Message)
	}
}
