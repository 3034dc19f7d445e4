package profile

import (
	"fmt"
	"strings"

	"github.com/MorningZephyr/zhen-bot/internal/models"
)

// Search runs a keyword query over the profile's fact map. A fact matches if
// the whole query, or any whitespace-delimited token of it, appears
// case-insensitively in "{key} {value} {source_statement}". Membership only,
// no relevance scoring, so retrieval stays auditable.
func Search(p *models.Profile, query string) *models.SearchResult {
	query = strings.ToLower(strings.TrimSpace(query))

	if p == nil || len(p.Facts) == 0 {
		return &models.SearchResult{
			Status:  models.StatusEmpty,
			Message: "No facts stored to search through.",
			Matches: map[string]models.SearchMatch{},
			Query:   query,
		}
	}

	tokens := strings.Fields(query)
	matches := make(map[string]models.SearchMatch)

	for key, record := range p.Facts {
		searchable := strings.ToLower(key + " " + record.Value + " " + record.SourceStatement)
		if matchesQuery(searchable, query, tokens) {
			matches[key] = models.SearchMatch{
				Value:      record.Value,
				Confidence: record.Confidence,
				Source:     record.SourceStatement,
			}
		}
	}

	if len(matches) == 0 {
		return &models.SearchResult{
			Status:  models.StatusNotFound,
			Message: fmt.Sprintf("No facts found matching '%s'.", query),
			Matches: map[string]models.SearchMatch{},
			Query:   query,
		}
	}

	return &models.SearchResult{
		Status:  models.StatusFound,
		Message: fmt.Sprintf("Found %d facts matching '%s'.", len(matches), query),
		Matches: matches,
		Query:   query,
	}
}

func matchesQuery(searchable, query string, tokens []string) bool {
	if strings.Contains(searchable, query) {
		return true
	}
	for _, token := range tokens {
		if strings.Contains(searchable, token) {
			return true
		}
	}
	return false
}
