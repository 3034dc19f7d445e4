package profile

import (
	"regexp"
	"strings"
)

var (
	quoteRe      = regexp.MustCompile(`['"]`)
	punctRe      = regexp.MustCompile(`[^\w\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	underscoreRe = regexp.MustCompile(`_+`)
)

// NormalizeKey turns an arbitrary natural-language phrase into a canonical
// snake_case identifier. It is pure, never fails and idempotent:
// NormalizeKey(NormalizeKey(x)) == NormalizeKey(x) for any x. An input made
// of nothing but punctuation normalizes to "", which the validator rejects.
func NormalizeKey(raw string) string {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = quoteRe.ReplaceAllString(normalized, "")
	normalized = punctRe.ReplaceAllString(normalized, " ")
	normalized = whitespaceRe.ReplaceAllString(normalized, "_")
	normalized = underscoreRe.ReplaceAllString(normalized, "_")
	return strings.Trim(normalized, "_")
}
