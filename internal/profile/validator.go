package profile

import (
	"regexp"
	"strings"
)

const (
	maxKeyLen   = 50
	maxValueLen = 200
)

// invalidPatterns is the denylist applied to the lower-cased concatenation of
// key and value. Credential-like and violent terms are never stored.
var invalidPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(password|secret|private|confidential)\b`),
	regexp.MustCompile(`\b(kill|murder|hate|death)\b`),
	regexp.MustCompile(`^\s*$`),
}

// ValidateFact reports whether a fact is acceptable for storage. This is a
// hard policy boundary: a rejected fact is silently skipped, never an error.
func ValidateFact(key, value string) bool {
	if key == "" || len(key) > maxKeyLen || len(value) > maxValueLen {
		return false
	}

	text := strings.ToLower(key + " " + value)
	for _, pattern := range invalidPatterns {
		if pattern.MatchString(text) {
			return false
		}
	}

	return true
}
