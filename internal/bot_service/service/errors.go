package service

import "errors"

var (
	// errEmptyQuestion rejects blank persona questions before any LLM call.
	errEmptyQuestion = errors.New("question must not be empty")
	// errAskDisabled is returned when the service runs without an LLM-backed
	// representation adapter.
	errAskDisabled = errors.New("persona answering is not enabled")
)

// IsUserError reports whether err is the caller's fault rather than an
// internal failure, so handlers can pick the right HTTP status.
func IsUserError(err error) bool {
	return errors.Is(err, errEmptyQuestion)
}
