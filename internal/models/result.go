package models

// Status enumerates every outcome the engine reports to callers. Failure paths
// are statuses, not panics: only storage faults travel as Go errors.
type Status string

const (
	StatusLearned          Status = "learned"
	StatusUpdated          Status = "updated"
	StatusNotFactual       Status = "not_factual"
	StatusNoFacts          Status = "no_facts"
	StatusValidationFailed Status = "validation_failed"
	StatusUnauthorized     Status = "unauthorized"
	StatusEmpty            Status = "empty"
	StatusFound            Status = "found"
	StatusNotFound         Status = "not_found"
	StatusError            Status = "error"
)

// CandidateFact is one key/value pair proposed by the extraction collaborator
// before normalization, collision handling and validation.
type CandidateFact struct {
	Key        string     `json:"key"`
	Value      string     `json:"value"`
	Confidence Confidence `json:"confidence"`
}

// ExtractionResult is the typed outcome of one extraction call. A statement
// yielding no facts is a normal outcome, not an error; collaborator failures
// fold into IsFactual=false with a diagnostic Reasoning string.
type ExtractionResult struct {
	Facts     []CandidateFact `json:"facts"`
	IsFactual bool            `json:"is_factual"`
	Reasoning string          `json:"reasoning"`
}

// LearnResult aggregates one learn batch.
type LearnResult struct {
	Status    Status            `json:"status"`
	Message   string            `json:"message"`
	Extracted map[string]string `json:"extracted,omitempty"`
	Reasoning string            `json:"reasoning,omitempty"`
}

// FactSummary is the per-fact view returned by list operations.
type FactSummary struct {
	Value      string     `json:"value"`
	Confidence Confidence `json:"confidence"`
	Learned    string     `json:"learned"`
}

// ProfileSummary is the full read-only view of a profile. Owners and guests
// see the same content; only write access differs.
type ProfileSummary struct {
	Status    Status                 `json:"status"`
	Message   string                 `json:"message"`
	Facts     map[string]FactSummary `json:"facts"`
	FactCount int                    `json:"fact_count"`
}

// SearchMatch is one fact matched by a search query.
type SearchMatch struct {
	Value      string     `json:"value"`
	Confidence Confidence `json:"confidence"`
	Source     string     `json:"source"`
}

// SearchResult holds every fact whose key, value or source statement matched
// the query. Membership only, no ranking.
type SearchResult struct {
	Status  Status                 `json:"status"`
	Message string                 `json:"message"`
	Matches map[string]SearchMatch `json:"matches"`
	Query   string                 `json:"query,omitempty"`
}
