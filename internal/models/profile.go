package models

// Confidence grades how certain the extraction collaborator was about a fact.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// FactRecord is one stored fact about the profile owner, with provenance.
type FactRecord struct {
	Value           string     `json:"value" bson:"value"`
	Confidence      Confidence `json:"confidence" bson:"confidence"`
	Timestamp       string     `json:"timestamp" bson:"timestamp"`
	SourceStatement string     `json:"source_statement" bson:"source_statement"`
	OriginalKey     string     `json:"original_key" bson:"original_key"`
}

// AuditEntry records one successful write to the profile. The audit trail is
// append-only: entries are never pruned or reordered.
type AuditEntry struct {
	Action    string `json:"action" bson:"action"`
	Key       string `json:"key" bson:"key"`
	Value     string `json:"value" bson:"value"`
	Timestamp string `json:"timestamp" bson:"timestamp"`
	Source    string `json:"source" bson:"source"`
}

// AuditActionLearned is the only action the engine currently writes.
const AuditActionLearned = "learned"

// Profile is the complete knowledge profile of one represented owner.
// Keys mirrors the key set of Facts and preserves insertion order.
type Profile struct {
	Facts map[string]FactRecord `json:"facts" bson:"facts"`
	Audit []AuditEntry          `json:"audit" bson:"audit"`
	Keys  []string              `json:"keys" bson:"keys"`
}

// NewProfile returns an empty profile ready to accept facts.
func NewProfile() *Profile {
	return &Profile{
		Facts: make(map[string]FactRecord),
		Audit: []AuditEntry{},
		Keys:  []string{},
	}
}

// Clone returns a deep copy of the profile. The engine mutates a clone and
// commits it with a single storage put, so readers never observe a torn batch.
func (p *Profile) Clone() *Profile {
	c := &Profile{
		Facts: make(map[string]FactRecord, len(p.Facts)),
		Audit: make([]AuditEntry, len(p.Audit)),
		Keys:  make([]string, len(p.Keys)),
	}
	for k, v := range p.Facts {
		c.Facts[k] = v
	}
	copy(c.Audit, p.Audit)
	copy(c.Keys, p.Keys)
	return c
}

// HasKey reports whether the profile already stores a fact under key.
func (p *Profile) HasKey(key string) bool {
	_, ok := p.Facts[key]
	return ok
}

// CallerContext identifies who is talking to the bot for a single operation.
// It is derived fresh per request and never stored in the profile, since the
// same profile is addressed interleaved by owner and non-owner callers.
type CallerContext struct {
	CallerID string `json:"caller_id"`
	OwnerID  string `json:"owner_id"`
}

// IsOwner reports whether the caller is the profile owner.
func (c CallerContext) IsOwner() bool {
	return c.CallerID == c.OwnerID
}
