package profile

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/MorningZephyr/zhen-bot/internal/models"
	"github.com/MorningZephyr/zhen-bot/internal/profile/extractor"
	"github.com/MorningZephyr/zhen-bot/internal/profile/store"
	"github.com/MorningZephyr/zhen-bot/pkg/logger"
)

// AuditSink receives copies of newly written audit entries. The in-profile
// audit log is the source of truth; sink failures must not fail the write.
type AuditSink interface {
	Publish(ctx context.Context, ownerID string, entries []models.AuditEntry) error
}

// Engine is the only writer of knowledge profiles. It normalizes, validates,
// deduplicates and audits every fact, enforces write permission by caller
// identity, and serves exact and keyword retrieval.
//
// Writes to one profile are serialized by a per-owner mutex; distinct owners
// are fully independent. A learn batch is staged on a profile clone and
// committed with a single storage Put, so readers observe either the whole
// batch or none of it.
type Engine struct {
	store     store.SessionStore
	extractor extractor.Extractor
	gate      Gate
	appName   string
	logger    *logger.Logger
	audit     AuditSink

	mu     sync.Mutex
	owners map[string]*sync.Mutex
}

// NewEngine creates an Engine. audit may be nil, in which case audit entries
// live only inside the profile blob.
func NewEngine(sessions store.SessionStore, ex extractor.Extractor, appName string, log *logger.Logger, audit AuditSink) *Engine {
	return &Engine{
		store:     sessions,
		extractor: ex,
		appName:   appName,
		logger:    log,
		audit:     audit,
		owners:    make(map[string]*sync.Mutex),
	}
}

func (e *Engine) ownerLock(ownerID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	l, ok := e.owners[ownerID]
	if !ok {
		l = &sync.Mutex{}
		e.owners[ownerID] = l
	}
	return l
}

// Learn extracts facts from a statement and stores them in the caller's
// owner profile. Every failure short of a storage fault is reported as a
// typed status; storage faults are the only errors returned.
func (e *Engine) Learn(ctx context.Context, caller models.CallerContext, statement string) (*models.LearnResult, error) {
	statement = strings.TrimSpace(statement)
	if statement == "" {
		return &models.LearnResult{
			Status:  models.StatusError,
			Message: "Please provide something to learn.",
		}, nil
	}

	if !e.gate.CanWrite(caller) {
		e.logger.WithPayload(map[string]interface{}{
			"owner_id":  caller.OwnerID,
			"caller_id": caller.CallerID,
		}).Warn("rejected write from non-owner")
		return &models.LearnResult{
			Status:  models.StatusUnauthorized,
			Message: e.gate.UnauthorizedMessage(caller),
		}, nil
	}

	lock := e.ownerLock(caller.OwnerID)
	lock.Lock()
	defer lock.Unlock()

	current, ok, err := e.store.Get(ctx, e.appName, caller.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("load profile for %s: %w", caller.OwnerID, err)
	}
	if !ok {
		current = models.NewProfile()
	}

	extraction := e.extractor.Extract(ctx, statement)
	if !extraction.IsFactual {
		return &models.LearnResult{
			Status:    models.StatusNotFactual,
			Message:   strings.TrimSpace("Statement doesn't contain extractable facts. " + extraction.Reasoning),
			Reasoning: extraction.Reasoning,
		}, nil
	}
	if len(extraction.Facts) == 0 {
		return &models.LearnResult{
			Status:    models.StatusNoFacts,
			Message:   "No facts could be extracted from this statement.",
			Reasoning: extraction.Reasoning,
		}, nil
	}

	// Stage the whole batch on a clone. Collision checks run against the
	// staged fact map, so two facts extracted from one statement can never
	// collide with each other either.
	staged := current.Clone()
	stored := make(map[string]string)
	var newEntries []models.AuditEntry
	timestamp := time.Now().Format(time.RFC3339)

	for _, candidate := range extraction.Facts {
		if candidate.Key == "" || candidate.Value == "" {
			continue
		}

		normalized := NormalizeKey(candidate.Key)
		finalKey := ResolveCollision(normalized, staged.HasKey)
		if !ValidateFact(finalKey, candidate.Value) {
			continue
		}

		confidence := candidate.Confidence
		if confidence == "" {
			confidence = models.ConfidenceMedium
		}

		// Collision resolution guarantees finalKey is new to the staged
		// profile, so the key index append cannot duplicate.
		staged.Facts[finalKey] = models.FactRecord{
			Value:           candidate.Value,
			Confidence:      confidence,
			Timestamp:       timestamp,
			SourceStatement: statement,
			OriginalKey:     candidate.Key,
		}
		staged.Keys = append(staged.Keys, finalKey)

		entry := models.AuditEntry{
			Action:    models.AuditActionLearned,
			Key:       finalKey,
			Value:     candidate.Value,
			Timestamp: timestamp,
			Source:    statement,
		}
		staged.Audit = append(staged.Audit, entry)
		newEntries = append(newEntries, entry)
		stored[finalKey] = candidate.Value
	}

	if len(stored) == 0 {
		return &models.LearnResult{
			Status:  models.StatusValidationFailed,
			Message: "Facts were extracted but failed validation.",
		}, nil
	}

	if err := e.store.Put(ctx, e.appName, caller.OwnerID, staged); err != nil {
		return nil, fmt.Errorf("store profile for %s: %w", caller.OwnerID, err)
	}

	if e.audit != nil {
		if err := e.audit.Publish(ctx, caller.OwnerID, newEntries); err != nil {
			e.logger.WithError(models.ErrorInfo{Message: err.Error(), Type: "audit_publish_error"}).
				Warn("failed to publish audit entries")
		}
	}

	e.logger.WithPayload(map[string]interface{}{
		"owner_id":   caller.OwnerID,
		"fact_count": len(stored),
	}).Info("learned facts")

	return &models.LearnResult{
		Status:    models.StatusLearned,
		Message:   fmt.Sprintf("Successfully learned: %s", summarize(stored)),
		Extracted: stored,
		Reasoning: extraction.Reasoning,
	}, nil
}

// ListFacts returns every stored fact. Reads are caller-agnostic: owners and
// guests see the same content.
func (e *Engine) ListFacts(ctx context.Context, ownerID string) (*models.ProfileSummary, error) {
	current, ok, err := e.store.Get(ctx, e.appName, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load profile for %s: %w", ownerID, err)
	}
	if !ok || len(current.Facts) == 0 {
		return &models.ProfileSummary{
			Status:  models.StatusEmpty,
			Message: "No facts have been learned yet.",
			Facts:   map[string]models.FactSummary{},
		}, nil
	}

	summary := make(map[string]models.FactSummary, len(current.Facts))
	for key, record := range current.Facts {
		summary[key] = models.FactSummary{
			Value:      record.Value,
			Confidence: record.Confidence,
			Learned:    record.Timestamp,
		}
	}

	return &models.ProfileSummary{
		Status:    models.StatusFound,
		Message:   fmt.Sprintf("Found %d facts about the person.", len(summary)),
		Facts:     summary,
		FactCount: len(summary),
	}, nil
}

// SearchFacts runs a keyword query over the owner's profile.
func (e *Engine) SearchFacts(ctx context.Context, ownerID, query string) (*models.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return &models.SearchResult{
			Status:  models.StatusError,
			Message: "Please provide a search query.",
			Matches: map[string]models.SearchMatch{},
		}, nil
	}

	current, ok, err := e.store.Get(ctx, e.appName, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load profile for %s: %w", ownerID, err)
	}
	if !ok {
		current = nil
	}

	return Search(current, query), nil
}

// Snapshot returns a read-only copy of the profile for the representation
// adapter. Absent profiles come back empty, never nil.
func (e *Engine) Snapshot(ctx context.Context, ownerID string) (*models.Profile, error) {
	current, ok, err := e.store.Get(ctx, e.appName, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load profile for %s: %w", ownerID, err)
	}
	if !ok {
		return models.NewProfile(), nil
	}
	return current.Clone(), nil
}

func summarize(stored map[string]string) string {
	keys := make([]string, 0, len(stored))
	for k := range stored {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s='%s'", k, stored[k]))
	}
	return strings.Join(parts, ", ")
}
