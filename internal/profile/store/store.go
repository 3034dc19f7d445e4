package store

import (
	"context"

	"github.com/MorningZephyr/zhen-bot/internal/models"
)

// SessionStore is the keyed blob storage collaborator backing profiles. One
// blob holds one owner's complete profile, keyed by (application name, owner
// id). Implementations must round-trip every FactRecord and AuditEntry field
// losslessly. Put replaces the whole blob in one operation, which is what
// gives the engine its no-torn-writes guarantee.
type SessionStore interface {
	// Get returns the stored profile, or ok=false when no profile exists yet.
	Get(ctx context.Context, appName, ownerID string) (profile *models.Profile, ok bool, err error)
	// Put stores the profile, overwriting any previous blob.
	Put(ctx context.Context, appName, ownerID string, profile *models.Profile) error
	// ListSessions returns the storage keys held for an owner.
	ListSessions(ctx context.Context, ownerID string) ([]string, error)
}
