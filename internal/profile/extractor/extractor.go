package extractor

import (
	"context"

	"github.com/MorningZephyr/zhen-bot/internal/models"
)

// Extractor turns a raw statement into zero or more candidate facts. The
// result is always non-nil: collaborator failures and unparsable responses
// fold into IsFactual=false with a diagnostic reasoning string, they never
// propagate past this boundary. A statement that yields no facts is a normal
// outcome, not an error.
type Extractor interface {
	Extract(ctx context.Context, statement string) *models.ExtractionResult
}
