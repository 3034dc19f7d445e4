package profile

import (
	"fmt"

	"github.com/MorningZephyr/zhen-bot/internal/models"
)

// Gate decides, per caller identity, whether write operations are allowed.
// Only the profile owner may write; reads are open to everyone.
type Gate struct{}

// CanWrite reports whether the caller may add or update facts.
func (Gate) CanWrite(ctx models.CallerContext) bool {
	return ctx.IsOwner()
}

// CanRead always returns true. Owners and guests see the same stored facts.
func (Gate) CanRead(models.CallerContext) bool {
	return true
}

// UnauthorizedMessage explains a rejected write, naming the owner.
func (Gate) UnauthorizedMessage(ctx models.CallerContext) string {
	return fmt.Sprintf("I can only learn about %s when talking to %s directly. You are logged in as '%s'.",
		ctx.OwnerID, ctx.OwnerID, ctx.CallerID)
}
