package profile

import (
	"fmt"
	"time"
)

// ResolveCollision assigns a storage key for normalizedKey given the keys
// already in use. An unused key is returned unchanged; otherwise numbered
// variants key_2 through key_9 are probed in order, with a timestamp-suffixed
// key as the final fallback. Creating a near-duplicate key is preferred over
// silently overwriting an existing fact.
func ResolveCollision(normalizedKey string, taken func(string) bool) string {
	if !taken(normalizedKey) {
		return normalizedKey
	}

	for i := 2; i < 10; i++ {
		variant := fmt.Sprintf("%s_%d", normalizedKey, i)
		if !taken(variant) {
			return variant
		}
	}

	return fmt.Sprintf("%s_%s", normalizedKey, time.Now().Format("0102_1504"))
}
