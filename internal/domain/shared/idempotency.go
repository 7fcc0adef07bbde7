package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers webhook delivery IDs so replayed deliveries do
// not deduct stock twice.
type IdempotencyStore interface {
	// MarkProcessed records a delivery ID with a TTL. It reports true when
	// the ID was newly recorded and false when it was already present.
	MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error)

	// IsProcessed reports whether a delivery ID has been seen.
	IsProcessed(ctx context.Context, eventID string) (bool, error)

	// Close releases the store's resources.
	Close() error
}

// IdempotencyConfig controls duplicate suppression for webhook processing.
type IdempotencyConfig struct {
	// TTL is how long a delivery ID stays recorded. Platforms retry
	// deliveries for at most a day, so the same ID arriving after the TTL
	// is treated as new.
	TTL time.Duration

	// Enabled turns duplicate suppression off entirely when false.
	Enabled bool
}

// DefaultIdempotencyConfig suppresses duplicates for 24 hours.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
