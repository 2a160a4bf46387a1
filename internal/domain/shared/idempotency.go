package shared

import (
	"context"
	"time"
)

// IdempotencyStore marks in-flight or completed work keyed by an arbitrary
// string, to prevent duplicate processing. The digest engine uses it to guard
// concurrent summary sends for the same (client, project) pair.
type IdempotencyStore interface {
	// MarkProcessed marks a key as taken with a TTL.
	// Returns true if the key was newly marked, false if it was already held.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks whether a key is currently held
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Release removes a key before its TTL expires
	Release(ctx context.Context, key string) error

	// Close closes the store and releases resources
	Close() error
}

// IdempotencyConfig holds configuration for idempotency handling
type IdempotencyConfig struct {
	// TTL is the time-to-live for held keys. A crashed holder's key
	// expires after this duration rather than blocking forever.
	TTL time.Duration

	// Enabled determines whether the guard is consulted at all
	Enabled bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     time.Minute,
		Enabled: true,
	}
}
