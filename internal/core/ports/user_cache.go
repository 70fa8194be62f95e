package ports

import (
	"context"
	"time"
)

// UserCache abstracts the key-value cache in front of the authoritative store.
// Entries are hints, never authoritative: implementations and callers must
// treat every failure as a miss.
type UserCache interface {
	// Get returns the raw value stored under key. The second return value is
	// false on a clean miss; err is non-nil only for transport failures.
	Get(ctx context.Context, key string) (string, bool, error)
	// SetMulti writes all entries with the same TTL as a single batched
	// ("pipelined") operation.
	SetMulti(ctx context.Context, entries map[string]string, ttl time.Duration) error
	// Delete removes a single key.
	Delete(ctx context.Context, key string) error
	// DeleteMulti removes all keys as a single batched operation.
	DeleteMulti(ctx context.Context, keys []string) error
}
