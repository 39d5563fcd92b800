package cache

import (
	"context"
	"time"
)

// Cache is a TTL-bounded key/value store with explicit invalidation. It is
// used for permission lookups only; availability and capacity are always
// read fresh from the store.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
}
