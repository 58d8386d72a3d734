// internal/domain/asset/repository_port.go
package asset

import "context"

// Session key layout. Two well-known key patterns exist per item id:
// the full record and a size-capped compressed record. The prefix is
// configurable because older deployments used different prefixes.
const DefaultKeyPrefix = "cartimg"

// SessionFullKey builds the session key for the full record.
func SessionFullKey(prefix, itemID string) string {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return prefix + "_full_" + itemID
}

// SessionCompressedKey builds the session key for the compressed record.
func SessionCompressedKey(prefix, itemID string) string {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return prefix + "_" + itemID
}

// Repository is the durable structured store (tier 1).
// Get returns (nil, nil) when no record exists (nil policy).
type Repository interface {
	Get(ctx context.Context, itemID string) (*Record, error)
	Put(ctx context.Context, itemID string, r Record) error
	Delete(ctx context.Context, itemID string) error
}

// SessionStore is the session-scoped string store (tiers 2 and 3).
// Values are JSON-serialized records; Get returns "" on a miss.
type SessionStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, payload string) error
	Delete(ctx context.Context, key string) error
}

// MemoryStore is the volatile in-process store (tier 4).
// Get returns (nil, nil) on a miss.
type MemoryStore interface {
	Get(ctx context.Context, itemID string) (*Record, error)
	Put(ctx context.Context, itemID string, r Record) error
	Delete(ctx context.Context, itemID string) error
}
