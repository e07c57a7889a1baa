package ports

import (
	"context"
	"time"
)

// ClientStorage is the durable key/value medium the session lives in.
// Multi-key reads and writes happen in one operation as far as the backend
// allows. A ttl <= 0 means no expiry.
type ClientStorage interface {
	// GetItems returns the values found; missing keys are absent from the map.
	GetItems(ctx context.Context, keys ...string) (map[string]string, error)
	SetItems(ctx context.Context, items map[string]string, ttl time.Duration) error
	RemoveItems(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
}
