package repository

import (
	"context"
	"time"
)

// ResponseCache is a shared read-through cache for idempotent backend
// responses (pricing, seat maps), keyed by the derived request key.
// Implementations must treat a miss as (false, nil), not an error.
type ResponseCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}
