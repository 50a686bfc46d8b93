package ports

import (
	"context"
	"time"
)

// Cache defines a generic key-value capability for usecases, used for
// short-lived derived views such as dashboard counts. A zero ttl means
// the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
