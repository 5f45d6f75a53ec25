// Package cache stores rendered documents and carts with a time-to-live.
package cache

import (
	"context"
	"fmt"
	"parts-storefront/internal/config"
	"time"
)

// Store is a key/value store with per-item expiry. Get returns nil, nil on a miss.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// New opens the store selected by cfg.Driver. The "none" driver returns nil.
func New(cfg config.CacheConfig) (Store, error) {
	switch cfg.Driver {
	case "", "none":
		return nil, nil
	case "sqlite":
		s, err := NewSQLiteStore(cfg.FilePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "redis":
		s, err := NewRedisStore(cfg.Redis)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
}
