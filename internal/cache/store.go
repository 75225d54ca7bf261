// Package cache stores fetched collections and announces their invalidation.
package cache

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mark3labs/chanforum/internal/config"
	"github.com/mark3labs/chanforum/internal/logger"
	"github.com/redis/go-redis/v9"
)

// ErrClosed is returned by operations on a closed Store.
var ErrClosed = errors.New("cache closed")

// Store is a key-value cache whose invalidations can be watched.
type Store interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	// Invalidate drops key and wakes every watcher of it.
	Invalidate(ctx context.Context, key string) error
	// Watch returns a channel that receives after each invalidation of key.
	// The channel is closed when ctx ends or the store closes.
	Watch(ctx context.Context, key string) (<-chan struct{}, error)
	Close() error
}

// Open returns the backend selected by cfg.CacheBackend.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.CacheBackend {
	case config.CacheMemory:
		logger.Debug("cache: using memory backend")
		return NewMemory(), nil
	case config.CacheRedis:
		logger.Debug("cache: using redis backend at %s", cfg.RedisAddr)
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("ping redis %s: %w", cfg.RedisAddr, err)
		}
		return NewRedis(rdb, true), nil
	case config.CacheNATS, "":
		logger.Debug("cache: using embedded nats backend")
		return OpenNATS(ctx, filepath.Join(cfg.DataDir, "nats"))
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
	}
}

// Invalidator adapts a Store to the wizard's cache invalidation port. Errors
// are logged, never returned.
type Invalidator struct {
	Store   Store
	Timeout time.Duration
}

// InvalidateCachedCollection drops key from the store.
func (i Invalidator) InvalidateCachedCollection(key string) {
	timeout := i.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := i.Store.Invalidate(ctx, key); err != nil {
		logger.Error("cache: invalidate %s: %v", key, err)
		return
	}
	logger.Debug("cache: invalidated %s", key)
}
