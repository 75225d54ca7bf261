package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/chanforum/internal/logger"
	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix        = "chanforum:cache:"
	redisInvalidatePrefix = "chanforum:invalidate:"
)

// Compile-time checks.
var (
	_ Store = (*Redis)(nil)
	_ Store = (*NATS)(nil)
	_ Store = (*Memory)(nil)
)

// Redis is a Store backed by a Redis server. Invalidations are announced on a
// pub/sub channel per key.
type Redis struct {
	rdb  *redis.Client
	owns bool
}

// NewRedis wraps rdb. When owns is set, Close also closes the client.
func NewRedis(rdb *redis.Client, owns bool) *Redis {
	return &Redis{rdb: rdb, owns: owns}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.rdb.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return val, true, nil
}

func (r *Redis) Put(ctx context.Context, key string, value []byte) error {
	if err := r.rdb.Set(ctx, redisKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Invalidate(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	if err := r.rdb.Publish(ctx, redisInvalidatePrefix+key, "1").Err(); err != nil {
		return fmt.Errorf("publish invalidation %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Watch(ctx context.Context, key string) (<-chan struct{}, error) {
	ps := r.rdb.Subscribe(ctx, redisInvalidatePrefix+key)
	// Wait for the subscription to be confirmed so no publish is missed.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe %s: %w", key, err)
	}

	out := make(chan struct{}, 1)
	msgs := ps.Channel()
	go func() {
		defer close(out)
		defer func() {
			if err := ps.Close(); err != nil {
				logger.Debug("cache: close subscription %s: %v", key, err)
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()
	return out, nil
}

func (r *Redis) Close() error {
	if !r.owns {
		return nil
	}
	return r.rdb.Close()
}
