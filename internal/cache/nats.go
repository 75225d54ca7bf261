package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/chanforum/internal/logger"
	natsembed "github.com/mark3labs/chanforum/internal/nats"
	"github.com/nats-io/nats.go/jetstream"
)

// NATS is a Store backed by a JetStream key-value bucket on an embedded server.
type NATS struct {
	embedded *natsembed.Embedded
	kv       jetstream.KeyValue
}

// OpenNATS starts an embedded server under dataDir and opens the cache bucket.
func OpenNATS(ctx context.Context, dataDir string) (*NATS, error) {
	e, err := natsembed.Start(dataDir)
	if err != nil {
		return nil, err
	}
	kv, err := natsembed.SetupBucket(ctx, e.JS, natsembed.CacheBucket)
	if err != nil {
		_ = e.Shutdown()
		return nil, err
	}
	return &NATS{embedded: e, kv: kv}, nil
}

func (n *NATS) Get(ctx context.Context, key string) ([]byte, bool, error) {
	entry, err := n.kv.Get(ctx, key)
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return entry.Value(), true, nil
}

func (n *NATS) Put(ctx context.Context, key string, value []byte) error {
	if _, err := n.kv.Put(ctx, key, value); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (n *NATS) Invalidate(ctx context.Context, key string) error {
	if err := n.kv.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (n *NATS) Watch(ctx context.Context, key string) (<-chan struct{}, error) {
	w, err := n.kv.Watch(ctx, key, jetstream.UpdatesOnly())
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", key, err)
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer func() {
			if err := w.Stop(); err != nil {
				logger.Debug("cache: stop watcher %s: %v", key, err)
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case entry, ok := <-w.Updates():
				if !ok {
					return
				}
				if entry == nil {
					continue
				}
				switch entry.Operation() {
				case jetstream.KeyValueDelete, jetstream.KeyValuePurge:
					select {
					case out <- struct{}{}:
					default:
					}
				}
			}
		}
	}()
	return out, nil
}

// Close shuts the embedded server down.
func (n *NATS) Close() error {
	return n.embedded.Shutdown()
}
