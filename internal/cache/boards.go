package cache

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/chanforum/internal/forumapi"
	"github.com/mark3labs/chanforum/internal/logger"
	"github.com/mark3labs/chanforum/internal/wizard"
)

// BoardCache reads the board list through a Store.
type BoardCache struct {
	store Store
	key   string
}

// NewBoardCache caches boards under wizard.DefaultBoardsKey, the key the
// create wizard invalidates.
func NewBoardCache(store Store) *BoardCache {
	return &BoardCache{store: store, key: wizard.DefaultBoardsKey}
}

// Key returns the cache key holding the board list.
func (b *BoardCache) Key() string { return b.key }

// Boards returns the cached list, or calls fetch and caches its result. Cache
// failures are logged and fall through to fetch.
func (b *BoardCache) Boards(ctx context.Context, fetch func(context.Context) ([]forumapi.Board, error)) ([]forumapi.Board, error) {
	raw, ok, err := b.store.Get(ctx, b.key)
	if err != nil {
		logger.Warn("cache: read %s: %v", b.key, err)
	}
	if ok {
		var boards []forumapi.Board
		if err := json.Unmarshal(raw, &boards); err == nil {
			logger.Debug("cache: %s hit (%d boards)", b.key, len(boards))
			return boards, nil
		}
		logger.Warn("cache: discarding undecodable %s entry", b.key)
	}

	boards, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(boards)
	if err != nil {
		logger.Warn("cache: encode %s: %v", b.key, err)
		return boards, nil
	}
	if err := b.store.Put(ctx, b.key, data); err != nil {
		logger.Warn("cache: write %s: %v", b.key, err)
	}
	return boards, nil
}

// Watch reports invalidations of the board list.
func (b *BoardCache) Watch(ctx context.Context) (<-chan struct{}, error) {
	return b.store.Watch(ctx, b.key)
}
