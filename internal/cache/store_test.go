package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/mark3labs/chanforum/internal/config"
	"github.com/mark3labs/chanforum/internal/forumapi"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eventTimeout = 3 * time.Second

type backend struct {
	name string
	open func(t *testing.T) Store
}

func backends() []backend {
	return []backend{
		{"memory", func(t *testing.T) Store {
			s := NewMemory()
			t.Cleanup(func() { _ = s.Close() })
			return s
		}},
		{"redis", func(t *testing.T) Store {
			mr := miniredis.RunT(t)
			s := NewRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}), true)
			t.Cleanup(func() { _ = s.Close() })
			return s
		}},
		{"nats", func(t *testing.T) Store {
			s, err := OpenNATS(context.Background(), t.TempDir())
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			return s
		}},
	}
}

func TestStore_PutGetInvalidate(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			s := b.open(t)
			ctx := context.Background()

			_, ok, err := s.Get(ctx, "boards")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Put(ctx, "boards", []byte(`[1]`)))
			got, ok, err := s.Get(ctx, "boards")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, []byte(`[1]`), got)

			require.NoError(t, s.Invalidate(ctx, "boards"))
			_, ok, err = s.Get(ctx, "boards")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestStore_WatchFiresOnInvalidate(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			s := b.open(t)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			ch, err := s.Watch(ctx, "boards")
			require.NoError(t, err)

			require.NoError(t, s.Put(ctx, "boards", []byte(`[]`)))
			require.NoError(t, s.Invalidate(ctx, "boards"))

			select {
			case _, ok := <-ch:
				assert.True(t, ok)
			case <-time.After(eventTimeout):
				t.Fatal("watch did not fire")
			}

			cancel()
			select {
			case _, ok := <-ch:
				for ok {
					_, ok = <-ch
				}
			case <-time.After(eventTimeout):
				t.Fatal("watch channel not closed after cancel")
			}
		})
	}
}

func TestStore_WatchIgnoresOtherKeys(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			s := b.open(t)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			ch, err := s.Watch(ctx, "boards")
			require.NoError(t, err)
			require.NoError(t, s.Invalidate(ctx, "channels"))

			select {
			case <-ch:
				t.Fatal("unexpected invalidation")
			case <-time.After(200 * time.Millisecond):
			}
		})
	}
}

func TestMemory_ClosedStore(t *testing.T) {
	s := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := s.Watch(ctx, "boards")
	require.NoError(t, err)

	require.NoError(t, s.Close())
	_, ok := <-ch
	assert.False(t, ok)

	assert.ErrorIs(t, s.Put(ctx, "k", nil), ErrClosed)
	_, _, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.NoError(t, s.Close())
}

func TestInvalidator_DropsKey(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "boards", []byte("x")))

	Invalidator{Store: s}.InvalidateCachedCollection("boards")

	_, ok, err := s.Get(ctx, "boards")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInvalidator_SwallowsErrors(t *testing.T) {
	s := NewMemory()
	require.NoError(t, s.Close())
	assert.NotPanics(t, func() {
		Invalidator{Store: s, Timeout: time.Second}.InvalidateCachedCollection("boards")
	})
}

func TestBoardCache_ReadsThrough(t *testing.T) {
	bc := NewBoardCache(NewMemory())
	ctx := context.Background()
	var fetches atomic.Int32
	fetch := func(context.Context) ([]forumapi.Board, error) {
		fetches.Add(1)
		return []forumapi.Board{{ID: "b1", Name: "Gophers", Slug: "gophers"}}, nil
	}

	first, err := bc.Boards(ctx, fetch)
	require.NoError(t, err)
	second, err := bc.Boards(ctx, fetch)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), fetches.Load())

	Invalidator{Store: bc.store}.InvalidateCachedCollection(bc.Key())
	_, err = bc.Boards(ctx, fetch)
	require.NoError(t, err)
	assert.Equal(t, int32(2), fetches.Load())
}

func TestBoardCache_FetchErrorNotCached(t *testing.T) {
	bc := NewBoardCache(NewMemory())
	boom := errors.New("boom")

	_, err := bc.Boards(context.Background(), func(context.Context) ([]forumapi.Board, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	_, ok, err := bc.store.Get(context.Background(), bc.Key())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpen_SelectsBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	cases := []struct {
		name string
		cfg  config.Config
		want any
	}{
		{"memory", config.Config{CacheBackend: config.CacheMemory}, &Memory{}},
		{"redis", config.Config{CacheBackend: config.CacheRedis, RedisAddr: mr.Addr()}, &Redis{}},
		{"nats", config.Config{CacheBackend: config.CacheNATS, DataDir: t.TempDir()}, &NATS{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Open(context.Background(), &tc.cfg)
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			assert.IsType(t, tc.want, s)
		})
	}
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{CacheBackend: "etcd"})
	assert.ErrorContains(t, err, "unknown cache backend")

	_, err = Open(context.Background(), &config.Config{CacheBackend: config.CacheRedis, RedisAddr: "127.0.0.1:1"})
	assert.Error(t, err)
}
