package cache

import (
	"context"
	"sync"
)

// Memory is a process-local Store.
type Memory struct {
	mu       sync.Mutex
	values   map[string][]byte
	watchers map[string]map[chan struct{}]struct{}
	closed   bool
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{
		values:   make(map[string][]byte),
		watchers: make(map[string]map[chan struct{}]struct{}),
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, false, ErrClosed
	}
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Invalidate(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	delete(m.values, key)
	for ch := range m.watchers[key] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return nil
}

func (m *Memory) Watch(ctx context.Context, key string) (<-chan struct{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}

	// Buffered so an invalidation is kept until the watcher reads it.
	ch := make(chan struct{}, 1)
	if m.watchers[key] == nil {
		m.watchers[key] = make(map[chan struct{}]struct{})
	}
	m.watchers[key][ch] = struct{}{}

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		defer m.mu.Unlock()
		if _, ok := m.watchers[key][ch]; ok {
			delete(m.watchers[key], ch)
			close(ch)
		}
	}()
	return ch, nil
}

// Close closes every watch channel. Watch goroutines exit when their contexts end.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	for key, set := range m.watchers {
		for ch := range set {
			close(ch)
		}
		delete(m.watchers, key)
	}
	return nil
}
