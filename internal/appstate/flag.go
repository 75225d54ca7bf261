// Package appstate holds process-wide state shared between UI components.
package appstate

import (
	"sync"
	"sync/atomic"
)

// CreationFlag records whether a forum creation request is in flight.
// The create wizard is its only writer; any component may read or subscribe.
type CreationFlag struct {
	value atomic.Bool

	mu     sync.Mutex
	nextID int
	subs   map[int]func(bool)
}

// NewCreationFlag returns a lowered flag.
func NewCreationFlag() *CreationFlag {
	return &CreationFlag{subs: make(map[int]func(bool))}
}

// Get reports the current value.
func (f *CreationFlag) Get() bool {
	return f.value.Load()
}

// Set stores v and notifies subscribers if the value changed.
func (f *CreationFlag) Set(v bool) {
	if f.value.Swap(v) == v {
		return
	}

	f.mu.Lock()
	subs := make([]func(bool), 0, len(f.subs))
	for _, fn := range f.subs {
		subs = append(subs, fn)
	}
	f.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}

// Subscribe registers fn for value changes and returns a function that removes it.
func (f *CreationFlag) Subscribe(fn func(bool)) (unsubscribe func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.subs == nil {
		f.subs = make(map[int]func(bool))
	}
	id := f.nextID
	f.nextID++
	f.subs[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.subs, id)
	}
}
