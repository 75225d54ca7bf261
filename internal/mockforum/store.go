// Package mockforum is an in-memory forum backend for local runs and tests.
package mockforum

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/gosimple/slug"
)

// Channel is a channel known to the mock backend.
type Channel struct {
	ID          string `json:"id"`
	Handle      string `json:"-"`
	DisplayName string `json:"display_name"`
	Subscribers int64  `json:"subscriber_count"`
}

// Board mirrors the board payload of the real backend.
type Board struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ChannelID   string `json:"channel_id"`
	Subscribers int64  `json:"subscribers"`
	Slug        string `json:"slug"`
}

var (
	errUnknownChannel = errors.New("channel not found")
	errDuplicate      = errors.New("forum already exists")
)

// store holds channels and boards keyed by channel ID.
type store struct {
	mu       sync.RWMutex
	channels map[string]Channel
	boards   map[string]Board
	counter  int
}

func newStore(channels []Channel) *store {
	s := &store{
		channels: make(map[string]Channel, len(channels)),
		boards:   make(map[string]Board),
	}
	for _, c := range channels {
		s.channels[c.ID] = c
	}
	return s
}

// search returns the channels whose handle or name contains q, ordered by
// subscribers descending.
func (s *store) search(q string) []Channel {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q = strings.ToLower(strings.TrimPrefix(q, "@"))
	out := []Channel{}
	for _, c := range s.channels {
		if strings.Contains(strings.ToLower(c.Handle), q) || strings.Contains(strings.ToLower(c.DisplayName), q) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Subscribers != out[j].Subscribers {
			return out[i].Subscribers > out[j].Subscribers
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *store) create(channelID string) (Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.channels[channelID]
	if !ok {
		return Board{}, errUnknownChannel
	}
	if _, ok := s.boards[channelID]; ok {
		return Board{}, errDuplicate
	}
	s.counter++
	b := Board{
		ID:          fmt.Sprintf("board-%d", s.counter),
		Name:        c.DisplayName,
		ChannelID:   c.ID,
		Subscribers: c.Subscribers,
		Slug:        slug.Make(c.DisplayName),
	}
	s.boards[channelID] = b
	return b, nil
}

func (s *store) list() []Board {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Board, 0, len(s.boards))
	for _, b := range s.boards {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
