package tui

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/chanforum/internal/logger"
	"github.com/mark3labs/chanforum/internal/wizard"
)

const bridgeQueueSize = 64

// Bridge forwards wizard callbacks and background events to the Bubbletea
// program. Callbacks may fire on the Update goroutine, where a direct
// program.Send would deadlock, so everything is queued and a pump goroutine
// started with Run does the sending.
//
// Only the most recent wizard state is kept: a newer snapshot replaces one
// that has not been delivered yet.
type Bridge struct {
	states chan wizard.State
	events chan tea.Msg
}

// NewBridge creates an idle Bridge.
func NewBridge() *Bridge {
	return &Bridge{
		states: make(chan wizard.State, 1),
		events: make(chan tea.Msg, bridgeQueueSize),
	}
}

// Observe is a wizard state observer.
func (b *Bridge) Observe(s wizard.State) {
	for {
		select {
		case b.states <- s:
			return
		default:
		}
		// Drop the undelivered snapshot and retry.
		select {
		case <-b.states:
		default:
		}
	}
}

// Notify implements wizard.Notifier.
func (b *Bridge) Notify(n wizard.Notification) {
	b.Post(ToastFromNotification(n))
}

// CloseWizard is the wizard's OnClose hook.
func (b *Bridge) CloseWizard() {
	b.Post(WizardClosedMsg{})
}

// CreationFlagChanged is a creation flag subscriber.
func (b *Bridge) CreationFlagChanged(inFlight bool) {
	b.Post(CreationFlagMsg{InFlight: inFlight})
}

// Post queues msg without blocking. Messages are dropped when the queue is full.
func (b *Bridge) Post(msg tea.Msg) {
	select {
	case b.events <- msg:
	default:
		logger.Warn("tui: bridge queue full, dropping %T", msg)
	}
}

// Run delivers queued messages to p until ctx ends.
func (b *Bridge) Run(ctx context.Context, p ProgramSender) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case s := <-b.states:
			p.Send(WizardStateMsg{State: s})
		case msg := <-b.events:
			p.Send(msg)
		}
	}
}

// WatchBoards posts BoardsInvalidatedMsg for every signal on ch until ch
// closes or ctx ends.
func (b *Bridge) WatchBoards(ctx context.Context, ch <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-ch:
			if !ok {
				return nil
			}
			logger.Debug("tui: board cache invalidated")
			b.Post(BoardsInvalidatedMsg{})
		}
	}
}
