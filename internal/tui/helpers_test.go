package tui

import (
	"context"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mark3labs/chanforum/internal/wizard"
)

// key builds a key press the way the terminal reports it.
func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "shift+tab":
		return tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func typeText(m *CreateForumModal, text string) {
	for _, r := range text {
		m.Update(key(string(r)))
	}
}

// exec runs cmd synchronously and returns its message, or nil.
func exec(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func plain(s string) string {
	return ansi.Strip(s)
}

type recordingSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
	got  chan tea.Msg
}

func newRecordingSender() *recordingSender {
	return &recordingSender{got: make(chan tea.Msg, 64)}
}

func (r *recordingSender) Send(msg tea.Msg) {
	r.mu.Lock()
	r.msgs = append(r.msgs, msg)
	r.mu.Unlock()
	r.got <- msg
}

type testCandidates []wizard.Candidate

func gophers() testCandidates {
	return testCandidates{
		{ID: "c1", DisplayName: "Gophers", SubscriberCount: 25000},
		{ID: "c2", DisplayName: "Tiny", SubscriberCount: 12},
		{ID: "c3", DisplayName: "Rustaceans", SubscriberCount: 10000},
	}
}

type testWizard struct {
	ctrl    *wizard.Controller
	bridge  *Bridge
	created []string
	mu      sync.Mutex
}

func newTestWizard(t *testing.T, cands []wizard.Candidate, searchErr, createErr error) *testWizard {
	t.Helper()
	w := &testWizard{bridge: NewBridge()}
	w.ctrl = wizard.New(wizard.Deps{
		Search: func(context.Context, string) ([]wizard.Candidate, error) {
			return cands, searchErr
		},
		Create: func(_ context.Context, id string) (struct{}, error) {
			w.mu.Lock()
			w.created = append(w.created, id)
			w.mu.Unlock()
			return struct{}{}, createErr
		},
		Notifier: w.bridge,
		OnClose:  w.bridge.CloseWizard,
	}, wizard.WithStateObserver(w.bridge.Observe))
	return w
}

func (w *testWizard) createdIDs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.created...)
}

// drain returns every queued bridge event.
func (w *testWizard) drain() []tea.Msg {
	var out []tea.Msg
	for {
		select {
		case msg := <-w.bridge.events:
			out = append(out, msg)
		default:
			return out
		}
	}
}
