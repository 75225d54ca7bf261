package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/chanforum/internal/tui/theme"
	"github.com/mark3labs/chanforum/internal/wizard"
)

const defaultToastDuration = 3 * time.Second

// ToastDismissMsg is sent when the toast with the given ID should be dismissed.
type ToastDismissMsg struct {
	ID int
}

// ShowToastMsg is sent to show a toast notification.
type ShowToastMsg struct {
	Text     string
	Severity wizard.Severity
	Duration time.Duration
}

// ToastFromNotification converts a wizard notification into a toast request.
func ToastFromNotification(n wizard.Notification) ShowToastMsg {
	return ShowToastMsg{Text: n.Text(), Severity: n.Severity, Duration: n.Duration}
}

// Toast shows one message in the bottom-right corner until its duration ends.
// A newer toast replaces the visible one.
type Toast struct {
	id       int
	message  string
	severity wizard.Severity
	visible  bool
}

// NewToast creates a new Toast component.
func NewToast() *Toast {
	return &Toast{}
}

// Show displays msg and returns the command that dismisses it.
func (t *Toast) Show(msg ShowToastMsg) tea.Cmd {
	t.id++
	t.message = msg.Text
	t.severity = msg.Severity
	t.visible = true

	d := msg.Duration
	if d <= 0 {
		d = defaultToastDuration
	}
	id := t.id
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ToastDismissMsg{ID: id}
	})
}

// Update handles messages for the toast component.
func (t *Toast) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ShowToastMsg:
		return t.Show(msg)
	case ToastDismissMsg:
		// Ignore timers of replaced toasts.
		if msg.ID == t.id {
			t.visible = false
			t.message = ""
		}
	}
	return nil
}

// View renders the styled toast, or "" when hidden.
func (t *Toast) View(maxWidth int) string {
	if !t.visible || t.message == "" {
		return ""
	}

	s := theme.Current().S()
	style := s.ToastWarning
	switch t.severity {
	case wizard.SeveritySuccess:
		style = s.ToastSuccess
	case wizard.SeverityError:
		style = s.ToastError
	}

	content := style.Render(t.message)
	if maxWidth > 2 && lipgloss.Width(content) > maxWidth-2 {
		content = style.Width(maxWidth - 2).Render(t.message)
	}
	return content
}

// Draw positions the toast in the bottom-right corner of area, one row above
// the bottom edge.
func (t *Toast) Draw(scr uv.Screen, area uv.Rectangle) {
	content := t.View(area.Dx())
	if content == "" {
		return
	}
	w := lipgloss.Width(content)
	h := lipgloss.Height(content)
	x := max(area.Max.X-w-1, area.Min.X)
	y := max(area.Max.Y-h-1, area.Min.Y)
	uv.NewStyledString(content).Draw(scr, uv.Rect(x, y, w, h))
}

// IsVisible returns whether the toast is currently visible.
func (t *Toast) IsVisible() bool {
	return t.visible
}

// Message returns the current toast message (empty if not visible).
func (t *Toast) Message() string {
	if !t.visible {
		return ""
	}
	return t.message
}

// Severity returns the severity of the visible toast.
func (t *Toast) Severity() wizard.Severity {
	return t.severity
}
