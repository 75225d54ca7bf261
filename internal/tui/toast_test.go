package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/chanforum/internal/wizard"
)

func TestToast_ShowDisplaysMessage(t *testing.T) {
	toast := NewToast()

	cmd := toast.Show(ShowToastMsg{Text: "test message", Severity: wizard.SeveritySuccess})

	if !toast.IsVisible() {
		t.Error("expected toast to be visible after Show()")
	}
	if toast.Message() != "test message" {
		t.Errorf("expected message 'test message', got %q", toast.Message())
	}
	if toast.Severity() != wizard.SeveritySuccess {
		t.Errorf("expected success severity, got %q", toast.Severity())
	}
	if cmd == nil {
		t.Error("expected Show() to return a command for dismissal")
	}
}

func TestToast_ViewReturnsEmptyWhenNotVisible(t *testing.T) {
	toast := NewToast()

	if view := toast.View(80); view != "" {
		t.Errorf("expected empty view when not visible, got %q", view)
	}
}

func TestToast_ViewRendersMessageWhenVisible(t *testing.T) {
	for _, sev := range []wizard.Severity{wizard.SeveritySuccess, wizard.SeverityWarning, wizard.SeverityError} {
		toast := NewToast()
		toast.Show(ShowToastMsg{Text: "Forum created", Severity: sev})

		view := plain(toast.View(80))
		if !strings.Contains(view, "Forum created") {
			t.Errorf("%s: expected view to contain message, got %q", sev, view)
		}
	}
}

func TestToast_DismissMsgHidesToast(t *testing.T) {
	toast := NewToast()
	toast.Show(ShowToastMsg{Text: "test message"})

	toast.Update(ToastDismissMsg{ID: 1})

	if toast.IsVisible() {
		t.Error("expected toast to be hidden after dismiss")
	}
	if toast.Message() != "" {
		t.Errorf("expected empty message after dismiss, got %q", toast.Message())
	}
}

func TestToast_StaleDismissKeepsNewerToast(t *testing.T) {
	toast := NewToast()
	toast.Show(ShowToastMsg{Text: "first"})
	toast.Show(ShowToastMsg{Text: "second"})

	toast.Update(ToastDismissMsg{ID: 1})

	if toast.Message() != "second" {
		t.Errorf("expected newer toast to survive the first timer, got %q", toast.Message())
	}
}

func TestToast_ShowToastMsgViaUpdate(t *testing.T) {
	toast := NewToast()
	cmd := toast.Update(ShowToastMsg{Text: "hi", Duration: time.Millisecond})
	if cmd == nil {
		t.Fatal("expected dismissal command")
	}

	msg := cmd()
	dismiss, ok := msg.(ToastDismissMsg)
	if !ok {
		t.Fatalf("expected ToastDismissMsg, got %T", msg)
	}
	toast.Update(dismiss)
	if toast.IsVisible() {
		t.Error("expected toast to be hidden after its own timer")
	}
}

func TestToastFromNotification(t *testing.T) {
	n := wizard.Notification{
		Title:       "Forum was not created",
		Description: "The forum already exists or the channel does not exist.",
		Severity:    wizard.SeverityWarning,
		Duration:    3 * time.Second,
	}

	msg := ToastFromNotification(n)
	if msg.Severity != wizard.SeverityWarning || msg.Duration != 3*time.Second {
		t.Errorf("unexpected toast %+v", msg)
	}
	if !strings.Contains(msg.Text, "already exists") {
		t.Errorf("expected description in toast text, got %q", msg.Text)
	}
}
