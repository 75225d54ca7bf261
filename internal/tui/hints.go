package tui

import (
	"strings"

	"github.com/mark3labs/chanforum/internal/tui/theme"
)

// Standard key representations for consistent hints across the app.
const (
	KeyUpDown    = "↑/↓"
	KeyEnter     = "enter"
	KeyEsc       = "esc"
	KeyBack      = "←/shift+tab"
	KeyNew       = "n"
	KeyRefresh   = "r"
	KeyQuit      = "q"
	KeyInterrupt = "ctrl+c"
)

// RenderHintBar renders key-description pairs separated by bullets.
// Example: RenderHintBar("enter", "select", "esc", "back") -> "enter select • esc back"
func RenderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	s := theme.Current().S()
	var b strings.Builder
	for i := 0; i < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString(" " + s.HintSeparator.Render("•") + " ")
		}
		b.WriteString(s.HintKey.Render(pairs[i]) + " " + s.HintDesc.Render(pairs[i+1]))
	}
	return b.String()
}
