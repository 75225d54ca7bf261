package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mark3labs/chanforum/internal/tui/theme"
)

// ButtonState represents the visual state of a button.
type ButtonState int

const (
	ButtonNormal   ButtonState = iota // Normal state (enabled)
	ButtonDisabled                    // Disabled state (grayed out)
	ButtonFocused                     // Focused/highlighted state
)

// Button represents a single button in the button bar.
type Button struct {
	Label string
	State ButtonState
}

// RenderButtons renders buttons centered within width.
func RenderButtons(width int, buttons ...Button) string {
	if len(buttons) == 0 {
		return ""
	}

	s := theme.Current().S()
	rendered := make([]string, 0, len(buttons))
	for _, btn := range buttons {
		switch btn.State {
		case ButtonDisabled:
			rendered = append(rendered, s.ButtonDisabled.Render(btn.Label))
		case ButtonFocused:
			rendered = append(rendered, s.ButtonFocused.Render(btn.Label))
		default:
			rendered = append(rendered, s.ButtonNormal.Render(btn.Label))
		}
	}
	return lipgloss.Place(width, 1, lipgloss.Center, lipgloss.Center, strings.Join(rendered, ""))
}

// BackNextButtons creates the standard Back/Next pair.
func BackNextButtons(backEnabled, nextEnabled bool, nextLabel string) []Button {
	back := Button{Label: "← Back", State: ButtonNormal}
	if !backEnabled {
		back.State = ButtonDisabled
	}
	next := Button{Label: nextLabel, State: ButtonFocused}
	if !nextEnabled {
		next.State = ButtonDisabled
	}
	return []Button{back, next}
}

// CancelNextButtons creates the Cancel/Next pair used on the first step.
func CancelNextButtons(nextEnabled bool, nextLabel string) []Button {
	next := Button{Label: nextLabel, State: ButtonFocused}
	if !nextEnabled {
		next.State = ButtonDisabled
	}
	return []Button{{Label: "Cancel", State: ButtonNormal}, next}
}
