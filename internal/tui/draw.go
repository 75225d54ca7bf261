package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/chanforum/internal/tui/theme"
)

// DrawText renders plain text at a position
func DrawText(scr uv.Screen, area uv.Rectangle, text string) {
	uv.NewStyledString(text).Draw(scr, area)
}

// DrawStyled renders lipgloss-styled content at a position
func DrawStyled(scr uv.Screen, area uv.Rectangle, style lipgloss.Style, text string) {
	content := style.Width(area.Dx()).Height(area.Dy()).Render(text)
	uv.NewStyledString(content).Draw(scr, area)
}

// DrawPanel renders a "Title ────" header and returns the area below it.
func DrawPanel(scr uv.Screen, area uv.Rectangle, title string) uv.Rectangle {
	if title == "" || area.Dy() < 1 {
		return area
	}

	s := theme.Current().S()
	styledTitle := s.HeaderTitle.Render(title)
	ruleWidth := max(area.Dx()-lipgloss.Width(styledTitle)-1, 0)
	header := styledTitle + " " + s.HintSeparator.Render(strings.Repeat("─", ruleWidth))
	uv.NewStyledString(header).Draw(scr, uv.Rect(area.Min.X, area.Min.Y, area.Dx(), 1))

	return uv.Rect(area.Min.X, area.Min.Y+1, area.Dx(), max(area.Dy()-1, 0))
}

// DrawCentered draws content in the middle of area and returns where it landed.
func DrawCentered(scr uv.Screen, area uv.Rectangle, content string) uv.Rectangle {
	w := lipgloss.Width(content)
	h := lipgloss.Height(content)
	x := max((area.Dx()-w)/2, 0)
	y := max((area.Dy()-h)/2, 0)
	rect := uv.Rect(area.Min.X+x, area.Min.Y+y, min(w, area.Dx()), min(h, area.Dy()))
	uv.NewStyledString(content).Draw(scr, rect)
	return rect
}
