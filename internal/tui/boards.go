package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/dustin/go-humanize"
	"github.com/mark3labs/chanforum/internal/forumapi"
	"github.com/mark3labs/chanforum/internal/tui/theme"
)

// BoardList shows the forum boards with a movable cursor.
type BoardList struct {
	boards  []forumapi.Board
	cursor  int
	offset  int
	loading bool
	err     error
}

// NewBoardList creates a BoardList waiting for its first load.
func NewBoardList() *BoardList {
	return &BoardList{loading: true}
}

// SetLoading marks a fetch in progress.
func (l *BoardList) SetLoading() {
	l.loading = true
}

// SetBoards replaces the list, keeping the cursor on the same board when it
// still exists.
func (l *BoardList) SetBoards(boards []forumapi.Board, err error) {
	l.loading = false
	l.err = err
	if err != nil {
		return
	}

	var selectedID string
	if b, ok := l.Selected(); ok {
		selectedID = b.ID
	}
	l.boards = boards
	l.cursor = 0
	for i, b := range boards {
		if b.ID == selectedID {
			l.cursor = i
			break
		}
	}
}

// Boards returns the listed boards.
func (l *BoardList) Boards() []forumapi.Board {
	return l.boards
}

// Selected returns the board under the cursor.
func (l *BoardList) Selected() (forumapi.Board, bool) {
	if l.cursor < 0 || l.cursor >= len(l.boards) {
		return forumapi.Board{}, false
	}
	return l.boards[l.cursor], true
}

// Update moves the cursor.
func (l *BoardList) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || len(l.boards) == 0 {
		return nil
	}
	switch key.String() {
	case "up", "k":
		l.cursor = max(l.cursor-1, 0)
	case "down", "j":
		l.cursor = min(l.cursor+1, len(l.boards)-1)
	case "home", "g":
		l.cursor = 0
	case "end", "G":
		l.cursor = len(l.boards) - 1
	}
	return nil
}

// Draw renders the list into area.
func (l *BoardList) Draw(scr uv.Screen, area uv.Rectangle) {
	inner := DrawPanel(scr, area, fmt.Sprintf("Boards (%d)", len(l.boards)))
	if inner.Dy() <= 0 {
		return
	}

	s := theme.Current().S()
	switch {
	case l.err != nil:
		DrawText(scr, inner, lipgloss.NewStyle().Foreground(theme.HexToColor(theme.Current().Error)).Render("Failed to load boards: "+l.err.Error()))
		return
	case l.loading && len(l.boards) == 0:
		DrawText(scr, inner, s.Muted.Render("Loading boards..."))
		return
	case len(l.boards) == 0:
		DrawText(scr, inner, s.Muted.Render("No boards yet. Press n to create one."))
		return
	}

	rows := inner.Dy()
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+rows {
		l.offset = l.cursor - rows + 1
	}

	lines := make([]string, 0, rows)
	for i := l.offset; i < len(l.boards) && len(lines) < rows; i++ {
		lines = append(lines, l.renderRow(l.boards[i], i == l.cursor, inner.Dx()))
	}
	DrawText(scr, inner, strings.Join(lines, "\n"))
}

func (l *BoardList) renderRow(b forumapi.Board, selected bool, width int) string {
	s := theme.Current().S()
	meta := fmt.Sprintf("/%s  %s subscribers", b.Slug, humanize.Comma(b.Subscribers))
	name := b.Name
	room := width - lipgloss.Width(meta) - 4
	if room < 1 {
		room = 1
	}
	if lipgloss.Width(name) > room {
		name = truncate(name, room)
	}
	if selected {
		return s.ListSelected.Render("> "+name) + "  " + s.ListMeta.Render(meta)
	}
	return s.ListItem.Render("  "+name) + "  " + s.ListMeta.Render(meta)
}

// truncate shortens s to at most width runes, ending in "…".
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
