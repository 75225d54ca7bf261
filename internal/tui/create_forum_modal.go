package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/progress"
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/dustin/go-humanize"
	"github.com/mark3labs/chanforum/internal/logger"
	"github.com/mark3labs/chanforum/internal/tui/theme"
	"github.com/mark3labs/chanforum/internal/wizard"
)

const (
	modalMinWidth = 50
	modalMaxWidth = 80
	// Border and horizontal padding of the modal container.
	modalChrome = 6
	// Candidate rows shown at once on the selection step.
	candidateRows = 8
)

// WizardDriver is the create wizard as seen by the modal. *wizard.Controller
// implements it.
type WizardDriver interface {
	State() wizard.State
	SetSearchInput(text string)
	Advance(ctx context.Context) error
	Retreat() error
	SelectCandidate(id string) error
	Submit(ctx context.Context) error
	Reset()
}

// CreateForumModal renders the two-step create forum wizard and turns key
// presses into controller calls. The controller owns the state; the modal
// re-reads it whenever a WizardStateMsg arrives.
type CreateForumModal struct {
	ctx    context.Context
	driver WizardDriver
	state  wizard.State

	visible  bool
	input    textinput.Model
	spinner  spinner.Model
	spinning bool
	progress progress.Model
	cursor   int
	offset   int
	width    int
}

// NewCreateForumModal creates a hidden modal driving driver. Blocking
// controller calls run in commands bound to ctx.
func NewCreateForumModal(ctx context.Context, driver WizardDriver) *CreateForumModal {
	th := theme.Current()

	input := textinput.New()
	input.Placeholder = "@channel"
	input.Prompt = "Handle: "
	input.SetStyles(textinput.Styles{
		Focused: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(theme.HexToColor(th.FgBase)),
			Placeholder: lipgloss.NewStyle().Foreground(theme.HexToColor(th.FgMuted)),
			Prompt:      lipgloss.NewStyle().Foreground(theme.HexToColor(th.Secondary)),
		},
		Blurred: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(theme.HexToColor(th.FgSubtle)),
			Placeholder: lipgloss.NewStyle().Foreground(theme.HexToColor(th.FgMuted)),
			Prompt:      lipgloss.NewStyle().Foreground(theme.HexToColor(th.FgMuted)),
		},
		Cursor: textinput.CursorStyle{
			Color: theme.HexToColor(th.Primary),
			Shape: tea.CursorBar,
			Blink: true,
		},
	})
	input.SetWidth(modalMinWidth - modalChrome)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.HexToColor(th.Primary))

	bar := progress.New(
		progress.WithColors(theme.HexToColor(th.Primary), theme.HexToColor(th.Secondary)),
		progress.WithoutPercentage(),
		progress.WithWidth(modalMinWidth-modalChrome),
	)

	return &CreateForumModal{
		ctx:      ctx,
		driver:   driver,
		state:    driver.State(),
		input:    input,
		spinner:  s,
		progress: bar,
		width:    modalMinWidth,
	}
}

// Open shows the modal with the controller's current state.
func (m *CreateForumModal) Open() tea.Cmd {
	m.visible = true
	m.state = m.driver.State()
	m.input.SetValue(m.state.SearchInput)
	m.input.CursorEnd()
	m.cursor, m.offset = 0, 0
	return tea.Batch(m.syncFocus(), m.syncSpinner())
}

// Close hides the modal without touching the controller.
func (m *CreateForumModal) Close() {
	m.visible = false
	m.input.Blur()
}

// IsVisible returns whether the modal is shown.
func (m *CreateForumModal) IsVisible() bool {
	return m.visible
}

// State returns the last state the modal rendered.
func (m *CreateForumModal) State() wizard.State {
	return m.state
}

// Cursor returns the highlighted candidate index on the selection step.
func (m *CreateForumModal) Cursor() int {
	return m.cursor
}

// SetSize sizes the modal for a width x height screen.
func (m *CreateForumModal) SetSize(width, _ int) {
	m.width = min(max(width-10, modalMinWidth), modalMaxWidth)
	inner := m.width - modalChrome
	m.input.SetWidth(inner - lipgloss.Width(m.input.Prompt) - 1)
	m.progress.SetWidth(inner)
}

// Update handles messages for the modal.
func (m *CreateForumModal) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case WizardStateMsg:
		return m.refresh()

	case wizardOpDoneMsg:
		switch {
		case msg.err == nil, errors.Is(msg.err, wizard.ErrValidation), errors.Is(msg.err, wizard.ErrBusy):
		default:
			logger.Debug("tui: wizard %s: %v", msg.op, msg.err)
		}
		return m.refresh()

	case spinner.TickMsg:
		if !m.state.Loading {
			m.spinning = false
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case tea.KeyPressMsg:
		if !m.visible {
			return nil
		}
		return m.handleKey(msg)
	}

	// Cursor blink and other textinput internals.
	if m.visible && m.state.Step == wizard.StepSearch {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}
	return nil
}

func (m *CreateForumModal) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if msg.String() == "esc" {
		m.Close()
		m.driver.Reset()
		m.state = m.driver.State()
		return nil
	}

	switch m.state.Step {
	case wizard.StepSearch:
		if m.state.Loading {
			return nil
		}
		if msg.String() == "enter" {
			return m.run("search", m.driver.Advance)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if v := m.input.Value(); v != m.state.SearchInput {
			m.driver.SetSearchInput(v)
			m.state = m.driver.State()
		}
		return cmd

	case wizard.StepSelect:
		switch msg.String() {
		case "left", "shift+tab":
			if err := m.driver.Retreat(); err != nil {
				return nil
			}
			return m.refresh()
		case "up", "k":
			m.moveCursor(-1)
		case "down", "j":
			m.moveCursor(1)
		case "enter":
			if m.state.Loading || len(m.state.Candidates) == 0 {
				return nil
			}
			if !m.state.HasSelection() {
				m.selectAt(m.cursor)
			}
			return m.run("create", m.driver.Submit)
		}
	}
	return nil
}

// run calls a blocking controller operation off the Update goroutine.
func (m *CreateForumModal) run(op string, fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return wizardOpDoneMsg{op: op, err: fn(ctx)}
	}
}

func (m *CreateForumModal) moveCursor(delta int) {
	if m.state.Loading || len(m.state.Candidates) == 0 {
		return
	}
	m.selectAt(min(max(m.cursor+delta, 0), len(m.state.Candidates)-1))
}

func (m *CreateForumModal) selectAt(i int) {
	if i < 0 || i >= len(m.state.Candidates) {
		return
	}
	m.cursor = i
	if err := m.driver.SelectCandidate(m.state.Candidates[i].ID); err != nil {
		logger.Debug("tui: select candidate: %v", err)
	}
	m.state = m.driver.State()
}

// refresh re-reads the controller state and adjusts focus, cursor and spinner.
func (m *CreateForumModal) refresh() tea.Cmd {
	m.state = m.driver.State()

	if idx := m.selectedIndex(); idx >= 0 {
		m.cursor = idx
	} else if m.cursor >= len(m.state.Candidates) {
		m.cursor = max(len(m.state.Candidates)-1, 0)
	}
	return tea.Batch(m.syncFocus(), m.syncSpinner())
}

func (m *CreateForumModal) selectedIndex() int {
	for i, c := range m.state.Candidates {
		if c.ID == m.state.SelectedCandidateID {
			return i
		}
	}
	return -1
}

func (m *CreateForumModal) syncFocus() tea.Cmd {
	if m.visible && m.state.Step == wizard.StepSearch {
		if !m.input.Focused() {
			return m.input.Focus()
		}
		return nil
	}
	m.input.Blur()
	return nil
}

func (m *CreateForumModal) syncSpinner() tea.Cmd {
	if m.state.Loading && !m.spinning {
		m.spinning = true
		return m.spinner.Tick
	}
	return nil
}

// View renders the modal box.
func (m *CreateForumModal) View() string {
	s := theme.Current().S()
	inner := m.width - modalChrome

	var title string
	if m.state.Step == wizard.StepSelect {
		title = "Create Forum · Step 2 of 2: Pick Channel"
	} else {
		title = "Create Forum · Step 1 of 2: Find Channel"
	}

	sections := []string{
		s.ModalTitle.Render(title),
		m.progress.ViewAs(float64(m.state.Progress) / 100),
		"",
	}

	if m.state.Step == wizard.StepSelect {
		sections = append(sections, m.candidatesView(inner)...)
	} else {
		sections = append(sections,
			s.ListMeta.Render("Enter the handle of the channel to build a forum for."),
			"",
			m.input.View(),
		)
	}

	sections = append(sections, "", m.statusLine(), "")
	sections = append(sections, m.buttons(inner), m.hints())

	return s.ModalContainer.Width(m.width).Render(strings.Join(sections, "\n"))
}

func (m *CreateForumModal) candidatesView(width int) []string {
	s := theme.Current().S()
	header := s.ListMeta.Render(fmt.Sprintf("Channels with at least %s subscribers", humanize.Comma(wizard.MinSubscribers)))
	if len(m.state.Candidates) == 0 {
		return []string{header, "", s.Muted.Render("No eligible channels found.")}
	}

	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+candidateRows {
		m.offset = m.cursor - candidateRows + 1
	}

	lines := []string{header, ""}
	end := min(m.offset+candidateRows, len(m.state.Candidates))
	for i := m.offset; i < end; i++ {
		c := m.state.Candidates[i]
		count := humanize.Comma(c.SubscriberCount)
		name := truncate(c.DisplayName, max(width-lipgloss.Width(count)-6, 1))
		marker := "( )"
		if c.ID == m.state.SelectedCandidateID {
			marker = "(•)"
		}
		row := fmt.Sprintf("%s %s", marker, name)
		if i == m.cursor {
			lines = append(lines, s.ListSelected.Render(row)+"  "+s.ListMeta.Render(count))
		} else {
			lines = append(lines, s.ListItem.Render(row)+"  "+s.ListMeta.Render(count))
		}
	}
	if len(m.state.Candidates) > candidateRows {
		lines = append(lines, s.Muted.Render(fmt.Sprintf("%d of %d", m.cursor+1, len(m.state.Candidates))))
	}
	return lines
}

func (m *CreateForumModal) statusLine() string {
	if !m.state.Loading {
		return ""
	}
	label := "Searching channels..."
	if m.state.Step == wizard.StepSelect {
		label = "Creating forum..."
	}
	return m.spinner.View() + " " + theme.Current().S().ListMeta.Render(label)
}

func (m *CreateForumModal) buttons(width int) string {
	if m.state.Step == wizard.StepSelect {
		canSubmit := !m.state.Loading && len(m.state.Candidates) > 0
		return RenderButtons(width, BackNextButtons(true, canSubmit, "Create")...)
	}
	return RenderButtons(width, CancelNextButtons(!m.state.Loading, "Next →")...)
}

func (m *CreateForumModal) hints() string {
	if m.state.Step == wizard.StepSelect {
		return RenderHintBar(KeyUpDown, "select", KeyEnter, "create", KeyBack, "back", KeyEsc, "close")
	}
	return RenderHintBar(KeyEnter, "search", KeyEsc, "close")
}

// Draw renders the modal centered in area.
func (m *CreateForumModal) Draw(scr uv.Screen, area uv.Rectangle) {
	if !m.visible {
		return
	}
	DrawCentered(scr, area, m.View())
}
