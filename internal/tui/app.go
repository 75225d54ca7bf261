// Package tui is the Bubbletea interface of chanforum: a board list with a
// create forum wizard on top.
package tui

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/chanforum/internal/forumapi"
	"github.com/mark3labs/chanforum/internal/logger"
	"github.com/mark3labs/chanforum/internal/tui/theme"
	"github.com/mark3labs/chanforum/internal/wizard"
)

// BoardsFunc loads the board list.
type BoardsFunc func(ctx context.Context) ([]forumapi.Board, error)

// FlagReader exposes the process-wide creation flag.
type FlagReader interface {
	Get() bool
}

// App is the main Bubbletea model.
type App struct {
	ctx    context.Context
	boards BoardsFunc
	flag   FlagReader

	list  *BoardList
	modal *CreateForumModal
	toast *Toast

	creating bool
	width    int
	height   int
	quitting bool
}

// NewApp creates the root model. driver is usually a *wizard.Controller wired
// to a Bridge; flag may be nil.
func NewApp(ctx context.Context, driver WizardDriver, boards BoardsFunc, flag FlagReader) *App {
	a := &App{
		ctx:    ctx,
		boards: boards,
		flag:   flag,
		list:   NewBoardList(),
		modal:  NewCreateForumModal(ctx, driver),
		toast:  NewToast(),
		width:  80,
		height: 24,
	}
	if flag != nil {
		a.creating = flag.Get()
	}
	return a
}

// Init loads the boards.
func (a *App) Init() tea.Cmd {
	return a.loadBoards()
}

// Update handles incoming messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return a, a.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.modal.SetSize(msg.Width, msg.Height)
		return a, nil

	case BoardsLoadedMsg:
		if msg.Err != nil {
			logger.Error("tui: load boards: %v", msg.Err)
		}
		a.list.SetBoards(msg.Boards, msg.Err)
		return a, nil

	case BoardsInvalidatedMsg:
		return a, a.loadBoards()

	case CreationFlagMsg:
		a.creating = msg.InFlight
		return a, nil

	case WizardClosedMsg:
		a.modal.Close()
		return a, nil

	case ShowToastMsg, ToastDismissMsg:
		return a, a.toast.Update(msg)
	}

	return a, a.modal.Update(msg)
}

func (a *App) handleKeyPress(msg tea.KeyPressMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		a.quitting = true
		return tea.Quit
	}

	if a.modal.IsVisible() {
		return a.modal.Update(msg)
	}

	switch msg.String() {
	case "q":
		a.quitting = true
		return tea.Quit
	case "n":
		if a.creationInFlight() {
			return a.toast.Show(ShowToastMsg{
				Text:     "A forum is being created. Try again when it finishes.",
				Severity: wizard.SeverityWarning,
			})
		}
		a.modal.SetSize(a.width, a.height)
		return a.modal.Open()
	case "r":
		return a.loadBoards()
	}
	return a.list.Update(msg)
}

func (a *App) creationInFlight() bool {
	if a.flag != nil {
		return a.flag.Get()
	}
	return a.creating
}

func (a *App) loadBoards() tea.Cmd {
	if a.boards == nil {
		return nil
	}
	a.list.SetLoading()
	ctx, fetch := a.ctx, a.boards
	return func() tea.Msg {
		boards, err := fetch(ctx)
		return BoardsLoadedMsg{Boards: boards, Err: err}
	}
}

// View renders the application.
func (a *App) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if a.quitting {
		view.AltScreen = false
		view.Content = lipgloss.NewLayer("")
		return view
	}

	canvas := uv.NewScreenBuffer(a.width, a.height)
	a.Draw(canvas, canvas.Bounds())
	view.Content = lipgloss.NewLayer(canvas.Render())
	view.BackgroundColor = theme.HexToColor(theme.Current().BgCrust)
	return view
}

// Draw renders all components to the screen buffer.
func (a *App) Draw(scr uv.Screen, area uv.Rectangle) {
	if area.Dy() < 3 {
		return
	}
	s := theme.Current().S()

	header := uv.Rect(area.Min.X, area.Min.Y, area.Dx(), 1)
	DrawText(scr, header, s.HeaderTitle.Render("chanforum")+" "+s.Muted.Render(a.summary()))

	body := uv.Rect(area.Min.X, area.Min.Y+2, area.Dx(), area.Dy()-3)
	a.list.Draw(scr, body)

	status := uv.Rect(area.Min.X, area.Max.Y-1, area.Dx(), 1)
	DrawStyled(scr, status, s.StatusBar, a.statusText())

	a.modal.Draw(scr, area)
	a.toast.Draw(scr, area)
}

func (a *App) summary() string {
	if a.creationInFlight() {
		return "· creating forum..."
	}
	return fmt.Sprintf("· %d boards", len(a.list.Boards()))
}

func (a *App) statusText() string {
	if a.modal.IsVisible() {
		return " " + RenderHintBar(KeyInterrupt, "quit")
	}
	newDesc := "new forum"
	if a.creationInFlight() {
		newDesc = "new forum (busy)"
	}
	return " " + RenderHintBar(KeyUpDown, "move", KeyNew, newDesc, KeyRefresh, "refresh", KeyQuit, "quit")
}

// Modal returns the create forum modal.
func (a *App) Modal() *CreateForumModal {
	return a.modal
}

// Toast returns the toast component.
func (a *App) Toast() *Toast {
	return a.toast
}

// List returns the board list component.
func (a *App) List() *BoardList {
	return a.list
}
