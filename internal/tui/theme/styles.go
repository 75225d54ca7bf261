package theme

import "charm.land/lipgloss/v2"

// Styles contains the pre-built lipgloss styles for the TUI.
type Styles struct {
	HeaderTitle lipgloss.Style
	StatusBar   lipgloss.Style
	Muted       lipgloss.Style

	HintKey       lipgloss.Style
	HintDesc      lipgloss.Style
	HintSeparator lipgloss.Style

	ListItem     lipgloss.Style
	ListSelected lipgloss.Style
	ListMeta     lipgloss.Style

	ModalContainer lipgloss.Style
	ModalTitle     lipgloss.Style

	ButtonNormal   lipgloss.Style
	ButtonDisabled lipgloss.Style
	ButtonFocused  lipgloss.Style

	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style
}

func (t *Theme) buildStyles() *Styles {
	button := lipgloss.NewStyle().Padding(0, 2).MarginLeft(1).MarginRight(1)
	toast := lipgloss.NewStyle().
		Foreground(HexToColor(t.BgBase)).
		Padding(0, 1).
		Bold(true)

	return &Styles{
		HeaderTitle: lipgloss.NewStyle().
			Foreground(HexToColor(t.Primary)).
			Bold(true),
		StatusBar: lipgloss.NewStyle().
			Foreground(HexToColor(t.FgSubtle)).
			Background(HexToColor(t.BgMantle)),
		Muted: lipgloss.NewStyle().
			Foreground(HexToColor(t.FgMuted)),

		HintKey: lipgloss.NewStyle().
			Foreground(HexToColor(t.FgBase)).
			Bold(true),
		HintDesc: lipgloss.NewStyle().
			Foreground(HexToColor(t.FgSubtle)),
		HintSeparator: lipgloss.NewStyle().
			Foreground(HexToColor(t.BgSurface2)),

		ListItem: lipgloss.NewStyle().
			Foreground(HexToColor(t.FgBase)),
		ListSelected: lipgloss.NewStyle().
			Foreground(HexToColor(t.BgBase)).
			Background(HexToColor(t.Secondary)).
			Bold(true),
		ListMeta: lipgloss.NewStyle().
			Foreground(HexToColor(t.FgSubtle)),

		ModalContainer: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(HexToColor(t.Secondary)).
			Background(HexToColor(t.BgBase)).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().
			Foreground(HexToColor(t.Primary)).
			Bold(true),

		ButtonNormal: button.
			Foreground(HexToColor(t.FgBase)).
			Background(HexToColor(t.BgSurface0)),
		ButtonDisabled: button.
			Foreground(HexToColor(t.FgMuted)).
			Background(HexToColor(t.BgMantle)),
		ButtonFocused: button.
			Foreground(HexToColor(t.BgBase)).
			Background(HexToColor(t.Secondary)).
			Bold(true),

		ToastSuccess: toast.Background(HexToColor(t.Success)),
		ToastWarning: toast.Background(HexToColor(t.Warning)),
		ToastError:   toast.Background(HexToColor(t.Error)),
	}
}
