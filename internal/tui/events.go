package tui

import (
	"github.com/mark3labs/chanforum/internal/forumapi"
	"github.com/mark3labs/chanforum/internal/wizard"
)

// WizardStateMsg carries a create wizard snapshot.
type WizardStateMsg struct {
	State wizard.State
}

// WizardClosedMsg asks the host to hide the create wizard.
type WizardClosedMsg struct{}

// wizardOpDoneMsg reports the return of a blocking controller call.
type wizardOpDoneMsg struct {
	op  string
	err error
}

// BoardsLoadedMsg carries the result of a board list fetch.
type BoardsLoadedMsg struct {
	Boards []forumapi.Board
	Err    error
}

// BoardsInvalidatedMsg is sent when the cached board list was dropped.
type BoardsInvalidatedMsg struct{}

// CreationFlagMsg mirrors the process-wide forum creation flag.
type CreationFlagMsg struct {
	InFlight bool
}
