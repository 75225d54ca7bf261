package mcphost

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mark3labs/chanforum/internal/wizard"
	"github.com/mark3labs/mcp-go/mcp"
)

// stateView is the JSON shape returned by every tool.
type stateView struct {
	Step                int                `json:"step"`
	Progress            int                `json:"progress"`
	Loading             bool               `json:"loading"`
	SearchInput         string             `json:"search_input"`
	Candidates          []wizard.Candidate `json:"candidates"`
	SelectedCandidateID string             `json:"selected_candidate_id,omitempty"`
	Notifications       []noteView         `json:"notifications,omitempty"`
}

type noteView struct {
	Severity string `json:"severity"`
	Text     string `json:"text"`
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("search-channels",
			mcp.WithDescription("Search channels by handle and move the wizard to the selection step. "+
				"Only channels with at least 10000 subscribers are listed."),
			mcp.WithString("handle", mcp.Required(),
				mcp.Description("Channel handle, at least two characters"),
			),
		),
		s.handleSearchChannels,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("select-channel",
			mcp.WithDescription("Select one of the listed channels"),
			mcp.WithString("channel_id", mcp.Required(),
				mcp.Description("ID of a candidate returned by search-channels"),
			),
		),
		s.handleSelectChannel,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("create-forum",
			mcp.WithDescription("Create a forum for the selected channel. The wizard resets afterwards."),
		),
		s.handleCreateForum,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("reset-wizard",
			mcp.WithDescription("Discard the wizard state and start over"),
		),
		s.handleReset,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("wizard-state",
			mcp.WithDescription("Return the current wizard state"),
		),
		s.handleState,
	)
}

func (s *Server) handleSearchChannels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.callMu.Lock()
	defer s.callMu.Unlock()
	s.drainNotes()

	args := request.GetArguments()
	if args == nil {
		return mcp.NewToolResultError("no arguments provided"), nil
	}
	handle, ok := args["handle"].(string)
	if !ok {
		return mcp.NewToolResultError("missing 'handle' parameter"), nil
	}

	if s.ctrl.State().Step == wizard.StepSelect {
		// Leave the current results alone when the new handle would be rejected.
		if utf8.RuneCountInString(handle) < wizard.MinSearchInputLen {
			return mcp.NewToolResultError(fmt.Sprintf("handle too short: enter at least two characters (got %q)", handle)), nil
		}
		if err := s.ctrl.Retreat(); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	s.ctrl.SetSearchInput(handle)
	if err := s.ctrl.Advance(ctx); err != nil {
		return s.failure(err), nil
	}
	return s.result()
}

func (s *Server) handleSelectChannel(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.callMu.Lock()
	defer s.callMu.Unlock()
	s.drainNotes()

	args := request.GetArguments()
	if args == nil {
		return mcp.NewToolResultError("no arguments provided"), nil
	}
	id, ok := args["channel_id"].(string)
	if !ok || id == "" {
		return mcp.NewToolResultError("missing 'channel_id' parameter"), nil
	}

	st := s.ctrl.State()
	if st.Step != wizard.StepSelect {
		return mcp.NewToolResultError("no search results yet: call search-channels first"), nil
	}
	found := false
	for _, c := range st.Candidates {
		if c.ID == id {
			found = true
			break
		}
	}
	if !found {
		return mcp.NewToolResultError(fmt.Sprintf("channel %q is not among the listed candidates", id)), nil
	}

	if err := s.ctrl.SelectCandidate(id); err != nil {
		return s.failure(err), nil
	}
	return s.result()
}

func (s *Server) handleCreateForum(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.callMu.Lock()
	defer s.callMu.Unlock()
	s.drainNotes()

	if err := s.ctrl.Submit(ctx); err != nil {
		return s.failure(err), nil
	}
	return s.result()
}

func (s *Server) handleReset(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.callMu.Lock()
	defer s.callMu.Unlock()
	s.drainNotes()

	s.ctrl.Reset()
	return s.result()
}

func (s *Server) handleState(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.callMu.Lock()
	defer s.callMu.Unlock()
	return s.result()
}

// failure converts a controller precondition error into a tool error that
// includes any notification the call produced.
func (s *Server) failure(err error) *mcp.CallToolResult {
	msg := err.Error()
	switch {
	case errors.Is(err, wizard.ErrWrongStep):
		msg = "the wizard is on a different step; call wizard-state to see where it is"
	case errors.Is(err, wizard.ErrBusy):
		msg = "another wizard operation is in progress"
	case errors.Is(err, wizard.ErrNoSelection):
		msg = "no channel selected: call select-channel first"
	}
	var texts []string
	for _, n := range s.drainNotes() {
		texts = append(texts, n.Text())
	}
	if len(texts) > 0 {
		msg += ": " + strings.Join(texts, "; ")
	}
	return mcp.NewToolResultError(msg)
}

func (s *Server) result() (*mcp.CallToolResult, error) {
	st := s.ctrl.State()
	view := stateView{
		Step:                int(st.Step),
		Progress:            st.Progress,
		Loading:             st.Loading,
		SearchInput:         st.SearchInput,
		Candidates:          st.Candidates,
		SelectedCandidateID: st.SelectedCandidateID,
	}
	for _, n := range s.drainNotes() {
		view.Notifications = append(view.Notifications, noteView{Severity: string(n.Severity), Text: n.Text()})
	}

	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode wizard state: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
