package main

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/mark3labs/chanforum/internal/appstate"
	"github.com/mark3labs/chanforum/internal/wizard"
	"github.com/spf13/cobra"
)

var createFlags struct {
	handle string
	pick   string
	first  bool
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a forum without the TUI",
	Long: `Run the create-forum wizard headlessly.

The channels matching --handle are listed. With --pick or --first the forum is
created for that channel; otherwise the command stops after the search.`,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVarP(&createFlags.handle, "handle", "H", "", "Channel handle to search for")
	createCmd.Flags().StringVarP(&createFlags.pick, "pick", "p", "", "ID of the channel to create the forum for")
	createCmd.Flags().BoolVar(&createFlags.first, "first", false, "Create the forum for the first eligible channel")
	_ = createCmd.MarkFlagRequired("handle")
	createCmd.MarkFlagsMutuallyExclusive("pick", "first")
}

// notePrinter writes wizard notifications and remembers whether any failed.
type notePrinter struct {
	mu     sync.Mutex
	w      io.Writer
	failed bool
}

func (p *notePrinter) Notify(n wizard.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n.Severity != wizard.SeveritySuccess {
		p.failed = true
	}
	fmt.Fprintf(p.w, "[%s] %s\n", n.Severity, n.Text())
}

func (p *notePrinter) Failed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.failed
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	out := cmd.OutOrStdout()
	notes := &notePrinter{w: cmd.ErrOrStderr()}
	ctrl := wizard.New(wizard.Deps{
		Search:   e.client.SearchChannels,
		Create:   e.client.CreateForum,
		Notifier: notes,
		Cache:    e.invalidator(),
		Flag:     appstate.NewCreationFlag(),
	}, wizard.WithBoardsKey(e.boards.Key()))

	ctrl.SetSearchInput(createFlags.handle)
	if err := ctrl.Advance(ctx); err != nil {
		return fmt.Errorf("search not started: %w", err)
	}
	st := ctrl.State()
	if st.Step != wizard.StepSelect {
		return errors.New("search was cancelled")
	}
	if notes.Failed() {
		return errors.New("channel search failed")
	}

	if len(st.Candidates) == 0 {
		fmt.Fprintln(out, "No eligible channels found.")
		return nil
	}
	for _, c := range st.Candidates {
		fmt.Fprintf(out, "%s\t%s\t%d subscribers\n", c.ID, c.DisplayName, c.SubscriberCount)
	}

	id := createFlags.pick
	if createFlags.first {
		id = st.Candidates[0].ID
	}
	if id == "" {
		return nil
	}
	if !hasCandidate(st.Candidates, id) {
		return fmt.Errorf("channel %q is not among the eligible channels", id)
	}
	if err := ctrl.SelectCandidate(id); err != nil {
		return fmt.Errorf("select channel: %w", err)
	}
	if err := ctrl.Submit(ctx); err != nil {
		return fmt.Errorf("create not started: %w", err)
	}
	if notes.Failed() {
		return errors.New("forum was not created")
	}
	return nil
}

func hasCandidate(cs []wizard.Candidate, id string) bool {
	for _, c := range cs {
		if c.ID == id {
			return true
		}
	}
	return false
}
