package tui

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/chanforum/internal/logger"
	"golang.org/x/sync/errgroup"
)

// RunOptions wires the interactive program.
type RunOptions struct {
	Bridge *Bridge
	Driver WizardDriver
	Boards BoardsFunc
	Flag   FlagReader
	// BoardEvents fires when the cached board list is invalidated. Optional.
	BoardEvents <-chan struct{}
}

// Run starts the program and the goroutines feeding it, and blocks until the
// user quits or ctx ends.
func Run(ctx context.Context, opts RunOptions) error {
	if opts.Bridge == nil || opts.Driver == nil {
		return errors.New("tui: bridge and driver are required")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app := NewApp(ctx, opts.Driver, opts.Boards, opts.Flag)
	p := tea.NewProgram(app, tea.WithContext(ctx))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return opts.Bridge.Run(gctx, p)
	})
	if opts.BoardEvents != nil {
		g.Go(func() error {
			return opts.Bridge.WatchBoards(gctx, opts.BoardEvents)
		})
	}
	g.Go(func() error {
		// Stop the feeders once the program exits.
		defer cancel()
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("run tui: %w", err)
		}
		logger.Debug("tui: program exited")
		return nil
	})
	return g.Wait()
}
