package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/chanforum/internal/appstate"
	"github.com/mark3labs/chanforum/internal/logger"
	"github.com/mark3labs/chanforum/internal/tui"
	"github.com/mark3labs/chanforum/internal/wizard"
	"github.com/spf13/cobra"
)

func runTUI(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	flag := appstate.NewCreationFlag()
	bridge := tui.NewBridge()
	unsubscribe := flag.Subscribe(bridge.CreationFlagChanged)
	defer unsubscribe()

	ctrl := wizard.New(wizard.Deps{
		Search:   e.client.SearchChannels,
		Create:   e.client.CreateForum,
		Notifier: bridge,
		Cache:    e.invalidator(),
		Flag:     flag,
		OnClose:  bridge.CloseWizard,
	}, wizard.WithStateObserver(bridge.Observe), wizard.WithBoardsKey(e.boards.Key()))

	events, err := e.boards.Watch(ctx)
	if err != nil {
		logger.Warn("watching board cache: %v", err)
	}

	return tui.Run(ctx, tui.RunOptions{
		Bridge:      bridge,
		Driver:      ctrl,
		Boards:      e.listBoards,
		Flag:        flag,
		BoardEvents: events,
	})
}
