package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/chanforum/internal/appstate"
	"github.com/mark3labs/chanforum/internal/mcphost"
	"github.com/mark3labs/chanforum/internal/wizard"
	"github.com/spf13/cobra"
)

var mcpFlags struct {
	http string
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the create-forum wizard as MCP tools",
	Long: `Expose the create-forum wizard to MCP clients.

Serves on stdio by default. Use --http to serve streamable HTTP instead.`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpFlags.http, "http", "", "Serve over HTTP on this address (e.g. 127.0.0.1:8765)")
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	srv := mcphost.New(wizard.Deps{
		Search: e.client.SearchChannels,
		Create: e.client.CreateForum,
		Cache:  e.invalidator(),
		Flag:   appstate.NewCreationFlag(),
	}, version, wizard.WithBoardsKey(e.boards.Key()))

	if mcpFlags.http == "" {
		return srv.ServeStdio(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
	}

	url, err := srv.Start(mcpFlags.http)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on %s\n", url)
	<-ctx.Done()
	return srv.Stop()
}
