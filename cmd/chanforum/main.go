package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/mark3labs/chanforum/internal/logger"
	"github.com/spf13/cobra"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "chanforum",
	Short: "Create discussion boards for your channels",
	Long: `chanforum manages the discussion boards attached to your channels.

Running it without a subcommand opens the board list. Press n to start the
two-step wizard: search your channels by handle, pick one with enough
subscribers, and create its forum.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(boardsCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(doctorCmd)
}
