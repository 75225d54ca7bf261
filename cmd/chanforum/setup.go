package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/chanforum/internal/config"
	"github.com/spf13/cobra"
)

var setupFlags struct {
	project bool
	force   bool
	apiURL  string
	token   string
	backend string
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create chanforum configuration file",
	Long: `Create a chanforum configuration file with sensible defaults.

By default, creates a global config at ~/.config/chanforum/chanforum.yml.
Use --project to create a project-local config in the current directory.`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVarP(&setupFlags.project, "project", "p", false, "Create config in current directory instead of global location")
	setupCmd.Flags().BoolVarP(&setupFlags.force, "force", "f", false, "Overwrite existing config file")
	setupCmd.Flags().StringVar(&setupFlags.apiURL, "api-url", "", "Base URL of the forum API")
	setupCmd.Flags().StringVar(&setupFlags.token, "token", "", "API bearer token")
	setupCmd.Flags().StringVar(&setupFlags.backend, "cache", "", "Cache backend: nats, redis or memory")
}

func runSetup(cmd *cobra.Command, args []string) error {
	targetPath := config.GlobalPath()
	if setupFlags.project {
		targetPath = config.ProjectPath()
	}

	if !setupFlags.force && fileExists(targetPath) {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
	}

	cfg := config.Default()
	if setupFlags.apiURL != "" {
		cfg.APIURL = setupFlags.apiURL
	}
	if setupFlags.token != "" {
		cfg.APIToken = setupFlags.token
	}
	if setupFlags.backend != "" {
		cfg.CacheBackend = setupFlags.backend
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid setup flags: %w", err)
	}

	var err error
	if setupFlags.project {
		err = config.WriteProject(cfg)
	} else {
		err = config.WriteGlobal(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config written to: %s\n\n", targetPath)
	fmt.Fprintln(out, "Run 'chanforum' to get started.")
	return nil
}

// fileExists checks if a file exists (helper for setup command).
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
