package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mark3labs/chanforum/internal/cache"
	"github.com/mark3labs/chanforum/internal/config"
	"github.com/mark3labs/chanforum/internal/forumapi"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration, API and cache",
	RunE:  runDoctor,
}

type check struct {
	name string
	warn bool // failure is reported but not counted
	run  func(ctx context.Context, cfg *config.Config) error
}

var doctorChecks = []check{
	{"config file", true, func(_ context.Context, _ *config.Config) error {
		if !config.Exists() {
			return fmt.Errorf("none found, using defaults (run 'chanforum setup')")
		}
		return nil
	}},
	{"config values", false, func(_ context.Context, cfg *config.Config) error {
		return cfg.Validate()
	}},
	{"forum API", false, func(ctx context.Context, cfg *config.Config) error {
		_, err := forumapi.New(cfg.APIURL, cfg.APIToken, cfg.RequestTimeout).ListBoards(ctx)
		return err
	}},
	{"cache", false, func(ctx context.Context, cfg *config.Config) error {
		if cfg.CacheBackend == config.CacheNATS || cfg.CacheBackend == "" {
			if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
				return err
			}
		}
		store, err := cache.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer store.Close()
		const probe = "doctor.probe"
		if err := store.Put(ctx, probe, []byte("ok")); err != nil {
			return err
		}
		return store.Invalidate(ctx, probe)
	}},
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	failed := runChecks(cmd.Context(), cmd.OutOrStdout(), cfg, doctorChecks)
	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	return nil
}

func runChecks(ctx context.Context, w io.Writer, cfg *config.Config, checks []check) int {
	failed := 0
	for _, c := range checks {
		cctx, cancel := context.WithTimeout(ctx, 15*time.Second)
		err := c.run(cctx, cfg)
		cancel()
		switch {
		case err != nil && c.warn:
			fmt.Fprintf(w, "! %s: %v\n", c.name, err)
			continue
		case err != nil:
			failed++
			fmt.Fprintf(w, "✗ %s: %v\n", c.name, err)
			continue
		}
		fmt.Fprintf(w, "✓ %s\n", c.name)
	}
	return failed
}
