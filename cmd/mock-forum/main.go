// Command mock-forum serves an in-memory forum API for local development.
package main

import (
	"os"
	"time"

	"github.com/mark3labs/chanforum/internal/logger"
	"github.com/mark3labs/chanforum/internal/mockforum"
)

func main() {
	defer func() { _ = logger.Close() }()
	logger.Default.SetOutput(os.Stderr)

	if err := logger.Configure(envOr("LOG_LEVEL", "info"), ""); err != nil {
		logger.Warn("bad LOG_LEVEL: %v", err)
	}

	var d time.Duration
	if v := os.Getenv("MOCK_DELAY"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			logger.Error("bad MOCK_DELAY %q: %v", v, err)
			os.Exit(1)
		}
		d = parsed
	}

	r := mockforum.New(mockforum.Options{
		Token: os.Getenv("MOCK_TOKEN"),
		Delay: d,
	})

	port := envOr("PORT", "8080")
	logger.Info("mock-forum listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		logger.Error("mock-forum stopped: %v", err)
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
