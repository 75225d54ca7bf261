package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/chanforum/internal/cache"
	"github.com/mark3labs/chanforum/internal/config"
	"github.com/mark3labs/chanforum/internal/forumapi"
	"github.com/mark3labs/chanforum/internal/logger"
)

// env is the shared runtime every command builds from config.
type env struct {
	cfg    *config.Config
	client *forumapi.Client
	store  cache.Store
	boards *cache.BoardCache
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, fmt.Errorf("failed to configure logger: %w", err)
	}
	return cfg, nil
}

func newEnv(ctx context.Context) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	store, err := cache.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	logger.Debug("cache backend %s ready", cfg.CacheBackend)

	return &env{
		cfg:    cfg,
		client: forumapi.New(cfg.APIURL, cfg.APIToken, cfg.RequestTimeout),
		store:  store,
		boards: cache.NewBoardCache(store),
	}, nil
}

func (e *env) listBoards(ctx context.Context) ([]forumapi.Board, error) {
	return e.boards.Boards(ctx, e.client.ListBoards)
}

func (e *env) invalidator() cache.Invalidator {
	return cache.Invalidator{Store: e.store}
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		logger.Warn("closing cache: %v", err)
	}
}
