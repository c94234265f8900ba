package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rpggio/labcoats/internal/client"
	"github.com/rpggio/labcoats/internal/config"
	"github.com/rpggio/labcoats/internal/domain/material"
	"github.com/rpggio/labcoats/internal/domain/saved"
	"github.com/rpggio/labcoats/internal/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	if err := ensureDir(cfg.Client.StorePath); err != nil {
		logger.Error("failed to prepare store path", "error", err)
		os.Exit(1)
	}
	db, err := sqlite.New(cfg.Client.StorePath)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	api := client.NewAPIClient(cfg.Client.ServerURL, nil)
	materials := material.Catalog()
	fetchCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	if remote, err := api.Materials(fetchCtx); err != nil {
		logger.Warn("using built-in material list", "server", cfg.Client.ServerURL, "error", err)
	} else {
		materials = remote
	}
	cancel()

	savedSvc := saved.NewService(sqlite.NewSavedRepository(db), logger)
	session := client.NewSession(api, savedSvc)

	if err := client.NewTerminal(session, materials, os.Stdout).Run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
		logger.Error("terminal error", "error", err)
		os.Exit(1)
	}
}

func ensureDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
