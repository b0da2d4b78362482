package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gametech/walletledger/internal/config"
	"github.com/gametech/walletledger/internal/container"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	c := container.New(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := c.Initialize(ctx); err != nil {
		cancel()
		slog.Error("failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	cancel()

	if err := c.Run(); err != nil {
		c.Logger().Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := c.Shutdown(shutdownCtx); err != nil {
		c.Logger().Error("shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
