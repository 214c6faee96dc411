// Package app provides the top-level application lifecycle for betctl. It
// wires the exchange client together with its stores, caches, blob storage
// and notification channels, then runs whichever mode the configuration
// selects.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nunnsy/betfair/internal/config"
)

// App is the root application object. It owns the configuration, logger, and a
// list of cleanup functions that are called in reverse order on shutdown.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	closers []func()
}

// New creates a new App from the given configuration and logger.
func New(cfg *config.Config, logger *slog.Logger) *App {
	return &App{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "app")),
	}
}

// Run is the main entry point. It wires all dependencies, dispatches to the
// configured mode, and blocks until the mode returns or the context is
// cancelled. Most modes are one-shot jobs; serve runs until cancelled.
func (a *App) Run(ctx context.Context) error {
	a.logger.InfoContext(ctx, "starting",
		slog.String("mode", a.cfg.Mode),
		slog.String("log_level", a.cfg.LogLevel),
	)

	deps, cleanup, err := Wire(ctx, a.cfg)
	if err != nil {
		return fmt.Errorf("app: wire dependencies: %w", err)
	}
	a.closers = append(a.closers, cleanup)

	mode := strings.ToLower(a.cfg.Mode)
	switch mode {
	case "login":
		return a.LoginMode(ctx, deps)
	case "markets":
		return a.MarketsMode(ctx, deps)
	case "book":
		return a.BookMode(ctx, deps)
	case "orders":
		return a.OrdersMode(ctx, deps)
	case "place":
		return a.PlaceMode(ctx, deps)
	case "cancel":
		return a.CancelMode(ctx, deps)
	case "settled":
		return a.SettledMode(ctx, deps)
	case "account":
		return a.AccountMode(ctx, deps)
	case "serve":
		return a.ServeMode(ctx, deps)
	default:
		return fmt.Errorf("app: unsupported mode %q", a.cfg.Mode)
	}
}

// Close tears down all resources in reverse registration order. It is safe to
// call multiple times; subsequent calls are no-ops.
func (a *App) Close() {
	a.logger.Info("shutting down")
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
