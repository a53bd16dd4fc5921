package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/nfrund/salesdash/internal/app"
	"github.com/nfrund/salesdash/internal/config"
	"github.com/nfrund/salesdash/internal/logging"
	"github.com/nfrund/salesdash/internal/server"
	"github.com/spf13/afero"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	logging.New(cfg.LogFormat, cfg.LogLevel)

	injector := app.NewInjector(cfg, afero.NewOsFs())
	s, err := app.NewServer(injector)
	if err != nil {
		slog.Error("Failed to build server", "error", err)
		os.Exit(1)
	}

	ctx, stop := server.SignalContext(context.Background())
	defer stop()

	if err := s.Start(ctx); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
	if report := injector.Shutdown(); report != nil && !report.Succeed {
		slog.Warn("Service shutdown reported errors", "errors", report.Error())
	}
}
