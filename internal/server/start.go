package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/nfrund/salesdash/internal/dataset"
)

const shutdownTimeout = 10 * time.Second

// Start runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully. When dataset watching is enabled and the source is a cache, a
// watcher goroutine invalidates it on file changes for the server's lifetime.
func (s *Server) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cache, ok := s.source.(*dataset.Cache); ok && s.Cfg.WatchDataset {
		go func() {
			if err := cache.Watch(ctx, s.Cfg.DatasetPath); err != nil {
				slog.Error("Dataset watcher stopped", "path", s.Cfg.DatasetPath, "error", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "addr", s.Cfg.Addr)
		if err := s.E.Start(s.Cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	return s.E.Shutdown(shutdownCtx)
}
