package app

import (
	"github.com/nfrund/salesdash/internal/config"
	"github.com/nfrund/salesdash/internal/dataset"
	"github.com/nfrund/salesdash/internal/domain"
	"github.com/nfrund/salesdash/internal/metrics"
	"github.com/nfrund/salesdash/internal/prediction"
	"github.com/nfrund/salesdash/internal/rendering"
	"github.com/nfrund/salesdash/internal/report"
	"github.com/nfrund/salesdash/internal/server"
	"github.com/samber/do/v2"
)

// NewServer resolves the server's dependencies from injector and mounts the routes.
func NewServer(injector do.Injector) (*server.Server, error) {
	store, err := do.Invoke[domain.CredentialRepository](injector)
	if err != nil {
		return nil, err
	}
	source, err := do.Invoke[dataset.Source](injector)
	if err != nil {
		return nil, err
	}

	s, err := server.New(server.Dependencies{
		Config:   do.MustInvoke[*config.Config](injector),
		Store:    store,
		Source:   source,
		Pipeline: do.MustInvoke[*prediction.Pipeline](injector),
		Emitter:  do.MustInvoke[*report.Emitter](injector),
		Metrics:  do.MustInvoke[*metrics.Metrics](injector),
		Renderer: do.MustInvoke[*rendering.UniversalRenderer](injector),
	})
	if err != nil {
		return nil, err
	}
	s.RegisterRoutes()
	return s, nil
}
