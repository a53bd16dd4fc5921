// Package app wires the application's services into a samber/do injector
// shared by the server and the CLI.
package app

import (
	"context"
	"fmt"

	"github.com/nfrund/salesdash/internal/config"
	"github.com/nfrund/salesdash/internal/credentials"
	"github.com/nfrund/salesdash/internal/dataset"
	"github.com/nfrund/salesdash/internal/domain"
	"github.com/nfrund/salesdash/internal/metrics"
	"github.com/nfrund/salesdash/internal/prediction"
	"github.com/nfrund/salesdash/internal/rendering"
	"github.com/nfrund/salesdash/internal/report"
	"github.com/samber/do/v2"
	"github.com/spf13/afero"
)

// Services is the package of providers for every core service. Each one is
// lazy: it is built on first use.
var Services = do.Package(
	do.Lazy(provideStore),
	do.Lazy(provideCredentialRepository),
	do.Lazy(provideCache),
	do.Lazy(provideSource),
	do.Lazy(providePipeline),
	do.Lazy(provideEmitter),
	do.Lazy(func(do.Injector) (*metrics.Metrics, error) { return metrics.New(), nil }),
	do.Lazy(func(do.Injector) (*rendering.UniversalRenderer, error) { return rendering.NewUniversalRenderer(), nil }),
)

// NewInjector creates a root scope holding cfg and fs plus the Services package.
// Tests pass an in-memory afero filesystem.
func NewInjector(cfg *config.Config, fs afero.Fs) *do.RootScope {
	injector := do.New()
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, fs)
	Services(injector)
	return injector
}

func provideStore(i do.Injector) (*credentials.Store, error) {
	cfg := do.MustInvoke[*config.Config](i)
	fs := do.MustInvoke[afero.Fs](i)
	store, err := credentials.NewStore(context.Background(), fs, cfg.UserFile)
	if err != nil {
		return nil, fmt.Errorf("open credential store: %w", err)
	}
	return store, nil
}

func provideCredentialRepository(i do.Injector) (domain.CredentialRepository, error) {
	return do.Invoke[*credentials.Store](i)
}

func provideCache(i do.Injector) (*dataset.Cache, error) {
	cfg := do.MustInvoke[*config.Config](i)
	fs := do.MustInvoke[afero.Fs](i)
	return dataset.NewCache(dataset.NewFileSource(fs, cfg.DatasetPath)), nil
}

// provideSource returns the watched cache when watching is enabled. Otherwise
// the file is read on every call, as nothing would invalidate a cache.
func provideSource(i do.Injector) (dataset.Source, error) {
	cfg := do.MustInvoke[*config.Config](i)
	if cfg.WatchDataset {
		return do.Invoke[*dataset.Cache](i)
	}
	return dataset.NewFileSource(do.MustInvoke[afero.Fs](i), cfg.DatasetPath), nil
}

func providePipeline(i do.Injector) (*prediction.Pipeline, error) {
	src, err := do.Invoke[dataset.Source](i)
	if err != nil {
		return nil, err
	}
	return prediction.NewPipeline(src), nil
}

func provideEmitter(i do.Injector) (*report.Emitter, error) {
	cfg := do.MustInvoke[*config.Config](i)
	fs := do.MustInvoke[afero.Fs](i)
	return report.NewEmitter(fs, cfg.ReportPath, cfg.ReportCurrency), nil
}
