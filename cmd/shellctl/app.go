package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/goatkit/adminshell/internal/config"
	"github.com/goatkit/adminshell/internal/i18n"
	"github.com/goatkit/adminshell/internal/plugin"
	"github.com/goatkit/adminshell/internal/plugin/manifest"
	"github.com/goatkit/adminshell/internal/plugins"
	"github.com/goatkit/adminshell/internal/store"
)

// app is the wired shell: translator, state store and plugin registry with
// the bundled and configured plugins registered.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	i18n     *i18n.Provider
	store    plugin.StateStore
	closer   io.Closer
	registry *plugin.Registry
	metrics  *prometheus.Registry
	bundle   *plugins.Bundle
}

func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: plugin.ParseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func newApp(ctx context.Context, cfg *config.Config, logOut io.Writer) (*app, error) {
	logger := newLogger(cfg.Log, logOut)

	tr, err := i18n.New(
		i18n.WithLanguage(cfg.Language),
		i18n.WithFallback(cfg.FallbackLanguage),
		i18n.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}

	st, closer, err := store.Open(ctx, cfg.State, logger)
	if err != nil {
		return nil, fmt.Errorf("open state store: %w", err)
	}

	metrics := prometheus.NewRegistry()
	reg := plugin.NewRegistry(
		plugin.WithStore(st),
		plugin.WithTranslator(tr),
		plugin.WithLogger(logger),
		plugin.WithMetrics(plugin.NewMetrics(metrics)),
		plugin.WithBatchConcurrency(cfg.Batch.Concurrency),
	)
	// A broken state store leaves every plugin inactive but usable.
	if err := reg.Init(ctx); err != nil {
		logger.Warn("starting with all plugins inactive", "error", err)
	}

	a := &app{
		cfg:      cfg,
		logger:   logger,
		i18n:     tr,
		store:    st,
		closer:   closer,
		registry: reg,
		metrics:  metrics,
		bundle:   plugins.NewBundle(),
	}
	if err := a.registerPlugins(ctx); err != nil {
		closer.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) registerPlugins(ctx context.Context) error {
	bundled, err := a.bundle.Descriptors()
	if err != nil {
		return err
	}
	for _, d := range bundled {
		if err := a.registry.Register(ctx, d); err != nil {
			return fmt.Errorf("register bundled plugin %s: %w", d.ID, err)
		}
	}

	if a.cfg.Plugins.ManifestsDir == "" {
		return nil
	}
	extra, err := manifest.LoadDir(a.cfg.Plugins.ManifestsDir)
	if err != nil {
		a.logger.Error("some plugin manifests were skipped", "dir", a.cfg.Plugins.ManifestsDir, "error", err)
	}
	for _, d := range extra {
		if err := a.registry.Register(ctx, d); err != nil {
			a.logger.Error("plugin manifest not registered", "plugin", d.ID, "error", err)
		}
	}
	return nil
}

func (a *app) Close() error {
	return a.closer.Close()
}
