package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"langtagger/internal/api"
	"langtagger/internal/config"
	"langtagger/internal/library"
	"langtagger/internal/library/jellyfin"
	"langtagger/internal/library/local"
	"langtagger/internal/logging"
	"langtagger/internal/scan"
	"langtagger/internal/state"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) apiClient() (*api.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return api.NewClient(cfg.API.Bind, cfg.API.Token)
}

// runtime bundles what an in-process pass needs.
type runtime struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *state.Store
	lib    library.Library
	orch   *scan.Orchestrator
}

func (c *commandContext) openRuntime() (*runtime, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	store, err := state.Open(cfg)
	if err != nil {
		return nil, err
	}
	lib, err := buildLibrary(cfg, store, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return &runtime{
		cfg:    cfg,
		logger: logger,
		store:  store,
		lib:    lib,
		orch:   scan.New(cfg, lib, store, logger),
	}, nil
}

func (r *runtime) Close() error {
	return r.store.Close()
}

// buildLibrary selects the configured backend. The local backend keeps its
// tags in the state database.
func buildLibrary(cfg *config.Config, store *state.Store, logger *slog.Logger) (library.Library, error) {
	switch cfg.Library.Backend {
	case config.BackendLocal:
		return local.New(cfg.Library.MoviesDir, cfg.Library.TVDir, store, logger), nil
	case config.BackendJellyfin:
		client, err := jellyfin.NewFromConfig(cfg, logger)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("library.backend: unsupported value %q", cfg.Library.Backend)
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
