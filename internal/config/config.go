// Package config provides configuration types and defaults for the terminal core.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/liquidity2/terminal/internal/log"
	"github.com/liquidity2/terminal/internal/tracing"
)

// CoordinatorConfig holds refresh-cycle coordinator options.
type CoordinatorConfig struct {
	// CycleInterval is the pause between refresh cycles in daemon mode.
	CycleInterval time.Duration `mapstructure:"cycle_interval"`

	// EngineTimeout bounds a single engine computation. Zero means no limit.
	EngineTimeout time.Duration `mapstructure:"engine_timeout"`

	// DisableCache forces every engine to recompute each cycle, ignoring
	// refresh intervals. Useful when replaying catalogs in development.
	DisableCache bool `mapstructure:"disable_cache"`
}

// CatalogConfig holds engine-catalog options.
type CatalogConfig struct {
	// Path points at a catalog YAML file. Empty uses the embedded catalog.
	Path string `mapstructure:"path"`

	// AutoReload watches the catalog file and hot-swaps snapshots on change.
	// Only meaningful when Path is set.
	AutoReload bool `mapstructure:"auto_reload"`

	// ReloadDebounce coalesces rapid catalog writes into one reload.
	ReloadDebounce time.Duration `mapstructure:"reload_debounce"`
}

// Config holds all configuration options for the terminal core.
type Config struct {
	Catalog     CatalogConfig     `mapstructure:"catalog"`
	Coordinator CoordinatorConfig `mapstructure:"coordinator"`
	Tracing     tracing.Config    `mapstructure:"tracing"`
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		Catalog: CatalogConfig{
			Path:           "",
			AutoReload:     true,
			ReloadDebounce: 1 * time.Second,
		},
		Coordinator: CoordinatorConfig{
			CycleInterval: 5 * time.Second,
			EngineTimeout: 10 * time.Second,
			DisableCache:  false,
		},
		Tracing: tracing.DefaultConfig(),
	}
}

// Validate checks the configuration for errors. Zero values fall back to
// defaults and are valid.
func Validate(cfg Config) error {
	if cfg.Coordinator.CycleInterval < 0 {
		return fmt.Errorf("coordinator.cycle_interval cannot be negative, got %s", cfg.Coordinator.CycleInterval)
	}
	if cfg.Coordinator.EngineTimeout < 0 {
		return fmt.Errorf("coordinator.engine_timeout cannot be negative, got %s", cfg.Coordinator.EngineTimeout)
	}
	if cfg.Catalog.ReloadDebounce < 0 {
		return fmt.Errorf("catalog.reload_debounce cannot be negative, got %s", cfg.Catalog.ReloadDebounce)
	}
	if cfg.Catalog.AutoReload && cfg.Catalog.Path == "" {
		// Embedded catalog cannot change underneath us; auto reload is a
		// no-op rather than an error.
		log.Debug(log.CatConfig, "auto_reload ignored for embedded catalog")
	}

	switch cfg.Tracing.Exporter {
	case "", "none", "file", "stdout", "otlp":
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", cfg.Tracing.Exporter)
	}
	if cfg.Tracing.SampleRate < 0 || cfg.Tracing.SampleRate > 1 {
		return fmt.Errorf("tracing.sample_rate must be in [0, 1], got %v", cfg.Tracing.SampleRate)
	}

	return nil
}

// DefaultConfigTemplate returns the commented YAML written on first run.
func DefaultConfigTemplate() string {
	return `# liq2 terminal core configuration

catalog:
  # Path to an engine catalog file. Leave empty to use the built-in catalog.
  path: ""
  # Watch the catalog file and hot-reload it as a whole batch on change.
  auto_reload: true
  reload_debounce: 1s

coordinator:
  # Pause between refresh cycles in daemon mode.
  cycle_interval: 5s
  # Upper bound for a single engine computation.
  engine_timeout: 10s
  # Recompute every engine each cycle, ignoring refresh intervals.
  disable_cache: false

tracing:
  enabled: false
  # Exporter: none, file, stdout, or otlp.
  exporter: file
  file_path: ""
  otlp_endpoint: localhost:4317
  sample_rate: 1.0
  service_name: liq2-terminal
`
}

// WriteDefaultConfig writes the default config template to the given path,
// creating parent directories as needed.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
