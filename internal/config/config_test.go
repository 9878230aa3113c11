package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.Empty(t, cfg.Catalog.Path, "embedded catalog by default")
	require.True(t, cfg.Catalog.AutoReload)
	require.Equal(t, 1*time.Second, cfg.Catalog.ReloadDebounce)
	require.Equal(t, 5*time.Second, cfg.Coordinator.CycleInterval)
	require.Equal(t, 10*time.Second, cfg.Coordinator.EngineTimeout)
	require.False(t, cfg.Coordinator.DisableCache)
	require.False(t, cfg.Tracing.Enabled)
}

func TestValidate_Defaults(t *testing.T) {
	require.NoError(t, Validate(Defaults()))
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{
			name:   "negative cycle interval",
			mutate: func(c *Config) { c.Coordinator.CycleInterval = -time.Second },
		},
		{
			name:   "negative engine timeout",
			mutate: func(c *Config) { c.Coordinator.EngineTimeout = -time.Second },
		},
		{
			name:   "negative reload debounce",
			mutate: func(c *Config) { c.Catalog.ReloadDebounce = -time.Second },
		},
		{
			name:   "unknown tracing exporter",
			mutate: func(c *Config) { c.Tracing.Exporter = "kafka" },
		},
		{
			name:   "sample rate above one",
			mutate: func(c *Config) { c.Tracing.SampleRate = 1.5 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			require.Error(t, Validate(cfg))
		})
	}
}

func TestDefaultConfigTemplate_IsValidYAML(t *testing.T) {
	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(DefaultConfigTemplate()), &parsed))
	require.Contains(t, parsed, "catalog")
	require.Contains(t, parsed, "coordinator")
	require.Contains(t, parsed, "tracing")
}

func TestWriteDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(content))
}
