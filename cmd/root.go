package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/liquidity2/terminal/internal/catalog"
	"github.com/liquidity2/terminal/internal/config"
	"github.com/liquidity2/terminal/internal/log"
	"github.com/liquidity2/terminal/internal/pubsub"
)

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:     "liq2",
	Short:   "Computation core for the LIQUIDITY² terminal",
	Long:    `Engine catalog, dependency validation, tiered scheduling, and the refresh-cycle coordinator behind the LIQUIDITY² terminal.`,
	Version: version,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/liq2/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&cfg.Catalog.Path, "catalog", "",
		"engine catalog file (default: built-in catalog)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"enable debug logging to stderr")

	_ = viper.BindPFlag("catalog.path", rootCmd.PersistentFlags().Lookup("catalog"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("catalog.auto_reload", defaults.Catalog.AutoReload)
	viper.SetDefault("catalog.reload_debounce", defaults.Catalog.ReloadDebounce)
	viper.SetDefault("coordinator.cycle_interval", defaults.Coordinator.CycleInterval)
	viper.SetDefault("coordinator.engine_timeout", defaults.Coordinator.EngineTimeout)
	viper.SetDefault("coordinator.disable_cache", defaults.Coordinator.DisableCache)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .liq2/config.yaml (current directory)
		// 2. ~/.config/liq2/config.yaml (user config)
		if _, err := os.Stat(".liq2/config.yaml"); err == nil {
			viper.SetConfigFile(".liq2/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "liq2"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".liq2/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)

	if debugFlag {
		log.InitWithWriter(os.Stderr)
		log.SetMinLevel(log.LevelDebug)
	}
}

// openCatalog publishes a snapshot from the configured catalog source: the
// file named by catalog.path, or the built-in catalog when unset.
func openCatalog(events *pubsub.Broker[catalog.ChangeEvent]) (*catalog.Service, *catalog.Snapshot, error) {
	svc := catalog.NewService(events)

	var snapshot *catalog.Snapshot
	var err error
	if cfg.Catalog.Path != "" {
		snapshot, err = svc.LoadFile(cfg.Catalog.Path)
	} else {
		snapshot, err = svc.LoadBuiltin()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("loading catalog: %w", err)
	}
	return svc, snapshot, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
