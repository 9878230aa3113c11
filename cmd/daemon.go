package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/liquidity2/terminal/internal/catalog"
	"github.com/liquidity2/terminal/internal/coordinator"
	"github.com/liquidity2/terminal/internal/log"
	"github.com/liquidity2/terminal/internal/pubsub"
	"github.com/liquidity2/terminal/internal/tracing"
	"github.com/liquidity2/terminal/internal/watcher"
)

var daemonInterval time.Duration

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the refresh-cycle coordinator loop",
	Long: `Run the coordinator as a long-lived process: load the catalog, then
execute a refresh cycle every interval, walking the tier plan and fanning
out engines tier by tier.

When a catalog file is configured with auto_reload enabled, edits to the
file are picked up live: the new catalog is loaded, validated, and planned
as a whole batch, and swapped in atomically. A bad edit is rejected and the
previous catalog stays in force.

Examples:
  liq2 daemon                           # built-in catalog, default interval
  liq2 daemon --interval 2s
  liq2 daemon --catalog ./engines.yaml  # with hot reload`,
	RunE: runDaemon,
}

func init() {
	daemonCmd.Flags().DurationVar(&daemonInterval, "interval", 0, "Cycle interval (overrides config)")
	rootCmd.AddCommand(daemonCmd)
}

func runDaemon(cmd *cobra.Command, _ []string) error {
	if !debugFlag {
		log.InitWithWriter(os.Stderr)
	}

	tracerProvider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error(log.CatTrace, "tracer shutdown failed", "error", err)
		}
	}()

	catalogEvents := pubsub.NewBroker[catalog.ChangeEvent]()
	defer catalogEvents.Close()

	catalogSvc, snapshot, err := openCatalog(catalogEvents)
	if err != nil {
		return err
	}

	interval := cfg.Coordinator.CycleInterval
	if cmd.Flags().Changed("interval") {
		interval = daemonInterval
	}

	cycleEvents := pubsub.NewBroker[coordinator.Event]()
	defer cycleEvents.Close()

	coord := coordinator.New(coordinator.Config{
		CycleInterval: interval,
		EngineTimeout: cfg.Coordinator.EngineTimeout,
		DisableCache:  cfg.Coordinator.DisableCache,
	}, coordinator.Deps{
		Catalog: catalogSvc,
		Events:  cycleEvents,
		Tracer:  tracerProvider.Tracer(),
	})
	registerCompositeEngines(coord, snapshot)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var catalogWatcher *watcher.Watcher
	if cfg.Catalog.Path != "" && cfg.Catalog.AutoReload {
		catalogWatcher, err = watcher.New(watcher.Config{
			CatalogPath: cfg.Catalog.Path,
			DebounceDur: cfg.Catalog.ReloadDebounce,
		})
		if err != nil {
			return fmt.Errorf("creating catalog watcher: %w", err)
		}
		changes, err := catalogWatcher.Start()
		if err != nil {
			return fmt.Errorf("starting catalog watcher: %w", err)
		}
		defer func() { _ = catalogWatcher.Stop() }()

		go func() {
			for {
				select {
				case _, ok := <-changes:
					if !ok {
						return
					}
					// A rejected reload keeps the previous snapshot; the
					// service already logged every diagnostic.
					if reloaded, err := catalogSvc.LoadFile(cfg.Catalog.Path); err == nil {
						registerCompositeEngines(coord, reloaded)
					}
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	if err := coord.Start(ctx); err != nil {
		return fmt.Errorf("starting coordinator: %w", err)
	}

	fmt.Printf("liq2 daemon started: %d engines, %d tiers, interval %s\n",
		snapshot.Registry.Len(), snapshot.Plan.NumTiers(), interval)
	fmt.Println("Press Ctrl+C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	fmt.Printf("\nReceived %s, shutting down...\n", sig)

	coord.Stop()
	fmt.Println("Daemon stopped")
	return nil
}

// registerCompositeEngines installs the stock implementation for every
// cataloged engine: the mean of upstream scores blended with the mean of
// available indicator values. Feed-backed engines registered by embedding
// applications replace these per id.
func registerCompositeEngines(coord *coordinator.Coordinator, snapshot *catalog.Snapshot) {
	for _, id := range snapshot.Registry.IDs() {
		coord.RegisterFunc(id, compositeEngine)
	}
}

func compositeEngine(_ context.Context, in coordinator.Inputs) (coordinator.Value, error) {
	var sum float64
	var n int
	for _, v := range in.Upstream {
		sum += v.Score
		n++
	}
	for _, v := range in.Indicators {
		sum += v
		n++
	}

	value := coordinator.Value{Details: map[string]float64{"inputs": float64(n)}}
	if n > 0 {
		value.Score = sum / float64(n)
	}
	return value, nil
}
