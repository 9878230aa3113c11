package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/liquidity2/terminal/internal/presentation"
)

var tiersJSON bool

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "Print the execution tier plan",
	Long: `Print the tier plan derived from the catalog's dependency graph.

Tier 0 holds engines with no dependencies; every later tier holds engines
whose dependencies all sit in earlier tiers. Within a tier, engines are
ordered by priority (descending) with id as the tie-break.

Examples:
  liq2 tiers
  liq2 tiers --catalog ./engines.yaml --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, snapshot, err := openCatalog(nil)
		if err != nil {
			return err
		}

		dto := presentation.FromSnapshot(snapshot)
		if tiersJSON {
			return presentation.NewFormatter(os.Stdout).FormatPlan(dto)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "snapshot %s (%s): %d engines, %d tiers\n",
			dto.SnapshotID, dto.Source, dto.Engines, len(dto.Tiers))
		for _, tier := range dto.Tiers {
			fmt.Fprintf(cmd.OutOrStdout(), "  tier %d: %s\n", tier.Index, strings.Join(tier.Engines, ", "))
		}
		return nil
	},
}

func init() {
	tiersCmd.Flags().BoolVar(&tiersJSON, "json", false, "Output JSON")
	rootCmd.AddCommand(tiersCmd)
}
