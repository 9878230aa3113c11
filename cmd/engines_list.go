package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/liquidity2/terminal/internal/domain/engine"
	"github.com/liquidity2/terminal/internal/presentation"
)

var (
	listPillar string
	listJSON   bool
)

var enginesListCmd = &cobra.Command{
	Use:   "engines:list",
	Short: "List cataloged engines",
	Long: `List cataloged engines in priority order as text or JSON.

Engines come from the configured catalog (--catalog or config file) or the
built-in catalog. Use --pillar to restrict the listing to one pillar.

Examples:
  # List all engines
  liq2 engines:list

  # Filter by pillar
  liq2 engines:list --pillar liquidity
  liq2 engines:list -p synthesis

  # JSON, for scripting
  liq2 engines:list --json | jq '.[].id'
  liq2 engines:list --json | jq '.[] | select(.tier == 0)'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, snapshot, err := openCatalog(nil)
		if err != nil {
			return err
		}

		descriptors := snapshot.Registry.AllByPriority()
		if cmd.Flags().Changed("pillar") {
			pillar, ok := engine.ParsePillar(listPillar)
			if !ok {
				return fmt.Errorf("unknown pillar %q (foundation, liquidity, credit, macro, synthesis)", listPillar)
			}
			filtered := descriptors[:0]
			for _, desc := range descriptors {
				if desc.Pillar() == pillar {
					filtered = append(filtered, desc)
				}
			}
			descriptors = filtered
		}

		dtos := presentation.FromDescriptors(descriptors, snapshot.Plan)
		if listJSON {
			return presentation.NewFormatter(os.Stdout).FormatEngines(dtos)
		}

		for _, dto := range dtos {
			fmt.Fprintf(cmd.OutOrStdout(), "%-28s %-10s priority=%-4d tier=%d deps=%v\n",
				dto.ID, dto.Pillar, dto.Priority, dto.Tier, dto.DependsOn)
		}
		return nil
	},
}

func init() {
	enginesListCmd.Flags().StringVarP(&listPillar, "pillar", "p", "", "Filter by pillar (e.g., liquidity)")
	enginesListCmd.Flags().BoolVar(&listJSON, "json", false, "Output JSON")
	rootCmd.AddCommand(enginesListCmd)
}
