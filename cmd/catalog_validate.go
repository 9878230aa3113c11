package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/liquidity2/terminal/internal/catalog"
	"github.com/liquidity2/terminal/internal/presentation"
)

// validationReport is the JSON shape printed by catalog:validate.
type validationReport struct {
	Valid       bool     `json:"valid"`
	Source      string   `json:"source"`
	Engines     int      `json:"engines"`
	Tiers       int      `json:"tiers"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}

var catalogValidateCmd = &cobra.Command{
	Use:   "catalog:validate",
	Short: "Validate the engine catalog",
	Long: `Load the catalog, validate every dependency reference, and compute the
tier plan. All diagnostics are printed, not just the first, and the command
exits 1 if the catalog would be rejected.

Examples:
  liq2 catalog:validate
  liq2 catalog:validate --catalog ./engines.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		report := validationReport{Source: catalog.SourceBuiltin}
		if cfg.Catalog.Path != "" {
			report.Source = cfg.Catalog.Path
		}

		_, snapshot, err := openCatalog(nil)
		switch {
		case err == nil:
			report.Valid = true
			report.Engines = snapshot.Registry.Len()
			report.Tiers = snapshot.Plan.NumTiers()
		default:
			var rejected *catalog.RejectedError
			if errors.As(err, &rejected) {
				for _, diag := range rejected.Diagnostics {
					report.Diagnostics = append(report.Diagnostics, diag.Error())
				}
			} else {
				report.Diagnostics = append(report.Diagnostics, err.Error())
			}
		}

		if err := presentation.NewFormatter(cmd.OutOrStdout()).FormatResult(report); err != nil {
			return err
		}
		if !report.Valid {
			// Diagnostics already printed; suppress cobra's usage echo.
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true
			fmt.Fprintln(os.Stderr, "catalog invalid")
			return errors.New("catalog invalid")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogValidateCmd)
}
