package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/evtax/internal/breakeven"
	"github.com/rgehrsitz/evtax/internal/domain"
	"github.com/spf13/cobra"
)

var breakEvenCmd = &cobra.Command{
	Use:   "break-even",
	Short: "Find the monthly revenue at which two regimes leave the same net income",
	Long: `Scan a monthly revenue range and locate every point where the better of
two regimes changes.

Examples:
  evtax break-even --a standard --b flat_rate --expense 40 --flat-rate-ratio 45
  evtax break-even --a fixed_tax --b standard --min 1000000 --max 5000000 --format json
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		aName, _ := cmd.Flags().GetString("a")
		bName, _ := cmd.Flags().GetString("b")
		floorName, _ := cmd.Flags().GetString("floor")
		format, _ := cmd.Flags().GetString("format")
		steps, _ := cmd.Flags().GetInt("steps")

		a, err := domain.ParseRegime(aName)
		if err != nil {
			return err
		}
		b, err := domain.ParseRegime(bName)
		if err != nil {
			return err
		}
		floor, err := domain.ParseWageFloorChoice(floorName)
		if err != nil {
			return err
		}

		req := breakeven.Request{A: a, B: b, WageFloor: floor}
		if req.MinRevenue, err = decimalFlag(cmd, "min"); err != nil {
			return err
		}
		if req.MaxRevenue, err = decimalFlag(cmd, "max"); err != nil {
			return err
		}
		if req.ExpenseRatioPercent, err = decimalFlag(cmd, "expense"); err != nil {
			return err
		}
		if req.FlatRateRatioPercent, err = decimalFlag(cmd, "flat-rate-ratio"); err != nil {
			return err
		}

		s, err := newSolver("break-even")
		if err != nil {
			return err
		}
		opts := breakeven.DefaultSolverOptions()
		if steps > 0 {
			opts.GridResolution = steps
		}

		result, err := breakeven.NewSolver(s, opts).Find(cmd.Context(), req)
		if err != nil {
			return err
		}

		var text string
		switch strings.ToLower(format) {
		case "", "table", "console":
			text = (&breakeven.TableFormatter{}).Format(result)
		case "json":
			text, err = (&breakeven.JSONFormatter{Pretty: true}).Format(result)
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported format: %s", format)
		}
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	breakEvenCmd.Flags().String("a", "standard", "First regime")
	breakEvenCmd.Flags().String("b", "flat_rate", "Second regime")
	breakEvenCmd.Flags().String("min", "100000", "Lowest monthly revenue to scan")
	breakEvenCmd.Flags().String("max", "3000000", "Highest monthly revenue to scan")
	breakEvenCmd.Flags().StringP("expense", "e", "0", "Actual expense ratio in percent for the standard regime")
	breakEvenCmd.Flags().String("flat-rate-ratio", "", "Flat-rate expense norm in percent (default: first configured option)")
	breakEvenCmd.Flags().String("floor", "ordinary", "Contribution wage floor (ordinary, qualified)")
	breakEvenCmd.Flags().Int("steps", 0, "Grid intervals for the initial scan (default 60)")
	breakEvenCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
}
