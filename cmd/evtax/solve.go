package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/evtax/internal/compare"
	"github.com/rgehrsitz/evtax/internal/domain"
	"github.com/rgehrsitz/evtax/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve one regime from a known revenue, net income or total tax",
	Long: `Solve the monthly figures for one regime.

Examples:
  evtax solve --regime standard --mode net --amount 500000
  evtax solve --regime flat_rate --expense 80 --mode revenue --amount 1000000
  evtax solve --regime fixed_tax --mode net --amount 300000 --format json
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		regimeName, _ := cmd.Flags().GetString("regime")
		modeName, _ := cmd.Flags().GetString("mode")
		floorName, _ := cmd.Flags().GetString("floor")
		format, _ := cmd.Flags().GetString("format")

		regime, err := domain.ParseRegime(regimeName)
		if err != nil {
			return err
		}
		mode, err := domain.ParseInputMode(modeName)
		if err != nil {
			return err
		}
		floor, err := domain.ParseWageFloorChoice(floorName)
		if err != nil {
			return err
		}
		amount, err := decimalFlag(cmd, "amount")
		if err != nil {
			return err
		}
		expense, err := decimalFlag(cmd, "expense")
		if err != nil {
			return err
		}

		formatter, err := output.NewFormatter(format)
		if err != nil {
			return err
		}

		s, err := newSolver("solver")
		if err != nil {
			return err
		}

		req := domain.SolveRequest{
			Regime:              regime,
			Mode:                mode,
			Amount:              amount,
			ExpenseRatioPercent: expense,
			WageFloor:           floor,
		}
		res, err := s.Solve(cmd.Context(), req.WithDefaults(s.Table))
		if err != nil {
			return err
		}

		out, err := formatter.Format(res)
		if err != nil {
			return fmt.Errorf("failed to format result: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare all regimes for the same target",
	Long: `Evaluate one target under every regime that supports the input mode and
recommend the best eligible regime.

Examples:
  evtax compare --mode revenue --amount 1000000
  evtax compare --mode net --amount 400000 --expense 20 --flat-rate-ratio 45
  evtax compare --mode total_tax --amount 150000 --format csv
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		modeName, _ := cmd.Flags().GetString("mode")
		floorName, _ := cmd.Flags().GetString("floor")
		format, _ := cmd.Flags().GetString("format")

		mode, err := domain.ParseInputMode(modeName)
		if err != nil {
			return err
		}
		floor, err := domain.ParseWageFloorChoice(floorName)
		if err != nil {
			return err
		}
		amount, err := decimalFlag(cmd, "amount")
		if err != nil {
			return err
		}
		expense, err := decimalFlag(cmd, "expense")
		if err != nil {
			return err
		}
		flatRatio, err := decimalFlag(cmd, "flat-rate-ratio")
		if err != nil {
			return err
		}

		s, err := newSolver("compare")
		if err != nil {
			return err
		}

		set, err := compare.NewCompareEngine(s).Compare(cmd.Context(), compare.Request{
			Mode:                 mode,
			Amount:               amount,
			ExpenseRatioPercent:  expense,
			FlatRateRatioPercent: flatRatio,
			WageFloor:            floor,
		})
		if err != nil {
			return err
		}

		var text string
		switch strings.ToLower(format) {
		case "", "table", "console":
			text = (&compare.TableFormatter{}).Format(set)
		case "json":
			text, err = (&compare.JSONFormatter{Pretty: true}).Format(set)
		case "csv":
			text, err = (&compare.CSVFormatter{}).Format(set)
		default:
			return fmt.Errorf("unsupported format: %s", format)
		}
		if err != nil {
			return fmt.Errorf("failed to format comparison: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	},
}

// decimalFlag parses a string flag as a decimal; an empty value is zero
func decimalFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	raw, _ := cmd.Flags().GetString(name)
	raw = strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	if raw == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s value %q: %w", name, raw, err)
	}
	return v, nil
}

func init() {
	solveCmd.Flags().StringP("regime", "r", "", "Tax regime (standard, flat_rate, fixed_tax)")
	solveCmd.Flags().StringP("mode", "m", "revenue", "Known amount (revenue, net, total_tax)")
	solveCmd.Flags().StringP("amount", "a", "", "Known monthly amount")
	solveCmd.Flags().StringP("expense", "e", "", "Expense ratio in percent (flat-rate norm or standard actual expenses; flat-rate default: first configured option)")
	solveCmd.Flags().String("floor", "ordinary", "Contribution wage floor (ordinary, qualified)")
	solveCmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv)")
	_ = solveCmd.MarkFlagRequired("regime")
	_ = solveCmd.MarkFlagRequired("amount")

	compareCmd.Flags().StringP("mode", "m", "revenue", "Known amount (revenue, net, total_tax)")
	compareCmd.Flags().StringP("amount", "a", "", "Known monthly amount")
	compareCmd.Flags().StringP("expense", "e", "0", "Actual expense ratio in percent for the standard regime")
	compareCmd.Flags().String("flat-rate-ratio", "", "Flat-rate expense norm in percent (default: first configured option)")
	compareCmd.Flags().String("floor", "ordinary", "Contribution wage floor (ordinary, qualified)")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, json, csv)")
	_ = compareCmd.MarkFlagRequired("amount")
}
