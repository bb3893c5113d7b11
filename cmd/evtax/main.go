package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/evtax/internal/calculation"
	"github.com/rgehrsitz/evtax/internal/config"
	"github.com/rgehrsitz/evtax/internal/domain"
	"github.com/rgehrsitz/evtax/internal/output"
	"github.com/rgehrsitz/evtax/internal/solver"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// settings is filled from the environment before any command runs
var settings config.Settings

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "evtax %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "evtax",
	Short: "Sole-trader tax calculator",
	Long: `Compute monthly taxes, contributions and net income for a sole trader
under the standard, flat-rate and fixed-tax regimes. Any one of revenue,
net income or total tax can be given; the other two are solved for.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadEnv(); err != nil {
			return err
		}
		settings = config.SettingsFromEnv()

		if cmd.Flags().Changed("log-level") {
			settings.LogLevel, _ = cmd.Flags().GetString("log-level")
		}
		if cmd.Flags().Changed("params") {
			settings.ParamsPath, _ = cmd.Flags().GetString("params")
		}
		return config.ConfigureLogging(settings.LogLevel, cmd.ErrOrStderr())
	},
}

// loadTable reads the parameter table named by --params or EVTAX_PARAMS
func loadTable() (*domain.ParameterTable, error) {
	return config.NewLoader().Load(settings.ParamsPath)
}

// newSolver builds a solver over the configured table, logging through logrus
func newSolver(module string) (*solver.Solver, error) {
	table, err := loadTable()
	if err != nil {
		return nil, err
	}
	s := solver.NewDefaultSolver(table)
	s.SetLogger(calculation.NewLogrusLogger(module))
	return s, nil
}

var validateCmd = &cobra.Command{
	Use:   "validate [params-file]",
	Short: "Validate a parameter table file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]

		if _, err := config.NewLoader().LoadFromFile(inputFile); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Parameter file %s is valid\n", inputFile)
		return nil
	},
}

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Show rates, floors and limits for the fiscal year",
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadTable()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), output.RatesSheet{Table: table}.Format())
		return nil
	},
}

var regimesCmd = &cobra.Command{
	Use:   "regimes",
	Short: "Describe the tax regimes and their limits",
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadTable()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), output.RegimesSheet{Table: table}.Format())
		return nil
	},
}

var vatCmd = &cobra.Command{
	Use:   "vat",
	Short: "Show VAT rates and the exemption threshold",
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadTable()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), output.VATSheet{Table: table}.Format())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("params", "", "Parameter table file (YAML or TOML); defaults to built-in 2026 values")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (trace, debug, info, warn, error, off)")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(breakEvenCmd)
	rootCmd.AddCommand(ratesCmd)
	rootCmd.AddCommand(regimesCmd)
	rootCmd.AddCommand(vatCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
