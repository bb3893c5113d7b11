package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rgehrsitz/evtax/internal/config"
	"github.com/rgehrsitz/evtax/internal/stats"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show usage statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("db")
		if path == "" {
			path = settings.StatsDB
		}
		if path == "" {
			return errors.New("no statistics database configured (set " + config.EnvStatsDB + " or --db)")
		}

		recorder, err := stats.Open(path, settings.AdminUsers)
		if err != nil {
			return fmt.Errorf("failed to open statistics store: %w", err)
		}
		defer recorder.Close()

		sum, err := recorder.Summary(cmd.Context())
		if err != nil {
			return err
		}

		var sb strings.Builder
		sb.WriteString("USAGE STATISTICS\n")
		sb.WriteString(strings.Repeat("=", 40) + "\n")
		sb.WriteString(fmt.Sprintf("Users:              %d\n", sum.TotalUsers))
		sb.WriteString(fmt.Sprintf("Calculations:       %d\n", sum.TotalCalcs))
		sb.WriteString(fmt.Sprintf("Users (7 days):     %d\n", sum.WeekUsers))
		sb.WriteString(fmt.Sprintf("Calcs (7 days):     %d\n", sum.WeekCalcs))
		if len(sum.TopRegimes) > 0 {
			sb.WriteString("\nTop regimes:\n")
			for _, rc := range sum.TopRegimes {
				sb.WriteString(fmt.Sprintf("  %-12s %d\n", rc.Regime, rc.Count))
			}
		}
		fmt.Fprint(cmd.OutOrStdout(), sb.String())
		return nil
	},
}

func init() {
	statsCmd.Flags().String("db", "", "Statistics database path (default from EVTAX_STATS_DB)")
}
