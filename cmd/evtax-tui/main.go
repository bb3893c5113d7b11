package main

import (
	"fmt"
	"io"
	"os"
	"os/user"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/evtax/internal/config"
	"github.com/rgehrsitz/evtax/internal/solver"
	"github.com/rgehrsitz/evtax/internal/stats"
	"github.com/rgehrsitz/evtax/internal/tui"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	settings := config.SettingsFromEnv()

	// Optional parameter file path from arguments
	if len(os.Args) > 1 {
		settings.ParamsPath = os.Args[1]
	}

	// the alternate screen owns the terminal, so logs are discarded
	if err := config.ConfigureLogging(settings.LogLevel, io.Discard); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	table, err := config.NewLoader().Load(settings.ParamsPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	recorder, err := stats.Open(settings.StatsDB, settings.AdminUsers)
	if err != nil {
		fmt.Printf("Error: failed to open statistics store: %v\n", err)
		os.Exit(1)
	}
	defer recorder.Close()

	userID := "local"
	if u, err := user.Current(); err == nil {
		userID = u.Username
	}

	model := tui.NewModel(solver.NewDefaultSolver(table), recorder, userID)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		recorder.Close()
		os.Exit(1)
	}
}
