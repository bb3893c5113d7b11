package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rgehrsitz/evtax/internal/server"
	"github.com/rgehrsitz/evtax/internal/stats"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logrus.WithField("module", "server")

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = settings.Addr
		}
		rateLimit := settings.RateLimit
		if cmd.Flags().Changed("rate-limit") {
			rateLimit, _ = cmd.Flags().GetInt("rate-limit")
		}
		origins, _ := cmd.Flags().GetString("allow-origins")

		s, err := newSolver("solver")
		if err != nil {
			return err
		}

		recorder, err := stats.Open(settings.StatsDB, settings.AdminUsers)
		if err != nil {
			return fmt.Errorf("failed to open statistics store: %w", err)
		}
		defer recorder.Close()

		access := logrus.WithField("module", "http").WriterLevel(logrus.InfoLevel)
		defer access.Close()

		app := server.NewApp(server.Config{
			AllowOrigins: origins,
			RateLimit:    rateLimit,
			AccessLog:    access,
		}, server.NewHandler(s, recorder, settings.AdminUsers, log, version))

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := app.ShutdownWithContext(shutdownCtx); err != nil {
				log.WithError(err).Error("shutdown failed")
			}
		}()

		log.Infof("listening on %s (fiscal year %d)", addr, s.Table.FiscalYear)
		return app.Listen(addr)
	},
}

func init() {
	defaults := server.DefaultConfig()
	serveCmd.Flags().String("addr", "", "Listen address (default from EVTAX_ADDR or :8080)")
	serveCmd.Flags().Int("rate-limit", defaults.RateLimit, "Requests per minute per client on /v1, 0 disables (default from EVTAX_RATE_LIMIT)")
	serveCmd.Flags().String("allow-origins", defaults.AllowOrigins, "CORS allowed origins")
}
