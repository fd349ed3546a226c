package main

import (
	"log/slog"

	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard data as a JSON API",
		Long: `Load the records once and serve the report tables, risk tiers, payment
ledger and critical cases export over HTTP until interrupted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			records, loadedAt, err := loadRecords(ctx)
			if err != nil {
				return err
			}

			if addr == "" {
				addr = viper.GetString("server.addr")
			}
			if addr == "" {
				addr = ":8080"
			}

			return server.New(records, loadedAt, slog.Default()).Start(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: server.addr or :8080)")

	return cmd
}
