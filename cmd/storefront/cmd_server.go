package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/internal/kernel"
	"github.com/shashiranjanraj/storefront/internal/server"
	"github.com/shashiranjanraj/storefront/pkg/logger"
)

// storefront serve
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run"},
	Short:   "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		flush, err := kernel.InitLogger(cfg)
		if err != nil {
			return err
		}
		defer flush()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app, err := kernel.Boot(ctx, cfg)
		if err != nil {
			logger.L.Error().Err(err).Msg("boot failed")
			return err
		}
		defer func() {
			if err := app.Close(); err != nil {
				logger.L.Warn().Err(err).Msg("shutdown: release resources")
			}
		}()

		logger.L.Info().
			Str("env", cfg.AppEnv).
			Str("db", cfg.Database.Driver).
			Str("sessions", cfg.Session.Driver).
			Str("storage", cfg.Storage.Disk).
			Msg("storefront booted")

		return server.Run(ctx, cfg.Addr(), app.Handler())
	},
}

// storefront route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		infos := kernel.RouteList(cfg)
		if len(infos) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No named routes registered.")
			return nil
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.Header("METHOD", "PATH", "NAME")
		for _, ri := range infos {
			if err := table.Append([]string{ri.Method, ri.Path, ri.Name}); err != nil {
				return err
			}
		}
		return table.Render()
	},
}
