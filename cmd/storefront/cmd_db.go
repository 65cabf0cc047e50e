package main

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/database/seeders"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/migration"
)

// bootDB loads config and opens the database connection. The caller
// closes the returned handle with database.Close.
func bootDB() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

// storefront migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := bootDB()
		if err != nil {
			return err
		}
		defer database.Close(db)

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Running migrations…")
		_, err = migration.New(db, out).Run()
		return err
	},
}

// storefront migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := bootDB()
		if err != nil {
			return err
		}
		defer database.Close(db)

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Rolling back last batch…")
		_, err = migration.New(db, out).Rollback()
		return err
	},
}

// storefront migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := bootDB()
		if err != nil {
			return err
		}
		defer database.Close(db)

		statuses, err := migration.New(db, nil).Status()
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.Header("MIGRATION", "RAN", "BATCH")
		for _, s := range statuses {
			ran, batch := "No", ""
			if s.Ran {
				ran, batch = "Yes", strconv.Itoa(s.Batch)
			}
			if err := table.Append([]string{s.Name, ran, batch}); err != nil {
				return err
			}
		}
		return table.Render()
	},
}

// storefront seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := bootDB()
		if err != nil {
			return err
		}
		defer database.Close(db)

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Running seeders…")
		return seeders.RunAll(cmd.Context(), seeders.Env{DB: db, Config: cfg, Out: out})
	},
}
