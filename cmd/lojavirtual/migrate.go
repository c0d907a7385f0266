package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lojavirtual/internal/config"
	"lojavirtual/internal/repos"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema and exit",
	Long: `Open the configured database (DB_DRIVER, DB_DSN) and create any missing tables.
Running it again is harmless.`,
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	db, err := repos.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	defer db.Close()

	fmt.Fprintf(cmd.OutOrStdout(), "schema applied (%s)\n", cfg.DBDriver)
	return nil
}
