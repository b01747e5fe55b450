package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	pgutil "github.com/onboardiq/onboardiq/pkg/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the submissions database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dsn, dir, err := migrationTarget()
		if err != nil {
			return err
		}
		if err := pgutil.RunMigrations(dsn, dir); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back all migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dsn, dir, err := migrationTarget()
		if err != nil {
			return err
		}
		if err := pgutil.RunMigrationsDown(dsn, dir); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "migrations rolled back")
		return nil
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dsn, dir, err := migrationTarget()
		if err != nil {
			return err
		}
		version, dirty, err := pgutil.MigrationVersion(dsn, dir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
	rootCmd.AddCommand(migrateCmd)
}

func migrationTarget() (dsn, dir string, err error) {
	dsn = settings.GetString("database-url")
	if dsn == "" {
		return "", "", errors.New("--database-url or DATABASE_URL is required")
	}
	return dsn, settings.GetString("migrations-dir"), nil
}
