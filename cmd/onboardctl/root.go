package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// settings resolves flag values with environment fallbacks: --database-url
// falls back to DATABASE_URL and so on.
var settings = viper.New()

var rootCmd = &cobra.Command{
	Use:   "onboardctl",
	Short: "Operate the onboarding risk-assessment service",
	Long: `onboardctl scores onboarding applications offline, manages the submissions
database schema, mints development tokens and certificates, and serves the
onboarding tools to MCP clients over stdio.`,
	SilenceUsage: true,
}

func init() {
	settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	settings.AutomaticEnv()

	rootCmd.PersistentFlags().String("database-url", "", "PostgreSQL connection URL (env DATABASE_URL)")
	rootCmd.PersistentFlags().String("migrations-dir", "file://internal/infrastructure/postgres/migrations",
		"golang-migrate source URL (env MIGRATIONS_DIR)")
	_ = settings.BindPFlag("database-url", rootCmd.PersistentFlags().Lookup("database-url"))
	_ = settings.BindPFlag("migrations-dir", rootCmd.PersistentFlags().Lookup("migrations-dir"))
}
