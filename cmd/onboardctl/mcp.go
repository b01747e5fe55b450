package main

import (
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/onboardiq/onboardiq/internal/bootstrap"
	"github.com/onboardiq/onboardiq/internal/infrastructure/config"
	"github.com/onboardiq/onboardiq/internal/infrastructure/kafka"
	"github.com/onboardiq/onboardiq/internal/presentation/mcpserver"
	"github.com/onboardiq/onboardiq/pkg/observability"
	pgutil "github.com/onboardiq/onboardiq/pkg/postgres"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve onboarding tools to an MCP client over stdio",
	Long: `Expose assessment, submission and statistics tools over the Model Context
Protocol on stdin/stdout. Submissions are read from and written to the
database at --database-url; without one they live only as long as the process.
Logs go to stderr.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := observability.InitLogger(observability.LogConfig{
			Level:       "warn",
			Format:      "text",
			ServiceName: "onboardctl-mcp",
			Output:      os.Stderr,
		})

		store, closeStore, err := bootstrap.OpenStore(cmd.Context(), config.DatabaseConfig{
			Postgres:      pgutil.Config{URL: settings.GetString("database-url")},
			MigrationsDir: settings.GetString("migrations-dir"),
		}, logger)
		if err != nil {
			return err
		}
		defer closeStore()

		uc := bootstrap.NewUseCases(store, kafka.NewLogPublisher(logger), nil)
		s := mcpserver.NewServer(mcpserver.UseCases{
			Assess:     uc.Assess,
			Submit:     uc.Submit,
			Get:        uc.Get,
			List:       uc.List,
			Statistics: uc.Statistics,
		}, version)

		return server.ServeStdio(s)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
