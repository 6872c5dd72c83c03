package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/berlinonline/mqa/internal/assesscmd"
	"github.com/berlinonline/mqa/internal/config"
)

func NewRootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "mqa",
		Short: "Metadata quality assessment for the Berlin open data portal",
		Long: `mqa scores catalog records from the Berlin open data portal against five
quality dimensions: Findability, Accessibility, Interoperability,
Reusability and Context.

It fetches records from the portal's CKAN API into snapshot files,
scores them concurrently and writes CSV, JSON and YAML results.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			if !cmd.Flags().Changed("log-level") {
				logLevel = config.String(config.EnvLogLevel, logLevel)
			}
			setupLogging(logLevel)
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, or error)")

	// Add subcommands
	cmd.AddCommand(assesscmd.NewFetchCmd())
	cmd.AddCommand(assesscmd.NewAssessCmd())
	cmd.AddCommand(assesscmd.NewReportCmd())
	cmd.AddCommand(assesscmd.NewInspectCmd())

	return cmd
}

func setupLogging(level string) {
	logLevel := slog.LevelInfo
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
}
