// Package assesscmd implements the mqa subcommands: fetching portal
// snapshots, running assessments, rendering reports and inspecting
// snapshots.
package assesscmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/berlinonline/mqa/internal/catalog"
	"github.com/berlinonline/mqa/internal/config"
	"github.com/berlinonline/mqa/internal/snapshot"
)

// NewFetchCmd creates the fetch command
func NewFetchCmd() *cobra.Command {
	var portalURL string
	var pageSize int
	var max int
	var output string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch dataset metadata from the portal into a snapshot",
		Long: `Fetch pages through the portal's CKAN action API, normalizes every
package into an assessment record and writes the result as a snapshot
file. The snapshot format follows the file extension (.jsonl or .parquet).`,
		Example: `  # Snapshot the whole portal as JSONL
  mqa fetch --output snapshots/berlin.jsonl

  # First 200 datasets as parquet
  mqa fetch --max 200 --output snapshots/berlin.parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return executeFetch(ctx, portalURL, pageSize, max, output)
		},
	}

	cmd.Flags().StringVar(&portalURL, "portal", "", "CKAN action API base URL (default $MQA_PORTAL_URL or the Berlin portal)")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Records per API page (default $MQA_PAGE_SIZE or 100)")
	cmd.Flags().IntVar(&max, "max", 0, "Maximum records to fetch (0 for all)")
	cmd.Flags().StringVar(&output, "output", "", "Snapshot file to write, .jsonl or .parquet (required)")

	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func executeFetch(ctx context.Context, portalURL string, pageSize, max int, output string) error {
	if portalURL == "" {
		portalURL = config.String(config.EnvPortalURL, catalog.DefaultBaseURL)
	}
	if pageSize <= 0 {
		pageSize = config.Int(config.EnvPageSize, catalog.DefaultPageSize)
	}

	slog.Info("Starting fetch", "portal", portalURL, "page_size", pageSize, "max", max)

	client := catalog.NewClient(portalURL)
	records, skipped, err := client.FetchAll(ctx, pageSize, max)
	if err != nil {
		return fmt.Errorf("failed to fetch records: %w", err)
	}
	slog.Info("Fetch finished", "records", len(records), "skipped", skipped)

	if err := snapshot.NewStore(output).Save(records); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	fmt.Printf("\nSnapshot saved to: %s (%d records, %d skipped)\n", output, len(records), skipped)
	return nil
}
