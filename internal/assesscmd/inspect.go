package assesscmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/berlinonline/mqa/internal/mqa/record"
	"github.com/berlinonline/mqa/internal/snapshot"
)

// NewInspectCmd creates the inspect command
func NewInspectCmd() *cobra.Command {
	var input string
	var id string
	var limit int
	var interactive bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect snapshot records (useful for checking field coverage)",
		Long: `Inspect records from a parquet or jsonl snapshot file.

Without --id it prints fill rates for the fields the quality indicators
look at, then walks through individual records. With --id it dumps a
single record as JSON.`,
		Example: `  # Field fill rates plus the first 5 records
  mqa inspect --input snapshots/berlin.jsonl --limit 5

  # Walk records one at a time
  mqa inspect --input snapshots/berlin.jsonl --limit 0 --interactive

  # Dump one record
  mqa inspect --input snapshots/berlin.jsonl --id simple_search_wwwberlinde`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Create a context that gets canceled on an interrupt signal (Ctrl+C)
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return executeInspect(ctx, input, id, limit, interactive)
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Path to parquet or jsonl snapshot file (required)")
	cmd.Flags().StringVar(&id, "id", "", "Dump a single record by dataset ID")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of records to walk through (0 for all)")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "Pause after each record (press Enter to continue)")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func executeInspect(ctx context.Context, input, id string, limit int, interactive bool) error {
	store := snapshot.NewStore(input)

	// Fill rates cover the whole snapshot, so always load everything.
	records, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	if id != "" {
		return dumpRecord(records, id)
	}

	fmt.Printf("Loaded %d records from %s\n", len(records), input)
	fmt.Println(strings.Repeat("=", 80))

	if len(records) == 0 {
		return nil
	}

	printFillRates(records)
	fmt.Println()

	shown := len(records)
	if limit > 0 && limit < shown {
		shown = limit
	}

	reader := bufio.NewReader(os.Stdin)

	for i := 0; i < shown; i++ {
		select {
		case <-ctx.Done():
			fmt.Println("\nInspection interrupted.")
			return nil
		default:
		}

		fmt.Printf("RECORD %d/%d\n", i+1, shown)
		fmt.Println(strings.Repeat("-", 80))
		printRecord(&records[i])
		fmt.Println()

		if interactive {
			fmt.Print("Press Enter to continue to next record (or Ctrl+C to quit)...")

			inputCh := make(chan struct{})
			go func() {
				_, _ = reader.ReadString('\n')
				close(inputCh)
			}()

			select {
			case <-ctx.Done():
				fmt.Println("\nInspection interrupted.")
				return nil
			case <-inputCh:
				fmt.Println()
			}
		}
	}

	return nil
}

func dumpRecord(records []record.MetadataRecord, id string) error {
	for i := range records {
		if records[i].ID != id {
			continue
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(records[i])
	}
	return fmt.Errorf("record %s not found in snapshot", id)
}

// printFillRates reports how often each indicator-relevant field is
// actually populated across the snapshot.
func printFillRates(records []record.MetadataRecord) {
	fields := []struct {
		name    string
		present func(r *record.MetadataRecord) bool
	}{
		{"keywords", func(r *record.MetadataRecord) bool { return len(r.Tags) > 0 }},
		{"categories", func(r *record.MetadataRecord) bool { return len(r.Themes) > 0 }},
		{"spatial", func(r *record.MetadataRecord) bool { return r.Spatial != "" }},
		{"temporal", func(r *record.MetadataRecord) bool { return r.HasTemporal() }},
		{"distributions", func(r *record.MetadataRecord) bool { return len(r.Distributions) > 0 }},
		{"publisher", func(r *record.MetadataRecord) bool { return r.Publisher != "" }},
		{"contact", func(r *record.MetadataRecord) bool { return r.HasContact() }},
		{"usage terms", func(r *record.MetadataRecord) bool { return r.UsageTerms != "" }},
		{"release date", func(r *record.MetadataRecord) bool { return r.ReleaseDate != "" }},
		{"modified date", func(r *record.MetadataRecord) bool { return r.ModificationDate != "" }},
		{"conformance", func(r *record.MetadataRecord) bool { return r.ConformsTo != "" }},
	}

	fmt.Println("\nField fill rates:")
	for _, field := range fields {
		count := 0
		for i := range records {
			if field.present(&records[i]) {
				count++
			}
		}
		percent := float64(count) * 100 / float64(len(records))
		fmt.Printf("  %-15s %6d / %d  (%.1f%%)\n", field.name, count, len(records), percent)
	}
}

func printRecord(rec *record.MetadataRecord) {
	fmt.Printf("ID:             %s\n", rec.ID)
	fmt.Printf("Title:          %s\n", rec.Title)
	fmt.Printf("Organization:   %s\n", rec.Organization)
	fmt.Printf("Keywords:       %s\n", strings.Join(rec.Tags, ", "))
	fmt.Printf("Categories:     %s\n", strings.Join(rec.Themes, ", "))
	fmt.Printf("Spatial:        %s\n", rec.Spatial)
	if rec.HasTemporal() {
		fmt.Printf("Temporal:       %s to %s\n", rec.TemporalStart, rec.TemporalEnd)
	}
	fmt.Printf("Publisher:      %s\n", rec.Publisher)
	if rec.HasContact() {
		fmt.Printf("Contact:        %s <%s>\n", rec.ContactName, rec.ContactEmail)
	}
	fmt.Printf("Usage Terms:    %s\n", rec.UsageTerms)
	fmt.Printf("Released:       %s\n", rec.ReleaseDate)
	fmt.Printf("Modified:       %s\n", rec.ModificationDate)
	fmt.Printf("Conformance:    %s\n", rec.ConformsTo)

	fmt.Printf("Distributions:  %d\n", len(rec.Distributions))
	for _, dist := range rec.Distributions {
		fmt.Printf("  - format=%q media_type=%q license=%q size=%q\n",
			dist.Format, dist.MediaType, dist.License, dist.ByteSize)
		if dist.DownloadURL != "" {
			fmt.Printf("    %s\n", dist.DownloadURL)
		}
	}
}
