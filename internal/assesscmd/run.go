package assesscmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/berlinonline/mqa/internal/config"
	"github.com/berlinonline/mqa/internal/mqa/assess"
	"github.com/berlinonline/mqa/internal/mqa/batch"
	"github.com/berlinonline/mqa/internal/mqa/indicator"
	"github.com/berlinonline/mqa/internal/mqa/record"
	resultsutil "github.com/berlinonline/mqa/internal/mqa/results"
	"github.com/berlinonline/mqa/internal/probe"
	"github.com/berlinonline/mqa/internal/snapshot"
)

// NewAssessCmd creates the assess command
func NewAssessCmd() *cobra.Command {
	var input string
	var outputDir string
	var sample int
	var concurrency int
	var offline bool
	var probeTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Score a snapshot and write results",
		Long: `Assess loads a snapshot, scores every record across the five quality
dimensions and writes a scores CSV, a ratings summary CSV, indicator-level
detail JSON and a YAML run summary.

With --offline the download-URL reachability check is skipped and scores
zero; everything else works without network access.`,
		Example: `  # Score a snapshot with reachability probing
  mqa assess --input snapshots/berlin.jsonl

  # Quick offline run over the first 50 records
  mqa assess --input snapshots/berlin.parquet --sample 50 --offline`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return executeAssess(ctx, input, outputDir, sample, concurrency, offline, probeTimeout)
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Snapshot file to score (required)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for result files (default $MQA_OUTPUT_DIR or results)")
	cmd.Flags().IntVar(&sample, "sample", 0, "Score only the first N records (0 for all)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Concurrent record evaluations (default $MQA_CONCURRENCY or 4)")
	cmd.Flags().BoolVar(&offline, "offline", false, "Skip the reachability probe")
	cmd.Flags().DurationVar(&probeTimeout, "probe-timeout", 0, "Timeout per reachability probe (default $MQA_PROBE_TIMEOUT or 5s)")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func executeAssess(ctx context.Context, input, outputDir string, sample, concurrency int, offline bool, probeTimeout time.Duration) error {
	if outputDir == "" {
		outputDir = config.String(config.EnvOutputDir, "results")
	}
	if concurrency <= 0 {
		concurrency = config.Int(config.EnvConcurrency, 4)
	}
	if probeTimeout <= 0 {
		probeTimeout = config.Duration(config.EnvProbeTimeout, probe.DefaultTimeout)
	}

	slog.Info("Starting assessment",
		"input", input, "sample", sample, "concurrency", concurrency, "offline", offline)

	store := snapshot.NewStore(input)
	var records []record.MetadataRecord
	var err error
	if sample > 0 {
		records, err = store.LoadSample(sample)
	} else {
		records, err = store.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
	slog.Info("Snapshot loaded", "records", len(records))

	var prober indicator.Prober
	if !offline {
		prober = probe.NewHTTP()
	}
	runner := batch.NewRunner(assess.New(prober, probeTimeout), concurrency)

	results, summary, runErr := runner.Run(ctx, records)

	// Results scored before a cancellation are still valid; write whatever
	// is there before reporting the interruption.
	if len(results) > 0 {
		cfg := resultsutil.RunConfig{
			Snapshot:     input,
			SampleSize:   sample,
			Concurrency:  concurrency,
			Offline:      offline,
			ProbeTimeout: probeTimeout.String(),
		}
		if err := writeOutputs(outputDir, results, summary, cfg); err != nil {
			return err
		}
		printRunSummary(summary)
	}
	if runErr != nil {
		return fmt.Errorf("assessment interrupted: %w", runErr)
	}

	fmt.Printf("\nResults saved to: %s\n", outputDir)
	fmt.Printf("\nGenerate a report with:\n")
	fmt.Printf("  mqa report --results %s\n", filepath.Join(outputDir, fmt.Sprintf("details_%s.json", summary.RunID)))

	return nil
}

func writeOutputs(outputDir string, results []assess.AssessmentResult, summary batch.Summary, cfg resultsutil.RunConfig) error {
	scoresPath := filepath.Join(outputDir, fmt.Sprintf("scores_%s.csv", summary.RunID))
	if err := resultsutil.WriteScoresCSV(scoresPath, results); err != nil {
		return fmt.Errorf("failed to write scores CSV: %w", err)
	}

	ratingsPath := filepath.Join(outputDir, "ratings_summary.csv")
	if err := resultsutil.WriteRatingsCSV(ratingsPath, summary); err != nil {
		return fmt.Errorf("failed to write ratings summary: %w", err)
	}

	detailsPath := filepath.Join(outputDir, fmt.Sprintf("details_%s.json", summary.RunID))
	if err := resultsutil.WriteDetailsJSON(detailsPath, results); err != nil {
		return fmt.Errorf("failed to write details JSON: %w", err)
	}

	summaryPath := filepath.Join(outputDir, fmt.Sprintf("summary_%s.yaml", summary.RunID))
	if err := resultsutil.WriteSummaryYAML(summaryPath, resultsutil.RunReport{Config: cfg, Summary: summary}); err != nil {
		return fmt.Errorf("failed to write run summary: %w", err)
	}

	slog.Info("Results written",
		"scores", scoresPath, "ratings", ratingsPath, "details", detailsPath, "summary", summaryPath)
	return nil
}

func printRunSummary(summary batch.Summary) {
	fmt.Println("\n========================================")
	fmt.Println("Assessment Summary")
	fmt.Println("========================================")
	if summary.RunID != "" {
		fmt.Printf("Run ID:         %s\n", summary.RunID)
	}
	fmt.Printf("Records:        %d\n", summary.Records)
	fmt.Printf("Rule Defects:   %d\n", summary.Defects)
	fmt.Println()
	fmt.Printf("Mean Score:     %.1f / %d\n", summary.MeanTotal, assess.MaxTotal)
	fmt.Printf("Median Score:   %.1f\n", summary.MedianTotal)
	fmt.Printf("Min Score:      %d\n", summary.MinTotal)
	fmt.Printf("Max Score:      %d\n", summary.MaxTotal)
	fmt.Println()
	fmt.Println("Ratings:")
	for _, rating := range assess.RatingOrder {
		fmt.Printf("  %-12s %d\n", rating, summary.RatingCounts[string(rating)])
	}
	fmt.Println()
	fmt.Println("Dimension Means:")
	for _, dim := range resultsutil.DimensionOrder {
		fmt.Printf("  %-18s %.1f\n", dim, summary.DimensionMeans[dim])
	}
	fmt.Println("========================================")
}
