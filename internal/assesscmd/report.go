package assesscmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/berlinonline/mqa/internal/mqa/assess"
	"github.com/berlinonline/mqa/internal/mqa/batch"
	resultsutil "github.com/berlinonline/mqa/internal/mqa/results"
)

// NewReportCmd creates the report command
func NewReportCmd() *cobra.Command {
	var resultsPath string
	var format string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a report from saved assessment results",
		Long: `Report re-renders a details JSON file written by assess without
re-scoring anything.

Formats: text (summary plus per-record findings), json (summary and
results to stdout) and csv (score table to stdout).`,
		Example: `  # Human-readable findings
  mqa report --results results/details_8f14e45f.json

  # Pipe the score table into other tools
  mqa report --results results/details_8f14e45f.json --format csv > scores.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeReport(resultsPath, format)
		},
	}

	cmd.Flags().StringVar(&resultsPath, "results", "", "Details JSON file from an assess run (required)")
	cmd.Flags().StringVar(&format, "format", "text", "Report format (text, json, or csv)")

	_ = cmd.MarkFlagRequired("results")

	return cmd
}

func executeReport(resultsPath, format string) error {
	results, err := resultsutil.ReadDetailsJSON(resultsPath)
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}
	summary := batch.Summarize(results)

	switch format {
	case "text":
		return printTextReport(results, summary)
	case "json":
		return printJSONReport(results, summary)
	case "csv":
		return printCSVReport(results)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func printTextReport(results []assess.AssessmentResult, summary batch.Summary) error {
	fmt.Println("========================================")
	fmt.Println("Metadata Quality Report")
	fmt.Println("========================================")
	fmt.Printf("Records: %d\n", len(results))

	printRunSummary(summary)

	fmt.Println("\nDetailed Results:")
	fmt.Println("========================================")

	for i := range results {
		res := &results[i]
		fmt.Printf("\n[%d] %s\n", i+1, res.ID)
		fmt.Printf("  Title:  %s\n", truncate(res.Title, 80))
		fmt.Printf("  Score:  %d / %d (%s)\n", res.Total, assess.MaxTotal, res.Rating)

		if res.Defective() {
			fmt.Printf("  ❌ Defect: %s\n", res.Defect)
		}

		for _, dim := range res.Dimensions {
			fmt.Printf("  %s: %d/%d\n", dim.Name, dim.Value, dim.Max)
			for _, ind := range dim.Indicators {
				if ind.Passed {
					continue
				}
				fmt.Printf("    %s (%d/%d): %s\n", ind.Name, ind.Points, ind.MaxPoints, ind.Rationale)
			}
		}
	}

	return nil
}

func printJSONReport(results []assess.AssessmentResult, summary batch.Summary) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(struct {
		Summary batch.Summary             `json:"summary"`
		Results []assess.AssessmentResult `json:"results"`
	}{summary, results})
}

func printCSVReport(results []assess.AssessmentResult) error {
	return resultsutil.WriteScores(os.Stdout, results)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
