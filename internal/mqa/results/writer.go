// Package results serializes assessment outcomes: a per-record scores
// CSV, a ratings summary CSV, indicator-level detail JSON and a YAML run
// summary.
package results

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/berlinonline/mqa/internal/mqa/assess"
	"github.com/berlinonline/mqa/internal/mqa/batch"
	"github.com/berlinonline/mqa/internal/mqa/indicator"
)

// DimensionOrder fixes dimension listing order across every report format.
var DimensionOrder = []string{
	indicator.Findability,
	indicator.Accessibility,
	indicator.Interoperability,
	indicator.Reusability,
	indicator.Context,
}

// WriteScoresCSV writes one row per record: id, title, organization,
// total score, rating, then one column per dimension score.
func WriteScoresCSV(path string, results []assess.AssessmentResult) error {
	file, err := create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteScores(file, results)
}

// WriteScores writes the score table as CSV to any writer.
func WriteScores(out io.Writer, results []assess.AssessmentResult) error {
	w := csv.NewWriter(out)
	header := []string{"id", "title", "organization", "total_score", "rating"}
	for _, dim := range DimensionOrder {
		header = append(header, strings.ToLower(dim)+"_score")
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range results {
		res := &results[i]
		row := []string{res.ID, res.Title, res.Organization, strconv.Itoa(res.Total), string(res.Rating)}
		for _, dim := range DimensionOrder {
			value := 0
			if d := res.Dimension(dim); d != nil {
				value = d.Value
			}
			row = append(row, strconv.Itoa(value))
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", res.ID, err)
		}
	}

	w.Flush()
	return w.Error()
}

// WriteRatingsCSV writes the rating histogram in band order, with the
// portal's German band names alongside.
func WriteRatingsCSV(path string, summary batch.Summary) error {
	file, err := create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"rating", "rating_de", "count"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, rating := range assess.RatingOrder {
		count := summary.RatingCounts[string(rating)]
		row := []string{string(rating), rating.DisplayDE(), strconv.Itoa(count)}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", rating, err)
		}
	}

	w.Flush()
	return w.Error()
}

// WriteDetailsJSON writes the full indicator-level results as indented JSON.
func WriteDetailsJSON(path string, results []assess.AssessmentResult) error {
	file, err := create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("failed to encode details JSON: %w", err)
	}
	return nil
}

// ReadDetailsJSON loads a details file back, for re-rendering reports
// without re-scoring.
func ReadDetailsJSON(path string) ([]assess.AssessmentResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open details file: %w", err)
	}
	defer file.Close()

	var results []assess.AssessmentResult
	if err := json.NewDecoder(file).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode details file: %w", err)
	}
	return results, nil
}

func create(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return file, nil
}
