// Package batch runs the assessment engine over record sequences with
// bounded concurrency and derives run-level summary statistics.
package batch

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/berlinonline/mqa/internal/mqa/assess"
	"github.com/berlinonline/mqa/internal/mqa/record"
)

// Summary aggregates one run's results. Defects counts records whose
// scoring hit a rule-table defect, as opposed to ordinary zero scores.
type Summary struct {
	RunID          string             `json:"run_id" yaml:"run_id"`
	Records        int                `json:"records" yaml:"records"`
	Defects        int                `json:"defects" yaml:"defects"`
	MeanTotal      float64            `json:"mean_total" yaml:"mean_total"`
	MedianTotal    float64            `json:"median_total" yaml:"median_total"`
	MinTotal       int                `json:"min_total" yaml:"min_total"`
	MaxTotal       int                `json:"max_total" yaml:"max_total"`
	RatingCounts   map[string]int     `json:"rating_counts" yaml:"rating_counts"`
	DimensionMeans map[string]float64 `json:"dimension_means" yaml:"dimension_means"`
	StartedAt      time.Time          `json:"started_at" yaml:"started_at"`
	Elapsed        string             `json:"elapsed" yaml:"elapsed"`
}

// Runner applies an engine to record batches.
type Runner struct {
	Engine      *assess.Engine
	Concurrency int
}

// NewRunner returns a runner with at least one worker.
func NewRunner(engine *assess.Engine, concurrency int) *Runner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Runner{Engine: engine, Concurrency: concurrency}
}

// Run scores every record and returns one result per record in input
// order, regardless of completion order. Records are independent, so a
// failure confined to one record never stops the batch. Cancellation is
// honored at record granularity: results already scored when the context
// is canceled are returned, in order, together with the context error.
func (r *Runner) Run(ctx context.Context, records []record.MetadataRecord) ([]assess.AssessmentResult, Summary, error) {
	runID := uuid.NewString()
	startedAt := time.Now()
	slog.Info("Starting assessment run", "run_id", runID, "records", len(records), "concurrency", r.Concurrency)

	results := make([]assess.AssessmentResult, len(records))
	completed := make([]bool, len(records))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, r.Concurrency)

	for i := range records {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire
			defer func() { <-semaphore }() // Release

			if ctx.Err() != nil {
				return
			}

			rec := &records[idx]
			start := time.Now()
			res := r.Engine.Assess(ctx, rec)
			if res.Defective() {
				slog.Error("Rule table defect while scoring record", "id", rec.ID, "defect", res.Defect)
			}
			slog.Debug("Scored record",
				"id", rec.ID, "total", res.Total, "rating", res.Rating, "duration", time.Since(start))

			results[idx] = res
			completed[idx] = true
		}(i)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		kept := make([]assess.AssessmentResult, 0, len(results))
		for i := range results {
			if completed[i] {
				kept = append(kept, results[i])
			}
		}
		slog.Warn("Assessment run canceled", "run_id", runID, "scored", len(kept), "of", len(records))
		return kept, finishSummary(Summarize(kept), runID, startedAt), err
	}

	summary := finishSummary(Summarize(results), runID, startedAt)
	slog.Info("Assessment run finished",
		"run_id", runID, "records", summary.Records, "defects", summary.Defects, "elapsed", summary.Elapsed)
	return results, summary, nil
}

func finishSummary(s Summary, runID string, startedAt time.Time) Summary {
	s.RunID = runID
	s.StartedAt = startedAt
	s.Elapsed = time.Since(startedAt).Round(time.Millisecond).String()
	return s
}

// Summarize derives distribution statistics over a result set.
func Summarize(results []assess.AssessmentResult) Summary {
	summary := Summary{
		Records:        len(results),
		RatingCounts:   make(map[string]int),
		DimensionMeans: make(map[string]float64),
	}

	var totals []float64
	dimensionSums := make(map[string]float64)

	for i := range results {
		res := &results[i]
		if res.Defective() {
			summary.Defects++
		}
		summary.RatingCounts[string(res.Rating)]++
		totals = append(totals, float64(res.Total))
		for _, d := range res.Dimensions {
			dimensionSums[d.Name] += float64(d.Value)
		}
	}

	if len(totals) > 0 {
		var sum float64
		for _, t := range totals {
			sum += t
		}
		summary.MeanTotal = sum / float64(len(totals))

		sort.Float64s(totals)
		mid := len(totals) / 2
		if len(totals)%2 == 0 {
			summary.MedianTotal = (totals[mid-1] + totals[mid]) / 2
		} else {
			summary.MedianTotal = totals[mid]
		}

		summary.MinTotal = int(totals[0])
		summary.MaxTotal = int(totals[len(totals)-1])

		for name, total := range dimensionSums {
			summary.DimensionMeans[name] = total / float64(len(totals))
		}
	}

	return summary
}
