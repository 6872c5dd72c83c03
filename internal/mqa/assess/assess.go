// Package assess aggregates indicator results into dimension scores, total
// scores and ratings. The rule-table weights are declared in the indicator
// package; this package owns the dimension maxima and verifies at startup
// that both agree.
package assess

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/berlinonline/mqa/internal/mqa/indicator"
	"github.com/berlinonline/mqa/internal/mqa/record"
)

// Declared dimension maxima. Their sum is the highest possible total score.
const (
	MaxFindability      = 100
	MaxAccessibility    = 100
	MaxInteroperability = 110
	MaxReusability      = 75
	MaxContext          = 20
	MaxTotal            = 405
)

func init() {
	checkWeights()
}

// checkWeights panics when the indicator weights and the declared dimension
// maxima disagree. That is a defect in the rule tables, not bad input, and
// nothing downstream can produce meaningful scores from it.
func checkWeights() {
	sums := map[string][2]int{
		indicator.Findability: {
			indicator.PointsKeywords + indicator.PointsCategories +
				indicator.PointsSpatial + indicator.PointsTemporal,
			MaxFindability,
		},
		indicator.Accessibility: {
			indicator.PointsAccessURL + indicator.PointsDownloadURL +
				indicator.PointsDownloadReachable,
			MaxAccessibility,
		},
		indicator.Interoperability: {
			indicator.PointsFormat + indicator.PointsMediaType +
				indicator.PointsVocabulary + indicator.PointsNonProprietary +
				indicator.PointsMachineReadable + indicator.PointsConformity,
			MaxInteroperability,
		},
		indicator.Reusability: {
			indicator.PointsLicense + indicator.PointsLicenseVocabulary +
				indicator.PointsAccessRights + indicator.PointsAccessRightsVocab +
				indicator.PointsContactPoint + indicator.PointsPublisher,
			MaxReusability,
		},
		indicator.Context: {
			indicator.PointsUsageTerms + indicator.PointsByteSize +
				indicator.PointsReleaseDate + indicator.PointsModification,
			MaxContext,
		},
	}
	total := 0
	for name, s := range sums {
		if s[0] != s[1] {
			panic(fmt.Sprintf("assess: %s indicator weights sum to %d, declared maximum is %d", name, s[0], s[1]))
		}
		total += s[1]
	}
	if total != MaxTotal {
		panic(fmt.Sprintf("assess: dimension maxima sum to %d, declared total is %d", total, MaxTotal))
	}
}

// Rating is the ordinal quality band derived from the total score.
type Rating string

const (
	RatingPoor       Rating = "Poor"
	RatingSufficient Rating = "Sufficient"
	RatingGood       Rating = "Good"
	RatingExcellent  Rating = "Excellent"
)

// RatingOrder lists the bands from worst to best, for stable report rows.
var RatingOrder = []Rating{RatingPoor, RatingSufficient, RatingGood, RatingExcellent}

// DisplayDE returns the portal's German band name.
func (r Rating) DisplayDE() string {
	switch r {
	case RatingPoor:
		return "Mangelhaft"
	case RatingSufficient:
		return "Ausreichend"
	case RatingGood:
		return "Gut"
	case RatingExcellent:
		return "Ausgezeichnet"
	}
	return string(r)
}

// RatingFor maps a total score to its band. The boundaries are closed
// intervals partitioning [0,405]: 0-120 Poor, 121-220 Sufficient,
// 221-350 Good, 351-405 Excellent.
func RatingFor(total int) Rating {
	switch {
	case total <= 120:
		return RatingPoor
	case total <= 220:
		return RatingSufficient
	case total <= 350:
		return RatingGood
	default:
		return RatingExcellent
	}
}

// DimensionScore is one dimension's capped point sum with its constituent
// indicator results kept in evaluation order for traceability.
type DimensionScore struct {
	Name       string             `json:"name"`
	Max        int                `json:"max"`
	Value      int                `json:"value"`
	Indicators []indicator.Result `json:"indicators"`
}

// AssessmentResult is the complete scoring outcome for one record. Defect
// is empty unless a structural invariant broke while scoring this record.
type AssessmentResult struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Organization string           `json:"organization,omitempty"`
	Dimensions   []DimensionScore `json:"dimensions"`
	Total        int              `json:"total_score"`
	Rating       Rating           `json:"rating"`
	Defect       string           `json:"defect,omitempty"`
}

// Defective reports whether scoring this record hit a rule-table defect.
func (a *AssessmentResult) Defective() bool {
	return a.Defect != ""
}

// Dimension returns the named dimension score, or nil.
func (a *AssessmentResult) Dimension(name string) *DimensionScore {
	for i := range a.Dimensions {
		if a.Dimensions[i].Name == name {
			return &a.Dimensions[i]
		}
	}
	return nil
}

// Engine scores records against the rule table. The zero value scores
// offline; attach a Prober to enable the reachability check.
type Engine struct {
	Prober       indicator.Prober
	ProbeTimeout time.Duration
}

// New returns an engine using the given reachability prober. A nil prober
// means offline scoring.
func New(prober indicator.Prober, probeTimeout time.Duration) *Engine {
	return &Engine{Prober: prober, ProbeTimeout: probeTimeout}
}

// Assess scores one record. It never returns an error: absent and
// malformed fields score zero per indicator, and structural invariant
// violations are reported through the result's Defect field so a batch
// can continue past them.
func (e *Engine) Assess(ctx context.Context, r *record.MetadataRecord) AssessmentResult {
	dims := []DimensionScore{
		e.scoreFindability(r),
		e.scoreAccessibility(ctx, r),
		e.scoreInteroperability(r),
		e.scoreReusability(r),
		e.scoreContext(r),
	}

	var defects []string
	total := 0
	for i := range dims {
		for _, res := range dims[i].Indicators {
			if res.Points < 0 || res.Points > res.MaxPoints {
				defects = append(defects, fmt.Sprintf("indicator %s awarded %d of %d points", res.Name, res.Points, res.MaxPoints))
			}
		}
		if dims[i].Value > dims[i].Max {
			defects = append(defects, fmt.Sprintf("%s sum %d exceeds maximum %d", dims[i].Name, dims[i].Value, dims[i].Max))
			dims[i].Value = dims[i].Max
		}
		total += dims[i].Value
	}
	if total < 0 || total > MaxTotal {
		defects = append(defects, fmt.Sprintf("total score %d outside [0,%d]", total, MaxTotal))
	}

	return AssessmentResult{
		ID:           r.ID,
		Title:        r.Title,
		Organization: r.Organization,
		Dimensions:   dims,
		Total:        total,
		Rating:       RatingFor(total),
		Defect:       strings.Join(defects, "; "),
	}
}

func (e *Engine) scoreFindability(r *record.MetadataRecord) DimensionScore {
	return newDimensionScore(indicator.Findability, MaxFindability, []indicator.Result{
		indicator.Keywords(r),
		indicator.Categories(r),
		indicator.SpatialCoverage(r),
		indicator.TemporalCoverage(r),
	})
}

func (e *Engine) scoreAccessibility(ctx context.Context, r *record.MetadataRecord) DimensionScore {
	return newDimensionScore(indicator.Accessibility, MaxAccessibility, []indicator.Result{
		bestAcross(r, indicator.AccessURL),
		bestAcross(r, indicator.DownloadURLPresent),
		bestAcross(r, func(d *record.Distribution) indicator.Result {
			return indicator.DownloadURLReachable(ctx, d, e.Prober, e.ProbeTimeout)
		}),
	})
}

func (e *Engine) scoreInteroperability(r *record.MetadataRecord) DimensionScore {
	return newDimensionScore(indicator.Interoperability, MaxInteroperability, []indicator.Result{
		bestAcross(r, indicator.Format),
		bestAcross(r, indicator.MediaType),
		bestAcross(r, indicator.Vocabulary),
		bestAcross(r, indicator.NonProprietaryFormat),
		bestAcross(r, indicator.MachineReadableFormat),
		indicator.Conformity(r),
	})
}

func (e *Engine) scoreReusability(r *record.MetadataRecord) DimensionScore {
	return newDimensionScore(indicator.Reusability, MaxReusability, []indicator.Result{
		bestAcross(r, indicator.License),
		bestAcross(r, indicator.LicenseVocabulary),
		bestAcross(r, indicator.AccessRights),
		bestAcross(r, indicator.AccessRightsVocabulary),
		indicator.ContactPoint(r),
		indicator.Publisher(r),
	})
}

func (e *Engine) scoreContext(r *record.MetadataRecord) DimensionScore {
	return newDimensionScore(indicator.Context, MaxContext, []indicator.Result{
		indicator.UsageTerms(r),
		bestAcross(r, indicator.ByteSize),
		indicator.ReleaseDate(r),
		indicator.ModificationDate(r),
	})
}

func newDimensionScore(name string, max int, results []indicator.Result) DimensionScore {
	sum := 0
	for _, res := range results {
		sum += res.Points
	}
	return DimensionScore{Name: name, Max: max, Value: sum, Indicators: results}
}

// bestAcross evaluates a distribution-scoped indicator for every
// distribution and keeps the best-scoring outcome, stopping early once
// full points are reached. Records without distributions score zero.
func bestAcross(r *record.MetadataRecord, eval func(*record.Distribution) indicator.Result) indicator.Result {
	if len(r.Distributions) == 0 {
		res := eval(&record.Distribution{})
		res.Points = 0
		res.Passed = false
		res.Rationale = "No distributions"
		return res
	}
	best := eval(&r.Distributions[0])
	for i := 1; i < len(r.Distributions) && best.Points < best.MaxPoints; i++ {
		if res := eval(&r.Distributions[i]); res.Points > best.Points {
			best = res
		}
	}
	return best
}
