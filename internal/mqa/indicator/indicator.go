// Package indicator implements the leaf-level scoring checks of the
// metadata quality assessment. Every evaluator is a pure function over a
// normalized record or distribution and returns a Result; absent or
// malformed input scores zero with a rationale, never an error. The one
// check that touches the network does so through the Prober interface so
// runs can be offline or deterministic under test.
package indicator

import (
	"context"
	"time"
)

// Dimension names as they appear in results and reports.
const (
	Findability      = "Findability"
	Accessibility    = "Accessibility"
	Interoperability = "Interoperability"
	Reusability      = "Reusability"
	Context          = "Context"
)

// Point weights per indicator, from the portal's assessment methodology.
const (
	PointsKeywords          = 30
	PointsCategories        = 30
	PointsSpatial           = 20
	PointsTemporal          = 20
	PointsAccessURL         = 50
	PointsDownloadURL       = 20
	PointsDownloadReachable = 30
	PointsFormat            = 20
	PointsMediaType         = 10
	PointsVocabulary        = 10
	PointsNonProprietary    = 20
	PointsMachineReadable   = 20
	PointsConformity        = 30
	PointsLicense           = 20
	PointsLicenseVocabulary = 10
	PointsAccessRights      = 10
	PointsAccessRightsVocab = 5
	PointsContactPoint      = 20
	PointsPublisher         = 10
	PointsUsageTerms        = 5
	PointsByteSize          = 5
	PointsReleaseDate       = 5
	PointsModification      = 5
)

// Result is the outcome of a single indicator evaluation. For binary
// indicators Passed is equivalent to Points > 0; the two partial-credit
// indicators (format, dcat_ap_de_conformity) pass only on full points.
type Result struct {
	Name      string `json:"name"`
	Dimension string `json:"dimension"`
	MaxPoints int    `json:"max_points"`
	Points    int    `json:"points"`
	Passed    bool   `json:"passed"`
	Rationale string `json:"rationale"`
}

// ProbeResult is the reachability oracle's answer for one URL. Status is
// only meaningful when a response arrived; Err carries the failure reason
// when none did. The oracle never returns a Go error.
type ProbeResult struct {
	Reachable bool
	Status    int
	Err       string
}

// Prober is the injected reachability oracle. A nil Prober means an
// offline run: the one indicator that needs it scores zero.
type Prober interface {
	Check(ctx context.Context, url string, timeout time.Duration) ProbeResult
}

func binary(name, dimension string, max int, ok bool, rationale string) Result {
	points := 0
	if ok {
		points = max
	}
	return Result{
		Name:      name,
		Dimension: dimension,
		MaxPoints: max,
		Points:    points,
		Passed:    ok,
		Rationale: rationale,
	}
}

// dateLayouts are the formats the portal emits for lifecycle and
// temporal coverage dates.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02.01.2006",
}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
