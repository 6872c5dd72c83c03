package indicator

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/berlinonline/mqa/internal/mqa/record"
)

// Keywords awards full points when at least one non-empty tag is present.
func Keywords(r *record.MetadataRecord) Result {
	n := countNonEmpty(r.Tags)
	if n == 0 {
		return binary("keywords", Findability, PointsKeywords, false, "No keywords given")
	}
	return binary("keywords", Findability, PointsKeywords, true, fmt.Sprintf("Keywords given (%d)", n))
}

// Categories awards full points when at least one non-empty theme is present.
func Categories(r *record.MetadataRecord) Result {
	n := countNonEmpty(r.Themes)
	if n == 0 {
		return binary("categories", Findability, PointsCategories, false, "No categories given")
	}
	return binary("categories", Findability, PointsCategories, true, fmt.Sprintf("Categories given (%d)", n))
}

// SpatialCoverage requires a present and well-formed spatial descriptor:
// a GeoJSON fragment, a balanced WKT geometry, a four-number bounding box
// or a named place. Present but unparsable values score zero.
func SpatialCoverage(r *record.MetadataRecord) Result {
	v := strings.TrimSpace(r.Spatial)
	if v == "" {
		return binary("spatial_coverage", Findability, PointsSpatial, false, "No spatial coverage given")
	}
	if !wellFormedSpatial(v) {
		return binary("spatial_coverage", Findability, PointsSpatial, false,
			fmt.Sprintf("Spatial value %q is not a recognizable geometry or place name", v))
	}
	return binary("spatial_coverage", Findability, PointsSpatial, true, fmt.Sprintf("Spatial coverage %q", v))
}

// TemporalCoverage requires a parseable start/end (or single) date with
// start not after end. Incoherent ranges count as absent.
func TemporalCoverage(r *record.MetadataRecord) Result {
	if !r.HasTemporal() {
		return binary("temporal_coverage", Findability, PointsTemporal, false, "No temporal coverage given")
	}
	var start, end time.Time
	haveStart, haveEnd := r.TemporalStart != "", r.TemporalEnd != ""
	if haveStart {
		t, ok := parseDate(r.TemporalStart)
		if !ok {
			return binary("temporal_coverage", Findability, PointsTemporal, false,
				fmt.Sprintf("Unparseable start date %q", r.TemporalStart))
		}
		start = t
	}
	if haveEnd {
		t, ok := parseDate(r.TemporalEnd)
		if !ok {
			return binary("temporal_coverage", Findability, PointsTemporal, false,
				fmt.Sprintf("Unparseable end date %q", r.TemporalEnd))
		}
		end = t
	}
	if haveStart && haveEnd && start.After(end) {
		return binary("temporal_coverage", Findability, PointsTemporal, false,
			fmt.Sprintf("Start date %s after end date %s", r.TemporalStart, r.TemporalEnd))
	}
	return binary("temporal_coverage", Findability, PointsTemporal, true, "Coherent temporal coverage given")
}

func countNonEmpty(values []string) int {
	n := 0
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			n++
		}
	}
	return n
}

var wktKeywords = []string{
	"POINT", "LINESTRING", "POLYGON",
	"MULTIPOINT", "MULTILINESTRING", "MULTIPOLYGON", "GEOMETRYCOLLECTION",
}

func wellFormedSpatial(v string) bool {
	if strings.HasPrefix(v, "{") {
		return json.Valid([]byte(v))
	}
	upper := strings.ToUpper(v)
	for _, kw := range wktKeywords {
		if strings.HasPrefix(upper, kw) {
			return balancedParens(v)
		}
	}
	if isBoundingBox(v) {
		return true
	}
	return strings.ContainsFunc(v, unicode.IsLetter)
}

func balancedParens(v string) bool {
	depth, opens := 0, 0
	for _, c := range v {
		switch c {
		case '(':
			depth++
			opens++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0 && opens > 0
}

func isBoundingBox(v string) bool {
	parts := strings.Split(v, ",")
	if len(parts) != 4 {
		return false
	}
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
