package indicator

import (
	"testing"

	"github.com/berlinonline/mqa/internal/mqa/record"
)

func TestKeywords(t *testing.T) {
	tests := []struct {
		name           string
		tags           []string
		expectedPoints int
	}{
		{name: "tags present", tags: []string{"umwelt", "luft"}, expectedPoints: PointsKeywords},
		{name: "single tag", tags: []string{"umwelt"}, expectedPoints: PointsKeywords},
		{name: "no tags", tags: nil, expectedPoints: 0},
		{name: "empty slice", tags: []string{}, expectedPoints: 0},
		{name: "only blank tags", tags: []string{"", "   "}, expectedPoints: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Keywords(&record.MetadataRecord{Tags: tt.tags})
			if res.Points != tt.expectedPoints {
				t.Errorf("Expected %d points, got %d", tt.expectedPoints, res.Points)
			}
			if res.Passed != (tt.expectedPoints > 0) {
				t.Errorf("Expected passed=%v, got %v", tt.expectedPoints > 0, res.Passed)
			}
			if res.Dimension != Findability {
				t.Errorf("Expected dimension %s, got %s", Findability, res.Dimension)
			}
			if res.Rationale == "" {
				t.Error("Expected a rationale")
			}
		})
	}
}

func TestCategories(t *testing.T) {
	res := Categories(&record.MetadataRecord{Themes: []string{"geo"}})
	if !res.Passed || res.Points != PointsCategories {
		t.Errorf("Expected full points for present themes, got %d (passed=%v)", res.Points, res.Passed)
	}

	res = Categories(&record.MetadataRecord{})
	if res.Passed || res.Points != 0 {
		t.Errorf("Expected zero points for missing themes, got %d (passed=%v)", res.Points, res.Passed)
	}
	if res.Rationale != "No categories given" {
		t.Errorf("Unexpected rationale: %q", res.Rationale)
	}
}

func TestSpatialCoverage(t *testing.T) {
	tests := []struct {
		name     string
		spatial  string
		expected bool
	}{
		{name: "place name", spatial: "Berlin", expected: true},
		{name: "geojson polygon", spatial: `{"type":"Polygon","coordinates":[[[13.0,52.3],[13.8,52.3],[13.8,52.7],[13.0,52.3]]]}`, expected: true},
		{name: "wkt point", spatial: "POINT(13.404954 52.520008)", expected: true},
		{name: "wkt multipolygon", spatial: "MULTIPOLYGON(((13.0 52.3,13.8 52.3,13.8 52.7,13.0 52.3)))", expected: true},
		{name: "bounding box", spatial: "13.088,52.338,13.761,52.675", expected: true},
		{name: "absent", spatial: "", expected: false},
		{name: "malformed geojson", spatial: `{"type":"Polygon","coordinates":`, expected: false},
		{name: "unbalanced wkt", spatial: "POINT(13.404954 52.520008", expected: false},
		{name: "wkt without coordinates", spatial: "POINT", expected: false},
		{name: "three number box", spatial: "13.088,52.338,13.761", expected: false},
		{name: "digits only", spatial: "131313", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := SpatialCoverage(&record.MetadataRecord{Spatial: tt.spatial})
			if res.Passed != tt.expected {
				t.Errorf("SpatialCoverage(%q) passed=%v, want %v (rationale: %s)", tt.spatial, res.Passed, tt.expected, res.Rationale)
			}
		})
	}
}

func TestTemporalCoverage(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		expected bool
	}{
		{name: "coherent range", start: "2020-01-01", end: "2020-12-31", expected: true},
		{name: "start only", start: "2020-01-01", end: "", expected: true},
		{name: "end only", start: "", end: "2020-12-31", expected: true},
		{name: "equal start and end", start: "2020-06-15", end: "2020-06-15", expected: true},
		{name: "german date format", start: "01.01.2020", end: "31.12.2020", expected: true},
		{name: "timestamp format", start: "2020-01-01T00:00:00", end: "2020-12-31T23:59:59", expected: true},
		{name: "absent", start: "", end: "", expected: false},
		{name: "inverted range", start: "2021-01-01", end: "2020-01-01", expected: false},
		{name: "unparseable start", start: "not-a-date", end: "2020-12-31", expected: false},
		{name: "unparseable end", start: "2020-01-01", end: "sometime", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := TemporalCoverage(&record.MetadataRecord{TemporalStart: tt.start, TemporalEnd: tt.end})
			if res.Passed != tt.expected {
				t.Errorf("TemporalCoverage(%q, %q) passed=%v, want %v (rationale: %s)",
					tt.start, tt.end, res.Passed, tt.expected, res.Rationale)
			}
			if tt.expected && res.Points != PointsTemporal {
				t.Errorf("Expected %d points, got %d", PointsTemporal, res.Points)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected bool
	}{
		{name: "iso date", value: "2023-05-17", expected: true},
		{name: "rfc3339", value: "2023-05-17T08:30:00Z", expected: true},
		{name: "timestamp without zone", value: "2023-05-17T08:30:00", expected: true},
		{name: "german date", value: "17.05.2023", expected: true},
		{name: "prose", value: "May 2023", expected: false},
		{name: "empty", value: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := parseDate(tt.value); ok != tt.expected {
				t.Errorf("parseDate(%q) = %v, want %v", tt.value, ok, tt.expected)
			}
		})
	}
}
