package indicator

import (
	"testing"

	"github.com/berlinonline/mqa/internal/mqa/record"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name           string
		format         string
		expectedPoints int
		expectedPassed bool
	}{
		{name: "registered format", format: "csv", expectedPoints: PointsFormat, expectedPassed: true},
		{name: "registered format uppercase", format: "CSV", expectedPoints: PointsFormat, expectedPassed: true},
		{name: "unknown format gets half credit", format: "sav", expectedPoints: PointsFormat / 2, expectedPassed: false},
		{name: "absent", format: "", expectedPoints: 0, expectedPassed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Format(&record.Distribution{Format: tt.format})
			if res.Points != tt.expectedPoints {
				t.Errorf("Expected %d points, got %d", tt.expectedPoints, res.Points)
			}
			if res.Passed != tt.expectedPassed {
				t.Errorf("Expected passed=%v, got %v", tt.expectedPassed, res.Passed)
			}
		})
	}
}

func TestMediaType(t *testing.T) {
	tests := []struct {
		name      string
		mediaType string
		expected  bool
	}{
		{name: "simple type", mediaType: "text/csv", expected: true},
		{name: "type with parameter", mediaType: "text/csv; charset=utf-8", expected: true},
		{name: "unknown but valid", mediaType: "application/x-whatever", expected: true},
		{name: "absent", mediaType: "", expected: false},
		{name: "missing subtype", mediaType: "text", expected: false},
		{name: "garbage", mediaType: "not a media type", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := MediaType(&record.Distribution{MediaType: tt.mediaType})
			if res.Passed != tt.expected {
				t.Errorf("MediaType(%q) passed=%v, want %v (rationale: %s)", tt.mediaType, res.Passed, tt.expected, res.Rationale)
			}
		})
	}
}

func TestVocabulary(t *testing.T) {
	tests := []struct {
		name      string
		format    string
		mediaType string
		expected  bool
	}{
		{name: "accepted media type", format: "", mediaType: "text/csv", expected: true},
		{name: "registered format only", format: "geojson", mediaType: "", expected: true},
		{name: "both controlled", format: "csv", mediaType: "text/csv", expected: true},
		{name: "valid but uncontrolled media type", format: "", mediaType: "application/x-whatever", expected: false},
		{name: "unregistered format", format: "sav", mediaType: "", expected: false},
		{name: "nothing given", format: "", mediaType: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Vocabulary(&record.Distribution{Format: tt.format, MediaType: tt.mediaType})
			if res.Passed != tt.expected {
				t.Errorf("Vocabulary(format=%q, media=%q) passed=%v, want %v", tt.format, tt.mediaType, res.Passed, tt.expected)
			}
		})
	}
}

func TestNonProprietaryFormat(t *testing.T) {
	res := NonProprietaryFormat(&record.Distribution{Format: "csv"})
	if !res.Passed {
		t.Error("Expected csv to pass")
	}

	res = NonProprietaryFormat(&record.Distribution{Format: "xlsx"})
	if res.Passed {
		t.Error("Expected xlsx to fail")
	}

	res = NonProprietaryFormat(&record.Distribution{})
	if res.Passed || res.Rationale != "No format given" {
		t.Errorf("Expected absent format to fail, got passed=%v rationale=%q", res.Passed, res.Rationale)
	}
}

func TestMachineReadableFormat(t *testing.T) {
	res := MachineReadableFormat(&record.Distribution{Format: "xlsx"})
	if !res.Passed {
		t.Error("Expected xlsx to be machine-readable")
	}

	res = MachineReadableFormat(&record.Distribution{Format: "pdf"})
	if res.Passed {
		t.Error("Expected pdf to fail")
	}
}

func TestConformity(t *testing.T) {
	tests := []struct {
		name           string
		conformsTo     string
		expectedPoints int
		expectedPassed bool
	}{
		{name: "de profile", conformsTo: "http://dcat-ap.de/def/dcatde/2.0", expectedPoints: PointsConformity, expectedPassed: true},
		{name: "parent profile", conformsTo: "http://data.europa.eu/r5r/", expectedPoints: PointsConformity / 2, expectedPassed: false},
		{name: "parent profile bare", conformsTo: "dcat-ap", expectedPoints: PointsConformity / 2, expectedPassed: false},
		{name: "unrecognized profile", conformsTo: "http://example.org/profile", expectedPoints: 0, expectedPassed: false},
		{name: "absent", conformsTo: "", expectedPoints: 0, expectedPassed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Conformity(&record.MetadataRecord{ConformsTo: tt.conformsTo})
			if res.Points != tt.expectedPoints {
				t.Errorf("Expected %d points, got %d (rationale: %s)", tt.expectedPoints, res.Points, res.Rationale)
			}
			if res.Passed != tt.expectedPassed {
				t.Errorf("Expected passed=%v, got %v", tt.expectedPassed, res.Passed)
			}
		})
	}
}
