package indicator

import (
	"testing"

	"github.com/berlinonline/mqa/internal/mqa/record"
)

func TestUsageTerms(t *testing.T) {
	res := UsageTerms(&record.MetadataRecord{UsageTerms: "Datenlizenz Deutschland – Namensnennung"})
	if !res.Passed {
		t.Error("Expected present usage terms to pass")
	}

	res = UsageTerms(&record.MetadataRecord{UsageTerms: "   "})
	if res.Passed {
		t.Error("Expected blank usage terms to fail")
	}
}

func TestByteSize(t *testing.T) {
	tests := []struct {
		name     string
		size     string
		expected bool
	}{
		{name: "integer size", size: "20480", expected: true},
		{name: "float size", size: "20480.5", expected: true},
		{name: "zero", size: "0", expected: true},
		{name: "absent", size: "", expected: false},
		{name: "negative", size: "-5", expected: false},
		{name: "prose", size: "about 2 MB", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ByteSize(&record.Distribution{ByteSize: tt.size})
			if res.Passed != tt.expected {
				t.Errorf("ByteSize(%q) passed=%v, want %v (rationale: %s)", tt.size, res.Passed, tt.expected, res.Rationale)
			}
		})
	}
}

func TestReleaseDate(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected bool
	}{
		{name: "iso date", value: "2023-05-17", expected: true},
		{name: "rfc3339", value: "2023-05-17T08:30:00Z", expected: true},
		{name: "absent", value: "", expected: false},
		{name: "prose", value: "Mai 2023", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ReleaseDate(&record.MetadataRecord{ReleaseDate: tt.value})
			if res.Passed != tt.expected {
				t.Errorf("ReleaseDate(%q) passed=%v, want %v", tt.value, res.Passed, tt.expected)
			}
		})
	}
}

func TestModificationDate(t *testing.T) {
	res := ModificationDate(&record.MetadataRecord{ModificationDate: "2024-02-01"})
	if !res.Passed || res.Points != PointsModification {
		t.Errorf("Expected full points, got %d (passed=%v)", res.Points, res.Passed)
	}

	res = ModificationDate(&record.MetadataRecord{ModificationDate: "gestern"})
	if res.Passed || res.Points != 0 {
		t.Errorf("Expected zero points for unparseable date, got %d (passed=%v)", res.Points, res.Passed)
	}
}
