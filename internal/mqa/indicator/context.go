package indicator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/berlinonline/mqa/internal/mqa/record"
)

// UsageTerms awards full points when usage terms are present.
func UsageTerms(r *record.MetadataRecord) Result {
	if strings.TrimSpace(r.UsageTerms) == "" {
		return binary("usage_terms", Context, PointsUsageTerms, false, "No usage terms given")
	}
	return binary("usage_terms", Context, PointsUsageTerms, true, "Usage terms given")
}

// ByteSize awards full points when the distribution declares a parseable,
// non-negative size.
func ByteSize(d *record.Distribution) Result {
	v := strings.TrimSpace(d.ByteSize)
	if v == "" {
		return binary("byte_size", Context, PointsByteSize, false, "No byte size given")
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return binary("byte_size", Context, PointsByteSize, false,
			fmt.Sprintf("Byte size %q is not a non-negative number", d.ByteSize))
	}
	return binary("byte_size", Context, PointsByteSize, true, fmt.Sprintf("Byte size %s", v))
}

// ReleaseDate awards full points for a parseable release date.
func ReleaseDate(r *record.MetadataRecord) Result {
	return dateIndicator("release_date", PointsReleaseDate, r.ReleaseDate, "release date")
}

// ModificationDate awards full points for a parseable modification date.
func ModificationDate(r *record.MetadataRecord) Result {
	return dateIndicator("modification_date", PointsModification, r.ModificationDate, "modification date")
}

func dateIndicator(name string, max int, value, label string) Result {
	if strings.TrimSpace(value) == "" {
		return binary(name, Context, max, false, fmt.Sprintf("No %s given", label))
	}
	if _, ok := parseDate(value); !ok {
		return binary(name, Context, max, false, fmt.Sprintf("Unparseable %s %q", label, value))
	}
	return binary(name, Context, max, true, fmt.Sprintf("Parseable %s given", label))
}
