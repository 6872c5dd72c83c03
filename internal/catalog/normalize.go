package catalog

import (
	"encoding/json"
	"strings"

	"github.com/berlinonline/mqa/internal/mqa/record"
)

// hiddenNulls are placeholder strings the portal emits where a value is
// really absent. Matching is case-insensitive on the trimmed value.
var hiddenNulls = map[string]struct{}{
	"":             {},
	"null":         {},
	"[]":           {},
	"{}":           {},
	"nan":          {},
	"none":         {},
	"ohne angabe":  {},
	"keine angabe": {},
	"nichts":       {},
	"n/a":          {},
}

// scrub trims a raw value and maps hidden-null placeholders to "".
// This happens once, here at the boundary; the engine never sees them.
func scrub(v string) string {
	t := strings.TrimSpace(v)
	if _, ok := hiddenNulls[strings.ToLower(t)]; ok {
		return ""
	}
	return t
}

// Normalize maps a raw CKAN package to a MetadataRecord. Packages without
// an id or title cannot be assessed or reported and are rejected.
func Normalize(p *Package, fetchedAt string) (record.MetadataRecord, bool) {
	id := scrub(p.ID)
	title := scrub(p.Title)
	if id == "" || title == "" {
		return record.MetadataRecord{}, false
	}

	rec := record.MetadataRecord{
		ID:               id,
		Title:            title,
		Tags:             scrubNames(p.Tags),
		Themes:           scrubNames(p.Groups),
		Spatial:          scrub(p.GeographicalCoverage),
		TemporalStart:    scrub(p.TemporalCoverageFrom),
		TemporalEnd:      scrub(p.TemporalCoverageTo),
		Publisher:        firstNonEmpty(scrub(p.Author), scrub(p.Organization.Title)),
		ContactName:      scrub(p.Maintainer),
		ContactEmail:     scrub(p.MaintainerEmail),
		UsageTerms:       scrub(p.LicenseTitle),
		ReleaseDate:      scrub(p.DateReleased),
		ModificationDate: scrub(p.DateUpdated),
		ConformsTo:       conformance(p),
		Organization:     scrub(p.Organization.Title),
		FetchedAt:        fetchedAt,
	}

	// CKAN has no per-resource access URL; the dataset landing page plays
	// that role, with the resource URL as fallback.
	landing := scrub(p.URL)
	accessRights := scrub(extra(p, "access_rights"))
	for i := range p.Resources {
		res := &p.Resources[i]
		downloadURL := scrub(res.URL)
		accessURL := landing
		if accessURL == "" {
			accessURL = downloadURL
		}
		rights := scrub(res.AccessRights)
		if rights == "" {
			rights = accessRights
		}
		rec.Distributions = append(rec.Distributions, record.Distribution{
			AccessURL:    accessURL,
			DownloadURL:  downloadURL,
			Format:       scrub(res.Format),
			MediaType:    scrub(res.Mimetype),
			ByteSize:     scrub(rawString(res.Size)),
			License:      scrub(p.LicenseID),
			LicenseTitle: scrub(p.LicenseTitle),
			AccessRights: rights,
		})
	}

	return rec, true
}

func scrubNames(refs []NameRef) []string {
	var out []string
	for _, ref := range refs {
		v := scrub(ref.Name)
		if v == "" {
			v = scrub(ref.Title)
		}
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func conformance(p *Package) string {
	if v := scrub(p.Conformance); v != "" {
		return v
	}
	if v := scrub(extra(p, "dcat_ap_de_conformance")); v != "" {
		return v
	}
	return scrub(extra(p, "conforms_to"))
}

func extra(p *Package, key string) string {
	for _, e := range p.Extras {
		if e.Key == key {
			return e.Value
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// rawString renders a size value that may arrive as JSON number, string
// or null.
func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	v := strings.TrimSpace(string(raw))
	if v == "null" {
		return ""
	}
	return v
}
