package record

import "strings"

// MetadataRecord is one dataset's metadata as assessed by the engine,
// normalized from the portal's raw package payload (see internal/catalog).
// Fields follow the DCAT-AP.de properties the scoring methodology looks at.
type MetadataRecord struct {
	// Identity
	ID    string `json:"id" parquet:"id"` // Portal-wide dataset identifier
	Title string `json:"title" parquet:"title"`

	// Findability
	Tags          []string `json:"tags" parquet:"tags,list"`
	Themes        []string `json:"themes" parquet:"themes,list"`
	Spatial       string   `json:"spatial" parquet:"spatial"` // Named place, bounding box, WKT or GeoJSON
	TemporalStart string   `json:"temporal_start" parquet:"temporal_start"`
	TemporalEnd   string   `json:"temporal_end" parquet:"temporal_end"`

	// Access
	Distributions []Distribution `json:"distributions" parquet:"distributions,list"`

	// Reuse
	Publisher    string `json:"publisher" parquet:"publisher"`
	ContactName  string `json:"contact_name" parquet:"contact_name"`
	ContactEmail string `json:"contact_email" parquet:"contact_email"`
	UsageTerms   string `json:"usage_terms" parquet:"usage_terms"`

	// Lifecycle
	ReleaseDate      string `json:"release_date" parquet:"release_date"`
	ModificationDate string `json:"modification_date" parquet:"modification_date"`

	// Conformance
	ConformsTo string `json:"conforms_to" parquet:"conforms_to"` // Declared application profile URI

	// Provenance, carried for reporting but never scored
	Organization string `json:"organization" parquet:"organization"`
	FetchedAt    string `json:"fetched_at" parquet:"fetched_at"`
}

// Distribution is one accessible representation of a dataset.
// License and access-rights fields live here because DCAT attaches
// them per distribution; the normalizer copies dataset-level values down.
type Distribution struct {
	AccessURL    string `json:"access_url" parquet:"access_url"`
	DownloadURL  string `json:"download_url" parquet:"download_url"`
	Format       string `json:"format" parquet:"format"` // File format code, e.g. CSV
	MediaType    string `json:"media_type" parquet:"media_type"`
	ByteSize     string `json:"byte_size" parquet:"byte_size"` // Kept as string; portals emit numbers, strings or nothing
	License      string `json:"license" parquet:"license"`     // License identifier, e.g. dl-de-by-2.0
	LicenseTitle string `json:"license_title" parquet:"license_title"`
	AccessRights string `json:"access_rights" parquet:"access_rights"`
}

// HasTemporal reports whether any temporal coverage is declared at all.
func (r *MetadataRecord) HasTemporal() bool {
	return r.TemporalStart != "" || r.TemporalEnd != ""
}

// HasContact reports whether any contact point field is declared.
func (r *MetadataRecord) HasContact() bool {
	return r.ContactName != "" || r.ContactEmail != ""
}

// FormatCode returns the format normalized for vocabulary lookups.
func (d *Distribution) FormatCode() string {
	return strings.ToLower(strings.TrimSpace(d.Format))
}

// LicenseID returns the license identifier normalized for vocabulary lookups.
func (d *Distribution) LicenseID() string {
	return strings.ToLower(strings.TrimSpace(d.License))
}
