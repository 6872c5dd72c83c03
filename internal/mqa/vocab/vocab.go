// Package vocab holds the controlled vocabularies the scoring rules check
// values against: the portal's file-format register, the accepted MIME-type
// list, open and machine-readable format allowlists, DCAT-AP.de license
// identifiers and the EU access-right authority codes. Membership checks are
// case-insensitive on trimmed values.
package vocab

import "strings"

var acceptedMediaTypes = newSet(
	"text/csv",
	"application/json",
	"application/xml",
	"application/geopackage+sqlite3",
	"application/gml+xml",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/zip",
	"application/pdf",
	"application/wfs",
	"application/wms",
)

// formatRegister lists the format codes in common use on the portal.
var formatRegister = newSet(
	"csv", "json", "xml", "wfs", "wms", "pdf", "zip", "xls", "xlsx",
	"html", "geojson", "gml", "kml", "shp", "gpkg", "gis",
)

var nonProprietaryFormats = newSet(
	"csv", "json", "xml", "gml", "geojson", "gpkg", "txt", "markdown", "md",
	"html", "htm", "zip", "rdf", "nt", "ttl", "n3", "jsonld", "trig",
	"wfs", "wms",
)

var machineReadableFormats = newSet(
	"csv", "json", "xml", "rdf", "nt", "ttl", "n3", "jsonld", "trig",
	"geojson", "gpkg", "gml", "xlsx", "xls", "ods", "wfs",
)

// dcatAPdeLicenses holds the license identifiers DCAT-AP.de admits.
var dcatAPdeLicenses = newSet(
	"cc-zero", "cc-by", "cc-by-sa", "cc-by/4.0", "cc-nc",
	"dl-de-zero-2.0", "dl-de-by-2.0", "odc-odbl",
	"cc-by-3.0-de", "cc by 3.0 de", "other-closed",
)

// accessRightCodes are the EU access-right authority codes; values may
// arrive bare or as full publications.europa.eu URIs.
var accessRightCodes = newSet("public", "restricted", "non_public")

func newSet(values ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func has(set map[string]struct{}, v string) bool {
	_, ok := set[strings.ToLower(strings.TrimSpace(v))]
	return ok
}

// IsAcceptedMediaType reports whether the MIME type is on the accepted list.
func IsAcceptedMediaType(mediaType string) bool {
	return has(acceptedMediaTypes, mediaType)
}

// IsRegisteredFormat reports whether the format code is in the register.
func IsRegisteredFormat(code string) bool {
	return has(formatRegister, code)
}

// IsNonProprietary reports whether the format is on the open-format allowlist.
func IsNonProprietary(code string) bool {
	return has(nonProprietaryFormats, code)
}

// IsMachineReadable reports whether the format is on the machine-readable
// allowlist. The lists differ: xlsx is machine-readable but proprietary.
func IsMachineReadable(code string) bool {
	return has(machineReadableFormats, code)
}

// IsListedLicense reports whether the license identifier is a DCAT-AP.de one.
func IsListedLicense(id string) bool {
	return has(dcatAPdeLicenses, id)
}

// IsListedAccessRights reports whether the value is an EU access-right code,
// either bare (PUBLIC) or as a full authority URI.
func IsListedAccessRights(value string) bool {
	v := strings.TrimSpace(value)
	if i := strings.LastIndex(v, "/"); i >= 0 {
		v = v[i+1:]
	}
	return has(accessRightCodes, v)
}

// ProfileTier classifies a declared application-profile identifier.
type ProfileTier int

const (
	ProfileNone   ProfileTier = iota // no or unrecognized declaration
	ProfileDCATAP                    // parent DCAT-AP profile
	ProfileDCATAPde
)

// ClassifyProfile maps a conformance declaration to its profile tier.
// The .de extension wins over the parent profile when both would match.
func ClassifyProfile(uri string) ProfileTier {
	v := strings.ToLower(strings.TrimSpace(uri))
	switch {
	case v == "":
		return ProfileNone
	case strings.Contains(v, "dcat-ap.de"):
		return ProfileDCATAPde
	case strings.Contains(v, "data.europa.eu/r5r"), v == "dcat-ap":
		return ProfileDCATAP
	default:
		return ProfileNone
	}
}
