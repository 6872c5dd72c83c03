package indicator

import (
	"fmt"
	"mime"
	"strings"

	"github.com/berlinonline/mqa/internal/mqa/record"
	"github.com/berlinonline/mqa/internal/mqa/vocab"
)

// Format is one of the two partial-credit indicators: full points for a
// format code in the register, half for a present but unrecognized code,
// zero when absent. Passed means full points.
func Format(d *record.Distribution) Result {
	code := d.FormatCode()
	res := Result{Name: "format", Dimension: Interoperability, MaxPoints: PointsFormat}
	switch {
	case code == "":
		res.Rationale = "No format given"
	case vocab.IsRegisteredFormat(code):
		res.Points = PointsFormat
		res.Passed = true
		res.Rationale = fmt.Sprintf("Format %q is in the format register", code)
	default:
		res.Points = PointsFormat / 2
		res.Rationale = fmt.Sprintf("Format %q given but not in the format register", code)
	}
	return res
}

// MediaType awards full points for a syntactically valid MIME type.
func MediaType(d *record.Distribution) Result {
	if d.MediaType == "" {
		return binary("media_type", Interoperability, PointsMediaType, false, "No media type given")
	}
	if !validMediaType(d.MediaType) {
		return binary("media_type", Interoperability, PointsMediaType, false,
			fmt.Sprintf("Media type %q is not a valid MIME type", d.MediaType))
	}
	return binary("media_type", Interoperability, PointsMediaType, true,
		fmt.Sprintf("Valid media type %q", d.MediaType))
}

// Vocabulary requires format or media type to come from a controlled
// vocabulary, not merely to be present.
func Vocabulary(d *record.Distribution) Result {
	if vocab.IsAcceptedMediaType(d.MediaType) {
		return binary("vocabulary", Interoperability, PointsVocabulary, true,
			fmt.Sprintf("Media type %q is on the accepted list", d.MediaType))
	}
	if code := d.FormatCode(); vocab.IsRegisteredFormat(code) {
		return binary("vocabulary", Interoperability, PointsVocabulary, true,
			fmt.Sprintf("Format %q is in the format register", code))
	}
	return binary("vocabulary", Interoperability, PointsVocabulary, false,
		"Neither media type nor format comes from a controlled vocabulary")
}

// NonProprietaryFormat awards full points for formats on the open allowlist.
func NonProprietaryFormat(d *record.Distribution) Result {
	code := d.FormatCode()
	if code == "" {
		return binary("non_proprietary", Interoperability, PointsNonProprietary, false, "No format given")
	}
	if !vocab.IsNonProprietary(code) {
		return binary("non_proprietary", Interoperability, PointsNonProprietary, false,
			fmt.Sprintf("Format %q is proprietary or unrecognized", code))
	}
	return binary("non_proprietary", Interoperability, PointsNonProprietary, true,
		fmt.Sprintf("Format %q is non-proprietary", code))
}

// MachineReadableFormat awards full points for formats on the
// machine-readable allowlist.
func MachineReadableFormat(d *record.Distribution) Result {
	code := d.FormatCode()
	if code == "" {
		return binary("machine_readable", Interoperability, PointsMachineReadable, false, "No format given")
	}
	if !vocab.IsMachineReadable(code) {
		return binary("machine_readable", Interoperability, PointsMachineReadable, false,
			fmt.Sprintf("Format %q is not machine-readable", code))
	}
	return binary("machine_readable", Interoperability, PointsMachineReadable, true,
		fmt.Sprintf("Format %q is machine-readable", code))
}

// Conformity is the second partial-credit indicator: full points for a
// declared DCAT-AP.de profile, half for the parent DCAT-AP profile, zero
// for no or an unrecognized declaration. Passed means full points.
func Conformity(r *record.MetadataRecord) Result {
	res := Result{Name: "dcat_ap_de_conformity", Dimension: Interoperability, MaxPoints: PointsConformity}
	switch vocab.ClassifyProfile(r.ConformsTo) {
	case vocab.ProfileDCATAPde:
		res.Points = PointsConformity
		res.Passed = true
		res.Rationale = "Declares the DCAT-AP.de profile"
	case vocab.ProfileDCATAP:
		res.Points = PointsConformity / 2
		res.Rationale = "Declares the parent DCAT-AP profile, not the .de extension"
	default:
		if strings.TrimSpace(r.ConformsTo) == "" {
			res.Rationale = "No conformance declaration"
		} else {
			res.Rationale = fmt.Sprintf("Unrecognized profile %q", r.ConformsTo)
		}
	}
	return res
}

func validMediaType(value string) bool {
	mt, _, err := mime.ParseMediaType(value)
	if err != nil {
		return false
	}
	typ, sub, ok := strings.Cut(mt, "/")
	return ok && typ != "" && sub != ""
}
