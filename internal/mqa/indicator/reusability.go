package indicator

import (
	"fmt"
	"net/mail"

	"github.com/berlinonline/mqa/internal/mqa/record"
	"github.com/berlinonline/mqa/internal/mqa/vocab"
)

// License awards full points when a license identifier or title is present.
func License(d *record.Distribution) Result {
	if d.License == "" && d.LicenseTitle == "" {
		return binary("license", Reusability, PointsLicense, false, "No license given")
	}
	return binary("license", Reusability, PointsLicense, true, "License given")
}

// LicenseVocabulary requires the license identifier to be on the
// DCAT-AP.de license list.
func LicenseVocabulary(d *record.Distribution) Result {
	id := d.LicenseID()
	if id == "" {
		return binary("license_vocabulary", Reusability, PointsLicenseVocabulary, false, "No license identifier given")
	}
	if !vocab.IsListedLicense(id) {
		return binary("license_vocabulary", Reusability, PointsLicenseVocabulary, false,
			fmt.Sprintf("License %q is not on the DCAT-AP.de list", id))
	}
	return binary("license_vocabulary", Reusability, PointsLicenseVocabulary, true,
		fmt.Sprintf("License %q is on the DCAT-AP.de list", id))
}

// AccessRights awards full points when an access-rights statement is present.
func AccessRights(d *record.Distribution) Result {
	if d.AccessRights == "" {
		return binary("access_rights", Reusability, PointsAccessRights, false, "No access rights given")
	}
	return binary("access_rights", Reusability, PointsAccessRights, true, "Access rights given")
}

// AccessRightsVocabulary requires the value to be an EU access-right
// authority code, bare or as a full URI.
func AccessRightsVocabulary(d *record.Distribution) Result {
	if d.AccessRights == "" {
		return binary("access_rights_vocabulary", Reusability, PointsAccessRightsVocab, false, "No access rights given")
	}
	if !vocab.IsListedAccessRights(d.AccessRights) {
		return binary("access_rights_vocabulary", Reusability, PointsAccessRightsVocab, false,
			fmt.Sprintf("Access rights %q is not an EU authority code", d.AccessRights))
	}
	return binary("access_rights_vocabulary", Reusability, PointsAccessRightsVocab, true,
		fmt.Sprintf("Access rights %q is an EU authority code", d.AccessRights))
}

// ContactPoint awards full points when a contact name or email is present
// and the email, if given, parses. A present but invalid email fails the
// indicator even alongside a valid name.
func ContactPoint(r *record.MetadataRecord) Result {
	if !r.HasContact() {
		return binary("contact_point", Reusability, PointsContactPoint, false, "No contact point given")
	}
	if r.ContactEmail != "" && !validEmail(r.ContactEmail) {
		return binary("contact_point", Reusability, PointsContactPoint, false,
			fmt.Sprintf("Contact email %q is not a valid address", r.ContactEmail))
	}
	return binary("contact_point", Reusability, PointsContactPoint, true, "Contact point given")
}

// Publisher awards full points when a publisher name or identifier is present.
func Publisher(r *record.MetadataRecord) Result {
	if r.Publisher == "" {
		return binary("publisher", Reusability, PointsPublisher, false, "No publisher given")
	}
	return binary("publisher", Reusability, PointsPublisher, true, fmt.Sprintf("Publisher %q", r.Publisher))
}

func validEmail(address string) bool {
	_, err := mail.ParseAddress(address)
	return err == nil
}
