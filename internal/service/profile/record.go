package profile

import (
	"strings"

	"github.com/zymoapp/rental-api/internal/capture"
)

// Field alias tables: ordered precedence from current name to legacy names.
// Older records were written by a previous backend with different field
// names and are never rewritten until the user saves again, so this mapping
// is a permanent compatibility contract, not a migration.
var textAliases = map[string][]string{
	"name":  {"name", "firstname"},
	"phone": {"phone", "mobileNumber"},
	"email": {"email"},
	"dob":   {"dob", "DateOfBirth"},
}

// legacyPhonePrefix was baked into mobileNumber by the old backend.
const legacyPhonePrefix = "+91"

// resolveText returns the first non-empty string among the aliases of a
// logical field.
func resolveText(data map[string]any, logical string) string {
	for _, key := range textAliases[logical] {
		if s, ok := data[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// resolveDocumentURL returns a slot's URL, preferring the current field
// name over the legacy one.
func resolveDocumentURL(data map[string]any, slot capture.Slot) string {
	if s, ok := data[slot.String()].(string); ok && s != "" {
		return s
	}
	if s, ok := data[slot.LegacyField()].(string); ok && s != "" {
		return s
	}
	return ""
}

// resolveRecord maps a raw stored document of any era onto a Record.
func resolveRecord(data map[string]any) *Record {
	r := &Record{
		Name:        resolveText(data, "name"),
		Phone:       strings.TrimPrefix(resolveText(data, "phone"), legacyPhonePrefix),
		Email:       resolveText(data, "email"),
		DateOfBirth: resolveText(data, "dob"),
		Documents:   make(map[capture.Slot]string, len(capture.Slots())),
		Uploaded:    make(map[capture.Slot]bool, len(capture.Slots())),
	}

	for _, slot := range capture.Slots() {
		r.Documents[slot] = resolveDocumentURL(data, slot)
	}

	// Prefer the stored uploaded map; reconstruct it from URL presence for
	// records that predate it.
	stored, hasMap := data["uploaded"].(map[string]any)
	for _, slot := range capture.Slots() {
		if hasMap {
			if b, ok := stored[slot.String()].(bool); ok {
				r.Uploaded[slot] = b
				continue
			}
		}
		r.Uploaded[slot] = r.Documents[slot] != ""
	}

	if s, ok := data["city"].(string); ok {
		r.City = s
	}
	if s, ok := data["street1"].(string); ok {
		r.Street1 = s
	}
	if s, ok := data["street2"].(string); ok {
		r.Street2 = s
	}
	if s, ok := data["zipcode"].(string); ok {
		r.Zipcode = s
	}

	return r
}

// storedProfile is the exact shape every save writes. Field names match the
// upstream booking backend: phone stays null with the number under
// mobileNumber, document URLs live under the snake_case keys, and the empty
// address fields are written on every save.
type storedProfile struct {
	Name         string  `firestore:"name"`
	Phone        *string `firestore:"phone"`
	Email        string  `firestore:"email"`
	MobileNumber *string `firestore:"mobileNumber"`
	DateOfBirth  string  `firestore:"DateOfBirth"`

	LicenseFront string `firestore:"front_page_driving_license"`
	LicenseBack  string `firestore:"back_page_driving_license"`
	AadhaarFront string `firestore:"front_page_aadhaar_card"`
	AadhaarBack  string `firestore:"back_page_aadhaar_card"`

	City    string `firestore:"city"`
	Street1 string `firestore:"street1"`
	Street2 string `firestore:"street2"`
	Zipcode string `firestore:"zipcode"`

	Uploaded map[string]bool `firestore:"uploaded"`
}

// buildStored assembles the write shape from form fields and resolved slot
// URLs.
func buildStored(form FormFields, urls map[capture.Slot]string) storedProfile {
	var mobile *string
	if form.Phone != "" {
		m := form.Phone
		mobile = &m
	}

	uploaded := make(map[string]bool, len(capture.Slots()))
	for _, slot := range capture.Slots() {
		uploaded[slot.String()] = urls[slot] != ""
	}

	return storedProfile{
		Name:         form.Name,
		Phone:        nil, // superseded by mobileNumber, kept for old readers
		Email:        form.Email,
		MobileNumber: mobile,
		DateOfBirth:  form.DateOfBirth,
		LicenseFront: urls[capture.SlotLicenseFront],
		LicenseBack:  urls[capture.SlotLicenseBack],
		AadhaarFront: urls[capture.SlotAadhaarFront],
		AadhaarBack:  urls[capture.SlotAadhaarBack],
		Uploaded:     uploaded,
	}
}

// recordFromStored converts the write shape back to a Record for returning
// to the caller.
func recordFromStored(sp storedProfile) *Record {
	phone := ""
	if sp.MobileNumber != nil {
		phone = strings.TrimPrefix(*sp.MobileNumber, legacyPhonePrefix)
	}
	r := &Record{
		Name:        sp.Name,
		Phone:       phone,
		Email:       sp.Email,
		DateOfBirth: sp.DateOfBirth,
		Documents: map[capture.Slot]string{
			capture.SlotLicenseFront: sp.LicenseFront,
			capture.SlotLicenseBack:  sp.LicenseBack,
			capture.SlotAadhaarFront: sp.AadhaarFront,
			capture.SlotAadhaarBack:  sp.AadhaarBack,
		},
		Uploaded: make(map[capture.Slot]bool, len(capture.Slots())),
		City:     sp.City,
		Street1:  sp.Street1,
		Street2:  sp.Street2,
		Zipcode:  sp.Zipcode,
	}
	for _, slot := range capture.Slots() {
		r.Uploaded[slot] = sp.Uploaded[slot.String()]
	}
	return r
}
