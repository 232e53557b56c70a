// Package capture models the per-document-slot acquisition flow: an image
// arrives either from a file picker or a live camera frame, and both paths
// converge on the same artifact shape so the upload pipeline never branches
// on the source.
package capture

import (
	"fmt"
)

// Slot identifies one document image the user must provide. The values
// double as the current Firestore field names for the slot URLs.
type Slot string

const (
	SlotLicenseFront Slot = "licenseFront"
	SlotLicenseBack  Slot = "licenseBack"
	SlotAadhaarFront Slot = "aadhaarFront"
	SlotAadhaarBack  Slot = "aadhaarBack"
)

// slotInfo carries the fixed naming contract per slot. CanonicalFile is the
// object name every upload for the slot overwrites; the legacy keys are the
// Firestore field names older records stored the URL under.
type slotInfo struct {
	docType       string
	page          string
	canonicalFile string
	legacyKey     string
}

var slotTable = map[Slot]slotInfo{
	SlotLicenseFront: {"driving", "front", "front_page_driving_license.png", "front_page_driving_license"},
	SlotLicenseBack:  {"driving", "back", "back_page_driving_license.png", "back_page_driving_license"},
	SlotAadhaarFront: {"aadhar", "front", "front_page_aadhaar_card.png", "front_page_aadhaar_card"},
	SlotAadhaarBack:  {"aadhar", "back", "back_page_aadhaar_card.png", "back_page_aadhaar_card"},
}

// Slots returns every document slot in display order.
func Slots() []Slot {
	return []Slot{SlotLicenseFront, SlotLicenseBack, SlotAadhaarFront, SlotAadhaarBack}
}

// ParseSlot validates a slot identifier from the API surface.
func ParseSlot(s string) (Slot, error) {
	slot := Slot(s)
	if _, ok := slotTable[slot]; !ok {
		return "", fmt.Errorf("capture: unknown document slot %q", s)
	}
	return slot, nil
}

// CanonicalFilename is the deterministic object name the slot uploads under.
// Re-uploading overwrites in place, so no orphaned blobs accumulate.
func (s Slot) CanonicalFilename() string {
	return slotTable[s].canonicalFile
}

// LegacyField is the Firestore field name older records stored this slot's
// URL under. It is also the field new records are written with; only reads
// ever see the camelCase current name.
func (s Slot) LegacyField() string {
	return slotTable[s].legacyKey
}

// FrameFilename names a camera-frame artifact, e.g. "driving_front.jpg".
func (s Slot) FrameFilename() string {
	info := slotTable[s]
	return fmt.Sprintf("%s_%s.jpg", info.docType, info.page)
}

func (s Slot) String() string {
	return string(s)
}
