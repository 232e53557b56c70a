package profile

import (
	"testing"

	"github.com/zymoapp/rental-api/internal/capture"
)

func TestResolveRecordCurrentFields(t *testing.T) {
	r := resolveRecord(map[string]any{
		"name":         "Asha Rao",
		"phone":        "9876543210",
		"email":        "asha@example.com",
		"dob":          "1994-05-21",
		"licenseFront": "https://example.com/lf.png",
		"uploaded": map[string]any{
			"licenseFront": true,
			"licenseBack":  false,
		},
	})

	if r.Name != "Asha Rao" || r.Phone != "9876543210" || r.Email != "asha@example.com" || r.DateOfBirth != "1994-05-21" {
		t.Fatalf("unexpected record: %+v", r)
	}
	if r.Documents[capture.SlotLicenseFront] != "https://example.com/lf.png" {
		t.Errorf("unexpected licenseFront URL: %q", r.Documents[capture.SlotLicenseFront])
	}
	if !r.Uploaded[capture.SlotLicenseFront] || r.Uploaded[capture.SlotLicenseBack] {
		t.Errorf("unexpected uploaded map: %+v", r.Uploaded)
	}
}

func TestResolveRecordLegacyFields(t *testing.T) {
	// A record written by the previous backend: different field names, the
	// country prefix baked into the number, no uploaded map.
	r := resolveRecord(map[string]any{
		"firstname":                  "Ravi Kumar",
		"mobileNumber":               "+919876543210",
		"email":                      "ravi@example.com",
		"DateOfBirth":                "1990-01-02",
		"front_page_driving_license": "https://example.com/legacy-lf.png",
		"front_page_aadhaar_card":    "https://example.com/legacy-af.png",
	})

	if r.Name != "Ravi Kumar" {
		t.Errorf("expected firstname fallback, got %q", r.Name)
	}
	if r.Phone != "9876543210" {
		t.Errorf("expected +91 stripped, got %q", r.Phone)
	}
	if r.DateOfBirth != "1990-01-02" {
		t.Errorf("expected DateOfBirth fallback, got %q", r.DateOfBirth)
	}
	if r.Documents[capture.SlotLicenseFront] != "https://example.com/legacy-lf.png" {
		t.Errorf("expected legacy document field, got %q", r.Documents[capture.SlotLicenseFront])
	}
	// Uploaded reconstructed from URL presence.
	if !r.Uploaded[capture.SlotLicenseFront] || !r.Uploaded[capture.SlotAadhaarFront] {
		t.Errorf("expected uploaded reconstructed for populated slots: %+v", r.Uploaded)
	}
	if r.Uploaded[capture.SlotLicenseBack] || r.Uploaded[capture.SlotAadhaarBack] {
		t.Errorf("expected empty slots not uploaded: %+v", r.Uploaded)
	}
}

func TestResolveRecordPrefersCurrentOverLegacy(t *testing.T) {
	r := resolveRecord(map[string]any{
		"name":      "Current Name",
		"firstname": "Legacy Name",
		"phone":     "1112223334",
		// Legacy number must lose to the current field even when present.
		"mobileNumber": "+919999999999",
	})
	if r.Name != "Current Name" {
		t.Errorf("expected current name preferred, got %q", r.Name)
	}
	if r.Phone != "1112223334" {
		t.Errorf("expected current phone preferred, got %q", r.Phone)
	}
}

func TestResolveRecordIgnoresNonStringValues(t *testing.T) {
	r := resolveRecord(map[string]any{
		"name":  42,
		"phone": nil,
		"email": []string{"x"},
	})
	if r.Name != "" || r.Phone != "" || r.Email != "" {
		t.Fatalf("expected typed mismatches to read as empty, got %+v", r)
	}
}

func TestBuildStoredShape(t *testing.T) {
	urls := map[capture.Slot]string{
		capture.SlotLicenseFront: "https://example.com/lf.png",
		capture.SlotAadhaarBack:  "https://example.com/ab.png",
	}
	sp := buildStored(FormFields{
		Name:        "Asha Rao",
		Phone:       "9876543210",
		Email:       "asha@example.com",
		DateOfBirth: "1994-05-21",
	}, urls)

	// phone stays null; the number travels under mobileNumber verbatim.
	if sp.Phone != nil {
		t.Errorf("expected phone nil, got %v", *sp.Phone)
	}
	if sp.MobileNumber == nil || *sp.MobileNumber != "9876543210" {
		t.Errorf("unexpected mobileNumber: %v", sp.MobileNumber)
	}
	if sp.DateOfBirth != "1994-05-21" {
		t.Errorf("unexpected DateOfBirth: %q", sp.DateOfBirth)
	}
	if sp.LicenseFront != "https://example.com/lf.png" || sp.AadhaarBack != "https://example.com/ab.png" {
		t.Errorf("unexpected document URLs: %+v", sp)
	}
	if sp.LicenseBack != "" || sp.AadhaarFront != "" {
		t.Errorf("expected empty slots to store empty URLs: %+v", sp)
	}
	// Address fields are written empty on every save.
	if sp.City != "" || sp.Street1 != "" || sp.Street2 != "" || sp.Zipcode != "" {
		t.Errorf("expected empty address fields: %+v", sp)
	}
	if !sp.Uploaded["licenseFront"] || sp.Uploaded["licenseBack"] || !sp.Uploaded["aadhaarBack"] {
		t.Errorf("unexpected uploaded map: %+v", sp.Uploaded)
	}
}

func TestRecordFromStoredRoundTrip(t *testing.T) {
	urls := map[capture.Slot]string{capture.SlotLicenseFront: "https://example.com/lf.png"}
	sp := buildStored(FormFields{
		Name:        "Asha Rao",
		Phone:       "9876543210",
		Email:       "asha@example.com",
		DateOfBirth: "1994-05-21",
	}, urls)

	r := recordFromStored(sp)
	if r.Name != "Asha Rao" || r.Phone != "9876543210" {
		t.Fatalf("unexpected record: %+v", r)
	}
	if r.Documents[capture.SlotLicenseFront] != "https://example.com/lf.png" {
		t.Errorf("unexpected document URL: %q", r.Documents[capture.SlotLicenseFront])
	}
	if !r.Uploaded[capture.SlotLicenseFront] || r.Uploaded[capture.SlotLicenseBack] {
		t.Errorf("unexpected uploaded map: %+v", r.Uploaded)
	}
	if !r.Complete() {
		t.Error("expected complete record")
	}
}

func TestRequiredMissingOrder(t *testing.T) {
	missing := requiredMissing(FormFields{})
	want := []string{"name", "phone", "email", "dob"}
	if len(missing) != len(want) {
		t.Fatalf("expected %v, got %v", want, missing)
	}
	for i := range want {
		if missing[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, missing)
		}
	}

	missing = requiredMissing(FormFields{Name: "a", Email: "b"})
	if len(missing) != 2 || missing[0] != "phone" || missing[1] != "dob" {
		t.Fatalf("unexpected missing: %v", missing)
	}

	if got := requiredMissing(FormFields{Name: "a", Phone: "b", Email: "c", DateOfBirth: "d"}); len(got) != 0 {
		t.Fatalf("expected none missing, got %v", got)
	}
}

func TestRecordComplete(t *testing.T) {
	r := &Record{Name: "a", Phone: "b", Email: "c", DateOfBirth: "d"}
	if !r.Complete() {
		t.Error("expected complete")
	}
	r.Phone = ""
	if r.Complete() {
		t.Error("expected incomplete without phone")
	}
}
