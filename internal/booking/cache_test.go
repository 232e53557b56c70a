package booking

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/zymoapp/rental-api/internal/consent"
)

func consented(extra map[string]string) *consent.Recorder {
	initial := map[string]string{consent.CookieConsent: "true"}
	for k, v := range extra {
		initial[k] = v
	}
	return consent.NewRecorder(initial)
}

func testPlace() *Place {
	return &Place{
		Name: "Chhatrapati Shivaji Terminus",
		Lat:  18.9398,
		Lng:  72.8355,
		AddressComponents: []AddressComponent{
			{LongName: "Mumbai", ShortName: "Mumbai", Types: []string{"locality", "political"}},
			{LongName: "Maharashtra", ShortName: "MH", Types: []string{"administrative_area_level_1"}},
		},
	}
}

func TestWriteWithoutConsentIsSilentNoOp(t *testing.T) {
	rec := consent.NewRecorder(nil)
	cache := NewCache(consent.NewStore(rec))

	written, err := cache.Write("Mumbai", "2026-09-01T10:00", "2026-09-03T10:00", testPlace())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written {
		t.Fatal("expected written=false without consent")
	}
	if len(rec.Cookies()) != 0 {
		t.Fatalf("expected no cookie writes, got %d", len(rec.Cookies()))
	}
}

func TestWriteWithRejectedConsentIsSilentNoOp(t *testing.T) {
	rec := consent.NewRecorder(map[string]string{consent.CookieConsent: "false"})
	cache := NewCache(consent.NewStore(rec))

	written, err := cache.Write("Mumbai", "2026-09-01T10:00", "2026-09-03T10:00", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written {
		t.Fatal("expected written=false with rejected consent")
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	rec := consented(nil)
	cache := NewCache(consent.NewStore(rec))

	written, err := cache.Write("Mumbai", "2026-09-01T10:00", "2026-09-03T10:00", testPlace())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !written {
		t.Fatal("expected written=true with consent")
	}

	snap, err := cache.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !snap.Consented {
		t.Fatal("expected Consented=true")
	}
	if snap.Location != "Mumbai" {
		t.Errorf("expected location Mumbai, got %q", snap.Location)
	}
	if snap.StartDate != "2026-09-01T10:00" || snap.EndDate != "2026-09-03T10:00" {
		t.Errorf("unexpected dates: %q / %q", snap.StartDate, snap.EndDate)
	}
	if snap.Place == nil {
		t.Fatal("expected place to round-trip")
	}
	if snap.Place.Name != "Chhatrapati Shivaji Terminus" || snap.Place.Lat != 18.9398 {
		t.Errorf("unexpected place: %+v", snap.Place)
	}
	if len(snap.Place.AddressComponents) != 2 {
		t.Fatalf("expected 2 address components, got %d", len(snap.Place.AddressComponents))
	}
	if snap.Place.AddressComponents[1].ShortName != "MH" {
		t.Errorf("unexpected component: %+v", snap.Place.AddressComponents[1])
	}
}

func TestWriteSharesOneExpiryAcrossGroup(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	rec := consented(nil)
	store := consent.NewStore(rec, consent.WithClock(func() time.Time { return now }))
	cache := NewCache(store)

	if _, err := cache.Write("Mumbai", "a", "b", testPlace()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := now.Add(7 * 24 * time.Hour)
	cookies := rec.Cookies()
	if len(cookies) != 4 {
		t.Fatalf("expected 4 cookie writes, got %d", len(cookies))
	}
	for _, c := range cookies {
		if !c.Expires.Equal(want) {
			t.Errorf("cookie %s: expected expiry %v, got %v", c.Name, want, c.Expires)
		}
		if c.Path != "/" {
			t.Errorf("cookie %s: expected path /, got %s", c.Name, c.Path)
		}
		if c.SameSite != http.SameSiteLaxMode {
			t.Errorf("cookie %s: expected SameSite=Lax", c.Name)
		}
	}
}

func TestWriteNilPlaceExpiresStoredOne(t *testing.T) {
	rec := consented(map[string]string{
		consent.CookiePlaceDetails: `{"name":"Old Place","lat":1,"lng":2}`,
	})
	cache := NewCache(consent.NewStore(rec))

	if _, err := cache.Write("Pune", "a", "b", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap, err := cache.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Place != nil {
		t.Fatalf("expected stored place to be expired, got %+v", snap.Place)
	}
	if snap.Location != "Pune" {
		t.Errorf("expected location Pune, got %q", snap.Location)
	}
}

func TestReadWithoutConsentIsZero(t *testing.T) {
	rec := consent.NewRecorder(map[string]string{
		consent.CookieLocation:  "Mumbai",
		consent.CookieStartDate: "2026-09-01T10:00",
	})
	cache := NewCache(consent.NewStore(rec))

	snap, err := cache.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Consented {
		t.Fatal("expected Consented=false")
	}
	if snap.Location != "" || snap.StartDate != "" || snap.Place != nil {
		t.Fatalf("expected zero snapshot without consent, got %+v", snap)
	}
}

func TestReadMissingFieldsStayZero(t *testing.T) {
	rec := consented(map[string]string{consent.CookieLocation: "Mumbai"})
	cache := NewCache(consent.NewStore(rec))

	snap, err := cache.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !snap.Consented {
		t.Fatal("expected Consented=true")
	}
	if snap.Location != "Mumbai" {
		t.Errorf("expected location Mumbai, got %q", snap.Location)
	}
	if snap.StartDate != "" || snap.EndDate != "" || snap.Place != nil {
		t.Fatalf("expected unset fields to stay zero, got %+v", snap)
	}
}

func TestReadMalformedPlace(t *testing.T) {
	rec := consented(map[string]string{
		consent.CookieLocation:     "Mumbai",
		consent.CookiePlaceDetails: "%7Bnot-json",
	})
	cache := NewCache(consent.NewStore(rec))

	snap, err := cache.Read()
	if !errors.Is(err, ErrMalformedPlace) {
		t.Fatalf("expected ErrMalformedPlace, got %v", err)
	}
	// The rest of the snapshot is still usable.
	if !snap.Consented || snap.Location != "Mumbai" {
		t.Fatalf("expected populated snapshot alongside the error, got %+v", snap)
	}
	if snap.Place != nil {
		t.Fatal("expected nil place on parse failure")
	}
}

func TestUnknownPlaceFieldsAreDropped(t *testing.T) {
	// A richer payload from a places API: only the persisted subset should
	// survive a write/read cycle.
	rec := consented(map[string]string{
		consent.CookiePlaceDetails: `{"name":"CST","lat":18.9,"lng":72.8,"placeId":"abc123","rating":4.5}`,
	})
	cache := NewCache(consent.NewStore(rec))

	snap, err := cache.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Place == nil || snap.Place.Name != "CST" {
		t.Fatalf("unexpected place: %+v", snap.Place)
	}

	// Re-writing stores only the typed fields.
	if _, err := cache.Write("Mumbai", "a", "b", snap.Place); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var stored string
	for _, c := range rec.Cookies() {
		if c.Name == consent.CookiePlaceDetails {
			stored = c.Value
		}
	}
	if stored == "" {
		t.Fatal("expected placeDetails write")
	}
	if strings.Contains(stored, "placeId") || strings.Contains(stored, "rating") {
		t.Fatalf("expected unknown fields to be dropped, got %q", stored)
	}
}

func TestCookieValuesArePercentEncoded(t *testing.T) {
	rec := consented(nil)
	cache := NewCache(consent.NewStore(rec))

	if _, err := cache.Write("Navi Mumbai", "a", "b", testPlace()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range rec.Cookies() {
		if strings.ContainsAny(c.Value, ` ",;\`) {
			t.Errorf("cookie %s contains characters illegal in a cookie value: %q", c.Name, c.Value)
		}
	}

	snap, err := cache.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Location != "Navi Mumbai" {
		t.Fatalf("expected encoded location to round-trip, got %q", snap.Location)
	}
}

func TestReadKeepsLiteralPlus(t *testing.T) {
	// js-cookie leaves + unencoded, so a legacy browser cookie can carry one
	// literally. It must not decode to a space.
	rec := consented(map[string]string{consent.CookieLocation: "Delhi+NCR"})
	cache := NewCache(consent.NewStore(rec))

	snap, err := cache.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Location != "Delhi+NCR" {
		t.Fatalf("expected literal + preserved, got %q", snap.Location)
	}
}
