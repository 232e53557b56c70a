// Package booking persists the user's booking selection (location, date
// range, pickup place) in consent-gated cookies with a rolling 7-day expiry.
package booking

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/zymoapp/rental-api/internal/consent"
)

// contextTTL is the shelf life of a stored booking selection. Every write
// resets it for the whole cookie group at once, so the fields can never
// expire out from under each other.
const contextTTL = 7 * 24 * time.Hour

// ErrMalformedPlace indicates the stored placeDetails cookie is not valid
// JSON. The other fields of the snapshot are still returned.
var ErrMalformedPlace = errors.New("booking: malformed stored place details")

// Snapshot is the tagged result of reading the booking context. Consented
// distinguishes "no consent" from "consent given but nothing stored yet":
// when Consented is false the remaining fields are always zero, when it is
// true a zero field simply was never written (or expired).
type Snapshot struct {
	Consented bool
	Location  string
	StartDate string
	EndDate   string
	Place     *Place
}

// Cache reads and writes the booking selection through the same cookie jar
// the consent store rides on.
type Cache struct {
	store *consent.Store
}

// NewCache creates a cache gated by the given consent store.
func NewCache(store *consent.Store) *Cache {
	return &Cache{store: store}
}

// Write persists the booking selection. Without an Accepted consent decision
// nothing is stored and the call reports written=false; this degradation is
// silent by design so a booking flow never breaks on a missing consent.
//
// All cookies in the group share a single expiry computed once. A nil place
// expires any previously stored placeDetails so the group cannot go
// partially stale.
func (c *Cache) Write(location, startDate, endDate string, place *Place) (written bool, err error) {
	jar := c.store.Jar()
	if jar == nil || !c.store.Consented() {
		return false, nil
	}

	expires := c.store.Now().Add(contextTTL)

	jar.Set(c.cookie(consent.CookieLocation, location, expires))
	jar.Set(c.cookie(consent.CookieStartDate, startDate, expires))
	jar.Set(c.cookie(consent.CookieEndDate, endDate, expires))

	if place == nil {
		jar.Set(c.expired(consent.CookiePlaceDetails))
		return true, nil
	}

	data, err := json.Marshal(place)
	if err != nil {
		return false, fmt.Errorf("booking: encode place details: %w", err)
	}
	jar.Set(c.cookie(consent.CookiePlaceDetails, string(data), expires))
	return true, nil
}

// Read returns the stored booking selection. Without consent every field is
// zero and Consented is false. A missing cookie leaves its field zero. A
// stored placeDetails value that fails to parse returns ErrMalformedPlace
// alongside the otherwise-populated snapshot.
func (c *Cache) Read() (Snapshot, error) {
	jar := c.store.Jar()
	if jar == nil || !c.store.Consented() {
		return Snapshot{}, nil
	}

	snap := Snapshot{Consented: true}
	snap.Location = getDecoded(jar, consent.CookieLocation)
	snap.StartDate = getDecoded(jar, consent.CookieStartDate)
	snap.EndDate = getDecoded(jar, consent.CookieEndDate)

	raw, ok := jar.Get(consent.CookiePlaceDetails)
	if !ok || raw == "" {
		return snap, nil
	}
	raw = decodeValue(raw)
	var place Place
	if err := json.Unmarshal([]byte(raw), &place); err != nil {
		return snap, fmt.Errorf("%w: %w", ErrMalformedPlace, err)
	}
	snap.Place = &place
	return snap, nil
}

// cookie percent-encodes the value the way browser cookie libraries do, so
// JSON and free-text values survive the cookie grammar.
func (c *Cache) cookie(name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    encodeValue(value),
		Path:     "/",
		Expires:  expires,
		SameSite: http.SameSiteLaxMode,
		Secure:   c.store.Secure(),
	}
}

func encodeValue(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}

// decodeValue reverses percent-encoding without the query-string plus-to-space
// rewrite: browser cookie libraries leave a literal + alone, so legacy values
// like "Delhi+NCR" must read back unchanged.
func decodeValue(v string) string {
	decoded, err := url.PathUnescape(v)
	if err != nil {
		return v
	}
	return decoded
}

func getDecoded(jar consent.Jar, name string) string {
	v, _ := jar.Get(name)
	return decodeValue(v)
}

func (c *Cache) expired(name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
		Secure:   c.store.Secure(),
	}
}
