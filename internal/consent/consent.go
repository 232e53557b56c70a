// Package consent gates all non-essential persistence behind an explicit
// user decision, stored as a long-lived cookie. Nothing outside this package
// writes the consent cookie, and the booking cache refuses to persist
// anything until the decision here is Accepted.
package consent

import (
	"net/http"
	"time"
)

// Cookie names form a fixed contract with the browser clients; renaming any
// of them orphans data already stored on user devices.
const (
	CookieConsent      = "cookiesConsent"
	CookieLocation     = "location"
	CookieStartDate    = "startDate"
	CookieEndDate      = "endDate"
	CookiePlaceDetails = "placeDetails"
)

// consentTTL is how long a consent decision remains valid once made.
const consentTTL = 365 * 24 * time.Hour

// Decision is the user's cookie-consent choice.
type Decision int

const (
	// DecisionUnset means the user has not acted on the consent banner yet.
	DecisionUnset Decision = iota
	// DecisionAccepted allows non-essential persistence.
	DecisionAccepted
	// DecisionRejected blocks future non-essential writes. Existing cookies
	// are not retracted; they age out on their own expiry.
	DecisionRejected
)

// String returns the API representation of the decision.
func (d Decision) String() string {
	switch d {
	case DecisionAccepted:
		return "accepted"
	case DecisionRejected:
		return "rejected"
	default:
		return "unset"
	}
}

// ParseDecision maps a stored cookie value to a Decision. Anything that is
// not an exact "true"/"false" counts as Unset, including a missing cookie.
func ParseDecision(value string) Decision {
	switch value {
	case "true":
		return DecisionAccepted
	case "false":
		return DecisionRejected
	default:
		return DecisionUnset
	}
}

// Jar abstracts the cookie transport. Implementations must tolerate
// concurrent use only if their callers do; the store itself performs single
// user-action sized operations.
type Jar interface {
	// Get returns the raw value of the named cookie and whether it exists.
	Get(name string) (string, bool)
	// Set stages a cookie write.
	Set(c *http.Cookie)
}

// Store owns the read/write contract for the consent decision. A nil Jar is
// valid: every operation degrades to Unset / no-op, so callers never need to
// guard against an unavailable cookie layer.
type Store struct {
	jar    Jar
	secure bool
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithSecure marks written cookies Secure. Enable when serving over TLS.
func WithSecure(secure bool) Option {
	return func(s *Store) { s.secure = secure }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a consent store over the given jar.
func NewStore(jar Jar, opts ...Option) *Store {
	s := &Store{jar: jar, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Jar exposes the underlying cookie jar so sibling stores (the booking
// cache) can share the same transport.
func (s *Store) Jar() Jar {
	return s.jar
}

// Secure reports whether written cookies are marked Secure.
func (s *Store) Secure() bool {
	return s.secure
}

// Now returns the store's time source.
func (s *Store) Now() time.Time {
	return s.now()
}

// Decision reads the stored consent decision. An absent cookie or an
// unavailable jar both map to Unset.
func (s *Store) Decision() Decision {
	if s.jar == nil {
		return DecisionUnset
	}
	value, ok := s.jar.Get(CookieConsent)
	if !ok {
		return DecisionUnset
	}
	return ParseDecision(value)
}

// SetDecision records the user's choice with a 365-day expiry, path-scoped
// to the whole site, SameSite=Lax, Secure over encrypted transport. Setting
// DecisionUnset is a no-op: the banner only ever records a binary choice.
func (s *Store) SetDecision(d Decision) {
	if s.jar == nil || d == DecisionUnset {
		return
	}
	value := "false"
	if d == DecisionAccepted {
		value = "true"
	}
	s.jar.Set(&http.Cookie{
		Name:     CookieConsent,
		Value:    value,
		Path:     "/",
		Expires:  s.now().Add(consentTTL),
		SameSite: http.SameSiteLaxMode,
		Secure:   s.secure,
	})
}

// Consented reports whether the user explicitly accepted.
func (s *Store) Consented() bool {
	return s.Decision() == DecisionAccepted
}
