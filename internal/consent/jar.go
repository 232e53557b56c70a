package consent

import (
	"net/http"
)

// Recorder is a Jar seeded from a request's cookies that records writes so
// they can be replayed as Set-Cookie headers on the response. Reads observe
// pending writes, so a write-then-read within one request round-trips.
// It also serves as the in-memory jar for tests.
type Recorder struct {
	initial map[string]string
	written []*http.Cookie
}

// NewRecorder creates a Recorder over the given initial cookie values.
func NewRecorder(initial map[string]string) *Recorder {
	if initial == nil {
		initial = map[string]string{}
	}
	return &Recorder{initial: initial}
}

// RecorderFromRequest seeds a Recorder from the cookies on an HTTP request.
func RecorderFromRequest(r *http.Request) *Recorder {
	initial := map[string]string{}
	for _, c := range r.Cookies() {
		initial[c.Name] = c.Value
	}
	return NewRecorder(initial)
}

// Get returns the most recent value for the named cookie. A pending write
// shadows the request value; a pending write that already expired reads as
// absent.
func (rec *Recorder) Get(name string) (string, bool) {
	for i := len(rec.written) - 1; i >= 0; i-- {
		if c := rec.written[i]; c.Name == name {
			if c.MaxAge < 0 {
				return "", false
			}
			return c.Value, true
		}
	}
	v, ok := rec.initial[name]
	return v, ok
}

// Set stages a cookie write.
func (rec *Recorder) Set(c *http.Cookie) {
	rec.written = append(rec.written, c)
}

// Cookies returns the staged writes in order, for emission as Set-Cookie
// headers.
func (rec *Recorder) Cookies() []*http.Cookie {
	return rec.written
}

// Compile-time interface check
var _ Jar = (*Recorder)(nil)
