package booking

import "net/http"

// ContextGetOutput for GET /booking-context
type ContextGetOutput struct {
	Body Context
}

// ContextPutOutput for PUT /booking-context
type ContextPutOutput struct {
	SetCookie []http.Cookie `header:"Set-Cookie"`
	Body      struct {
		Stored bool `json:"stored" doc:"False when consent is missing and nothing was persisted"`
	}
}
