package consent

import "net/http"

// ConsentGetOutput for GET /consent
type ConsentGetOutput struct {
	Body Status
}

// ConsentPutOutput for PUT /consent
type ConsentPutOutput struct {
	SetCookie []http.Cookie `header:"Set-Cookie"`
	Body      Status
}
