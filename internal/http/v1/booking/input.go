package booking

// CookieInput carries the booking cookie group as it arrived on the request.
// It must stay exported: huma only resolves exported struct fields, and an
// unexported embedding would silently drop every cookie from the input.
type CookieInput struct {
	Consent      string `cookie:"cookiesConsent" required:"false" doc:"Stored consent cookie"`
	Location     string `cookie:"location"       required:"false" doc:"Stored search location"`
	StartDate    string `cookie:"startDate"      required:"false" doc:"Stored rental start"`
	EndDate      string `cookie:"endDate"        required:"false" doc:"Stored rental end"`
	PlaceDetails string `cookie:"placeDetails"   required:"false" doc:"Stored pickup place JSON"`
}

// ContextGetInput for GET /booking-context
type ContextGetInput struct {
	CookieInput
}

// ContextPutInput for PUT /booking-context
type ContextPutInput struct {
	CookieInput
	Body struct {
		Location  string `json:"location"        minLength:"1" required:"true" doc:"Search location"  example:"Mumbai"`
		StartDate string `json:"startDate"       minLength:"1" required:"true" doc:"Rental start"     example:"2026-09-01T10:00"`
		EndDate   string `json:"endDate"         minLength:"1" required:"true" doc:"Rental end"       example:"2026-09-03T10:00"`
		Place     *Place `json:"place,omitempty"                               doc:"Pickup place; omit to clear the stored one"`
	}
}
