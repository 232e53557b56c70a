package consent

// ConsentGetInput for GET /consent
type ConsentGetInput struct {
	Consent string `cookie:"cookiesConsent" required:"false" doc:"Stored consent cookie"`
}

// ConsentPutInput for PUT /consent
type ConsentPutInput struct {
	Consent string `cookie:"cookiesConsent" required:"false" doc:"Stored consent cookie"`
	Body    struct {
		Accepted bool `json:"accepted" required:"true" doc:"True to allow cookie persistence, false to decline" example:"true"`
	}
}
