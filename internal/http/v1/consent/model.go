package consent

// Status represents the user's cookie-consent state.
type Status struct {
	Decision  string `json:"decision"  enum:"unset,accepted,rejected" doc:"Consent decision"          example:"accepted"`
	Consented bool   `json:"consented"                                doc:"Whether persistence is allowed" example:"true"`
}
