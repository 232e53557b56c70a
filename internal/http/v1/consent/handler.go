package consent

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	consentstore "github.com/zymoapp/rental-api/internal/consent"
)

// Register registers the cookie-consent endpoints. They are public: the
// consent banner runs before any sign-in.
func Register(api huma.API, secure bool) {
	huma.Register(api, huma.Operation{
		OperationID: "get-consent",
		Method:      http.MethodGet,
		Path:        "/consent",
		Summary:     "Get cookie-consent decision",
		Description: "Reads the stored consent decision. Unset until the user acts on the banner.",
		Tags:        []string{"Consent"},
	}, func(_ context.Context, input *ConsentGetInput) (*ConsentGetOutput, error) {
		decision := consentstore.ParseDecision(input.Consent)
		return &ConsentGetOutput{Body: toStatus(decision)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "put-consent",
		Method:      http.MethodPut,
		Path:        "/consent",
		Summary:     "Record cookie-consent decision",
		Description: "Stores the user's choice for a year. Declining does not retract cookies already stored; they age out on their own expiry.",
		Tags:        []string{"Consent"},
	}, func(_ context.Context, input *ConsentPutInput) (*ConsentPutOutput, error) {
		rec := consentstore.NewRecorder(map[string]string{
			consentstore.CookieConsent: input.Consent,
		})
		store := consentstore.NewStore(rec, consentstore.WithSecure(secure))

		decision := consentstore.DecisionRejected
		if input.Body.Accepted {
			decision = consentstore.DecisionAccepted
		}
		store.SetDecision(decision)

		return &ConsentPutOutput{
			SetCookie: setCookies(rec),
			Body:      toStatus(decision),
		}, nil
	})
}

func toStatus(d consentstore.Decision) Status {
	return Status{
		Decision:  d.String(),
		Consented: d == consentstore.DecisionAccepted,
	}
}

func setCookies(rec *consentstore.Recorder) []http.Cookie {
	staged := rec.Cookies()
	out := make([]http.Cookie, 0, len(staged))
	for _, c := range staged {
		out = append(out, *c)
	}
	return out
}
