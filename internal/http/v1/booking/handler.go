package booking

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	bookingctx "github.com/zymoapp/rental-api/internal/booking"
	consentstore "github.com/zymoapp/rental-api/internal/consent"
	applog "github.com/zymoapp/rental-api/internal/platform/logging"
)

// Register registers the booking-context endpoints. They are public and
// consent-gated: without an accepted consent cookie a write is a silent
// no-op and a read returns an empty snapshot, so the booking flow never
// breaks on a missing decision.
func Register(api huma.API, secure bool) {
	huma.Register(api, huma.Operation{
		OperationID: "get-booking-context",
		Method:      http.MethodGet,
		Path:        "/booking-context",
		Summary:     "Get stored booking selection",
		Description: "Returns the booking selection persisted in cookies, or an empty snapshot when consent was not given.",
		Tags:        []string{"Booking"},
	}, func(ctx context.Context, input *ContextGetInput) (*ContextGetOutput, error) {
		cache := newCache(&input.CookieInput, secure)

		snap, err := cache.Read()
		if err != nil {
			if errors.Is(err, bookingctx.ErrMalformedPlace) {
				applog.LogWarn(ctx, "stored place details are malformed, dropping them")
				return nil, huma.Error422UnprocessableEntity("stored place details are malformed")
			}
			return nil, huma.Error500InternalServerError("internal error")
		}
		return &ContextGetOutput{Body: Context{
			Consented: snap.Consented,
			Location:  snap.Location,
			StartDate: snap.StartDate,
			EndDate:   snap.EndDate,
			Place:     fromStoredPlace(snap.Place),
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "put-booking-context",
		Method:      http.MethodPut,
		Path:        "/booking-context",
		Summary:     "Persist booking selection",
		Description: "Stores location, dates and pickup place in a cookie group sharing one 7-day expiry. Requires an accepted consent decision; without one nothing is stored and the call still succeeds.",
		Tags:        []string{"Booking"},
	}, func(_ context.Context, input *ContextPutInput) (*ContextPutOutput, error) {
		rec := recorder(&input.CookieInput)
		store := consentstore.NewStore(rec, consentstore.WithSecure(secure))
		cache := bookingctx.NewCache(store)

		written, err := cache.Write(
			input.Body.Location,
			input.Body.StartDate,
			input.Body.EndDate,
			toStoredPlace(input.Body.Place),
		)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}

		out := &ContextPutOutput{SetCookie: setCookies(rec)}
		out.Body.Stored = written
		return out, nil
	})
}

func newCache(in *CookieInput, secure bool) *bookingctx.Cache {
	store := consentstore.NewStore(recorder(in), consentstore.WithSecure(secure))
	return bookingctx.NewCache(store)
}

// recorder rebuilds a cookie jar from the request's cookie group. Absent
// cookies stay absent rather than becoming empty values.
func recorder(in *CookieInput) *consentstore.Recorder {
	initial := map[string]string{}
	seed := func(name, value string) {
		if value != "" {
			initial[name] = value
		}
	}
	seed(consentstore.CookieConsent, in.Consent)
	seed(consentstore.CookieLocation, in.Location)
	seed(consentstore.CookieStartDate, in.StartDate)
	seed(consentstore.CookieEndDate, in.EndDate)
	seed(consentstore.CookiePlaceDetails, in.PlaceDetails)
	return consentstore.NewRecorder(initial)
}

func setCookies(rec *consentstore.Recorder) []http.Cookie {
	staged := rec.Cookies()
	out := make([]http.Cookie, 0, len(staged))
	for _, c := range staged {
		out = append(out, *c)
	}
	return out
}
