package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/zymoapp/rental-api/internal/capture"
	bookinghandler "github.com/zymoapp/rental-api/internal/http/v1/booking"
	consenthandler "github.com/zymoapp/rental-api/internal/http/v1/consent"
	"github.com/zymoapp/rental-api/internal/http/v1/documents"
	"github.com/zymoapp/rental-api/internal/platform/auth"
	profilesvc "github.com/zymoapp/rental-api/internal/service/profile"
)

// Options carries the route dependencies.
type Options struct {
	Verifier       auth.Verifier
	ProfileService profilesvc.Service
	Sessions       *capture.Manager
	// SecureCookies marks consent and booking cookies Secure. Enable when
	// serving over TLS.
	SecureCookies bool
}

// Register wires all HTTP routes into the provided API router.
func Register(api huma.API, opts Options) {
	// Auth middleware guards only operations that declare a security
	// requirement; the consent and booking endpoints stay public.
	api.UseMiddleware(auth.NewAuthMiddleware(api, opts.Verifier))

	consenthandler.Register(api, opts.SecureCookies)
	bookinghandler.Register(api, opts.SecureCookies)
	documents.Register(api, opts.ProfileService, opts.Sessions)
}
