package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/zymoapp/rental-api/internal/capture"
	"github.com/zymoapp/rental-api/internal/http/health"
	"github.com/zymoapp/rental-api/internal/http/v1/routes"
	"github.com/zymoapp/rental-api/internal/platform/auth"
	"github.com/zymoapp/rental-api/internal/platform/config"
	"github.com/zymoapp/rental-api/internal/platform/firebase"
	applog "github.com/zymoapp/rental-api/internal/platform/logging"
	appmiddleware "github.com/zymoapp/rental-api/internal/platform/middleware"
	"github.com/zymoapp/rental-api/internal/platform/respond"
	profilesvc "github.com/zymoapp/rental-api/internal/service/profile"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

func main() {
	ctx := context.Background()
	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(ctx, "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(ctx, "logger init error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		applog.LogFatal(ctx, "configuration error", err)
	}

	clients, err := firebase.InitializeClients(ctx, firebase.Config{
		ProjectID:                    cfg.ProjectID,
		StorageBucket:                cfg.StorageBucket,
		GoogleApplicationCredentials: cfg.GoogleApplicationCredentials,
	})
	if err != nil {
		applog.LogFatal(ctx, "firebase initialization error", err)
	}
	defer func() {
		if err := clients.Close(); err != nil {
			applog.LogError(ctx, "firebase client close error", err)
		}
	}()

	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	// Base middleware stack
	router.Use(
		appmiddleware.Security("/api-docs"),
		appmiddleware.Vary(),
		appmiddleware.CORS(cfg.AllowedOrigins),
		appmiddleware.RequestID(),
		// RealIP extracts client IP from X-Real-IP or X-Forwarded-For headers.
		// SECURITY: Only use behind a trusted reverse proxy (e.g., Cloud Run, nginx).
		// Without a trusted proxy, clients can spoof their IP address.
		chimiddleware.RealIP,
		// Document images arrive base64-encoded in JSON bodies, so the limit
		// is sized for an encoded camera frame, not a typical API payload.
		chimiddleware.RequestSize(12<<20), // 12 MB limit
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	router.Get("/health", health.Handler)

	apiCfg := huma.DefaultConfig("Zymo Rental API", Version)
	apiCfg.DocsPath = "/api-docs"
	api := humachi.New(router, apiCfg)

	// Add CBOR content type to OpenAPI requests and responses
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation,
		func(_ *huma.OpenAPI, op *huma.Operation) {
			if op.RequestBody != nil && op.RequestBody.Content != nil {
				if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
					op.RequestBody.Content["application/cbor"] = jsonContent
				}
			}
			for _, resp := range op.Responses {
				if resp.Content == nil {
					continue
				}
				if jsonContent, ok := resp.Content["application/json"]; ok {
					resp.Content["application/cbor"] = jsonContent
				}
			}
		},
	)

	routes.Register(api, routes.Options{
		Verifier:       auth.NewFirebaseVerifier(clients.Auth),
		ProfileService: profilesvc.NewStore(clients.Firestore, profilesvc.NewBucketStore(clients.Bucket)),
		Sessions:       capture.NewManager(),
		SecureCookies:  cfg.SecureCookies,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      3 * time.Minute,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}

	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(ctx, "server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			listenErr <- err
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		applog.LogError(ctx, "listen failed", err, zap.String("addr", srv.Addr))
		os.Exit(1)
	case <-stop:
		applog.LogInfo(ctx, "shutdown signal received")
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		applog.LogError(shutdownCtx, "server shutdown error", err)
	}
	applog.LogInfo(ctx, "server exited")
}
