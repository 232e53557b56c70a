package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds process configuration resolved from the environment.
type Config struct {
	// Port the HTTP server listens on. Defaults to 8080.
	Port string

	// ProjectID is the Firebase/GCP project.
	ProjectID string

	// StorageBucket is the bucket holding user document images. When empty,
	// the Firebase default bucket ({projectID}.appspot.com) is used.
	StorageBucket string

	// GoogleApplicationCredentials is an optional path to a service account
	// JSON file. When empty, ambient credentials are used.
	GoogleApplicationCredentials string

	// AllowedOrigins lists browser origins permitted to call the API with
	// credentials. Comma-separated in the environment.
	AllowedOrigins []string

	// SecureCookies marks consent and booking cookies Secure. Enable when
	// serving over TLS; off by default so local development works.
	SecureCookies bool
}

// ErrMissingProjectID indicates no project could be resolved from the environment.
var ErrMissingProjectID = errors.New("config: project ID not set")

// Load reads an optional .env file and resolves configuration from the
// environment. A missing .env file is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:                         getenv("PORT", "8080"),
		ProjectID:                    firstNonEmpty(os.Getenv("FIREBASE_PROJECT_ID"), os.Getenv("GOOGLE_CLOUD_PROJECT")),
		StorageBucket:                os.Getenv("FIREBASE_STORAGE_BUCKET"),
		GoogleApplicationCredentials: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	switch strings.ToLower(os.Getenv("SECURE_COOKIES")) {
	case "1", "true", "yes":
		cfg.SecureCookies = true
	}

	if cfg.ProjectID == "" {
		return cfg, ErrMissingProjectID
	}
	if cfg.StorageBucket == "" {
		cfg.StorageBucket = cfg.ProjectID + ".appspot.com"
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
