package config

import (
	"errors"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT",
		"FIREBASE_PROJECT_ID",
		"GOOGLE_CLOUD_PROJECT",
		"FIREBASE_STORAGE_BUCKET",
		"GOOGLE_APPLICATION_CREDENTIALS",
		"ALLOWED_ORIGINS",
		"SECURE_COOKIES",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadMissingProjectID(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	if !errors.Is(err, ErrMissingProjectID) {
		t.Fatalf("expected ErrMissingProjectID, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("FIREBASE_PROJECT_ID", "zymo-rentals")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.ProjectID != "zymo-rentals" {
		t.Fatalf("expected project ID zymo-rentals, got %s", cfg.ProjectID)
	}
	if cfg.StorageBucket != "zymo-rentals.appspot.com" {
		t.Fatalf("expected default bucket zymo-rentals.appspot.com, got %s", cfg.StorageBucket)
	}
	if cfg.SecureCookies {
		t.Fatal("expected SecureCookies off by default")
	}
	if len(cfg.AllowedOrigins) != 0 {
		t.Fatalf("expected no allowed origins, got %v", cfg.AllowedOrigins)
	}
}

func TestLoadProjectIDFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_CLOUD_PROJECT", "gcloud-proj")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ProjectID != "gcloud-proj" {
		t.Fatalf("expected GOOGLE_CLOUD_PROJECT fallback, got %s", cfg.ProjectID)
	}
}

func TestLoadProjectIDPriority(t *testing.T) {
	clearEnv(t)
	t.Setenv("FIREBASE_PROJECT_ID", "firebase-proj")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "gcloud-proj")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ProjectID != "firebase-proj" {
		t.Fatalf("expected FIREBASE_PROJECT_ID to win, got %s", cfg.ProjectID)
	}
}

func TestLoadExplicitValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("FIREBASE_PROJECT_ID", "zymo-rentals")
	t.Setenv("PORT", "9090")
	t.Setenv("FIREBASE_STORAGE_BUCKET", "custom-bucket")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/secrets/sa.json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Fatalf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.StorageBucket != "custom-bucket" {
		t.Fatalf("expected custom-bucket, got %s", cfg.StorageBucket)
	}
	if cfg.GoogleApplicationCredentials != "/secrets/sa.json" {
		t.Fatalf("expected credentials path, got %s", cfg.GoogleApplicationCredentials)
	}
}

func TestLoadAllowedOrigins(t *testing.T) {
	clearEnv(t)
	t.Setenv("FIREBASE_PROJECT_ID", "zymo-rentals")
	t.Setenv("ALLOWED_ORIGINS", "https://rentals.zymo.app, http://localhost:3000 ,,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"https://rentals.zymo.app", "http://localhost:3000"}
	if len(cfg.AllowedOrigins) != len(want) {
		t.Fatalf("expected %d origins, got %v", len(want), cfg.AllowedOrigins)
	}
	for i, origin := range want {
		if cfg.AllowedOrigins[i] != origin {
			t.Fatalf("expected origin %s at index %d, got %s", origin, i, cfg.AllowedOrigins[i])
		}
	}
}

func TestLoadSecureCookies(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"0", false},
		{"false", false},
		{"off", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run("value "+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("FIREBASE_PROJECT_ID", "zymo-rentals")
			t.Setenv("SECURE_COOKIES", tt.value)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.SecureCookies != tt.want {
				t.Fatalf("SECURE_COOKIES=%q: expected %v, got %v", tt.value, tt.want, cfg.SecureCookies)
			}
		})
	}
}
