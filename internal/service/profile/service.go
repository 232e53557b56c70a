// Package profile owns the onboarding profile record: loading it from the
// document store with legacy field reconciliation, and saving it as one
// atomic record write after all fresh document images are uploaded.
package profile

import (
	"context"
	"errors"

	"github.com/zymoapp/rental-api/internal/capture"
)

// Service errors
var (
	// ErrNotFound means no record exists for the user yet.
	ErrNotFound = errors.New("profile not found")
	// ErrUnauthenticated means save was attempted with no active identity.
	ErrUnauthenticated = errors.New("profile: no authenticated user")
	// ErrValidation means a required field was empty at save time. No
	// network call was made.
	ErrValidation = errors.New("profile: required field missing")
	// ErrUploadFailed means at least one document upload failed. The
	// document record was not written; the whole save should be retried.
	ErrUploadFailed = errors.New("profile: document upload failed")
)

// Record is the normalized profile as this codebase understands it,
// whichever era of field names the stored document used.
type Record struct {
	Name        string
	Phone       string
	Email       string
	DateOfBirth string

	// Documents maps each slot to its blob URL, empty when never uploaded.
	Documents map[capture.Slot]string
	// Uploaded tracks per-slot persistence. Reconstructed from URL presence
	// when an older record lacks the map.
	Uploaded map[capture.Slot]bool

	// Address fields are written empty on every save, reserved for a future
	// address form.
	City    string
	Street1 string
	Street2 string
	Zipcode string
}

// Complete reports whether the contact fields are all filled in. Document
// completeness is tracked separately via Uploaded and deliberately does not
// gate saving.
func (r *Record) Complete() bool {
	return r.Name != "" && r.Phone != "" && r.Email != "" && r.DateOfBirth != ""
}

// FormFields are the user-entered contact fields of a save.
type FormFields struct {
	Name        string
	Phone       string
	Email       string
	DateOfBirth string
}

// SlotInput is what a save cycle holds for one document slot: either a
// freshly captured artifact to upload, or the remote URL from a previous
// save to pass through untouched. Both may be empty for a slot the user
// never filled.
type SlotInput struct {
	Artifact  *capture.Artifact
	RemoteURL string
}

// Service defines the profile operations.
type Service interface {
	// LoadExisting reads the user's record, resolving legacy field names.
	// Returns ErrNotFound when no record exists.
	LoadExisting(ctx context.Context, userID string) (*Record, error)

	// Save validates the form, uploads fresh artifacts to deterministic
	// per-slot paths, then overwrites the whole document record. Any upload
	// failure aborts before the record write.
	Save(ctx context.Context, userID string, form FormFields, slots map[capture.Slot]SlotInput) (*Record, error)
}

// requiredMissing lists the empty required fields, in display order.
func requiredMissing(form FormFields) []string {
	var missing []string
	if form.Name == "" {
		missing = append(missing, "name")
	}
	if form.Phone == "" {
		missing = append(missing, "phone")
	}
	if form.Email == "" {
		missing = append(missing, "email")
	}
	if form.DateOfBirth == "" {
		missing = append(missing, "dob")
	}
	return missing
}
