package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/zymoapp/rental-api/internal/capture"
	applog "github.com/zymoapp/rental-api/internal/platform/logging"
)

const usersCollection = "users"

// userImagesPrefix is the root of the per-user blob namespace. The full
// object path is userImages/{userID}/{canonicalFilename}.
const userImagesPrefix = "userImages"

// uploadTimeout bounds each individual document upload so one hung transfer
// cannot stall a save indefinitely.
const uploadTimeout = 2 * time.Minute

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrUploadFailed):
		return "upload_failed"
	case errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	default:
		return "internal_error"
	}
}

// Store implements Service over Firestore and a blob store.
type Store struct {
	client *firestore.Client
	blobs  BlobStore
}

// NewStore creates a profile store.
func NewStore(client *firestore.Client, blobs BlobStore) *Store {
	return &Store{client: client, blobs: blobs}
}

// LoadExisting reads the user's record and resolves legacy field names
// through the alias tables.
func (s *Store) LoadExisting(ctx context.Context, userID string) (*Record, error) {
	doc, err := s.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return resolveRecord(doc.Data()), nil
}

// objectPath is the deterministic blob path for a slot, fixed per user so a
// re-upload overwrites the previous object.
func objectPath(userID string, slot capture.Slot) string {
	return fmt.Sprintf("%s/%s/%s", userImagesPrefix, userID, slot.CanonicalFilename())
}

// Save validates the form, uploads every freshly captured slot concurrently,
// and only after all uploads settle writes the document record in a single
// full overwrite. A failed upload aborts the save before the record write;
// blobs already uploaded in the same attempt stay in place, harmless until a
// future successful save overwrites them at the same paths.
func (s *Store) Save(ctx context.Context, userID string, form FormFields, slots map[capture.Slot]SlotInput) (*Record, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if missing := requiredMissing(form); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, strings.Join(missing, ", "))
	}

	urls := make(map[capture.Slot]string, len(capture.Slots()))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, slot := range capture.Slots() {
		input := slots[slot]
		if input.Artifact == nil {
			// Unchanged since the last save (or never provided): pass the
			// remote URL through without a redundant upload.
			mu.Lock()
			urls[slot] = input.RemoteURL
			mu.Unlock()
			continue
		}

		g.Go(func() error {
			uctx, cancel := context.WithTimeout(gctx, uploadTimeout)
			defer cancel()

			url, err := s.blobs.Put(uctx, objectPath(userID, slot), input.Artifact.Data, input.Artifact.ContentType)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", ErrUploadFailed, slot, err)
			}
			mu.Lock()
			urls[slot] = url
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		applog.LogAuditEvent(ctx, "save", userID, "profile", userID, "failure",
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}

	stored := buildStored(form, urls)
	if _, err := s.client.Collection(usersCollection).Doc(userID).Set(ctx, stored); err != nil {
		applog.LogAuditEvent(ctx, "save", userID, "profile", userID, "failure",
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}

	applog.LogAuditEvent(ctx, "save", userID, "profile", userID, "success", nil)

	return recordFromStored(stored), nil
}

// Compile-time interface check
var _ Service = (*Store)(nil)
