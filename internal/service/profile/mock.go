package profile

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/zymoapp/rental-api/internal/capture"
)

// MockProfileService implements Service for unit tests.
type MockProfileService struct {
	mu      sync.RWMutex
	records map[string]*Record

	// SaveErr, when set, is returned by Save after validation.
	SaveErr error
}

// NewMockProfileService creates a new mock service.
func NewMockProfileService() *MockProfileService {
	return &MockProfileService{records: make(map[string]*Record)}
}

func (m *MockProfileService) LoadExisting(_ context.Context, userID string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.records[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return r, nil
}

func (m *MockProfileService) Save(_ context.Context, userID string, form FormFields, slots map[capture.Slot]SlotInput) (*Record, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if missing := requiredMissing(form); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, strings.Join(missing, ", "))
	}
	if m.SaveErr != nil {
		return nil, m.SaveErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	r := &Record{
		Name:        form.Name,
		Phone:       form.Phone,
		Email:       form.Email,
		DateOfBirth: form.DateOfBirth,
		Documents:   make(map[capture.Slot]string, len(capture.Slots())),
		Uploaded:    make(map[capture.Slot]bool, len(capture.Slots())),
	}
	for _, slot := range capture.Slots() {
		input := slots[slot]
		url := input.RemoteURL
		if input.Artifact != nil {
			url = "https://storage.example.com/" + objectPath(userID, slot)
		}
		r.Documents[slot] = url
		r.Uploaded[slot] = url != ""
	}
	m.records[userID] = r
	return r, nil
}

// Seed installs a record directly, for test setup.
func (m *MockProfileService) Seed(userID string, r *Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[userID] = r
}

// Clear removes all records (useful for test cleanup).
func (m *MockProfileService) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = make(map[string]*Record)
}

// Compile-time interface check
var _ Service = (*MockProfileService)(nil)
