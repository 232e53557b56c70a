package capture

import (
	"errors"
	"sync"
)

// ErrCameraBusy means a viewfinder is already open for another slot. The UI
// supports one live camera at a time; the open one must be closed first.
var ErrCameraBusy = errors.New("capture: camera already open for another slot")

// userSessions holds one user's four slot sessions plus the single shared
// camera flag. The flag is deliberately not per-slot: two viewfinders can
// never be open at once.
type userSessions struct {
	slots      map[Slot]*Session
	cameraSlot Slot
	cameraOpen bool
}

// Manager tracks capture sessions per user. Safe for concurrent use.
type Manager struct {
	mu    sync.Mutex
	users map[string]*userSessions
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{users: make(map[string]*userSessions)}
}

func (m *Manager) user(userID string) *userSessions {
	us, ok := m.users[userID]
	if !ok {
		us = &userSessions{slots: make(map[Slot]*Session)}
		for _, slot := range Slots() {
			us.slots[slot] = NewSession(slot)
		}
		m.users[userID] = us
	}
	return us
}

// Begin starts acquisition for a slot. A camera source claims the shared
// viewfinder; while it is claimed, camera capture for any other slot fails
// with ErrCameraBusy. File capture is unaffected by the camera flag.
func (m *Manager) Begin(userID string, slot Slot, source Source) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	us := m.user(userID)
	if source == SourceCamera && us.cameraOpen && us.cameraSlot != slot {
		return ErrCameraBusy
	}
	if err := us.slots[slot].Begin(source); err != nil {
		return err
	}
	if source == SourceCamera {
		us.cameraOpen = true
		us.cameraSlot = slot
	}
	return nil
}

// AttachFile completes a file-sourced capture for the slot.
func (m *Manager) AttachFile(userID string, slot Slot, filename, contentType string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user(userID).slots[slot].AttachFile(filename, contentType, data)
}

// CaptureFrame completes a camera-sourced capture and releases the
// viewfinder.
func (m *Manager) CaptureFrame(userID string, slot Slot, dataURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	us := m.user(userID)
	if err := us.slots[slot].CaptureFrame(dataURL); err != nil {
		return err
	}
	if us.cameraSlot == slot {
		us.cameraOpen = false
	}
	return nil
}

// Cancel abandons a pending acquisition, releasing the viewfinder if that
// slot held it. The in-progress frame is discarded with no side effects.
func (m *Manager) Cancel(userID string, slot Slot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	us := m.user(userID)
	us.slots[slot].Cancel()
	if us.cameraOpen && us.cameraSlot == slot {
		us.cameraOpen = false
	}
}

// Snapshot is a point-in-time copy of one slot's state, taken under the
// manager's lock so callers never read a live session concurrently. The
// Artifact pointer may be shared; artifacts are never mutated after capture.
type Snapshot struct {
	Slot       Slot
	State      State
	Source     Source
	Artifact   *Artifact
	PreviewURL string
}

func snapshotOf(s *Session) Snapshot {
	return Snapshot{
		Slot:       s.slot,
		State:      s.state,
		Source:     s.source,
		Artifact:   s.artifact,
		PreviewURL: s.previewURL,
	}
}

// Snapshot returns a copy of the user's slot state.
func (m *Manager) Snapshot(userID string, slot Slot) Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return snapshotOf(m.user(userID).slots[slot])
}

// Snapshots returns copies of all the user's slot states, keyed by slot.
func (m *Manager) Snapshots(userID string) map[Slot]Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	us := m.user(userID)
	out := make(map[Slot]Snapshot, len(us.slots))
	for slot, session := range us.slots {
		out[slot] = snapshotOf(session)
	}
	return out
}

// AdoptRemote seeds a slot from an already-persisted URL.
func (m *Manager) AdoptRemote(userID string, slot Slot, url string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user(userID).slots[slot].AdoptRemote(url)
}

// MarkUploading transitions a captured slot into the upload phase.
func (m *Manager) MarkUploading(userID string, slot Slot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user(userID).slots[slot].MarkUploading()
}

// BeginUpload atomically moves a captured slot into Uploading and hands back
// the artifact to persist, so a recapture cannot slip in between the state
// check and the artifact read.
func (m *Manager) BeginUpload(userID string, slot Slot) (*Artifact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess := m.user(userID).slots[slot]
	if err := sess.MarkUploading(); err != nil {
		return nil, err
	}
	return sess.artifact, nil
}

// MarkUploaded records a successful upload for a slot.
func (m *Manager) MarkUploaded(userID string, slot Slot, url string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user(userID).slots[slot].MarkUploaded(url)
}

// MarkUploadFailed returns an uploading slot to Captured for retry.
func (m *Manager) MarkUploadFailed(userID string, slot Slot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user(userID).slots[slot].MarkUploadFailed()
}

// Drop forgets a user's sessions, e.g. on sign-out.
func (m *Manager) Drop(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, userID)
}
