package capture

import (
	"errors"
	"strings"
)

// Source says where a slot's image is being acquired from.
type Source string

const (
	SourceFile   Source = "file"
	SourceCamera Source = "camera"
)

// ParseSource validates a source identifier from the API surface.
func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourceFile:
		return SourceFile, nil
	case SourceCamera:
		return SourceCamera, nil
	}
	return "", errors.New("capture: unknown capture source")
}

// State is the acquisition state of one document slot.
type State string

const (
	// StateEmpty means nothing has been captured for the slot.
	StateEmpty State = "empty"
	// StatePending means acquisition started (file chooser or viewfinder open).
	StatePending State = "pending"
	// StateCaptured means an artifact is held locally, not yet persisted.
	StateCaptured State = "captured"
	// StateUploading means the artifact is being written to the blob store.
	StateUploading State = "uploading"
	// StateUploaded means the slot's image is persisted remotely.
	StateUploaded State = "uploaded"
)

var (
	// ErrNotImage rejects files whose media type is not image/*.
	ErrNotImage = errors.New("capture: file is not an image")
	// ErrInvalidTransition reports an operation that is not legal in the
	// slot's current state.
	ErrInvalidTransition = errors.New("capture: invalid state transition")
)

// Artifact is the binary image payload backing a document slot, regardless
// of whether it originated from a file picker or a camera frame.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Session is the per-slot acquisition state machine. A fresh capture
// supersedes the previous artifact; cancelling a pending capture restores
// whatever the slot held before.
type Session struct {
	slot   Slot
	state  State
	source Source

	artifact   *Artifact
	previewURL string

	// prior* back up the slot across a Pending episode so Cancel can restore.
	priorState   State
	priorPreview string
	priorArt     *Artifact
}

// NewSession creates an empty session for the slot.
func NewSession(slot Slot) *Session {
	return &Session{slot: slot, state: StateEmpty}
}

// Slot returns the document slot this session manages.
func (s *Session) Slot() Slot { return s.slot }

// State returns the current acquisition state.
func (s *Session) State() State { return s.state }

// Source returns the acquisition source of the current Pending or Captured
// episode.
func (s *Session) Source() Source { return s.source }

// Artifact returns the captured binary, or nil when the slot holds none
// (empty, or already persisted remotely).
func (s *Session) Artifact() *Artifact { return s.artifact }

// PreviewURL returns the local data URL or remote URL to show for the slot.
func (s *Session) PreviewURL() string { return s.previewURL }

// Begin starts acquisition from the given source. Legal from Empty,
// Captured (replace) and Uploaded (new save cycle); an upload in flight
// cannot be interrupted.
func (s *Session) Begin(source Source) error {
	switch s.state {
	case StateEmpty, StateCaptured, StateUploaded:
	default:
		return ErrInvalidTransition
	}
	s.priorState, s.priorPreview, s.priorArt = s.state, s.previewURL, s.artifact
	s.state = StatePending
	s.source = source
	return nil
}

// AttachFile completes a file-sourced capture. Files whose declared media
// type is not image/* are rejected and the slot returns to Empty.
func (s *Session) AttachFile(filename, contentType string, data []byte) error {
	if s.state != StatePending || s.source != SourceFile {
		return ErrInvalidTransition
	}
	if !strings.HasPrefix(contentType, "image/") {
		s.reset()
		return ErrNotImage
	}
	s.artifact = &Artifact{Filename: filename, ContentType: contentType, Data: data}
	s.previewURL = EncodeDataURL(contentType, data)
	s.state = StateCaptured
	return nil
}

// CaptureFrame completes a camera-sourced capture from a viewfinder frame
// delivered as a data URL. The frame is normalized to a JPEG named
// {docType}_{page}.jpg so the artifact is indistinguishable from a
// file-sourced one downstream.
func (s *Session) CaptureFrame(dataURL string) error {
	if s.state != StatePending || s.source != SourceCamera {
		return ErrInvalidTransition
	}
	mediaType, raw, err := ParseDataURL(dataURL)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(mediaType, "image/") {
		return ErrNotImage
	}
	normalized, err := normalizeFrame(raw)
	if err != nil {
		return err
	}
	s.artifact = &Artifact{
		Filename:    s.slot.FrameFilename(),
		ContentType: "image/jpeg",
		Data:        normalized,
	}
	s.previewURL = dataURL
	s.state = StateCaptured
	return nil
}

// Cancel abandons a pending acquisition and restores the slot's prior
// state without touching its artifact. A no-op outside Pending.
func (s *Session) Cancel() {
	if s.state != StatePending {
		return
	}
	s.state, s.previewURL, s.artifact = s.priorState, s.priorPreview, s.priorArt
	s.priorArt = nil
	s.priorPreview = ""
}

// MarkUploading transitions a captured slot into the upload phase of a save
// cycle.
func (s *Session) MarkUploading() error {
	if s.state != StateCaptured {
		return ErrInvalidTransition
	}
	s.state = StateUploading
	return nil
}

// MarkUploaded records a successful upload. The local artifact is destroyed;
// the remote URL becomes the slot's preview.
func (s *Session) MarkUploaded(url string) {
	s.state = StateUploaded
	s.artifact = nil
	s.previewURL = url
}

// MarkUploadFailed returns an uploading slot to Captured so the save can be
// retried with the same artifact.
func (s *Session) MarkUploadFailed() {
	if s.state == StateUploading {
		s.state = StateCaptured
	}
}

// AdoptRemote seeds the slot from an already-persisted document URL, e.g.
// when loading an existing profile. Only an idle slot adopts; a capture in
// progress or awaiting save keeps its local artifact, since adoption must
// never destroy work the user has not saved yet.
func (s *Session) AdoptRemote(url string) {
	if url == "" {
		return
	}
	switch s.state {
	case StateEmpty, StateUploaded:
	default:
		return
	}
	s.state = StateUploaded
	s.artifact = nil
	s.previewURL = url
}

func (s *Session) reset() {
	s.state = StateEmpty
	s.source = ""
	s.artifact = nil
	s.previewURL = ""
	s.priorArt = nil
	s.priorPreview = ""
}
