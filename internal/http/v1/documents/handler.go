package documents

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/zymoapp/rental-api/internal/capture"
	"github.com/zymoapp/rental-api/internal/platform/auth"
	applog "github.com/zymoapp/rental-api/internal/platform/logging"
	profilesvc "github.com/zymoapp/rental-api/internal/service/profile"
)

var bearerSecurity = []map[string][]string{
	{"bearerAuth": {}},
}

// Register registers the profile and document-capture endpoints. All of
// them require a signed-in user.
func Register(api huma.API, svc profilesvc.Service, sessions *capture.Manager) {
	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/profile",
		Summary:     "Get current user's profile",
		Description: "Loads the stored profile, resolving legacy field names. When no record exists yet, returns a prefill from the sign-in identity with exists=false.",
		Tags:        []string{"Profile"},
		Security:    bearerSecurity,
	}, func(ctx context.Context, _ *ProfileGetInput) (*ProfileGetOutput, error) {
		user := auth.UserFromContext(ctx)

		record, err := svc.LoadExisting(ctx, user.UID)
		exists := true
		switch {
		case errors.Is(err, profilesvc.ErrNotFound):
			exists = false
			record = &profilesvc.Record{Name: user.Name, Email: user.Email}
		case err != nil:
			return nil, mapServiceError(err)
		}

		for _, slot := range capture.Slots() {
			if url := record.Documents[slot]; url != "" {
				sessions.AdoptRemote(user.UID, slot, url)
			}
		}
		return &ProfileGetOutput{
			Body: toProfile(record, exists, sessions.Snapshots(user.UID)),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "save-profile",
		Method:      http.MethodPut,
		Path:        "/profile",
		Summary:     "Save current user's profile",
		Description: "Uploads every freshly captured document image, then overwrites the whole profile record in one write. Slots already uploaded keep their stored URL without a re-upload; if any upload fails, no record is written and the save can be retried.",
		Tags:        []string{"Profile"},
		Security:    bearerSecurity,
	}, func(ctx context.Context, input *ProfileSaveInput) (*ProfileSaveOutput, error) {
		user := auth.UserFromContext(ctx)

		existing, err := svc.LoadExisting(ctx, user.UID)
		if err != nil && !errors.Is(err, profilesvc.ErrNotFound) {
			return nil, mapServiceError(err)
		}

		slots := map[capture.Slot]profilesvc.SlotInput{}
		var fresh []capture.Slot
		for _, slot := range capture.Slots() {
			if sessions.Snapshot(user.UID, slot).State == capture.StateCaptured {
				art, err := sessions.BeginUpload(user.UID, slot)
				if err != nil {
					for _, s := range fresh {
						sessions.MarkUploadFailed(user.UID, s)
					}
					return nil, huma.Error409Conflict("document capture changed during save, retry")
				}
				slots[slot] = profilesvc.SlotInput{Artifact: art}
				fresh = append(fresh, slot)
				continue
			}
			if existing != nil && existing.Documents[slot] != "" {
				slots[slot] = profilesvc.SlotInput{RemoteURL: existing.Documents[slot]}
			}
		}

		record, err := svc.Save(ctx, user.UID, profilesvc.FormFields{
			Name:        input.Body.Name,
			Phone:       input.Body.Phone,
			Email:       input.Body.Email,
			DateOfBirth: input.Body.DateOfBirth,
		}, slots)
		if err != nil {
			for _, slot := range fresh {
				sessions.MarkUploadFailed(user.UID, slot)
			}
			return nil, mapServiceError(err)
		}
		for _, slot := range fresh {
			sessions.MarkUploaded(user.UID, slot, record.Documents[slot])
		}

		applog.LogInfo(ctx, "profile saved")
		return &ProfileSaveOutput{
			Body: toProfile(record, true, sessions.Snapshots(user.UID)),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "begin-document-capture",
		Method:      http.MethodPost,
		Path:        "/documents/{slot}/capture",
		Summary:     "Start capturing a document image",
		Description: "Opens a capture episode for the slot from a file picker or the camera. Only one camera viewfinder may be open at a time.",
		Tags:        []string{"Documents"},
		Security:    bearerSecurity,
	}, func(ctx context.Context, input *CaptureBeginInput) (*DocumentOutput, error) {
		user := auth.UserFromContext(ctx)
		slot, err := capture.ParseSlot(input.Slot)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		source, err := capture.ParseSource(input.Body.Source)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}

		if err := sessions.Begin(user.UID, slot, source); err != nil {
			return nil, mapCaptureError(err)
		}
		return slotOutput(sessions, user.UID, slot), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "attach-document-file",
		Method:      http.MethodPost,
		Path:        "/documents/{slot}/file",
		Summary:     "Attach a picked file to a document slot",
		Description: "Completes a file-sourced capture. Files that are not images are rejected and the slot returns to empty.",
		Tags:        []string{"Documents"},
		Security:    bearerSecurity,
	}, func(ctx context.Context, input *FileAttachInput) (*DocumentOutput, error) {
		user := auth.UserFromContext(ctx)
		slot, err := capture.ParseSlot(input.Slot)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		contentType, data, err := capture.ParseDataURL(input.Body.DataURL)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}

		if err := sessions.AttachFile(user.UID, slot, input.Body.Filename, contentType, data); err != nil {
			return nil, mapCaptureError(err)
		}
		return slotOutput(sessions, user.UID, slot), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "capture-document-frame",
		Method:      http.MethodPost,
		Path:        "/documents/{slot}/frame",
		Summary:     "Capture a camera frame for a document slot",
		Description: "Completes a camera-sourced capture from a viewfinder frame. The frame is normalized to a JPEG so it is indistinguishable from a picked file downstream, and the viewfinder is released.",
		Tags:        []string{"Documents"},
		Security:    bearerSecurity,
	}, func(ctx context.Context, input *FrameCaptureInput) (*DocumentOutput, error) {
		user := auth.UserFromContext(ctx)
		slot, err := capture.ParseSlot(input.Slot)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}

		if err := sessions.CaptureFrame(user.UID, slot, input.Body.ImageDataURL); err != nil {
			return nil, mapCaptureError(err)
		}
		return slotOutput(sessions, user.UID, slot), nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "cancel-document-capture",
		Method:        http.MethodDelete,
		Path:          "/documents/{slot}/capture",
		Summary:       "Cancel an in-progress document capture",
		Description:   "Abandons a pending capture, restoring whatever the slot held before and releasing the viewfinder if this slot had it.",
		Tags:          []string{"Documents"},
		DefaultStatus: http.StatusNoContent,
		Security:      bearerSecurity,
	}, func(ctx context.Context, input *CaptureCancelInput) (*struct{}, error) {
		user := auth.UserFromContext(ctx)
		slot, err := capture.ParseSlot(input.Slot)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		sessions.Cancel(user.UID, slot)
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-documents",
		Method:      http.MethodGet,
		Path:        "/documents",
		Summary:     "List document slot states",
		Tags:        []string{"Documents"},
		Security:    bearerSecurity,
	}, func(ctx context.Context, _ *DocumentListInput) (*DocumentListOutput, error) {
		user := auth.UserFromContext(ctx)

		out := &DocumentListOutput{}
		all := sessions.Snapshots(user.UID)
		for _, slot := range capture.Slots() {
			snap := all[slot]
			uploaded := snap.State == capture.StateUploaded
			url := ""
			if uploaded {
				url = snap.PreviewURL
			}
			out.Body.Documents = append(out.Body.Documents, toDocument(snap, url, uploaded))
		}
		return out, nil
	})
}

func slotOutput(sessions *capture.Manager, userID string, slot capture.Slot) *DocumentOutput {
	snap := sessions.Snapshot(userID, slot)
	uploaded := snap.State == capture.StateUploaded
	url := ""
	if uploaded {
		url = snap.PreviewURL
	}
	return &DocumentOutput{Body: toDocument(snap, url, uploaded)}
}

func mapCaptureError(err error) error {
	switch {
	case errors.Is(err, capture.ErrCameraBusy):
		return huma.Error409Conflict("camera is already open for another document")
	case errors.Is(err, capture.ErrInvalidTransition):
		return huma.Error409Conflict("operation not allowed in the slot's current state")
	case errors.Is(err, capture.ErrNotImage):
		return huma.Error422UnprocessableEntity("file is not an image")
	case errors.Is(err, capture.ErrMalformedDataURL):
		return huma.Error422UnprocessableEntity("malformed image data URL")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, profilesvc.ErrNotFound):
		return huma.Error404NotFound("profile not found")
	case errors.Is(err, profilesvc.ErrValidation):
		detail := strings.TrimSpace(err.Error())
		return huma.Error422UnprocessableEntity(detail)
	case errors.Is(err, profilesvc.ErrUnauthenticated):
		return huma.Error401Unauthorized("authentication required")
	case errors.Is(err, profilesvc.ErrUploadFailed):
		return huma.Error502BadGateway("document upload failed, please retry")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}
