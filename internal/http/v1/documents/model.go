package documents

import (
	"github.com/zymoapp/rental-api/internal/capture"
	profilesvc "github.com/zymoapp/rental-api/internal/service/profile"
)

// Document is the API view of one document slot: its acquisition state plus
// whatever is known about its persisted image.
type Document struct {
	Slot       string `json:"slot"                 enum:"licenseFront,licenseBack,aadhaarFront,aadhaarBack" doc:"Document slot"`
	State      string `json:"state"                enum:"empty,pending,captured,uploading,uploaded"          doc:"Acquisition state"`
	Source     string `json:"source,omitempty"     enum:"file,camera"                                        doc:"Acquisition source of the current capture"`
	PreviewURL string `json:"previewUrl,omitempty" doc:"Data URL of a local capture, or the remote URL once uploaded"`
	Filename   string `json:"filename,omitempty"   doc:"Filename of the held artifact"`
	URL        string `json:"url,omitempty"        doc:"Persisted image URL"`
	Uploaded   bool   `json:"uploaded"             doc:"Whether the slot's image is persisted"`
}

// Profile is the API view of the onboarding profile record.
type Profile struct {
	Exists      bool       `json:"exists"      doc:"False when no record is stored yet and the fields are prefilled from the sign-in identity"`
	Name        string     `json:"name"        doc:"Full name"       example:"Asha Rao"`
	Phone       string     `json:"phone"       doc:"Phone number"    example:"9876543210"`
	Email       string     `json:"email"       doc:"Email address"   example:"asha@example.com"`
	DateOfBirth string     `json:"dob"         doc:"Date of birth"   example:"1994-05-21"`
	Complete    bool       `json:"complete"    doc:"Whether every contact field is filled in"`
	Documents   []Document `json:"documents"   doc:"Per-slot document status, in display order"`
}

func toDocument(snap capture.Snapshot, url string, uploaded bool) Document {
	doc := Document{
		Slot:     string(snap.Slot),
		State:    string(snap.State),
		URL:      url,
		Uploaded: uploaded,
	}
	if snap.State == capture.StatePending || snap.Artifact != nil {
		doc.Source = string(snap.Source)
	}
	if snap.Artifact != nil {
		doc.Filename = snap.Artifact.Filename
	}
	doc.PreviewURL = snap.PreviewURL
	return doc
}

func toProfile(rec *profilesvc.Record, exists bool, snapshots map[capture.Slot]capture.Snapshot) Profile {
	p := Profile{
		Exists:      exists,
		Name:        rec.Name,
		Phone:       rec.Phone,
		Email:       rec.Email,
		DateOfBirth: rec.DateOfBirth,
		Complete:    rec.Complete(),
	}
	for _, slot := range capture.Slots() {
		p.Documents = append(p.Documents, toDocument(snapshots[slot], rec.Documents[slot], rec.Uploaded[slot]))
	}
	return p
}
