package documents

// ProfileGetOutput for GET /profile
type ProfileGetOutput struct {
	Body Profile
}

// ProfileSaveOutput for PUT /profile
type ProfileSaveOutput struct {
	Body Profile
}

// DocumentOutput for the single-slot capture operations
type DocumentOutput struct {
	Body Document
}

// DocumentListOutput for GET /documents
type DocumentListOutput struct {
	Body struct {
		Documents []Document `json:"documents" doc:"Per-slot document status, in display order"`
	}
}
