package documents

// ProfileGetInput for GET /profile (no parameters)
type ProfileGetInput struct{}

// ProfileSaveInput for PUT /profile
type ProfileSaveInput struct {
	Body struct {
		Name        string `json:"name"  minLength:"1" maxLength:"100" required:"true" doc:"Full name"     example:"Asha Rao"`
		Phone       string `json:"phone" minLength:"1" maxLength:"20"  required:"true" doc:"Phone number"  example:"9876543210"`
		Email       string `json:"email" format:"email"               required:"true" doc:"Email address" example:"asha@example.com"`
		DateOfBirth string `json:"dob"   minLength:"1"                 required:"true" doc:"Date of birth" example:"1994-05-21"`
	}
}

// CaptureBeginInput for POST /documents/{slot}/capture
type CaptureBeginInput struct {
	Slot string `path:"slot" enum:"licenseFront,licenseBack,aadhaarFront,aadhaarBack" doc:"Document slot"`
	Body struct {
		Source string `json:"source" enum:"file,camera" required:"true" doc:"Where the image will come from"`
	}
}

// FileAttachInput for POST /documents/{slot}/file. The file arrives as a
// data URL, matching how browser clients read a picked file.
type FileAttachInput struct {
	Slot string `path:"slot" enum:"licenseFront,licenseBack,aadhaarFront,aadhaarBack" doc:"Document slot"`
	Body struct {
		Filename string `json:"filename" minLength:"1" maxLength:"255" required:"true" doc:"Original filename" example:"license.jpg"`
		DataURL  string `json:"dataUrl"  minLength:"1"                 required:"true" doc:"File contents as a base64 data URL"`
	}
}

// FrameCaptureInput for POST /documents/{slot}/frame
type FrameCaptureInput struct {
	Slot string `path:"slot" enum:"licenseFront,licenseBack,aadhaarFront,aadhaarBack" doc:"Document slot"`
	Body struct {
		ImageDataURL string `json:"imageDataUrl" minLength:"1" required:"true" doc:"Viewfinder frame as a base64 data URL"`
	}
}

// CaptureCancelInput for DELETE /documents/{slot}/capture
type CaptureCancelInput struct {
	Slot string `path:"slot" enum:"licenseFront,licenseBack,aadhaarFront,aadhaarBack" doc:"Document slot"`
}

// DocumentListInput for GET /documents (no parameters)
type DocumentListInput struct{}
