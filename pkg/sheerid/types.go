package sheerid

import "encoding/json"

// Step names used by the remote protocol. A response's CurrentStep names the
// next step the service expects, or StepError when the submission was
// rejected.
const (
	StepCollectPersonalInfo = "collectStudentPersonalInfo"
	StepSSO                 = "sso"
	StepDocUpload           = "docUpload"
	StepCompleteDocUpload   = "completeDocUpload"
	StepError               = "error"
	StepPending             = "pending"
	StepSuccess             = "success"
)

const defaultLocale = "en-US"

// flagsJSON and submissionOptIn are opaque pass-through strings the service
// expects in the step metadata. The engine never inspects them.
const flagsJSON = `{"collect-info-step-email-first":"default","doc-upload-considerations":"default","doc-upload-may24":"default","doc-upload-redesign-use-legacy-message-keys":false,"docUpload-assertion-checklist":"default","font-size":"default","include-cvec-field-france-student":"not-labeled-optional"}`

const submissionOptIn = "By submitting the personal information above, I acknowledge that my personal information is being collected under the privacy policy of the business from which I am seeking a discount"

// OrganizationRef is the organization block of the personal-info step.
// Note that ID is numeric while IDExtended is its string form; the two are
// not necessarily equal.
type OrganizationRef struct {
	ID         int64  `json:"id"`
	IDExtended string `json:"idExtended"`
	Name       string `json:"name"`
}

// PersonalInfo holds the student fields submitted in the first protocol
// step. BirthDate uses the YYYY-MM-DD calendar form.
type PersonalInfo struct {
	FirstName             string          `json:"firstName"`
	LastName              string          `json:"lastName"`
	BirthDate             string          `json:"birthDate"`
	Email                 string          `json:"email"`
	PhoneNumber           string          `json:"phoneNumber"`
	Organization          OrganizationRef `json:"organization"`
	DeviceFingerprintHash string          `json:"deviceFingerprintHash"`
	Locale                string          `json:"locale"`
	Metadata              *stepMetadata   `json:"metadata"`
}

// stepMetadata is protocol plumbing filled in by the client before the
// personal-info step is sent.
type stepMetadata struct {
	MarketConsentValue bool   `json:"marketConsentValue"`
	RefererURL         string `json:"refererUrl"`
	VerificationID     string `json:"verificationId"`
	Flags              string `json:"flags"`
	SubmissionOptIn    string `json:"submissionOptIn"`
}

// DocumentSlot describes one pre-signed upload destination issued by the
// docUpload step.
type DocumentSlot struct {
	FileName  string `json:"fileName,omitempty"`
	MimeType  string `json:"mimeType,omitempty"`
	UploadURL string `json:"uploadUrl"`
}

// FileSpec declares a file to the docUpload step before the transfer.
type FileSpec struct {
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"`
	FileSize int    `json:"fileSize"`
}

type docUploadRequest struct {
	Files []FileSpec `json:"files"`
}

// StepResponse is the decoded body of one protocol step. Raw keeps the
// unparsed body for diagnostics in the final outcome.
type StepResponse struct {
	CurrentStep string         `json:"currentStep"`
	ErrorIDs    []string       `json:"errorIds"`
	RedirectURL string         `json:"redirectUrl"`
	Documents   []DocumentSlot `json:"documents"`

	Raw json.RawMessage `json:"-"`
}
