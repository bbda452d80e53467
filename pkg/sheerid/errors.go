package sheerid

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUploadSlotMissing is returned when the docUpload step answers without
// any document descriptor, so there is no destination for the transfer.
var ErrUploadSlotMissing = errors.New("upload slot missing: no documents in docUpload response")

// ErrNoVerificationID is returned by ParseVerificationID when the URL does
// not carry a hexadecimal verificationId parameter.
var ErrNoVerificationID = errors.New("no verificationId parameter in url")

// StepTransportError reports a protocol step that answered with a non-200
// HTTP status. The raw body is kept for diagnostics.
type StepTransportError struct {
	Step   string
	Status int
	Body   string
}

func (e *StepTransportError) Error() string {
	return fmt.Sprintf("step %s failed with status %d: %s", e.Step, e.Status, e.Body)
}

// StepRejectedError reports a step that the service answered with
// currentStep "error". ErrorIDs preserves the service's error codes in
// order.
type StepRejectedError struct {
	Step     string
	ErrorIDs []string
}

func (e *StepRejectedError) Error() string {
	return fmt.Sprintf("step %s error: %s", e.Step, e.Reason())
}

// Reason joins the service error codes, or a generic placeholder when the
// service returned none.
func (e *StepRejectedError) Reason() string {
	if len(e.ErrorIDs) == 0 {
		return "Unknown error"
	}
	return strings.Join(e.ErrorIDs, ", ")
}

// UploadError reports a failed binary transfer to the pre-signed URL.
// Status is zero when the failure happened below HTTP.
type UploadError struct {
	Status int
	Err    error
}

func (e *UploadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("document upload failed: %v", e.Err)
	}
	return fmt.Sprintf("document upload failed with status %d", e.Status)
}

func (e *UploadError) Unwrap() error { return e.Err }

// NetworkError wraps a connection-level failure of a protocol step.
type NetworkError struct {
	Step string
	Err  error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("step %s request failed: %v", e.Step, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
