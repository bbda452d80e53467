package sheerid

import (
	"context"

	"go.uber.org/zap"
)

// Document is a rendered supporting file. The client treats the payload as
// an opaque binary blob; it never inspects the bytes.
type Document struct {
	FileName string
	MimeType string
	Data     []byte
}

// SubmitDocument performs the document hand-off as one operation: request an
// upload slot declaring the file, transfer the bytes to the pre-signed
// destination, then confirm completion. The first failure short-circuits the
// remaining calls.
//
// The returned response is the completion step's answer, reported as-is with
// pending-review semantics; a non-success currentStep there does not fail
// the hand-off.
func (c *Client) SubmitDocument(ctx context.Context, verificationID string, doc *Document) (*StepResponse, error) {
	slot, err := c.RequestUploadSlot(ctx, verificationID, FileSpec{
		FileName: doc.FileName,
		MimeType: doc.MimeType,
		FileSize: len(doc.Data),
	})
	if err != nil {
		return nil, err
	}

	if err := c.Upload(ctx, slot.Documents[0].UploadURL, doc.MimeType, doc.Data); err != nil {
		return nil, err
	}

	final, err := c.CompleteDocUpload(ctx, verificationID)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("document submission completed",
		zap.String("verification_id", verificationID),
		zap.String("current_step", final.CurrentStep))
	return final, nil
}
