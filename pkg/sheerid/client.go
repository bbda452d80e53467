// Package sheerid implements the client side of the SheerID student
// verification step protocol: the ordered remote steps, their request and
// response shapes, the conditional SSO bypass, and the binary document
// hand-off to a pre-signed upload URL.
package sheerid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// maxBodyBytes limits step-response reads so a misbehaving endpoint cannot
// make the client slurp an unbounded body.
const maxBodyBytes = 1 << 20

// Client drives the remote verification step protocol. One Client may be
// shared by concurrent runs; it holds no per-run state.
type Client struct {
	cfg          *Config
	httpClient   *http.Client
	uploadClient *http.Client
	logger       *zap.Logger
}

// New creates a protocol client for the configured service.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	s := applyOptions(opts)
	if s.httpClient == nil {
		s.httpClient = &http.Client{Timeout: cfg.requestTimeout()}
	}
	if s.uploadClient == nil {
		// The binary transfer gets its own client with a longer timeout.
		s.uploadClient = &http.Client{Timeout: cfg.uploadTimeout()}
	}

	return &Client{
		cfg:          cfg,
		httpClient:   s.httpClient,
		uploadClient: s.uploadClient,
		logger:       s.logger,
	}, nil
}

// RefererURL builds the program landing URL the service expects in the
// personal-info step metadata.
func (c *Client) RefererURL(verificationID string) string {
	return fmt.Sprintf("%s/verify/%s/?verificationId=%s", c.cfg.baseURL(), c.cfg.ProgramID, verificationID)
}

func (c *Client) stepURL(verificationID, step string) string {
	return fmt.Sprintf("%s/rest/v2/verification/%s/step/%s", c.cfg.baseURL(), verificationID, step)
}

// SubmitPersonalInfo runs the collectStudentPersonalInfo step. The client
// fills in the locale and metadata block before sending; callers only supply
// the identity, organization, and fingerprint fields.
//
// A non-200 status yields a StepTransportError; a 200 whose currentStep is
// "error" yields a StepRejectedError. Both are fatal to the run.
func (c *Client) SubmitPersonalInfo(ctx context.Context, verificationID string, info PersonalInfo) (*StepResponse, error) {
	if info.Locale == "" {
		info.Locale = defaultLocale
	}
	info.Metadata = &stepMetadata{
		MarketConsentValue: false,
		RefererURL:         c.RefererURL(verificationID),
		VerificationID:     verificationID,
		Flags:              flagsJSON,
		SubmissionOptIn:    submissionOptIn,
	}

	resp, status, err := c.doStep(ctx, http.MethodPost, verificationID, StepCollectPersonalInfo, info)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &StepTransportError{Step: StepCollectPersonalInfo, Status: status, Body: string(resp.Raw)}
	}
	if resp.CurrentStep == StepError {
		return nil, &StepRejectedError{Step: StepCollectPersonalInfo, ErrorIDs: resp.ErrorIDs}
	}

	c.logger.Debug("personal info submitted",
		zap.String("verification_id", verificationID),
		zap.String("current_step", resp.CurrentStep))
	return resp, nil
}

// BypassSSO issues the step-cancellation call against the sso sub-resource.
// The HTTP status is deliberately ignored: the caller trusts only the
// returned currentStep. Only a connection-level failure produces an error.
func (c *Client) BypassSSO(ctx context.Context, verificationID string) (*StepResponse, error) {
	resp, status, err := c.doStep(ctx, http.MethodDelete, verificationID, StepSSO, nil)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("sso bypass issued",
		zap.String("verification_id", verificationID),
		zap.Int("status", status),
		zap.String("current_step", resp.CurrentStep))
	return resp, nil
}

// RequestUploadSlot declares the document to the docUpload step and returns
// the response carrying the pre-signed upload destination. An answer without
// document descriptors yields ErrUploadSlotMissing.
func (c *Client) RequestUploadSlot(ctx context.Context, verificationID string, file FileSpec) (*StepResponse, error) {
	resp, status, err := c.doStep(ctx, http.MethodPost, verificationID, StepDocUpload, docUploadRequest{Files: []FileSpec{file}})
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &StepTransportError{Step: StepDocUpload, Status: status, Body: string(resp.Raw)}
	}
	if len(resp.Documents) == 0 {
		return nil, ErrUploadSlotMissing
	}
	return resp, nil
}

// Upload transfers the document bytes to the pre-signed destination with a
// single PUT. Any status outside the 2xx range, or a transport failure,
// yields an UploadError.
func (c *Client) Upload(ctx context.Context, uploadURL, mimeType string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(data))
	if err != nil {
		return &UploadError{Err: fmt.Errorf("create upload request: %w", err)}
	}
	req.Header.Set("Content-Type", mimeType)
	req.ContentLength = int64(len(data))

	resp, err := c.uploadClient.Do(req)
	if err != nil {
		return &UploadError{Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &UploadError{Status: resp.StatusCode}
	}

	c.logger.Debug("document uploaded",
		zap.Int("size_bytes", len(data)),
		zap.Int("status", resp.StatusCode))
	return nil
}

// CompleteDocUpload tells the service the transfer is done. The response is
// captured but not validated; whatever the service answers is reported as
// the final pending-review status.
func (c *Client) CompleteDocUpload(ctx context.Context, verificationID string) (*StepResponse, error) {
	resp, _, err := c.doStep(ctx, http.MethodPost, verificationID, StepCompleteDocUpload, nil)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// doStep sends one JSON protocol step and decodes the response. Bodies that
// are not valid JSON are tolerated; the raw body is always preserved.
func (c *Client) doStep(ctx context.Context, method, verificationID, step string, body any) (*StepResponse, int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("marshal %s request: %w", step, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.stepURL(verificationID, step), reader)
	if err != nil {
		return nil, 0, fmt.Errorf("create %s request: %w", step, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, &NetworkError{Step: step, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, 0, &NetworkError{Step: step, Err: fmt.Errorf("read response: %w", err)}
	}

	out := &StepResponse{Raw: raw}
	if len(raw) > 0 {
		// Non-JSON bodies (e.g. HTML error pages) are kept raw only.
		_ = json.Unmarshal(raw, out)
	}
	return out, resp.StatusCode, nil
}
