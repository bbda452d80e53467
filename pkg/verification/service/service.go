package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/edverify/sheerid-verifier/internal/metrics"
	"github.com/edverify/sheerid-verifier/pkg/document"
	"github.com/edverify/sheerid-verifier/pkg/identity"
	"github.com/edverify/sheerid-verifier/pkg/organization"
	"github.com/edverify/sheerid-verifier/pkg/sheerid"
	"github.com/edverify/sheerid-verifier/pkg/verification"
)

const (
	documentFileName = "student_id.png"
	documentMimeType = "image/png"
)

// Client is the narrow protocol interface the service drives.
// Defined here to keep the service decoupled from the client implementation.
//
//go:generate mockery --name Client --output mocks --outpkg mocks --filename mock_client.go --with-expecter
type Client interface {
	SubmitPersonalInfo(ctx context.Context, verificationID string, info sheerid.PersonalInfo) (*sheerid.StepResponse, error)
	BypassSSO(ctx context.Context, verificationID string) (*sheerid.StepResponse, error)
	SubmitDocument(ctx context.Context, verificationID string, doc *sheerid.Document) (*sheerid.StepResponse, error)
}

// Recorder persists finished attempts. Failures to record never fail a run.
type Recorder interface {
	Record(ctx context.Context, attempt *verification.Attempt) error
}

// Service defines the interface for the verification business logic
//
//go:generate mockery --name Service --output mocks --outpkg mocks --filename mock_service.go --with-expecter
type Service interface {
	Verify(ctx context.Context, req *verification.Request) (*verification.Outcome, error)
}

type verificationService struct {
	client    Client
	catalog   *organization.Catalog
	generator identity.Generator
	renderer  document.Renderer
	recorder  Recorder
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewService creates a new verification service
func NewService(
	client Client,
	catalog *organization.Catalog,
	generator identity.Generator,
	renderer document.Renderer,
	recorder Recorder,
	logger *zap.Logger,
) Service {
	return &verificationService{
		client:    client,
		catalog:   catalog,
		generator: generator,
		renderer:  renderer,
		recorder:  recorder,
		validate:  validator.New(),
		logger:    logger,
	}
}

// Verify runs the full verification flow for one request. It returns an
// error only for caller mistakes detected before any step is issued.
// Failures inside the protocol are reported through the outcome.
func (s *verificationService) Verify(
	ctx context.Context,
	req *verification.Request,
) (*verification.Outcome, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid verification request: %w", err)
	}

	org, err := req.Organization.Descriptor().Resolve(s.catalog)
	if err != nil {
		return nil, err
	}

	ident, err := s.buildIdentity(req, org)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := s.logger.With(
		zap.String("run_id", runID),
		zap.String("verification_id", req.VerificationID),
		zap.String("school", org.Name),
	)

	start := time.Now()
	outcome := s.run(ctx, logger, req.VerificationID, org, ident)
	metrics.VerificationDuration.Observe(time.Since(start).Seconds())
	metrics.VerificationsTotal.WithLabelValues(outcomeStatus(outcome)).Inc()

	s.record(ctx, logger, outcome, org, ident)
	return outcome, nil
}

func (s *verificationService) run(
	ctx context.Context,
	logger *zap.Logger,
	verificationID string,
	org organization.Organization,
	ident verification.Identity,
) *verification.Outcome {
	info := sheerid.PersonalInfo{
		FirstName: ident.FirstName,
		LastName:  ident.LastName,
		BirthDate: ident.BirthDate.Format("2006-01-02"),
		Email:     ident.Email,
		Organization: sheerid.OrganizationRef{
			ID:         org.ID,
			IDExtended: org.IDExtended,
			Name:       org.Name,
		},
		DeviceFingerprintHash: sheerid.NewDeviceFingerprint(),
	}

	// The document is rendered up front, before any step is issued, so a
	// local rendering failure never leaves the remote case half-advanced.
	card, err := s.renderer.Render(document.CardData{
		FirstName:  ident.FirstName,
		LastName:   ident.LastName,
		SchoolName: org.Name,
		SchoolID:   strconv.FormatInt(org.ID, 10),
	})
	if err != nil {
		return s.failure(logger, verificationID, "render document", err)
	}
	metrics.DocumentBytes.Observe(float64(len(card)))

	logger.Info("submitting personal info",
		zap.String("email", ident.Email),
	)
	resp, err := s.client.SubmitPersonalInfo(ctx, verificationID, info)
	if err != nil {
		return s.failure(logger, verificationID, "submit personal info", err)
	}

	// An SSO prompt at this point blocks document collection, so the
	// SSO step is cancelled whenever the server may still raise one.
	if resp.CurrentStep == sheerid.StepSSO || resp.CurrentStep == sheerid.StepCollectPersonalInfo {
		if _, err := s.client.BypassSSO(ctx, verificationID); err != nil {
			logger.Warn("sso bypass failed, continuing", zap.Error(err))
		}
	}

	resp, err = s.client.SubmitDocument(ctx, verificationID, &sheerid.Document{
		FileName: documentFileName,
		MimeType: documentMimeType,
		Data:     card,
	})
	if err != nil {
		return s.failure(logger, verificationID, "submit document", err)
	}

	outcome := &verification.Outcome{
		VerificationID: verificationID,
		RedirectURL:    resp.RedirectURL,
		Status:         resp.Raw,
		StudentInfo: &verification.StudentInfo{
			FirstName:  ident.FirstName,
			LastName:   ident.LastName,
			BirthDate:  ident.BirthDate.Format("2006-01-02"),
			Email:      ident.Email,
			SchoolName: org.Name,
		},
	}
	if resp.CurrentStep == sheerid.StepSuccess {
		outcome.Success = true
		outcome.Message = "Verification approved"
		logger.Info("verification approved")
	} else {
		outcome.Pending = true
		outcome.Message = verification.PendingMessage
		logger.Info("document submitted, review pending",
			zap.String("current_step", resp.CurrentStep),
		)
	}
	return outcome
}

func (s *verificationService) buildIdentity(
	req *verification.Request,
	org organization.Organization,
) (verification.Identity, error) {
	ident := verification.Identity{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
	if ident.FirstName == "" || ident.LastName == "" {
		first, last := s.generator.GenerateName()
		if ident.FirstName == "" {
			ident.FirstName = first
		}
		if ident.LastName == "" {
			ident.LastName = last
		}
	}
	if req.BirthDate != "" {
		born, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return verification.Identity{}, fmt.Errorf("invalid birth date: %w", err)
		}
		ident.BirthDate = born
	} else {
		ident.BirthDate = s.generator.GenerateBirthDate()
	}
	if ident.Email == "" {
		ident.Email = identity.SchoolEmail(org.Domain)
	}
	return ident, nil
}

func (s *verificationService) failure(
	logger *zap.Logger,
	verificationID string,
	stage string,
	err error,
) *verification.Outcome {
	metrics.StepFailures.WithLabelValues(failedStep(err, stage)).Inc()
	logger.Error("verification failed",
		zap.String("stage", stage),
		zap.Error(err),
	)
	return &verification.Outcome{
		VerificationID: verificationID,
		Message:        fmt.Sprintf("%s: %v", stage, err),
	}
}

func (s *verificationService) record(
	ctx context.Context,
	logger *zap.Logger,
	outcome *verification.Outcome,
	org organization.Organization,
	ident verification.Identity,
) {
	if s.recorder == nil {
		return
	}
	attempt := &verification.Attempt{
		ID:             uuid.NewString(),
		VerificationID: outcome.VerificationID,
		SchoolName:     org.Name,
		Email:          ident.Email,
		Status:         outcomeStatus(outcome),
		Message:        outcome.Message,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.recorder.Record(ctx, attempt); err != nil {
		logger.Warn("failed to record attempt", zap.Error(err))
	}
}

func outcomeStatus(o *verification.Outcome) string {
	switch {
	case o.Success:
		return verification.AttemptStatusSuccess
	case o.Pending:
		return verification.AttemptStatusPending
	default:
		return verification.AttemptStatusFailed
	}
}

// failedStep maps a protocol error to the step label used in metrics.
func failedStep(err error, fallback string) string {
	var transport *sheerid.StepTransportError
	if errors.As(err, &transport) {
		return transport.Step
	}
	var rejected *sheerid.StepRejectedError
	if errors.As(err, &rejected) {
		return rejected.Step
	}
	var network *sheerid.NetworkError
	if errors.As(err, &network) {
		return network.Step
	}
	var upload *sheerid.UploadError
	if errors.As(err, &upload) {
		return sheerid.StepDocUpload
	}
	return fallback
}
