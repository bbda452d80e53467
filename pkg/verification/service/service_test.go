package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/edverify/sheerid-verifier/pkg/document"
	"github.com/edverify/sheerid-verifier/pkg/organization"
	"github.com/edverify/sheerid-verifier/pkg/sheerid"
	"github.com/edverify/sheerid-verifier/pkg/verification"
)

// fakeClient records protocol calls and plays back canned responses.
type fakeClient struct {
	calls []string

	personalInfo     sheerid.PersonalInfo
	personalInfoResp *sheerid.StepResponse
	personalInfoErr  error

	bypassErr error

	document     sheerid.Document
	documentResp *sheerid.StepResponse
	documentErr  error
}

func (f *fakeClient) SubmitPersonalInfo(_ context.Context, _ string, info sheerid.PersonalInfo) (*sheerid.StepResponse, error) {
	f.calls = append(f.calls, "personalInfo")
	f.personalInfo = info
	return f.personalInfoResp, f.personalInfoErr
}

func (f *fakeClient) BypassSSO(_ context.Context, _ string) (*sheerid.StepResponse, error) {
	f.calls = append(f.calls, "bypassSSO")
	return nil, f.bypassErr
}

func (f *fakeClient) SubmitDocument(_ context.Context, _ string, doc *sheerid.Document) (*sheerid.StepResponse, error) {
	f.calls = append(f.calls, "document")
	f.document = *doc
	return f.documentResp, f.documentErr
}

// fixedGenerator returns deterministic identities.
type fixedGenerator struct{}

func (fixedGenerator) GenerateName() (string, string) { return "Alice", "Smith" }

func (fixedGenerator) GenerateBirthDate() time.Time {
	return time.Date(2004, time.March, 14, 0, 0, 0, 0, time.UTC)
}

// stubRenderer returns a fixed payload without drawing anything.
type stubRenderer struct {
	got document.CardData
	err error
}

func (r *stubRenderer) Render(data document.CardData) ([]byte, error) {
	r.got = data
	if r.err != nil {
		return nil, r.err
	}
	return []byte("png-bytes"), nil
}

// captureRecorder keeps the last recorded attempt.
type captureRecorder struct {
	attempt *verification.Attempt
	err     error
}

func (r *captureRecorder) Record(_ context.Context, attempt *verification.Attempt) error {
	r.attempt = attempt
	return r.err
}

func mitRequest() *verification.Request {
	return &verification.Request{
		VerificationID: "68af2c1d9be2a1",
		FirstName:      "John",
		LastName:       "Doe",
		Organization: verification.OrganizationInput{
			ID:         1953,
			IDExtended: "1953",
			Name:       "MIT",
			Domain:     "mit.edu",
		},
	}
}

func newTestService(client Client, recorder Recorder) Service {
	return NewService(client, nil, fixedGenerator{}, &stubRenderer{}, recorder, zap.NewNop())
}

func TestVerify_PendingFlow(t *testing.T) {
	client := &fakeClient{
		personalInfoResp: &sheerid.StepResponse{CurrentStep: sheerid.StepDocUpload},
		documentResp: &sheerid.StepResponse{
			CurrentStep: sheerid.StepPending,
			RedirectURL: "https://example.com/done",
		},
	}
	recorder := &captureRecorder{}
	svc := newTestService(client, recorder)

	outcome, err := svc.Verify(context.Background(), mitRequest())
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}

	if !outcome.Pending || outcome.Success {
		t.Fatalf("expected pending outcome, got %+v", outcome)
	}
	if outcome.Message != verification.PendingMessage {
		t.Fatalf("unexpected message %q", outcome.Message)
	}
	if outcome.RedirectURL != "https://example.com/done" {
		t.Fatalf("unexpected redirect url %q", outcome.RedirectURL)
	}
	if outcome.StudentInfo == nil {
		t.Fatal("expected student info")
	}
	if outcome.StudentInfo.SchoolName != "MIT" {
		t.Fatalf("unexpected school name %q", outcome.StudentInfo.SchoolName)
	}
	if !strings.HasSuffix(outcome.StudentInfo.Email, "@MIT.EDU") {
		t.Fatalf("expected derived school email, got %q", outcome.StudentInfo.Email)
	}

	info := client.personalInfo
	if info.FirstName != "John" || info.LastName != "Doe" {
		t.Fatalf("unexpected submitted identity %s %s", info.FirstName, info.LastName)
	}
	if info.Organization.ID != 1953 || info.Organization.Name != "MIT" {
		t.Fatalf("unexpected submitted organization %+v", info.Organization)
	}
	if !regexp.MustCompile(`^[0-9a-f]{32}$`).MatchString(info.DeviceFingerprintHash) {
		t.Fatalf("unexpected fingerprint %q", info.DeviceFingerprintHash)
	}

	if recorder.attempt == nil {
		t.Fatal("expected recorded attempt")
	}
	if recorder.attempt.Status != verification.AttemptStatusPending {
		t.Fatalf("unexpected attempt status %q", recorder.attempt.Status)
	}
}

func TestVerify_BypassesSSOWhenStepDemandsIt(t *testing.T) {
	for _, step := range []string{sheerid.StepSSO, sheerid.StepCollectPersonalInfo} {
		client := &fakeClient{
			personalInfoResp: &sheerid.StepResponse{CurrentStep: step},
			documentResp:     &sheerid.StepResponse{CurrentStep: sheerid.StepPending},
		}
		svc := newTestService(client, nil)

		if _, err := svc.Verify(context.Background(), mitRequest()); err != nil {
			t.Fatalf("Verify() failed for step %q: %v", step, err)
		}
		want := []string{"personalInfo", "bypassSSO", "document"}
		if len(client.calls) != 3 || client.calls[1] != "bypassSSO" {
			t.Fatalf("step %q: expected calls %v, got %v", step, want, client.calls)
		}
	}
}

func TestVerify_SkipsSSOWhenAlreadyPastIt(t *testing.T) {
	client := &fakeClient{
		personalInfoResp: &sheerid.StepResponse{CurrentStep: sheerid.StepDocUpload},
		documentResp:     &sheerid.StepResponse{CurrentStep: sheerid.StepPending},
	}
	svc := newTestService(client, nil)

	if _, err := svc.Verify(context.Background(), mitRequest()); err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	for _, call := range client.calls {
		if call == "bypassSSO" {
			t.Fatalf("unexpected sso bypass, calls: %v", client.calls)
		}
	}
}

func TestVerify_SSOFailureDoesNotStopRun(t *testing.T) {
	client := &fakeClient{
		personalInfoResp: &sheerid.StepResponse{CurrentStep: sheerid.StepSSO},
		bypassErr:        &sheerid.NetworkError{Step: sheerid.StepSSO, Err: errors.New("timeout")},
		documentResp:     &sheerid.StepResponse{CurrentStep: sheerid.StepPending},
	}
	svc := newTestService(client, nil)

	outcome, err := svc.Verify(context.Background(), mitRequest())
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if !outcome.Pending {
		t.Fatalf("expected pending outcome despite sso failure, got %+v", outcome)
	}
}

func TestVerify_RejectedInfoStopsBeforeDocument(t *testing.T) {
	client := &fakeClient{
		personalInfoErr: &sheerid.StepRejectedError{
			Step:     sheerid.StepCollectPersonalInfo,
			ErrorIDs: []string{"INVALID_EMAIL", "UNDERAGE"},
		},
	}
	recorder := &captureRecorder{}
	svc := newTestService(client, recorder)

	outcome, err := svc.Verify(context.Background(), mitRequest())
	if err != nil {
		t.Fatalf("Verify() should not fail for a protocol rejection: %v", err)
	}
	if outcome.Pending || outcome.Success {
		t.Fatalf("expected failure outcome, got %+v", outcome)
	}
	if !strings.Contains(outcome.Message, "INVALID_EMAIL, UNDERAGE") {
		t.Fatalf("expected rejection ids in message, got %q", outcome.Message)
	}
	for _, call := range client.calls {
		if call == "document" {
			t.Fatalf("document must not be submitted after rejection, calls: %v", client.calls)
		}
	}
	if recorder.attempt == nil || recorder.attempt.Status != verification.AttemptStatusFailed {
		t.Fatalf("expected failed attempt record, got %+v", recorder.attempt)
	}
}

func TestVerify_MissingOrganization(t *testing.T) {
	svc := newTestService(&fakeClient{}, nil)

	req := mitRequest()
	req.Organization = verification.OrganizationInput{}

	_, err := svc.Verify(context.Background(), req)
	if !errors.Is(err, organization.ErrMissingOrganization) {
		t.Fatalf("expected ErrMissingOrganization, got %v", err)
	}
}

func TestVerify_MissingVerificationID(t *testing.T) {
	svc := newTestService(&fakeClient{}, nil)

	req := mitRequest()
	req.VerificationID = ""

	if _, err := svc.Verify(context.Background(), req); err == nil {
		t.Fatal("expected validation error for missing verification id")
	}
}

func TestVerify_GeneratorFillsIdentity(t *testing.T) {
	client := &fakeClient{
		personalInfoResp: &sheerid.StepResponse{CurrentStep: sheerid.StepDocUpload},
		documentResp:     &sheerid.StepResponse{CurrentStep: sheerid.StepPending},
	}
	svc := newTestService(client, nil)

	req := mitRequest()
	req.FirstName = ""
	req.LastName = ""

	if _, err := svc.Verify(context.Background(), req); err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if client.personalInfo.FirstName != "Alice" || client.personalInfo.LastName != "Smith" {
		t.Fatalf("expected generated identity, got %s %s",
			client.personalInfo.FirstName, client.personalInfo.LastName)
	}
	if client.personalInfo.BirthDate != "2004-03-14" {
		t.Fatalf("expected generated birth date, got %q", client.personalInfo.BirthDate)
	}
}

func TestVerify_ExplicitBirthDateUsed(t *testing.T) {
	client := &fakeClient{
		personalInfoResp: &sheerid.StepResponse{CurrentStep: sheerid.StepDocUpload},
		documentResp:     &sheerid.StepResponse{CurrentStep: sheerid.StepPending},
	}
	svc := newTestService(client, nil)

	req := mitRequest()
	req.BirthDate = "2001-12-31"

	if _, err := svc.Verify(context.Background(), req); err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if client.personalInfo.BirthDate != "2001-12-31" {
		t.Fatalf("expected explicit birth date, got %q", client.personalInfo.BirthDate)
	}
}

func TestVerify_CardCarriesOrganizationID(t *testing.T) {
	client := &fakeClient{
		personalInfoResp: &sheerid.StepResponse{CurrentStep: sheerid.StepDocUpload},
		documentResp:     &sheerid.StepResponse{CurrentStep: sheerid.StepPending},
	}
	renderer := &stubRenderer{}
	svc := NewService(client, nil, fixedGenerator{}, renderer, nil, zap.NewNop())

	if _, err := svc.Verify(context.Background(), mitRequest()); err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if renderer.got.SchoolID != "1953" {
		t.Fatalf("expected card school id %q, got %q", "1953", renderer.got.SchoolID)
	}
	if renderer.got.SchoolName != "MIT" {
		t.Fatalf("expected card school name %q, got %q", "MIT", renderer.got.SchoolName)
	}
	if string(client.document.Data) != "png-bytes" {
		t.Fatalf("expected rendered card to be submitted, got %q", client.document.Data)
	}
}

func TestVerify_RenderFailureStopsBeforeFirstStep(t *testing.T) {
	client := &fakeClient{}
	renderer := &stubRenderer{err: errors.New("font missing")}
	recorder := &captureRecorder{}
	svc := NewService(client, nil, fixedGenerator{}, renderer, recorder, zap.NewNop())

	outcome, err := svc.Verify(context.Background(), mitRequest())
	if err != nil {
		t.Fatalf("Verify() should not fail for a render error: %v", err)
	}
	if outcome.Pending || outcome.Success {
		t.Fatalf("expected failure outcome, got %+v", outcome)
	}
	if len(client.calls) != 0 {
		t.Fatalf("no protocol step may be issued when rendering fails, calls: %v", client.calls)
	}
	if recorder.attempt == nil || recorder.attempt.Status != verification.AttemptStatusFailed {
		t.Fatalf("expected failed attempt record, got %+v", recorder.attempt)
	}
}

func TestVerify_SuccessStep(t *testing.T) {
	client := &fakeClient{
		personalInfoResp: &sheerid.StepResponse{CurrentStep: sheerid.StepDocUpload},
		documentResp:     &sheerid.StepResponse{CurrentStep: sheerid.StepSuccess},
	}
	svc := newTestService(client, nil)

	outcome, err := svc.Verify(context.Background(), mitRequest())
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if !outcome.Success || outcome.Pending {
		t.Fatalf("expected success outcome, got %+v", outcome)
	}
}
