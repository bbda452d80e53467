package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/edverify/sheerid-verifier/pkg/organization"
	"github.com/edverify/sheerid-verifier/pkg/verification"
)

// staticService answers every Verify call with the same result.
type staticService struct {
	req     *verification.Request
	outcome *verification.Outcome
	err     error
}

func (s *staticService) Verify(_ context.Context, req *verification.Request) (*verification.Outcome, error) {
	s.req = req
	return s.outcome, s.err
}

func newVerifyTestServer(svc Service) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, svc, zap.NewNop())
	return r
}

func TestVerifyHTTP_InvalidJSON_ReturnsBadRequest(t *testing.T) {
	handler := newVerifyTestServer(&staticService{})

	req := httptest.NewRequest(http.MethodPost, "/verify", bytes.NewBufferString("{invalid"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}

	var got struct {
		Error string `json:"error"`
		Code  int    `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response JSON: %v", err)
	}
	if got.Error != "invalid JSON" {
		t.Fatalf("expected error %q, got %q", "invalid JSON", got.Error)
	}
}

func TestVerifyHTTP_ExtractsVerificationIDFromURL(t *testing.T) {
	svc := &staticService{
		outcome: &verification.Outcome{Pending: true, VerificationID: "68af2c1d9be2a1"},
	}
	handler := newVerifyTestServer(svc)

	body := `{"verification_url":"https://services.example.com/verify/123/?verificationId=68af2c1d9be2a1","organization":{"id":1953,"name":"MIT"}}`
	req := httptest.NewRequest(http.MethodPost, "/verify", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	if svc.req == nil || svc.req.VerificationID != "68af2c1d9be2a1" {
		t.Fatalf("expected extracted verification id, got %+v", svc.req)
	}
}

func TestVerifyHTTP_URLWithoutVerificationID_ReturnsBadRequest(t *testing.T) {
	handler := newVerifyTestServer(&staticService{})

	body := `{"verification_url":"https://services.example.com/verify/123/"}`
	req := httptest.NewRequest(http.MethodPost, "/verify", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestVerifyHTTP_MissingOrganization_ReturnsBadRequest(t *testing.T) {
	svc := &staticService{err: organization.ErrMissingOrganization}
	handler := newVerifyTestServer(svc)

	body := `{"verification_id":"68af2c1d9be2a1"}`
	req := httptest.NewRequest(http.MethodPost, "/verify", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}

	var got struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response JSON: %v", err)
	}
	if got.Error != "organization is required" {
		t.Fatalf("unexpected error message %q", got.Error)
	}
}

func TestVerifyHTTP_OutcomePassedThrough(t *testing.T) {
	svc := &staticService{
		outcome: &verification.Outcome{
			Pending:        true,
			Message:        verification.PendingMessage,
			VerificationID: "68af2c1d9be2a1",
			StudentInfo: &verification.StudentInfo{
				FirstName:  "John",
				LastName:   "Doe",
				Email:      "ABCD1234@MIT.EDU",
				SchoolName: "MIT",
			},
		},
	}
	handler := newVerifyTestServer(svc)

	body := `{"verification_id":"68af2c1d9be2a1","organization":{"catalog_key":"mit"}}`
	req := httptest.NewRequest(http.MethodPost, "/verify", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var got verification.Outcome
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response JSON: %v", err)
	}
	if !got.Pending || got.Message != verification.PendingMessage {
		t.Fatalf("unexpected outcome %+v", got)
	}
	if got.StudentInfo == nil || got.StudentInfo.SchoolName != "MIT" {
		t.Fatalf("unexpected student info %+v", got.StudentInfo)
	}
}
