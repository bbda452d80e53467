package service

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/edverify/sheerid-verifier/pkg/app/errors"
	apphttp "github.com/edverify/sheerid-verifier/pkg/app/http"
	"github.com/edverify/sheerid-verifier/pkg/organization"
	"github.com/edverify/sheerid-verifier/pkg/sheerid"
	"github.com/edverify/sheerid-verifier/pkg/verification"
)

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// verifyRequest is the wire form of a verification run. Callers pass
// either the full verification URL or the bare verification id.
type verifyRequest struct {
	VerificationURL string `json:"verification_url,omitempty"`

	verification.Request
}

// RegisterRoutes registers HTTP endpoints for the verification service on the given chi router
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Post("/verify", apphttp.HandleError(h.verify))
}

// verify handles HTTP requests
func (h *HTTP) verify(w http.ResponseWriter, r *http.Request) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20)) // 1MB limit
	if err != nil {
		return apperrors.BadRequestError(err, "failed to read request")
	}

	var req verifyRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return apperrors.BadRequestError(err, "invalid JSON")
	}

	if req.VerificationID == "" && req.VerificationURL != "" {
		vid, err := sheerid.ParseVerificationID(req.VerificationURL)
		if err != nil {
			return apperrors.BadRequestError(err, "no verification id in url")
		}
		req.VerificationID = vid
	}

	outcome, err := h.service.Verify(r.Context(), &req.Request)
	if err != nil {
		switch {
		case errors.Is(err, organization.ErrMissingOrganization):
			return apperrors.BadRequestError(err, "organization is required")
		case errors.Is(err, organization.ErrUnknownOrganization):
			return apperrors.BadRequestError(err, "unknown organization")
		default:
			return apperrors.BadRequestError(err, err.Error())
		}
	}

	h.writeJSON(w, http.StatusOK, outcome)
	return nil
}

func (h *HTTP) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
