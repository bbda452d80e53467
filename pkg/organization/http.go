package organization

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/edverify/sheerid-verifier/pkg/app/errors"
	apphttp "github.com/edverify/sheerid-verifier/pkg/app/http"
)

// HTTP exposes the school catalog and the upstream search over HTTP.
type HTTP struct {
	catalog *Catalog
	search  *SearchClient
	logger  *zap.Logger
}

// RegisterRoutes registers catalog and search endpoints on the given chi router
func RegisterRoutes(r chi.Router, catalog *Catalog, search *SearchClient, logger *zap.Logger) {
	h := &HTTP{
		catalog: catalog,
		search:  search,
		logger:  logger,
	}

	r.Get("/organizations", apphttp.HandleError(h.list))
	r.Get("/organizations/search", apphttp.HandleError(h.searchUpstream))
}

func (h *HTTP) list(w http.ResponseWriter, _ *http.Request) error {
	if h.catalog == nil {
		return apperrors.NotSupportedError(nil, "no school catalog configured")
	}
	h.writeJSON(w, http.StatusOK, h.catalog.List())
	return nil
}

func (h *HTTP) searchUpstream(w http.ResponseWriter, r *http.Request) error {
	if h.search == nil {
		return apperrors.NotSupportedError(nil, "organization search not configured")
	}

	query := r.URL.Query().Get("name")
	results, err := h.search.Search(r.Context(), query)
	if err != nil {
		if errors.Is(err, ErrQueryTooShort) {
			return apperrors.BadRequestError(err, "search query too short")
		}
		return apperrors.DependencyFailureError(err, "organization search failed")
	}

	h.writeJSON(w, http.StatusOK, results)
	return nil
}

func (h *HTTP) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
