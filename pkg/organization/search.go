package organization

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/edverify/sheerid-verifier/internal/metrics"
)

const (
	defaultSearchTimeout = 15 * time.Second
	defaultSearchCountry = "US"
	defaultSearchType    = "UNIVERSITY"
	defaultMaxResults    = 10

	// minQueryLength keeps the remote search from being hit with queries
	// too short to be useful.
	minQueryLength = 3

	maxSearchBodyBytes = 4 << 20
)

// ErrQueryTooShort is returned for search queries under three characters.
var ErrQueryTooShort = fmt.Errorf("search query must be at least %d characters", minQueryLength)

// SearchResult is one organization returned by the remote name search.
type SearchResult struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Domain  string `json:"domain,omitempty"`
	Country string `json:"country,omitempty"`
	Type    string `json:"type,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
}

// SearchConfig contains the settings for the organization search endpoint.
type SearchConfig struct {
	// URL is the full organization-search endpoint.
	URL string

	// Country and Type filter the results; defaults are US universities.
	Country string
	Type    string

	// MaxResults caps how many filtered results are returned.
	MaxResults int

	Timeout time.Duration
}

func (c *SearchConfig) validate() error {
	if c == nil {
		return errors.New("nil config")
	}
	if c.URL == "" {
		return errors.New("search url is required")
	}
	return nil
}

// SearchClient queries the remote organization search by name, filtered by
// country and institution type before results reach the caller.
type SearchClient struct {
	cfg        *SearchConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewSearchClient creates an organization search client.
func NewSearchClient(cfg *SearchConfig, logger *zap.Logger) (*SearchClient, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Country == "" {
		cfg.Country = defaultSearchCountry
	}
	if cfg.Type == "" {
		cfg.Type = defaultSearchType
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaultMaxResults
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultSearchTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SearchClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

// Search returns organizations whose name matches the query, keeping only
// the configured country and type.
func (s *SearchClient) Search(ctx context.Context, name string) ([]SearchResult, error) {
	if len(name) < minQueryLength {
		return nil, ErrQueryTooShort
	}

	params := url.Values{}
	params.Set("country", s.cfg.Country)
	params.Set("type", s.cfg.Type)
	params.Set("name", name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.URL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		metrics.OrganizationSearches.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("call organization search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.OrganizationSearches.WithLabelValues("error").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("organization search returned %d: %s", resp.StatusCode, string(body))
	}
	metrics.OrganizationSearches.WithLabelValues("ok").Inc()

	var results []SearchResult
	dec := json.NewDecoder(io.LimitReader(resp.Body, maxSearchBodyBytes))
	if err := dec.Decode(&results); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	filtered := make([]SearchResult, 0, len(results))
	for _, r := range results {
		if r.Type != s.cfg.Type || r.Country != s.cfg.Country {
			continue
		}
		filtered = append(filtered, r)
		if len(filtered) == s.cfg.MaxResults {
			break
		}
	}

	s.logger.Debug("organization search completed",
		zap.String("query", name),
		zap.Int("results", len(results)),
		zap.Int("filtered", len(filtered)))
	return filtered, nil
}
