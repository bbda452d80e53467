package sheerid

import (
	"net/http"

	"go.uber.org/zap"
)

// Option configures client settings using the functional options pattern.
type Option func(*settings)

type settings struct {
	logger       *zap.Logger
	httpClient   *http.Client
	uploadClient *http.Client
}

// WithLogger sets a custom logger for the client.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithHTTPClient sets the HTTP client used for the JSON protocol steps.
func WithHTTPClient(c *http.Client) Option {
	return func(s *settings) { s.httpClient = c }
}

// WithUploadClient sets the HTTP client used for the binary document
// transfer. If unset, a dedicated client with the upload timeout is created.
func WithUploadClient(c *http.Client) Option {
	return func(s *settings) { s.uploadClient = c }
}

func applyOptions(opts []Option) settings {
	s := settings{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}
