package sheerid

import (
	"errors"
	"strings"
	"time"
)

const (
	// defaultRequestTimeout bounds the JSON protocol steps.
	defaultRequestTimeout = 30 * time.Second

	// defaultUploadTimeout bounds the binary document transfer, which is
	// larger and slower than the JSON calls and gets its own budget.
	defaultUploadTimeout = 60 * time.Second
)

// Config contains the settings required to talk to a SheerID verification
// service instance.
type Config struct {
	// BaseURL is the root of the verification service,
	// e.g. "https://services.sheerid.com".
	BaseURL string

	// ProgramID identifies the verification program; it is only used to
	// build the referer URL sent in step metadata.
	ProgramID string

	// RequestTimeout applies to the JSON protocol steps.
	// Zero means defaultRequestTimeout.
	RequestTimeout time.Duration

	// UploadTimeout applies to the binary document PUT.
	// Zero means defaultUploadTimeout.
	UploadTimeout time.Duration
}

func (c *Config) validate() error {
	if c == nil {
		return errors.New("nil config")
	}
	if c.BaseURL == "" {
		return errors.New("base_url is required")
	}
	if c.ProgramID == "" {
		return errors.New("program_id is required")
	}
	return nil
}

func (c *Config) requestTimeout() time.Duration {
	if c.RequestTimeout > 0 {
		return c.RequestTimeout
	}
	return defaultRequestTimeout
}

func (c *Config) uploadTimeout() time.Duration {
	if c.UploadTimeout > 0 {
		return c.UploadTimeout
	}
	return defaultUploadTimeout
}

func (c *Config) baseURL() string {
	return strings.TrimRight(c.BaseURL, "/")
}
