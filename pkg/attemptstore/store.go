// Package attemptstore persists the outcome of verification runs.
package attemptstore

import (
	"context"
	"errors"

	"github.com/edverify/sheerid-verifier/pkg/verification"
)

// ErrAttemptNotFound is returned when an attempt lookup finds no matching record.
var ErrAttemptNotFound = errors.New("attempt not found")

// Store defines the interface for attempt persistence
type Store interface {
	Record(ctx context.Context, attempt *verification.Attempt) error
	Get(ctx context.Context, id string) (*verification.Attempt, error)
	List(ctx context.Context, opts ...QueryOption) ([]*verification.Attempt, error)
}

// QueryOptions defines options for listing attempts
type QueryOptions struct {
	VerificationID *string
	Status         *string
	Limit          int
}

// QueryOption is a functional option for listing attempts
type QueryOption func(*QueryOptions)

// WithVerificationID sets the verification id filter
func WithVerificationID(verificationID string) QueryOption {
	return func(opts *QueryOptions) {
		opts.VerificationID = &verificationID
	}
}

// WithStatus sets the status filter
func WithStatus(status string) QueryOption {
	return func(opts *QueryOptions) {
		opts.Status = &status
	}
}

// WithLimit caps the number of returned attempts
func WithLimit(limit int) QueryOption {
	return func(opts *QueryOptions) {
		opts.Limit = limit
	}
}
