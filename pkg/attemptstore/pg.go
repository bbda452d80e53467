package attemptstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/edverify/sheerid-verifier/pkg/verification"
)

type pgStore struct {
	db *bun.DB
}

// NewStore creates a new postgres implementation of the attempt store
func NewStore(db *bun.DB) *pgStore {
	return &pgStore{db: db}
}

func (s *pgStore) Record(ctx context.Context, attempt *verification.Attempt) error {
	dao := toAttemptDao(attempt)

	_, err := s.db.NewInsert().
		Model(dao).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to record attempt: %w", err)
	}

	return nil
}

func (s *pgStore) Get(ctx context.Context, id string) (*verification.Attempt, error) {
	dao := new(AttemptDao)

	err := s.db.NewSelect().
		Model(dao).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}

	return toAttempt(dao), nil
}

func (s *pgStore) List(ctx context.Context, opts ...QueryOption) ([]*verification.Attempt, error) {
	options := &QueryOptions{}
	for _, opt := range opts {
		opt(options)
	}

	var daos []*AttemptDao
	query := s.db.NewSelect().
		Model(&daos).
		Order("created_at DESC")

	if options.VerificationID != nil {
		query = query.Where("verification_id = ?", *options.VerificationID)
	}
	if options.Status != nil {
		query = query.Where("status = ?", *options.Status)
	}
	if options.Limit > 0 {
		query = query.Limit(options.Limit)
	}

	if err := query.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}

	attempts := make([]*verification.Attempt, 0, len(daos))
	for _, dao := range daos {
		attempts = append(attempts, toAttempt(dao))
	}
	return attempts, nil
}
