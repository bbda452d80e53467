package attemptstore

import (
	"context"
	"sort"
	"sync"

	"github.com/edverify/sheerid-verifier/pkg/verification"
)

// memoryStore keeps attempts in memory. Used when no database is configured.
type memoryStore struct {
	mu       sync.RWMutex
	attempts []*verification.Attempt
	byID     map[string]*verification.Attempt
}

// NewMemoryStore creates an in-memory implementation of the attempt store
func NewMemoryStore() *memoryStore {
	return &memoryStore{
		byID: make(map[string]*verification.Attempt),
	}
}

func (s *memoryStore) Record(_ context.Context, attempt *verification.Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *attempt
	s.attempts = append(s.attempts, &cp)
	s.byID[cp.ID] = &cp
	return nil
}

func (s *memoryStore) Get(_ context.Context, id string) (*verification.Attempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	attempt, ok := s.byID[id]
	if !ok {
		return nil, ErrAttemptNotFound
	}
	cp := *attempt
	return &cp, nil
}

func (s *memoryStore) List(_ context.Context, opts ...QueryOption) ([]*verification.Attempt, error) {
	options := &QueryOptions{}
	for _, opt := range opts {
		opt(options)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*verification.Attempt, 0, len(s.attempts))
	for _, attempt := range s.attempts {
		if options.VerificationID != nil && attempt.VerificationID != *options.VerificationID {
			continue
		}
		if options.Status != nil && attempt.Status != *options.Status {
			continue
		}
		cp := *attempt
		out = append(out, &cp)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if options.Limit > 0 && len(out) > options.Limit {
		out = out[:options.Limit]
	}
	return out, nil
}
