package verification

import "time"

// Attempt statuses recorded after a run reaches a terminal state.
const (
	AttemptStatusSuccess = "success"
	AttemptStatusPending = "pending"
	AttemptStatusFailed  = "failed"
)

// Attempt is the stored record of one verification run.
type Attempt struct {
	ID             string
	VerificationID string
	SchoolName     string
	Email          string
	Status         string
	Message        string
	CreatedAt      time.Time
}
