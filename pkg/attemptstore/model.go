package attemptstore

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/edverify/sheerid-verifier/pkg/verification"
)

// AttemptDao is a data access object that maps directly to the 'attempts' table in PostgreSQL.
type AttemptDao struct {
	bun.BaseModel  `bun:"table:attempts,alias:a"`
	ID             string    `bun:"id,pk,type:varchar(36)"`
	VerificationID string    `bun:"verification_id,notnull,type:varchar(64)"`
	SchoolName     string    `bun:"school_name,notnull,type:varchar(255)"`
	Email          string    `bun:"email,notnull,type:varchar(255)"`
	Status         string    `bun:"status,notnull,type:varchar(16)"`
	Message        string    `bun:"message,type:text"`
	CreatedAt      time.Time `bun:"created_at,nullzero,default:current_timestamp"`
}

func toAttemptDao(attempt *verification.Attempt) *AttemptDao {
	return &AttemptDao{
		ID:             attempt.ID,
		VerificationID: attempt.VerificationID,
		SchoolName:     attempt.SchoolName,
		Email:          attempt.Email,
		Status:         attempt.Status,
		Message:        attempt.Message,
		CreatedAt:      attempt.CreatedAt,
	}
}

func toAttempt(dao *AttemptDao) *verification.Attempt {
	return &verification.Attempt{
		ID:             dao.ID,
		VerificationID: dao.VerificationID,
		SchoolName:     dao.SchoolName,
		Email:          dao.Email,
		Status:         dao.Status,
		Message:        dao.Message,
		CreatedAt:      dao.CreatedAt,
	}
}
