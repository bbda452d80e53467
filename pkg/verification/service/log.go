package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/edverify/sheerid-verifier/pkg/verification"
)

const serviceName = "VerificationService"

// logService wraps Service with automatic logging of all method calls
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the verification Service.
// It logs method entry/exit, duration and errors.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger,
	}
}

// Verify wraps the service method with logging
func (ls *logService) Verify(
	ctx context.Context,
	req *verification.Request,
) (outcome *verification.Outcome, err error) {
	start := time.Now()

	ls.logger.Info("Verify started",
		zap.String("service", serviceName),
		zap.String("method", "Verify"),
		zap.String("verification_id", req.VerificationID),
	)

	defer func() {
		duration := time.Since(start)

		if err != nil {
			ls.logger.Error("Verify failed",
				zap.String("service", serviceName),
				zap.String("method", "Verify"),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
			return
		}

		ls.logger.Info("Verify completed",
			zap.String("service", serviceName),
			zap.String("method", "Verify"),
			zap.Duration("duration", duration),
			zap.String("status", outcomeStatus(outcome)),
		)
	}()

	outcome, err = ls.svc.Verify(ctx, req)
	return outcome, err
}
