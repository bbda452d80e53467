package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// VerificationsTotal counts finished verification runs by terminal status
	VerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verifier_verifications_total",
			Help: "Total number of verification runs",
		},
		[]string{"status"},
	)

	// VerificationDuration tracks end-to-end run time
	VerificationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "verifier_verification_duration_seconds",
			Help:    "Verification run duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// StepFailures counts protocol step failures by step name
	StepFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verifier_step_failures_total",
			Help: "Total number of failed protocol steps",
		},
		[]string{"step"},
	)

	// DocumentBytes tracks the size of uploaded documents
	DocumentBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "verifier_document_bytes",
			Help:    "Size of uploaded verification documents in bytes",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
		},
	)

	// OrganizationSearches counts upstream organization search calls
	OrganizationSearches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verifier_organization_searches_total",
			Help: "Total number of organization search calls",
		},
		[]string{"status"},
	)
)
