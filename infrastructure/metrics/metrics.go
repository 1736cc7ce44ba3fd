// Package metrics exposes Prometheus collectors for user storage.
package metrics

import (
	"context"
	"errors"

	"flexible-project/domain/shared"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeConflict = "conflict"
	OutcomeCanceled = "canceled"
	OutcomeError    = "error"
)

// Cache result label values.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Metrics groups the collectors registered by New.
type Metrics struct {
	RepositoryOperations *prometheus.CounterVec
	RepositoryDuration   *prometheus.HistogramVec
	UsersStreamed        *prometheus.CounterVec
	CacheLookups         *prometheus.CounterVec
}

// New registers the collectors with reg. Use a fresh prometheus.Registry
// per App; registering twice on the same registry panics.
func New(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RepositoryOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "user_repository_operations_total",
				Help:      "Total number of user repository operations",
			},
			[]string{"backend", "operation", "outcome"},
		),
		RepositoryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "user_repository_operation_duration_seconds",
				Help:      "Time taken by user repository operations; reads are timed until the stream ends",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"backend", "operation"},
		),
		UsersStreamed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "user_repository_streamed_users_total",
				Help:      "Total number of users yielded by repository reads",
			},
			[]string{"backend"},
		),
		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "user_cache_lookups_total",
				Help:      "Total number of user cache lookups by result",
			},
			[]string{"result"},
		),
	}
}

// Outcome classifies err for the outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, shared.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, shared.ErrConflict):
		return OutcomeConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	default:
		return OutcomeError
	}
}

// ObserveCache counts one cache lookup. It is a no-op on nil Metrics.
func (m *Metrics) ObserveCache(result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}
