package metrics

import (
	"context"
	"iter"
	"time"

	"flexible-project/domain/user"
)

// UserRepository records operation counts and latencies of the wrapped
// repository under a backend label.
type UserRepository struct {
	next    user.Repository
	backend string
	metrics *Metrics
}

// InstrumentUserRepository wraps repo. A nil m returns repo unchanged.
func InstrumentUserRepository(repo user.Repository, backend string, m *Metrics) user.Repository {
	if m == nil {
		return repo
	}
	return &UserRepository{next: repo, backend: backend, metrics: m}
}

func (r *UserRepository) observe(operation string, start time.Time, err error) {
	r.metrics.RepositoryOperations.WithLabelValues(r.backend, operation, Outcome(err)).Inc()
	r.metrics.RepositoryDuration.WithLabelValues(r.backend, operation).Observe(time.Since(start).Seconds())
}

func (r *UserRepository) Create(ctx context.Context, id user.ID, data user.Data) (user.User, error) {
	start := time.Now()
	u, err := r.next.Create(ctx, id, data)
	r.observe("create", start, err)
	return u, err
}

// Read is observed once per stream, when it ends or the consumer stops.
func (r *UserRepository) Read(ctx context.Context, filters user.Filters) iter.Seq2[user.User, error] {
	return func(yield func(user.User, error) bool) {
		start := time.Now()
		var streamErr error
		var yielded float64
		defer func() {
			r.metrics.UsersStreamed.WithLabelValues(r.backend).Add(yielded)
			r.observe("read", start, streamErr)
		}()

		for u, err := range r.next.Read(ctx, filters) {
			if err != nil {
				streamErr = err
			} else {
				yielded++
			}
			if !yield(u, err) {
				return
			}
		}
	}
}

func (r *UserRepository) Update(ctx context.Context, id user.ID, data user.Data) (user.User, error) {
	start := time.Now()
	u, err := r.next.Update(ctx, id, data)
	r.observe("update", start, err)
	return u, err
}

func (r *UserRepository) Delete(ctx context.Context, id user.ID) (user.User, error) {
	start := time.Now()
	u, err := r.next.Delete(ctx, id)
	r.observe("delete", start, err)
	return u, err
}

var _ user.Repository = (*UserRepository)(nil)
