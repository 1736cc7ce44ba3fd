package memory

import (
	"context"
	"iter"
	"slices"
	"sync"

	"flexible-project/domain/shared"
	"flexible-project/domain/user"
)

// UserRepository keeps users in process memory and evaluates filters
// directly with their SatisfiedBy methods.
type UserRepository struct {
	users map[user.ID]user.Data
	mu    sync.RWMutex
}

// NewUserRepository creates an empty in-memory user repository, optionally
// seeded with users.
func NewUserRepository(seed ...user.User) *UserRepository {
	repo := &UserRepository{
		users: make(map[user.ID]user.Data, len(seed)),
	}
	for _, u := range seed {
		repo.users[u.ID] = u.Data
	}
	return repo
}

func (r *UserRepository) Create(ctx context.Context, id user.ID, data user.Data) (user.User, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[id]; exists {
		return user.User{}, shared.NewConflictError("user", id.Erase(), nil)
	}
	r.users[id] = data
	return user.User{ID: id, Data: data}, nil
}

// Read snapshots the identifiers under the read lock, then evaluates and
// yields lazily without holding it, so consumers may call back into the
// repository while iterating.
func (r *UserRepository) Read(ctx context.Context, filters user.Filters) iter.Seq2[user.User, error] {
	return func(yield func(user.User, error) bool) {
		r.mu.RLock()
		ids := make([]user.ID, 0, len(r.users))
		for id := range r.users {
			ids = append(ids, id)
		}
		r.mu.RUnlock()
		slices.Sort(ids)

		for _, id := range ids {
			if err := ctx.Err(); err != nil {
				yield(user.User{}, err)
				return
			}

			r.mu.RLock()
			data, exists := r.users[id]
			r.mu.RUnlock()
			if !exists {
				continue
			}

			u := user.User{ID: id, Data: data}
			if !filters.SatisfiedBy(u) {
				continue
			}
			if !yield(u, nil) {
				return
			}
		}
	}
}

func (r *UserRepository) Update(ctx context.Context, id user.ID, data user.Data) (user.User, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[id]; !exists {
		return user.User{}, shared.NewNotFoundError("user", id.Erase())
	}
	r.users[id] = data
	return user.User{ID: id, Data: data}, nil
}

func (r *UserRepository) Delete(ctx context.Context, id user.ID) (user.User, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data, exists := r.users[id]
	if !exists {
		return user.User{}, shared.NewNotFoundError("user", id.Erase())
	}
	delete(r.users, id)
	return user.User{ID: id, Data: data}, nil
}

// Len reports how many users are stored.
func (r *UserRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

var _ user.Repository = (*UserRepository)(nil)
