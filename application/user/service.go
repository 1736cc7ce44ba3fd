package user

import (
	"context"
	"errors"

	"flexible-project/domain/shared"
	"flexible-project/domain/user"
	"flexible-project/pkg/logger"

	"go.uber.org/zap"
)

// ApplicationService User application service - orchestrates the user use
// cases over a repository and an identifier generator.
//
// Every use case is a linear pipeline: the first failing step returns and
// nothing is written before the final repository call. Uniqueness probes are
// read-then-write; storage-level unique indexes remain the source of truth
// when two invocations race.
type ApplicationService struct {
	repo   user.Repository
	ids    user.IDGenerator
	logger *zap.Logger
	strict bool
}

// Option configures an ApplicationService.
type Option func(*ApplicationService)

// WithLogger sets the logger used for uniqueness violations and mutations.
func WithLogger(l *zap.Logger) Option {
	return func(s *ApplicationService) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStrictUniqueness makes a unique-field lookup matching more than one
// user fail with ErrUniquenessViolated instead of only logging it.
func WithStrictUniqueness(strict bool) Option {
	return func(s *ApplicationService) {
		s.strict = strict
	}
}

// NewApplicationService Create user application service
func NewApplicationService(repo user.Repository, ids user.IDGenerator, opts ...Option) *ApplicationService {
	s := &ApplicationService{
		repo:   repo,
		ids:    ids,
		logger: logger.With(zap.String("component", "user_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ============================================================================
// Queries
// ============================================================================

// FindOneByID returns the user with id, or nil if there is none.
func (s *ApplicationService) FindOneByID(ctx context.Context, id user.ID) (*user.User, error) {
	return s.findOne(ctx, "find user by id", "id", user.ByID(id))
}

// FindOneByName returns the user holding name, or nil if there is none.
func (s *ApplicationService) FindOneByName(ctx context.Context, name user.Name) (*user.User, error) {
	return s.findOne(ctx, "find user by name", "name", user.ByName(name))
}

// FindOneByEmail returns the user holding email, or nil if there is none.
func (s *ApplicationService) FindOneByEmail(ctx context.Context, email user.Email) (*user.User, error) {
	return s.findOne(ctx, "find user by email", "email", user.ByEmail(email))
}

// List materialises every user matching filters.
func (s *ApplicationService) List(ctx context.Context, filters user.Filters) ([]user.User, error) {
	var users []user.User
	for u, err := range s.repo.Read(ctx, filters) {
		if err != nil {
			return nil, newError(ErrDatabase, "list users", err)
		}
		users = append(users, u)
	}
	return users, nil
}

// findOne takes the first user from an equality read on a unique field and
// probes for a second one. A second match means the stored data break the
// uniqueness invariant: it is always logged, and returned as an error only
// in strict mode.
func (s *ApplicationService) findOne(ctx context.Context, op, field string, filters user.Filters) (*user.User, error) {
	var found *user.User
	for u, err := range s.repo.Read(ctx, filters) {
		if err != nil {
			return nil, newError(ErrDatabase, op, err)
		}
		if found == nil {
			found = &u
			continue
		}

		logger.FromContext(ctx, s.logger).Error("unique field matched more than one user",
			zap.String("field", field),
			zap.String("first_id", found.ID.String()),
			zap.String("second_id", u.ID.String()),
		)
		if s.strict {
			return nil, newError(ErrUniquenessViolated, op, nil)
		}
		break
	}
	return found, nil
}

// ============================================================================
// Commands
// ============================================================================

// Create stores a new user under a freshly generated identifier after
// checking that its name and email (if any) are free.
func (s *ApplicationService) Create(ctx context.Context, data user.Data) (*user.User, error) {
	const op = "create user"

	id, err := s.ids.Generate(ctx)
	if err != nil {
		return nil, newError(ErrIDGeneration, op, err)
	}

	holder, err := s.findOne(ctx, op, "name", user.ByName(data.Name))
	if err != nil {
		return nil, err
	}
	if holder != nil {
		return nil, newError(ErrNameAlreadyTaken, op, nil)
	}

	if data.Email != nil {
		holder, err := s.findOne(ctx, op, "email", user.ByEmail(*data.Email))
		if err != nil {
			return nil, err
		}
		if holder != nil {
			return nil, newError(ErrEmailAlreadyTaken, op, nil)
		}
	}

	created, err := s.repo.Create(ctx, id, data)
	if err != nil {
		return nil, s.storageError(ctx, op, err)
	}

	logger.FromContext(ctx, s.logger).Debug("user created", zap.String("user_id", created.ID.String()))
	return &created, nil
}

// UpdateName renames a user. Keeping the current name is not a conflict.
func (s *ApplicationService) UpdateName(ctx context.Context, id user.ID, name user.Name) (*user.User, error) {
	const op = "update user name"

	holder, err := s.findOne(ctx, op, "name", user.ByName(name))
	if err != nil {
		return nil, err
	}
	if holder != nil && holder.ID != id {
		return nil, newError(ErrNameAlreadyTaken, op, nil)
	}

	return s.update(ctx, op, id, func(d user.Data) user.Data { return d.WithName(name) })
}

// UpdateEmail replaces a user's email; nil removes it and skips the
// uniqueness probe.
func (s *ApplicationService) UpdateEmail(ctx context.Context, id user.ID, email *user.Email) (*user.User, error) {
	const op = "update user email"

	if email != nil {
		holder, err := s.findOne(ctx, op, "email", user.ByEmail(*email))
		if err != nil {
			return nil, err
		}
		if holder != nil && holder.ID != id {
			return nil, newError(ErrEmailAlreadyTaken, op, nil)
		}
	}

	return s.update(ctx, op, id, func(d user.Data) user.Data { return d.WithEmail(email) })
}

// UpdateDisplayName replaces a user's display name.
func (s *ApplicationService) UpdateDisplayName(ctx context.Context, id user.ID, displayName user.DisplayName) (*user.User, error) {
	return s.update(ctx, "update user display name", id, func(d user.Data) user.Data {
		return d.WithDisplayName(displayName)
	})
}

// UpdateRole replaces a user's role.
func (s *ApplicationService) UpdateRole(ctx context.Context, id user.ID, role user.Role) (*user.User, error) {
	return s.update(ctx, "update user role", id, func(d user.Data) user.Data {
		return d.WithRole(role)
	})
}

// UpdateAvatar replaces a user's avatar; nil removes it.
func (s *ApplicationService) UpdateAvatar(ctx context.Context, id user.ID, avatar *user.Avatar) (*user.User, error) {
	return s.update(ctx, "update user avatar", id, func(d user.Data) user.Data {
		return d.WithAvatar(avatar)
	})
}

func (s *ApplicationService) update(ctx context.Context, op string, id user.ID, merge func(user.Data) user.Data) (*user.User, error) {
	current, err := s.findOne(ctx, op, "id", user.ByID(id))
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, newError(ErrNoUser, op, nil)
	}

	updated, err := s.repo.Update(ctx, id, merge(current.Data))
	if err != nil {
		return nil, s.storageError(ctx, op, err)
	}

	logger.FromContext(ctx, s.logger).Debug("user updated", zap.String("op", op), zap.String("user_id", id.String()))
	return &updated, nil
}

// Delete removes an existing user and returns it.
func (s *ApplicationService) Delete(ctx context.Context, id user.ID) (*user.User, error) {
	const op = "delete user"

	current, err := s.findOne(ctx, op, "id", user.ByID(id))
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, newError(ErrNoUser, op, nil)
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, s.storageError(ctx, op, err)
	}

	logger.FromContext(ctx, s.logger).Debug("user deleted", zap.String("user_id", id.String()))
	return &deleted, nil
}

// storageError classifies a failed repository write. Not found means the
// user vanished after the lookup; a conflict means a concurrent write took
// the id or a unique value first.
func (s *ApplicationService) storageError(ctx context.Context, op string, err error) *Error {
	log := logger.FromContext(ctx, s.logger)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return newError(ErrNoUser, op, err)
	case errors.Is(err, shared.ErrConflict):
		log.Warn("user write lost a uniqueness race", zap.String("op", op), zap.Error(err))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
	default:
		log.Error("user storage failed", zap.String("op", op), zap.Error(err),
			zap.Strings("origin", shared.StackOf(err)))
	}
	return newError(ErrDatabase, op, err)
}
