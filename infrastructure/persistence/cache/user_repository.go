// Package cache keeps users looked up by id in Redis in front of another
// repository.
package cache

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"flexible-project/domain/user"
	"flexible-project/infrastructure/metrics"
	"flexible-project/pkg/logger"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
)

const (
	// KeyPrefix namespaces cached users.
	KeyPrefix = "fp:user:"

	DefaultTTL = 5 * time.Minute
)

// entry is the cached form of a user. Values are revalidated on decode.
type entry struct {
	ID          string  `msgpack:"id"`
	Name        string  `msgpack:"name"`
	DisplayName string  `msgpack:"display_name"`
	Role        uint8   `msgpack:"role"`
	Email       *string `msgpack:"email,omitempty"`
	Avatar      *string `msgpack:"avatar,omitempty"`
}

func newEntry(u user.User) entry {
	e := entry{
		ID:          u.ID.String(),
		Name:        u.Data.Name.String(),
		DisplayName: u.Data.DisplayName.String(),
		Role:        uint8(u.Data.Role),
	}
	if u.Data.Email != nil {
		email := u.Data.Email.String()
		e.Email = &email
	}
	if u.Data.Avatar != nil {
		avatar := u.Data.Avatar.String()
		e.Avatar = &avatar
	}
	return e
}

func (e entry) toDomain() (user.User, error) {
	name, err := user.NewName(e.Name)
	if err != nil {
		return user.User{}, err
	}
	displayName, err := user.NewDisplayName(e.DisplayName)
	if err != nil {
		return user.User{}, err
	}
	role := user.Role(e.Role)
	if !role.IsValid() {
		return user.User{}, user.ErrInvalidRole
	}
	data := user.Data{Name: name, DisplayName: displayName, Role: role}
	if e.Email != nil {
		email, err := user.NewEmail(*e.Email)
		if err != nil {
			return user.User{}, err
		}
		data.Email = &email
	}
	if e.Avatar != nil {
		avatar, err := user.NewAvatar(*e.Avatar)
		if err != nil {
			return user.User{}, err
		}
		data.Avatar = &avatar
	}
	return user.User{ID: user.ID(e.ID), Data: data}, nil
}

// UserRepository serves reads that select exactly one id from Redis and
// passes everything else to the wrapped repository. Mutations drop the
// cached entry. Redis failures are logged and never fail an operation.
type UserRepository struct {
	next    user.Repository
	client  redis.UniversalClient
	ttl     time.Duration
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewUserRepository wraps next. A non-positive ttl means DefaultTTL; m may
// be nil.
func NewUserRepository(next user.Repository, client redis.UniversalClient, ttl time.Duration, m *metrics.Metrics) *UserRepository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &UserRepository{
		next:    next,
		client:  client,
		ttl:     ttl,
		metrics: m,
		logger:  logger.With(zap.String("component", "user_cache")),
	}
}

// Key returns the Redis key of a user id.
func Key(id user.ID) string {
	return KeyPrefix + id.String()
}

// singleID reports the id when filters is exactly an id equality.
func singleID(filters user.Filters) (user.ID, bool) {
	f := filters.ID
	if f == nil || f.Eq == nil || f.Ne != nil || f.In != nil || f.Nin != nil {
		return "", false
	}
	if filters.Name != nil || filters.DisplayName != nil || filters.Role != nil ||
		filters.Email != nil || filters.Avatar != nil {
		return "", false
	}
	return f.Eq.Value, true
}

func (r *UserRepository) get(ctx context.Context, id user.ID) (user.User, bool) {
	raw, err := r.client.Get(ctx, Key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		r.metrics.ObserveCache(metrics.CacheMiss)
		return user.User{}, false
	}
	if err != nil {
		r.metrics.ObserveCache(metrics.CacheError)
		logger.FromContext(ctx, r.logger).Warn("Failed to read cached user", zap.String("id", id.String()), zap.Error(err))
		return user.User{}, false
	}

	var e entry
	if err := msgpack.Unmarshal(raw, &e); err != nil {
		return r.discard(ctx, id, err)
	}
	u, err := e.toDomain()
	if err != nil {
		return r.discard(ctx, id, err)
	}
	r.metrics.ObserveCache(metrics.CacheHit)
	return u, true
}

func (r *UserRepository) discard(ctx context.Context, id user.ID, cause error) (user.User, bool) {
	r.metrics.ObserveCache(metrics.CacheError)
	logger.FromContext(ctx, r.logger).Warn("Dropping corrupt cached user", zap.String("id", id.String()), zap.Error(cause))
	r.invalidate(ctx, id)
	return user.User{}, false
}

func (r *UserRepository) set(ctx context.Context, u user.User) {
	raw, err := msgpack.Marshal(newEntry(u))
	if err == nil {
		err = r.client.Set(ctx, Key(u.ID), raw, r.ttl).Err()
	}
	if err != nil {
		logger.FromContext(ctx, r.logger).Warn("Failed to cache user", zap.String("id", u.ID.String()), zap.Error(err))
	}
}

func (r *UserRepository) invalidate(ctx context.Context, id user.ID) {
	if err := r.client.Del(context.WithoutCancel(ctx), Key(id)).Err(); err != nil {
		logger.FromContext(ctx, r.logger).Warn("Failed to invalidate cached user", zap.String("id", id.String()), zap.Error(err))
	}
}

func (r *UserRepository) Create(ctx context.Context, id user.ID, data user.Data) (user.User, error) {
	u, err := r.next.Create(ctx, id, data)
	if err != nil {
		return u, err
	}
	r.set(ctx, u)
	return u, nil
}

// Read serves an id lookup from the cache, falling back to the wrapped
// repository and caching its single result.
func (r *UserRepository) Read(ctx context.Context, filters user.Filters) iter.Seq2[user.User, error] {
	id, ok := singleID(filters)
	if !ok {
		return r.next.Read(ctx, filters)
	}
	return func(yield func(user.User, error) bool) {
		if err := ctx.Err(); err != nil {
			yield(user.User{}, err)
			return
		}
		if u, hit := r.get(ctx, id); hit {
			yield(u, nil)
			return
		}

		var found []user.User
		for u, err := range r.next.Read(ctx, filters) {
			if err != nil {
				yield(user.User{}, err)
				return
			}
			found = append(found, u)
			if !yield(u, nil) {
				return
			}
		}
		// More than one user for an id is left for the caller to notice;
		// it is not cached.
		if len(found) == 1 {
			r.set(ctx, found[0])
		}
	}
}

func (r *UserRepository) Update(ctx context.Context, id user.ID, data user.Data) (user.User, error) {
	defer r.invalidate(ctx, id)
	return r.next.Update(ctx, id, data)
}

func (r *UserRepository) Delete(ctx context.Context, id user.ID) (user.User, error) {
	defer r.invalidate(ctx, id)
	return r.next.Delete(ctx, id)
}

// NewClient creates a Redis client and verifies the connection.
func NewClient(ctx context.Context, addr, password string, db, poolSize int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		PoolSize: poolSize,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}
	return client, nil
}

var _ user.Repository = (*UserRepository)(nil)
