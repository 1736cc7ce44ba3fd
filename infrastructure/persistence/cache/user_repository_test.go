package cache

import (
	"context"
	"iter"
	"testing"
	"time"

	"flexible-project/domain/filter"
	"flexible-project/domain/user"
	"flexible-project/infrastructure/metrics"
	"flexible-project/infrastructure/persistence/memory"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingRepository counts reads reaching the backend.
type countingRepository struct {
	*memory.UserRepository
	reads int
}

func (r *countingRepository) Read(ctx context.Context, filters user.Filters) iter.Seq2[user.User, error] {
	r.reads++
	return r.UserRepository.Read(ctx, filters)
}

type fixture struct {
	mr      *miniredis.Miniredis
	backend *countingRepository
	repo    *UserRepository
	metrics *metrics.Metrics
}

func setup(t *testing.T) fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	backend := &countingRepository{UserRepository: memory.NewUserRepository()}
	m := metrics.New(prometheus.NewRegistry(), "fp")
	return fixture{mr: mr, backend: backend, repo: NewUserRepository(backend, client, time.Minute, m), metrics: m}
}

func sampleData() user.Data {
	email := user.MustEmail("alice@example.com")
	return user.Data{Name: user.MustName("alice"), DisplayName: user.MustDisplayName("Alice"), Email: &email}
}

func collect(t *testing.T, seq iter.Seq2[user.User, error]) []user.User {
	t.Helper()
	var out []user.User
	for u, err := range seq {
		require.NoError(t, err)
		out = append(out, u)
	}
	return out
}

func TestCreateWarmsCache(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.repo.Create(ctx, "u-1", sampleData())
	require.NoError(t, err)
	assert.True(t, f.mr.Exists(Key("u-1")))
	assert.Equal(t, time.Minute, f.mr.TTL(Key("u-1")))

	found := collect(t, f.repo.Read(ctx, user.ByID("u-1")))
	require.Len(t, found, 1)
	assert.True(t, sampleData().Equal(found[0].Data))
	assert.Zero(t, f.backend.reads, "served from cache")
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CacheLookups.WithLabelValues(metrics.CacheHit)))
}

func TestReadMissPopulatesCache(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	_, err := f.backend.Create(ctx, "u-1", sampleData())
	require.NoError(t, err)

	collect(t, f.repo.Read(ctx, user.ByID("u-1")))
	collect(t, f.repo.Read(ctx, user.ByID("u-1")))

	assert.Equal(t, 1, f.backend.reads)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CacheLookups.WithLabelValues(metrics.CacheMiss)))

	assert.Empty(t, collect(t, f.repo.Read(ctx, user.ByID("missing"))))
	assert.False(t, f.mr.Exists(Key("missing")), "absence is not cached")
}

func TestOtherFiltersBypassCache(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	_, err := f.repo.Create(ctx, "u-1", sampleData())
	require.NoError(t, err)

	collect(t, f.repo.Read(ctx, user.ByName(user.MustName("alice"))))
	collect(t, f.repo.Read(ctx, user.ByID("u-1").WithRole(user.RoleFilters{Eq: filter.Eq(user.RoleUser)})))
	assert.Equal(t, 2, f.backend.reads)
}

func TestMutationsInvalidate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	_, err := f.repo.Create(ctx, "u-1", sampleData())
	require.NoError(t, err)

	data := sampleData().WithDisplayName(user.MustDisplayName("Alice A."))
	_, err = f.repo.Update(ctx, "u-1", data)
	require.NoError(t, err)
	assert.False(t, f.mr.Exists(Key("u-1")))

	found := collect(t, f.repo.Read(ctx, user.ByID("u-1")))
	require.Len(t, found, 1)
	assert.Equal(t, "Alice A.", found[0].Data.DisplayName.String())

	_, err = f.repo.Delete(ctx, "u-1")
	require.NoError(t, err)
	assert.Empty(t, collect(t, f.repo.Read(ctx, user.ByID("u-1"))))
}

func TestCorruptEntryFallsBackToBackend(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	_, err := f.backend.Create(ctx, "u-1", sampleData())
	require.NoError(t, err)
	require.NoError(t, f.mr.Set(Key("u-1"), "not msgpack"))

	found := collect(t, f.repo.Read(ctx, user.ByID("u-1")))
	require.Len(t, found, 1)
	assert.Equal(t, 1, f.backend.reads)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CacheLookups.WithLabelValues(metrics.CacheError)))
}

func TestRedisOutageDoesNotFailOperations(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.mr.Close()

	_, err := f.repo.Create(ctx, "u-1", sampleData())
	require.NoError(t, err)
	found := collect(t, f.repo.Read(ctx, user.ByID("u-1")))
	assert.Len(t, found, 1)
	_, err = f.repo.Delete(ctx, "u-1")
	assert.NoError(t, err)
}
