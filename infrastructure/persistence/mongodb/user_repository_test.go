package mongodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"flexible-project/domain/filter"
	"flexible-project/domain/shared"
	"flexible-project/domain/user"
	"flexible-project/infrastructure/persistence/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func sampleData() user.Data {
	email := user.MustEmail("alice@example.com")
	return user.Data{
		Name:        user.MustName("alice"),
		DisplayName: user.MustDisplayName("Alice"),
		Role:        user.RoleAdministrator,
		Email:       &email,
	}
}

func fastRetry() retry.Config {
	cfg := retry.DefaultConfig
	cfg.InitialDelay = time.Millisecond
	cfg.MaxDelay = time.Millisecond
	return cfg
}

var duplicateKey = mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}

func TestDocumentRoundTrip(t *testing.T) {
	doc := fromDomain("u-1", sampleData())
	assert.Equal(t, "u-1", doc.ID)
	assert.Equal(t, 2, doc.Role)
	assert.Nil(t, doc.Avatar)

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)
	var fields bson.M
	require.NoError(t, bson.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, fieldAvatar, "absent values are omitted")

	u, err := doc.toDomain()
	require.NoError(t, err)
	assert.Equal(t, user.ID("u-1"), u.ID)
	assert.True(t, sampleData().Equal(u.Data))
}

func TestDocumentRejectsCorruptValues(t *testing.T) {
	_, err := userDocument{ID: "u-1", Name: "alice", DisplayName: "Alice", Role: -1}.toDomain()
	assert.ErrorIs(t, err, user.ErrInvalidRole)

	_, err = userDocument{ID: "u-1", Name: "a b", DisplayName: "Alice"}.toDomain()
	assert.ErrorIs(t, err, user.ErrInvalidName)
}

func TestCreate(t *testing.T) {
	coll := newFakeCollection()
	repo := NewUserRepository(coll, fastRetry())

	created, err := repo.Create(context.Background(), "u-1", sampleData())
	require.NoError(t, err)
	assert.Equal(t, user.ID("u-1"), created.ID)
	assert.Contains(t, coll.docs, "u-1")

	coll.insertErr = duplicateKey
	_, err = repo.Create(context.Background(), "u-2", sampleData())
	assert.ErrorIs(t, err, shared.ErrConflict)
}

func TestCreateIsNotRepeatedAfterNetworkError(t *testing.T) {
	coll := newFakeCollection()
	coll.lostReplyErr = mongo.CommandError{Labels: []string{"NetworkError"}}
	repo := NewUserRepository(coll, fastRetry())

	_, err := repo.Create(context.Background(), "u-1", sampleData())
	require.Error(t, err)
	assert.NotErrorIs(t, err, shared.ErrConflict)
	assert.Equal(t, 1, coll.insertCalls)
	assert.Contains(t, coll.docs, "u-1")
}

func TestReadStreamsCursor(t *testing.T) {
	other := fromDomain("u-2", sampleData())
	other.Name = "bobby"
	coll := newFakeCollection()
	coll.cursor = &fakeCursor{docs: []userDocument{fromDomain("u-1", sampleData()), other}}
	repo := NewUserRepository(coll, fastRetry())

	filters := user.NewFilters().WithRole(user.RoleFilters{Eq: filter.Eq(user.RoleAdministrator)})
	var ids []user.ID
	for u, err := range repo.Read(context.Background(), filters) {
		require.NoError(t, err)
		ids = append(ids, u.ID)
	}

	assert.Equal(t, []user.ID{"u-1", "u-2"}, ids)
	assert.Equal(t, Query(filters), coll.lastFilter)
	assert.True(t, coll.cursor.closed)
}

func TestReadStopsEarly(t *testing.T) {
	coll := newFakeCollection()
	coll.cursor = &fakeCursor{docs: []userDocument{fromDomain("u-1", sampleData()), fromDomain("u-2", sampleData())}}
	repo := NewUserRepository(coll, fastRetry())

	for range repo.Read(context.Background(), user.NewFilters()) {
		break
	}
	assert.Equal(t, 1, coll.cursor.decoded)
	assert.True(t, coll.cursor.closed)
}

func TestReadYieldsErrors(t *testing.T) {
	t.Run("find retries network errors", func(t *testing.T) {
		coll := newFakeCollection()
		coll.findErrs = []error{mongo.CommandError{Labels: []string{"NetworkError"}}}
		coll.cursor = &fakeCursor{}
		repo := NewUserRepository(coll, fastRetry())

		for _, err := range repo.Read(context.Background(), user.NewFilters()) {
			require.NoError(t, err)
		}
		assert.Equal(t, 2, coll.findCalls)
	})

	t.Run("cursor failure", func(t *testing.T) {
		cursorErr := errors.New("cursor killed")
		coll := newFakeCollection()
		coll.cursor = &fakeCursor{err: cursorErr}
		repo := NewUserRepository(coll, fastRetry())

		var errs []error
		for _, err := range repo.Read(context.Background(), user.NewFilters()) {
			errs = append(errs, err)
		}
		require.Len(t, errs, 1)
		assert.ErrorIs(t, errs[0], cursorErr)
	})

	t.Run("corrupt document", func(t *testing.T) {
		coll := newFakeCollection()
		coll.cursor = &fakeCursor{docs: []userDocument{{ID: "u-1", Name: "x"}}}
		repo := NewUserRepository(coll, fastRetry())

		var errs []error
		for _, err := range repo.Read(context.Background(), user.NewFilters()) {
			errs = append(errs, err)
		}
		require.Len(t, errs, 1)
		assert.ErrorIs(t, errs[0], user.ErrInvalidName)
		assert.True(t, coll.cursor.closed)
	})
}

func TestUpdate(t *testing.T) {
	coll := newFakeCollection()
	coll.docs["u-1"] = fromDomain("u-1", sampleData())
	repo := NewUserRepository(coll, fastRetry())

	data := sampleData()
	data.DisplayName = user.MustDisplayName("Alice A.")
	updated, err := repo.Update(context.Background(), "u-1", data)
	require.NoError(t, err)
	assert.Equal(t, "Alice A.", updated.Data.DisplayName.String())
	assert.Equal(t, "Alice A.", coll.docs["u-1"].DisplayName)

	_, err = repo.Update(context.Background(), "missing", data)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	coll.replaceErr = mongo.CommandError{Code: 11000, Message: "E11000 duplicate key"}
	_, err = repo.Update(context.Background(), "u-1", data)
	assert.ErrorIs(t, err, shared.ErrConflict)
}

func TestDelete(t *testing.T) {
	coll := newFakeCollection()
	coll.docs["u-1"] = fromDomain("u-1", sampleData())
	repo := NewUserRepository(coll, fastRetry())

	deleted, err := repo.Delete(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", deleted.Data.Name.String())
	assert.Empty(t, coll.docs)

	_, err = repo.Delete(context.Background(), "u-1")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteIsNotRepeatedAfterNetworkError(t *testing.T) {
	coll := newFakeCollection()
	coll.docs["u-1"] = fromDomain("u-1", sampleData())
	coll.lostReplyErr = mongo.CommandError{Labels: []string{"NetworkError"}}
	repo := NewUserRepository(coll, fastRetry())

	_, err := repo.Delete(context.Background(), "u-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, shared.ErrNotFound)
	assert.Equal(t, 1, coll.deleteCalls)
}

func TestUserIndexes(t *testing.T) {
	indexes := UserIndexes()
	require.Len(t, indexes, 3)
	assert.True(t, *indexes[0].Options.Unique)
	assert.True(t, *indexes[1].Options.Unique)
	assert.True(t, *indexes[1].Options.Sparse, "users without an email do not collide")
}
