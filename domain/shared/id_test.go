package shared

import (
	"errors"
	"fmt"
	"testing"

	"flexible-project/domain/filter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type project struct{}
type member struct{}

func TestIDEraseAndRetag(t *testing.T) {
	id := NewID[project]("p-1")
	erased := id.Erase()
	assert.Equal(t, ErasedID("p-1"), erased)

	back := WithOwner[project](erased)
	assert.Equal(t, id, back)

	other := WithOwner[member](erased)
	assert.Equal(t, id.String(), other.String())
}

func TestIDOrderingDelegatesToString(t *testing.T) {
	a, b := NewID[project]("a"), NewID[project]("b")
	assert.True(t, a < b)
	assert.True(t, filter.Lt(b).SatisfiedBy(a))

	set := map[ID[project]]int{a: 1}
	set[NewID[project]("a")]++
	assert.Equal(t, 2, set[a])
}

func TestIDFilters(t *testing.T) {
	a, b, c := NewID[project]("a"), NewID[project]("b"), NewID[project]("c")

	assert.True(t, IDFilters[project]{}.IsEmpty())
	assert.True(t, IDFilters[project]{}.SatisfiedBy(a))

	f := IDFilters[project]{In: filter.OneOf(a, b), Ne: filter.Ne(b)}
	assert.False(t, f.IsEmpty())
	assert.True(t, f.SatisfiedBy(a))
	assert.False(t, f.SatisfiedBy(b))
	assert.False(t, f.SatisfiedBy(c))

	assert.True(t, IDFilters[project]{Eq: filter.Eq(c)}.SatisfiedBy(c))
	assert.False(t, IDFilters[project]{Nin: filter.NoneOf(c)}.SatisfiedBy(c))
}

func TestDomainErrors(t *testing.T) {
	err := NewNotFoundError("user", "u-1")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), `"u-1"`)

	var domainErr *DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "user", domainErr.Entity)
	assert.NotEmpty(t, domainErr.Stack())

	sentinel := errors.New("bad name")
	err = NewValidationError("user", "name", sentinel, "bad name: x")
	assert.True(t, errors.Is(err, sentinel))
	assert.True(t, errors.Is(err, ErrInvalidInput))

	cause := errors.New("Duplicate entry 'alice' for key 'users.name'")
	err = NewConflictError("user", "u-2", cause)
	assert.True(t, errors.Is(err, ErrConflict))
	assert.True(t, errors.Is(err, cause), "the collaborator error stays reachable")
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "Duplicate entry")
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, ErasedID("u-2"), domainErr.ID)

	assert.NotEmpty(t, StackOf(fmt.Errorf("wrapped: %w", err)))
	assert.Nil(t, StackOf(cause))
}
