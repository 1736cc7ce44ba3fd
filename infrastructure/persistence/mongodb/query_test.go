package mongodb

import (
	"testing"

	"flexible-project/domain/filter"
	"flexible-project/domain/user"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func and(clauses ...bson.D) bson.D {
	a := bson.A{}
	for _, c := range clauses {
		a = append(a, c)
	}
	return bson.D{{Key: "$and", Value: a}}
}

func TestQueryEmptyFiltersMatchesAll(t *testing.T) {
	assert.Equal(t, bson.D{}, Query(user.NewFilters()))
	assert.Equal(t, bson.D{}, Query(user.NewFilters().WithName(user.NameFilters{})))
}

func TestQueryValues(t *testing.T) {
	got := Query(user.NewFilters().
		WithID(user.IDFilters{Ne: filter.Ne[user.ID]("u-9")}).
		WithName(user.NameFilters{
			Eq:    filter.Eq(user.MustName("alice")),
			Nin:   filter.NoneOf(user.MustName("bobby")),
			Regex: filter.Matches("^al"),
		}).
		WithEmail(user.EmailFilters{Exists: filter.Eq(true)}))

	want := and(
		op(fieldID, "$ne", "u-9"),
		op(fieldName, "$eq", "alice"),
		op(fieldName, "$nin", bson.A{"bobby"}),
		op(fieldName, "$regex", "^al"),
		op(fieldEmail, "$exists", true),
	)
	assert.Equal(t, want, got)
}

func TestQueryRoleRanges(t *testing.T) {
	got := Query(user.NewFilters().WithRole(user.RoleFilters{
		Between:         filter.NewBetween(user.RoleUser, user.RoleAdministrator),
		NotBetweenEqual: filter.NewNotBetweenEqual(user.RoleModerator, user.RoleModerator),
		In:              filter.OneOf(user.RoleUser, user.RoleAdministrator),
	}))

	want := and(
		op(fieldRole, "$gt", 0),
		op(fieldRole, "$lt", 2),
		op(fieldRole, "$not", bson.D{{Key: "$gte", Value: 1}, {Key: "$lte", Value: 1}}),
		op(fieldRole, "$in", bson.A{0, 2}),
	)
	assert.Equal(t, want, got)
}

func TestQueryUnsatisfiableOperators(t *testing.T) {
	got := Query(user.NewFilters().WithAvatar(user.AvatarFilters{Regex: filter.Matches("[")}))
	assert.Equal(t, and(matchNothing), got)

	got = Query(user.NewFilters().WithName(user.NameFilters{In: filter.OneOf[user.Name]()}))
	assert.Equal(t, and(op(fieldName, "$in", bson.A{})), got, "an empty $in matches nothing on its own")
}
