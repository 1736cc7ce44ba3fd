package mongodb

import (
	"flexible-project/domain/filter"
	"flexible-project/domain/user"

	"go.mongodb.org/mongo-driver/bson"
)

// matchNothing selects no document: every document has an _id.
var matchNothing = bson.D{{Key: fieldID, Value: bson.D{{Key: "$exists", Value: false}}}}

// Query translates an entity filter group into a find filter. Every present
// operator contributes one clause of a top-level $and; the zero Filters
// yields an empty document, which matches everything.
func Query(filters user.Filters) bson.D {
	var clauses bson.A
	if filters.ID != nil {
		clauses = append(clauses, idClauses(*filters.ID)...)
	}
	if filters.Name != nil {
		clauses = append(clauses, valueClauses(fieldName, *filters.Name)...)
	}
	if filters.DisplayName != nil {
		clauses = append(clauses, valueClauses(fieldDisplayName, *filters.DisplayName)...)
	}
	if filters.Role != nil {
		clauses = append(clauses, roleClauses(*filters.Role)...)
	}
	if filters.Email != nil {
		clauses = append(clauses, optionalValueClauses(fieldEmail, *filters.Email)...)
	}
	if filters.Avatar != nil {
		clauses = append(clauses, optionalValueClauses(fieldAvatar, *filters.Avatar)...)
	}

	if len(clauses) == 0 {
		return bson.D{}
	}
	return bson.D{{Key: "$and", Value: clauses}}
}

func op(field, operator string, value any) bson.D {
	return bson.D{{Key: field, Value: bson.D{{Key: operator, Value: value}}}}
}

func stringValues[T interface{ String() string }](values []T) bson.A {
	out := make(bson.A, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}

func idClauses(f user.IDFilters) bson.A {
	var clauses bson.A
	if f.Eq != nil {
		clauses = append(clauses, op(fieldID, "$eq", f.Eq.Value.String()))
	}
	if f.Ne != nil {
		clauses = append(clauses, op(fieldID, "$ne", f.Ne.Value.String()))
	}
	if f.In != nil {
		clauses = append(clauses, op(fieldID, "$in", stringValues(f.In.Values)))
	}
	if f.Nin != nil {
		clauses = append(clauses, op(fieldID, "$nin", stringValues(f.Nin.Values)))
	}
	return clauses
}

func valueClauses[T user.Value](field string, f user.ValueFilters[T]) bson.A {
	var clauses bson.A
	if f.Eq != nil {
		clauses = append(clauses, op(field, "$eq", f.Eq.Value.String()))
	}
	if f.Ne != nil {
		clauses = append(clauses, op(field, "$ne", f.Ne.Value.String()))
	}
	if f.In != nil {
		clauses = append(clauses, op(field, "$in", stringValues(f.In.Values)))
	}
	if f.Nin != nil {
		clauses = append(clauses, op(field, "$nin", stringValues(f.Nin.Values)))
	}
	if f.Regex != nil {
		clauses = append(clauses, regex(field, f.Regex))
	}
	return clauses
}

// optionalValueClauses needs no special casing: $eq, $in and $regex never
// match a missing field while $ne and $nin always do.
func optionalValueClauses[T user.Value](field string, f user.OptionalValueFilters[T]) bson.A {
	clauses := valueClauses(field, user.ValueFilters[T]{Eq: f.Eq, Ne: f.Ne, In: f.In, Nin: f.Nin, Regex: f.Regex})
	if f.Exists != nil {
		clauses = append(clauses, op(field, "$exists", f.Exists.Value))
	}
	return clauses
}

func roleClauses(f user.RoleFilters) bson.A {
	var clauses bson.A
	if f.Eq != nil {
		clauses = append(clauses, op(fieldRole, "$eq", int(f.Eq.Value)))
	}
	if f.Ne != nil {
		clauses = append(clauses, op(fieldRole, "$ne", int(f.Ne.Value)))
	}
	if f.Lt != nil {
		clauses = append(clauses, op(fieldRole, "$lt", int(f.Lt.Value)))
	}
	if f.Le != nil {
		clauses = append(clauses, op(fieldRole, "$lte", int(f.Le.Value)))
	}
	if f.Gt != nil {
		clauses = append(clauses, op(fieldRole, "$gt", int(f.Gt.Value)))
	}
	if f.Ge != nil {
		clauses = append(clauses, op(fieldRole, "$gte", int(f.Ge.Value)))
	}
	if f.Between != nil {
		clauses = append(clauses, op(fieldRole, "$gt", int(f.Between.Min)), op(fieldRole, "$lt", int(f.Between.Max)))
	}
	if f.BetweenEqual != nil {
		clauses = append(clauses, op(fieldRole, "$gte", int(f.BetweenEqual.Min)), op(fieldRole, "$lte", int(f.BetweenEqual.Max)))
	}
	if f.NotBetween != nil {
		clauses = append(clauses, op(fieldRole, "$not", bson.D{
			{Key: "$gt", Value: int(f.NotBetween.Min)},
			{Key: "$lt", Value: int(f.NotBetween.Max)},
		}))
	}
	if f.NotBetweenEqual != nil {
		clauses = append(clauses, op(fieldRole, "$not", bson.D{
			{Key: "$gte", Value: int(f.NotBetweenEqual.Min)},
			{Key: "$lte", Value: int(f.NotBetweenEqual.Max)},
		}))
	}
	if f.In != nil {
		clauses = append(clauses, op(fieldRole, "$in", roleValues(f.In.Values)))
	}
	if f.Nin != nil {
		clauses = append(clauses, op(fieldRole, "$nin", roleValues(f.Nin.Values)))
	}
	return clauses
}

func roleValues(roles []user.Role) bson.A {
	out := make(bson.A, len(roles))
	for i, r := range roles {
		out[i] = int(r)
	}
	return out
}

func regex(field string, f *filter.Regex) bson.D {
	if !f.Valid() {
		return matchNothing
	}
	return op(field, "$regex", f.Pattern)
}
