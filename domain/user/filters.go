package user

import (
	"flexible-project/domain/filter"
	"flexible-project/domain/shared"
)

// Value is implemented by the string-backed value objects of this package.
type Value interface {
	comparable
	String() string
}

// ValueFilters is the field filter group for a required string-backed
// value. Present operators are combined with AND; the regex is matched
// against String().
type ValueFilters[T Value] struct {
	Eq    *filter.Equal[T]
	Ne    *filter.NotEqual[T]
	In    *filter.In[T]
	Nin   *filter.NotIn[T]
	Regex *filter.Regex
}

func (f ValueFilters[T]) SatisfiedBy(value T) bool {
	return filter.Optional(f.Eq, value) &&
		filter.Optional(f.Ne, value) &&
		filter.Optional(f.In, value) &&
		filter.Optional(f.Nin, value) &&
		filter.Optional(f.Regex, value.String())
}

func (f ValueFilters[T]) IsEmpty() bool {
	return f.Eq == nil && f.Ne == nil && f.In == nil && f.Nin == nil && f.Regex == nil
}

// OptionalValueFilters is the field filter group for a value that may be
// absent. For an absent value Eq, In and Regex fail while Ne and Nin pass;
// Exists compares presence.
type OptionalValueFilters[T Value] struct {
	Eq     *filter.Equal[T]
	Ne     *filter.NotEqual[T]
	In     *filter.In[T]
	Nin    *filter.NotIn[T]
	Regex  *filter.Regex
	Exists *filter.Equal[bool]
}

func (f OptionalValueFilters[T]) SatisfiedBy(value *T) bool {
	if !filter.Optional(f.Exists, value != nil) {
		return false
	}
	if value == nil {
		return f.Eq == nil && f.In == nil && f.Regex == nil
	}
	return filter.Optional(f.Eq, *value) &&
		filter.Optional(f.Ne, *value) &&
		filter.Optional(f.In, *value) &&
		filter.Optional(f.Nin, *value) &&
		filter.Optional(f.Regex, (*value).String())
}

func (f OptionalValueFilters[T]) IsEmpty() bool {
	return f.Eq == nil && f.Ne == nil && f.In == nil && f.Nin == nil && f.Regex == nil && f.Exists == nil
}

type (
	IDFilters          = shared.IDFilters[User]
	NameFilters        = ValueFilters[Name]
	DisplayNameFilters = ValueFilters[DisplayName]
	EmailFilters       = OptionalValueFilters[Email]
	AvatarFilters      = OptionalValueFilters[Avatar]
)

// RoleFilters is the field filter group for Role, which is ordered.
type RoleFilters struct {
	Eq              *filter.Equal[Role]
	Ne              *filter.NotEqual[Role]
	Lt              *filter.LessThan[Role]
	Le              *filter.LessEqual[Role]
	Gt              *filter.GreaterThan[Role]
	Ge              *filter.GreaterEqual[Role]
	Between         *filter.Between[Role]
	BetweenEqual    *filter.BetweenEqual[Role]
	NotBetween      *filter.NotBetween[Role]
	NotBetweenEqual *filter.NotBetweenEqual[Role]
	In              *filter.In[Role]
	Nin             *filter.NotIn[Role]
}

func (f RoleFilters) SatisfiedBy(role Role) bool {
	return filter.Optional(f.Eq, role) &&
		filter.Optional(f.Ne, role) &&
		filter.Optional(f.Lt, role) &&
		filter.Optional(f.Le, role) &&
		filter.Optional(f.Gt, role) &&
		filter.Optional(f.Ge, role) &&
		filter.Optional(f.Between, role) &&
		filter.Optional(f.BetweenEqual, role) &&
		filter.Optional(f.NotBetween, role) &&
		filter.Optional(f.NotBetweenEqual, role) &&
		filter.Optional(f.In, role) &&
		filter.Optional(f.Nin, role)
}

// Filters is the entity filter group for users. A nil group constrains
// nothing, so the zero value matches every user.
type Filters struct {
	ID          *IDFilters
	Name        *NameFilters
	DisplayName *DisplayNameFilters
	Role        *RoleFilters
	Email       *EmailFilters
	Avatar      *AvatarFilters
}

func (f Filters) SatisfiedBy(u User) bool {
	return filter.Optional(f.ID, u.ID) &&
		filter.Optional(f.Name, u.Data.Name) &&
		filter.Optional(f.DisplayName, u.Data.DisplayName) &&
		filter.Optional(f.Role, u.Data.Role) &&
		filter.Optional(f.Email, u.Data.Email) &&
		filter.Optional(f.Avatar, u.Data.Avatar)
}

// ============================================================================
// Builders
// ============================================================================

// NewFilters starts an unconstrained filter tree.
func NewFilters() Filters { return Filters{} }

func (f Filters) WithID(g IDFilters) Filters {
	f.ID = &g
	return f
}

func (f Filters) WithName(g NameFilters) Filters {
	f.Name = &g
	return f
}

func (f Filters) WithDisplayName(g DisplayNameFilters) Filters {
	f.DisplayName = &g
	return f
}

func (f Filters) WithRole(g RoleFilters) Filters {
	f.Role = &g
	return f
}

func (f Filters) WithEmail(g EmailFilters) Filters {
	f.Email = &g
	return f
}

func (f Filters) WithAvatar(g AvatarFilters) Filters {
	f.Avatar = &g
	return f
}

// ByID matches the user with the given identifier.
func ByID(id ID) Filters {
	return NewFilters().WithID(IDFilters{Eq: filter.Eq(id)})
}

// ByName matches the user holding name.
func ByName(name Name) Filters {
	return NewFilters().WithName(NameFilters{Eq: filter.Eq(name)})
}

// ByEmail matches the user holding email.
func ByEmail(email Email) Filters {
	return NewFilters().WithEmail(EmailFilters{Eq: filter.Eq(email)})
}
