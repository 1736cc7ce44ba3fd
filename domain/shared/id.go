package shared

import "flexible-project/domain/filter"

// ID identifies an entity of kind E. The type parameter only tags the
// identifier: ID[User] and ID[Project] do not mix without an explicit
// conversion, and both cost exactly one string.
type ID[E any] string

// ErasedID is an identifier whose owning entity kind has been forgotten.
type ErasedID string

// NewID tags a raw identifier with its owner.
func NewID[E any](raw string) ID[E] {
	return ID[E](raw)
}

// WithOwner re-tags an erased identifier.
func WithOwner[E any](id ErasedID) ID[E] {
	return ID[E](id)
}

func (id ID[E]) Erase() ErasedID { return ErasedID(id) }
func (id ID[E]) String() string  { return string(id) }
func (id ID[E]) IsZero() bool    { return id == "" }

func (id ErasedID) String() string { return string(id) }

// IDFilters is the field filter group for identifiers. Present operators
// are combined with AND.
type IDFilters[E any] struct {
	Eq  *filter.Equal[ID[E]]
	Ne  *filter.NotEqual[ID[E]]
	In  *filter.In[ID[E]]
	Nin *filter.NotIn[ID[E]]
}

func (f IDFilters[E]) SatisfiedBy(id ID[E]) bool {
	return filter.Optional(f.Eq, id) &&
		filter.Optional(f.Ne, id) &&
		filter.Optional(f.In, id) &&
		filter.Optional(f.Nin, id)
}

// IsEmpty reports whether no operator is set.
func (f IDFilters[E]) IsEmpty() bool {
	return f.Eq == nil && f.Ne == nil && f.In == nil && f.Nin == nil
}
