/*
Package filter defines composable, side-effect free predicates over typed
inputs.

Filters are plain values. Field groups in the domain packages hold them as
optional pointers: a nil filter constrains nothing, which makes it the
identity element of AND composition. There is deliberately no OR.
*/
package filter

// Filter is a pure predicate over T.
type Filter[T any] interface {
	// SatisfiedBy reports whether input passes the filter.
	SatisfiedBy(input T) bool
}

// Func adapts an ordinary function to Filter.
type Func[T any] func(input T) bool

// SatisfiedBy calls f(input).
func (f Func[T]) SatisfiedBy(input T) bool {
	return f(input)
}

// Optional evaluates an optional filter: an absent filter is satisfied by
// every input.
func Optional[T any, F Filter[T]](f *F, input T) bool {
	if f == nil {
		return true
	}
	return (*f).SatisfiedBy(input)
}

// Not is the logical negation of Inner.
type Not[T any] struct {
	Inner Filter[T]
}

// SatisfiedBy returns true if the inner filter is NOT satisfied
func (f Not[T]) SatisfiedBy(input T) bool {
	return !f.Inner.SatisfiedBy(input)
}

// Negate creates a new Not filter
func Negate[T any](inner Filter[T]) *Not[T] {
	return &Not[T]{Inner: inner}
}

// All is the logical AND of every filter it holds. An empty All is
// satisfied by everything.
type All[T any] []Filter[T]

// SatisfiedBy returns true if every filter is satisfied
func (all All[T]) SatisfiedBy(input T) bool {
	for _, f := range all {
		if f != nil && !f.SatisfiedBy(input) {
			return false
		}
	}
	return true
}

// And creates a new All filter from the given filters
func And[T any](filters ...Filter[T]) All[T] {
	return All[T](filters)
}
