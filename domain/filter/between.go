package filter

import "cmp"

// Between is satisfied by inputs strictly inside (Min, Max).
// Both bounds are excluded, unlike BetweenEqual.
type Between[T cmp.Ordered] struct {
	Min T
	Max T
}

func (f Between[T]) SatisfiedBy(input T) bool {
	return f.Min < input && input < f.Max
}

// BetweenEqual is satisfied by inputs inside [Min, Max], bounds included.
type BetweenEqual[T cmp.Ordered] struct {
	Min T
	Max T
}

func (f BetweenEqual[T]) SatisfiedBy(input T) bool {
	return f.Min <= input && input <= f.Max
}

// NotBetween is the exact complement of Between: it accepts the bounds.
type NotBetween[T cmp.Ordered] struct {
	Min T
	Max T
}

func (f NotBetween[T]) SatisfiedBy(input T) bool {
	return input <= f.Min || f.Max <= input
}

// NotBetweenEqual is the exact complement of BetweenEqual: it rejects the bounds.
type NotBetweenEqual[T cmp.Ordered] struct {
	Min T
	Max T
}

func (f NotBetweenEqual[T]) SatisfiedBy(input T) bool {
	return input < f.Min || f.Max < input
}

// NewBetween builds the filter for the half-open style range min..max with
// both ends excluded.
func NewBetween[T cmp.Ordered](min, max T) *Between[T] {
	return &Between[T]{Min: min, Max: max}
}

// NewBetweenEqual builds the filter for the inclusive range min..=max.
func NewBetweenEqual[T cmp.Ordered](min, max T) *BetweenEqual[T] {
	return &BetweenEqual[T]{Min: min, Max: max}
}

func NewNotBetween[T cmp.Ordered](min, max T) *NotBetween[T] {
	return &NotBetween[T]{Min: min, Max: max}
}

func NewNotBetweenEqual[T cmp.Ordered](min, max T) *NotBetweenEqual[T] {
	return &NotBetweenEqual[T]{Min: min, Max: max}
}
