package filter

import (
	"iter"
	"slices"
)

// In is satisfied by inputs equal to one of Values. An empty set matches
// nothing.
type In[T comparable] struct {
	Values []T
}

func (f In[T]) SatisfiedBy(input T) bool {
	return slices.Contains(f.Values, input)
}

// NotIn is satisfied by inputs equal to none of Values. An empty set
// matches everything.
type NotIn[T comparable] struct {
	Values []T
}

func (f NotIn[T]) SatisfiedBy(input T) bool {
	return !slices.Contains(f.Values, input)
}

// OneOf creates a new In filter
func OneOf[T comparable](values ...T) *In[T] {
	return &In[T]{Values: values}
}

// NoneOf creates a new NotIn filter
func NoneOf[T comparable](values ...T) *NotIn[T] {
	return &NotIn[T]{Values: values}
}

// Contains is satisfied by collections holding at least one element equal
// to Value.
type Contains[T comparable] struct {
	Value T
}

func (f Contains[T]) SatisfiedBy(input []T) bool {
	return slices.Contains(input, f.Value)
}

// SatisfiedBySeq is SatisfiedBy for lazily produced collections. It stops
// pulling as soon as a match is found.
func (f Contains[T]) SatisfiedBySeq(input iter.Seq[T]) bool {
	for item := range input {
		if item == f.Value {
			return true
		}
	}
	return false
}

// NotContains is satisfied by collections holding no element equal to Value.
type NotContains[T comparable] struct {
	Value T
}

func (f NotContains[T]) SatisfiedBy(input []T) bool {
	return !slices.Contains(input, f.Value)
}

func (f NotContains[T]) SatisfiedBySeq(input iter.Seq[T]) bool {
	return !Contains[T](f).SatisfiedBySeq(input)
}
