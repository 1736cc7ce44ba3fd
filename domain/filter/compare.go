package filter

import "cmp"

// Equal is satisfied by inputs equal to Value.
type Equal[T comparable] struct {
	Value T
}

func (f Equal[T]) SatisfiedBy(input T) bool { return input == f.Value }

// NotEqual is satisfied by inputs different from Value.
type NotEqual[T comparable] struct {
	Value T
}

func (f NotEqual[T]) SatisfiedBy(input T) bool { return input != f.Value }

// LessThan is satisfied by inputs strictly below Value.
type LessThan[T cmp.Ordered] struct {
	Value T
}

func (f LessThan[T]) SatisfiedBy(input T) bool { return input < f.Value }

// LessEqual is satisfied by inputs below or equal to Value.
type LessEqual[T cmp.Ordered] struct {
	Value T
}

func (f LessEqual[T]) SatisfiedBy(input T) bool { return input <= f.Value }

// GreaterThan is satisfied by inputs strictly above Value.
type GreaterThan[T cmp.Ordered] struct {
	Value T
}

func (f GreaterThan[T]) SatisfiedBy(input T) bool { return input > f.Value }

// GreaterEqual is satisfied by inputs above or equal to Value.
type GreaterEqual[T cmp.Ordered] struct {
	Value T
}

func (f GreaterEqual[T]) SatisfiedBy(input T) bool { return input >= f.Value }

func Eq[T comparable](value T) *Equal[T]        { return &Equal[T]{Value: value} }
func Ne[T comparable](value T) *NotEqual[T]     { return &NotEqual[T]{Value: value} }
func Lt[T cmp.Ordered](value T) *LessThan[T]     { return &LessThan[T]{Value: value} }
func Le[T cmp.Ordered](value T) *LessEqual[T]    { return &LessEqual[T]{Value: value} }
func Gt[T cmp.Ordered](value T) *GreaterThan[T]  { return &GreaterThan[T]{Value: value} }
func Ge[T cmp.Ordered](value T) *GreaterEqual[T] { return &GreaterEqual[T]{Value: value} }
