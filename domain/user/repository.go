package user

import (
	"context"
	"iter"
)

// Repository User repository interface
// The storage collaborator owns the translation of Filters into its native
// query language; the domain only hands over the filter tree.
type Repository interface {
	// Create stores a new user. Fails with shared.ErrConflict if id is taken.
	Create(ctx context.Context, id ID, data Data) (User, error)

	// Read lazily yields every user satisfying filters, in no particular
	// order. A failure is yielded as (User{}, err) and ends the sequence.
	// Stopping the iteration early releases the underlying cursor.
	Read(ctx context.Context, filters Filters) iter.Seq2[User, error]

	// Update replaces the data of an existing user. Fails with
	// shared.ErrNotFound if no user has id.
	Update(ctx context.Context, id ID, data Data) (User, error)

	// Delete removes an existing user and returns it. Fails with
	// shared.ErrNotFound if no user has id.
	Delete(ctx context.Context, id ID) (User, error)
}

// IDGenerator produces identifiers for new users.
type IDGenerator interface {
	Generate(ctx context.Context) (ID, error)
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func(ctx context.Context) (ID, error)

func (f IDGeneratorFunc) Generate(ctx context.Context) (ID, error) {
	return f(ctx)
}
