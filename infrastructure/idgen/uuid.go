package idgen

import (
	"context"

	"flexible-project/domain/user"

	"github.com/google/uuid"
)

// UUIDGenerator issues random (version 4) UUIDs as user identifiers.
type UUIDGenerator struct {
	prefix string
}

// NewUUIDGenerator creates a generator; prefix, if not empty, is prepended
// to every identifier (e.g. "user-").
func NewUUIDGenerator(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

func (g *UUIDGenerator) Generate(ctx context.Context) (user.ID, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return user.ID(g.prefix + id.String()), nil
}

var _ user.IDGenerator = (*UUIDGenerator)(nil)
