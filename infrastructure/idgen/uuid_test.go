package idgen

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDGenerator(t *testing.T) {
	gen := NewUUIDGenerator("user-")

	first, err := gen.Generate(context.Background())
	require.NoError(t, err)
	second, err := gen.Generate(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	require.True(t, strings.HasPrefix(first.String(), "user-"))

	parsed, err := uuid.Parse(strings.TrimPrefix(first.String(), "user-"))
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
}

func TestUUIDGeneratorHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewUUIDGenerator("").Generate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
