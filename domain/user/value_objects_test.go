package user

import (
	"errors"
	"strings"
	"testing"

	"flexible-project/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewName(t *testing.T) {
	valid := []string{"alice", "bob1", "john.doe", "a-b_c.d", "Xx_9", strings.Repeat("a", 32)}
	for _, raw := range valid {
		t.Run("valid "+raw, func(t *testing.T) {
			name, err := NewName(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, name.String())
		})
	}

	invalid := []string{
		"",
		"hi",
		"abc",
		"_leading",
		"trailing_",
		"double__sep",
		"mixed._sep",
		".dot",
		"with space",
		"Алиса",
		"名前です名前",
		strings.Repeat("a", 33),
	}
	for _, raw := range invalid {
		t.Run("invalid "+raw, func(t *testing.T) {
			_, err := NewName(raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidName))
			assert.True(t, errors.Is(err, shared.ErrInvalidInput))
		})
	}
}

func TestNewDisplayName(t *testing.T) {
	for _, raw := range []string{"Alice", "Алиса Петрова", "名前", "R2-D2", strings.Repeat("я", 128)} {
		name, err := NewDisplayName(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, raw, name.String())
	}

	for _, raw := range []string{"", "123", "!!! ---", strings.Repeat("я", 129)} {
		_, err := NewDisplayName(raw)
		assert.ErrorIs(t, err, ErrInvalidDisplayName, raw)
	}
}

func TestNewEmail(t *testing.T) {
	email, err := NewEmail("Alice@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice@Example.com", email.String(), "content is not case folded")

	for _, raw := range []string{"", "alice", "alice@", "@example.com", " alice@example.com"} {
		_, err := NewEmail(raw)
		assert.ErrorIs(t, err, ErrInvalidEmail, raw)
	}

	domain := strings.Repeat("d", 60) + "." + strings.Repeat("e", 60) + "." + strings.Repeat("f", 60) + ".com"
	tooLong := strings.Repeat("a", EmailMaxLength-len(domain)) + "@" + domain
	require.Len(t, tooLong, EmailMaxLength+1)
	_, err = NewEmail(tooLong)
	assert.ErrorIs(t, err, ErrInvalidEmail, "longer than the email column")
}

func TestNewAvatar(t *testing.T) {
	avatar, err := NewAvatar("https://cdn.example.com/u/1.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/u/1.png", avatar.String())

	for _, raw := range []string{"", "not a url", "/relative/path.png"} {
		_, err := NewAvatar(raw)
		assert.ErrorIs(t, err, ErrInvalidAvatar, raw)
	}

	prefix := "https://cdn.example.com/"
	longest := prefix + strings.Repeat("a", AvatarMaxLength-len(prefix))
	_, err = NewAvatar(longest)
	assert.NoError(t, err)
	_, err = NewAvatar(longest + "a")
	assert.ErrorIs(t, err, ErrInvalidAvatar, "longer than the avatar column")
}

func TestMustPanicsOnInvalidInput(t *testing.T) {
	assert.Panics(t, func() { MustName("x") })
	assert.NotPanics(t, func() { MustName("valid_name") })
}

func TestRole(t *testing.T) {
	var zero Role
	assert.Equal(t, RoleUser, zero)
	assert.True(t, RoleUser < RoleModerator && RoleModerator < RoleAdministrator)

	for _, role := range Roles() {
		parsed, err := ParseRole(role.String())
		require.NoError(t, err)
		assert.Equal(t, role, parsed)

		text, err := role.MarshalText()
		require.NoError(t, err)
		var back Role
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, role, back)
	}

	_, err := ParseRole("root")
	assert.ErrorIs(t, err, ErrInvalidRole)

	invalid := Role(42)
	assert.False(t, invalid.IsValid())
	assert.Equal(t, "unknown", invalid.String())
	_, err = invalid.MarshalText()
	assert.ErrorIs(t, err, ErrInvalidRole)
}
