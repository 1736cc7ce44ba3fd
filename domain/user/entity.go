package user

import "flexible-project/domain/shared"

// ID identifies a user. It cannot be mixed with identifiers of other
// entity kinds without an explicit conversion.
type ID = shared.ID[User]

// User entity
// Identity is the ID alone: two values with the same ID are the same user
// even when their data differ. Use Key for set/map membership.
type User struct {
	ID   ID
	Data Data
}

// Equal compares identity, not data.
func (u User) Equal(other User) bool { return u.ID == other.ID }

// Key returns the identity used for set membership.
func (u User) Key() ID { return u.ID }

// Data holds the value-typed fields of a user. Equality is structural over
// every field, including the contents of optional ones.
type Data struct {
	Name        Name
	DisplayName DisplayName
	Role        Role
	Email       *Email
	Avatar      *Avatar
}

func (d Data) Equal(other Data) bool {
	return d.Name == other.Name &&
		d.DisplayName == other.DisplayName &&
		d.Role == other.Role &&
		optionalEqual(d.Email, other.Email) &&
		optionalEqual(d.Avatar, other.Avatar)
}

func optionalEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// ============================================================================
// Replacement helpers
// ============================================================================
//
// Data is never mutated in place; each helper returns an updated copy.

func (d Data) WithName(name Name) Data {
	d.Name = name
	return d
}

func (d Data) WithDisplayName(displayName DisplayName) Data {
	d.DisplayName = displayName
	return d
}

func (d Data) WithRole(role Role) Data {
	d.Role = role
	return d
}

// WithEmail replaces the email; nil removes it.
func (d Data) WithEmail(email *Email) Data {
	d.Email = cloneOptional(email)
	return d
}

// WithAvatar replaces the avatar; nil removes it.
func (d Data) WithAvatar(avatar *Avatar) Data {
	d.Avatar = cloneOptional(avatar)
	return d
}

func cloneOptional[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
