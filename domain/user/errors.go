/*
Package user 定义用户领域：值对象、实体、过滤器与仓储契约。
*/
package user

import (
	"errors"

	"flexible-project/domain/shared"
)

const entityName = "user"

var (
	ErrInvalidName        = errors.New("invalid user name")
	ErrInvalidDisplayName = errors.New("invalid display name")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidAvatar      = errors.New("invalid avatar url")
	ErrInvalidRole        = errors.New("invalid role")
)

func newInvalidNameError(raw, reason string) error {
	return shared.NewValidationError(entityName, "name", ErrInvalidName, "invalid user name "+quote(raw)+": "+reason)
}

func newInvalidDisplayNameError(raw, reason string) error {
	return shared.NewValidationError(entityName, "display_name", ErrInvalidDisplayName, "invalid display name "+quote(raw)+": "+reason)
}

func newInvalidEmailError(raw, reason string) error {
	return shared.NewValidationError(entityName, "email", ErrInvalidEmail, "invalid email "+quote(raw)+": "+reason)
}

func newInvalidAvatarError(raw, reason string) error {
	return shared.NewValidationError(entityName, "avatar", ErrInvalidAvatar, "invalid avatar url "+quote(raw)+": "+reason)
}

func newInvalidRoleError(raw string) error {
	return shared.NewValidationError(entityName, "role", ErrInvalidRole, "invalid role "+quote(raw))
}

func quote(s string) string {
	const limit = 64
	if len(s) > limit {
		s = s[:limit] + "..."
	}
	return `"` + s + `"`
}
