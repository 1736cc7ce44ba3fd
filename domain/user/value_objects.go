package user

import (
	"regexp"
	"unicode"

	"flexible-project/pkg/validation"
)

const (
	NameMinLength        = 4
	NameMaxLength        = 32
	DisplayNameMaxLength = 128
	// EmailMaxLength and AvatarMaxLength match the storage column widths.
	EmailMaxLength  = 255
	AvatarMaxLength = 2048
)

// letters and digits, single separators strictly between them
var nameRegex = regexp.MustCompile(`^[A-Za-z0-9]+(?:[-_.][A-Za-z0-9]+)*$`)

// Name Value object - unique login name of a user.
// Content is preserved byte for byte; no case folding.
type Name struct {
	value string
}

// NewName Create new Name value object
func NewName(raw string) (Name, error) {
	if n := len(raw); n < NameMinLength || n > NameMaxLength {
		return Name{}, newInvalidNameError(raw, "length must be between 4 and 32")
	}
	if !nameRegex.MatchString(raw) {
		return Name{}, newInvalidNameError(raw, "only ASCII letters, digits and single inner separators are allowed")
	}
	return Name{value: raw}, nil
}

func (n Name) String() string { return n.value }

// DisplayName Value object - free form name shown to other users
type DisplayName struct {
	value string
}

// NewDisplayName Create new DisplayName value object
func NewDisplayName(raw string) (DisplayName, error) {
	if err := validation.Var(raw, "min=1,max=128"); err != nil {
		return DisplayName{}, newInvalidDisplayNameError(raw, err.Error())
	}
	if !containsLetter(raw) {
		return DisplayName{}, newInvalidDisplayNameError(raw, "must contain at least one letter")
	}
	return DisplayName{value: raw}, nil
}

func (n DisplayName) String() string { return n.value }

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// Email Value object - immutable, represents email address
type Email struct {
	value string
}

// NewEmail Create new Email value object
func NewEmail(raw string) (Email, error) {
	if err := validation.Var(raw, "required,max=255,email"); err != nil {
		return Email{}, newInvalidEmailError(raw, err.Error())
	}
	return Email{value: raw}, nil
}

func (e Email) String() string { return e.value }

// Avatar Value object - URL of the user picture
type Avatar struct {
	value string
}

// NewAvatar Create new Avatar value object
func NewAvatar(raw string) (Avatar, error) {
	if err := validation.Var(raw, "required,max=2048,url"); err != nil {
		return Avatar{}, newInvalidAvatarError(raw, err.Error())
	}
	return Avatar{value: raw}, nil
}

func (a Avatar) String() string { return a.value }

// MustName is NewName for literals known to be valid; it panics otherwise.
func MustName(raw string) Name { return must(NewName(raw)) }

func MustDisplayName(raw string) DisplayName { return must(NewDisplayName(raw)) }

func MustEmail(raw string) Email { return must(NewEmail(raw)) }

func MustAvatar(raw string) Avatar { return must(NewAvatar(raw)) }

func must[T any](value T, err error) T {
	if err != nil {
		panic(err)
	}
	return value
}
