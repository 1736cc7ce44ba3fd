package user

import (
	"errors"
	"fmt"
)

// Kind sentinels. Every error returned by ApplicationService (other than
// value validation errors from CreateUserRequest) is an *Error whose Kind
// is one of these.
var (
	// ErrIDGeneration the identifier generator failed
	ErrIDGeneration = errors.New("user id generation failed")

	// ErrNameAlreadyTaken another user holds the requested name
	ErrNameAlreadyTaken = errors.New("user name already taken")

	// ErrEmailAlreadyTaken another user holds the requested email
	ErrEmailAlreadyTaken = errors.New("user email already taken")

	// ErrNoUser no user has the requested identifier
	ErrNoUser = errors.New("no such user")

	// ErrDatabase the repository failed
	ErrDatabase = errors.New("user storage failure")

	// ErrUniquenessViolated a lookup by a unique field matched more than one
	// user. Only returned in strict mode.
	ErrUniquenessViolated = errors.New("user uniqueness violated")
)

// Error is the use-case error. errors.Is matches both Kind and the wrapped
// cause.
type Error struct {
	Kind error
	Op   string
	Err  error
}

func newError(kind error, op string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Err: cause}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
