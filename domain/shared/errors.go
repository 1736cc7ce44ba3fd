package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Sentinels matched with errors.Is. Storage collaborators and value
// constructors report through DomainError so that callers can match the
// sentinel and still read the entity, id and field involved.
var (
	// ErrNotFound no entity with the requested identifier exists
	ErrNotFound = errors.New("not found")

	// ErrConflict the identifier or a unique field value is already held
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput a value failed validation
	ErrInvalidInput = errors.New("invalid input")
)

// maxStackFrames bounds the frames kept by Stack.
const maxStackFrames = 10

// DomainError ties a sentinel to the entity it concerns. Cause, when set,
// is the collaborator error behind it (a driver duplicate-key error, say)
// and stays reachable through errors.Is and errors.As.
type DomainError struct {
	Err     error
	Entity  string
	ID      ErasedID
	Field   string
	Message string
	Cause   error

	stack []uintptr
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

// Stack renders the frames captured where the error was created as
// "file:line function", skipping runtime frames.
func (e *DomainError) Stack() []string {
	if len(e.stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(e.stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) >= maxStackFrames {
			break
		}
	}
	return result
}

// Stacker is implemented by errors that can report where they were created.
type Stacker interface {
	Stack() []string
}

// StackOf returns the creation stack of the first Stacker in err's tree.
func StackOf(err error) []string {
	var s Stacker
	if errors.As(err, &s) {
		return s.Stack()
	}
	return nil
}

// captureStack skips runtime.Callers, itself and the constructor calling it.
func captureStack() []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(3, pcs[:])
	return pcs[:n]
}

// NewNotFoundError reports that no entity has the given identifier.
func NewNotFoundError(entity string, id ErasedID) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		ID:      id,
		Message: fmt.Sprintf("%s %q not found", entity, id),
		stack:   captureStack(),
	}
}

// NewConflictError reports that writing the entity with the given id hit
// existing data: the id itself or a unique field. cause may be nil.
func NewConflictError(entity string, id ErasedID, cause error) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		ID:      id,
		Message: fmt.Sprintf("%s %q conflicts with existing data", entity, id),
		Cause:   cause,
		stack:   captureStack(),
	}
}

// NewValidationError wraps a field-specific sentinel so that both the
// sentinel and ErrInvalidInput match with errors.Is.
func NewValidationError(entity, field string, sentinel error, reason string) error {
	return &DomainError{
		Err:     errors.Join(sentinel, ErrInvalidInput),
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   captureStack(),
	}
}
