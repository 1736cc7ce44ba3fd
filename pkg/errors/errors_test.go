package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	userapp "flexible-project/application/user"
	"flexible-project/domain/shared"
	"flexible-project/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useCaseError builds an error shaped like the ones ApplicationService
// returns: the kind joined with its cause.
func useCaseError(kind, cause error) error {
	if cause == nil {
		return fmt.Errorf("op: %w", kind)
	}
	return fmt.Errorf("op: %w: %w", kind, cause)
}

func TestMapError(t *testing.T) {
	_, invalidName := user.NewName("no spaces allowed")

	tests := []struct {
		name   string
		err    error
		code   ErrorCode
		status int
	}{
		{"no user", useCaseError(userapp.ErrNoUser, nil), CodeUserNotFound, http.StatusNotFound},
		{"name taken", useCaseError(userapp.ErrNameAlreadyTaken, nil), CodeNameExists, http.StatusConflict},
		{"email taken", useCaseError(userapp.ErrEmailAlreadyTaken, nil), CodeEmailExists, http.StatusConflict},
		{"id generation", useCaseError(userapp.ErrIDGeneration, errors.New("entropy")), CodeIDGeneration, http.StatusServiceUnavailable},
		{"uniqueness", useCaseError(userapp.ErrUniquenessViolated, nil), CodeUniquenessViolation, http.StatusInternalServerError},
		{"storage", useCaseError(userapp.ErrDatabase, errors.New("connection refused")), CodeStorage, http.StatusServiceUnavailable},
		{"lost race", useCaseError(userapp.ErrDatabase, shared.NewConflictError("user", "u-1", nil)), CodeConflict, http.StatusConflict},
		{"storage timeout", useCaseError(userapp.ErrDatabase, context.DeadlineExceeded), CodeTimeout, http.StatusGatewayTimeout},
		{"validation", invalidName, CodeValidation, http.StatusBadRequest},
		{"domain not found", shared.NewNotFoundError("user", "u-1"), CodeNotFound, http.StatusNotFound},
		{"canceled", context.Canceled, CodeCanceled, 499},
		{"unknown", errors.New("boom"), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := MapError(tt.err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, tt.status, appErr.HTTPStatusCode())
			assert.ErrorIs(t, appErr, tt.err)
		})
	}
}

func TestMapErrorValidationField(t *testing.T) {
	_, err := user.NewEmail("not-an-email")
	appErr := MapError(err)
	assert.Equal(t, "email", appErr.Field)
	assert.True(t, Is(appErr, CodeValidation))
}

func TestMapErrorPassesThrough(t *testing.T) {
	assert.Nil(t, MapError(nil))

	original := New(CodeBadRequest, "bad")
	assert.Same(t, original, MapError(fmt.Errorf("wrapped: %w", original)))
	assert.Equal(t, "BAD_REQUEST: bad", original.Error())
}
