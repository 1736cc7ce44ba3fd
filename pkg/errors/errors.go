package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	userapp "flexible-project/application/user"
	"flexible-project/domain/shared"
)

// ErrorCode 错误码
type ErrorCode string

const (
	// 通用错误码
	CodeInternal   ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest ErrorCode = "BAD_REQUEST"
	CodeNotFound   ErrorCode = "NOT_FOUND"
	CodeConflict   ErrorCode = "CONFLICT"
	CodeValidation ErrorCode = "VALIDATION_ERROR"
	CodeCanceled   ErrorCode = "CANCELED"
	CodeTimeout    ErrorCode = "TIMEOUT"

	// 业务错误码
	CodeUserNotFound        ErrorCode = "USER_NOT_FOUND"
	CodeNameExists          ErrorCode = "NAME_EXISTS"
	CodeEmailExists         ErrorCode = "EMAIL_EXISTS"
	CodeIDGeneration        ErrorCode = "ID_GENERATION_FAILED"
	CodeStorage             ErrorCode = "STORAGE_ERROR"
	CodeUniquenessViolation ErrorCode = "UNIQUENESS_VIOLATED"
)

// AppError 应用错误
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatusCode 返回对应的HTTP状态码
func (e *AppError) HTTPStatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound, CodeUserNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeNameExists, CodeEmailExists:
		return http.StatusConflict
	case CodeTimeout:
		return http.StatusGatewayTimeout
	case CodeCanceled:
		return 499
	case CodeStorage, CodeIDGeneration:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// New 创建新错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// Is 检查是否为特定错误码
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// MapError translates use-case and domain errors into an AppError. The
// use-case kind decides the code; the cause only refines the message.
func MapError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, userapp.ErrNoUser):
		return Wrap(err, CodeUserNotFound, "user not found")
	case errors.Is(err, userapp.ErrNameAlreadyTaken):
		return Wrap(err, CodeNameExists, "user name already taken")
	case errors.Is(err, userapp.ErrEmailAlreadyTaken):
		return Wrap(err, CodeEmailExists, "email already taken")
	case errors.Is(err, userapp.ErrIDGeneration):
		return Wrap(err, CodeIDGeneration, "could not allocate a user id")
	case errors.Is(err, userapp.ErrUniquenessViolated):
		return Wrap(err, CodeUniquenessViolation, "stored users violate uniqueness")
	case errors.Is(err, userapp.ErrDatabase):
		return mapStorageError(err)
	}

	return mapDomainError(err)
}

// mapStorageError keeps storage failures opaque except for the outcomes a
// caller can act on.
func mapStorageError(err error) *AppError {
	switch {
	case errors.Is(err, context.Canceled):
		return Wrap(err, CodeCanceled, "request canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return Wrap(err, CodeTimeout, "storage timed out")
	case errors.Is(err, shared.ErrConflict):
		return Wrap(err, CodeConflict, "concurrent change collided with an existing user")
	}
	return Wrap(err, CodeStorage, "storage unavailable")
}

func mapDomainError(err error) *AppError {
	var domainErr *shared.DomainError
	switch {
	case errors.Is(err, shared.ErrInvalidInput):
		appErr := Wrap(err, CodeValidation, err.Error())
		if errors.As(err, &domainErr) {
			appErr.Field = domainErr.Field
		}
		return appErr
	case errors.Is(err, shared.ErrNotFound):
		return Wrap(err, CodeNotFound, err.Error())
	case errors.Is(err, shared.ErrConflict):
		return Wrap(err, CodeConflict, err.Error())
	case errors.Is(err, context.Canceled):
		return Wrap(err, CodeCanceled, "request canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return Wrap(err, CodeTimeout, "request timed out")
	}
	return Wrap(err, CodeInternal, "internal error")
}
