// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrDuplicateKey  = errors.New("duplicate key")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("token invalid")
	ErrTokenMissing  = errors.New("token missing")
	ErrSoleSuper     = errors.New("superadmin already exists")
	ErrUpstream      = errors.New("upstream failure")
)

// AppError is a domain error carrying the HTTP status it renders with.
type AppError struct {
	Err     error
	Message string
	Status  int
	Code    string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(err error, message string, status int, code string) *AppError {
	return &AppError{
		Err:     err,
		Message: message,
		Status:  status,
		Code:    code,
	}
}

func ValidationError(message string) *AppError {
	return NewAppError(
		ErrInvalidInput,
		message,
		http.StatusBadRequest,
		"VALIDATION_ERROR",
	)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(
		ErrUnauthorized,
		message,
		http.StatusUnauthorized,
		"UNAUTHORIZED",
	)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(
		ErrForbidden,
		message,
		http.StatusForbidden,
		"FORBIDDEN",
	)
}

func NotFoundError(message string) *AppError {
	return NewAppError(
		ErrNotFound,
		message,
		http.StatusNotFound,
		"NOT_FOUND",
	)
}

// ConflictError renders with 400, not 409: the original API surfaced
// duplicate registrations and the second-SuperAdmin case as plain bad
// requests and clients depend on that.
func ConflictError(message string) *AppError {
	return NewAppError(
		ErrDuplicateKey,
		message,
		http.StatusBadRequest,
		"CONFLICT",
	)
}

func UpstreamError(message string) *AppError {
	return NewAppError(
		ErrUpstream,
		message,
		http.StatusInternalServerError,
		"UPSTREAM_ERROR",
	)
}

func MissingTokenError() *AppError {
	return NewAppError(
		ErrTokenMissing,
		"Token is not available",
		http.StatusBadRequest,
		"TOKEN_MISSING",
	)
}

func TokenInvalidError() *AppError {
	return NewAppError(
		ErrTokenInvalid,
		"Token invalid or expired",
		http.StatusUnauthorized,
		"TOKEN_INVALID",
	)
}

func TokenExpiredError() *AppError {
	return NewAppError(
		ErrTokenExpired,
		"Token invalid or expired",
		http.StatusUnauthorized,
		"TOKEN_EXPIRED",
	)
}
