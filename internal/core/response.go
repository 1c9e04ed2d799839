// AngelaMos | 2026
// response.go

package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the uniform failure envelope: a success flag and a
// single human-readable message, nothing else.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // best-effort response write
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError renders an AppError with its own status; anything else is a
// 500 with a generic message so internals never leak to clients.
func JSONError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		WriteJSON(w, appErr.Status, ErrorResponse{
			Success: false,
			Message: appErr.Message,
		})
		return
	}

	slog.Error("unhandled error", "error", err)
	WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
		Success: false,
		Message: "Internal Server Error",
	})
}

func BadRequest(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{
		Success: false,
		Message: message,
	})
}

func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Authentication failed. Please login."
	}
	WriteJSON(w, http.StatusUnauthorized, ErrorResponse{
		Success: false,
		Message: message,
	})
}

// FormatValidationError flattens validator failures into one joined
// message string, mirroring how schema violations are reported.
func FormatValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request"
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, formatFieldError(fe))
	}

	return strings.Join(messages, ". ")
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s is not a valid email", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "number", "numeric":
		return fmt.Sprintf("%s must contain only digits", fe.Field())
	case "len":
		return fmt.Sprintf("%s must be %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
