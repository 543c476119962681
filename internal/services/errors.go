package services

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/alimgiray/coursetrack/internal/bitbucket"
	"github.com/alimgiray/coursetrack/internal/repositories"
)

// AppError carries a client facing code and HTTP status alongside the underlying error
type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func ErrBadRequest(msg string) *AppError {
	return &AppError{Code: "BAD_REQUEST", Message: msg, Status: http.StatusBadRequest}
}

func ErrNotFound(msg string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: msg, Status: http.StatusNotFound}
}

func ErrConflict(msg string) *AppError {
	return &AppError{Code: "CONFLICT", Message: msg, Status: http.StatusConflict}
}

// ErrWorkspaceNotConfigured is returned when a student has not set a workspace yet
var ErrWorkspaceNotConfigured = &AppError{
	Code:    "WORKSPACE_NOT_CONFIGURED",
	Message: "student has no Bitbucket workspace configured",
	Status:  http.StatusConflict,
}

// AsAppError classifies any error for the HTTP layer. Upstream failures keep their cause.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return &AppError{Code: "NOT_FOUND", Message: "resource not found", Status: http.StatusNotFound, Err: err}
	case errors.Is(err, repositories.ErrAlreadyExists):
		return &AppError{Code: "CONFLICT", Message: "resource already exists", Status: http.StatusConflict, Err: err}
	case bitbucket.IsRateLimited(err):
		return &AppError{Code: "UPSTREAM_RATE_LIMITED", Message: "Bitbucket rate limit reached", Status: http.StatusTooManyRequests, Err: err}
	case bitbucket.IsUnauthorized(err):
		return &AppError{Code: "UPSTREAM_UNAUTHORIZED", Message: "Bitbucket rejected the stored credentials", Status: http.StatusBadGateway, Err: err}
	case bitbucket.IsNotFound(err):
		return &AppError{Code: "UPSTREAM_NOT_FOUND", Message: "Bitbucket resource not found", Status: http.StatusNotFound, Err: err}
	}

	var apiErr *bitbucket.APIError
	if errors.As(err, &apiErr) {
		return &AppError{Code: "UPSTREAM_ERROR", Message: "Bitbucket request failed", Status: http.StatusBadGateway, Err: err}
	}

	return &AppError{Code: "INTERNAL", Message: "internal error", Status: http.StatusInternalServerError, Err: err}
}
