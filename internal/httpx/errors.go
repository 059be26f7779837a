package httpx

import (
	"fmt"
	"net/http"
)

// AppError represents an application error with an HTTP status and a
// user-facing message
type AppError struct {
	HTTPStatus int    // HTTP status code
	Message    string // User-facing error message
	Err        error  // Internal error (for logging only, not returned to client)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("status=%d, message=%s, err=%v", e.HTTPStatus, e.Message, e.Err)
	}
	return fmt.Sprintf("status=%d, message=%s", e.HTTPStatus, e.Message)
}

// NewAppError creates a new AppError
func NewAppError(httpStatus int, message string, err error) *AppError {
	return &AppError{
		HTTPStatus: httpStatus,
		Message:    message,
		Err:        err,
	}
}

// ErrUnauthorized creates a 401 authentication-required error
func ErrUnauthorized(message string) *AppError {
	if message == "" {
		message = "Authentication required"
	}
	return NewAppError(http.StatusUnauthorized, message, nil)
}

// ErrForbidden creates a 403 insufficient-privilege error
func ErrForbidden(message string) *AppError {
	if message == "" {
		message = "Admin access required"
	}
	return NewAppError(http.StatusForbidden, message, nil)
}

// ErrParamMissing creates a 400 missing-parameter error
func ErrParamMissing(message string) *AppError {
	if message == "" {
		message = "Required parameter missing"
	}
	return NewAppError(http.StatusBadRequest, message, nil)
}

// ErrParamInvalid creates a 400 invalid-parameter error
func ErrParamInvalid(message string) *AppError {
	if message == "" {
		message = "Invalid parameter"
	}
	return NewAppError(http.StatusBadRequest, message, nil)
}

// ErrNotFound creates a 404 not-found error
func ErrNotFound(message string) *AppError {
	if message == "" {
		message = "Resource not found"
	}
	return NewAppError(http.StatusNotFound, message, nil)
}

// ErrAlreadyExists creates a 409 conflict error
func ErrAlreadyExists(message string) *AppError {
	if message == "" {
		message = "Resource already exists"
	}
	return NewAppError(http.StatusConflict, message, nil)
}

// ErrDatabaseError creates a 500 database error
func ErrDatabaseError(message string, err error) *AppError {
	if message == "" {
		message = "Database error"
	}
	return NewAppError(http.StatusInternalServerError, message, err)
}

// ErrInternalError creates a 500 internal error
func ErrInternalError(message string, err error) *AppError {
	if message == "" {
		message = "Internal error"
	}
	return NewAppError(http.StatusInternalServerError, message, err)
}
