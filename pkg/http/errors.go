package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// AppError is an error that knows its HTTP status and wire code.
type AppError struct {
	Status  int                    `json:"-"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Params  map[string]interface{} `json:"params,omitempty"`

	cause error
}

// NewAppError creates an AppError.
func NewAppError(status int, code, message string) *AppError {
	return &AppError{Status: status, Code: code, Message: message}
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.cause)
	}
	return e.Code + ": " + e.Message
}

func (e *AppError) Unwrap() error { return e.cause }

// Wrap records the underlying cause. The cause is never serialised.
func (e *AppError) Wrap(err error) *AppError {
	e.cause = err
	return e
}

// With attaches a param to the error payload.
func (e *AppError) With(key string, value interface{}) *AppError {
	if e.Params == nil {
		e.Params = make(map[string]interface{})
	}
	e.Params[key] = value
	return e
}

// Internal creates a 500 error with a generic message.
func Internal(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "ERR_INTERNAL", "Something went wrong").Wrap(err)
}

// AsAppError returns the AppError in err's chain or an Internal wrapping err.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// fromHTTPError converts errors raised by Echo itself (routing, binding,
// middleware) into AppErrors.
func fromHTTPError(he *echo.HTTPError) *AppError {
	code := "ERR_" + strings.ToUpper(strings.ReplaceAll(http.StatusText(he.Code), " ", "_"))
	msg := http.StatusText(he.Code)
	if s, ok := he.Message.(string); ok && s != "" {
		msg = s
	}
	return NewAppError(he.Code, code, msg).Wrap(he.Internal)
}
