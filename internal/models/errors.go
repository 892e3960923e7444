package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes used across the service and handler layers.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_ERROR"
)

// genericMessage replaces the detail of non-operational errors outside
// development.
const genericMessage = "Something went wrong. Please try again later."

// development controls whether internal error details reach clients.
var development bool

// SetDevelopment toggles detailed error responses. Call once at startup.
func SetDevelopment(dev bool) {
	development = dev
}

// ErrorResponse is the wire shape of every error response.
// Status is "Fail" for 4xx and "Error" for 5xx.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Status     string `json:"status"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
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

// HTTPStatus maps the error code to an HTTP status code.
// Conflicts map to 400 to match the wire contract of the public API.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case CodeValidation, CodeConflict:
		return fiber.StatusBadRequest
	case CodeUnauthorized:
		return fiber.StatusUnauthorized
	case CodeForbidden:
		return fiber.StatusForbidden
	case CodeNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// Predefined error constructors

func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message}
}

func NewInternalError(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: genericMessage, Err: err}
}

// statusLabel returns "Fail" for client errors and "Error" for server errors.
func statusLabel(status int) string {
	if status >= 400 && status < 500 {
		return "Fail"
	}
	return "Error"
}

// RespondWithError writes the standardized error envelope for err.
// Unexpected (non-AppError) failures are masked behind a generic message;
// their detail only surfaces in development.
func RespondWithError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := genericMessage
	var details string

	var appErr *AppError
	if errors.As(err, &appErr) {
		status = appErr.HTTPStatus()
		message = appErr.Message
		if development && appErr.Err != nil {
			details = appErr.Err.Error()
		}
	} else if development {
		details = err.Error()
	}

	return c.Status(status).JSON(ErrorResponse{
		StatusCode: status,
		Status:     statusLabel(status),
		Message:    message,
		Details:    details,
	})
}
