// Package errors provides centralized error definitions for the workorders
// client. It defines the two failure kinds every remote call can produce,
// a handful of sentinel errors for client-side state machines,
// and classification helpers used when logging and surfacing failures.
//
// # Error Types
//
// Remote failures:
//   - RequestError: the API answered with a status outside the 2xx range
//   - TransportError: the request never produced a usable response
//     (network failure, unreadable or undecodable body)
//
// Client-side failures:
//   - ValidationError: invalid input shaped by the client (e.g. hours)
//
// # Usage
//
//	var reqErr *errors.RequestError
//	if errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusNotFound { ... }
//
//	// Text for the blocking alert
//	alert(errors.Message(err))
//
// Both remote failure kinds are handled identically by every call site: the
// status line gets a short failure phrase and [Message] goes to the alert.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Navigation and dialog sentinel errors
var (
	// ErrUnknownTab indicates a tab name outside the fixed tab set.
	ErrUnknownTab = New("unknown tab")
	// ErrDialogClosed indicates a submission while no stage dialog is open.
	ErrDialogClosed = New("stage dialog is not open")
	// ErrStaleTicket indicates a submission through a handler that was
	// already fired, cancelled or superseded by a newer dialog opening.
	ErrStaleTicket = New("stage dialog handler is no longer bound")
)

// Session sentinel errors
var (
	// ErrNoCredential indicates that neither a host session nor a debug
	// identifier is available. Requests are still sent; the server decides.
	ErrNoCredential = New("no credential available")
	// ErrNoOrderOpen indicates an order-scoped action without a loaded order.
	ErrNoOrderOpen = New("no order is open")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// ClientError is the base interface for all typed errors of this module.
type ClientError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Severity returns the severity level of this error.
	Severity() Severity
}

// baseError provides common functionality for all error types.
type baseError struct {
	message  string
	cause    error
	severity Severity
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// -----------------------------------------------------------------------------
// Remote Errors
// -----------------------------------------------------------------------------

// RequestError is returned when the API responds with a non-success status.
// The message is the raw response body text, regardless of its shape.
//
// Example:
//
//	err := errors.NewRequestError(404, `{"detail":"Order not found or not assigned"}`)
//	fmt.Println(err) // {"detail":"Order not found or not assigned"}
type RequestError struct {
	baseError
	StatusCode int
	Body       string
	Method     string
	Path       string
}

// NewRequestError creates a new RequestError.
func NewRequestError(statusCode int, body string) *RequestError {
	return &RequestError{
		baseError: baseError{
			message:  body,
			severity: SeverityError,
		},
		StatusCode: statusCode,
		Body:       body,
	}
}

// WithRequest records the method and path that produced the error.
func (e *RequestError) WithRequest(method, path string) *RequestError {
	e.Method = method
	e.Path = path
	return e
}

// Error returns the response body text. An empty body falls back to the
// status text so the alert is never blank.
func (e *RequestError) Error() string {
	if strings.TrimSpace(e.Body) != "" {
		return e.Body
	}
	if text := http.StatusText(e.StatusCode); text != "" {
		return fmt.Sprintf("%d %s", e.StatusCode, text)
	}
	return fmt.Sprintf("status %d", e.StatusCode)
}

// Is checks if this error matches the target.
func (e *RequestError) Is(target error) bool {
	_, ok := target.(*RequestError)
	return ok
}

// TransportError is returned when a request fails before a usable response
// exists: dial and TLS failures, broken connections, unreadable bodies, and
// success bodies that are not valid JSON.
//
// Example:
//
//	err := errors.NewTransportError("send", cause).WithRequest("GET", "/api/app/me")
type TransportError struct {
	baseError
	Op     string
	Method string
	Path   string
}

// NewTransportError creates a new TransportError for the given stage
// ("build", "send", "read", "decode").
func NewTransportError(op string, cause error) *TransportError {
	return &TransportError{
		baseError: baseError{
			message:  op,
			cause:    cause,
			severity: SeverityError,
		},
		Op: op,
	}
}

// WithRequest records the method and path that produced the error.
func (e *TransportError) WithRequest(method, path string) *TransportError {
	e.Method = method
	e.Path = path
	return e
}

// Error returns the underlying error's text.
func (e *TransportError) Error() string {
	if e.cause != nil {
		return e.cause.Error()
	}
	return e.Op + " failed"
}

// Is checks if this error matches the target.
func (e *TransportError) Is(target error) bool {
	if _, ok := target.(*TransportError); ok {
		return true
	}
	return e.cause != nil && errors.Is(e.cause, target)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("hours must be a number")
//	err = err.WithField("hours").WithValue("abc")
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:  message,
			severity: SeverityWarning,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if target == ErrInvalidInput {
		return true
	}
	return e.cause != nil && errors.Is(e.cause, target)
}

// -----------------------------------------------------------------------------
// Classification Helpers
// -----------------------------------------------------------------------------

// IsRemote reports whether err is a RequestError or a TransportError.
func IsRemote(err error) bool {
	var reqErr *RequestError
	var transportErr *TransportError
	return As(err, &reqErr) || As(err, &transportErr)
}

// StatusCode returns the HTTP status of a RequestError in err's chain, or 0.
func StatusCode(err error) int {
	var reqErr *RequestError
	if As(err, &reqErr) {
		return reqErr.StatusCode
	}
	return 0
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement ClientError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}
	var clientErr ClientError
	if As(err, &clientErr) {
		return clientErr.Severity()
	}
	return SeverityError
}

// Message returns the text shown in a blocking alert for err: the response
// body for a RequestError, the underlying error text otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var reqErr *RequestError
	if As(err, &reqErr) {
		return reqErr.Error()
	}
	var transportErr *TransportError
	if As(err, &transportErr) {
		return transportErr.Error()
	}
	return err.Error()
}

// Wrap wraps an error with additional context message.
// Unlike fmt.Errorf with %w, this returns nil for a nil err.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
