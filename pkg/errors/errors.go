package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed error. Status carries the HTTP status that produced
// it: the status returned to callers of the fixture server, or the status a
// remote server answered with for SERVER_ERROR. Client-side kinds that never
// saw a response leave it zero.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Client taxonomy. These are the only kinds the request executor produces.
var (
	ErrNotAuthenticated = New("NOT_AUTHENTICATED", 0, "not authenticated")
	ErrNetwork          = New("NETWORK_ERROR", 0, "no response from server")
	ErrServer           = New("SERVER_ERROR", 0, "server returned an error")
	ErrDecoding         = New("DECODING_ERROR", 0, "unexpected response body")
	ErrInvalidURL       = New("INVALID_URL", 0, "invalid request url")
)

// Predefined errors for common scenarios.
var (
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid email or password")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
)

// NetworkError classifies a transport failure where no response arrived.
func NetworkError(err error) *Error {
	return Wrap(err, ErrNetwork.Code, 0, ErrNetwork.Message)
}

// ServerError classifies a non-2xx response, preserving the status code.
func ServerError(status int, message string) *Error {
	if message == "" {
		message = fmt.Sprintf("server responded with status %d", status)
	}
	return New(ErrServer.Code, status, message)
}

// DecodingError classifies a 2xx response whose body does not match the expected shape.
func DecodingError(err error) *Error {
	return Wrap(err, ErrDecoding.Code, 0, ErrDecoding.Message)
}

// InvalidURL classifies a request that could not be constructed.
func InvalidURL(err error) *Error {
	return Wrap(err, ErrInvalidURL.Code, 0, ErrInvalidURL.Message)
}

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// Is reports whether err carries the same code as kind.
func Is(err error, kind *Error) bool {
	if err == nil || kind == nil {
		return false
	}
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == kind.Code
}

// StatusCode returns the HTTP status carried by err, or zero.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}

// IsUnauthorized reports a server-side 401.
func IsUnauthorized(err error) bool {
	return Is(err, ErrServer) && StatusCode(err) == http.StatusUnauthorized
}

// RequiresLogin reports errors after which the caller should prompt for a new login.
func RequiresLogin(err error) bool {
	return Is(err, ErrNotAuthenticated) || IsUnauthorized(err)
}
