package tim

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ClientError represents a request the backend rejected (status 400-499).
// Detail carries the server-supplied "detail" message: invalid credentials,
// not found, validation failure, and so on.
type ClientError struct {
	StatusCode int
	Detail     string
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	return fmt.Sprintf("client error %d: %s", e.StatusCode, e.Detail)
}

// ServerError represents a backend-side fault (status 500-599). It carries
// the status code and the HTTP reason phrase and is never retried
// automatically.
type ServerError struct {
	StatusCode int
	Reason     string
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.StatusCode, e.Reason)
}

// DecodeError reports a success-status response whose body did not match the
// expected shape. It keeps the status and raw body so the failure surfaces
// with full context instead of partial data.
type DecodeError struct {
	StatusCode int
	Body       []byte
	Err        error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response (status %d): %v: %s", e.StatusCode, e.Err, e.Body)
}

// Unwrap returns the underlying decode failure.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Static errors that can be wrapped with context.
var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrConfigRequired     = errors.New("config is required")
	ErrEndpointRequired   = errors.New("API endpoint is required")
	ErrRequestRequired    = errors.New("request is required")
	ErrTitleRequired      = errors.New("item title is required")
	ErrNegativeQuantity   = errors.New("quantity must not be negative")
	ErrCacheDisabled      = errors.New("cache disabled")
	ErrCacheKeyNotFound   = errors.New("key not found")
	ErrCacheEntryExpired  = errors.New("entry expired")
	ErrNATSConfigRequired = errors.New("NATS configuration required for NATS cache")
	ErrUnsupportedCache   = errors.New("unsupported cache type")
)

// NewClientError builds a ClientError from a 4xx response body. The body is
// expected to be a JSON object with a "detail" field; detail may be a plain
// string or a structured value, in which case its compact JSON rendering is
// used. Bodies that do not match the contract fall back to the raw text.
func NewClientError(statusCode int, body []byte) *ClientError {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}

	detail := string(body)

	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Detail) > 0 {
		var s string
		if err := json.Unmarshal(payload.Detail, &s); err == nil {
			detail = s
		} else {
			detail = string(payload.Detail)
		}
	}

	return &ClientError{StatusCode: statusCode, Detail: detail}
}

// NewServerError builds a ServerError with the standard reason phrase for
// the status code.
func NewServerError(statusCode int) *ServerError {
	reason := http.StatusText(statusCode)
	if reason == "" {
		reason = "Unknown Server Error"
	}

	return &ServerError{StatusCode: statusCode, Reason: reason}
}

// IsClientError checks if the error is any 4xx rejection.
func IsClientError(err error) bool {
	clientErr := &ClientError{}

	return errors.As(err, &clientErr)
}

// IsServerError checks if the error is any 5xx fault.
func IsServerError(err error) bool {
	serverErr := &ServerError{}

	return errors.As(err, &serverErr)
}

// IsNotFound checks if the error is a not found rejection.
func IsNotFound(err error) bool {
	clientErr := &ClientError{}
	if errors.As(err, &clientErr) {
		return clientErr.StatusCode == http.StatusNotFound
	}

	return false
}

// IsUnauthorized checks if the error is an authentication failure, either
// the client-side fast-fail or the server's 401.
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrNotAuthenticated) {
		return true
	}

	clientErr := &ClientError{}
	if errors.As(err, &clientErr) {
		return clientErr.StatusCode == http.StatusUnauthorized
	}

	return false
}

// IsForbidden checks if the error is an authorization rejection.
func IsForbidden(err error) bool {
	clientErr := &ClientError{}
	if errors.As(err, &clientErr) {
		return clientErr.StatusCode == http.StatusForbidden
	}

	return false
}
