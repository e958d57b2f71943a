package serp

import (
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
)

// ErrMissingAPIKey is returned by New when no credential is resolvable,
// before any network call is made.
var ErrMissingAPIKey = errors.New("api key not provided")

// Query construction violations. Build wraps them in a *ValidationError.
var (
	ErrEmptyTerm              = errors.New("search term is empty")
	ErrLimitOutOfRange        = errors.New("limit must be between 1 and 100")
	ErrNegativeOffset         = errors.New("offset must be non-negative")
	ErrConflictingSearchTypes = errors.New("conflicting search types requested")
	ErrInvalidDevice          = errors.New("invalid device type")
	ErrInvalidSafeSearch      = errors.New("invalid safe search mode")
)

// Streaming violations and terminal conditions.
var (
	ErrPageSizeOutOfRange = errors.New("page size must be between 1 and 100")
	ErrEmptyPage          = errors.New("empty result page")
)

// ValidationError reports every constraint violated while building a
// query or stream configuration. No network call was attempted.
type ValidationError struct {
	Violations []error
}

func (e *ValidationError) Error() string {
	merr := &multierror.Error{Errors: e.Violations}
	return "invalid query: " + merr.Error()
}

// Unwrap exposes the individual violations so errors.Is matches the
// sentinels above.
func (e *ValidationError) Unwrap() []error { return e.Violations }

// APIError is a non-2xx error response reported by the remote API.
// Codes in the 5xx range are considered transient and retryable; other
// codes are fatal.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: %d - %s", e.Code, e.Message)
}

// Temporary reports whether the status code indicates transient server
// trouble.
func (e *APIError) Temporary() bool { return e.Code >= 500 && e.Code < 600 }

// RateLimitError is an explicit throttling signal (HTTP 429). RetryAfter
// carries the server-requested wait, which overrides the computed
// backoff delay.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded: retry after %s", e.RetryAfter)
}

// TransportError wraps a connect, timeout or TLS failure from the HTTP
// transport. Always retryable.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "request failed: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError means the response body did not match the expected shape,
// which usually signals a schema or version mismatch. Never retried.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "invalid response format: " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

// ExhaustedError is the terminal result when the retry budget ran out.
// The last failure is preserved as the cause.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("giving up after %d attempts: %s", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error { return e.Err }
