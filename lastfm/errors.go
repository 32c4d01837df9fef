package lastfm

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrNotStarted is returned by every request made before Start, or after
// Close on a client that manages its own session.
var ErrNotStarted = errors.New("lastfm: client not started, call Start first")

// Error codes documented by the Last.fm API.
const (
	ErrCodeInvalidService       = 2
	ErrCodeInvalidMethod        = 3
	ErrCodeAuthenticationFailed = 4
	ErrCodeInvalidFormat        = 5
	ErrCodeInvalidParameters    = 6
	ErrCodeInvalidResource      = 7
	ErrCodeOperationFailed      = 8
	ErrCodeInvalidSessionKey    = 9
	ErrCodeInvalidAPIKey        = 10
	ErrCodeServiceOffline       = 11
	ErrCodeInvalidSignature     = 13
	ErrCodeTemporaryError       = 16
	ErrCodeSuspendedAPIKey      = 26
	ErrCodeRateLimitExceeded    = 29
)

// APIError is an error object returned by the API in place of a result.
// It is never retried by this package.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("lastfm: error %d: %s", e.Code, e.Message)
}

// Is matches another *APIError with the same code, so callers can write
// errors.Is(err, &lastfm.APIError{Code: lastfm.ErrCodeInvalidParameters}).
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Code == e.Code
}

// Temporary reports whether the code signals a transient condition that a
// caller may choose to retry.
func (e *APIError) Temporary() bool {
	switch e.Code {
	case ErrCodeOperationFailed, ErrCodeServiceOffline, ErrCodeTemporaryError, ErrCodeRateLimitExceeded:
		return true
	default:
		return false
	}
}

// SchemaError reports a payload that does not match the expected shape
// after coercion. Path names the offending field, e.g.
// "artist.stats.listeners" or "album.tracks.track[3].@attr.rank".
type SchemaError struct {
	Path   string
	Value  any
	Reason string
}

func (e *SchemaError) Error() string {
	msg := fmt.Sprintf("lastfm: invalid response: %s: %s", e.Path, e.Reason)
	if e.Value != nil {
		msg += " (got " + describe(e.Value) + ")"
	}
	return msg
}

// TransportError wraps a failure below the API layer: network errors,
// non-2xx statuses (*session.StatusError) and undecodable bodies. The cause
// is preserved for errors.As.
type TransportError struct {
	Method string
	Cause  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("lastfm: %s: %v", e.Method, e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }

func describe(v any) string {
	switch t := v.(type) {
	case string:
		return strconv.Quote(t)
	case map[string]any:
		return "object"
	case []any:
		return fmt.Sprintf("array of %d", len(t))
	default:
		return fmt.Sprintf("%v", t)
	}
}
