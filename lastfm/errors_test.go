package lastfm

import (
	"errors"
	"testing"

	"github.com/sydlexius/lastfm-client/session"
)

func TestAPIError(t *testing.T) {
	err := &APIError{Code: ErrCodeInvalidParameters, Message: "Artist not found"}
	if got, want := err.Error(), "lastfm: error 6: Artist not found"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if err.Temporary() {
		t.Error("code 6 reported as temporary")
	}

	for _, code := range []int{ErrCodeOperationFailed, ErrCodeServiceOffline, ErrCodeTemporaryError, ErrCodeRateLimitExceeded} {
		if !(&APIError{Code: code}).Temporary() {
			t.Errorf("code %d not reported as temporary", code)
		}
	}
}

func TestSchemaErrorMessage(t *testing.T) {
	tests := []struct {
		err  *SchemaError
		want string
	}{
		{
			&SchemaError{Path: "artist.name", Reason: "field required"},
			"lastfm: invalid response: artist.name: field required",
		},
		{
			&SchemaError{Path: "artist.stats.listeners", Value: "many", Reason: "expected integer"},
			`lastfm: invalid response: artist.stats.listeners: expected integer (got "many")`,
		},
		{
			&SchemaError{Path: "album.tags", Value: map[string]any{}, Reason: "expected string"},
			"lastfm: invalid response: album.tags: expected string (got object)",
		},
		{
			&SchemaError{Path: "x", Value: []any{1, 2}, Reason: "expected object"},
			"lastfm: invalid response: x: expected object (got array of 2)",
		},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestTransportErrorUnwrap(t *testing.T) {
	cause := &session.StatusError{StatusCode: 502, Body: []byte("bad gateway")}
	err := error(&TransportError{Method: "album.getinfo", Cause: cause})

	var se *session.StatusError
	if !errors.As(err, &se) || se.StatusCode != 502 {
		t.Fatalf("errors.As failed for %v", err)
	}
	if got, want := err.Error(), "lastfm: album.getinfo: unexpected status 502: bad gateway"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
