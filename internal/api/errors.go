package api

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the backend error taxonomy. Callers use errors.Is /
// errors.As to branch; the raw transport error never escapes this package.
var (
	// ErrUnauthenticated means no credential is present or the backend
	// rejected the one we sent (401).
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrNoBackend means the base URL for the required backend family is
	// not configured.
	ErrNoBackend = errors.New("backend URL not configured")

	// ErrUnreachable means the backend could not be reached at the
	// transport level (DNS, connection refused, timeout).
	ErrUnreachable = errors.New("backend unreachable")

	// ErrMalformedResponse means a 2xx body failed to parse as expected.
	ErrMalformedResponse = errors.New("malformed backend response")
)

// FieldError is one entry of a 422 validation detail list. Loc segments mix
// strings and array indices, so they stay untyped.
type FieldError struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// Field returns the last location segment, which names the offending field.
func (f FieldError) Field() string {
	if len(f.Loc) == 0 {
		return ""
	}
	return fmt.Sprint(f.Loc[len(f.Loc)-1])
}

// ValidationError carries the structured per-field messages of a 422.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if name := f.Field(); name != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", name, f.Msg))
		} else {
			parts = append(parts, f.Msg)
		}
	}
	return strings.Join(parts, "; ")
}

// UpstreamError is any other non-2xx response: the backend was reachable but
// rejected the request. Detail is the backend-provided message when one could
// be parsed, or a generic fallback.
type UpstreamError struct {
	Status int
	Detail string
}

func (e *UpstreamError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("backend returned %d", e.Status)
}
