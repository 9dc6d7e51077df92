package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the moderation pipeline. Handlers map these to HTTP
// status classes; per-item batch failures never surface through them.
var (
	// ErrValidation marks malformed or empty input. No external calls are
	// attempted once raised.
	ErrValidation = errors.New("validation failed")

	// ErrAuthExpired marks invalid or expired platform credentials. The
	// caller must re-authenticate; it is never silently retried.
	ErrAuthExpired = errors.New("authentication expired")

	// ErrModelUnavailable marks a failed language-model call where no safe
	// default exists (reply generation).
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrNotFound marks a comment the platform no longer knows about.
	ErrNotFound = errors.New("comment not found")
)

// ValidationError wraps ErrValidation with a reason shown to the caller.
func ValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// UpstreamError carries the platform's refusal of an individual write or
// delete (permissions, quota, not-found). Captured per-item in batch results.
type UpstreamError struct {
	Code    int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("upstream rejected (%d): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("upstream rejected: %s", e.Message)
}

// AsUpstream extracts an UpstreamError from err, if present.
func AsUpstream(err error) (*UpstreamError, bool) {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}
