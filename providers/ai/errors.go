package ai

import (
	"errors"
	"fmt"
)

// ErrorKind partitions gateway failures into the handful of categories callers
// can act on. Classification happens exactly once, at the transport boundary
// for HTTP failures, and the kind is never silently downgraded afterwards.
type ErrorKind string

const (
	// KindAPIKey means the active provider's credential is missing or was
	// rejected (HTTP 401). Never retried.
	KindAPIKey ErrorKind = "api_key"

	// KindQuotaExceeded means the provider reported rate or quota exhaustion
	// (HTTP 429). Not retried by the transport; the rate limiter should be
	// tuned to avoid triggering it.
	KindQuotaExceeded ErrorKind = "quota_exceeded"

	// KindModelNotAvailable means no model could be resolved for the
	// provider+operation, or the provider rejected the model (HTTP 404).
	KindModelNotAvailable ErrorKind = "model_not_available"

	// KindRequest covers transport failures, retry exhaustion, and any
	// unclassified non-2xx status. The only kind eligible for retry, and only
	// when it originates from a failed round trip rather than a received
	// error response.
	KindRequest ErrorKind = "request"

	// KindResponse means a success response could not be interpreted.
	KindResponse ErrorKind = "response"

	// KindService is the catch-all for unexpected failures. Always wraps the
	// original cause.
	KindService ErrorKind = "service"
)

// Error is the typed error carried by every gateway failure. It records which
// provider and model were in play and wraps the underlying cause so callers
// can use errors.Is / errors.As on the chain.
type Error struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
	Provider   Provider
	Model      string
	Cause      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Provider, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, enabling errors.Is / errors.As
// traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Retryable reports whether the transport's bounded retry loop may re-attempt
// the call. Only request-kind failures from a failed round trip qualify;
// received error responses are terminal.
func (e *Error) Retryable() bool {
	return e.Kind == KindRequest && e.StatusCode == 0
}

// NewError builds an *Error for the given kind.
func NewError(kind ErrorKind, provider Provider, message string, cause error) *Error {
	return &Error{Kind: kind, Provider: provider, Message: message, Cause: cause}
}

// ClassifyStatus maps a received HTTP status to its error kind: 401 is a
// credential failure, 429 quota exhaustion, 404 an unavailable model, and
// everything else a generic request failure. It must only be called for
// non-2xx statuses.
func ClassifyStatus(status int, provider Provider, body string) *Error {
	kind := KindRequest
	switch status {
	case 401:
		kind = KindAPIKey
	case 429:
		kind = KindQuotaExceeded
	case 404:
		kind = KindModelNotAvailable
	}
	return &Error{
		Kind:       kind,
		Provider:   provider,
		Message:    fmt.Sprintf("HTTP %d: %s", status, body),
		StatusCode: status,
	}
}

// ErrorKindOf returns the kind of err when it carries an *Error, or
// KindService for any other non-nil error.
func ErrorKindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindService
}

// IsKind reports whether err carries an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
