// Package apperr defines the uniform classified-error shape used across the
// system. Every failure that crosses a package boundary is folded into an
// *Error carrying a kind, a severity and recovery guidance, so the transport
// layer and the client can react uniformly.
package apperr

import (
	"fmt"
	"time"
)

// Kind identifies the error taxonomy bucket.
type Kind string

const (
	// KindAuthentication indicates the caller identity is missing or invalid.
	KindAuthentication Kind = "AUTHENTICATION"
	// KindAuthorization indicates the entity exists but the caller does not own it.
	KindAuthorization Kind = "AUTHORIZATION"
	// KindValidation indicates malformed input, such as a non-UUID id.
	KindValidation Kind = "VALIDATION"
	// KindNotFound indicates a syntactically valid identifier with no matching entity.
	KindNotFound Kind = "NOT_FOUND"
	// KindStorage indicates the backing store failed in a way distinct from "no rows".
	KindStorage Kind = "STORAGE"
	// KindNetwork indicates a transport-level failure reaching the store.
	KindNetwork Kind = "NETWORK"
	// KindServer indicates an internal failure in this service.
	KindServer Kind = "SERVER"
	// KindUnknown is the catch-all for anything not classified above.
	KindUnknown Kind = "UNKNOWN"
)

// Severity grades how loudly an error should surface.
type Severity string

const (
	SeverityInfo     Severity = "INFO"
	SeverityWarning  Severity = "WARNING"
	SeverityError    Severity = "ERROR"
	SeverityCritical Severity = "CRITICAL"
)

// Error is the classified error shape. It implements error and unwraps to
// its cause so errors.Is/As keep working through it.
type Error struct {
	Kind        Kind
	Severity    Severity
	Code        int // optional numeric status code from the store or transport
	Message     string
	Timestamp   time.Time
	Recoverable bool
	Cause       error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithCode returns the error with a numeric status code attached. The
// severity is re-derived because it depends on the code.
func (e *Error) WithCode(code int) *Error {
	e.Code = code
	e.Severity = severityFor(e.Kind, code)
	return e
}

// New creates a classified error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{
		Kind:        kind,
		Severity:    severityFor(kind, 0),
		Message:     msg,
		Timestamp:   time.Now(),
		Recoverable: recoverableFor(kind),
	}
}

// Wrap creates a classified error of the given kind around a cause.
func Wrap(cause error, kind Kind, msg string) *Error {
	err := New(kind, msg)
	err.Cause = cause
	return err
}

// Convenience constructors for common kinds.

// Validation creates a validation error. Never retried; surfaced immediately.
func Validation(msg string) *Error {
	return New(KindValidation, msg)
}

// NotFound creates a not-found error for the given entity kind and id.
func NotFound(entity, id string) *Error {
	return New(KindNotFound, fmt.Sprintf("%s %s not found", entity, id))
}

// Forbidden creates an authorization error. The message deliberately carries
// no existence details beyond "forbidden".
func Forbidden() *Error {
	return New(KindAuthorization, "forbidden")
}

// Unauthenticated creates an authentication error.
func Unauthenticated(msg string) *Error {
	return New(KindAuthentication, msg)
}

// Storage creates a storage error around a cause.
func Storage(cause error, msg string) *Error {
	return Wrap(cause, KindStorage, msg)
}

// Network creates a network error around a cause.
func Network(cause error, msg string) *Error {
	return Wrap(cause, KindNetwork, msg)
}

// IsKind checks whether an error is a classified error of the given kind.
func IsKind(err error, kind Kind) bool {
	if appErr, ok := err.(*Error); ok {
		return appErr.Kind == kind
	}
	return false
}

// KindOf extracts the kind from any error. Unclassified errors report KindUnknown.
func KindOf(err error) Kind {
	if appErr, ok := err.(*Error); ok {
		return appErr.Kind
	}
	return KindUnknown
}

// severityFor derives severity from the kind and an optional numeric status
// code. Codes >= 500 escalate, 4xx stay at warning.
func severityFor(kind Kind, code int) Severity {
	if code >= 500 {
		if kind == KindStorage || kind == KindServer {
			return SeverityCritical
		}
		return SeverityError
	}
	if code >= 400 {
		return SeverityWarning
	}

	switch kind {
	case KindValidation, KindNotFound, KindAuthorization, KindAuthentication:
		return SeverityWarning
	case KindNetwork, KindStorage, KindServer:
		return SeverityError
	default:
		return SeverityError
	}
}

// recoverableFor reports whether the client can reasonably retry or repair
// the failed operation.
func recoverableFor(kind Kind) bool {
	switch kind {
	case KindNetwork, KindStorage, KindAuthentication, KindServer:
		return true
	default:
		return false
	}
}
