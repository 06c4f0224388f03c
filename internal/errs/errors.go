// Package errs provides the unified error type used across all of petsvc.
//
// Every subsystem (secrets, database, server, …) wraps its native errors
// into *errs.Error before returning them to callers. Callers use the Is*
// predicates to handle errors without importing driver-specific packages.
//
// Usage:
//
//	// In the secret resolver — wrap native errors:
//	return errs.Wrap(errs.ErrKindSecretAccess, "secret not found", grpcErr)
//
//	// In a handler — check error kind:
//	if errs.IsTimeout(err) {
//	    http.Error(w, "timed out", http.StatusInternalServerError)
//	}
package errs

import (
	"errors"
	"fmt"
)

// ErrKind categorises an error without exposing subsystem-specific codes.
// All collaborators (Secret Manager, MySQL, …) map their native errors to
// one of these kinds, giving callers a single consistent API.
type ErrKind int

const (
	ErrKindUnknown          ErrKind = iota
	ErrKindSecretAccess             // secret store unreachable, missing, or forbidden
	ErrKindPoolConstruction         // malformed DSN or unreachable socket at pool build
	ErrKindConnectionFailed         // cannot reach the database after construction
	ErrKindTimeout                  // context deadline / cancellation
	ErrKindQueryFailed              // SQL execution error at request time
	ErrKindNotFound                 // no rows matched
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindSecretAccess:
		return "secret_access"
	case ErrKindPoolConstruction:
		return "pool_construction"
	case ErrKindConnectionFailed:
		return "connection_failed"
	case ErrKindTimeout:
		return "timeout"
	case ErrKindQueryFailed:
		return "query_failed"
	case ErrKindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by all petsvc subsystems.
// Subsystems produce it; callers inspect it via the Is* predicates below.
type Error struct {
	Kind    ErrKind
	Message string
	Cause   error // original collaborator-level error, preserved for logging
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is / errors.As to traverse the cause chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// --- Constructors ---

// New creates an *Error with the given kind and message and no cause.
func New(kind ErrKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap creates an *Error with the given kind, message, and an underlying cause.
func Wrap(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// --- Predicates ---

// IsSecretAccess reports whether err came from the secret store
// (unreachable service, missing secret, permission denied).
func IsSecretAccess(err error) bool {
	return KindOf(err) == ErrKindSecretAccess
}

// IsPoolConstruction reports whether err occurred while building the
// database connection pool.
func IsPoolConstruction(err error) bool {
	return KindOf(err) == ErrKindPoolConstruction
}

// IsConnectionFailed reports whether err is a connectivity or auth failure.
func IsConnectionFailed(err error) bool {
	return KindOf(err) == ErrKindConnectionFailed
}

// IsTimeout reports whether err was caused by a deadline or context cancellation.
func IsTimeout(err error) bool {
	return KindOf(err) == ErrKindTimeout
}

// IsQueryFailed reports whether err is a SQL execution failure.
func IsQueryFailed(err error) bool {
	return KindOf(err) == ErrKindQueryFailed
}

// IsNotFound reports whether err represents a "no rows" result.
func IsNotFound(err error) bool {
	return KindOf(err) == ErrKindNotFound
}

// KindOf extracts the ErrKind from any error in the chain.
// Errors that do not carry an *Error report ErrKindUnknown.
func KindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrKindUnknown
}
