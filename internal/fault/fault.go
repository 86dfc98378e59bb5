// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tasknest Contributors

// Package fault defines the closed set of domain error kinds shared by every
// core component. Lower layers classify each failure as exactly one kind at
// its origin; the API boundary performs the single translation into the
// protocol error shape.
package fault

import (
	"github.com/samber/oops"
)

// Kind identifies a domain error variant. The set is closed: callers branch
// on the kind, never on the message text.
type Kind string

const (
	// Unauthenticated covers bad credentials and invalid or expired tokens.
	Unauthenticated Kind = "UNAUTHENTICATED"

	// NoAuthHeader covers a missing or malformed Authorization header,
	// a distinct earlier-stage failure than token invalidity.
	NoAuthHeader Kind = "NO_AUTH_HEADER"

	// TokenCreationFailed covers signing subsystem failures.
	TokenCreationFailed Kind = "TOKEN_CREATION_FAILED"

	// NotFound covers references to accounts or todos that do not exist.
	NotFound Kind = "NOT_FOUND"

	// Conflict covers uniqueness violations on creation.
	Conflict Kind = "CONFLICT"

	// SystemError covers any unexpected lower-layer failure.
	SystemError Kind = "SYSTEM_ERROR"
)

// New creates a domain error of the given kind.
func New(kind Kind, format string, args ...any) error {
	return oops.Code(string(kind)).Errorf(format, args...)
}

// Wrap classifies an underlying error as the given kind while preserving the
// cause chain for diagnostics.
func Wrap(kind Kind, err error, format string, args ...any) error {
	return oops.Code(string(kind)).Wrapf(err, format, args...)
}

// With creates a domain error of the given kind carrying structured context.
func With(kind Kind, key string, value any) oops.OopsErrorBuilder {
	return oops.Code(string(kind)).With(key, value)
}

// KindOf extracts the domain error kind from err.
// The second return value is false when err carries no kind.
func KindOf(err error) (Kind, bool) {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return "", false
	}
	code, isString := oopsErr.Code().(string)
	if !isString || code == "" {
		return "", false
	}
	return Kind(code), true
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// Message returns the human-readable message for err. The message is
// diagnostic only and must never drive control flow.
func Message(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
