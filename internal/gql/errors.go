// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tasknest Contributors

// Package gql maps domain errors onto the GraphQL field-error shape.
package gql

import (
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/tasknest/tasknest/internal/fault"
)

// FieldError converts a service error into a GraphQL field error.
// The error kind is preserved in the "code" extension so API clients can
// branch on it. Errors without a recognized kind are reported as system
// errors with a generic message so internal details never reach clients.
func FieldError(err error) *gqlerror.Error {
	if err == nil {
		return nil
	}

	kind, ok := fault.KindOf(err)
	if !ok {
		return &gqlerror.Error{
			Message:    "internal system error",
			Extensions: map[string]any{"code": string(fault.SystemError)},
		}
	}

	return &gqlerror.Error{
		Message:    fault.Message(err),
		Extensions: map[string]any{"code": string(kind)},
	}
}

// FieldErrors converts a slice of service errors, skipping nils.
func FieldErrors(errs ...error) gqlerror.List {
	var list gqlerror.List
	for _, err := range errs {
		if fe := FieldError(err); fe != nil {
			list = append(list, fe)
		}
	}
	return list
}
