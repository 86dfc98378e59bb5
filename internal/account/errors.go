// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tasknest Contributors

package account

import "errors"

// Storage-layer sentinels. Repositories wrap these; the service translates
// them into the domain error taxonomy.
var (
	// ErrNotFound is returned when a requested account does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a uniqueness constraint is violated
	// on creation. The constraint is the authoritative duplicate guard;
	// the service-level pre-check is only an optimization.
	ErrDuplicate = errors.New("duplicate")
)
