// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tasknest Contributors

// Package account provides the user account domain: the identity record,
// its repository contract, and the sign-up/sign-in service.
package account

import (
	"context"
	"time"
)

// Account is an identity record. The password hash is compared only through
// the credential verifier and is never serialized outward.
type Account struct {
	// ID is the unique identifier, assigned by storage on creation.
	ID int64 `json:"id"`

	// Username is the unique login name.
	Username string `json:"username"`

	// Email is optional and unique when present.
	Email *string `json:"email,omitempty"`

	// PasswordHash is the one-way hash of the credential.
	// Excluded from every outward projection.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp when the account was last updated.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Repository abstracts account persistence. Implementations perform no
// business validation; they surface ErrNotFound and ErrDuplicate so the
// service can classify outcomes.
type Repository interface {
	// Create persists a new account and fills in its storage-assigned ID.
	// A uniqueness violation surfaces as ErrDuplicate.
	Create(ctx context.Context, acct *Account) error

	// GetByID retrieves an account by ID. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id int64) (*Account, error)

	// GetByUsername retrieves an account by username (case-insensitive).
	// Returns ErrNotFound if absent.
	GetByUsername(ctx context.Context, username string) (*Account, error)

	// GetByEmail retrieves an account by email (case-insensitive).
	// Returns ErrNotFound if no account has the given email.
	GetByEmail(ctx context.Context, email string) (*Account, error)

	// ListAll retrieves every account.
	ListAll(ctx context.Context) ([]Account, error)
}
