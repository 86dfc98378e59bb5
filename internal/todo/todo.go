// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tasknest Contributors

// Package todo provides the todo-list domain: the entity, its repository
// contract, and the list service.
package todo

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a referenced todo does not exist.
var ErrNotFound = errors.New("not found")

// Todo is a single todo-list item.
type Todo struct {
	// ID is the unique identifier, assigned by storage on creation.
	ID int64 `json:"id"`

	// Body is the item text.
	Body string `json:"body"`

	// Complete marks the item done.
	Complete bool `json:"complete"`

	// CreatedAt is the timestamp when the item was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp when the item was last updated.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Repository abstracts todo persistence. Implementations surface
// ErrNotFound for missing rows and perform no business validation.
type Repository interface {
	// ListAll retrieves every todo.
	ListAll(ctx context.Context) ([]Todo, error)

	// Create persists a new todo and fills in its storage-assigned ID.
	Create(ctx context.Context, item *Todo) error

	// Update replaces the body, completion flag, and update timestamp of
	// an existing todo. Returns ErrNotFound if the row is missing.
	Update(ctx context.Context, item *Todo) error

	// ToggleComplete flips the completion flag of one todo.
	// Returns ErrNotFound if the row is missing.
	ToggleComplete(ctx context.Context, id int64, now time.Time) error

	// ToggleAllComplete flips every todo to the complement of
	// "all complete": if every item is complete, all become incomplete,
	// otherwise all become complete.
	ToggleAllComplete(ctx context.Context, now time.Time) error

	// Delete removes one todo. Returns ErrNotFound if the row is missing.
	Delete(ctx context.Context, id int64) error

	// DeleteCompleted removes every completed todo.
	DeleteCompleted(ctx context.Context) error
}
