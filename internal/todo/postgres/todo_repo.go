// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tasknest Contributors

// Package postgres implements todo persistence using PostgreSQL.
package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/tasknest/tasknest/internal/todo"
)

// poolIface is the subset of pgxpool.Pool the repository uses.
// It allows substituting a pgxmock pool in unit tests.
type poolIface interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TodoRepository implements todo.Repository using PostgreSQL.
type TodoRepository struct {
	pool poolIface
}

// NewTodoRepository creates a new TodoRepository.
func NewTodoRepository(pool poolIface) *TodoRepository {
	return &TodoRepository{pool: pool}
}

// ListAll retrieves every todo ordered by ID.
func (r *TodoRepository) ListAll(ctx context.Context) ([]todo.Todo, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, body, complete, created_at, updated_at
		FROM todos
		ORDER BY id
	`)
	if err != nil {
		return nil, oops.Code("TODO_LIST_FAILED").
			With("operation", "list todos").
			Wrap(err)
	}
	defer rows.Close()

	var todos []todo.Todo
	for rows.Next() {
		var item todo.Todo
		if err := rows.Scan(&item.ID, &item.Body, &item.Complete, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, oops.Code("TODO_LIST_FAILED").
				With("operation", "scan todo row").
				Wrap(err)
		}
		todos = append(todos, item)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("TODO_LIST_FAILED").
			With("operation", "iterate todo rows").
			Wrap(err)
	}
	return todos, nil
}

// Create persists a new todo and fills in its storage-assigned ID.
func (r *TodoRepository) Create(ctx context.Context, item *todo.Todo) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO todos (body, complete, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`,
		item.Body,
		item.Complete,
		item.CreatedAt,
		item.UpdatedAt,
	).Scan(&item.ID)
	if err != nil {
		return oops.Code("TODO_CREATE_FAILED").
			With("operation", "insert todo").
			Wrap(err)
	}
	return nil
}

// Update replaces the body, completion flag, and update timestamp of an
// existing todo.
func (r *TodoRepository) Update(ctx context.Context, item *todo.Todo) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE todos SET body = $2, complete = $3, updated_at = $4
		WHERE id = $1
	`, item.ID, item.Body, item.Complete, item.UpdatedAt)
	if err != nil {
		return oops.Code("TODO_UPDATE_FAILED").
			With("operation", "update todo").
			With("id", item.ID).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("TODO_NOT_FOUND").
			With("id", item.ID).
			Wrap(todo.ErrNotFound)
	}
	return nil
}

// ToggleComplete flips the completion flag of one todo.
func (r *TodoRepository) ToggleComplete(ctx context.Context, id int64, now time.Time) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE todos SET complete = NOT complete, updated_at = $2
		WHERE id = $1
	`, id, now)
	if err != nil {
		return oops.Code("TODO_TOGGLE_FAILED").
			With("operation", "toggle todo").
			With("id", id).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("TODO_NOT_FOUND").
			With("id", id).
			Wrap(todo.ErrNotFound)
	}
	return nil
}

// ToggleAllComplete sets every todo to the complement of "all complete"
// in a single statement, so concurrent togglers cannot interleave halfway.
func (r *TodoRepository) ToggleAllComplete(ctx context.Context, now time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE todos
		SET complete = NOT COALESCE((SELECT bool_and(complete) FROM todos), FALSE),
		    updated_at = $1
	`, now)
	if err != nil {
		return oops.Code("TODO_TOGGLE_ALL_FAILED").
			With("operation", "toggle all todos").
			Wrap(err)
	}
	return nil
}

// Delete removes one todo.
func (r *TodoRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `
		DELETE FROM todos WHERE id = $1
	`, id)
	if err != nil {
		return oops.Code("TODO_DELETE_FAILED").
			With("operation", "delete todo").
			With("id", id).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("TODO_NOT_FOUND").
			With("id", id).
			Wrap(todo.ErrNotFound)
	}
	return nil
}

// DeleteCompleted removes every completed todo.
func (r *TodoRepository) DeleteCompleted(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM todos WHERE complete
	`)
	if err != nil {
		return oops.Code("TODO_DELETE_COMPLETED_FAILED").
			With("operation", "delete completed todos").
			Wrap(err)
	}
	return nil
}

// Compile-time interface check.
var _ todo.Repository = (*TodoRepository)(nil)
