// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tasknest Contributors

// Package container constructs concrete repository implementations and hands
// them out to services. It is the only place that knows the storage engine;
// swapping the container swaps the engine without touching service code.
package container

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tasknest/tasknest/internal/account"
	accountpg "github.com/tasknest/tasknest/internal/account/postgres"
	"github.com/tasknest/tasknest/internal/todo"
	todopg "github.com/tasknest/tasknest/internal/todo/postgres"
)

// Container hands out repository handles. Handles are shared, not copied:
// every caller borrows the same instance, bound to one connection pool, for
// the duration of one operation.
type Container interface {
	// Accounts returns the account repository handle.
	Accounts() account.Repository

	// Todos returns the todo repository handle.
	Todos() todo.Repository
}

// Postgres is the production container over a pgx connection pool.
// The pool is internally synchronized; the container adds no locking.
type Postgres struct {
	pool     *pgxpool.Pool
	accounts *accountpg.AccountRepository
	todos    *todopg.TodoRepository
}

// NewPostgres creates a Postgres container bound to the given pool.
// Repositories are constructed once and shared by all callers.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{
		pool:     pool,
		accounts: accountpg.NewAccountRepository(pool),
		todos:    todopg.NewTodoRepository(pool),
	}
}

// Accounts returns the shared account repository handle.
func (c *Postgres) Accounts() account.Repository {
	return c.accounts
}

// Todos returns the shared todo repository handle.
func (c *Postgres) Todos() todo.Repository {
	return c.todos
}

// Compile-time interface check.
var _ Container = (*Postgres)(nil)
