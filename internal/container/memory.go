// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tasknest Contributors

package container

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tasknest/tasknest/internal/account"
	"github.com/tasknest/tasknest/internal/todo"
)

// Memory is an in-memory container. It substitutes for Postgres in tests
// and local development without touching service code, and enforces the
// same uniqueness rules the SQL schema does.
type Memory struct {
	accounts *memoryAccountRepository
	todos    *memoryTodoRepository
}

// NewMemory creates an empty in-memory container.
func NewMemory() *Memory {
	return &Memory{
		accounts: &memoryAccountRepository{byID: make(map[int64]account.Account)},
		todos:    &memoryTodoRepository{byID: make(map[int64]todo.Todo)},
	}
}

// Accounts returns the shared account repository handle.
func (c *Memory) Accounts() account.Repository {
	return c.accounts
}

// Todos returns the shared todo repository handle.
func (c *Memory) Todos() todo.Repository {
	return c.todos
}

// Compile-time interface check.
var _ Container = (*Memory)(nil)

type memoryAccountRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]account.Account
}

func (r *memoryAccountRepository) Create(_ context.Context, acct *account.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if strings.EqualFold(existing.Username, acct.Username) {
			return account.ErrDuplicate
		}
		if acct.Email != nil && existing.Email != nil && strings.EqualFold(*existing.Email, *acct.Email) {
			return account.ErrDuplicate
		}
	}

	r.nextID++
	acct.ID = r.nextID
	r.byID[acct.ID] = *acct
	return nil
}

func (r *memoryAccountRepository) GetByID(_ context.Context, id int64) (*account.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acct, ok := r.byID[id]
	if !ok {
		return nil, account.ErrNotFound
	}
	return &acct, nil
}

func (r *memoryAccountRepository) GetByUsername(_ context.Context, username string) (*account.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, acct := range r.byID {
		if strings.EqualFold(acct.Username, username) {
			return &acct, nil
		}
	}
	return nil, account.ErrNotFound
}

func (r *memoryAccountRepository) GetByEmail(_ context.Context, email string) (*account.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, acct := range r.byID {
		if acct.Email != nil && strings.EqualFold(*acct.Email, email) {
			return &acct, nil
		}
	}
	return nil, account.ErrNotFound
}

func (r *memoryAccountRepository) ListAll(_ context.Context) ([]account.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	accounts := make([]account.Account, 0, len(r.byID))
	for _, acct := range r.byID {
		accounts = append(accounts, acct)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

type memoryTodoRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]todo.Todo
}

func (r *memoryTodoRepository) ListAll(_ context.Context) ([]todo.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	todos := make([]todo.Todo, 0, len(r.byID))
	for _, item := range r.byID {
		todos = append(todos, item)
	}
	sort.Slice(todos, func(i, j int) bool { return todos[i].ID < todos[j].ID })
	return todos, nil
}

func (r *memoryTodoRepository) Create(_ context.Context, item *todo.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	item.ID = r.nextID
	r.byID[item.ID] = *item
	return nil
}

func (r *memoryTodoRepository) Update(_ context.Context, item *todo.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[item.ID]
	if !ok {
		return todo.ErrNotFound
	}
	existing.Body = item.Body
	existing.Complete = item.Complete
	existing.UpdatedAt = item.UpdatedAt
	r.byID[item.ID] = existing
	return nil
}

func (r *memoryTodoRepository) ToggleComplete(_ context.Context, id int64, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.byID[id]
	if !ok {
		return todo.ErrNotFound
	}
	item.Complete = !item.Complete
	item.UpdatedAt = now
	r.byID[id] = item
	return nil
}

func (r *memoryTodoRepository) ToggleAllComplete(_ context.Context, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	allComplete := true
	for _, item := range r.byID {
		if !item.Complete {
			allComplete = false
			break
		}
	}
	for id, item := range r.byID {
		item.Complete = !allComplete
		item.UpdatedAt = now
		r.byID[id] = item
	}
	return nil
}

func (r *memoryTodoRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return todo.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memoryTodoRepository) DeleteCompleted(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.byID {
		if item.Complete {
			delete(r.byID, id)
		}
	}
	return nil
}
