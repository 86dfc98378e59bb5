// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tasknest Contributors

package todo

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tasknest/tasknest/internal/fault"
	"github.com/tasknest/tasknest/pkg/errutil"
)

// Service implements the todo-list operations over a shared repository
// handle. Every storage failure maps to a single fault kind; there are no
// retries in this layer.
type Service struct {
	todos  Repository
	logger *slog.Logger
}

// NewService creates a new Service.
func NewService(todos Repository) (*Service, error) {
	return NewServiceWithLogger(todos, slog.Default())
}

// NewServiceWithLogger creates a new Service with an explicit logger.
func NewServiceWithLogger(todos Repository, logger *slog.Logger) (*Service, error) {
	if todos == nil {
		return nil, fault.New(fault.SystemError, "todos repository is required")
	}
	if logger == nil {
		return nil, fault.New(fault.SystemError, "logger is required")
	}
	return &Service{todos: todos, logger: logger}, nil
}

// GetAll returns every todo.
func (s *Service) GetAll(ctx context.Context) ([]Todo, error) {
	todos, err := s.todos.ListAll(ctx)
	if err != nil {
		errutil.LogError(s.logger, "todo list failed", err)
		return nil, fault.Wrap(fault.SystemError, err, "failed to fetch todos")
	}
	return todos, nil
}

// Create adds a new todo with the given body.
func (s *Service) Create(ctx context.Context, body string) (*Todo, error) {
	now := time.Now().UTC()
	item := &Todo{
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.todos.Create(ctx, item); err != nil {
		errutil.LogError(s.logger, "todo create failed", err)
		return nil, fault.Wrap(fault.SystemError, err, "failed to create todo")
	}
	return item, nil
}

// Update replaces the body and completion flag of an existing todo.
func (s *Service) Update(ctx context.Context, id int64, body string, complete bool) (*Todo, error) {
	item := &Todo{
		ID:        id,
		Body:      body,
		Complete:  complete,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.todos.Update(ctx, item); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fault.With(fault.NotFound, "id", id).Errorf("todo is not found")
		}
		errutil.LogError(s.logger, "todo update failed", err)
		return nil, fault.Wrap(fault.SystemError, err, "failed to update todo(id: %d)", id)
	}
	return item, nil
}

// ToggleComplete flips the completion flag of one todo.
func (s *Service) ToggleComplete(ctx context.Context, id int64) error {
	if err := s.todos.ToggleComplete(ctx, id, time.Now().UTC()); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fault.With(fault.NotFound, "id", id).Errorf("todo is not found")
		}
		errutil.LogError(s.logger, "todo toggle failed", err)
		return fault.Wrap(fault.SystemError, err, "failed to complete todo(id: %d)", id)
	}
	return nil
}

// ToggleAllComplete flips every todo's completion flag as one operation.
func (s *Service) ToggleAllComplete(ctx context.Context) error {
	if err := s.todos.ToggleAllComplete(ctx, time.Now().UTC()); err != nil {
		errutil.LogError(s.logger, "todo toggle all failed", err)
		return fault.Wrap(fault.SystemError, err, "failed to complete all todos")
	}
	return nil
}

// Delete removes one todo.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.todos.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fault.With(fault.NotFound, "id", id).Errorf("todo is not found")
		}
		errutil.LogError(s.logger, "todo delete failed", err)
		return fault.Wrap(fault.SystemError, err, "failed to delete todo(id: %d)", id)
	}
	return nil
}

// ClearCompleted removes every completed todo.
func (s *Service) ClearCompleted(ctx context.Context) error {
	if err := s.todos.DeleteCompleted(ctx); err != nil {
		errutil.LogError(s.logger, "todo clear completed failed", err)
		return fault.Wrap(fault.SystemError, err, "failed to delete all completed todos")
	}
	return nil
}
