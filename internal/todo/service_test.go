// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tasknest Contributors

package todo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasknest/tasknest/internal/container"
	"github.com/tasknest/tasknest/internal/fault"
	"github.com/tasknest/tasknest/internal/todo"
)

func newTestService(t *testing.T) *todo.Service {
	t.Helper()
	svc, err := todo.NewService(container.NewMemory().Todos())
	require.NoError(t, err)
	return svc
}

func TestNewService_NilRepository(t *testing.T) {
	_, err := todo.NewService(nil)
	require.Error(t, err)
	assert.True(t, fault.Is(err, fault.SystemError))
}

func TestService_CreateAndGetAll(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	first, err := svc.Create(ctx, "buy milk")
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.False(t, first.Complete)

	second, err := svc.Create(ctx, "walk dog")
	require.NoError(t, err)

	todos, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 2)
	assert.Equal(t, first.ID, todos[0].ID)
	assert.Equal(t, second.ID, todos[1].ID)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	created, err := svc.Create(ctx, "buy milk")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, "buy oat milk", true)
	require.NoError(t, err)
	assert.Equal(t, "buy oat milk", updated.Body)
	assert.True(t, updated.Complete)

	todos, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "buy oat milk", todos[0].Body)
	assert.True(t, todos[0].Complete)
}

func TestService_Update_NotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Update(context.Background(), 999, "ghost", false)
	require.Error(t, err)
	assert.True(t, fault.Is(err, fault.NotFound))
	assert.Equal(t, "todo is not found", fault.Message(err))
}

func TestService_ToggleComplete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	created, err := svc.Create(ctx, "buy milk")
	require.NoError(t, err)

	require.NoError(t, svc.ToggleComplete(ctx, created.ID))
	todos, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.True(t, todos[0].Complete)

	require.NoError(t, svc.ToggleComplete(ctx, created.ID))
	todos, err = svc.GetAll(ctx)
	require.NoError(t, err)
	assert.False(t, todos[0].Complete, "second toggle should flip back")
}

func TestService_ToggleComplete_NotFound(t *testing.T) {
	svc := newTestService(t)

	err := svc.ToggleComplete(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, fault.Is(err, fault.NotFound))
}

func TestService_ToggleAllComplete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Create(ctx, "one")
	require.NoError(t, err)
	second, err := svc.Create(ctx, "two")
	require.NoError(t, err)

	// Mixed state: everything becomes complete.
	require.NoError(t, svc.ToggleComplete(ctx, second.ID))
	require.NoError(t, svc.ToggleAllComplete(ctx))

	todos, err := svc.GetAll(ctx)
	require.NoError(t, err)
	for _, item := range todos {
		assert.True(t, item.Complete)
	}

	// All complete: everything flips back to incomplete.
	require.NoError(t, svc.ToggleAllComplete(ctx))
	todos, err = svc.GetAll(ctx)
	require.NoError(t, err)
	for _, item := range todos {
		assert.False(t, item.Complete)
	}
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	created, err := svc.Create(ctx, "buy milk")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	todos, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, todos)

	err = svc.Delete(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, fault.Is(err, fault.NotFound))
}

func TestService_ClearCompleted(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Create(ctx, "keep me")
	require.NoError(t, err)
	done, err := svc.Create(ctx, "done already")
	require.NoError(t, err)
	require.NoError(t, svc.ToggleComplete(ctx, done.ID))

	require.NoError(t, svc.ClearCompleted(ctx))

	todos, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "keep me", todos[0].Body)
}

// failingRepository forces storage failures for SystemError mapping tests.
type failingRepository struct{}

var errBoom = errors.New("connection refused")

func (failingRepository) ListAll(context.Context) ([]todo.Todo, error)       { return nil, errBoom }
func (failingRepository) Create(context.Context, *todo.Todo) error           { return errBoom }
func (failingRepository) Update(context.Context, *todo.Todo) error           { return errBoom }
func (failingRepository) ToggleComplete(context.Context, int64, time.Time) error {
	return errBoom
}
func (failingRepository) ToggleAllComplete(context.Context, time.Time) error { return errBoom }
func (failingRepository) Delete(context.Context, int64) error                { return errBoom }
func (failingRepository) DeleteCompleted(context.Context) error              { return errBoom }

func TestService_StorageFailuresMapToSystemError(t *testing.T) {
	ctx := context.Background()
	svc, err := todo.NewService(failingRepository{})
	require.NoError(t, err)

	_, err = svc.GetAll(ctx)
	assert.True(t, fault.Is(err, fault.SystemError))

	_, err = svc.Create(ctx, "x")
	assert.True(t, fault.Is(err, fault.SystemError))

	_, err = svc.Update(ctx, 1, "x", false)
	assert.True(t, fault.Is(err, fault.SystemError))

	assert.True(t, fault.Is(svc.ToggleComplete(ctx, 1), fault.SystemError))
	assert.True(t, fault.Is(svc.ToggleAllComplete(ctx), fault.SystemError))
	assert.True(t, fault.Is(svc.Delete(ctx, 1), fault.SystemError))
	assert.True(t, fault.Is(svc.ClearCompleted(ctx), fault.SystemError))
}
