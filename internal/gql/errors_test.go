// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tasknest Contributors

package gql_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasknest/tasknest/internal/fault"
	"github.com/tasknest/tasknest/internal/gql"
)

func TestFieldError_KnownKinds(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
		wantMsg  string
	}{
		{
			name:     "unauthenticated",
			err:      fault.New(fault.Unauthenticated, "password is invalid"),
			wantCode: "UNAUTHENTICATED",
			wantMsg:  "password is invalid",
		},
		{
			name:     "no auth header",
			err:      fault.New(fault.NoAuthHeader, "authorization header is missing"),
			wantCode: "NO_AUTH_HEADER",
			wantMsg:  "authorization header is missing",
		},
		{
			name:     "token creation failed",
			err:      fault.New(fault.TokenCreationFailed, "failed to sign token"),
			wantCode: "TOKEN_CREATION_FAILED",
			wantMsg:  "failed to sign token",
		},
		{
			name:     "not found",
			err:      fault.New(fault.NotFound, "user is not found"),
			wantCode: "NOT_FOUND",
			wantMsg:  "user is not found",
		},
		{
			name:     "conflict",
			err:      fault.New(fault.Conflict, "username is already taken"),
			wantCode: "CONFLICT",
			wantMsg:  "username is already taken",
		},
		{
			name:     "system error",
			err:      fault.New(fault.SystemError, "failed to fetch todos"),
			wantCode: "SYSTEM_ERROR",
			wantMsg:  "failed to fetch todos",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := gql.FieldError(tt.err)
			require.NotNil(t, fe)
			assert.Equal(t, tt.wantMsg, fe.Message)
			assert.Equal(t, tt.wantCode, fe.Extensions["code"])
		})
	}
}

func TestFieldError_UnclassifiedError(t *testing.T) {
	fe := gql.FieldError(errors.New("pq: connection reset by peer"))
	require.NotNil(t, fe)
	assert.Equal(t, "internal system error", fe.Message)
	assert.Equal(t, "SYSTEM_ERROR", fe.Extensions["code"])
	assert.NotContains(t, fe.Message, "connection reset", "internal details must not leak to clients")
}

func TestFieldError_Nil(t *testing.T) {
	assert.Nil(t, gql.FieldError(nil))
}

func TestFieldErrors_SkipsNils(t *testing.T) {
	list := gql.FieldErrors(
		nil,
		fault.New(fault.NotFound, "user is not found"),
		nil,
		fault.New(fault.Conflict, "username is already taken"),
	)
	require.Len(t, list, 2)
	assert.Equal(t, "NOT_FOUND", list[0].Extensions["code"])
	assert.Equal(t, "CONFLICT", list[1].Extensions["code"])
}
