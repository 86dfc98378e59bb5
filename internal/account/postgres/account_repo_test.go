// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tasknest Contributors

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasknest/tasknest/internal/account"
	"github.com/tasknest/tasknest/pkg/errutil"
)

var testTime = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

func newTestAccount() *account.Account {
	return &account.Account{
		Username:     "alice",
		PasswordHash: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		CreatedAt:    testTime,
		UpdatedAt:    testTime,
	}
}

func TestAccountRepository_Create(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface, acct *account.Account)
		wantErr   error
		wantCode  string
	}{
		{
			name: "successful insert assigns id",
			setupMock: func(mock pgxmock.PgxPoolIface, acct *account.Account) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs(acct.Username, acct.Email, acct.PasswordHash, acct.CreatedAt, acct.UpdatedAt).
					WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))
			},
		},
		{
			name: "unique violation maps to ErrDuplicate",
			setupMock: func(mock pgxmock.PgxPoolIface, acct *account.Account) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs(acct.Username, acct.Email, acct.PasswordHash, acct.CreatedAt, acct.UpdatedAt).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
			},
			wantErr:  account.ErrDuplicate,
			wantCode: "ACCOUNT_DUPLICATE",
		},
		{
			name: "other database error",
			setupMock: func(mock pgxmock.PgxPoolIface, acct *account.Account) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs(acct.Username, acct.Email, acct.PasswordHash, acct.CreatedAt, acct.UpdatedAt).
					WillReturnError(errors.New("connection refused"))
			},
			wantCode: "ACCOUNT_CREATE_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			acct := newTestAccount()
			tt.setupMock(mock, acct)

			repo := NewAccountRepository(mock)
			err = repo.Create(context.Background(), acct)

			if tt.wantCode != "" {
				require.Error(t, err)
				errutil.AssertErrorCode(t, err, tt.wantCode)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(42), acct.ID, "storage-assigned id should be filled in")
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func accountRows(acct *account.Account) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at", "updated_at"}).
		AddRow(int64(1), acct.Username, acct.Email, acct.PasswordHash, acct.CreatedAt, acct.UpdatedAt)
}

func TestAccountRepository_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	acct := newTestAccount()
	mock.ExpectQuery(`SELECT id, username, email, password_hash, created_at, updated_at`).
		WithArgs(int64(1)).
		WillReturnRows(accountRows(acct))

	repo := NewAccountRepository(mock)
	got, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "alice", got.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, username, email, password_hash, created_at, updated_at`).
		WithArgs(int64(99)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at", "updated_at"}))

	repo := NewAccountRepository(mock)
	_, err = repo.GetByID(context.Background(), 99)
	require.Error(t, err)
	assert.ErrorIs(t, err, account.ErrNotFound)
	errutil.AssertErrorCode(t, err, "ACCOUNT_NOT_FOUND")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_GetByUsername(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`LOWER\(username\) = LOWER\(\$1\)`).
					WithArgs("alice").
					WillReturnRows(accountRows(newTestAccount()))
			},
		},
		{
			name: "not found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`LOWER\(username\) = LOWER\(\$1\)`).
					WithArgs("alice").
					WillReturnRows(pgxmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at", "updated_at"}))
			},
			wantErr: account.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewAccountRepository(mock)
			got, err := repo.GetByUsername(context.Background(), "alice")

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "alice", got.Username)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAccountRepository_GetByEmail_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`LOWER\(email\) = LOWER\(\$1\)`).
		WithArgs("alice@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at", "updated_at"}))

	repo := NewAccountRepository(mock)
	_, err = repo.GetByEmail(context.Background(), "alice@example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, account.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_ListAll(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at", "updated_at"}).
		AddRow(int64(1), "alice", (*string)(nil), "hash-a", testTime, testTime).
		AddRow(int64(2), "bob", (*string)(nil), "hash-b", testTime, testTime)
	mock.ExpectQuery(`SELECT id, username, email, password_hash, created_at, updated_at`).
		WillReturnRows(rows)

	repo := NewAccountRepository(mock)
	accounts, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "alice", accounts[0].Username)
	assert.Equal(t, "bob", accounts[1].Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_ListAll_QueryError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, username, email, password_hash, created_at, updated_at`).
		WillReturnError(errors.New("connection refused"))

	repo := NewAccountRepository(mock)
	_, err = repo.ListAll(context.Background())
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "ACCOUNT_LIST_FAILED")
	assert.NoError(t, mock.ExpectationsWereMet())
}
