// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tasknest Contributors

package account

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/tasknest/tasknest/internal/auth"
	"github.com/tasknest/tasknest/internal/fault"
	"github.com/tasknest/tasknest/internal/observability"
	"github.com/tasknest/tasknest/pkg/errutil"
)

// Service orchestrates sign-up and sign-in. It borrows a shared repository
// handle for the duration of each operation and maps every failure to
// exactly one fault kind.
type Service struct {
	accounts Repository
	hasher   auth.PasswordHasher
	logger   *slog.Logger
}

// NewService creates a new Service.
func NewService(accounts Repository, hasher auth.PasswordHasher) (*Service, error) {
	return NewServiceWithLogger(accounts, hasher, slog.Default())
}

// NewServiceWithLogger creates a new Service with an explicit logger.
func NewServiceWithLogger(accounts Repository, hasher auth.PasswordHasher, logger *slog.Logger) (*Service, error) {
	if accounts == nil {
		return nil, fault.New(fault.SystemError, "accounts repository is required")
	}
	if hasher == nil {
		return nil, fault.New(fault.SystemError, "password hasher is required")
	}
	if logger == nil {
		return nil, fault.New(fault.SystemError, "logger is required")
	}
	return &Service{
		accounts: accounts,
		hasher:   hasher,
		logger:   logger,
	}, nil
}

// SignUp registers a new account with a hashed password.
//
// The username pre-check is a read-then-write sequence and inherently racy;
// the storage uniqueness constraint is the authoritative guard, and its
// violation surfaces as Conflict, not SystemError.
func (s *Service) SignUp(ctx context.Context, username, password string) (*Account, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fault.New(fault.SystemError, "username must not be empty")
	}

	_, err := s.accounts.GetByUsername(ctx, username)
	switch {
	case err == nil:
		observability.RecordSignup("conflict")
		return nil, fault.With(fault.Conflict, "username", username).Errorf("duplicate username")
	case !errors.Is(err, ErrNotFound):
		return nil, fault.Wrap(fault.SystemError, err, "failed to look up username %q", username)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fault.Wrap(fault.SystemError, err, "failed to hash password")
	}

	now := time.Now().UTC()
	acct := &Account{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.accounts.Create(ctx, acct); err != nil {
		if errors.Is(err, ErrDuplicate) {
			// Lost the race; the constraint caught it.
			observability.RecordSignup("conflict")
			return nil, fault.With(fault.Conflict, "username", username).Errorf("duplicate username")
		}
		errutil.LogError(s.logger, "sign up failed", err)
		return nil, fault.Wrap(fault.SystemError, err, "failed to create account")
	}

	observability.RecordSignup("success")
	s.logger.Info("account created", "account_id", acct.ID, "username", acct.Username)
	return acct, nil
}

// AuthenticateByID fetches the account by ID and verifies the password.
func (s *Service) AuthenticateByID(ctx context.Context, id int64, password string) (*Account, error) {
	acct, err := s.accounts.GetByID(ctx, id)
	return s.verify(acct, password, err)
}

// AuthenticateByEmail fetches the account by email and verifies the password.
func (s *Service) AuthenticateByEmail(ctx context.Context, email, password string) (*Account, error) {
	acct, err := s.accounts.GetByEmail(ctx, email)
	return s.verify(acct, password, err)
}

// verify classifies a lookup outcome and checks the credential.
// Missing record, credential mismatch, and storage failure each produce a
// distinct fault kind so the boundary layer never re-derives the cause.
func (s *Service) verify(acct *Account, password string, lookupErr error) (*Account, error) {
	if lookupErr != nil {
		if errors.Is(lookupErr, ErrNotFound) {
			observability.RecordLogin("not_found")
			return nil, fault.New(fault.NotFound, "user is not found")
		}
		errutil.LogError(s.logger, "account lookup failed", lookupErr)
		return nil, fault.Wrap(fault.SystemError, lookupErr, "failed to fetch user")
	}

	if !s.hasher.Verify(password, acct.PasswordHash) {
		observability.RecordLogin("unauthenticated")
		return nil, fault.New(fault.Unauthenticated, "password is invalid")
	}

	observability.RecordLogin("success")
	return acct, nil
}

// ListAll returns every account. Storage failure maps to SystemError.
func (s *Service) ListAll(ctx context.Context) ([]Account, error) {
	accounts, err := s.accounts.ListAll(ctx)
	if err != nil {
		errutil.LogError(s.logger, "account list failed", err)
		return nil, fault.Wrap(fault.SystemError, err, "failed to fetch users")
	}
	return accounts, nil
}
