// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tasknest Contributors

package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/tasknest/tasknest/internal/account"
	"github.com/tasknest/tasknest/internal/auth"
	"github.com/tasknest/tasknest/internal/config"
	"github.com/tasknest/tasknest/internal/container"
	"github.com/tasknest/tasknest/internal/fault"
	"github.com/tasknest/tasknest/internal/store"
)

// NewSeedCmd creates the seed subcommand.
func NewSeedCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the initial admin account",
		Long: `Create the initial admin account. If the account already exists
the command reports it and exits successfully.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd, username, password)
		},
	}

	defaults := config.Default()
	cmd.Flags().String("database.url", defaults.Database.URL, "PostgreSQL connection URL")
	cmd.Flags().StringVar(&username, "username", "admin", "admin account username")
	cmd.Flags().StringVar(&password, "password", "", "admin account password (required)")

	return cmd
}

func runSeed(cmd *cobra.Command, username, password string) error {
	if password == "" {
		return oops.Code("CONFIG_INVALID").Errorf("--password is required")
	}

	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	pool, err := store.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	deps := container.NewPostgres(pool)
	svc, err := account.NewService(deps.Accounts(), auth.NewArgon2idHasher())
	if err != nil {
		return err
	}

	acct, err := svc.SignUp(ctx, username, password)
	if err != nil {
		if fault.Is(err, fault.Conflict) {
			cmd.Printf("Account %q already exists, skipping\n", username)
			return nil
		}
		return err
	}

	cmd.Printf("Created account %q (id: %d)\n", acct.Username, acct.ID)
	return nil
}
