// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tasknest Contributors

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"

	"github.com/tasknest/tasknest/internal/account"
	"github.com/tasknest/tasknest/internal/auth"
	"github.com/tasknest/tasknest/internal/config"
	"github.com/tasknest/tasknest/internal/container"
	"github.com/tasknest/tasknest/internal/logging"
	"github.com/tasknest/tasknest/internal/observability"
	"github.com/tasknest/tasknest/internal/store"
	"github.com/tasknest/tasknest/internal/todo"
)

// application holds the wired service graph for the serve command.
type application struct {
	tokens   *auth.TokenService
	accounts *account.Service
	todos    *todo.Service
}

// app is the running service graph, set once by runServe. The API layer
// resolves its services through this.
var app *application

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Tasknest server",
		Long: `Start the Tasknest server: connects to PostgreSQL, wires the
account and todo services, and exposes metrics and health probes.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cmd.Flags())
		},
	}

	defaults := config.Default()
	cmd.Flags().String("server.addr", defaults.Server.Addr, "API listen address")
	cmd.Flags().String("database.url", defaults.Database.URL, "PostgreSQL connection URL")
	cmd.Flags().String("log.format", defaults.Log.Format, "log format (json or text)")
	cmd.Flags().String("observability.addr", defaults.Observability.Addr, "metrics/health HTTP address")

	return cmd
}

func runServe(ctx context.Context, flags *flag.FlagSet) error {
	cfg, err := config.Load(configFile, flags)
	if err != nil {
		return err
	}

	logging.SetDefault("tasknest", version, cfg.Log.Format)

	// The signing secret has no safe default. Refusing to start beats
	// issuing tokens the operator cannot trust.
	if cfg.Auth.JWTSecret == "" {
		return oops.Code("CONFIG_INVALID").Errorf("JWT secret is required (set TASKNEST_JWT_SECRET or auth.jwt_secret)")
	}

	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool, err := store.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := checkSchema(cfg.Database.URL); err != nil {
		return err
	}

	deps := container.NewPostgres(pool)

	accountSvc, err := account.NewService(deps.Accounts(), auth.NewArgon2idHasher())
	if err != nil {
		return err
	}
	todoSvc, err := todo.NewService(deps.Todos())
	if err != nil {
		return err
	}
	app = &application{tokens: tokens, accounts: accountSvc, todos: todoSvc}

	obsServer := observability.NewServer(cfg.Observability.Addr, func() bool {
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer pingCancel()
		return pool.Ping(pingCtx) == nil
	})
	obsErrCh, err := obsServer.Start()
	if err != nil {
		return err
	}
	go monitorServerErrors(ctx, cancel, obsErrCh, "observability")

	slog.Info("tasknest ready",
		"server_addr", cfg.Server.Addr,
		"metrics_addr", obsServer.Addr(),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig)
	case <-ctx.Done():
		slog.Info("context cancelled, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := obsServer.Stop(shutdownCtx); err != nil {
		slog.Warn("error stopping observability server", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

// checkSchema verifies migrations have been applied before serving.
func checkSchema(databaseURL string) error {
	migrator, err := store.NewMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := migrator.Close(); closeErr != nil {
			slog.Debug("error closing migrator", "error", closeErr)
		}
	}()

	schemaVersion, dirty, err := migrator.Version()
	if err != nil {
		return err
	}
	if dirty {
		return oops.Code("SCHEMA_DIRTY").With("version", schemaVersion).
			Errorf("database schema is dirty; fix it and run 'tasknest migrate force'")
	}
	if schemaVersion == 0 {
		return oops.Code("SCHEMA_MISSING").
			Errorf("database schema is empty; run 'tasknest migrate up' first")
	}

	slog.Info("database schema verified", "version", schemaVersion)
	return nil
}

// monitorServerErrors cancels the context when a background server fails,
// so a broken server triggers graceful shutdown of the whole process.
func monitorServerErrors(ctx context.Context, cancel context.CancelFunc, errCh <-chan error, serverName string) {
	select {
	case err, ok := <-errCh:
		if !ok {
			// Channel closed, server stopped gracefully
			return
		}
		if err != nil {
			slog.Error("server error, triggering shutdown",
				"server", serverName,
				"error", err,
			)
			cancel()
		}
	case <-ctx.Done():
	}
}
