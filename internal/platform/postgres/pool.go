// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package postgres opens the pgx pool shared by the catalogue repositories and
// exports its statistics to Prometheus.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/sophia/internal/platform/constants"
)

const (
	connectTimeout = 5 * time.Second
	pingTimeout    = 2 * time.Second
)

// Options sizes the pool for its caller. The API server serves many short
// searches; the export CLI runs one long scan.
type Options struct {
	MaxConns int32
	MinConns int32

	// StatementTimeout is applied to every connection; zero disables it.
	StatementTimeout time.Duration

	// ApplicationName shows up in pg_stat_activity.
	ApplicationName string
}

// ServerOptions is the profile used by the HTTP API.
func ServerOptions() Options {
	return Options{
		MaxConns:         20,
		MinConns:         2,
		StatementTimeout: constants.GlobalRequestTimeout,
		ApplicationName:  constants.AppName,
	}
}

func (o Options) apply(poolConfig *pgxpool.Config) {
	if o.MaxConns > 0 {
		poolConfig.MaxConns = o.MaxConns
	}
	if o.MinConns > 0 && o.MinConns <= poolConfig.MaxConns {
		poolConfig.MinConns = o.MinConns
	}
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 10 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout

	if o.ApplicationName != "" {
		poolConfig.ConnConfig.RuntimeParams["application_name"] = o.ApplicationName
	}

	timeoutSQL := StatementTimeoutSQL(o.StatementTimeout)
	poolConfig.AfterConnect = func(ctx context.Context, connection *pgx.Conn) error {
		_, err := connection.Exec(ctx, timeoutSQL)
		return err
	}
}

/*
NewPool parses dsn, applies opts and checks the pool with a ping before
returning it.

Parameters:
  - ctx: bounds the initial connection attempt
  - dsn: libpq keyword string or postgres:// URL
  - opts: see [ServerOptions]
*/
func NewPool(ctx context.Context, dsn string, opts Options, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: invalid DSN: %w", err)
	}
	opts.apply(poolConfig)

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create pool: %w", err)
	}

	if err := Ping(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("postgres_pool_connected",
		slog.Int("max_conns", int(poolConfig.MaxConns)),
		slog.Duration("statement_timeout", opts.StatementTimeout),
	)
	return pool, nil
}

// StatementTimeoutSQL renders the per-connection statement_timeout in milliseconds.
func StatementTimeoutSQL(timeout time.Duration) string {
	return fmt.Sprintf("SET statement_timeout = %d", timeout.Milliseconds())
}

// Ping checks the pool with a short deadline.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("postgres: ping failed: %w", err)
	}
	return nil
}
