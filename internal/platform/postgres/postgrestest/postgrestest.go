// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package postgrestest starts a disposable PostGIS database for repository tests.

The container is migrated with the shipped migrations, so repositories run
against the same schema as production. Tests using it are skipped under
"go test -short" and when no container runtime is reachable.
*/
package postgrestest

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/taibuivan/sophia/internal/platform/migration"
	pgstore "github.com/taibuivan/sophia/internal/platform/postgres"
)

// Image ships PostGIS; pg_trgm comes with the bundled contrib modules.
const Image = "postgis/postgis:16-3.4"

/*
Start runs a migrated database and returns a pool connected to it.

The container and the pool are released through t.Cleanup.
*/
func Start(t testing.TB) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("postgres container tests are skipped in -short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t.(*testing.T))

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, Image,
		tcpostgres.WithDatabase("sophia"),
		tcpostgres.WithUsername("sophia"),
		tcpostgres.WithPassword("sophia"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, migration.NewRunner(dsn, MigrationsPath(), logger).Up())

	pool, err := pgstore.NewPool(ctx, dsn, pgstore.Options{MaxConns: 4, ApplicationName: "sophia-test"}, logger)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

// Exec runs seed statements in order, failing the test on the first error.
func Exec(t testing.TB, pool *pgxpool.Pool, statements ...string) {
	t.Helper()

	for _, statement := range statements {
		_, err := pool.Exec(context.Background(), statement)
		require.NoError(t, err, statement)
	}
}

// MigrationsPath locates data/migrations relative to this source file.
func MigrationsPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "data", "migrations")
}
