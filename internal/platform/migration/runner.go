// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration applies and inspects the SQL migrations of the survey
// schema with golang-migrate.
//
// The API applies pending migrations at startup when RUN_MIGRATIONS is set.
// The export CLI only reads [Runner.Status] and refuses to run against a
// schema that is dirty or behind the migration files it ships with.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Status compares the database with the migration files.
type Status struct {
	Applied uint
	Latest  uint
	Dirty   bool
}

// Current reports whether every migration file has been applied cleanly.
func (s Status) Current() bool {
	return !s.Dirty && s.Applied == s.Latest
}

// Runner binds a database to a directory of migration files.
type Runner struct {
	dsn    string
	path   string
	logger *slog.Logger
}

// NewRunner does not connect; every method opens and closes its own migrator.
func NewRunner(dsn, path string, logger *slog.Logger) *Runner {
	return &Runner{dsn: dsn, path: path, logger: logger}
}

// Up applies all pending migrations. A dirty database is left untouched.
func (runner *Runner) Up() error {
	migrator, err := runner.open()
	if err != nil {
		return err
	}
	defer runner.close(migrator)

	from, dirty, err := appliedVersion(migrator)
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("migration: database is dirty at version %d, fix it by hand", from)
	}

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			runner.logger.Info("migration_already_up_to_date", slog.Uint64("version", uint64(from)))
			return nil
		}
		return fmt.Errorf("migration: up failed: %w", err)
	}

	to, _, _ := appliedVersion(migrator)
	runner.logger.Info("migration_successful",
		slog.Uint64("from_version", uint64(from)),
		slog.Uint64("to_version", uint64(to)),
	)
	return nil
}

// Status reads the applied version and the newest migration file.
func (runner *Runner) Status() (Status, error) {
	latest, err := LatestVersion(runner.path)
	if err != nil {
		return Status{}, err
	}

	migrator, err := runner.open()
	if err != nil {
		return Status{}, err
	}
	defer runner.close(migrator)

	applied, dirty, err := appliedVersion(migrator)
	if err != nil {
		return Status{}, err
	}
	return Status{Applied: applied, Latest: latest, Dirty: dirty}, nil
}

// LatestVersion returns the highest version found in path, or 0 when the
// directory holds no migrations.
func LatestVersion(path string) (uint, error) {
	driver, err := source.Open("file://" + path)
	if err != nil {
		return 0, fmt.Errorf("migration: open %s: %w", path, err)
	}
	defer driver.Close()

	version, err := driver.First()
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("migration: read %s: %w", path, err)
	}

	for {
		next, err := driver.Next(version)
		if errors.Is(err, os.ErrNotExist) {
			return version, nil
		}
		if err != nil {
			return 0, fmt.Errorf("migration: read %s: %w", path, err)
		}
		version = next
	}
}

func (runner *Runner) open() (*migrate.Migrate, error) {
	migrator, err := migrate.New("file://"+runner.path, ToPgx5DSN(runner.dsn))
	if err != nil {
		return nil, fmt.Errorf("migration: failed to initialize: %w", err)
	}
	migrator.Log = migrateLogger{logger: runner.logger}
	return migrator, nil
}

func (runner *Runner) close(migrator *migrate.Migrate) {
	sourceErr, databaseErr := migrator.Close()
	if err := errors.Join(sourceErr, databaseErr); err != nil {
		runner.logger.Warn("migration_close_failed", slog.Any("error", err))
	}
}

// appliedVersion maps "never migrated" to version 0.
func appliedVersion(migrator *migrate.Migrate) (uint, bool, error) {
	version, dirty, err := migrator.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("migration: failed to get current version: %w", err)
	}
	return version, dirty, nil
}

// ToPgx5DSN rewrites postgres:// and postgresql:// URLs to the pgx5:// scheme
// of the golang-migrate pgx/v5 driver. Other DSNs are returned unchanged.
func ToPgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, found := strings.CutPrefix(dsn, prefix); found {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// migrateLogger forwards golang-migrate output to slog at debug level.
type migrateLogger struct {
	logger *slog.Logger
}

func (l migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug("migration_progress", slog.String("message", strings.TrimSpace(fmt.Sprintf(format, args...))))
}

func (l migrateLogger) Verbose() bool { return false }
