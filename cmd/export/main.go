// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command export writes catalogue data to CSV files for offline analysis.
//
//	export inscriptions --output inscriptions.csv
//	export inscriptions --plain-text -o -
//
// Without --output the file is inscriptions_with_transcription_<timestamp>.csv
// in the working directory.
//
// The database is read through the same repositories as the API server, so
// the CSV matches GET /api/v1/inscriptions/export.csv column for column.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/taibuivan/sophia/internal/inscription"
	"github.com/taibuivan/sophia/internal/platform/constants"
	"github.com/taibuivan/sophia/internal/platform/migration"
	pgstore "github.com/taibuivan/sophia/internal/platform/postgres"
)

// options holds the flags shared by every subcommand.
type options struct {
	databaseURL      string
	migrationPath    string
	statementTimeout time.Duration
	verbose          bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// rootCommand assembles the CLI.
func rootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "export",
		Short:         "Export catalogue data as CSV",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&opts.databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
	root.PersistentFlags().StringVar(&opts.migrationPath, "migrations", envOr("MIGRATION_PATH", "./data/migrations"), "SQL migrations directory")
	root.PersistentFlags().DurationVar(&opts.statementTimeout, "statement-timeout", 10*time.Minute, "Per-query timeout, 0 to disable")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(inscriptionsCommand(opts))
	return root
}

// inscriptionsCommand exports every inscription with a transcription.
func inscriptionsCommand(opts *options) *cobra.Command {
	var (
		output    string
		plainText bool
	)

	command := &cobra.Command{
		Use:   "inscriptions",
		Short: "Export transcribed inscriptions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output == "" {
				output = defaultOutput(time.Now())
			}
			return runInscriptions(cmd.Context(), opts, output, inscription.ExportOptions{PlainText: plainText}, cmd.OutOrStdout())
		},
	}

	command.Flags().StringVarP(&output, "output", "o", "", `Destination file, "-" for stdout (default inscriptions_with_transcription_<timestamp>.csv)`)
	command.Flags().BoolVar(&plainText, "plain-text", false, "Render rich-text fields as plain text instead of stored markup")
	return command
}

// defaultOutput names the export file after the local time it was started.
func defaultOutput(now time.Time) string {
	return fmt.Sprintf("inscriptions_with_transcription_%s.csv", now.Format("20060102_150405"))
}

func runInscriptions(ctx context.Context, opts *options, output string, exportOptions inscription.ExportOptions, stdout io.Writer) error {
	log := newLogger(opts.verbose)

	if opts.databaseURL == "" {
		return fmt.Errorf("export: --database-url or DATABASE_URL is required")
	}

	// The CSV columns follow the shipped migrations; a dirty or older schema may not match.
	status, err := migration.NewRunner(opts.databaseURL, opts.migrationPath, log).Status()
	if err != nil {
		return err
	}
	if !status.Current() {
		return fmt.Errorf("export: schema at version %d (dirty=%t), migrations expect %d", status.Applied, status.Dirty, status.Latest)
	}
	log.Debug("schema_version_checked", slog.Uint64("version", uint64(status.Applied)))

	pool, err := pgstore.NewPool(ctx, opts.databaseURL, pgstore.Options{
		MaxConns:         2,
		StatementTimeout: opts.statementTimeout,
		ApplicationName:  constants.AppName + "-export",
	}, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	destination, closeDestination, err := openOutput(output, stdout)
	if err != nil {
		return err
	}

	service := inscription.NewService(inscription.NewPostgresRepository(pool), log, nil, inscription.Limits{})
	rows, err := service.Export(ctx, destination, exportOptions)
	if closeErr := closeDestination(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("export: inscriptions: %w", err)
	}

	log.Info("export_complete", slog.Int("rows", rows), slog.String("output", output))
	return nil
}

// openOutput opens the destination file, or wraps stdout for "-".
func openOutput(output string, stdout io.Writer) (io.Writer, func() error, error) {
	if output == "-" {
		return stdout, func() error { return nil }, nil
	}

	file, err := os.Create(output)
	if err != nil {
		return nil, nil, fmt.Errorf("export: create %s: %w", output, err)
	}
	return file, file.Close, nil
}

// newLogger writes to stderr so CSV on stdout stays clean.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
		With(slog.String(constants.FieldApp, constants.AppName+"-export"))
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
