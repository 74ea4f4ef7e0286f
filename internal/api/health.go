// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/sophia/internal/platform/constants"
	"github.com/taibuivan/sophia/internal/platform/respond"
)

// readinessTimeout bounds the whole /ready probe, all checks included.
const readinessTimeout = 3 * time.Second

// Check is one dependency probed by /ready.
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

type checkResult struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type healthHandler struct {
	checks []Check
	logger *slog.Logger
}

// NewHealthHandlers returns the /health and /ready handlers. Checks run
// concurrently and the report keeps their order.
func NewHealthHandlers(checks []Check, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{checks: checks, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness answers while the process can serve HTTP at all.
func (handler *healthHandler) liveness(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, map[string]string{
		constants.FieldStatus:  "ok",
		constants.FieldApp:     constants.AppName,
		constants.FieldVersion: constants.AppVersion,
	})
}

// readiness answers 503 "degraded" as soon as one dependency fails.
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), readinessTimeout)
	defer cancel()

	results := make([]checkResult, len(handler.checks))

	var group errgroup.Group
	for i, check := range handler.checks {
		group.Go(func() error {
			results[i] = checkResult{Name: check.Name, OK: true}
			if err := check.Probe(ctx); err != nil {
				results[i] = checkResult{Name: check.Name, Error: err.Error()}
				handler.logger.ErrorContext(ctx, "readiness_check_failed",
					slog.String("dependency", check.Name),
					slog.Any("error", err),
				)
			}
			return nil
		})
	}
	_ = group.Wait()

	status, httpStatus := "ready", http.StatusOK
	for _, result := range results {
		if !result.OK {
			status, httpStatus = "degraded", http.StatusServiceUnavailable
			break
		}
	}

	respond.JSON(writer, httpStatus, respond.SuccessEnvelope{Data: map[string]any{
		constants.FieldStatus: status,
		constants.FieldChecks: results,
	}})
}
