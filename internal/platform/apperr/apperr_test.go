// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sophia/internal/platform/apperr"
)

/*
TestConstructors pins the status and code of every error kind.
*/
func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *apperr.AppError
		wantStatus int
		wantCode   string
	}{
		{"not_found", apperr.NotFound("Panel"), http.StatusNotFound, "NOT_FOUND"},
		{"unauthorized", apperr.Unauthorized("x"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", apperr.Forbidden("x"), http.StatusForbidden, "FORBIDDEN"},
		{"validation", apperr.ValidationError("x"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unprocessable", apperr.Unprocessable("x"), http.StatusUnprocessableEntity, "UNPROCESSABLE"},
		{"rate_limited", apperr.RateLimited(3), http.StatusTooManyRequests, "RATE_LIMITED"},
		{"internal", apperr.Internal(nil), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"bad_gateway", apperr.BadGateway("x", nil), http.StatusBadGateway, "BAD_GATEWAY"},
		{"unavailable", apperr.ServiceUnavailable("x"), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.HTTPStatus)
			assert.Equal(t, tt.wantCode, tt.err.Code)
		})
	}

	assert.Equal(t, "Panel not found", apperr.NotFound("Panel").Error())
	assert.Equal(t, "Too many requests. Try again in 3s.", apperr.RateLimited(3).Message)
}

/*
TestAs finds an AppError through wrapping and keeps the cause reachable.
*/
func TestAs(t *testing.T) {
	upstream := errors.New("connection reset")
	wrapped := fmt.Errorf("refresh: %w", apperr.BadGateway("IIIF server failed", upstream))

	appError := apperr.As(wrapped)
	require.NotNil(t, appError)
	assert.Equal(t, "BAD_GATEWAY", appError.Code)
	assert.ErrorIs(t, wrapped, upstream)

	assert.Nil(t, apperr.As(upstream))
	assert.Nil(t, apperr.As(nil))
}
