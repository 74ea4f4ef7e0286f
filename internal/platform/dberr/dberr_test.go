// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sophia/internal/platform/apperr"
	"github.com/taibuivan/sophia/internal/platform/dberr"
)

/*
TestWrap maps driver errors onto application errors.
*/
func TestWrap(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"no_rows", pgx.ErrNoRows, http.StatusNotFound},
		{"wrapped_no_rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), http.StatusNotFound},
		{"deadline", context.DeadlineExceeded, http.StatusServiceUnavailable},
		{"statement_timeout", &pgconn.PgError{Code: pgerrcode.QueryCanceled}, http.StatusServiceUnavailable},
		{"syntax_error", &pgconn.PgError{Code: pgerrcode.SyntaxError}, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appError := apperr.As(dberr.Wrap(tt.err, "test_action"))
			require.NotNil(t, appError)
			assert.Equal(t, tt.wantStatus, appError.HTTPStatus)
		})
	}
}

/*
TestWrap_Nil returns nil for nil errors.
*/
func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "noop"))
	assert.NoError(t, dberr.WrapNotFound(nil, "noop", "Panel"))
}

/*
TestWrapNotFound names the missing resource.
*/
func TestWrapNotFound(t *testing.T) {
	appError := apperr.As(dberr.WrapNotFound(pgx.ErrNoRows, "get_panel", "Panel"))
	require.NotNil(t, appError)
	assert.Equal(t, "Panel not found", appError.Message)
}
