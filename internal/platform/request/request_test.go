// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	requestutil "github.com/taibuivan/sophia/internal/platform/request"
	"github.com/taibuivan/sophia/internal/platform/validate"
)

func withIDParam(value string) *http.Request {
	routeContext := chi.NewRouteContext()
	routeContext.URLParams.Add("id", value)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	return request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, routeContext))
}

/*
TestIntID accepts positive ids that fit an INTEGER key column.
*/
func TestIntID(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   int
		wantOK bool
	}{
		{"positive", "42", 42, true},
		{"int32_max", "2147483647", 2147483647, true},
		{"beyond_int32", "2147483648", 0, false},
		{"far_beyond_int32", "99999999999", 0, false},
		{"zero", "0", 0, false},
		{"negative", "-3", 0, false},
		{"malformed", "4a", 0, false},
		{"missing", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := requestutil.IntID(withIDParam(tt.raw), "id")

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, id)
		})
	}
}

/*
TestDecodeJSON rejects unknown fields and trailing documents.
*/
func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Width int `json:"width"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{"valid", `{"width":3}`, nil},
		{"unknown_field", `{"width":3,"depth":1}`, validate.ErrInvalidJSON},
		{"trailing_document", `{"width":3}{"width":4}`, validate.ErrInvalidJSON},
		{"not_json", `width=3`, validate.ErrInvalidJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var target payload

			err := requestutil.DecodeJSON(httptest.NewRecorder(), request, &target)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
