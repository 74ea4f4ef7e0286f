// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil reads path parameters, bodies and caller identity from
catalogue requests.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/sophia/internal/platform/apperr"
	"github.com/taibuivan/sophia/internal/platform/ctxutil"
	"github.com/taibuivan/sophia/internal/platform/validate"
)

// MaxBodyBytes bounds JSON request bodies. Moderator payloads are a few fields.
const MaxBodyBytes = 64 << 10

/*
DecodeJSON decodes the request body into target.

Unknown fields, trailing data and bodies over [MaxBodyBytes] are rejected.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(writer, request.Body, MaxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	if decoder.More() {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
IntID retrieves a named URL parameter as a positive integer primary key.

Returns:
  - int: The parsed id
  - bool: false when the parameter is missing, malformed, not positive or
    beyond the int32 range of the key columns
*/
func IntID(request *http.Request, name string) (int, bool) {
	id, err := strconv.ParseInt(chi.URLParam(request, name), 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int(id), true
}

// Param retrieves a named URL parameter.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
RequiredUserID returns the token subject of an authenticated request.

Returns:
  - string: The "uid" claim
  - error: apperr.Unauthorized for anonymous requests
*/
func RequiredUserID(request *http.Request) (string, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return "", apperr.Unauthorized("Authentication required")
	}
	return claims.UserID, nil
}
