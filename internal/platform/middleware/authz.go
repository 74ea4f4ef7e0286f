// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/sophia/internal/platform/apperr"
	"github.com/taibuivan/sophia/internal/platform/ctxutil"
	"github.com/taibuivan/sophia/internal/platform/respond"
	"github.com/taibuivan/sophia/internal/platform/sec"
)

// # Token Authentication

// TokenVerifier checks a bearer token and returns its claims.
// [sec.TokenService] is the production implementation.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// Authenticate verifies the bearer token of a request, if any.
//
// # Flow
//  1. No Authorization header: the request continues as anonymous. The
//     catalogue is public, so most requests take this path.
//  2. A malformed header or a token that fails verification answers 401.
//  3. Verified claims are stored with [ctxutil.WithAuthUser].
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(strings.TrimSpace(token))
			if err != nil {
				if errors.Is(err, sec.ErrVerifierDisabled) {
					ctxutil.GetLogger(request.Context()).Warn("bearer_token_rejected",
						slog.String("reason", "token verification disabled"),
					)
				}
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// # Role Authorization

// RequireRole answers 401 for anonymous requests and 403 when the token's role
// is below role. It must be mounted after [Authenticate].
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if ctxutil.GetAuthUser(request.Context()) == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			if !ctxutil.HasRole(request.Context(), role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
