// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ctxutil carries per-request values through [context.Context].

The middleware chain stores three values: the X-Request-ID correlation id, a
request-scoped logger and, for bearer requests, the verified token claims.
Keys use an unexported type so no other package can read or overwrite them.
*/
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/sophia/internal/platform/sec"
)

type key int

const (
	requestIDKey key = iota
	loggerKey
	claimsKey
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID returns the request ID, or "" outside an HTTP request.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger returns the request logger, falling back to [slog.Default].
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// # Identity & Access

// WithAuthUser returns a new context with the verified token claims attached.
func WithAuthUser(ctx context.Context, user *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, claimsKey, user)
}

// GetAuthUser returns the verified claims, or nil for anonymous requests.
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	claims, _ := ctx.Value(claimsKey).(*sec.AuthClaims)
	return claims
}

// HasRole reports whether the request carries claims of at least role.
func HasRole(ctx context.Context, role sec.UserRole) bool {
	claims := GetAuthUser(ctx)
	return claims != nil && sec.UserRole(claims.Role).AtLeast(role)
}
