// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package constants holds the fixed values shared by the catalogue server,
// the export CLI and their middleware.
package constants

import "time"

// # Metadata

const (
	AppName    = "sophia-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	DefaultReadTimeout       = 5 * time.Second
	DefaultReadHeaderTimeout = 2 * time.Second
	DefaultIdleTimeout       = 120 * time.Second

	// DefaultWriteTimeout leaves room for the CSV export to stream.
	DefaultWriteTimeout = 60 * time.Second

	// GlobalRequestTimeout bounds JSON endpoints and every SQL statement they run.
	GlobalRequestTimeout = 30 * time.Second

	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

// Fallbacks for RATE_LIMIT_RPS and RATE_LIMIT_BURST.
const (
	DefaultRateLimitRPS   = 100.0
	DefaultRateLimitBurst = 150

	RateLimitCleanupInterval = time.Minute
	RateLimitClientTTL       = 3 * time.Minute
)

// # Authentication

// AuthIssuer is the expected "iss" claim of moderator tokens.
const AuthIssuer = "saintsophia.dh.gu.se"

// PublicOriginSuffix is the host always accepted by CORS, with its subdomains.
const PublicOriginSuffix = "saintsophia.dh.gu.se"

// # Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # Log and Probe Fields

const (
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Redis Keys

const (
	// RedisPrefixImageDimensions is followed by the IIIF file name.
	RedisPrefixImageDimensions = "iiif:dimensions:"

	ImageDimensionsTTL = 24 * time.Hour
)
