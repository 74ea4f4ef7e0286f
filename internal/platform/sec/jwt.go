// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides token verification and role checks.
//
// # Architecture
//
// The catalogue never issues credentials. Moderator tokens are signed by an
// external identity provider with RS256; this package only holds the public
// key and verifies them. It is injected into the middleware through the
// [middleware.TokenVerifier] interface.
package sec

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// clockSkew tolerates small clock drift between the identity provider and us.
const clockSkew = 30 * time.Second

// ErrVerifierDisabled is returned when no public key was configured.
var ErrVerifierDisabled = errors.New("auth: token verification is not configured")

// AuthClaims represents the payload embedded inside a JWT Access Token.
//
// Custom application claims are abbreviated to keep the JWT payload small.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID   string `json:"uid"`
	Username string `json:"unm"`
	Role     string `json:"rol"`
}

// TokenService verifies RS256 JWT access tokens.
type TokenService struct {
	publicKey *rsa.PublicKey
	issuer    string
}

// NewTokenService reads the PEM public key at publicKeyPath.
//
// An empty path yields a service that rejects every token, which keeps
// moderator endpoints closed while the public catalogue stays available.
func NewTokenService(publicKeyPath, issuer string) (*TokenService, error) {
	if publicKeyPath == "" {
		return &TokenService{issuer: issuer}, nil
	}

	publicKeyData, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to read public key from %s: %w", publicKeyPath, err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyData)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to parse public key: %w", err)
	}

	return NewTokenServiceFromKey(publicKey, issuer), nil
}

// NewTokenServiceFromKey builds a verifier around an already parsed key.
func NewTokenServiceFromKey(publicKey *rsa.PublicKey, issuer string) *TokenService {
	return &TokenService{publicKey: publicKey, issuer: issuer}
}

// Enabled reports whether a public key is configured.
func (service *TokenService) Enabled() bool {
	return service.publicKey != nil
}

// VerifyToken checks the signature, expiry and issuer of a JWT string.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	if service.publicKey == nil {
		return nil, ErrVerifierDisabled
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(clockSkew),
	}
	if service.issuer != "" {
		options = append(options, jwt.WithIssuer(service.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
		}
		return service.publicKey, nil
	}, options...)

	if err != nil {
		return nil, fmt.Errorf("auth: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("auth: invalid token claims")
	}

	return claims, nil
}
