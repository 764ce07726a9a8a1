// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides token verification and content fingerprints.
//
// # Architecture
//
// Access tokens are issued by the external identity provider. This service
// only verifies them (RS256) against a configured public key and exposes the
// claims the session layer needs.
package sec

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that fails verification.
var ErrInvalidToken = errors.New("auth: invalid token")

// AuthClaims represents the payload embedded inside an access token.
//
// Custom claims are abbreviated to keep the token small.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID         string `json:"uid"`
	Username       string `json:"unm"`
	Role           string `json:"rol"`
	ModProfileName string `json:"mpn,omitempty"`
}

// TokenService verifies access tokens signed with RS256.
type TokenService struct {
	publicKey *rsa.PublicKey
	issuer    string
}

// NewTokenService reads the PEM public key at publicKeyPath.
func NewTokenService(publicKeyPath, issuer string) (*TokenService, error) {
	publicKeyData, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to read public key from %s: %w", publicKeyPath, err)
	}
	return NewTokenServiceFromPEM(publicKeyData, issuer)
}

// NewTokenServiceFromPEM parses a PEM-encoded RSA public key.
func NewTokenServiceFromPEM(publicKeyPEM []byte, issuer string) (*TokenService, error) {
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to parse public key: %w", err)
	}
	return &TokenService{publicKey: publicKey, issuer: issuer}, nil
}

// VerifyToken checks the signature, expiry and issuer of a token string.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	options := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()})}
	if service.issuer != "" {
		options = append(options, jwt.WithIssuer(service.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		return service.publicKey, nil
	}, options...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Username == "" {
		return nil, fmt.Errorf("%w: missing username", ErrInvalidToken)
	}
	if !UserRole(claims.Role).IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, claims.Role)
	}

	return claims, nil
}
