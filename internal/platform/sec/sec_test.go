// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/agora/internal/platform/sec"
)

const issuer = "agora.app"

func newKeyPair(t *testing.T) (*rsa.PrivateKey, []byte) {
	t.Helper()
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	require.NoError(t, err)
	return privateKey, pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
}

func sign(t *testing.T, key *rsa.PrivateKey, claims sec.AuthClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func validClaims() sec.AuthClaims {
	now := time.Now()
	return sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-1",
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		UserID:         "u-1",
		Username:       "cluse",
		Role:           "member",
		ModProfileName: "cluse-mod",
	}
}

/*
TestTokenService_Verify tests signature, expiry and issuer checks.
*/
func TestTokenService_Verify(t *testing.T) {
	privateKey, publicPEM := newKeyPair(t)
	otherKey, _ := newKeyPair(t)

	path := filepath.Join(t.TempDir(), "jwt.pub")
	require.NoError(t, os.WriteFile(path, publicPEM, 0o600))

	service, err := sec.NewTokenService(path, issuer)
	require.NoError(t, err)

	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	foreign := validClaims()
	foreign.Issuer = "someone.else"

	anonymous := validClaims()
	anonymous.Username = ""

	impostor := validClaims()
	impostor.Role = "superuser"

	tests := []struct {
		name  string
		token string
		valid bool
	}{
		{"valid", sign(t, privateKey, validClaims()), true},
		{"wrong_key", sign(t, otherKey, validClaims()), false},
		{"expired", sign(t, privateKey, expired), false},
		{"wrong_issuer", sign(t, privateKey, foreign), false},
		{"no_username", sign(t, privateKey, anonymous), false},
		{"unknown_role", sign(t, privateKey, impostor), false},
		{"garbage", "not.a.token", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.VerifyToken(tt.token)
			if tt.valid {
				require.NoError(t, err)
				assert.Equal(t, "cluse", claims.Username)
				assert.Equal(t, "cluse-mod", claims.ModProfileName)
				return
			}
			assert.True(t, errors.Is(err, sec.ErrInvalidToken))
		})
	}
}

func TestNewTokenService_Errors(t *testing.T) {
	_, err := sec.NewTokenService(filepath.Join(t.TempDir(), "missing.pub"), issuer)
	assert.Error(t, err)

	_, err = sec.NewTokenServiceFromPEM([]byte("not pem"), issuer)
	assert.Error(t, err)
}

func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleModerator))
	assert.True(t, sec.RoleModerator.AtLeast(sec.RoleModerator))
	assert.False(t, sec.RoleMember.AtLeast(sec.RoleModerator))
	assert.False(t, sec.UserRole("guest").AtLeast(sec.RoleMember))
}

func TestFingerprint(t *testing.T) {
	first := sec.Fingerprint("cats", "radius=5")
	assert.Len(t, first, 64)
	assert.Equal(t, first, sec.Fingerprint("cats", "radius=5"))
	assert.NotEqual(t, first, sec.Fingerprint("cat", "sradius=5"))
}
