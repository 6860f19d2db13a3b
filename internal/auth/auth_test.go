package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	apperrors "github.com/farihasabaya/storefront/internal/errors"
	"github.com/farihasabaya/storefront/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "correct horse battery"

func testConfig(t *testing.T) config.AuthConfig {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	return config.AuthConfig{
		AdminEmail:   "Admin@FarihaSabaya.com",
		PasswordHash: string(hash),
		JWTSecret:    strings.Repeat("k", 32),
		Issuer:       "storefront",
		TokenTTL:     24 * time.Hour,
	}
}

func TestAuthenticator_Login(t *testing.T) {
	a := NewAuthenticator(testConfig(t))
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "valid credentials", email: "admin@farihasabaya.com", password: testPassword},
		{name: "email is case insensitive", email: "  ADMIN@farihasabaya.com ", password: testPassword},
		{name: "wrong password", email: "admin@farihasabaya.com", password: "admin123", wantErr: apperrors.ErrInvalidCredentials},
		{name: "wrong email", email: "someone@farihasabaya.com", password: testPassword, wantErr: apperrors.ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := a.Login(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, session)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, session.Token)
			assert.Equal(t, AdminRole, session.Role)
		})
	}
}

func TestAuthenticator_VerifyRoundTrip(t *testing.T) {
	// given
	a := NewAuthenticator(testConfig(t))
	issued := time.Now().Truncate(time.Second)
	a.now = func() time.Time { return issued }
	session, err := a.Login(context.Background(), "admin@farihasabaya.com", testPassword)
	require.NoError(t, err)

	// when
	token, err := a.Verify(context.Background(), session.Token)

	// then
	require.NoError(t, err)
	sub, ok := token.Subject()
	assert.True(t, ok)
	assert.Equal(t, AdminSubject, sub)
	assert.Equal(t, AdminRole, RoleOf(token))
	exp, ok := token.Expiration()
	assert.True(t, ok)
	assert.True(t, exp.Equal(issued.Add(24*time.Hour)))
	assert.True(t, session.ExpiresAt.Equal(issued.Add(24*time.Hour)))
}

func TestAuthenticator_VerifyRejects(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	expired := NewAuthenticator(cfg)
	expired.now = func() time.Time { return time.Now().Add(-25 * time.Hour) }
	expiredSession, err := expired.Login(ctx, cfg.AdminEmail, testPassword)
	require.NoError(t, err)

	otherSecret := cfg
	otherSecret.JWTSecret = strings.Repeat("x", 32)
	forged, err := NewAuthenticator(otherSecret).Login(ctx, cfg.AdminEmail, testPassword)
	require.NoError(t, err)

	otherIssuer := cfg
	otherIssuer.Issuer = "someone-else"
	foreign, err := NewAuthenticator(otherIssuer).Login(ctx, cfg.AdminEmail, testPassword)
	require.NoError(t, err)

	verifier := NewAuthenticator(cfg)
	tests := map[string]string{
		"expired":      expiredSession.Token,
		"wrong secret": forged.Token,
		"wrong issuer": foreign.Token,
		"garbage":      "not-a-jwt",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := verifier.Verify(ctx, token)
			assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		})
	}
}
