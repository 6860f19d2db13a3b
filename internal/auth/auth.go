// Package auth authenticates the single back-office account and guards admin routes.
package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/farihasabaya/storefront/internal/errors"
	"github.com/farihasabaya/storefront/pkg/config"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
	"golang.org/x/crypto/bcrypt"
)

const (
	AdminSubject = "admin"
	AdminRole    = "admin"
	roleClaim    = "role"
)

type Verifier interface {
	Verify(ctx context.Context, tokenString string) (jwt.Token, error)
}

// Session is what a successful login returns to the client.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Role      string    `json:"role"`
}

// Authenticator checks admin credentials against a bcrypt hash and issues HS256 session tokens.
type Authenticator struct {
	email        string
	passwordHash []byte
	secret       []byte
	issuer       string
	ttl          time.Duration
	now          func() time.Time
}

func NewAuthenticator(cfg config.AuthConfig) *Authenticator {
	return &Authenticator{
		email:        strings.ToLower(strings.TrimSpace(cfg.AdminEmail)),
		passwordHash: []byte(cfg.PasswordHash),
		secret:       []byte(cfg.JWTSecret),
		issuer:       cfg.Issuer,
		ttl:          cfg.TokenTTL,
		now:          time.Now,
	}
}

// Login returns a signed session token when email and password match the configured account.
// Returns ErrInvalidCredentials otherwise.
func (a *Authenticator) Login(_ context.Context, email, password string) (*Session, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(strings.ToLower(strings.TrimSpace(email))), []byte(a.email)) == 1
	// the hash is always compared so a wrong email costs as much as a wrong password
	pwErr := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password))
	if !emailOK || pwErr != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	issuedAt := a.now()
	expiresAt := issuedAt.Add(a.ttl)
	token, err := jwt.NewBuilder().
		Subject(AdminSubject).
		Issuer(a.issuer).
		IssuedAt(issuedAt).
		Expiration(expiresAt).
		Claim(roleClaim, AdminRole).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build token: %w", err)
	}
	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), a.secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &Session{Token: string(signed), ExpiresAt: expiresAt, Role: AdminRole}, nil
}

// Verify checks signature, expiry and issuer of a session token.
func (a *Authenticator) Verify(_ context.Context, tokenString string) (jwt.Token, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256(), a.secret),
		jwt.WithValidate(true),
		jwt.WithIssuer(a.issuer),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrUnauthorized, err)
	}
	return token, nil
}

// RoleOf returns the role claim of a verified token, or "" when absent.
func RoleOf(token jwt.Token) string {
	var role string
	if err := token.Get(roleClaim, &role); err != nil {
		return ""
	}
	return role
}
