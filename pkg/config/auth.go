package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthConfig holds the single back-office account and the session token settings.
type AuthConfig struct {
	AdminEmail   string        `koanf:"adminemail"`
	PasswordHash string        `koanf:"passwordhash"`
	JWTSecret    string        `koanf:"jwtsecret"`
	Issuer       string        `koanf:"issuer"`
	TokenTTL     time.Duration `koanf:"tokenttl"`
}

// String returns a string representation of the auth configuration with secrets masked.
func (c *AuthConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Auth ---\n")
	b.WriteString(fmt.Sprintf("  adminEmail: %s\n", c.AdminEmail))
	b.WriteString(fmt.Sprintf("  passwordHash: %s\n", mask(c.PasswordHash)))
	b.WriteString(fmt.Sprintf("  jwtSecret: %s\n", mask(c.JWTSecret)))
	b.WriteString(fmt.Sprintf("  issuer: %s\n", c.Issuer))
	b.WriteString(fmt.Sprintf("  tokenTTL: %s\n", c.TokenTTL))
	return b.String()
}

func (c *AuthConfig) Validate() error {
	if c.AdminEmail == "" {
		return fmt.Errorf("admin email cannot be empty")
	}
	if !strings.HasPrefix(c.PasswordHash, "$2") {
		return fmt.Errorf("admin password hash must be a bcrypt hash")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.Issuer == "" {
		return fmt.Errorf("JWT issuer cannot be empty")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token TTL must be greater than zero")
	}
	return nil
}

func mask(secret string) string {
	if secret == "" {
		return "<not configured>"
	}
	return "****"
}
