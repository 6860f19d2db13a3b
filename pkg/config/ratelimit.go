package config

import (
	"fmt"
	"strings"
	"time"
)

// RateLimitConfig bounds how often a single client may hit the public submission endpoints.
type RateLimitConfig struct {
	Enabled           bool          `koanf:"enabled"`
	RequestsPerMinute int           `koanf:"requestsperminute"`
	Burst             int           `koanf:"burst"`
	IdleTTL           time.Duration `koanf:"idlettl"`
}

// String returns a string representation of the rate limit configuration.
func (c *RateLimitConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Rate limit ---\n")
	b.WriteString(fmt.Sprintf("  enabled: %t\n", c.Enabled))
	b.WriteString(fmt.Sprintf("  requestsPerMinute: %d\n", c.RequestsPerMinute))
	b.WriteString(fmt.Sprintf("  burst: %d\n", c.Burst))
	b.WriteString(fmt.Sprintf("  idleTTL: %s\n", c.IdleTTL))
	return b.String()
}

func (c *RateLimitConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.RequestsPerMinute <= 0 {
		return fmt.Errorf("rate limit requests per minute must be greater than zero")
	}
	if c.Burst <= 0 {
		return fmt.Errorf("rate limit burst must be greater than zero")
	}
	if c.IdleTTL <= 0 {
		return fmt.Errorf("rate limit idle TTL must be greater than zero")
	}
	return nil
}
