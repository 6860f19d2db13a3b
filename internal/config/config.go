package config

import (
	"fmt"
	"strings"

	"github.com/farihasabaya/storefront/pkg/config"
	"github.com/farihasabaya/storefront/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

// CatalogConfig tunes the query engine collaborators.
type CatalogConfig struct {
	// TimeZone evaluates opening hours of stores that carry no zone of their own.
	TimeZone string `koanf:"timezone"`
}

type Config struct {
	HTTPServer config.HTTPConfig      `koanf:"server"`
	Database   config.DatabaseConfig  `koanf:"database"`
	Log        config.LogConfig       `koanf:"log"`
	PProf      config.PProfConfig     `koanf:"pprof"`
	Shutdown   config.ShutdownConfig  `koanf:"shutdown"`
	Auth       config.AuthConfig      `koanf:"auth"`
	NATS       config.NATSConfig      `koanf:"nats"`
	Telemetry  config.TelemetryConfig `koanf:"telemetry"`
	RateLimit  config.RateLimitConfig `koanf:"ratelimit"`
	Catalog    CatalogConfig          `koanf:"catalog"`
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString(c.HTTPServer.String())
	b.WriteString(c.Database.String())
	b.WriteString(c.Log.String())
	b.WriteString(c.PProf.String())
	b.WriteString(c.Shutdown.String())
	b.WriteString(c.Auth.String())
	b.WriteString(c.NATS.String())
	b.WriteString(c.Telemetry.String())
	b.WriteString(c.RateLimit.String())
	b.WriteString("\n--- Catalog ---\n")
	b.WriteString(fmt.Sprintf("  timezone: %s\n", c.Catalog.TimeZone))
	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	validators := []configloader.Validator{
		&c.HTTPServer, &c.Database, &c.Log, &c.PProf, &c.Shutdown,
		&c.Auth, &c.NATS, &c.Telemetry, &c.RateLimit,
	}
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}
