package config

import (
	"fmt"
	"strings"
	"time"
)

// TelemetryConfig controls OpenTelemetry tracing of the storefront API. When enabled, every
// HTTP request becomes a server span named after its method and path, and log records carry
// the span's trace_id.
type TelemetryConfig struct {
	Traces TracesConfig `koanf:"traces"`
}

// TracesConfig selects whether spans are exported and how many root spans are kept.
type TracesConfig struct {
	Enabled bool `koanf:"enabled"`
	// SampleRatio is the share of new traces recorded, in [0, 1]. Zero records every trace.
	// Requests arriving with a sampled parent context are always recorded.
	SampleRatio float64        `koanf:"sampleRatio"`
	OtlpHttp    OtlpHttpConfig `koanf:"otlphttp"`
}

// OtlpHttpConfig points the exporter at an OTLP/HTTP collector.
type OtlpHttpConfig struct {
	Endpoint string        `koanf:"endpoint"`
	Insecure bool          `koanf:"insecure"`
	Timeout  time.Duration `koanf:"timeout"`
}

// String returns a string representation of the TelemetryConfig.
func (c *TelemetryConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Telemetry ---\n")
	b.WriteString(fmt.Sprintf("  traces.enabled: %t\n", c.Traces.Enabled))
	b.WriteString(fmt.Sprintf("  traces.sampleRatio: %g\n", c.Traces.SampleRatio))
	b.WriteString(fmt.Sprintf("  traces.otlphttp.endpoint: %s\n", c.Traces.OtlpHttp.Endpoint))
	b.WriteString(fmt.Sprintf("  traces.otlphttp.insecure: %v\n", c.Traces.OtlpHttp.Insecure))
	b.WriteString(fmt.Sprintf("  traces.otlphttp.timeout: %v\n", c.Traces.OtlpHttp.Timeout))
	return b.String()
}

func (c *TelemetryConfig) Validate() error {
	if !c.Traces.Enabled {
		return nil
	}
	if c.Traces.OtlpHttp.Endpoint == "" {
		return fmt.Errorf("OTel endpoint is not configured")
	}
	if c.Traces.OtlpHttp.Timeout <= 0 {
		return fmt.Errorf("telemetry timeout must be greater than 0")
	}
	if c.Traces.SampleRatio < 0 || c.Traces.SampleRatio > 1 {
		return fmt.Errorf("trace sample ratio must be within [0, 1], got %g", c.Traces.SampleRatio)
	}
	return nil
}
