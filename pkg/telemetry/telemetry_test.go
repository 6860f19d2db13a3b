package telemetry

import (
	"context"
	"testing"

	"github.com/farihasabaya/storefront/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_DisabledIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), "storefront", "test", config.TelemetryConfig{})

	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSampler(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		want  string
	}{
		{name: "unset records every trace", ratio: 0, want: "AlwaysOnSampler"},
		{name: "full ratio records every trace", ratio: 1, want: "AlwaysOnSampler"},
		{name: "partial ratio", ratio: 0.25, want: "TraceIDRatioBased{0.25}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := sampler(config.TracesConfig{SampleRatio: tt.ratio})

			assert.Contains(t, s.Description(), "ParentBased")
			assert.Contains(t, s.Description(), tt.want)
		})
	}
}
