package tracing_test

import (
	"testing"

	"github.com/frameart/storefront/internal/config"
	"github.com/frameart/storefront/internal/tracing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSampler(t *testing.T) {
	assert.Contains(t, tracing.Sampler(1).Description(), "AlwaysOnSampler")
	assert.Contains(t, tracing.Sampler(0).Description(), "AlwaysOffSampler")
	assert.Contains(t, tracing.Sampler(0.25).Description(), "TraceIDRatioBased{0.25}")
}

func TestInitWithoutExporter(t *testing.T) {
	// Arrange
	cfg := &config.Otel{ServiceName: "storefront-test", SamplerRatio: 1}

	// Act
	shutdown, err := tracing.Init(t.Context(), cfg)

	// Assert
	require.NoError(t, err)
	t.Cleanup(func() { _ = shutdown(t.Context()) })

	_, span := otel.Tracer("test").Start(t.Context(), "op")
	defer span.End()

	assert.True(t, span.SpanContext().IsValid())
	assert.True(t, span.SpanContext().IsSampled())
}
