package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInitTracerProvider_Disabled(t *testing.T) {
	shutdown, err := InitTracerProvider(t.Context(), TracingConfig{ServiceName: "hawker"})

	require.NoError(t, err)
	require.NoError(t, shutdown(t.Context()))
	assert.ElementsMatch(t, []string{"traceparent", "tracestate", "baggage"}, otel.GetTextMapPropagator().Fields())
}

func TestSampleRatio(t *testing.T) {
	assert.InDelta(t, 1.0, sampleRatio(0), 0)
	assert.InDelta(t, 1.0, sampleRatio(3), 0)
	assert.InDelta(t, 0.25, sampleRatio(0.25), 0)
}

func TestOpenDB_RejectsUnknownDriver(t *testing.T) {
	_, err := OpenDB("mysql", "root@/hawker")

	require.Error(t, err)
}
