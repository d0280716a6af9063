package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTracingProviderDefaults(t *testing.T) {
	tp, err := NewTracingProvider(TracingConfig{})
	require.NoError(t, err)
	defer tp.Shutdown(context.Background())

	assert.Equal(t, "acp-wire", tp.config.ServiceName)
	assert.Equal(t, ExporterTypeNoop, tp.config.ExporterType)
	assert.Equal(t, 1.0, tp.config.SampleRate)
}

func TestNewTracingProviderUnsupportedExporter(t *testing.T) {
	_, err := NewTracingProvider(TracingConfig{ExporterType: "carrier-pigeon"})
	assert.Error(t, err)
}

func TestStartTransportSpan(t *testing.T) {
	tp, err := NewTracingProvider(TracingConfig{ExporterType: ExporterTypeNoop})
	require.NoError(t, err)
	defer tp.Shutdown(context.Background())

	ctx, span := tp.StartTransportSpan(context.Background(), "send", "request", "sess-1")
	require.NotNil(t, span)
	assert.True(t, span.IsRecording())

	tp.RecordError(ctx, errors.New("boom"))
	span.End()
	assert.False(t, span.IsRecording())
}

func TestCreateSampler(t *testing.T) {
	assert.Equal(t, "AlwaysOnSampler", createSampler(TracingConfig{SampleRate: 1.0}).Description())
	assert.Equal(t, "AlwaysOffSampler", createSampler(TracingConfig{SampleRate: -1}).Description())
	assert.Contains(t, createSampler(TracingConfig{SampleRate: 0.5}).Description(), "TraceIDRatioBased")
}

func TestTracingShutdownIdempotent(t *testing.T) {
	tp, err := NewTracingProvider(TracingConfig{})
	require.NoError(t, err)

	require.NoError(t, tp.Shutdown(context.Background()))
	require.NoError(t, tp.Shutdown(context.Background()))
}
