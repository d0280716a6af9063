package observability

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsProviderDefaults(t *testing.T) {
	p, err := NewMetricsProvider(MetricsConfig{})
	require.NoError(t, err)

	assert.Equal(t, "acp", p.config.Namespace)
	assert.Equal(t, "transport", p.config.Subsystem)
	assert.Equal(t, "/metrics", p.config.MetricsPath)
	assert.NotNil(t, p.Registry())
}

func TestMetricsProviderPrivateRegistries(t *testing.T) {
	// Two providers must not collide on collector registration
	p1, err := NewMetricsProvider(MetricsConfig{})
	require.NoError(t, err)
	p2, err := NewMetricsProvider(MetricsConfig{})
	require.NoError(t, err)

	assert.NotSame(t, p1.Registry(), p2.Registry())
}

func TestMetricsProviderSharedRegistryCollision(t *testing.T) {
	registry := prometheus.NewRegistry()

	_, err := NewMetricsProvider(MetricsConfig{Registry: registry})
	require.NoError(t, err)

	_, err = NewMetricsProvider(MetricsConfig{Registry: registry})
	assert.Error(t, err, "registering the same collectors twice must fail")
}

func TestRecordSend(t *testing.T) {
	p, err := NewMetricsProvider(MetricsConfig{})
	require.NoError(t, err)

	p.RecordSend("request", "success", 120, 5*time.Millisecond)
	p.RecordSend("request", "success", 80, 2*time.Millisecond)
	p.RecordSend("response", "error", 0, time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(p.sendTotal.WithLabelValues("request", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(p.sendTotal.WithLabelValues("response", "error")))
}

func TestRecordReceive(t *testing.T) {
	p, err := NewMetricsProvider(MetricsConfig{})
	require.NoError(t, err)

	p.RecordReceive("notification", "success", 60)
	p.RecordReceive("unknown", "error", 0)

	assert.Equal(t, float64(1), testutil.ToFloat64(p.receiveTotal.WithLabelValues("notification", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(p.receiveTotal.WithLabelValues("unknown", "error")))
}

func TestRecordDecodeFailure(t *testing.T) {
	p, err := NewMetricsProvider(MetricsConfig{})
	require.NoError(t, err)

	p.RecordDecodeFailure()
	p.RecordDecodeFailure()

	assert.Equal(t, float64(2), testutil.ToFloat64(p.decodeFailures))
}

func TestStartWithoutPortIsNoop(t *testing.T) {
	p, err := NewMetricsProvider(MetricsConfig{})
	require.NoError(t, err)

	require.NoError(t, p.Start(context.Background()))
	require.NoError(t, p.Shutdown(context.Background()))
}
