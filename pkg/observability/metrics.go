// Package observability provides metrics and tracing for the ACP wire layer
package observability

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsConfig configures the metrics provider
type MetricsConfig struct {
	// Service identification
	ServiceName string

	// Prometheus configuration
	MetricsPath string // HTTP path for metrics endpoint (default: /metrics)
	MetricsPort int    // Port for metrics server; zero disables the server

	// Metric options
	Namespace   string    // Prometheus namespace (default: acp)
	Subsystem   string    // Prometheus subsystem (default: transport)
	SizeBuckets []float64 // Custom histogram buckets for message sizes

	// Labels added to all metrics
	ConstLabels prometheus.Labels

	// Registry to register collectors with; a private registry is created
	// when nil so repeated providers never collide
	Registry *prometheus.Registry
}

// MetricsProvider records wire-level transport metrics
type MetricsProvider interface {
	// RecordSend records an outbound message
	RecordSend(kind, status string, bytes int, duration time.Duration)
	// RecordReceive records an inbound message. No duration is recorded:
	// receive time is dominated by waiting on the peer, not by work.
	RecordReceive(kind, status string, bytes int)
	// RecordDecodeFailure records a line that failed to decode
	RecordDecodeFailure()

	// Management
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// PrometheusMetricsProvider implements MetricsProvider using Prometheus
type PrometheusMetricsProvider struct {
	config   MetricsConfig
	registry *prometheus.Registry
	server   *http.Server
	mu       sync.Mutex

	sendTotal      *prometheus.CounterVec
	sendDuration   *prometheus.HistogramVec
	sendBytes      *prometheus.HistogramVec
	receiveTotal   *prometheus.CounterVec
	receiveBytes   *prometheus.HistogramVec
	decodeFailures prometheus.Counter
}

// NewMetricsProvider creates a new Prometheus metrics provider
func NewMetricsProvider(config MetricsConfig) (*PrometheusMetricsProvider, error) {
	if config.Namespace == "" {
		config.Namespace = "acp"
	}
	if config.Subsystem == "" {
		config.Subsystem = "transport"
	}
	if config.MetricsPath == "" {
		config.MetricsPath = "/metrics"
	}
	if len(config.SizeBuckets) == 0 {
		config.SizeBuckets = prometheus.ExponentialBuckets(64, 4, 8)
	}

	registry := config.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	p := &PrometheusMetricsProvider{
		config:   config,
		registry: registry,

		sendTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "messages_sent_total",
			Help:        "Messages sent, by kind and status",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "status"}),

		sendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "send_duration_seconds",
			Help:        "Time spent encoding, writing and flushing a message",
			ConstLabels: config.ConstLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"kind"}),

		sendBytes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "sent_message_bytes",
			Help:        "Encoded size of sent messages, excluding the terminator",
			ConstLabels: config.ConstLabels,
			Buckets:     config.SizeBuckets,
		}, []string{"kind"}),

		receiveTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "messages_received_total",
			Help:        "Messages received, by kind and status",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "status"}),

		receiveBytes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "received_message_bytes",
			Help:        "Wire size of received messages, excluding the terminator",
			ConstLabels: config.ConstLabels,
			Buckets:     config.SizeBuckets,
		}, []string{"kind"}),

		decodeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "decode_failures_total",
			Help:        "Lines that failed to decode to any message shape",
			ConstLabels: config.ConstLabels,
		}),
	}

	collectors := []prometheus.Collector{
		p.sendTotal, p.sendDuration, p.sendBytes,
		p.receiveTotal, p.receiveBytes, p.decodeFailures,
	}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register collector: %w", err)
		}
	}

	return p, nil
}

// RecordSend records an outbound message
func (p *PrometheusMetricsProvider) RecordSend(kind, status string, bytes int, duration time.Duration) {
	p.sendTotal.WithLabelValues(kind, status).Inc()
	p.sendDuration.WithLabelValues(kind).Observe(duration.Seconds())
	if bytes > 0 {
		p.sendBytes.WithLabelValues(kind).Observe(float64(bytes))
	}
}

// RecordReceive records an inbound message
func (p *PrometheusMetricsProvider) RecordReceive(kind, status string, bytes int) {
	p.receiveTotal.WithLabelValues(kind, status).Inc()
	if bytes > 0 {
		p.receiveBytes.WithLabelValues(kind).Observe(float64(bytes))
	}
}

// RecordDecodeFailure records a line that failed to decode
func (p *PrometheusMetricsProvider) RecordDecodeFailure() {
	p.decodeFailures.Inc()
}

// Registry returns the registry the provider's collectors live in
func (p *PrometheusMetricsProvider) Registry() *prometheus.Registry {
	return p.registry
}

// Start serves the /metrics endpoint when a port is configured
func (p *PrometheusMetricsProvider) Start(ctx context.Context) error {
	if p.config.MetricsPort == 0 {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.server != nil {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle(p.config.MetricsPath, promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{}))

	p.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", p.config.MetricsPort),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := p.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			// The metrics endpoint is best-effort; transport operation
			// does not depend on it. Never write to stdout here.
			fmt.Fprintf(os.Stderr, "metrics server error: %v\n", err)
		}
	}()

	return nil
}

// Shutdown stops the metrics server if one is running
func (p *PrometheusMetricsProvider) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	server := p.server
	p.server = nil
	p.mu.Unlock()

	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}
