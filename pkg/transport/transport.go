package transport

import (
	"errors"
	"io"

	"github.com/acpkit/acp-go/pkg/logging"
	"github.com/acpkit/acp-go/pkg/protocol"
)

// Transport is the capability interface decoupling message producers and
// consumers from the underlying byte channel. All four operations are safe
// to invoke from any goroutine sharing the same Transport instance, though
// concurrent Receive calls on one instance are not recommended: line
// interleaving is then governed solely by the underlying stream.
type Transport interface {
	// Open prepares the channel for use. It must not fail on a channel
	// that is already usable.
	Open() error

	// Send encodes the message and delivers it atomically as a single
	// logical unit; the peer never observes a partial message.
	Send(msg protocol.Message) error

	// Receive blocks until one full message is available, then decodes and
	// returns it. There is no timeout and no cancellation; see Pump for a
	// cancellable wrapper.
	Receive() (protocol.Message, error)

	// Close releases channel resources. The behavior of Send and Receive
	// after Close is implementation-defined.
	Close() error
}

// InputCloser is implemented by transports whose input stream can be closed
// independently, unblocking a Receive that is waiting on data.
type InputCloser interface {
	CloseInput() error
}

// TransportType identifies the base transport implementation
type TransportType string

const (
	TransportTypeStdio TransportType = "stdio"
)

// Errors
var (
	ErrUnsupportedTransportType = errors.New("unsupported transport type")
)

// TransportConfig is the unified configuration for transports
type TransportConfig struct {
	// Type of transport to create
	Type TransportType `json:"type"`

	// Testing support (custom streams for stdio)
	StdioReader io.Reader `json:"-"` // Custom reader for stdio (testing only)
	StdioWriter io.Writer `json:"-"` // Custom writer for stdio (testing only)

	// Logger receives the diagnostic wire traces. Defaults to a text
	// logger on stderr.
	Logger logging.Logger `json:"-"`

	// Observability configures the optional metrics/tracing/logging
	// middleware wrapped around the base transport.
	Observability ObservabilityConfig `json:"observability"`
}

// ObservabilityConfig controls the observability middleware
type ObservabilityConfig struct {
	EnableMetrics bool   `json:"enable_metrics"`
	EnableTracing bool   `json:"enable_tracing"`
	EnableLogging bool   `json:"enable_logging"`
	LogLevel      string `json:"log_level"`

	// MetricsNamespace is the Prometheus namespace (default: acp)
	MetricsNamespace string `json:"metrics_namespace"`
	// MetricsPort exposes a /metrics endpoint when non-zero
	MetricsPort int `json:"metrics_port"`

	// TraceExporter selects the OTLP exporter ("otlp-grpc", "otlp-http",
	// "noop"); empty disables export while keeping spans recorded
	TraceExporter string `json:"trace_exporter"`
	// TraceEndpoint is the OTLP collector endpoint
	TraceEndpoint string `json:"trace_endpoint"`
}

// enabled reports whether any observability feature is on
func (c ObservabilityConfig) enabled() bool {
	return c.EnableMetrics || c.EnableTracing || c.EnableLogging
}

// DefaultTransportConfig returns a transport configuration with sensible
// defaults
func DefaultTransportConfig(transportType TransportType) TransportConfig {
	return TransportConfig{
		Type: transportType,
		Observability: ObservabilityConfig{
			EnableLogging:    true,
			LogLevel:         "info",
			MetricsNamespace: "acp",
		},
	}
}

// NewTransport creates a new transport with the specified configuration
func NewTransport(config TransportConfig) (Transport, error) {
	if err := validateTransportConfig(config); err != nil {
		return nil, err
	}

	var base Transport

	switch config.Type {
	case TransportTypeStdio:
		base = newStdioTransport(config)
	default:
		return nil, ErrUnsupportedTransportType
	}

	if !config.Observability.enabled() {
		return base, nil
	}

	om, err := NewObservabilityMiddleware(config.Observability, config.Logger)
	if err != nil {
		return nil, err
	}

	return Chain(om).Wrap(base), nil
}

// validateTransportConfig validates the transport configuration
func validateTransportConfig(config TransportConfig) error {
	switch config.Type {
	case TransportTypeStdio:
		return nil
	default:
		return ErrUnsupportedTransportType
	}
}
