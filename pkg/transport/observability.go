package transport

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"

	wireerrors "github.com/acpkit/acp-go/pkg/errors"
	"github.com/acpkit/acp-go/pkg/logging"
	"github.com/acpkit/acp-go/pkg/observability"
	"github.com/acpkit/acp-go/pkg/protocol"
)

// ObservabilityMiddleware wraps a transport with metrics, tracing and
// structured operation logging. Each concern is independently toggled by
// ObservabilityConfig; a disabled concern costs nothing on the hot path.
type ObservabilityMiddleware struct {
	config  ObservabilityConfig
	logger  logging.Logger
	metrics observability.MetricsProvider
	tracing *observability.TracingProvider
}

// NewObservabilityMiddleware creates observability middleware from config.
// The providers are constructed eagerly so configuration errors surface at
// setup time rather than on the first message.
func NewObservabilityMiddleware(config ObservabilityConfig, logger logging.Logger) (Middleware, error) {
	if logger == nil {
		logger = logging.New(nil, nil)
	}
	if config.LogLevel != "" {
		logger.SetLevel(logging.ParseLevel(config.LogLevel))
	}

	om := &ObservabilityMiddleware{
		config: config,
		logger: logger.WithFields(logging.String("component", "ObservabilityMiddleware")),
	}

	if config.EnableMetrics {
		namespace := config.MetricsNamespace
		if namespace == "" {
			namespace = "acp"
		}

		metrics, err := observability.NewMetricsProvider(observability.MetricsConfig{
			ServiceName: "acp-transport",
			Namespace:   namespace,
			MetricsPort: config.MetricsPort,
		})
		if err != nil {
			return nil, err
		}
		om.metrics = metrics
	}

	if config.EnableTracing {
		tracing, err := observability.NewTracingProvider(observability.TracingConfig{
			ServiceName:  "acp-transport",
			ExporterType: observability.ExporterType(config.TraceExporter),
			Endpoint:     config.TraceEndpoint,
		})
		if err != nil {
			return nil, err
		}
		om.tracing = tracing
	}

	return om, nil
}

// Wrap implements the Middleware interface
func (om *ObservabilityMiddleware) Wrap(t Transport) Transport {
	return &observedTransport{
		middlewareTransport: middlewareTransport{next: t},
		om:                  om,
	}
}

// observedTransport intercepts transport operations to record them
type observedTransport struct {
	middlewareTransport
	om *ObservabilityMiddleware
}

// Open starts the metrics endpoint alongside the wrapped transport.
func (t *observedTransport) Open() error {
	if t.om.metrics != nil {
		if err := t.om.metrics.Start(context.Background()); err != nil {
			return err
		}
	}
	return t.next.Open()
}

// Send records the outcome, size and duration of each outbound message.
func (t *observedTransport) Send(msg protocol.Message) error {
	kind := protocol.MessageKind(msg)
	start := time.Now()

	var (
		span    trace.Span
		spanCtx context.Context
	)
	if t.om.tracing != nil {
		spanCtx, span = t.om.tracing.StartTransportSpan(context.Background(), "send", kind, "")
	}

	err := t.next.Send(msg)
	duration := time.Since(start)

	status := "success"
	if err != nil {
		status = "error"
	}

	if t.om.metrics != nil {
		size := 0
		if err == nil {
			if data, encErr := protocol.Encode(msg); encErr == nil {
				size = len(data)
			}
		}
		t.om.metrics.RecordSend(kind, status, size, duration)
	}

	if span != nil {
		if err != nil {
			t.om.tracing.RecordError(spanCtx, err)
		}
		span.End()
	}

	if t.om.config.EnableLogging {
		if err != nil {
			t.om.logger.WithError(err).Error("send failed",
				logging.String("kind", kind),
				logging.Duration("duration", duration))
		} else {
			t.om.logger.Debug("send",
				logging.String("kind", kind),
				logging.Duration("duration", duration))
		}
	}

	return err
}

// Receive records the outcome of each inbound message. Decode failures are
// counted separately from channel failures so a noisy peer is visible as
// such.
func (t *observedTransport) Receive() (protocol.Message, error) {
	msg, err := t.next.Receive()

	kind := "unknown"
	if msg != nil {
		kind = protocol.MessageKind(msg)
	}
	status := "success"
	if err != nil {
		status = "error"
	}

	if t.om.metrics != nil {
		size := 0
		if msg != nil {
			if data, encErr := protocol.Encode(msg); encErr == nil {
				size = len(data)
			}
		}
		t.om.metrics.RecordReceive(kind, status, size)
		if wireerrors.IsMalformedMessage(err) {
			t.om.metrics.RecordDecodeFailure()
		}
	}

	if t.om.config.EnableLogging {
		switch {
		case err == nil:
			t.om.logger.Debug("receive", logging.String("kind", kind))
		case wireerrors.IsEndOfStream(err):
			t.om.logger.Info("stream ended")
		default:
			t.om.logger.WithError(err).Error("receive failed")
		}
	}

	return msg, err
}

// Close closes the wrapped transport first, then shuts down the providers so
// in-flight records are flushed.
func (t *observedTransport) Close() error {
	err := t.next.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if t.om.metrics != nil {
		if mErr := t.om.metrics.Shutdown(ctx); mErr != nil && err == nil {
			err = mErr
		}
	}
	if t.om.tracing != nil {
		if tErr := t.om.tracing.Shutdown(ctx); tErr != nil && err == nil {
			err = tErr
		}
	}

	return err
}
