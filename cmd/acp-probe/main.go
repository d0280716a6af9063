// Command acp-probe is a diagnostic peer for the ACP wire layer. It speaks
// the protocol on stdin/stdout, echoing every request back as a success
// response and logging traffic to stderr. Point an editor or a test harness
// at it to exercise a connection end to end.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/acpkit/acp-go/pkg/logging"
	"github.com/acpkit/acp-go/pkg/protocol"
	"github.com/acpkit/acp-go/pkg/transport"
)

var (
	flagLogLevel      string
	flagJSONLogs      bool
	flagEnableMetrics bool
	flagMetricsPort   int
	flagEnableTracing bool
	flagTraceExporter string
	flagTraceEndpoint string
)

func main() {
	root := &cobra.Command{
		Use:   "acp-probe",
		Short: "Echo peer for the ACP JSON-RPC wire layer",
		Long: "acp-probe speaks newline-delimited JSON-RPC 2.0 on stdin/stdout. " +
			"Every request is answered with a success response carrying the " +
			"result \"ok\"; notifications and responses are logged and dropped. " +
			"All diagnostics go to stderr.",
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.Flags().StringVar(&flagLogLevel, "log-level", "info", "minimum log level (debug, info, warn, error)")
	root.Flags().BoolVar(&flagJSONLogs, "json-logs", false, "emit logs as JSON instead of text")
	root.Flags().BoolVar(&flagEnableMetrics, "enable-metrics", false, "record Prometheus transport metrics")
	root.Flags().IntVar(&flagMetricsPort, "metrics-port", 0, "serve /metrics on this port (0 disables the server)")
	root.Flags().BoolVar(&flagEnableTracing, "enable-tracing", false, "record OpenTelemetry spans")
	root.Flags().StringVar(&flagTraceExporter, "trace-exporter", "noop", "trace exporter (otlp-grpc, otlp-http, noop)")
	root.Flags().StringVar(&flagTraceEndpoint, "trace-endpoint", "", "OTLP collector endpoint")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "acp-probe: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	var formatter logging.Formatter
	if flagJSONLogs {
		formatter = logging.NewJSONFormatter()
	}
	logger := logging.New(os.Stderr, formatter)
	logger.SetLevel(logging.ParseLevel(flagLogLevel))

	config := transport.DefaultTransportConfig(transport.TransportTypeStdio)
	config.Logger = logger
	config.Observability.LogLevel = flagLogLevel
	config.Observability.EnableMetrics = flagEnableMetrics
	config.Observability.MetricsPort = flagMetricsPort
	config.Observability.EnableTracing = flagEnableTracing
	config.Observability.TraceExporter = flagTraceExporter
	config.Observability.TraceEndpoint = flagTraceEndpoint

	t, err := transport.NewTransport(config)
	if err != nil {
		return err
	}
	if err := t.Open(); err != nil {
		return err
	}
	defer t.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pump := transport.NewPump(t)

	go func() {
		for err := range pump.Errors() {
			logger.Warn("dropped undecodable line", logging.ErrorField(err))
		}
	}()

	go func() {
		for msg := range pump.Messages() {
			handle(t, logger, msg)
		}
	}()

	logger.Info("probe listening on stdio")

	if err := pump.Run(ctx); err != nil && err != context.Canceled {
		return err
	}
	logger.Info("probe stopped")
	return nil
}

// handle echoes requests and logs everything else
func handle(t transport.Transport, logger logging.Logger, msg protocol.Message) {
	kind := protocol.MessageKind(msg)

	switch m := msg.(type) {
	case *protocol.Request:
		logger.Info("request", logging.Uint64("id", m.ID), logging.String("method", m.Method))

		resp, err := protocol.NewResponse(m.ID, "ok")
		if err != nil {
			logger.WithError(err).Error("building response")
			return
		}
		if err := t.Send(resp); err != nil {
			logger.WithError(err).Error("sending response")
		}
	case *protocol.Notification:
		logger.Info("notification", logging.String("method", m.Method))
	case *protocol.Response:
		logger.Info("response", logging.Uint64("id", m.ID))
	default:
		logger.Warn("unhandled message", logging.String("kind", kind))
	}
}
