// Package acp implements the wire layer of the Agent Client Protocol.
//
// The Agent Client Protocol (ACP) connects an editor or IDE to a coding
// agent running as a child process, speaking JSON-RPC 2.0 over the agent's
// standard input and output. This package is the root of the library,
// providing convenient exports of the core components from the sub-packages.
//
// # Overview
//
// The library consists of several sub-packages:
//
//   - pkg/protocol: Defines the three JSON-RPC message kinds and their
//     strict wire codec
//   - pkg/transport: Provides the Transport interface, the stdio transport
//     and the cancellable Pump
//   - pkg/errors: Structured errors with codes, categories and context
//   - pkg/logging: Structured logging that never touches stdout
//   - pkg/observability: Prometheus metrics and OpenTelemetry tracing
//
// # Sending and receiving messages
//
// To exchange messages with a peer over stdio:
//
//	import (
//	    "github.com/acpkit/acp-go"
//	)
//
//	func main() {
//	    t := acp.NewStdioTransport()
//
//	    req, err := acp.NewRequest(1, "initialize", nil)
//	    if err != nil {
//	        // Handle error
//	    }
//	    if err := t.Send(req); err != nil {
//	        // Handle error
//	    }
//
//	    msg, err := t.Receive()
//	    if err != nil {
//	        // Handle error
//	    }
//	    _ = msg
//	}
//
// # Driving a receive loop
//
// Receive blocks with no cancellation. The Pump wraps a transport with a
// context-driven loop:
//
//	import (
//	    "context"
//	    "github.com/acpkit/acp-go"
//	)
//
//	func main() {
//	    t := acp.NewStdioTransport()
//	    pump := acp.NewPump(t)
//
//	    ctx, cancel := context.WithCancel(context.Background())
//	    defer cancel()
//
//	    go func() {
//	        for msg := range pump.Messages() {
//	            _ = msg // dispatch
//	        }
//	    }()
//
//	    if err := pump.Run(ctx); err != nil {
//	        // Handle error
//	    }
//	}
package acp
