// Package pkg contains the core components of the ACP wire layer.
//
// The Agent Client Protocol (ACP) connects an editor to a coding agent
// spawned as a child process, exchanging JSON-RPC 2.0 messages as one JSON
// document per line over the agent's standard input and output.
//
// # Sub-packages
//
//   - protocol: the three message kinds (Request, Notification, Response),
//     their strict wire codec and structural discrimination
//   - transport: the Transport interface, the stdio transport, middleware
//     and the cancellable Pump receive loop
//   - errors: structured errors carrying JSON-RPC codes, categories and
//     severities
//   - logging: structured logging routed to stderr, since stdout carries
//     the protocol stream
//   - observability: Prometheus metrics and OpenTelemetry tracing for
//     wire-level traffic
//
// # Reading and writing messages
//
//	import (
//	    "github.com/acpkit/acp-go/pkg/protocol"
//	    "github.com/acpkit/acp-go/pkg/transport"
//	)
//
//	func main() {
//	    t := transport.NewStdioTransport()
//
//	    for {
//	        msg, err := t.Receive()
//	        if err != nil {
//	            // Handle error; end of stream means the peer is gone
//	            return
//	        }
//
//	        if req, ok := msg.(*protocol.Request); ok {
//	            resp, _ := protocol.NewResponse(req.ID, "ok")
//	            _ = t.Send(resp)
//	        }
//	    }
//	}
package pkg
