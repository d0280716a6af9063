// Package acp provides a Golang implementation of the ACP JSON-RPC wire layer
package acp

import (
	"github.com/acpkit/acp-go/pkg/protocol"
	"github.com/acpkit/acp-go/pkg/transport"
)

// Version represents the current version of the library
const Version = "1.0.0"

// These exports provide direct access to the core components
var (
	// NewStdioTransport creates a transport over the process's standard
	// input and output
	NewStdioTransport = transport.NewStdioTransport

	// NewStdioTransportWithStreams creates a transport over caller-owned
	// streams
	NewStdioTransportWithStreams = transport.NewStdioTransportWithStreams

	// NewTransport creates a transport from a TransportConfig
	NewTransport = transport.NewTransport

	// NewPump creates a cancellable receive loop around a transport
	NewPump = transport.NewPump

	// Parse decodes a single wire message
	Parse = protocol.Parse

	// Encode serializes a message to its wire form
	Encode = protocol.Encode

	// Message constructors
	NewRequest       = protocol.NewRequest
	NewNotification  = protocol.NewNotification
	NewResponse      = protocol.NewResponse
	NewErrorResponse = protocol.NewErrorResponse
)

// JSONRPCVersion is the protocol version carried by every message
const JSONRPCVersion = protocol.JSONRPCVersion
