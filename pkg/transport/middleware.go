package transport

import (
	"github.com/acpkit/acp-go/pkg/protocol"
)

// Middleware wraps a transport to add functionality such as observability
// without changing the transport contract.
type Middleware interface {
	// Wrap wraps the given transport with middleware functionality
	Wrap(transport Transport) Transport
}

// MiddlewareFunc is an adapter to allow the use of ordinary functions as
// middleware
type MiddlewareFunc func(Transport) Transport

// Wrap implements the Middleware interface
func (f MiddlewareFunc) Wrap(t Transport) Transport {
	return f(t)
}

// Chain chains multiple middleware together
func Chain(middleware ...Middleware) Middleware {
	return MiddlewareFunc(func(transport Transport) Transport {
		// Apply in reverse order so the first middleware is the outermost
		for i := len(middleware) - 1; i >= 0; i-- {
			transport = middleware[i].Wrap(transport)
		}
		return transport
	})
}

// middlewareTransport is a base type for middleware implementations
type middlewareTransport struct {
	next Transport
}

// Open delegates to the wrapped transport
func (m *middlewareTransport) Open() error {
	return m.next.Open()
}

// Send delegates to the wrapped transport
func (m *middlewareTransport) Send(msg protocol.Message) error {
	return m.next.Send(msg)
}

// Receive delegates to the wrapped transport
func (m *middlewareTransport) Receive() (protocol.Message, error) {
	return m.next.Receive()
}

// Close delegates to the wrapped transport
func (m *middlewareTransport) Close() error {
	return m.next.Close()
}

// CloseInput delegates to the wrapped transport when it supports it
func (m *middlewareTransport) CloseInput() error {
	if closer, ok := m.next.(InputCloser); ok {
		return closer.CloseInput()
	}
	return nil
}
