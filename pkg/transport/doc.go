// Package transport provides the byte-channel abstraction that carries
// JSON-RPC messages between a client and an agent, and its stdio realization.
//
// A Transport frames whole protocol.Message values over some underlying
// channel. The stdio transport frames each message as a single JSON-encoded
// line over the process's standard input and output, which is the usual
// arrangement when the client spawns the agent as a child process connected
// via pipes.
//
// Usage:
//
//	config := transport.DefaultTransportConfig(transport.TransportTypeStdio)
//	t, err := transport.NewTransport(config)
//	if err != nil {
//	    // handle error
//	}
//	if err := t.Open(); err != nil {
//	    // handle error
//	}
//	defer t.Close()
//
//	for {
//	    msg, err := t.Receive()
//	    ...
//	}
//
// Receive blocks until a full line is available and has no timeout or
// cancellation parameter; callers needing bounded waits should wrap the
// transport in a Pump, which runs Receive on a dedicated goroutine and
// delivers messages through a cancellable channel.
package transport
