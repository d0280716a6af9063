package transport

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acpkit/acp-go/pkg/protocol"
)

// taggingMiddleware records the order middleware wrappers are entered in
type taggingMiddleware struct {
	tag   string
	calls *[]string
}

func (m *taggingMiddleware) Wrap(t Transport) Transport {
	return &taggedTransport{middlewareTransport{next: t}, m.tag, m.calls}
}

type taggedTransport struct {
	middlewareTransport
	tag   string
	calls *[]string
}

func (t *taggedTransport) Send(msg protocol.Message) error {
	*t.calls = append(*t.calls, t.tag)
	return t.next.Send(msg)
}

func TestChainOrder(t *testing.T) {
	var calls []string
	chain := Chain(
		&taggingMiddleware{tag: "outer", calls: &calls},
		&taggingMiddleware{tag: "inner", calls: &calls},
	)

	tr := chain.Wrap(NewStdioTransportWithStreams(strings.NewReader(""), io.Discard))

	note, err := protocol.NewNotification("ping", nil)
	require.NoError(t, err)
	require.NoError(t, tr.Send(note))

	assert.Equal(t, []string{"outer", "inner"}, calls, "first middleware in the chain must be outermost")
}

func TestMiddlewareTransportDelegates(t *testing.T) {
	input := `{"method":"m","jsonrpc":"2.0"}` + "\n"
	base := NewStdioTransportWithStreams(strings.NewReader(input), io.Discard)

	wrapped := MiddlewareFunc(func(next Transport) Transport {
		return &middlewareTransport{next: next}
	}).Wrap(base)

	require.NoError(t, wrapped.Open())

	msg, err := wrapped.Receive()
	require.NoError(t, err)
	_, ok := msg.(*protocol.Notification)
	assert.True(t, ok)

	require.NoError(t, wrapped.Close())
}

func TestMiddlewareTransportCloseInputPassthrough(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	base := NewStdioTransportWithStreams(pr, io.Discard)

	wrapped := MiddlewareFunc(func(next Transport) Transport {
		return &middlewareTransport{next: next}
	}).Wrap(base)

	closer, ok := wrapped.(InputCloser)
	require.True(t, ok, "wrapped transport must still expose CloseInput")
	require.NoError(t, closer.CloseInput())

	// The underlying pipe is closed now
	_, err := pr.Read(make([]byte, 1))
	assert.Error(t, err)
}
