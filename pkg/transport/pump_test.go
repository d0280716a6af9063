package transport

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wireerrors "github.com/acpkit/acp-go/pkg/errors"
	"github.com/acpkit/acp-go/pkg/protocol"
)

func TestPumpDeliversMessagesUntilEOF(t *testing.T) {
	input := `{"id":1,"method":"a","jsonrpc":"2.0"}` + "\n" +
		`{"method":"b","jsonrpc":"2.0"}` + "\n" +
		`{"id":1,"result":"ok","jsonrpc":"2.0"}` + "\n"
	tr := NewStdioTransportWithStreams(strings.NewReader(input), io.Discard)
	pump := NewPump(tr)

	var got []string
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range pump.Messages() {
			got = append(got, protocol.MessageKind(msg))
		}
	}()

	err := pump.Run(context.Background())
	require.NoError(t, err, "end of stream is a clean stop")
	<-done

	assert.Equal(t, []string{"request", "notification", "response"}, got)
}

func TestPumpSkipsMalformedLines(t *testing.T) {
	input := `{"id":1,"method":"a","jsonrpc":"2.0"}` + "\n" +
		"garbage\n" +
		`{"method":"b","jsonrpc":"2.0"}` + "\n"
	tr := NewStdioTransportWithStreams(strings.NewReader(input), io.Discard)
	pump := NewPump(tr)

	var got []string
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range pump.Messages() {
			got = append(got, protocol.MessageKind(msg))
		}
	}()

	require.NoError(t, pump.Run(context.Background()))
	<-done

	assert.Equal(t, []string{"request", "notification"}, got, "malformed line must not stop the pump")

	var decodeErrs []error
	for err := range pump.Errors() {
		decodeErrs = append(decodeErrs, err)
	}
	require.Len(t, decodeErrs, 1)
	assert.True(t, wireerrors.IsMalformedMessage(decodeErrs[0]))
}

func TestPumpCancellation(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	tr := NewStdioTransportWithStreams(pr, io.Discard)
	pump := NewPump(tr)

	go func() {
		for range pump.Messages() {
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() {
		errs <- pump.Run(ctx)
	}()

	// Let the pump block in Receive, then cancel
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("pump did not stop after cancellation")
	}
}

func TestPumpChannelsCloseOnStop(t *testing.T) {
	tr := NewStdioTransportWithStreams(strings.NewReader(""), io.Discard)
	pump := NewPump(tr)

	require.NoError(t, pump.Run(context.Background()))

	_, open := <-pump.Messages()
	assert.False(t, open, "messages channel must be closed after Run returns")
	_, open = <-pump.Errors()
	assert.False(t, open, "errors channel must be closed after Run returns")
}

func TestPumpRunTwice(t *testing.T) {
	tr := NewStdioTransportWithStreams(strings.NewReader(""), io.Discard)
	pump := NewPump(tr)

	require.NoError(t, pump.Run(context.Background()))
	assert.ErrorIs(t, pump.Run(context.Background()), ErrPumpAlreadyRunning)
}

func TestPumpSurfacesChannelFailure(t *testing.T) {
	pr, pw := io.Pipe()
	tr := NewStdioTransportWithStreams(pr, io.Discard)
	pump := NewPump(tr)

	go func() {
		for range pump.Messages() {
		}
	}()

	errs := make(chan error, 1)
	go func() {
		errs <- pump.Run(context.Background())
	}()

	time.Sleep(50 * time.Millisecond)
	// A write-side error is a channel failure, not a clean end of stream
	require.NoError(t, pw.CloseWithError(io.ErrUnexpectedEOF))

	select {
	case err := <-errs:
		require.Error(t, err)
		assert.True(t, wireerrors.IsChannelFailure(err), "expected channel failure, got %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("pump did not stop after channel failure")
	}
}
