package transport

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"

	wireerrors "github.com/acpkit/acp-go/pkg/errors"
	"github.com/acpkit/acp-go/pkg/logging"
	"github.com/acpkit/acp-go/pkg/protocol"
)

// StdioTransport implements the Transport interface over the process's
// standard input and output, framing each message as one JSON document per
// line terminated by '\n'. This is the recommended transport for agents
// spawned as child processes connected via pipes.
//
// No maximum line length is enforced: an unbounded single line grows the
// read buffer without limit. This mirrors the protocol's accepted
// limitation; callers that cannot trust the peer should bound the stream
// upstream.
type StdioTransport struct {
	raw    io.Reader // unbuffered input, kept for CloseInput
	reader *bufio.Reader
	writer *bufio.Writer

	readMu  sync.Mutex // serializes line reads
	writeMu sync.Mutex // serializes line writes and flushes

	logger    logging.Logger
	sessionID string
}

// NewStdioTransport creates a stdio transport bound to os.Stdin and
// os.Stdout.
func NewStdioTransport() *StdioTransport {
	return newStdioTransport(TransportConfig{Type: TransportTypeStdio})
}

// NewStdioTransportWithStreams creates a stdio transport bound to the given
// streams. Used by tests and by callers that own the pipe pair themselves.
func NewStdioTransportWithStreams(r io.Reader, w io.Writer) *StdioTransport {
	return newStdioTransport(TransportConfig{
		Type:        TransportTypeStdio,
		StdioReader: r,
		StdioWriter: w,
	})
}

// newStdioTransport creates a new stdio transport from config
func newStdioTransport(config TransportConfig) *StdioTransport {
	reader := config.StdioReader
	writer := config.StdioWriter

	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	logger := config.Logger
	if logger == nil {
		logger = logging.New(nil, nil)
	}

	sessionID := uuid.NewString()

	return &StdioTransport{
		raw:       reader,
		reader:    bufio.NewReader(reader),
		writer:    bufio.NewWriter(writer),
		logger:    logger.WithFields(logging.String("session_id", sessionID), logging.String("component", "StdioTransport")),
		sessionID: sessionID,
	}
}

// SessionID returns the identifier attached to this transport's diagnostics.
func (t *StdioTransport) SessionID() string {
	return t.sessionID
}

// Open prepares the transport for use. Standard input and output are
// process-level resources already open at process start, so this is a no-op.
func (t *StdioTransport) Open() error {
	return nil
}

// Close releases transport resources. The process's standard streams are
// implicitly closed at process exit, so this is a no-op.
func (t *StdioTransport) Close() error {
	return nil
}

// CloseInput closes the underlying input stream when it is closable,
// unblocking a Receive that is waiting on a line. Closing os.Stdin or a
// pipe reader makes the next read fail, which Receive surfaces as a
// channel failure.
func (t *StdioTransport) CloseInput() error {
	if closer, ok := t.raw.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Receive blocks until one full line is available on standard input, then
// decodes it. A final line without a terminator (EOF mid-line) is still
// decoded; end-of-input with zero bytes read is a channel failure.
func (t *StdioTransport) Receive() (protocol.Message, error) {
	t.readMu.Lock()
	line, err := t.reader.ReadBytes('\n')
	t.readMu.Unlock()

	if err != nil {
		if !errors.Is(err, io.EOF) {
			return nil, wireerrors.ChannelFailure("stdio", "read", err)
		}
		if len(line) == 0 {
			return nil, wireerrors.EndOfStream("stdio", err)
		}
		// EOF after a partial final line: decode what arrived
	}

	line = bytes.TrimSuffix(line, []byte{'\n'})
	t.logger.Debug("received", logging.String("line", string(line)))

	return protocol.Parse(line)
}

// Send encodes the message, writes it as a single line to standard output
// and flushes before returning, so the peer is never left waiting on
// buffered data.
func (t *StdioTransport) Send(msg protocol.Message) error {
	data, err := protocol.Encode(msg)
	if err != nil {
		return err
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	if _, err := t.writer.Write(data); err != nil {
		return wireerrors.ChannelFailure("stdio", "write", err)
	}
	if err := t.writer.WriteByte('\n'); err != nil {
		return wireerrors.ChannelFailure("stdio", "write", err)
	}
	if err := t.writer.Flush(); err != nil {
		return wireerrors.ChannelFailure("stdio", "flush", err)
	}

	t.logger.Debug("sent", logging.String("line", string(data)))
	return nil
}
