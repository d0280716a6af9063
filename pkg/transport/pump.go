package transport

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	wireerrors "github.com/acpkit/acp-go/pkg/errors"
	"github.com/acpkit/acp-go/pkg/protocol"
)

// Pump drives a Transport's blocking Receive in a background goroutine and
// delivers decoded messages on a channel, adding the cancellation the
// Transport contract itself does not offer. Malformed lines are reported on
// a side channel and do not stop the pump; channel failures and end of
// stream do.
type Pump struct {
	transport Transport

	messages chan protocol.Message
	errs     chan error

	startOnce sync.Once
}

// ErrPumpAlreadyRunning is returned by Run when the pump was started twice.
var ErrPumpAlreadyRunning = errors.New("pump already running")

// NewPump creates a pump around the given transport. The transport should
// already be open.
func NewPump(t Transport) *Pump {
	return &Pump{
		transport: t,
		messages:  make(chan protocol.Message),
		errs:      make(chan error, 16),
	}
}

// Messages returns the channel of decoded inbound messages. It is closed
// when the pump stops.
func (p *Pump) Messages() <-chan protocol.Message {
	return p.messages
}

// Errors returns the channel of per-line decode failures. Reading it is
// optional: when the buffer is full further failures are dropped rather
// than blocking the receive loop.
func (p *Pump) Errors() <-chan error {
	return p.errs
}

// Run receives messages until the context is cancelled, the peer closes the
// stream, or the channel fails. End of stream is a clean stop and returns
// nil; cancellation returns the context's error. Run may be called once.
func (p *Pump) Run(ctx context.Context) error {
	started := false
	p.startOnce.Do(func() { started = true })
	if !started {
		return ErrPumpAlreadyRunning
	}

	defer close(p.messages)
	defer close(p.errs)

	g, ctx := errgroup.WithContext(ctx)
	done := make(chan struct{})

	// Receive blocks with no timeout, so cancellation works by closing the
	// transport's input stream out from under it.
	g.Go(func() error {
		select {
		case <-ctx.Done():
			if closer, ok := p.transport.(InputCloser); ok {
				_ = closer.CloseInput()
			}
			return ctx.Err()
		case <-done:
			return nil
		}
	})

	g.Go(func() error {
		defer close(done)

		for {
			msg, err := p.transport.Receive()
			if err != nil {
				if wireerrors.IsEndOfStream(err) {
					return nil
				}
				if wireerrors.IsMalformedMessage(err) {
					p.reportError(err)
					continue
				}
				// A read failure after cancellation is the expected result
				// of closing the input; the watcher's ctx.Err() wins.
				if ctx.Err() != nil {
					return nil
				}
				return err
			}

			select {
			case p.messages <- msg:
			case <-ctx.Done():
				return nil
			}
		}
	})

	return g.Wait()
}

// reportError delivers a decode failure without ever blocking the loop
func (p *Pump) reportError(err error) {
	select {
	case p.errs <- err:
	default:
	}
}
