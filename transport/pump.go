// Package transport feeds an io.Reader through a midi.Parser, applying the
// caller contract spec.md §6 places on whoever owns the byte buffer: drop
// BytesConsumed bytes, additionally excise the interrupting byte on
// OutcomeInterruptingRealTime, and wait for more I/O on OutcomeNeedMoreBytes.
// The core package never sees a partial read except through a pump like
// this one (or an equivalent caller-supplied loop).
package transport

import (
	"context"
	"fmt"
	"io"

	"github.com/brson/muddy2/midi"
)

// Anomaly reports one in-band decoding anomaly surfaced while pumping, with
// enough context to log or recover from it.
type Anomaly struct {
	Kind midi.OutcomeKind
	// Bytes holds the anomalous span consumed from the stream: the single
	// stray byte for UnexpectedDataByte/UnexpectedEox, or the partial
	// message for BrokenMessage.
	Bytes []byte
}

func (a Anomaly) String() string {
	return fmt.Sprintf("%s: % x", a.Kind, a.Bytes)
}

const initialReadSize = 256

// Pump reads from r in arbitrarily-sized chunks, drives p.Parse across
// them, and sends every decoded message (including interrupting Real-Time
// messages) on out and every anomaly on anomalies. It returns when r
// reaches io.EOF, ctx is canceled, or a non-EOF read error occurs.
//
// Pump owns p for as long as it runs: nothing else may call p.Parse
// concurrently.
func Pump(ctx context.Context, r io.Reader, p *midi.Parser, out chan<- midi.Message, anomalies chan<- Anomaly) error {
	// An io.Reader gives us no portable way to interrupt a Read call
	// already in progress. If r also happens to be an io.Closer (every
	// concrete reader this package is built against -- os.File-backed
	// serial ports, ptys, net.Conn -- is), close it on cancellation so a
	// blocked Read unblocks with an error instead of leaking the pump
	// goroutine forever.
	if closer, ok := r.(io.Closer); ok {
		stop := make(chan struct{})
		defer close(stop)
		go func() {
			select {
			case <-ctx.Done():
				_ = closer.Close()
			case <-stop:
			}
		}()
	}

	buf := make([]byte, 0, initialReadSize)
	chunk := make([]byte, initialReadSize)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		for len(buf) > 0 {
			outcome := p.Parse(buf)

			switch outcome.Kind {
			case midi.OutcomeMessage:
				buf = buf[outcome.BytesConsumed:]
				if !sendMessage(ctx, out, outcome.Message) {
					return ctx.Err()
				}
			case midi.OutcomeInterruptingRealTime:
				buf = excise(buf, outcome.ByteIndex)
				if !sendMessage(ctx, out, outcome.InterruptingMessage) {
					return ctx.Err()
				}
			case midi.OutcomeNeedMoreBytes:
				goto readMore
			default:
				// UnexpectedDataByte, UnexpectedEox, BrokenMessage.
				anomalous := buf[:outcome.BytesConsumed]
				buf = buf[outcome.BytesConsumed:]
				if !sendAnomaly(ctx, anomalies, Anomaly{Kind: outcome.Kind, Bytes: anomalous}) {
					return ctx.Err()
				}
			}
		}

	readMore:
		n, err := r.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

// excise removes the byte at index k from buf, as spec.md §6's caller
// contract requires for an interrupting Real-Time byte, and returns the
// resulting slice.
func excise(buf []byte, k int) []byte {
	out := make([]byte, 0, len(buf)-1)
	out = append(out, buf[:k]...)
	out = append(out, buf[k+1:]...)
	return out
}

func sendMessage(ctx context.Context, out chan<- midi.Message, msg midi.Message) bool {
	select {
	case out <- msg:
		return true
	case <-ctx.Done():
		return false
	}
}

func sendAnomaly(ctx context.Context, anomalies chan<- Anomaly, a Anomaly) bool {
	select {
	case anomalies <- a:
		return true
	case <-ctx.Done():
		return false
	}
}
