// Package miditest provides a pty-backed byte-delivery harness for
// exercising transport.Pump (or any other io.Reader consumer) against
// fragments arriving the way real serial hardware delivers them: in
// arbitrarily small, arbitrarily timed writes on the other end of a
// pseudo-terminal, rather than handed over in one slice.
package miditest

import (
	"fmt"
	"os"
	"time"

	"github.com/creack/pty"
)

// Harness owns one pty pair. A consumer under test reads from Master
// (e.g. transport.Pump(ctx, h.Master, ...)); the test drives Feed or
// FeedFragments to control exactly how bytes arrive on the other end.
type Harness struct {
	Master *os.File
	slave  *os.File
}

// Open creates a new pty pair.
func Open() (*Harness, error) {
	master, slave, err := pty.Open()
	if err != nil {
		return nil, fmt.Errorf("miditest: opening pty: %w", err)
	}
	return &Harness{Master: master, slave: slave}, nil
}

// Close closes both ends of the pty pair.
func (h *Harness) Close() error {
	slaveErr := h.slave.Close()
	masterErr := h.Master.Close()
	if slaveErr != nil {
		return slaveErr
	}
	return masterErr
}

// Feed writes data to the slave side in one call, letting the kernel
// coalesce it into however many reads the consumer happens to make.
func (h *Harness) Feed(data []byte) error {
	_, err := h.slave.Write(data)
	if err != nil {
		return fmt.Errorf("miditest: feeding bytes: %w", err)
	}
	return nil
}

// FeedFragments writes data to the slave side split at the given sizes,
// one write per fragment with pause between each, forcing a reader on
// Master to see the stream arrive exactly as fragmented rather than
// recombined by buffering somewhere in between. The fragment sizes must
// sum to len(data).
func (h *Harness) FeedFragments(data []byte, fragmentSizes []int, pause time.Duration) error {
	total := 0
	for _, n := range fragmentSizes {
		total += n
	}
	if total != len(data) {
		return fmt.Errorf("miditest: fragment sizes sum to %d, want %d", total, len(data))
	}

	offset := 0
	for _, n := range fragmentSizes {
		if _, err := h.slave.Write(data[offset : offset+n]); err != nil {
			return fmt.Errorf("miditest: feeding fragment at offset %d: %w", offset, err)
		}
		offset += n
		if pause > 0 {
			time.Sleep(pause)
		}
	}
	return nil
}
