package mididevice

import (
	"fmt"
	"io"

	"github.com/pkg/term"
)

// StandardBaud is the fixed baud rate the MIDI 1.0 electrical
// specification mandates for DIN-5 serial transport. USB-MIDI adapters
// that expose a tty rather than a native USB-MIDI endpoint typically still
// expect their virtual serial port opened at this rate.
const StandardBaud = 31250

// Port is an open MIDI serial device. It satisfies io.ReadWriteCloser so it
// can be handed directly to transport.Pump.
type Port struct {
	name string
	t    *term.Term
}

var _ io.ReadWriteCloser = (*Port)(nil)

// Open opens path in raw mode at baud. A baud of 0 requests StandardBaud.
func Open(path string, baud int) (*Port, error) {
	if baud == 0 {
		baud = StandardBaud
	}

	t, err := term.Open(path, term.Speed(baud), term.RawMode)
	if err != nil {
		return nil, fmt.Errorf("mididevice: opening %s: %w", path, err)
	}

	return &Port{name: path, t: t}, nil
}

// Name returns the device path this Port was opened with.
func (p *Port) Name() string {
	return p.name
}

func (p *Port) Read(buf []byte) (int, error) {
	return p.t.Read(buf)
}

func (p *Port) Write(buf []byte) (int, error) {
	n, err := p.t.Write(buf)
	if err != nil {
		return n, fmt.Errorf("mididevice: writing to %s: %w", p.name, err)
	}
	return n, nil
}

func (p *Port) Close() error {
	if err := p.t.Flush(); err != nil {
		return fmt.Errorf("mididevice: flushing %s: %w", p.name, err)
	}
	return p.t.Close()
}
