// Package panicswitch watches a GPIO input line for a panic switch: a
// physical button wired to cut a session short (stop transmitting,
// flush and close the session log) without killing the process. This
// replaces the sysfs/gpiod line-twiddling the hardware control code once
// did by hand with the gpiod character-device ioctls, here via
// go-gpiocdev instead of a cgo binding to libgpiod.
package panicswitch

import (
	"context"
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// Config names the GPIO chip and line the panic switch is wired to.
type Config struct {
	// Chip is the gpiod chip name, e.g. "gpiochip0".
	Chip string
	// Line is the offset of the input line on Chip.
	Line int
	// ActiveLow inverts the line's sense: when true, a logic-low level
	// (switch pulled to ground) is the "pressed" state.
	ActiveLow bool
}

// Watch opens Chip/Line and sends on triggered each time the switch
// transitions into its active state, until ctx is canceled. The returned
// error is non-nil only if the line could not be opened; cancellation via
// ctx is reported by the caller observing ctx.Done(), not as a return
// error, mirroring the read-until-canceled shape of transport.Pump.
func Watch(ctx context.Context, cfg Config, triggered chan<- struct{}) error {
	// The edge that signals "pressed" depends on how the switch is wired:
	// active-low (the normal wiring, pulling the line to ground on press)
	// fires a falling edge on press and a rising edge on release;
	// active-high is the other way around.
	pressEdge := gpiocdev.RisingEdge
	wantEdge := gpiocdev.LineEventRisingEdge
	if cfg.ActiveLow {
		pressEdge = gpiocdev.FallingEdge
		wantEdge = gpiocdev.LineEventFallingEdge
	}

	bias := gpiocdev.AsIs
	options := []gpiocdev.LineReqOption{gpiocdev.AsInput, bias, pressEdge}
	if cfg.ActiveLow {
		options = append(options, gpiocdev.AsActiveLow)
	}

	handler := func(evt gpiocdev.LineEvent) {
		if evt.Type != wantEdge {
			return
		}
		select {
		case triggered <- struct{}{}:
		case <-ctx.Done():
		}
	}
	options = append(options, gpiocdev.WithEventHandler(handler))

	line, err := gpiocdev.RequestLine(cfg.Chip, cfg.Line, options...)
	if err != nil {
		return fmt.Errorf("panicswitch: requesting %s line %d: %w", cfg.Chip, cfg.Line, err)
	}

	go func() {
		<-ctx.Done()
		_ = line.Close()
	}()

	return nil
}
