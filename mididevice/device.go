// Package mididevice discovers and opens the serial character devices that
// typically carry a MIDI 1.0 byte stream: USB-MIDI adapters and
// USB-to-TTL-serial cables wired to a DIN-5 MIDI port, both of which show
// up under Linux as tty devices in the "tty" udev subsystem.
package mididevice

import (
	"fmt"

	"github.com/jochenvg/go-udev"
)

// Candidate describes one serial device discovered on the system that is
// plausibly a MIDI interface.
type Candidate struct {
	// Path is the device node, e.g. "/dev/ttyUSB0" or "/dev/ttyACM0".
	Path string
	// Vendor and Product are the USB vendor/product IDs of the device's
	// parent, when it has one and udev exposes them. Both are empty for
	// devices with no USB ancestor (e.g. a platform UART).
	Vendor  string
	Product string
	// Description is a short human-readable label built from whatever
	// udev properties are available (ID_MODEL, ID_VENDOR, or the
	// device node path as a fallback).
	Description string
}

// ListCandidates enumerates tty devices known to udev and returns them as
// Candidates. It performs no I/O against the devices themselves; callers
// decide which candidate (if any) to Open.
func ListCandidates() ([]Candidate, error) {
	u := udev.Udev{}
	e := u.NewEnumerate()

	if err := e.AddMatchSubsystem("tty"); err != nil {
		return nil, fmt.Errorf("mididevice: matching tty subsystem: %w", err)
	}

	devices, err := e.Devices()
	if err != nil {
		return nil, fmt.Errorf("mididevice: enumerating tty devices: %w", err)
	}

	candidates := make([]Candidate, 0, len(devices))
	for _, d := range devices {
		node := d.Devnode()
		if node == "" {
			continue
		}

		parent := d.Parent()
		var vendor, product string
		if parent != nil {
			vendor = parent.PropertyValue("ID_VENDOR_ID")
			product = parent.PropertyValue("ID_MODEL_ID")
		}

		candidates = append(candidates, Candidate{
			Path:        node,
			Vendor:      vendor,
			Product:     product,
			Description: describe(d, node),
		})
	}

	return candidates, nil
}

func describe(d *udev.Device, fallback string) string {
	if model := d.PropertyValue("ID_MODEL"); model != "" {
		if vendor := d.PropertyValue("ID_VENDOR"); vendor != "" {
			return fmt.Sprintf("%s %s", vendor, model)
		}
		return model
	}
	return fallback
}
