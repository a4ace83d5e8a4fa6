// Package mididump holds the configuration and wiring shared by the
// mididump command: a YAML file describing which device to open, how to
// log a session, and whether a panic switch is attached, reimagining the
// line-oriented configuration grammar of the audio/radio TNC as a small
// declarative YAML document.
package mididump

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk shape of a mididump configuration file.
type Config struct {
	// Device is the serial device path to open, e.g. "/dev/ttyUSB0".
	// Left empty (and not set by --device), mididump prints an error and
	// exits with status 1; listing candidates is done with --list.
	Device string `yaml:"device"`
	// Baud is the serial baud rate. Zero means mididevice.StandardBaud.
	Baud int `yaml:"baud"`
	// LogDir, if non-empty, enables session logging to daily CSV files
	// under this directory.
	LogDir string `yaml:"log_dir"`
	// PanicSwitch, if set, enables the GPIO panic-switch watcher.
	PanicSwitch *PanicSwitchConfig `yaml:"panic_switch"`
}

// PanicSwitchConfig mirrors panicswitch.Config in YAML-friendly form.
type PanicSwitchConfig struct {
	Chip      string `yaml:"chip"`
	Line      int    `yaml:"line"`
	ActiveLow bool   `yaml:"active_low"`
}

// LoadConfig reads and parses a YAML configuration file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mididump: reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("mididump: parsing config %s: %w", path, err)
	}

	return &cfg, nil
}
