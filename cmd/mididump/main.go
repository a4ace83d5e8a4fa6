// Command mididump opens a MIDI serial device (or any other byte stream
// reachable as an io.Reader) and prints every decoded message, optionally
// logging the session to daily CSV files and watching a GPIO panic switch.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/brson/muddy2/mididevice"
	"github.com/brson/muddy2/mididump"
	"github.com/brson/muddy2/midi"
	"github.com/brson/muddy2/panicswitch"
	"github.com/brson/muddy2/sessionlog"
	"github.com/brson/muddy2/transport"
)

func main() {
	var (
		configPath = pflag.StringP("config", "c", "", "YAML configuration file.")
		device     = pflag.String("device", "", "Serial device path; overrides the config file.")
		baud       = pflag.Int("baud", 0, "Baud rate; overrides the config file.")
		logDir     = pflag.String("log", "", "Session CSV log directory; overrides the config file.")
		panicChip  = pflag.String("panic-gpio-chip", "", "gpiod chip name for the panic switch; overrides the config file.")
		panicLine  = pflag.Int("panic-gpio-line", -1, "gpiod line offset for the panic switch; overrides the config file.")
		listOnly   = pflag.Bool("list", false, "List candidate MIDI serial devices and exit.")
		verbose    = pflag.BoolP("verbose", "v", false, "Enable debug logging.")
		help       = pflag.Bool("help", false, "Display help text.")
	)

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - dump decoded MIDI messages from a serial device\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s --device PATH [OPTIONS]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s --config CONFIG.yaml [OPTIONS]\n\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	if *listOnly {
		listCandidates(logger)
		return
	}

	cfg := &mididump.Config{}
	if *configPath != "" {
		loaded, err := mididump.LoadConfig(*configPath)
		if err != nil {
			logger.Fatal("loading config", "err", err)
		}
		cfg = loaded
	}
	applyFlagOverrides(cfg, *device, *baud, *logDir, *panicChip, *panicLine)

	if cfg.Device == "" {
		fmt.Fprintln(os.Stderr, "a device is required via --device or the config file; see --help")
		os.Exit(1)
	}

	if err := run(logger, cfg); err != nil {
		logger.Fatal("mididump", "err", err)
	}
}

func applyFlagOverrides(cfg *mididump.Config, device string, baud int, logDir, panicChip string, panicLine int) {
	if device != "" {
		cfg.Device = device
	}
	if baud != 0 {
		cfg.Baud = baud
	}
	if logDir != "" {
		cfg.LogDir = logDir
	}
	if panicChip != "" {
		if cfg.PanicSwitch == nil {
			cfg.PanicSwitch = &mididump.PanicSwitchConfig{}
		}
		cfg.PanicSwitch.Chip = panicChip
	}
	if panicLine >= 0 {
		if cfg.PanicSwitch == nil {
			cfg.PanicSwitch = &mididump.PanicSwitchConfig{}
		}
		cfg.PanicSwitch.Line = panicLine
	}
}

func listCandidates(logger *log.Logger) {
	candidates, err := mididevice.ListCandidates()
	if err != nil {
		logger.Fatal("listing candidate devices", "err", err)
	}
	for _, c := range candidates {
		fmt.Printf("%-20s %s\n", c.Path, c.Description)
	}
}

func run(logger *log.Logger, cfg *mididump.Config) error {
	port, err := mididevice.Open(cfg.Device, cfg.Baud)
	if err != nil {
		return err
	}
	defer func() {
		if err := port.Close(); err != nil {
			logger.Error("closing device", "err", err)
		}
	}()
	logger.Info("opened device", "path", port.Name())

	var sessLog *sessionlog.Logger
	if cfg.LogDir != "" {
		sessLog, err = sessionlog.New(cfg.LogDir)
		if err != nil {
			return err
		}
		defer func() {
			if err := sessLog.Close(); err != nil {
				logger.Error("closing session log", "err", err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	panicCh := make(chan struct{}, 1)
	if cfg.PanicSwitch != nil {
		watchCfg := panicswitch.Config{
			Chip:      cfg.PanicSwitch.Chip,
			Line:      cfg.PanicSwitch.Line,
			ActiveLow: cfg.PanicSwitch.ActiveLow,
		}
		if err := panicswitch.Watch(ctx, watchCfg, panicCh); err != nil {
			return err
		}
		logger.Info("panic switch armed", "chip", watchCfg.Chip, "line", watchCfg.Line)
	}

	messages := make(chan midi.Message, 64)
	anomalies := make(chan transport.Anomaly, 64)

	pumpCtx, cancelPump := context.WithCancel(ctx)
	defer cancelPump()

	pumpErr := make(chan error, 1)
	go func() {
		p := midi.NewParser()
		pumpErr <- transport.Pump(pumpCtx, port, p, messages, anomalies)
		close(messages)
		close(anomalies)
	}()

	for {
		select {
		case <-panicCh:
			logger.Warn("panic switch triggered, silencing all channels")
			if err := broadcastPanicStop(port); err != nil {
				logger.Error("writing panic broadcast", "err", err)
			}
			cancelPump()
		case msg, ok := <-messages:
			if !ok {
				messages = nil
				continue
			}
			now := time.Now()
			fmt.Printf("%s\n", describe(msg))
			if sessLog != nil {
				if err := sessLog.Write(now, msg); err != nil {
					logger.Error("writing session log", "err", err)
				}
			}
		case a, ok := <-anomalies:
			if !ok {
				anomalies = nil
				continue
			}
			logger.Warn("decode anomaly", "detail", a.String())
		case err := <-pumpErr:
			return err
		}
	}
}

// broadcastPanicStop sends AllSoundOff followed by AllNotesOff on every
// channel to out, the panic switch's documented response: silence
// everything immediately (AllSoundOff bypasses release time), then also
// ask for the normal note-off cleanup (AllNotesOff) in case a receiver
// ignores the former.
func broadcastPanicStop(out io.Writer) error {
	zero, err := midi.NewU7(0)
	if err != nil {
		return err
	}

	for ch := uint8(0); ch < 16; ch++ {
		channel, err := midi.NewChannelId(ch)
		if err != nil {
			return err
		}

		for _, body := range []midi.ChannelBody{
			midi.AllSoundOff{Value: zero},
			midi.AllNotesOff{Value: zero},
		} {
			wire, err := midi.Encode(midi.ChannelMessage{Channel: channel, Body: body})
			if err != nil {
				return err
			}
			if _, err := out.Write(wire); err != nil {
				return fmt.Errorf("writing panic broadcast to channel %d: %w", ch, err)
			}
		}
	}

	return nil
}

func describe(msg midi.Message) string {
	if cm, ok := msg.(midi.ChannelMessage); ok {
		return fmt.Sprintf("ch%-2d %T %+v", cm.Channel.Value(), cm.Body, cm.Body)
	}
	return fmt.Sprintf("%T %+v", msg, msg)
}
