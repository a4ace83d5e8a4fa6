// Package sessionlog writes a CSV record of every message a session
// decodes, one file per UTC day, in the spirit of the daily-rotating
// activity log the teacher's own decoder keeps: open for append lazily,
// write a header only for a file that didn't already exist, and roll over
// to a new file the moment the formatted name changes.
package sessionlog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lestrrat-go/strftime"

	"github.com/brson/muddy2/midi"
)

const namePattern = "%Y-%m-%d.csv"

var header = []string{"utime", "isotime", "kind", "channel", "detail"}

// Logger appends one CSV row per message to a daily-rotating file under
// dir. It is not safe for concurrent use from multiple goroutines.
type Logger struct {
	dir       string
	namer     *strftime.Strftime
	openName  string
	file      *os.File
	csvWriter *csv.Writer
}

// New prepares a Logger that writes under dir, creating dir if it does not
// already exist. No file is opened until the first Write.
func New(dir string) (*Logger, error) {
	namer, err := strftime.New(namePattern)
	if err != nil {
		return nil, fmt.Errorf("sessionlog: compiling name pattern: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("sessionlog: creating %s: %w", dir, err)
	}

	return &Logger{dir: dir, namer: namer}, nil
}

// Write appends one record for msg, observed at t, rolling to a new daily
// file first if the day has changed since the last Write.
func (l *Logger) Write(t time.Time, msg midi.Message) error {
	t = t.UTC()
	name := l.namer.FormatString(t)

	if l.file != nil && name != l.openName {
		if err := l.Close(); err != nil {
			return err
		}
	}

	if l.file == nil {
		if err := l.open(name); err != nil {
			return err
		}
	}

	record := []string{
		fmt.Sprintf("%d", t.Unix()),
		t.Format(time.RFC3339),
		kindOf(msg),
		channelOf(msg),
		detailOf(msg),
	}

	if err := l.csvWriter.Write(record); err != nil {
		return fmt.Errorf("sessionlog: writing record: %w", err)
	}
	l.csvWriter.Flush()
	return l.csvWriter.Error()
}

func (l *Logger) open(name string) error {
	full := filepath.Join(l.dir, name)

	_, statErr := os.Stat(full)
	alreadyThere := statErr == nil

	f, err := os.OpenFile(full, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("sessionlog: opening %s: %w", full, err)
	}

	l.file = f
	l.openName = name
	l.csvWriter = csv.NewWriter(f)

	if !alreadyThere {
		if err := l.csvWriter.Write(header); err != nil {
			return fmt.Errorf("sessionlog: writing header to %s: %w", full, err)
		}
		l.csvWriter.Flush()
		if err := l.csvWriter.Error(); err != nil {
			return err
		}
	}

	return nil
}

// Close flushes and closes the currently open daily file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	l.csvWriter.Flush()
	flushErr := l.csvWriter.Error()
	closeErr := l.file.Close()
	l.file = nil
	l.openName = ""
	l.csvWriter = nil
	if flushErr != nil {
		return fmt.Errorf("sessionlog: flushing: %w", flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("sessionlog: closing: %w", closeErr)
	}
	return nil
}

func kindOf(msg midi.Message) string {
	switch m := msg.(type) {
	case midi.ChannelMessage:
		return fmt.Sprintf("%T", m.Body)
	default:
		return fmt.Sprintf("%T", msg)
	}
}

func channelOf(msg midi.Message) string {
	if cm, ok := msg.(midi.ChannelMessage); ok {
		return fmt.Sprintf("%d", cm.Channel.Value())
	}
	return ""
}

func detailOf(msg midi.Message) string {
	return fmt.Sprintf("%+v", msg)
}
