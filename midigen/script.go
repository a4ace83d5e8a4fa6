// Package midigen turns a small YAML script into a raw MIDI byte stream,
// the inverse of what mididump decodes: useful for feeding a synthesizer,
// or for generating test fixtures for transport.Pump and the miditest
// harness without hand-assembling status bytes.
package midigen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/brson/muddy2/midi"
)

// Script is the on-disk shape of a midigen YAML script: a flat list of
// events, each naming one message kind and its fields.
type Script struct {
	Events []Event `yaml:"events"`
}

// Event names one message to emit. Only the fields relevant to Kind need
// be set; the rest are ignored.
type Event struct {
	Kind     string `yaml:"kind"`
	Channel  uint8  `yaml:"channel"`
	Note     uint8  `yaml:"note"`
	Velocity uint8  `yaml:"velocity"`
	Value    uint8  `yaml:"value"`
	Program  uint8  `yaml:"program"`
	Bend     uint16 `yaml:"bend"`
	Payload  []byte `yaml:"payload"`
	Status   uint8  `yaml:"status"`
}

// LoadScript reads and parses a YAML script file at path.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("midigen: reading script %s: %w", path, err)
	}

	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("midigen: parsing script %s: %w", path, err)
	}

	return &s, nil
}

// Render encodes every event in s to wire bytes, concatenated in order.
func Render(s *Script) ([]byte, error) {
	var out []byte
	for i, ev := range s.Events {
		wire, err := renderEvent(ev)
		if err != nil {
			return nil, fmt.Errorf("midigen: event %d (%s): %w", i, ev.Kind, err)
		}
		out = append(out, wire...)
	}
	return out, nil
}

func renderEvent(ev Event) ([]byte, error) {
	switch ev.Kind {
	case "note_on":
		msg, err := channelMsg(ev.Channel, func() (midi.ChannelBody, error) {
			note, err := midi.NewU7(ev.Note)
			if err != nil {
				return nil, err
			}
			vel, err := midi.NewU7(ev.Velocity)
			if err != nil {
				return nil, err
			}
			return midi.NoteOn{Note: note, Velocity: vel}, nil
		})
		if err != nil {
			return nil, err
		}
		return midi.Encode(msg)

	case "note_off":
		msg, err := channelMsg(ev.Channel, func() (midi.ChannelBody, error) {
			note, err := midi.NewU7(ev.Note)
			if err != nil {
				return nil, err
			}
			vel, err := midi.NewU7(ev.Velocity)
			if err != nil {
				return nil, err
			}
			return midi.NoteOff{Note: note, Velocity: vel}, nil
		})
		if err != nil {
			return nil, err
		}
		return midi.Encode(msg)

	case "control_change":
		msg, err := channelMsg(ev.Channel, func() (midi.ChannelBody, error) {
			ctrl, err := midi.NewU7(ev.Note)
			if err != nil {
				return nil, err
			}
			val, err := midi.NewU7(ev.Value)
			if err != nil {
				return nil, err
			}
			return midi.ControlChange{Controller: ctrl, Value: val}, nil
		})
		if err != nil {
			return nil, err
		}
		return midi.Encode(msg)

	case "program_change":
		msg, err := channelMsg(ev.Channel, func() (midi.ChannelBody, error) {
			prog, err := midi.NewU7(ev.Program)
			if err != nil {
				return nil, err
			}
			return midi.ProgramChange{Program: prog}, nil
		})
		if err != nil {
			return nil, err
		}
		return midi.Encode(msg)

	case "pitch_bend":
		msg, err := channelMsg(ev.Channel, func() (midi.ChannelBody, error) {
			v, err := midi.NewU14(uint8(ev.Bend&0x7F), uint8((ev.Bend>>7)&0x7F))
			if err != nil {
				return nil, err
			}
			return midi.PitchBend{Value: v}, nil
		})
		if err != nil {
			return nil, err
		}
		return midi.Encode(msg)

	case "sysex":
		return midi.Encode(midi.SystemExclusiveMessage{Payload: ev.Payload})

	case "realtime":
		return midi.Encode(midi.SystemRealTimeMessage{Status: ev.Status})

	default:
		return nil, fmt.Errorf("unrecognized event kind %q", ev.Kind)
	}
}

func channelMsg(channel uint8, buildBody func() (midi.ChannelBody, error)) (midi.ChannelMessage, error) {
	ch, err := midi.NewChannelId(channel)
	if err != nil {
		return midi.ChannelMessage{}, err
	}
	body, err := buildBody()
	if err != nil {
		return midi.ChannelMessage{}, err
	}
	return midi.ChannelMessage{Channel: ch, Body: body}, nil
}
