package midi

import "fmt"

// Encode renders msg as the wire bytes that, fed to a fresh Parser, would
// decode back to an equal value. Encode always emits an explicit status
// byte; it never applies running-status compression, since the right
// compression to apply depends on state Encode does not have (the
// previous message on the wire), which is the caller's concern, not the
// message algebra's.
func Encode(msg Message) ([]byte, error) {
	switch m := msg.(type) {
	case ChannelMessage:
		return encodeChannelMessage(m)
	case SystemRealTimeMessage:
		return []byte{m.Status}, nil
	case SystemExclusiveMessage:
		out := make([]byte, 0, len(m.Payload)+2)
		out = append(out, StatusSysExStart)
		out = append(out, m.Payload...)
		out = append(out, StatusEOX)
		return out, nil
	case MTCQuarterFrame:
		return []byte{StatusMTCQuarterFram, m.Data.Value()}, nil
	case SongPositionPointer:
		lsb, msb := m.Position.Septets()
		return []byte{StatusSongPosition, lsb, msb}, nil
	case SongSelect:
		return []byte{StatusSongSelect, m.Song.Value()}, nil
	case UndefinedCommon:
		return []byte{m.Status}, nil
	case TuneRequest:
		return []byte{StatusTuneRequest}, nil
	default:
		return nil, fmt.Errorf("midi: encode: unrecognized message type %T", msg)
	}
}

func encodeChannelMessage(m ChannelMessage) ([]byte, error) {
	ch := m.Channel.Value()

	switch b := m.Body.(type) {
	case NoteOff:
		return []byte{StatusNoteOff | ch, b.Note.Value(), b.Velocity.Value()}, nil
	case NoteOn:
		return []byte{StatusNoteOn | ch, b.Note.Value(), b.Velocity.Value()}, nil
	case PolyAftertouch:
		return []byte{StatusPolyAftertouch | ch, b.Note.Value(), b.Value.Value()}, nil
	case ControlChange:
		return []byte{StatusControlChange | ch, b.Controller.Value(), b.Value.Value()}, nil
	case ProgramChange:
		return []byte{StatusProgramChange | ch, b.Program.Value()}, nil
	case ChannelAftertouch:
		return []byte{StatusChannelAftertouch | ch, b.Value.Value()}, nil
	case PitchBend:
		lsb, msb := b.Value.Septets()
		return []byte{StatusPitchBend | ch, lsb, msb}, nil
	case AllSoundOff:
		return []byte{StatusControlChange | ch, byte(channelModeAllSoundOff), b.Value.Value()}, nil
	case ResetAllControllers:
		return []byte{StatusControlChange | ch, byte(channelModeResetAllControllers), b.Value.Value()}, nil
	case LocalControl:
		return []byte{StatusControlChange | ch, byte(channelModeLocalControl), b.RawValue}, nil
	case AllNotesOff:
		return []byte{StatusControlChange | ch, byte(channelModeAllNotesOff), b.Value.Value()}, nil
	case OmniOff:
		return []byte{StatusControlChange | ch, byte(channelModeOmniOff), b.Value.Value()}, nil
	case OmniOn:
		return []byte{StatusControlChange | ch, byte(channelModeOmniOn), b.Value.Value()}, nil
	case MonoOn:
		return []byte{StatusControlChange | ch, byte(channelModeMonoOn), b.Value.Value()}, nil
	case PolyOn:
		return []byte{StatusControlChange | ch, byte(channelModePolyOn), b.Value.Value()}, nil
	default:
		return nil, fmt.Errorf("midi: encode: unrecognized channel body type %T", b)
	}
}
