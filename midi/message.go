package midi

// Message is the root of the decoded message algebra: every successfully
// parsed message is either a ChannelMessage or one of the system message
// kinds (SystemCommon, SystemRealTime, SystemExclusive variants below).
// The interface carries no methods of its own; it exists purely to let
// callers type-switch over what Parser.Parse handed back.
type Message interface {
	isMessage()
}

// ChannelMessage is a Channel Voice or Channel Mode message addressed to a
// specific channel.
type ChannelMessage struct {
	Channel ChannelId
	Body    ChannelBody
}

func (ChannelMessage) isMessage() {}

// ChannelBody distinguishes Channel Voice from Channel Mode payloads.
type ChannelBody interface {
	isChannelBody()
}

// Channel Voice messages (status nibbles 0x8..=0xE, and 0xB with a first
// data byte below 120).

// NoteOff signals a key release.
type NoteOff struct {
	Note     U7
	Velocity U7
}

func (NoteOff) isChannelBody() {}

// NoteOn signals a key press. A NoteOn with Velocity == 0 is, by the
// standard MIDI convention, an implicit note-off; see IsNoteOffEffective.
type NoteOn struct {
	Note     U7
	Velocity U7
}

func (NoteOn) isChannelBody() {}

// PolyAftertouch reports per-note pressure.
type PolyAftertouch struct {
	Note  U7
	Value U7
}

func (PolyAftertouch) isChannelBody() {}

// ControlChange reports a controller value change. Only emitted when the
// first data byte is below 120; 120..=127 decode as a ChannelMode message
// instead.
type ControlChange struct {
	Controller U7
	Value      U7
}

func (ControlChange) isChannelBody() {}

// ProgramChange selects a new program (patch/instrument) number.
type ProgramChange struct {
	Program U7
}

func (ProgramChange) isChannelBody() {}

// ChannelAftertouch reports channel-wide (not per-note) pressure.
type ChannelAftertouch struct {
	Value U7
}

func (ChannelAftertouch) isChannelBody() {}

// PitchBend reports the 14-bit pitch wheel position.
type PitchBend struct {
	Value U14
}

func (PitchBend) isChannelBody() {}

// IsCentered reports whether the bend value sits at the wire-defined
// center point (0x2000), i.e. no pitch deviation.
func (p PitchBend) IsCentered() bool {
	return p.Value.Value() == 0x2000
}

// Channel Mode messages (status nibble 0xB, first data byte 120..=127).
// Every Channel Mode message carries a second data byte on the wire; these
// types preserve it rather than discarding it, per the resolved "opaque
// vs. expanded variant" question.

// AllSoundOff mutes all sounding notes immediately, bypassing release
// time.
type AllSoundOff struct{ Value U7 }

func (AllSoundOff) isChannelBody() {}

// ResetAllControllers resets controllers to their default values.
type ResetAllControllers struct{ Value U7 }

func (ResetAllControllers) isChannelBody() {}

// LocalControl turns the local keyboard-to-sound-generator connection on
// or off. On is true for a value byte of 127 and false for 0; RawValue
// preserves whatever byte actually arrived so no wire data is dropped even
// outside that strict 0/127 convention.
type LocalControl struct {
	On       bool
	RawValue byte
}

func (LocalControl) isChannelBody() {}

// AllNotesOff releases all notes on the channel (respecting normal
// release time, unlike AllSoundOff).
type AllNotesOff struct{ Value U7 }

func (AllNotesOff) isChannelBody() {}

// OmniOff restricts the receiver to its assigned channel only.
type OmniOff struct{ Value U7 }

func (OmniOff) isChannelBody() {}

// OmniOn makes the receiver respond to all channels.
type OmniOn struct{ Value U7 }

func (OmniOn) isChannelBody() {}

// MonoOn selects monophonic voice assignment. Value holds the requested
// channel count; 0 conventionally means "all channels".
type MonoOn struct{ Value U7 }

func (MonoOn) isChannelBody() {}

// PolyOn selects polyphonic voice assignment.
type PolyOn struct{ Value U7 }

func (PolyOn) isChannelBody() {}

// channelModeKind is the first-data-byte value that selects a Channel
// Mode variant, per MIDI 1.0.
type channelModeKind uint8

const (
	channelModeAllSoundOff         channelModeKind = 120
	channelModeResetAllControllers channelModeKind = 121
	channelModeLocalControl        channelModeKind = 122
	channelModeAllNotesOff         channelModeKind = 123
	channelModeOmniOff             channelModeKind = 124
	channelModeOmniOn              channelModeKind = 125
	channelModeMonoOn              channelModeKind = 126
	channelModePolyOn              channelModeKind = 127
)

// System messages.

// SystemCommonMessage is the System Common family (status bytes
// 0xF1..=0xF6).
type SystemCommonMessage interface {
	Message
	isSystemCommon()
}

// MTCQuarterFrame carries one MIDI Time Code quarter-frame data byte.
type MTCQuarterFrame struct{ Data U7 }

func (MTCQuarterFrame) isMessage()      {}
func (MTCQuarterFrame) isSystemCommon() {}

// SongPositionPointer reports the current song position in MIDI beats.
type SongPositionPointer struct{ Position U14 }

func (SongPositionPointer) isMessage()      {}
func (SongPositionPointer) isSystemCommon() {}

// SongSelect selects a song/sequence number.
type SongSelect struct{ Song U7 }

func (SongSelect) isMessage()      {}
func (SongSelect) isSystemCommon() {}

// UndefinedCommon preserves a reserved System Common status byte (0xF4 or
// 0xF5) verbatim; these carry no data bytes on the wire.
type UndefinedCommon struct{ Status byte }

func (UndefinedCommon) isMessage()      {}
func (UndefinedCommon) isSystemCommon() {}

// TuneRequest asks an analog synth to tune its oscillators.
type TuneRequest struct{}

func (TuneRequest) isMessage()      {}
func (TuneRequest) isSystemCommon() {}

// SystemRealTimeMessage is a single-byte System Real-Time message
// (0xF8..=0xFF). It may appear anywhere in the stream, including inside
// another message or a SysEx payload, and never affects running status.
type SystemRealTimeMessage struct {
	// Status is one of StatusTimingClock, StatusRTUndefinedF9, StatusStart,
	// StatusContinue, StatusStop, StatusRTUndefinedFD, StatusActiveSensing,
	// or StatusSystemReset.
	Status byte
}

func (SystemRealTimeMessage) isMessage() {}

// SystemExclusiveMessage is a complete System Exclusive message: the
// manufacturer-defined payload between the 0xF0 start and 0xF7 (EOX) end
// bytes, exclusive of both framing bytes.
type SystemExclusiveMessage struct {
	Payload []byte
}

func (SystemExclusiveMessage) isMessage() {}
