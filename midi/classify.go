package midi

// Pure, stateless byte classification. None of this allocates or touches
// parser state; it is the shared vocabulary the decoder's case analysis is
// built from.

// Channel Voice/Mode status nibble bases (high nibble 0x8..=0xE). OR this
// with a ChannelId's Value() to produce the full status byte.
const (
	StatusNoteOff           byte = 0x80
	StatusNoteOn            byte = 0x90
	StatusPolyAftertouch    byte = 0xA0
	StatusControlChange     byte = 0xB0
	StatusProgramChange     byte = 0xC0
	StatusChannelAftertouch byte = 0xD0
	StatusPitchBend         byte = 0xE0
)

// System status byte constants (high nibble 0xF).
const (
	StatusSysExStart     byte = 0xF0
	StatusMTCQuarterFram byte = 0xF1
	StatusSongPosition   byte = 0xF2
	StatusSongSelect     byte = 0xF3
	StatusUndefinedF4    byte = 0xF4
	StatusUndefinedF5    byte = 0xF5
	StatusTuneRequest    byte = 0xF6
	StatusEOX            byte = 0xF7
	StatusTimingClock    byte = 0xF8
	StatusRTUndefinedF9  byte = 0xF9
	StatusStart          byte = 0xFA
	StatusContinue       byte = 0xFB
	StatusStop           byte = 0xFC
	StatusRTUndefinedFD  byte = 0xFD
	StatusActiveSensing  byte = 0xFE
	StatusSystemReset    byte = 0xFF
)

// IsStatusByte reports whether b is a status byte (high bit set).
func IsStatusByte(b byte) bool {
	return b&0x80 != 0
}

// HighNibble returns the top 4 bits of b, which for a status byte selects
// its message category.
func HighNibble(b byte) byte {
	return b >> 4
}

// LowNibble returns the bottom 4 bits of b.
func LowNibble(b byte) byte {
	return b & 0x0F
}

// IsRealTime reports whether b is a System Real-Time status byte
// (0xF8..=0xFF). These may legally appear in the middle of any other
// message and never affect running status.
func IsRealTime(b byte) bool {
	return b >= StatusTimingClock
}

// IsChannelStatus reports whether b is a Channel (Voice or Mode) status
// byte — high nibble in 0x8..=0xE.
func IsChannelStatus(b byte) bool {
	h := HighNibble(b)
	return h >= 0x8 && h <= 0xE
}

// fixedDataBytes returns the number of data bytes a non-SysEx, non-EOX
// status byte expects. ok is false only for 0xF0 (SysEx start, handled by
// the variable-length sub-protocol) and 0xF7 (EOX, handled as an anomaly
// outside of SysEx).
func fixedDataBytes(status byte) (n int, ok bool) {
	h := HighNibble(status)
	switch h {
	case 0x8, 0x9, 0xA, 0xB, 0xE:
		return 2, true
	case 0xC, 0xD:
		return 1, true
	case 0xF:
		switch status {
		case StatusSysExStart, StatusEOX:
			return 0, false
		case StatusMTCQuarterFram, StatusSongSelect:
			return 1, true
		case StatusSongPosition:
			return 2, true
		case StatusUndefinedF4, StatusUndefinedF5, StatusTuneRequest:
			return 0, true
		default:
			// 0xF8..=0xFF: Real-Time, single byte, no data.
			return 0, true
		}
	default:
		// Unreachable: h is always in 0x8..=0xF for a status byte, and
		// callers only invoke this with IsStatusByte(status) already true.
		return 0, true
	}
}
