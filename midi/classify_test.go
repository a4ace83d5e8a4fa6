package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsStatusByte(t *testing.T) {
	assert.True(t, IsStatusByte(0x80))
	assert.True(t, IsStatusByte(0xFF))
	assert.False(t, IsStatusByte(0x00))
	assert.False(t, IsStatusByte(0x7F))
}

func TestIsRealTime(t *testing.T) {
	for b := 0xF8; b <= 0xFF; b++ {
		assert.True(t, IsRealTime(byte(b)), "0x%02X should be Real-Time", b)
	}
	for _, b := range []byte{0x00, 0x7F, 0x80, 0x90, 0xF0, 0xF7} {
		assert.False(t, IsRealTime(b), "0x%02X should not be Real-Time", b)
	}
}

func TestIsChannelStatus(t *testing.T) {
	for h := 0x8; h <= 0xE; h++ {
		assert.True(t, IsChannelStatus(byte(h<<4)))
	}
	assert.False(t, IsChannelStatus(0xF0))
	assert.False(t, IsChannelStatus(0x7F))
}

func TestFixedDataBytes(t *testing.T) {
	cases := []struct {
		status byte
		n      int
		ok     bool
	}{
		{0x80, 2, true}, // NoteOff
		{0x90, 2, true}, // NoteOn
		{0xA0, 2, true}, // PolyAftertouch
		{0xB0, 2, true}, // ControlChange/ChannelMode
		{0xC0, 1, true}, // ProgramChange
		{0xD0, 1, true}, // ChannelAftertouch
		{0xE0, 2, true}, // PitchBend
		{StatusSysExStart, 0, false},
		{StatusEOX, 0, false},
		{StatusMTCQuarterFram, 1, true},
		{StatusSongPosition, 2, true},
		{StatusSongSelect, 1, true},
		{StatusUndefinedF4, 0, true},
		{StatusUndefinedF5, 0, true},
		{StatusTuneRequest, 0, true},
		{StatusTimingClock, 0, true},
		{StatusSystemReset, 0, true},
	}
	for _, c := range cases {
		n, ok := fixedDataBytes(c.status)
		assert.Equal(t, c.ok, ok, "status 0x%02X", c.status)
		if ok {
			assert.Equal(t, c.n, n, "status 0x%02X", c.status)
		}
	}
}
