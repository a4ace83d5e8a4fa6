package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestEncode_ChannelVoiceRoundTrip(t *testing.T) {
	msg := ChannelMessage{
		Channel: mustChannel(3),
		Body:    NoteOn{Note: mustU7(60), Velocity: mustU7(100)},
	}

	wire, err := Encode(msg)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x93, 60, 100}, wire)

	p := NewParser()
	outcome := p.Parse(wire)
	require.Equal(t, OutcomeMessage, outcome.Kind)
	assert.Equal(t, msg, outcome.Message)
}

func TestEncode_SystemExclusive(t *testing.T) {
	msg := SystemExclusiveMessage{Payload: []byte{1, 2, 3}}
	wire, err := Encode(msg)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xF0, 1, 2, 3, 0xF7}, wire)
}

func TestEncode_PitchBendCentered(t *testing.T) {
	v, err := NewU14(0, 0x40)
	require.NoError(t, err)
	msg := ChannelMessage{Channel: mustChannel(0), Body: PitchBend{Value: v}}

	wire, err := Encode(msg)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xE0, 0x00, 0x40}, wire)
}

func TestProperty_EncodeThenParseRoundTrips(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		channel := mustChannel(uint8(rapid.IntRange(0, 15).Draw(t, "channel")))
		kind := rapid.IntRange(0, 6).Draw(t, "kind")
		data1 := uint8(rapid.IntRange(0, 127).Draw(t, "data1"))
		data2 := uint8(rapid.IntRange(0, 127).Draw(t, "data2"))

		var body ChannelBody
		switch kind {
		case 0:
			body = NoteOff{Note: mustU7(data1), Velocity: mustU7(data2)}
		case 1:
			body = NoteOn{Note: mustU7(data1), Velocity: mustU7(data2)}
		case 2:
			body = PolyAftertouch{Note: mustU7(data1), Value: mustU7(data2)}
		case 3:
			// Keep the controller number below 120 so this stays a
			// ControlChange rather than a Channel Mode message.
			body = ControlChange{Controller: mustU7(data1 % 120), Value: mustU7(data2)}
		case 4:
			body = ProgramChange{Program: mustU7(data1)}
		case 5:
			body = ChannelAftertouch{Value: mustU7(data1)}
		case 6:
			v, err := NewU14(data1, data2)
			require.NoError(t, err)
			body = PitchBend{Value: v}
		}

		msg := ChannelMessage{Channel: channel, Body: body}
		wire, err := Encode(msg)
		require.NoError(t, err)

		p := NewParser()
		outcome := p.Parse(wire)
		require.Equal(t, OutcomeMessage, outcome.Kind)
		assert.Equal(t, len(wire), outcome.BytesConsumed)
		assert.Equal(t, msg, outcome.Message)
	})
}
