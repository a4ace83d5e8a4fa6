package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildControlOrModeMessage(t *testing.T) {
	cases := []struct {
		first byte
		want  ChannelBody
	}{
		{0, ControlChange{Controller: mustU7(0), Value: mustU7(5)}},
		{119, ControlChange{Controller: mustU7(119), Value: mustU7(5)}},
		{120, AllSoundOff{Value: mustU7(5)}},
		{121, ResetAllControllers{Value: mustU7(5)}},
		{123, AllNotesOff{Value: mustU7(5)}},
		{124, OmniOff{Value: mustU7(5)}},
		{125, OmniOn{Value: mustU7(5)}},
		{126, MonoOn{Value: mustU7(5)}},
		{127, PolyOn{Value: mustU7(5)}},
	}
	for _, c := range cases {
		got := buildControlOrModeMessage(c.first, 5)
		assert.Equal(t, c.want, got, "first byte %d", c.first)
	}
}

func TestBuildControlOrModeMessage_LocalControl(t *testing.T) {
	got := buildControlOrModeMessage(122, 127)
	assert.Equal(t, LocalControl{On: true, RawValue: 127}, got)

	got = buildControlOrModeMessage(122, 0)
	assert.Equal(t, LocalControl{On: false, RawValue: 0}, got)
}
