package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNoteOnEffective(t *testing.T) {
	note, vel, ok := IsNoteOnEffective(NoteOn{Note: mustU7(60), Velocity: mustU7(64)})
	assert.True(t, ok)
	assert.Equal(t, uint8(60), note.Value())
	assert.Equal(t, uint8(64), vel.Value())

	_, _, ok = IsNoteOnEffective(NoteOn{Note: mustU7(60), Velocity: mustU7(0)})
	assert.False(t, ok, "a zero-velocity NoteOn is not an effective note-on")

	_, _, ok = IsNoteOnEffective(NoteOff{Note: mustU7(60), Velocity: mustU7(64)})
	assert.False(t, ok)
}

func TestIsNoteOffEffective(t *testing.T) {
	note, vel, ok := IsNoteOffEffective(NoteOff{Note: mustU7(60), Velocity: mustU7(40)})
	assert.True(t, ok)
	assert.Equal(t, uint8(60), note.Value())
	assert.Equal(t, uint8(40), vel.Value())

	note2, _, ok := IsNoteOffEffective(NoteOn{Note: mustU7(61), Velocity: mustU7(0)})
	assert.True(t, ok, "a zero-velocity NoteOn is the implicit note-off convention")
	assert.Equal(t, uint8(61), note2.Value())

	_, _, ok = IsNoteOffEffective(NoteOn{Note: mustU7(61), Velocity: mustU7(1)})
	assert.False(t, ok)
}
