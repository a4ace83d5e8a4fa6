package midi

// IsNoteOnEffective reports whether body is a NoteOn with a nonzero
// velocity — the only case a receiver should treat as actually sounding a
// note. It returns the note and velocity plus ok=true in that case.
func IsNoteOnEffective(body ChannelBody) (note, velocity U7, ok bool) {
	on, isNoteOn := body.(NoteOn)
	if !isNoteOn || on.Velocity.Value() == 0 {
		return U7{}, U7{}, false
	}
	return on.Note, on.Velocity, true
}

// IsNoteOffEffective reports whether body should be treated as a note
// release: an explicit NoteOff, or the standard "implicit note-off"
// convention of a NoteOn with velocity 0. It returns the note and the
// release velocity (0 for the implicit form, since NoteOff carries its own
// release velocity on the wire).
func IsNoteOffEffective(body ChannelBody) (note, velocity U7, ok bool) {
	switch m := body.(type) {
	case NoteOff:
		return m.Note, m.Velocity, true
	case NoteOn:
		if m.Velocity.Value() == 0 {
			return m.Note, m.Velocity, true
		}
	}
	return U7{}, U7{}, false
}
