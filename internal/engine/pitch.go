package engine

// musicalPosition permutes the pad's physical button order into a musically
// ascending run: Down, Left, Up, Right, Select, Start, Y, B, X, A. Walking
// the pad in that order walks the scale table bottom to top.
var musicalPosition = [NumNoteButtons]int{
	7, // B
	6, // Y
	4, // Select
	5, // Start
	2, // Up
	0, // Down
	1, // Left
	3, // Right
	9, // A
	8, // X
}

// riffNotes is the fixed per-button table for the riff profile.
var riffNotes = [NumNoteButtons]int{
	79, // B  -> G5
	78, // Y  -> F#5
	75, // Sel -> D#5
	76, // St -> E5
	71, // Up -> B4 (open string)
	71, // Down
	71, // Left
	71, // Right
	81, // A  -> A5
	80, // X  -> G#5
}

// riffOpenNote is what L itself plays in the riff profile.
const riffOpenNote = 71

// clampNote confines a computed note to the MIDI range. Out-of-range values
// are clamped, never rejected.
func clampNote(n int) int {
	if n < 0 {
		return 0
	}
	if n > 127 {
		return 127
	}
	return n
}

// resolvePitch maps a button to a concrete MIDI note under the active
// profile, applying the given pitch-bend offset. An invalid button index
// resolves to the clamped bend alone rather than faulting.
func (e *Engine) resolvePitch(button, bend int) int {
	base := 0
	switch {
	case e.st.Profile == ProfileRiff && button == BtnL:
		base = riffOpenNote
	case button >= 0 && button < NumNoteButtons:
		if e.st.Profile == ProfileRiff {
			base = riffNotes[button]
		} else {
			base = e.scale.Note(musicalPosition[button])
		}
	}
	return clampNote(base + bend)
}

// pitchBendOffset computes the modifier-driven bend for the current poll.
// The riff profile reserves L as a note trigger, so only R bends there.
func pitchBendOffset(p Profile, lHeld, rHeld bool) int {
	if p == ProfileRiff {
		if rHeld {
			return 12
		}
		return 0
	}
	switch {
	case lHeld && rHeld:
		return 0
	case lHeld:
		return -12
	case rHeld:
		return 12
	}
	return 0
}
