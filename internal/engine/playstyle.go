package engine

// pollMono runs the monophonic playstyle: at most one sounding note, driven
// directly by the priority resolver with no beat quantization.
func (e *Engine) pollMono() {
	t := e.tracker
	st := e.st

	bend := pitchBendOffset(st.Profile, t.Held[BtnL], t.Held[BtnR])
	bendChanged := st.CurrentButton != noButton && bend != st.PrevPitchBend

	sel := selectButton(t, st.CurrentButton, bendChanged, st.Profile == ProfileRiff)

	switch {
	case sel.stop:
		if st.Sounding() {
			e.midi.NoteOff(uint8(st.CurrentNote))
			e.voices.StopNote(0)
			st.CurrentNote = noNote
		}
		st.CurrentButton = noButton

	case sel.button != noButton:
		note := e.resolvePitch(sel.button, bend)
		// A same-pitch reselect (e.g. pitch bend landing on the same
		// effective note) must not produce an off/on pair.
		retrigger := st.CurrentNote != note || st.CurrentButton != sel.button
		if retrigger {
			if st.Sounding() {
				e.midi.NoteOff(uint8(st.CurrentNote))
			}
			e.midi.NoteOn(uint8(note), e.vel)
			e.voices.PlayNote(0, uint8(note))
			st.CurrentNote = note
			e.log.Debug("mono note", "button", ButtonNames[sel.button], "note", note)
		}
		st.CurrentButton = sel.button
	}

	st.PitchBend = bend
	st.PrevPitchBend = bend
}

// pollChord runs the chord playstyle: the selected button's musical position
// becomes a scale degree, looked up as up to four simultaneous notes.
func (e *Engine) pollChord() {
	t := e.tracker
	st := e.st

	// Chord mode always bends the standard way; the riff profile's special
	// L handling only applies to mono.
	bend := pitchBendOffset(ProfileScale, t.Held[BtnL], t.Held[BtnR])
	bendChanged := st.CurrentButton != noButton && bend != st.PrevPitchBend

	sel := selectButton(t, st.CurrentButton, bendChanged, false)

	// Safety net: everything released without a release edge reaching the
	// selector still stops the chord.
	if sel.button == noButton && !sel.stop &&
		st.CurrentButton != noButton && !t.AnyNoteHeld() {
		sel.stop = true
	}

	switch {
	case sel.stop:
		e.stopChord()

	case sel.button != noButton && sel.button < NumNoteButtons:
		// Retrigger: previous voices get their note-offs first. With
		// portamento on, the audio voices stay alive and glide.
		if st.CurrentButton != noButton {
			for i := 0; i < ChordVoices; i++ {
				if st.ChordNotes[i] == noNote {
					continue
				}
				e.midi.NoteOff(uint8(st.ChordNotes[i]))
				if !st.Portamento {
					e.voices.StopNote(i)
					st.ChordNotes[i] = noNote
				}
			}
		}

		st.CurrentButton = sel.button
		degree := musicalPosition[sel.button] + 1
		notes := e.scale.Chord(degree, st.ChordProfile)

		for i, n := range notes {
			if i >= ChordVoices {
				break
			}
			final := clampNote(n + bend)
			e.voices.PlayNote(i, uint8(final))
			e.midi.NoteOn(uint8(final), e.vel)
			st.ChordNotes[i] = final
		}
		// Any voice beyond this chord's width falls silent.
		for i := len(notes); i < ChordVoices; i++ {
			if st.ChordNotes[i] != noNote {
				e.voices.StopNote(i)
				e.midi.NoteOff(uint8(st.ChordNotes[i]))
				st.ChordNotes[i] = noNote
			}
		}
		e.log.Debug("chord", "button", ButtonNames[sel.button], "degree", degree, "notes", len(notes))
	}

	st.PitchBend = bend
	st.PrevPitchBend = bend
}

func (e *Engine) stopChord() {
	st := e.st
	if st.CurrentButton == noButton {
		return
	}
	stopped := false
	for i := 0; i < ChordVoices; i++ {
		if st.ChordNotes[i] != noNote {
			stopped = true
			e.voices.StopNote(i)
			e.midi.NoteOff(uint8(st.ChordNotes[i]))
			st.ChordNotes[i] = noNote
		}
	}
	if stopped {
		e.midi.AllNotesOff()
	}
	st.CurrentButton = noButton
}
