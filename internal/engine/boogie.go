package engine

import "time"

// rhythmicTranspose drops the rhythmic voice two octaves below the resolved
// button pitch.
const rhythmicTranspose = -24

// slotWindow is one sub-beat time window, offsets relative to beat start.
type slotWindow struct {
	index       int
	start, stop time.Duration
	muted       bool
}

// slotWindows derives the per-beat slots for the current poll.
//
// Swing mode splits the beat into two 8th-note slots; the second is delayed
// by swing × beat/6, so full swing lands it a triplet's worth late. Each
// note runs for half the nominal (unswung) half beat, truncated at the next
// slot so notes never overlap. Triplet mode is three even slots at 50% duty,
// no swing, no muting.
func slotWindows(beat time.Duration, swing float64, triplet, muteFirst, muteSecond bool) [3]slotWindow {
	if triplet {
		third := beat / 3
		dur := third / 2
		return [3]slotWindow{
			{index: 0, start: 0, stop: dur},
			{index: 1, start: third, stop: third + dur},
			{index: 2, start: 2 * third, stop: 2*third + dur},
		}
	}

	half := beat / 2
	dur := half / 2
	second := half + time.Duration(swing*float64(beat)/6)

	w := [3]slotWindow{
		{index: 0, start: 0, stop: dur, muted: muteFirst},
		{index: 1, start: second, stop: second + dur, muted: muteSecond},
		{index: 2, muted: true},
	}
	if w[0].stop > second {
		w[0].stop = second
	}
	if w[1].stop > beat {
		w[1].stop = beat
	}
	return w
}

// boogie is the beat-synchronized slot scheduler: a single-voice rhythmic
// generator that starts and stops notes against absolute time windows
// computed from the locked tempo.
type boogie struct {
	trigger  int // note button anchoring the sequence, -1 when idle
	sounding bool
	note     int
	slot     int
	triplet  bool // timing model the sounding note started under
	stopAt   time.Time

	internalRef   time.Time // beat 1 when playing without a live clock
	lastTransport uint64
	lastPresent   bool
}

func newBoogie() boogie {
	return boogie{trigger: noButton, note: noNote}
}

// reset ends the sequence: immediate note-off regardless of slot timing,
// trigger and internal beat reference cleared.
func (b *boogie) reset(e *Engine) {
	if b.sounding {
		b.stopNote(e)
	}
	b.trigger = noButton
	b.internalRef = time.Time{}
}

func (b *boogie) stopNote(e *Engine) {
	e.rhythmicOff(b.note)
	b.sounding = false
	b.note = noNote
}

// poll advances the scheduler one cycle. All decisions are non-blocking
// comparisons against now.
func (b *boogie) poll(now time.Time, e *Engine, snap ClockSnapshot) {
	t := e.tracker

	// A Start or Stop moves the beat reference discontinuously; loss of
	// clock presence switches to the internal trigger. Both force a
	// sequence reset so no note is left straddling the discontinuity.
	if snap.Transport != b.lastTransport {
		b.lastTransport = snap.Transport
		b.reset(e)
	}
	if b.lastPresent && !snap.Present {
		b.reset(e)
	}
	b.lastPresent = snap.Present

	sel := selectButton(t, b.trigger, false, e.st.Profile == ProfileRiff)
	switch {
	case sel.stop:
		b.reset(e)
	case sel.button != noButton:
		if b.trigger == noButton && !snap.Present {
			// First press with no live clock: this press is beat 1.
			b.internalRef = now
		}
		b.trigger = sel.button
	}

	tripletNow := t.Held[BtnL] && t.Held[BtnR]

	if b.sounding {
		stop := !now.Before(b.stopAt)
		if tripletNow != b.triplet {
			// A note started under the other mode's slot indexing must
			// not keep ringing under this one's timing.
			stop = true
		}
		if !b.triplet {
			if b.slot == 0 && t.Held[BtnL] && !t.Held[BtnR] {
				stop = true
			}
			if b.slot == 1 && t.Held[BtnR] && !t.Held[BtnL] {
				stop = true
			}
		}
		if stop {
			b.stopNote(e)
		}
	}

	if b.sounding || b.trigger == noButton {
		return
	}

	ref := snap.BeatStart
	if !snap.Present {
		ref = b.internalRef
	}
	beat := snap.BeatDuration()
	if ref.IsZero() || beat <= 0 || now.Before(ref) {
		return
	}

	pos := now.Sub(ref) % beat
	beatStart := now.Add(-pos)

	windows := slotWindows(beat, e.st.Swing, tripletNow,
		t.Held[BtnL] && !t.Held[BtnR], t.Held[BtnR] && !t.Held[BtnL])
	for _, w := range windows {
		if w.muted || pos < w.start || pos >= w.stop {
			continue
		}
		note := clampNote(e.resolvePitch(b.trigger, 0) + rhythmicTranspose)
		e.rhythmicOn(b.trigger, note)
		b.sounding = true
		b.note = note
		b.slot = w.index
		b.triplet = tripletNow
		b.stopAt = beatStart.Add(w.stop)
		break
	}
}
