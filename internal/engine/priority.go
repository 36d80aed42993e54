package engine

// selection is the outcome of one priority pass: either a button to sound,
// an order to stop the current note, or no change.
type selection struct {
	button int
	stop   bool
}

// selectButton decides which note button should be sounding this poll.
// Precedence, evaluated once per poll:
//
//  1. A fresh note-button press wins over everything, including a note that
//     is already sounding on a different button.
//  2. If the sounding button was released, fall back through the press
//     history newest-first, then to the lowest-index held button, then (riff
//     profile only) to a still-held L. If nothing is held, stop.
//  3. A pressed L by itself is a note trigger in the riff profile.
//  4. A pitch-bend change while a note sounds reselects the same button so
//     its pitch is re-evaluated.
//
// The two-tier release fallback (recency buffer, then lowest index) is kept
// exactly as the hardware behaves; the lowest-index tier makes the result
// predictable when every buffered press has gone stale.
func selectButton(t *Tracker, current int, bendChanged bool, riff bool) selection {
	if b := t.NewestPressed(); b != noButton {
		return selection{button: b}
	}

	released := current != noButton && t.Released[current]
	if released {
		if current != BtnL {
			if b := t.lastHeldInHistory(current); b != noButton {
				return selection{button: b}
			}
		}
		if b := t.lowestHeld(current); b != noButton {
			return selection{button: b}
		}
		if riff && t.Held[BtnL] {
			return selection{button: BtnL}
		}
		return selection{button: noButton, stop: true}
	}

	if riff && t.Pressed[BtnL] {
		return selection{button: BtnL}
	}

	if bendChanged && current != noButton {
		return selection{button: current}
	}

	return selection{button: noButton}
}
