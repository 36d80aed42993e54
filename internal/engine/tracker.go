package engine

// historySize is how many distinct presses the recency buffer remembers.
const historySize = 8

// Tracker derives per-poll edge events from raw held snapshots and keeps a
// ring buffer of the most recent presses. For every press exactly one poll
// reports Pressed, and a button is never both pressed and released in the
// same poll.
type Tracker struct {
	Held     [NumButtons]bool
	Pressed  [NumButtons]bool
	Released [NumButtons]bool

	history    [historySize]int
	historyPos int
}

// NewTracker returns a tracker with an empty press history.
func NewTracker() *Tracker {
	t := &Tracker{}
	for i := range t.history {
		t.history[i] = noButton
	}
	return t
}

// Update ingests one hardware snapshot, refreshing held/pressed/released and
// appending fresh presses to the history in chronological order.
func (t *Tracker) Update(held [NumButtons]bool) {
	for i := 0; i < NumButtons; i++ {
		was := t.Held[i]
		t.Held[i] = held[i]
		t.Pressed[i] = held[i] && !was
		t.Released[i] = !held[i] && was

		if t.Pressed[i] {
			t.history[t.historyPos] = i
			t.historyPos = (t.historyPos + 1) % historySize
		}
	}
}

// NewestPressed returns the note button freshly pressed this poll, scanning
// in ascending index order, or -1.
func (t *Tracker) NewestPressed() int {
	for i := 0; i < NumNoteButtons; i++ {
		if t.Pressed[i] {
			return i
		}
	}
	return noButton
}

// lastHeldInHistory walks the press history newest-first and returns the
// first note button that is still held, skipping skip. Stale entries (for
// released buttons) are passed over, not removed.
func (t *Tracker) lastHeldInHistory(skip int) int {
	idx := t.historyPos
	for i := 0; i < historySize; i++ {
		idx = (idx + historySize - 1) % historySize
		b := t.history[idx]
		if b >= 0 && b < NumNoteButtons && t.Held[b] && b != skip {
			return b
		}
	}
	return noButton
}

// lowestHeld returns the lowest-index held note button other than skip, or -1.
func (t *Tracker) lowestHeld(skip int) int {
	for i := 0; i < NumNoteButtons; i++ {
		if t.Held[i] && i != skip {
			return i
		}
	}
	return noButton
}

// AnyNoteHeld reports whether any note button is currently held.
func (t *Tracker) AnyNoteHeld() bool {
	for i := 0; i < NumNoteButtons; i++ {
		if t.Held[i] {
			return true
		}
	}
	return false
}
