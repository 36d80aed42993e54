// Package engine implements the rhythmic performance core for a game-pad
// style controller: input edge tracking, note-button priority resolution,
// MIDI clock tempo lock, the beat-synchronized "boogie" scheduler, and the
// plain monophonic and chord playstyles.
//
// The engine is driven by a single-threaded poll loop. MIDI clock events
// arrive asynchronously and are absorbed by Clock; everything else runs in
// Poll, once per iteration, with no blocking.
package engine

// Button indices. The first ten are note buttons, L and R are modifiers.
const (
	BtnB = iota
	BtnY
	BtnSelect
	BtnStart
	BtnUp
	BtnDown
	BtnLeft
	BtnRight
	BtnA
	BtnX
	BtnL
	BtnR

	NumButtons     = 12
	NumNoteButtons = 10
)

// ButtonNames maps button indices to short display names.
var ButtonNames = [NumButtons]string{
	"B", "Y", "Sel", "St", "Up", "Down", "Left", "Right", "A", "X", "L", "R",
}

// Profile selects how button indices resolve to notes.
type Profile int

const (
	// ProfileScale maps buttons through the musical-position permutation
	// into the active scale table.
	ProfileScale Profile = iota
	// ProfileRiff maps buttons through a fixed note table (a canned riff)
	// and turns L into an extra note trigger.
	ProfileRiff
)

func (p Profile) String() string {
	if p == ProfileRiff {
		return "Riff"
	}
	return "Scale"
}

// PlayStyle selects the non-rhythmic note state machine.
type PlayStyle int

const (
	StyleMono PlayStyle = iota
	StyleChord
)

func (s PlayStyle) String() string {
	if s == StyleChord {
		return "Chord"
	}
	return "Mono"
}

// ChordVoices is the number of simultaneous audio voices chord mode uses.
const ChordVoices = 4

const noNote = -1
const noButton = -1

// State is the shared performance record. It is owned by the active
// playstyle or scheduler and mutated at most once per poll.
type State struct {
	// CurrentButton and CurrentNote track the sounding mono/rhythmic note;
	// both are -1 exactly when nothing sounds.
	CurrentButton int
	CurrentNote   int

	// ChordNotes holds the sounding chord, -1 per silent voice.
	ChordNotes [ChordVoices]int

	PitchBend     int
	PrevPitchBend int

	Style      PlayStyle
	Profile    Profile
	Rhythmic   bool
	Swing      float64
	Portamento bool

	ChordProfile int
}

// NewState returns a silent state with defaults matching power-on.
func NewState() *State {
	s := &State{
		CurrentButton: noButton,
		CurrentNote:   noNote,
	}
	for i := range s.ChordNotes {
		s.ChordNotes[i] = noNote
	}
	return s
}

// Sounding reports whether the mono/rhythmic voice has a note playing.
func (s *State) Sounding() bool { return s.CurrentNote != noNote }
