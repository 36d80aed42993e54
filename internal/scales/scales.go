// Package scales computes the note and chord tables the performance engine
// plays from. A Table maps 12 consecutive scale positions to concrete MIDI
// notes for the active mode, root and key, and is rebuilt whenever one of
// those changes.
package scales

import (
	"fmt"
	"strings"
)

// Mode identifies one of the built-in scale modes.
type Mode int

const (
	Major Mode = iota
	NaturalMinor
	HarmonicMinor
	MelodicMinor
	Lydian
	Mixolydian
	Dorian

	NumModes = 7
)

func (m Mode) String() string {
	names := [NumModes]string{
		"Major", "Natural Minor", "Harmonic Minor", "Melodic Minor",
		"Lydian", "Mixolydian", "Dorian",
	}
	if m < 0 || int(m) >= NumModes {
		return "?"
	}
	return names[m]
}

// ParseMode resolves a mode name like "major" or "dorian".
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "major", "ionian":
		return Major, nil
	case "minor", "natural-minor":
		return NaturalMinor, nil
	case "harmonic-minor", "harmonic":
		return HarmonicMinor, nil
	case "melodic-minor", "melodic":
		return MelodicMinor, nil
	case "lydian":
		return Lydian, nil
	case "mixolydian":
		return Mixolydian, nil
	case "dorian":
		return Dorian, nil
	}
	return Major, fmt.Errorf("unknown scale mode %q", name)
}

// intervals holds the semitone offsets of each mode within one octave.
var intervals = [NumModes][]int{
	{0, 2, 4, 5, 7, 9, 11}, // Major
	{0, 2, 3, 5, 7, 8, 10}, // Natural Minor
	{0, 2, 3, 5, 7, 8, 11}, // Harmonic Minor
	{0, 2, 3, 5, 7, 9, 11}, // Melodic Minor
	{0, 2, 4, 6, 7, 9, 11}, // Lydian
	{0, 2, 4, 5, 7, 9, 10}, // Mixolydian
	{0, 2, 3, 5, 7, 8, 10}, // Dorian
}

// TableSize is the number of scale positions the controller can address.
const TableSize = 12

// MaxChordNotes is the widest chord any profile produces.
const MaxChordNotes = 4

// NumChordProfiles is the number of chord voicing profiles.
const NumChordProfiles = 2

// chordDefs lists, per profile and scale degree (1-based), the chord member
// degrees relative to that degree. A zero entry terminates the chord early.
// Profile 1 revoices the second degree with its subtonic in the bass.
var chordDefs = [NumChordProfiles][TableSize][MaxChordNotes]int{
	{
		{1, 3, 5, 8}, {1, 3, 5, 8}, {1, 3, 5, 8}, {1, 3, 5, 8},
		{1, 3, 5, 8}, {1, 3, 5, 8}, {1, 3, 5, 8}, {1, 3, 5, 8},
		{1, 3, 5, 8}, {1, 3, 5, 8}, {1, 3, 5, 8}, {1, 3, 5, 8},
	},
	{
		{1, 3, 5, 8}, {-2, 1, 3, 5}, {1, 3, 5, 8}, {1, 3, 5, 8},
		{1, 3, 5, 8}, {1, 3, 5, 8}, {1, 3, 5, 8}, {1, 3, 5, 8},
		{1, 3, 5, 8}, {1, 3, 5, 8}, {1, 3, 5, 8}, {1, 3, 5, 8},
	},
}

// Table is the computed scale lookup shared with the engine.
type Table struct {
	Root int  // base MIDI note, scale position 0
	Key  int  // transposition in semitones
	Mode Mode

	notes [TableSize]int
}

// New returns a rebuilt table for the given root, key offset and mode.
func New(root, key int, mode Mode) *Table {
	t := &Table{Root: root, Key: key, Mode: mode}
	t.Rebuild()
	return t
}

func (m Mode) valid() bool { return m >= 0 && int(m) < NumModes }

// Rebuild recomputes the note table. Call after changing Root, Key or Mode.
func (t *Table) Rebuild() {
	if !t.Mode.valid() {
		t.Mode = Major
	}
	iv := intervals[t.Mode]
	n := len(iv)
	for i := 0; i < TableSize; i++ {
		octave := i / n
		degree := i % n
		t.notes[i] = t.Root + iv[degree] + octave*12 + t.Key
	}
}

// Note returns the MIDI note at the given scale position. Out-of-range
// positions clamp to the table edges; a bad index must never fault.
func (t *Table) Note(position int) int {
	if position < 0 {
		position = 0
	}
	if position >= TableSize {
		position = TableSize - 1
	}
	return t.notes[position]
}

// Chord returns up to MaxChordNotes MIDI notes for the 1-based scale degree
// under the given voicing profile. Negative chord-member degrees reach below
// the root and pull the octave down with them.
func (t *Table) Chord(degree, profile int) []int {
	if profile < 0 || profile >= NumChordProfiles {
		profile = 0
	}
	if degree < 1 {
		degree = 1
	}
	if degree > TableSize {
		degree = TableSize
	}

	mode := t.Mode
	if !mode.valid() {
		mode = Major
	}
	iv := intervals[mode]
	n := len(iv)
	def := chordDefs[profile][degree-1]

	notes := make([]int, 0, MaxChordNotes)
	for _, member := range def {
		if member == 0 {
			break
		}
		rel := (degree - 1) + (member - 1)
		octave := rel / n * 12
		idx := rel % n
		if idx < 0 {
			idx += n
			octave -= 12
		}
		notes = append(notes, t.Root+iv[idx]+octave+t.Key)
	}
	return notes
}
