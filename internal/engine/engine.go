package engine

import (
	"log/slog"
	"time"

	"github.com/icco/padsynth/internal/scales"
)

// NoteSender delivers note events to the MIDI transport.
type NoteSender interface {
	NoteOn(note, velocity uint8)
	NoteOff(note uint8)
	AllNotesOff()
}

// VoiceBank is the audio-voice collaborator. The engine uses voice 0 for
// mono and rhythmic output and voices 0-3 for chords.
type VoiceBank interface {
	PlayNote(voice int, note uint8)
	StopNote(voice int)
	SetPortamento(on bool)
}

type nopSender struct{}

func (nopSender) NoteOn(note, velocity uint8) {}
func (nopSender) NoteOff(note uint8)          {}
func (nopSender) AllNotesOff()                {}

type nopVoices struct{}

func (nopVoices) PlayNote(voice int, note uint8) {}
func (nopVoices) StopNote(voice int)             {}
func (nopVoices) SetPortamento(on bool)          {}

const defaultVelocity = 100

// Config wires the engine to its collaborators. Nil sinks become no-ops so
// the engine can run headless (and in tests) without stubbing.
type Config struct {
	Midi     NoteSender
	Voices   VoiceBank
	Scale    *scales.Table
	Logger   *slog.Logger
	Velocity uint8
}

// Engine composes the performance core. One Poll call advances everything a
// single cycle; clock events may arrive concurrently via the On* hooks.
type Engine struct {
	st      *State
	tracker *Tracker
	clock   *Clock
	scale   *scales.Table
	midi    NoteSender
	voices  VoiceBank
	log     *slog.Logger
	vel     uint8
	b       boogie

	wasLocked bool
}

// New builds an engine from cfg.
func New(cfg Config) *Engine {
	e := &Engine{
		st:      NewState(),
		tracker: NewTracker(),
		clock:   NewClock(),
		scale:   cfg.Scale,
		midi:    cfg.Midi,
		voices:  cfg.Voices,
		log:     cfg.Logger,
		vel:     cfg.Velocity,
		b:       newBoogie(),
	}
	if e.scale == nil {
		e.scale = scales.New(60, 0, scales.Major)
	}
	if e.midi == nil {
		e.midi = nopSender{}
	}
	if e.voices == nil {
		e.voices = nopVoices{}
	}
	if e.log == nil {
		e.log = slog.Default()
	}
	if e.vel == 0 {
		e.vel = defaultVelocity
	}
	return e
}

// OnClockPulse, OnStart and OnStop are the MIDI-transport hooks. They are
// safe to call from the listener goroutine.
func (e *Engine) OnClockPulse() { e.clock.OnPulse(time.Now()) }
func (e *Engine) OnStart()      { e.clock.OnStart(time.Now()) }
func (e *Engine) OnStop()       { e.clock.OnStop(time.Now()) }

// Poll advances the engine one cycle against the given button snapshot.
func (e *Engine) Poll(now time.Time, held [NumButtons]bool) {
	e.tracker.Update(held)
	e.clock.Tick(now)

	// Commands only eat the matched press edge; the playstyle or scheduler
	// still runs below so releases and past-due note-offs land on time.
	e.checkCommands()

	snap := e.clock.Snapshot()
	if snap.Established && !e.wasLocked {
		e.log.Debug("tempo locked", "interval", snap.Interval, "bpm", snap.BPM())
	}
	e.wasLocked = snap.Established

	if e.st.Rhythmic {
		if snap.Established {
			// A note left over from the mono fallback must not ring into
			// the scheduled sequence.
			if e.st.Sounding() && !e.b.sounding {
				e.midi.NoteOff(uint8(e.st.CurrentNote))
				e.voices.StopNote(0)
				e.st.CurrentNote = noNote
				e.st.CurrentButton = noButton
			}
			e.b.poll(now, e, snap)
			return
		}
		// No usable tempo (never locked, or a fresh Start is resampling):
		// stay playable as plain mono.
		if e.b.sounding || e.b.trigger != noButton {
			e.b.reset(e)
		}
		e.pollMono()
		return
	}

	if e.st.Style == StyleChord {
		e.pollChord()
		return
	}
	e.pollMono()
}

// rhythmicOn sounds the rhythmic voice and records it in the shared state.
func (e *Engine) rhythmicOn(button, note int) {
	e.midi.NoteOn(uint8(note), e.vel)
	e.voices.PlayNote(0, uint8(note))
	e.st.CurrentNote = note
	e.st.CurrentButton = button
}

func (e *Engine) rhythmicOff(note int) {
	if note == noNote {
		return
	}
	e.midi.NoteOff(uint8(note))
	e.voices.StopNote(0)
	e.st.CurrentNote = noNote
	e.st.CurrentButton = noButton
}

// Silence stops every voice and clears the sounding state. Used on mode and
// style switches so no note straddles two timing models.
func (e *Engine) Silence() {
	stopped := false
	if e.st.Sounding() {
		e.midi.NoteOff(uint8(e.st.CurrentNote))
		e.voices.StopNote(0)
		stopped = true
	}
	for i := 0; i < ChordVoices; i++ {
		if e.st.ChordNotes[i] != noNote {
			e.midi.NoteOff(uint8(e.st.ChordNotes[i]))
			e.voices.StopNote(i)
			e.st.ChordNotes[i] = noNote
			stopped = true
		}
	}
	if stopped {
		e.midi.AllNotesOff()
	}
	e.st.CurrentNote = noNote
	e.st.CurrentButton = noButton
	e.b.sounding = false
	e.b.note = noNote
	e.b.trigger = noButton
	e.b.internalRef = time.Time{}
}

// State exposes the shared performance record for display.
func (e *Engine) State() *State { return e.st }

// Clock returns the committed clock snapshot.
func (e *Engine) Clock() ClockSnapshot { return e.clock.Snapshot() }

// Scale returns the active scale table.
func (e *Engine) Scale() *scales.Table { return e.scale }

// Held reports whether a button is currently held, for display.
func (e *Engine) Held(button int) bool {
	if button < 0 || button >= NumButtons {
		return false
	}
	return e.tracker.Held[button]
}

// SetSwing clamps and applies the swing amount.
func (e *Engine) SetSwing(s float64) {
	if s < 0 {
		s = 0
	}
	if s > 1 {
		s = 1
	}
	e.st.Swing = s
}

// SetRhythmic selects between standard and rhythmic (boogie) mode.
func (e *Engine) SetRhythmic(on bool) {
	if e.st.Rhythmic == on {
		return
	}
	e.Silence()
	e.st.Rhythmic = on
}

// SetStyle selects the non-rhythmic playstyle.
func (e *Engine) SetStyle(s PlayStyle) {
	if e.st.Style == s {
		return
	}
	e.Silence()
	e.st.Style = s
}

// SetProfile selects the note-mapping profile.
func (e *Engine) SetProfile(p Profile) {
	if e.st.Profile == p {
		return
	}
	e.Silence()
	e.st.Profile = p
}

// SetPortamento flips the glide flag here and in the audio collaborator.
func (e *Engine) SetPortamento(on bool) {
	e.st.Portamento = on
	e.voices.SetPortamento(on)
}
