package engine

import (
	"sync"
	"time"
)

const (
	// pulsesPerBeat is the MIDI convention: 24 clock pulses per quarter note.
	pulsesPerBeat = 24
	// lockSamples is how many valid pulse intervals the estimator averages
	// before freezing the tempo.
	lockSamples = 24
	// maxPulseGap rejects spurious pulses: an interval this long is not a
	// tempo sample.
	maxPulseGap = 2 * time.Second
	// presenceTimeout is how long the clock may go silent before it is
	// considered absent.
	presenceTimeout = 500 * time.Millisecond
)

type clockPhase int

const (
	clockWaiting clockPhase = iota
	clockSampling
	clockLocked
)

// Clock estimates the external MIDI clock's pulse interval and holds it.
//
// The lock is sample-and-hold: after lockSamples valid intervals the average
// is frozen and later jitter is ignored. Clock presence is tracked
// separately, so a Stop or a timeout mutes the clock without discarding the
// tempo. That is what lets the engine fall back to an internal trigger at
// the last known tempo.
//
// OnPulse/OnStart/OnStop run on the MIDI listener goroutine; the poll loop
// reads a single committed snapshot, so it can never observe a half-built
// average.
type Clock struct {
	mu sync.Mutex

	phase       clockPhase
	lastPulse   time.Time
	beatStart   time.Time
	pulseCount  int
	sampleSum   time.Duration
	sampleCount int

	interval    time.Duration
	established bool
	present     bool

	// transport increments on every Start and Stop so the scheduler can
	// detect a discontinuous beat reference and reset its sequence.
	transport uint64
}

// ClockSnapshot is the poll loop's read-only view of the clock.
type ClockSnapshot struct {
	Interval    time.Duration
	Established bool
	Present     bool
	BeatStart   time.Time
	Transport   uint64
}

// BeatDuration is the length of one quarter note at the locked tempo.
func (s ClockSnapshot) BeatDuration() time.Duration {
	return s.Interval * pulsesPerBeat
}

// BPM reports the locked tempo in beats per minute, 0 when not established.
func (s ClockSnapshot) BPM() float64 {
	if !s.Established || s.Interval <= 0 {
		return 0
	}
	return float64(time.Minute) / float64(s.BeatDuration())
}

// NewClock returns a clock that has never heard a pulse.
func NewClock() *Clock { return &Clock{} }

// OnStart begins a fresh sampling window. A Start implies a new, possibly
// different tempo, so any previous lock is discarded.
func (c *Clock) OnStart(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.phase = clockSampling
	c.sampleSum = 0
	c.sampleCount = 0
	c.pulseCount = 0
	c.lastPulse = now
	c.beatStart = now
	c.established = false
	c.interval = 0
	c.present = true
	c.transport++
}

// OnStop marks the clock absent. The locked interval survives.
func (c *Clock) OnStop(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.present = false
	c.transport++
}

// OnPulse ingests one timing-clock pulse. While sampling it accumulates
// intervals; once locked it only refreshes presence and the beat reference.
func (c *Clock) OnPulse(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == clockWaiting {
		// Pulses before any Start only prove the clock is alive.
		c.lastPulse = now
		c.present = true
		return
	}

	delta := now.Sub(c.lastPulse)
	c.lastPulse = now
	c.present = true

	if c.pulseCount%pulsesPerBeat == 0 {
		c.beatStart = now
	}
	c.pulseCount++

	if c.phase != clockSampling {
		return
	}
	if delta <= 0 || delta > maxPulseGap {
		return
	}
	c.sampleSum += delta
	c.sampleCount++
	if c.sampleCount >= lockSamples {
		// Commit the lock in one write; the average is never visible
		// in a partial state.
		c.interval = c.sampleSum / time.Duration(c.sampleCount)
		c.established = true
		c.phase = clockLocked
	}
}

// Tick performs timeout detection. Called from the poll loop every cycle; it
// never blocks beyond the snapshot lock.
func (c *Clock) Tick(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.present && now.Sub(c.lastPulse) > presenceTimeout {
		c.present = false
	}
}

// Snapshot returns the committed clock state for this poll.
func (c *Clock) Snapshot() ClockSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return ClockSnapshot{
		Interval:    c.interval,
		Established: c.established,
		Present:     c.present,
		BeatStart:   c.beatStart,
		Transport:   c.transport,
	}
}
