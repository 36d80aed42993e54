package engine

import (
	"testing"
	"time"
)

// 120 BPM: a quarter note is 500ms, so one clock pulse every 500ms/24.
const pulse120 = 500 * time.Millisecond / 24

// pulseN feeds n evenly spaced pulses starting one interval after from,
// returning the time of the last pulse.
func pulseN(c *Clock, from time.Time, interval time.Duration, n int) time.Time {
	t := from
	for i := 0; i < n; i++ {
		t = t.Add(interval)
		c.OnPulse(t)
	}
	return t
}

func TestClockLocksAfterExactSampleCount(t *testing.T) {
	c := NewClock()
	base := time.Unix(0, 0)
	c.OnStart(base)

	last := pulseN(c, base, pulse120, lockSamples-1)
	if snap := c.Snapshot(); snap.Established {
		t.Fatal("established before enough samples")
	}

	pulseN(c, last, pulse120, 1)
	snap := c.Snapshot()
	if !snap.Established {
		t.Fatal("not established after full sample window")
	}
	if snap.Interval != pulse120 {
		t.Fatalf("interval = %v, want %v", snap.Interval, pulse120)
	}
}

func TestClockHoldsTempoOnceLocked(t *testing.T) {
	c := NewClock()
	base := time.Unix(0, 0)
	c.OnStart(base)
	last := pulseN(c, base, pulse120, lockSamples)

	// Jittered pulses after the lock must not move the interval.
	pulseN(c, last, pulse120*2, 10)
	if snap := c.Snapshot(); snap.Interval != pulse120 {
		t.Fatalf("interval drifted to %v after lock", snap.Interval)
	}
}

func TestClockRejectsSpuriousGap(t *testing.T) {
	c := NewClock()
	base := time.Unix(0, 0)
	c.OnStart(base)

	last := pulseN(c, base, pulse120, 10)
	// A pulse after a long silence is not a tempo sample.
	last = last.Add(3 * time.Second)
	c.OnPulse(last)

	last = pulseN(c, last, pulse120, lockSamples-10-1)
	if snap := c.Snapshot(); snap.Established {
		t.Fatal("spurious gap was counted as a sample")
	}

	pulseN(c, last, pulse120, 1)
	snap := c.Snapshot()
	if !snap.Established || snap.Interval != pulse120 {
		t.Fatalf("got interval %v established=%v, want clean lock at %v",
			snap.Interval, snap.Established, pulse120)
	}
}

func TestClockLockSurvivesStopAndTimeout(t *testing.T) {
	c := NewClock()
	base := time.Unix(0, 0)
	c.OnStart(base)
	last := pulseN(c, base, pulse120, lockSamples)

	c.OnStop(last)
	snap := c.Snapshot()
	if snap.Present {
		t.Fatal("present after Stop")
	}
	if !snap.Established || snap.Interval != pulse120 {
		t.Fatal("Stop discarded the locked tempo")
	}

	// Silence past the presence window: still locked, just absent.
	c.Tick(last.Add(time.Second))
	snap = c.Snapshot()
	if snap.Present || !snap.Established {
		t.Fatalf("after timeout: present=%v established=%v", snap.Present, snap.Established)
	}
}

func TestClockStartDiscardsLockAndResamples(t *testing.T) {
	c := NewClock()
	base := time.Unix(0, 0)
	c.OnStart(base)
	last := pulseN(c, base, pulse120, lockSamples)

	firstTransport := c.Snapshot().Transport

	// New song at a new tempo.
	c.OnStart(last)
	snap := c.Snapshot()
	if snap.Established {
		t.Fatal("lock survived a fresh Start")
	}
	if snap.Transport == firstTransport {
		t.Fatal("Start did not advance the transport counter")
	}

	slow := pulse120 * 2
	pulseN(c, last, slow, lockSamples)
	snap = c.Snapshot()
	if !snap.Established || snap.Interval != slow {
		t.Fatalf("resample got %v, want %v", snap.Interval, slow)
	}
}

func TestClockPresenceTimeout(t *testing.T) {
	c := NewClock()
	base := time.Unix(0, 0)
	c.OnStart(base)
	last := pulseN(c, base, pulse120, 4)

	c.Tick(last.Add(100 * time.Millisecond))
	if !c.Snapshot().Present {
		t.Fatal("present dropped inside the timeout window")
	}
	c.Tick(last.Add(600 * time.Millisecond))
	if c.Snapshot().Present {
		t.Fatal("present held past the timeout window")
	}
}

func TestClockBPM(t *testing.T) {
	c := NewClock()
	base := time.Unix(0, 0)
	c.OnStart(base)
	pulseN(c, base, pulse120, lockSamples)

	bpm := c.Snapshot().BPM()
	if bpm < 119.9 || bpm > 120.1 {
		t.Fatalf("BPM = %v, want ~120", bpm)
	}
	if (ClockSnapshot{}).BPM() != 0 {
		t.Fatal("unestablished snapshot must report 0 BPM")
	}
}
