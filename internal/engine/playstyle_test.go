package engine

import (
	"testing"
	"time"
)

func TestMonoPressAndRelease(t *testing.T) {
	e, m, _ := newTestEngine()
	now := time.Unix(0, 0)

	e.Poll(now, hold(BtnB))
	if len(m.events) != 1 || m.events[0] != "on 72" {
		t.Fatalf("press events = %v", m.events)
	}

	// Steady hold: no events at all.
	e.Poll(now, hold(BtnB))
	e.Poll(now, hold(BtnB))
	if len(m.events) != 1 {
		t.Fatalf("idle polls produced events: %v", m.events)
	}

	e.Poll(now, hold())
	if len(m.events) != 2 || m.events[1] != "off 72" {
		t.Fatalf("release events = %v", m.events)
	}
	if m.active != 0 {
		t.Fatal("note left sounding")
	}
}

func TestMonoFreshPressStealsAndReleaseRestores(t *testing.T) {
	e, m, _ := newTestEngine()
	now := time.Unix(0, 0)

	e.Poll(now, hold(BtnB))
	e.Poll(now, hold(BtnB, BtnA))
	// A stole the voice: B's note off, A's note on.
	want := []string{"on 72", "off 72", "on 76"}
	for i, ev := range want {
		if m.events[i] != ev {
			t.Fatalf("steal events = %v, want %v", m.events, want)
		}
	}

	// Releasing A hands the voice back to the still-held B.
	e.Poll(now, hold(BtnB))
	if m.events[len(m.events)-1] != "on 72" {
		t.Fatalf("restore events = %v", m.events)
	}
	if m.maxActive != 1 {
		t.Fatalf("mono overlapped: max active %d", m.maxActive)
	}
}

func TestMonoPitchBendRetriggers(t *testing.T) {
	e, m, _ := newTestEngine()
	now := time.Unix(0, 0)

	e.Poll(now, hold(BtnB))
	e.Poll(now, hold(BtnB, BtnR))
	want := []string{"on 72", "off 72", "on 84"}
	for i, ev := range want {
		if m.events[i] != ev {
			t.Fatalf("bend-up events = %v, want %v", m.events, want)
		}
	}

	// Adding L cancels the bend back to zero.
	e.Poll(now, hold(BtnB, BtnR, BtnL))
	if m.events[len(m.events)-1] != "on 72" {
		t.Fatalf("bend-cancel events = %v", m.events)
	}
	// Steady modifiers: no further retrigger.
	n := len(m.events)
	e.Poll(now, hold(BtnB, BtnR, BtnL))
	if len(m.events) != n {
		t.Fatalf("steady bend retriggered: %v", m.events)
	}
}

func TestMonoRiffOpenString(t *testing.T) {
	e, m, _ := newTestEngine()
	e.SetProfile(ProfileRiff)
	now := time.Unix(0, 0)

	// L alone is the open string in the riff profile.
	e.Poll(now, hold(BtnL))
	if len(m.events) != 1 || m.events[0] != "on 71" {
		t.Fatalf("open-string events = %v", m.events)
	}

	// R bends the open string an octave up.
	e.Poll(now, hold(BtnL, BtnR))
	if m.events[len(m.events)-1] != "on 83" {
		t.Fatalf("bent open-string events = %v", m.events)
	}

	e.Poll(now, hold())
	if m.active != 0 {
		t.Fatalf("open string left sounding: %v", m.events)
	}
}

func TestChordPressAndRelease(t *testing.T) {
	e, m, v := newTestEngine()
	e.SetStyle(StyleChord)
	now := time.Unix(0, 0)

	// Down is musical position 0: the tonic triad plus octave.
	e.Poll(now, hold(BtnDown))
	want := map[string]bool{"on 60": true, "on 64": true, "on 67": true, "on 72": true}
	ons := 0
	for _, ev := range m.events {
		if want[ev] {
			ons++
		}
	}
	if ons != 4 || m.active != 4 {
		t.Fatalf("chord events = %v", m.events)
	}
	if len(v.events) != 4 {
		t.Fatalf("voice events = %v", v.events)
	}

	e.Poll(now, hold())
	if m.active != 0 {
		t.Fatalf("chord left sounding: %v", m.events)
	}
	if m.events[len(m.events)-1] != "allOff" {
		t.Fatalf("chord stop did not flush: %v", m.events)
	}
}

func TestChordRetriggerReplacesAllVoices(t *testing.T) {
	e, m, _ := newTestEngine()
	e.SetStyle(StyleChord)
	now := time.Unix(0, 0)

	e.Poll(now, hold(BtnDown))
	m.events = nil
	e.Poll(now, hold(BtnDown, BtnLeft))

	// The first chord's four note-offs precede the new chord's note-ons.
	if len(m.events) != 8 {
		t.Fatalf("retrigger events = %v", m.events)
	}
	for i := 0; i < 4; i++ {
		if m.events[i][:3] != "off" {
			t.Fatalf("note-ons before note-offs: %v", m.events)
		}
	}
	if m.active != 4 {
		t.Fatalf("active after retrigger = %d", m.active)
	}
}

func TestChordPitchBend(t *testing.T) {
	e, m, _ := newTestEngine()
	e.SetStyle(StyleChord)
	now := time.Unix(0, 0)

	e.Poll(now, hold(BtnL))
	e.Poll(now, hold(BtnL, BtnDown))
	// Every chord note shifted an octave down.
	want := map[string]bool{"on 48": true, "on 52": true, "on 55": true, "on 60": true}
	for _, ev := range m.events {
		if !want[ev] {
			t.Fatalf("bent chord events = %v", m.events)
		}
	}
}

func TestStyleSwitchSilences(t *testing.T) {
	e, m, _ := newTestEngine()
	now := time.Unix(0, 0)

	e.Poll(now, hold(BtnB))
	e.SetStyle(StyleChord)
	if m.active != 0 {
		t.Fatalf("mono note survived style switch: %v", m.events)
	}
	if e.State().Sounding() {
		t.Fatal("state still sounding after switch")
	}
}
