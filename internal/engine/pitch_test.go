package engine

import "testing"

func TestResolvePitchScaleProfile(t *testing.T) {
	e, _, _ := newTestEngine()

	// Down sits at the bottom of the musical ordering: the scale root.
	if got := e.resolvePitch(BtnDown, 0); got != 60 {
		t.Fatalf("Down = %d, want 60", got)
	}
	// A sits at the top: position 9 in C major is E an octave up.
	if got := e.resolvePitch(BtnA, 0); got != 76 {
		t.Fatalf("A = %d, want 76", got)
	}
	if got := e.resolvePitch(BtnDown, -12); got != 48 {
		t.Fatalf("Down bent down = %d, want 48", got)
	}
}

func TestResolvePitchRiffProfile(t *testing.T) {
	e, _, _ := newTestEngine()
	e.st.Profile = ProfileRiff

	cases := []struct {
		button int
		want   int
	}{
		{BtnB, 79},
		{BtnY, 78},
		{BtnSelect, 75},
		{BtnStart, 76},
		{BtnUp, 71},
		{BtnA, 81},
		{BtnX, 80},
		{BtnL, 71},
	}
	for _, c := range cases {
		if got := e.resolvePitch(c.button, 0); got != c.want {
			t.Errorf("%s = %d, want %d", ButtonNames[c.button], got, c.want)
		}
	}
}

func TestResolvePitchClamps(t *testing.T) {
	e, _, _ := newTestEngine()
	if got := e.resolvePitch(BtnDown, -100); got != 0 {
		t.Fatalf("underflow clamp = %d, want 0", got)
	}
	if got := e.resolvePitch(BtnA, 100); got != 127 {
		t.Fatalf("overflow clamp = %d, want 127", got)
	}
}

func TestPitchBendOffset(t *testing.T) {
	cases := []struct {
		profile Profile
		l, r    bool
		want    int
	}{
		{ProfileScale, false, false, 0},
		{ProfileScale, true, false, -12},
		{ProfileScale, false, true, 12},
		{ProfileScale, true, true, 0},
		{ProfileRiff, true, false, 0},
		{ProfileRiff, false, true, 12},
		{ProfileRiff, true, true, 12},
	}
	for _, c := range cases {
		if got := pitchBendOffset(c.profile, c.l, c.r); got != c.want {
			t.Errorf("bend(%v, L=%v, R=%v) = %d, want %d", c.profile, c.l, c.r, got, c.want)
		}
	}
}
