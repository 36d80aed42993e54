package audio

import (
	"math"
	"testing"
)

func TestMidiNoteToFreq(t *testing.T) {
	cases := []struct {
		note uint8
		want float64
	}{
		{69, 440},
		{57, 220},
		{81, 880},
		{60, 261.626},
	}
	for _, c := range cases {
		got := midiNoteToFreq(c.note)
		if math.Abs(got-c.want) > 0.01 {
			t.Errorf("note %d = %fHz, want %f", c.note, got, c.want)
		}
	}
}

func TestGenerateWaveBounds(t *testing.T) {
	waves := []WaveType{WaveSine, WaveSquare, WaveSawtooth, WaveTriangle}
	for _, w := range waves {
		for phase := 0.0; phase < 1.0; phase += 0.01 {
			s := generateWave(w, phase)
			if s < -1.0 || s > 1.0 {
				t.Fatalf("wave %d at phase %f = %f", w, phase, s)
			}
		}
	}
}
