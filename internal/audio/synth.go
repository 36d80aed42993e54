// Package audio renders the engine's voices through a small software synth.
package audio

import (
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
)

const (
	sampleRate   = 44100
	channelCount = 2 // stereo
	bitDepth     = 2 // 16-bit

	// NumVoices matches the widest chord the engine plays; mono and
	// rhythmic playback use voice 0 only.
	NumVoices = 4

	// portamentoCoef is the per-sample glide factor. At 44.1kHz this slews
	// a retriggered voice to its new pitch in roughly a tenth of a second.
	portamentoCoef = 0.0005
)

// WaveType represents different oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSawtooth
	WaveTriangle
)

// voice is one oscillator slot. frequency is the target pitch; current
// glides toward it when portamento is on and snaps to it otherwise.
type voice struct {
	frequency float64
	current   float64
	phase     float64
	envelope  float64 // 0-1 for attack/release
	releasing bool
	active    bool
}

// Synth is the fixed-voice synthesizer behind the engine's VoiceBank.
type Synth struct {
	mu           sync.Mutex
	otoCtx       *oto.Context
	player       *oto.Player
	voices       [NumVoices]voice
	wave         WaveType
	masterVolume float64
	portamento   bool
}

// NewSynth opens the audio device and starts the render stream.
func NewSynth() (*Synth, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channelCount,
		Format:       oto.FormatSignedInt16LE,
	}

	otoCtx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-readyChan

	s := &Synth{
		otoCtx:       otoCtx,
		wave:         WaveSquare,
		masterVolume: 0.3,
	}

	s.player = otoCtx.NewPlayer(&synthReader{synth: s})
	s.player.Play()

	return s, nil
}

// synthReader implements io.Reader for continuous audio generation
type synthReader struct {
	synth *Synth
}

func (r *synthReader) Read(buf []byte) (int, error) {
	s := r.synth
	s.mu.Lock()
	defer s.mu.Unlock()

	numSamples := len(buf) / (channelCount * bitDepth)

	for i := 0; i < numSamples; i++ {
		var sample float64

		for vi := range s.voices {
			v := &s.voices[vi]
			if !v.active {
				continue
			}

			// Pitch glide toward the target frequency.
			if s.portamento {
				v.current += (v.frequency - v.current) * portamentoCoef
			} else {
				v.current = v.frequency
			}

			sample += generateWave(s.wave, v.phase) * v.envelope * 0.2

			v.phase += v.current / sampleRate
			if v.phase >= 1.0 {
				v.phase -= 1.0
			}

			if v.releasing {
				// Release phase - exponential decay
				v.envelope *= 0.9995
				if v.envelope < 0.001 {
					v.active = false
				}
			} else if v.envelope < 1.0 {
				// Attack phase
				v.envelope += 0.001
				if v.envelope > 1.0 {
					v.envelope = 1.0
				}
			}
		}

		sample *= s.masterVolume
		if sample > 1.0 {
			sample = 1.0
		} else if sample < -1.0 {
			sample = -1.0
		}

		sampleInt := int16(sample * 32767)

		// Write stereo samples (same for L and R)
		idx := i * channelCount * bitDepth
		buf[idx] = byte(sampleInt)
		buf[idx+1] = byte(sampleInt >> 8)
		buf[idx+2] = byte(sampleInt)
		buf[idx+3] = byte(sampleInt >> 8)
	}

	return len(buf), nil
}

func generateWave(waveType WaveType, phase float64) float64 {
	switch waveType {
	case WaveSine:
		return math.Sin(2 * math.Pi * phase)
	case WaveSquare:
		if phase < 0.5 {
			return 0.8
		}
		return -0.8
	case WaveSawtooth:
		return 2*phase - 1
	case WaveTriangle:
		if phase < 0.5 {
			return 4*phase - 1
		}
		return 3 - 4*phase
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// PlayNote points a voice at a note. A retrigger on an already-active voice
// keeps the envelope running; with portamento on it glides from the pitch it
// was last rendering, otherwise it jumps.
func (s *Synth) PlayNote(voiceIdx int, note uint8) {
	if voiceIdx < 0 || voiceIdx >= NumVoices {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	v := &s.voices[voiceIdx]
	freq := midiNoteToFreq(note)

	if v.active && s.portamento {
		v.frequency = freq
		v.releasing = false
		return
	}

	if !v.active {
		v.phase = 0
		v.envelope = 0
		v.current = freq
	}
	v.frequency = freq
	if !s.portamento {
		v.current = freq
	}
	v.releasing = false
	v.active = true
}

// StopNote releases a voice into its decay phase.
func (s *Synth) StopNote(voiceIdx int) {
	if voiceIdx < 0 || voiceIdx >= NumVoices {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voices[voiceIdx].releasing = true
}

// StopAll releases every voice.
func (s *Synth) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.voices {
		s.voices[i].releasing = true
	}
}

// SetPortamento switches pitch gliding on or off.
func (s *Synth) SetPortamento(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.portamento = on
}

// SetWave selects the oscillator shape for all voices.
func (s *Synth) SetWave(w WaveType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wave = w
}

// SetVolume sets the master volume (0.0 - 1.0)
func (s *Synth) SetVolume(vol float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if vol < 0 {
		vol = 0
	} else if vol > 1 {
		vol = 1
	}
	s.masterVolume = vol
}

// Close shuts down the synthesizer
func (s *Synth) Close() error {
	s.StopAll()
	// As of oto v3.4, player.Close() is deprecated and no longer needed.
	// The player is cleaned up when garbage collected.
	return nil
}

// midiNoteToFreq converts a MIDI note number to frequency in Hz
func midiNoteToFreq(note uint8) float64 {
	// A4 (note 69) = 440 Hz
	return 440.0 * math.Pow(2.0, (float64(note)-69.0)/12.0)
}
