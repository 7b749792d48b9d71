package audio

import (
	"math"

	"github.com/viterin/vek/vek32"
)

const (
	numVoices   = 32
	masterGain  = 0.5
	decayTime   = 1.5  // seconds to fall 60 dB while held
	releaseTime = 0.05 // seconds to fall 60 dB after note off
	silence     = 1e-4
)

// Synth is a small sine voice bank with exponential decay, enough to
// audition notes and blocks without an external instrument. It implements
// claviature.Synther. All methods must be called from the player goroutine.
type Synth struct {
	sampleRate float64
	voices     [numVoices]voice
	stamp      int
	scratch    []float32
}

type voice struct {
	active  bool
	phase   float64
	delta   float64
	amp     float32
	decay   float32
	release float32
	held    bool
	stamp   int
}

func NewSynth(sampleRate int) *Synth {
	return &Synth{sampleRate: float64(sampleRate)}
}

func (s *Synth) NoteOn(pitch, velocity int) int {
	i := s.allocVoice()
	freq := 440 * math.Pow(2, float64(pitch-69)/12)
	s.stamp++
	s.voices[i] = voice{
		active:  true,
		delta:   freq / s.sampleRate,
		amp:     float32(velocity) / 127,
		decay:   decayPerSample(s.sampleRate, decayTime),
		release: decayPerSample(s.sampleRate, releaseTime),
		held:    true,
		stamp:   s.stamp,
	}
	return i
}

func (s *Synth) NoteOff(v int) {
	if v < 0 || v >= numVoices {
		return
	}
	s.voices[v].held = false
}

// Render mixes all active voices into buffer, overwriting it.
func (s *Synth) Render(buffer []float32) {
	clear(buffer)
	if cap(s.scratch) < len(buffer) {
		s.scratch = make([]float32, len(buffer))
	}
	scratch := s.scratch[:len(buffer)]
	for i := range s.voices {
		v := &s.voices[i]
		if !v.active {
			continue
		}
		decay := v.decay
		if !v.held {
			decay = v.release
		}
		for j := range scratch {
			scratch[j] = v.amp * float32(math.Sin(2*math.Pi*v.phase))
			v.phase += v.delta
			if v.phase >= 1 {
				v.phase -= 1
			}
			v.amp *= decay
		}
		if v.amp < silence {
			v.active = false
		}
		vek32.Add_Into(buffer, buffer, scratch)
	}
	vek32.MulNumber_Into(buffer, buffer, masterGain)
}

// allocVoice returns a free voice, stealing the oldest one when the bank is
// full.
func (s *Synth) allocVoice() int {
	oldest, oldestStamp := 0, math.MaxInt
	for i := range s.voices {
		if !s.voices[i].active {
			return i
		}
		if s.voices[i].stamp < oldestStamp {
			oldest, oldestStamp = i, s.voices[i].stamp
		}
	}
	return oldest
}

func decayPerSample(sampleRate, seconds float64) float32 {
	// 60 dB is a factor of 1000
	return float32(math.Pow(1.0/1000, 1/(seconds*sampleRate)))
}
