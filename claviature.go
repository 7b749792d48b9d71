package claviature

type (
	// AudioSink is something where we can send audio e.g. audio output. It is
	// assumed the sink is mono, deinterleaved float32 samples.
	AudioSink interface {
		WriteAudio(buffer []float32) error
		Close() error
	}

	// AudioContext represents the low-level audio drivers. There should be at
	// most one AudioContext at a time.
	AudioContext interface {
		Output() AudioSink
		Close() error
	}

	// Synther renders note events into audio. The preview synth in audio/
	// implements it; tests use a silent stub.
	Synther interface {
		// NoteOn starts playing the pitch (0..127) at the given velocity
		// (1..127) and returns an opaque voice handle for the later NoteOff.
		NoteOn(pitch, velocity int) (voice int)
		// NoteOff releases a voice previously returned by NoteOn.
		NoteOff(voice int)
		// Render fills the buffer with the next len(buffer) samples,
		// advancing the synth state.
		Render(buffer []float32)
	}
)

// NewSong returns a minimal playable song: one empty track at 120 BPM, 16
// beats long.
func NewSong() Song {
	return Song{
		BPM:    120,
		Length: 16,
		Tracks: []Track{{Name: "Track 1"}},
	}
}
