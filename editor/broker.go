package editor

import (
	"time"

	"github.com/ajankelo/claviature"
)

type (
	// Broker carries the messages between the model and the player
	// goroutine. Communication is many-to-one, one channel per recipient.
	// The channels are buffered and written with TrySend, so neither side
	// can stall the other; a dropped message only delays a UI refresh by a
	// frame.
	//
	// ClosePlayer has capacity 1 so requesting closure never blocks; if the
	// channel is already full, someone else already asked and dropping the
	// request is fine. FinishedPlayer is closed by the player once it has
	// cleaned up.
	Broker struct {
		ToModel  chan MsgToModel
		ToPlayer chan MsgToPlayer

		ClosePlayer    chan struct{}
		FinishedPlayer chan struct{}
	}

	// MsgToModel carries player state back to the model. The frequent
	// fields are unboxed to avoid allocations.
	MsgToModel struct {
		HasPlayhead bool
		Playhead    float64
		Playing     bool

		Data any
	}

	// MsgToPlayer tells the player what to do. A non-nil Song swaps the
	// material being played; the pointer is never written after sending.
	MsgToPlayer struct {
		Song *claviature.Song

		HasSeek bool
		Seek    float64

		HasPlaying bool
		Playing    bool

		HasLoop bool
		Loop    bool

		// NoteOn/NoteOff audition a single pitch outside playback, for
		// click feedback when creating notes.
		NoteOn  *PreviewNote
		NoteOff bool
	}

	// PreviewNote is an auditioned pitch, independent of the song.
	PreviewNote struct {
		Pitch    int
		Velocity int
	}
)

func NewBroker() *Broker {
	return &Broker{
		ToModel:        make(chan MsgToModel, 1024),
		ToPlayer:       make(chan MsgToPlayer, 1024),
		ClosePlayer:    make(chan struct{}, 1),
		FinishedPlayer: make(chan struct{}),
	}
}

// TrySend sends a value to a channel if it is not full. It is guaranteed to
// be non-blocking; returns false if the value was dropped.
func TrySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}

// TimeoutReceive blocks until a value is received or t elapses; ok is false
// on timeout or a closed channel.
func TimeoutReceive[T any](c <-chan T, t time.Duration) (v T, ok bool) {
	select {
	case v, ok = <-c:
		return v, ok
	case <-time.After(t):
		return v, false
	}
}
