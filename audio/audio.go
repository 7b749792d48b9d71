// Package audio implements the preview synth and the audio output sink.
package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ajankelo/claviature"
	"github.com/ebitengine/oto/v3"
)

const SampleRate = 44100

// Context wraps the oto audio context. There should be at most one Context
// at a time.
type Context struct {
	ctx *oto.Context
}

func NewContext() (*Context, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	return &Context{ctx: ctx}, nil
}

// Output returns a sink that plays everything written to it. oto pulls
// audio through an io.Reader, so the sink feeds a pipe; the pipe's
// backpressure is what paces the player loop.
func (c *Context) Output() claviature.AudioSink {
	pr, pw := io.Pipe()
	player := c.ctx.NewPlayer(pr)
	player.Play()
	return &output{player: player, pw: pw}
}

func (c *Context) Close() error {
	if err := c.ctx.Suspend(); err != nil {
		return fmt.Errorf("cannot suspend oto context: %w", err)
	}
	return nil
}

type output struct {
	player    *oto.Player
	pw        *io.PipeWriter
	tmpBuffer []byte
}

func (o *output) WriteAudio(buffer []float32) error {
	// reuse the old capacity by setting the length to zero
	o.tmpBuffer = floatBufferTo16BitLE(buffer, o.tmpBuffer[:0])
	if _, err := o.pw.Write(o.tmpBuffer); err != nil {
		return fmt.Errorf("cannot write to player: %w", err)
	}
	return nil
}

func (o *output) Close() error {
	o.pw.Close()
	if err := o.player.Close(); err != nil {
		return fmt.Errorf("cannot close oto player: %w", err)
	}
	return nil
}

func floatBufferTo16BitLE(buffer []float32, out []byte) []byte {
	for _, v := range buffer {
		var uv int16
		if v < -1.0 {
			uv = -math.MaxInt16
		} else if v > 1.0 {
			uv = math.MaxInt16
		} else {
			uv = int16(v * math.MaxInt16)
		}
		out = binary.LittleEndian.AppendUint16(out, uint16(uv))
	}
	return out
}
