package editor

import (
	"sort"

	"github.com/ajankelo/claviature"
)

const playerBufferSize = 2048

type (
	// Player renders the song through a Synther into an AudioSink. It runs
	// in its own goroutine and owns its copy of the song; the model talks
	// to it only through the broker. Positions are tracked in samples and
	// converted to beats with the song BPM.
	Player struct {
		broker     *Broker
		synth      claviature.Synther
		sampleRate float64

		song    claviature.Song
		events  []noteEvent
		nextEv  int
		playing bool
		loop    bool
		beat    float64

		voices       map[voiceKey]int
		previewVoice int
		hasPreview   bool
	}

	noteEvent struct {
		Beat     float64
		On       bool
		Pitch    int
		Velocity int
		Key      voiceKey
	}

	// voiceKey ties a note-off to the voice its note-on started.
	voiceKey struct {
		Track int
		Note  int
	}
)

func NewPlayer(broker *Broker, synth claviature.Synther, sampleRate int) *Player {
	return &Player{
		broker:     broker,
		synth:      synth,
		sampleRate: float64(sampleRate),
		voices:     make(map[voiceKey]int),
	}
}

// Run is the player main loop: drain messages, render one buffer, write it
// to the sink, until closure is requested. Closes FinishedPlayer when done.
func (p *Player) Run(sink claviature.AudioSink) {
	defer close(p.broker.FinishedPlayer)
	buffer := make([]float32, playerBufferSize)
	for {
		select {
		case <-p.broker.ClosePlayer:
			return
		case msg := <-p.broker.ToPlayer:
			p.processMsg(msg)
			continue
		default:
		}
		p.render(buffer)
		if err := sink.WriteAudio(buffer); err != nil {
			return
		}
	}
}

func (p *Player) processMsg(msg MsgToPlayer) {
	if msg.Song != nil {
		p.song = *msg.Song
		p.rebuildEvents()
	}
	if msg.HasSeek {
		p.seek(msg.Seek)
	}
	if msg.HasPlaying {
		if msg.Playing != p.playing {
			p.playing = msg.Playing
			p.releaseAll()
			p.seek(p.beat)
			p.sendPosition()
		}
	}
	if msg.HasLoop {
		p.loop = msg.Loop
	}
	if msg.NoteOn != nil {
		if p.hasPreview {
			p.synth.NoteOff(p.previewVoice)
		}
		p.previewVoice = p.synth.NoteOn(msg.NoteOn.Pitch, msg.NoteOn.Velocity)
		p.hasPreview = true
	}
	if msg.NoteOff && p.hasPreview {
		p.synth.NoteOff(p.previewVoice)
		p.hasPreview = false
	}
}

// rebuildEvents flattens the song into a time-ordered on/off event list.
// Note times are absolute: block start plus note start, with the note
// clipped to its block.
func (p *Player) rebuildEvents() {
	p.events = p.events[:0]
	for ti, t := range p.song.Tracks {
		for _, b := range t.Blocks {
			for _, n := range b.Notes {
				if n.Start >= b.Duration {
					continue
				}
				on := b.Start + n.Start
				off := b.Start + min(n.End(), b.Duration)
				key := voiceKey{Track: ti, Note: n.ID}
				p.events = append(p.events,
					noteEvent{Beat: on, On: true, Pitch: n.Pitch, Velocity: n.Velocity, Key: key},
					noteEvent{Beat: off, Key: key},
				)
			}
		}
	}
	sort.SliceStable(p.events, func(i, j int) bool {
		if p.events[i].Beat != p.events[j].Beat {
			return p.events[i].Beat < p.events[j].Beat
		}
		// offs before ons at the same instant, so retriggers work
		return !p.events[i].On && p.events[j].On
	})
	p.seek(p.beat)
}

func (p *Player) seek(beat float64) {
	p.releaseAll()
	p.beat = max(beat, 0)
	p.nextEv = sort.Search(len(p.events), func(i int) bool {
		return p.events[i].Beat >= p.beat
	})
}

func (p *Player) releaseAll() {
	for _, voice := range p.voices {
		p.synth.NoteOff(voice)
	}
	clear(p.voices)
}

func (p *Player) render(buffer []float32) {
	if !p.playing || p.song.BPM <= 0 {
		p.synth.Render(buffer)
		return
	}
	beatsPerSample := p.song.BPM / 60 / p.sampleRate
	rendered := 0
	for rendered < len(buffer) {
		for p.nextEv < len(p.events) && p.events[p.nextEv].Beat <= p.beat {
			p.fire(p.events[p.nextEv])
			p.nextEv++
		}
		if p.nextEv >= len(p.events) && p.beat >= p.song.TotalLength() {
			if p.loop {
				p.seek(0)
				continue
			}
			p.playing = false
			p.releaseAll()
			p.sendPosition()
			p.synth.Render(buffer[rendered:])
			return
		}
		n := len(buffer) - rendered
		if p.nextEv < len(p.events) {
			until := int((p.events[p.nextEv].Beat - p.beat) / beatsPerSample)
			if until < n {
				n = max(until, 1)
			}
		}
		p.synth.Render(buffer[rendered : rendered+n])
		rendered += n
		p.beat += float64(n) * beatsPerSample
	}
	p.sendPosition()
}

func (p *Player) fire(ev noteEvent) {
	if ev.On {
		if voice, ok := p.voices[ev.Key]; ok {
			p.synth.NoteOff(voice)
		}
		p.voices[ev.Key] = p.synth.NoteOn(ev.Pitch, ev.Velocity)
		return
	}
	if voice, ok := p.voices[ev.Key]; ok {
		p.synth.NoteOff(voice)
		delete(p.voices, ev.Key)
	}
}

func (p *Player) sendPosition() {
	TrySend(p.broker.ToModel, MsgToModel{HasPlayhead: true, Playhead: p.beat, Playing: p.playing})
}
