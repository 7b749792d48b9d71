package editor

import (
	"github.com/ajankelo/claviature"
)

type (
	// RollEditor is the note editor: one engine instance whose container is
	// the block currently open in the piano roll. Lanes are inverted
	// pitches, so lane 0 is the highest note and the roll reads top-down
	// like a piano roll should.
	RollEditor struct {
		Selection Selection
		View      Viewport
		Control   *Controller

		m *Model
	}

	rollContainer Model
	rollHost      Model
)

const defaultNoteDuration = 1
const defaultVelocity = 100

func newRollEditor(m *Model) *RollEditor {
	e := &RollEditor{m: m, View: NewViewport()}
	e.View.PxPerLane = 12
	e.Control = NewController((*rollContainer)(m), (*rollHost)(m), &e.Selection, &e.View)
	return e
}

// LaneToPitch converts an engine lane back to a MIDI pitch.
func LaneToPitch(lane int) int { return claviature.MaxPitch - lane }

// PitchToLane converts a MIDI pitch to an engine lane.
func PitchToLane(pitch int) int { return claviature.MaxPitch - pitch }

func (c *rollContainer) block() (*claviature.Block, bool) {
	return (*Model)(c).ActiveBlock()
}

func (c *rollContainer) Entities() []Entity {
	b, ok := c.block()
	if !ok {
		return nil
	}
	out := make([]Entity, len(b.Notes))
	for i, n := range b.Notes {
		out[i] = Entity{ID: n.ID, Start: n.Start, Duration: n.Duration, Lane: PitchToLane(n.Pitch)}
	}
	return out
}

func (c *rollContainer) Replace(entities []Entity) {
	m := (*Model)(c)
	b, ok := c.block()
	if !ok {
		return
	}
	defer m.change("ReplaceNotes", MajorChange)()
	old := make(map[int]claviature.Note, len(b.Notes))
	for _, n := range b.Notes {
		old[n.ID] = n
	}
	notes := make([]claviature.Note, 0, len(entities))
	for _, e := range entities {
		n, seen := old[e.ID]
		if !seen {
			n = claviature.Note{ID: e.ID, Velocity: defaultVelocity}
		}
		n.Start = e.Start
		n.Duration = e.Duration
		n.Pitch = clamp(LaneToPitch(e.Lane), 0, claviature.MaxPitch)
		notes = append(notes, n)
	}
	b.Notes = notes
}

func (c *rollContainer) Bounds() Bounds {
	b, ok := c.block()
	if !ok {
		return Bounds{}
	}
	return Bounds{Duration: b.Duration, Lanes: claviature.MaxPitch + 1, Bounded: true}
}

func (c *rollContainer) Generation() int { return (*Model)(c).generation }

func (c *rollContainer) Create(start float64, lane int) (Entity, bool) {
	m := (*Model)(c)
	b, ok := c.block()
	if !ok {
		return Entity{}, false
	}
	dur := clampF(defaultNoteDuration, claviature.MinDuration, b.Duration-start)
	if dur < claviature.MinDuration {
		return Entity{}, false
	}
	return Entity{ID: m.nextID(), Start: start, Duration: dur, Lane: lane}, true
}

func (c *rollContainer) Duplicate(ids []int) (clones []Entity, sources []int) {
	m := (*Model)(c)
	b, ok := c.block()
	if !ok {
		return nil, nil
	}
	defer m.change("DuplicateNotes", MajorChange)()
	byID := make(map[int]claviature.Note, len(b.Notes))
	for _, n := range b.Notes {
		byID[n.ID] = n
	}
	for _, id := range ids {
		n, ok := byID[id]
		if !ok {
			continue
		}
		n.ID = m.nextID()
		b.Notes = append(b.Notes, n)
		clones = append(clones, Entity{ID: n.ID, Start: n.Start, Duration: n.Duration, Lane: PitchToLane(n.Pitch)})
		sources = append(sources, id)
	}
	if len(clones) == 0 {
		m.changeCancel = true
	}
	return clones, sources
}

func (c *rollContainer) Rollback() { (*Model)(c).rollbackLastChange() }

func (c *rollContainer) ResizeBounds(deltaStart, deltaEnd float64) {
	m := (*Model)(c)
	b, ok := c.block()
	if !ok {
		return
	}
	defer m.change("ResizeBlock", MajorChange)()
	if deltaStart != 0 {
		deltaStart = clampF(deltaStart, -b.Start, b.Duration-claviature.MinDuration)
		b.Start += deltaStart
		b.Duration -= deltaStart
		for i := range b.Notes {
			b.Notes[i].Start = max(b.Notes[i].Start-deltaStart, 0)
		}
	}
	if deltaEnd != 0 {
		b.Duration = max(b.Duration+deltaEnd, claviature.MinDuration)
	}
}

// Entities exposes the engine's view of the open block for rendering.
func (e *RollEditor) Entities() []Entity { return (*rollContainer)(e.m).Entities() }

// Bounds exposes the open block's extent for rendering.
func (e *RollEditor) Bounds() Bounds { return (*rollContainer)(e.m).Bounds() }

// PlayheadBeat is the playhead in block-relative beats.
func (e *RollEditor) PlayheadBeat() float64 { return (*rollHost)(e.m).Playhead() }

func (h *rollHost) Snap() float64 { return (*Model)(h).d.Grid }

func (h *rollHost) Playhead() float64 {
	m := (*Model)(h)
	if b, ok := m.ActiveBlock(); ok {
		return m.d.Playhead - b.Start
	}
	return m.d.Playhead
}

func (h *rollHost) SetPlayhead(beat float64) {
	m := (*Model)(h)
	if b, ok := m.ActiveBlock(); ok {
		m.SetPlayheadBeat(b.Start + beat)
		return
	}
	m.SetPlayheadBeat(beat)
}

func (h *rollHost) Warn(msg string) { (*Model)(h).Alerts().Add(msg, Warning) }
