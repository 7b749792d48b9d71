package editor

import (
	"fmt"

	"github.com/ajankelo/claviature"
)

type (
	// TimelineEditor is the arrangement editor: the same engine with blocks
	// as entities and tracks as lanes. Moving an entity to another lane
	// reparents the block to that track at commit.
	TimelineEditor struct {
		Selection Selection
		View      Viewport
		Control   *Controller

		m *Model
	}

	timelineContainer Model
	timelineHost      Model
)

const defaultBlockDuration = 4

func newTimelineEditor(m *Model) *TimelineEditor {
	e := &TimelineEditor{m: m, View: NewViewport()}
	e.View.PxPerLane = 32
	e.Control = NewController((*timelineContainer)(m), (*timelineHost)(m), &e.Selection, &e.View)
	return e
}

func (c *timelineContainer) Entities() []Entity {
	m := (*Model)(c)
	var out []Entity
	for ti, t := range m.d.Song.Tracks {
		for _, b := range t.Blocks {
			out = append(out, Entity{ID: b.ID, Start: b.Start, Duration: b.Duration, Lane: ti})
		}
	}
	return out
}

func (c *timelineContainer) Replace(entities []Entity) {
	m := (*Model)(c)
	if len(m.d.Song.Tracks) == 0 {
		return
	}
	defer m.change("ReplaceBlocks", MajorChange)()
	old := make(map[int]claviature.Block)
	for _, t := range m.d.Song.Tracks {
		for _, b := range t.Blocks {
			old[b.ID] = b
		}
	}
	for ti := range m.d.Song.Tracks {
		m.d.Song.Tracks[ti].Blocks = nil
	}
	for _, e := range entities {
		b, seen := old[e.ID]
		if !seen {
			b = claviature.Block{ID: e.ID, Name: fmt.Sprintf("Block %d", e.ID)}
		}
		b.Start = e.Start
		b.Duration = e.Duration
		ti := clamp(e.Lane, 0, len(m.d.Song.Tracks)-1)
		m.d.Song.Tracks[ti].Blocks = append(m.d.Song.Tracks[ti].Blocks, b)
	}
}

func (c *timelineContainer) Bounds() Bounds {
	return Bounds{Lanes: len((*Model)(c).d.Song.Tracks)}
}

func (c *timelineContainer) Generation() int { return (*Model)(c).generation }

func (c *timelineContainer) Create(start float64, lane int) (Entity, bool) {
	m := (*Model)(c)
	if lane < 0 || lane >= len(m.d.Song.Tracks) {
		return Entity{}, false
	}
	return Entity{ID: m.nextID(), Start: start, Duration: defaultBlockDuration, Lane: lane}, true
}

func (c *timelineContainer) Duplicate(ids []int) (clones []Entity, sources []int) {
	m := (*Model)(c)
	defer m.change("DuplicateBlocks", MajorChange)()
	for _, id := range ids {
		b, ti, ok := m.findBlock(id)
		if !ok {
			continue
		}
		clone := b.Copy()
		clone.ID = m.nextID()
		for i := range clone.Notes {
			clone.Notes[i].ID = m.nextID()
		}
		m.d.Song.Tracks[ti].Blocks = append(m.d.Song.Tracks[ti].Blocks, clone)
		clones = append(clones, Entity{ID: clone.ID, Start: clone.Start, Duration: clone.Duration, Lane: ti})
		sources = append(sources, id)
	}
	if len(clones) == 0 {
		m.changeCancel = true
	}
	return clones, sources
}

func (c *timelineContainer) Rollback() { (*Model)(c).rollbackLastChange() }

// ResizeBounds is a no-op: the timeline has no extent of its own.
func (c *timelineContainer) ResizeBounds(deltaStart, deltaEnd float64) {}

// Entities exposes the engine's view of the arrangement for rendering.
func (e *TimelineEditor) Entities() []Entity { return (*timelineContainer)(e.m).Entities() }

// Bounds exposes the arrangement extent for rendering.
func (e *TimelineEditor) Bounds() Bounds { return (*timelineContainer)(e.m).Bounds() }

// PlayheadBeat is the playhead in song beats.
func (e *TimelineEditor) PlayheadBeat() float64 { return (*Model)(e.m).d.Playhead }

// EntityAt hit-tests a pixel position and returns the block entity under it,
// for the GUI's open-on-double-click.
func (e *TimelineEditor) EntityAt(p Point) (Entity, bool) {
	hit := HitTest(p, e.View, (*timelineContainer)(e.m), &e.Selection, (*timelineHost)(e.m).Playhead())
	switch hit.Zone {
	case HitBody, HitStart, HitEnd:
		return hit.Entity, true
	}
	return Entity{}, false
}

func (h *timelineHost) Snap() float64            { return (*Model)(h).d.Grid }
func (h *timelineHost) Playhead() float64        { return (*Model)(h).d.Playhead }
func (h *timelineHost) SetPlayhead(beat float64) { (*Model)(h).SetPlayheadBeat(beat) }
func (h *timelineHost) Warn(msg string)          { (*Model)(h).Alerts().Add(msg, Warning) }
