package editor_test

import (
	"github.com/ajankelo/claviature/editor"
)

// fakeContainer is a minimal in-memory Container for exercising the engine
// without the model.
type fakeContainer struct {
	entities   []editor.Entity
	bounds     editor.Bounds
	generation int
	nextID     int
	rollback   []editor.Entity

	resizedStart, resizedEnd float64
}

func (c *fakeContainer) Entities() []editor.Entity { return c.entities }

func (c *fakeContainer) Replace(entities []editor.Entity) {
	c.entities = append([]editor.Entity(nil), entities...)
	c.generation++
}

func (c *fakeContainer) Bounds() editor.Bounds { return c.bounds }
func (c *fakeContainer) Generation() int       { return c.generation }

func (c *fakeContainer) Create(start float64, lane int) (editor.Entity, bool) {
	c.nextID++
	return editor.Entity{ID: 1000 + c.nextID, Start: start, Duration: 1, Lane: lane}, true
}

func (c *fakeContainer) Duplicate(ids []int) (clones []editor.Entity, sources []int) {
	prev := append([]editor.Entity(nil), c.entities...)
	byID := make(map[int]editor.Entity)
	for _, e := range c.entities {
		byID[e.ID] = e
	}
	for _, id := range ids {
		e, ok := byID[id]
		if !ok {
			continue
		}
		c.nextID++
		e.ID = 1000 + c.nextID
		c.entities = append(c.entities, e)
		clones = append(clones, e)
		sources = append(sources, id)
	}
	if len(clones) > 0 {
		c.rollback = prev
		c.generation++
	}
	return clones, sources
}

// Rollback restores the entity list from before the last Duplicate.
func (c *fakeContainer) Rollback() {
	c.entities = c.rollback
	c.generation++
}

func (c *fakeContainer) ResizeBounds(deltaStart, deltaEnd float64) {
	c.resizedStart += deltaStart
	c.resizedEnd += deltaEnd
	c.generation++
}

// externalMutation simulates another part of the host writing to the
// container behind the engine's back.
func (c *fakeContainer) externalMutation() { c.generation++ }

type fakeHost struct {
	snap     float64
	playhead float64
	warnings []string
}

func (h *fakeHost) Snap() float64            { return h.snap }
func (h *fakeHost) Playhead() float64        { return h.playhead }
func (h *fakeHost) SetPlayhead(beat float64) { h.playhead = beat }
func (h *fakeHost) Warn(msg string)          { h.warnings = append(h.warnings, msg) }

type scene struct {
	container *fakeContainer
	host      *fakeHost
	sel       *editor.Selection
	view      *editor.Viewport
	ctrl      *editor.Controller
}

// newScene builds an 8-beat bounded container at 32 px/beat and 16
// px/lane, with the playhead parked far to the right so its strip does not
// shadow entity hits.
func newScene(entities ...editor.Entity) *scene {
	c := &fakeContainer{
		entities: entities,
		bounds:   editor.Bounds{Duration: 8, Lanes: 128, Bounded: true},
	}
	h := &fakeHost{snap: 0.25, playhead: 1000}
	sel := &editor.Selection{}
	view := &editor.Viewport{PxPerBeat: 32, PxPerLane: 16}
	return &scene{
		container: c,
		host:      h,
		sel:       sel,
		view:      view,
		ctrl:      editor.NewController(c, h, sel, view),
	}
}

// at maps a beat and a continuous lane position to screen pixels.
func (s *scene) at(beat, lane float64) editor.Point {
	p, _ := s.view.FromContent(editor.ContentPoint{Beat: beat, Lane: lane})
	return p
}

// drag runs a full press-move-release cycle between two content points.
func (s *scene) drag(from, to editor.Point, mods editor.Modifiers) {
	s.ctrl.Press(from, mods)
	s.ctrl.Move(to)
	s.ctrl.Release(to)
}

func (s *scene) find(id int) (editor.Entity, bool) {
	for _, e := range s.container.entities {
		if e.ID == id {
			return e, true
		}
	}
	return editor.Entity{}, false
}
