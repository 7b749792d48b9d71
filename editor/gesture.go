package editor

import "math"

// DragThreshold is the Euclidean pixel distance the pointer has to travel
// before a press turns into a genuine drag; below it the gesture resolves
// as a click.
const DragThreshold = 3

// DragKind tags the one kind of gesture a DragSession is driving.
type DragKind int

const (
	DragMove DragKind = iota
	DragResizeStart
	DragResizeEnd
	DragMarquee
	DragPlayhead
	DragBoundaryStart
	DragBoundaryEnd
)

type (
	// Modifiers are the modifier keys held at press time.
	Modifiers struct {
		Shift bool
		Alt   bool
	}

	// DragSession is the transient record of an in-progress gesture. There
	// is at most one per controller; a nil session means the controller is
	// idle. Nothing in it is applied to the container until release: the
	// snapped deltas are a preview for the renderer. The one exception is
	// alt-duplication, which writes the clones at press time; cancel rolls
	// that write back through the container so it is still a perfect no-op.
	DragSession struct {
		Kind     DragKind
		AnchorID int

		// Snapshot holds the affected entities as they were at press time;
		// commit resolves deltas against it, never against live data.
		Snapshot []Entity

		PressScreen Point
		Press       ContentPoint

		// ClickOffset is the press position relative to the anchor's start
		// and lane, so the anchor tracks the pointer without jumping.
		ClickOffset ContentPoint

		Duplicate bool
		Shift     bool
		Alt       bool

		// DeltaBeat and DeltaLane are the current snapped pending deltas,
		// valid once the drag threshold has been exceeded.
		DeltaBeat float64
		DeltaLane int

		MarqueeTo ContentPoint

		exceeded   bool
		generation int
		baseSel    []int
	}

	// Controller is the gesture state machine. It owns the session
	// lifecycle: Press starts one (idle is a precondition), Move updates the
	// pending preview, Release resolves through the commit logic, Cancel
	// discards. All methods are synchronous and must be called from the
	// event loop goroutine.
	Controller struct {
		container Container
		host      Host
		sel       *Selection
		view      *Viewport
		session   *DragSession
	}
)

func NewController(c Container, h Host, sel *Selection, view *Viewport) *Controller {
	return &Controller{container: c, host: h, sel: sel, view: view}
}

// Session returns the active drag session, nil when idle.
func (c *Controller) Session() *DragSession { return c.session }

// Dragging reports whether a session is active and past the drag threshold.
func (c *Controller) Dragging() bool { return c.session != nil && c.session.exceeded }

// Press starts a new session from a primary-button press. Ignored while a
// session is already active or when the viewport yields no mapping.
func (c *Controller) Press(p Point, mods Modifiers) {
	if c.session != nil {
		return
	}
	cp, ok := c.view.ToContent(p)
	if !ok {
		return
	}
	s := &DragSession{
		PressScreen: p,
		Press:       cp,
		MarqueeTo:   cp,
		Shift:       mods.Shift,
		Alt:         mods.Alt,
		baseSel:     append([]int(nil), c.sel.IDs()...),
	}
	hit := HitTest(p, *c.view, c.container, c.sel, c.host.Playhead())
	switch hit.Zone {
	case HitPlayhead:
		s.Kind = DragPlayhead
	case HitBoundaryStart:
		s.Kind = DragBoundaryStart
	case HitBoundaryEnd:
		s.Kind = DragBoundaryEnd
	case HitStart, HitEnd:
		s.Kind = DragResizeStart
		if hit.Zone == HitEnd {
			s.Kind = DragResizeEnd
		}
		c.foldAnchor(hit.Entity.ID, mods)
		s.AnchorID = hit.Entity.ID
		s.Snapshot = c.selectedEntities()
		s.baseSel = append([]int(nil), c.sel.IDs()...)
	case HitBody:
		s.Kind = DragMove
		c.foldAnchor(hit.Entity.ID, mods)
		s.AnchorID = hit.Entity.ID
		s.baseSel = append([]int(nil), c.sel.IDs()...)
		s.ClickOffset = ContentPoint{
			Beat: cp.Beat - hit.Entity.Start,
			Lane: cp.Lane - float64(hit.Entity.Lane),
		}
		if mods.Alt {
			c.duplicateSelection(s)
		} else {
			s.Snapshot = c.selectedEntities()
		}
	default:
		s.Kind = DragMarquee
		if !mods.Shift {
			c.sel.Clear()
		}
	}
	s.generation = c.container.Generation()
	c.session = s
}

// Move updates the pending preview from the current pointer position. Below
// the drag threshold the session stays a pending click. Aborts the session
// when the container changed under it.
func (c *Controller) Move(p Point) {
	s := c.session
	if s == nil {
		return
	}
	if c.invalidated(s) {
		c.session = nil
		return
	}
	cp, ok := c.view.ToContent(p)
	if !ok {
		return
	}
	if !s.exceeded {
		dx := float64(p.X - s.PressScreen.X)
		dy := float64(p.Y - s.PressScreen.Y)
		if math.Hypot(dx, dy) < DragThreshold {
			return
		}
		s.exceeded = true
	}
	snap := c.host.Snap()
	switch s.Kind {
	case DragMarquee:
		s.MarqueeTo = cp
		c.sel.Replace(s.baseSel...)
		c.sel.SelectByRegion(regionFromPoints(s.Press, cp), c.container.Entities(), s.Shift)
	case DragPlayhead:
		c.host.SetPlayhead(c.clampBeat(cp.Beat))
	case DragMove:
		anchor, ok := s.anchor()
		if !ok {
			c.session = nil
			return
		}
		s.DeltaBeat = snapRound(cp.Beat-s.ClickOffset.Beat, snap) - anchor.Start
		s.DeltaLane = int(math.Round(cp.Lane-s.ClickOffset.Lane)) - anchor.Lane
	default:
		s.DeltaBeat = snapRound(cp.Beat-s.Press.Beat, snap)
	}
}

// Release resolves the session: sub-threshold marquee becomes
// click-to-create, active move/resize gestures commit atomically, the rest
// were already applied live or change nothing. The controller is idle
// afterwards.
func (c *Controller) Release(p Point) {
	s := c.session
	if s == nil {
		return
	}
	c.Move(p)
	s = c.session
	c.session = nil
	if s == nil {
		return
	}
	if c.invalidated(s) {
		return
	}
	switch s.Kind {
	case DragMarquee:
		if !s.exceeded && !s.Shift && !s.Alt {
			c.clickCreate(s.Press)
		}
	case DragMove:
		if !s.exceeded {
			if s.Duplicate {
				c.rollbackDuplicate(s)
			}
			return
		}
		b := c.container.Bounds()
		c.commit(moveEntities(s.Snapshot, s.DeltaBeat, s.DeltaLane, b))
	case DragResizeStart:
		if s.exceeded {
			c.commit(resizeStarts(s.Snapshot, s.DeltaBeat))
		}
	case DragResizeEnd:
		if s.exceeded {
			c.commit(resizeEnds(s.Snapshot, s.DeltaBeat, c.container.Bounds()))
		}
	case DragBoundaryStart:
		if s.exceeded {
			c.container.ResizeBounds(s.DeltaBeat, 0)
		}
	case DragBoundaryEnd:
		if s.exceeded {
			c.container.ResizeBounds(0, s.DeltaBeat)
		}
	}
}

// Cancel discards the session without committing. The container ends up in
// its press-time state: the only mid-gesture write, alt-duplication, is
// rolled back.
func (c *Controller) Cancel() {
	s := c.session
	c.session = nil
	if s == nil {
		return
	}
	if c.invalidated(s) {
		return
	}
	if s.Duplicate {
		c.rollbackDuplicate(s)
		return
	}
	if s.Kind == DragMarquee {
		c.sel.Replace(s.baseSel...)
	}
}

// Preview returns the entities as they would be committed right now, for
// the renderer to draw in place of the snapshot entities. nil when the
// session has no positional preview.
func (c *Controller) Preview() []Entity {
	s := c.session
	if s == nil || !s.exceeded {
		return nil
	}
	switch s.Kind {
	case DragMove:
		return moveEntities(s.Snapshot, s.DeltaBeat, s.DeltaLane, c.container.Bounds())
	case DragResizeStart:
		return resizeStarts(s.Snapshot, s.DeltaBeat)
	case DragResizeEnd:
		return resizeEnds(s.Snapshot, s.DeltaBeat, c.container.Bounds())
	}
	return nil
}

// Marquee returns the current rubber-band region and whether one is being
// dragged.
func (c *Controller) Marquee() (Region, bool) {
	s := c.session
	if s == nil || s.Kind != DragMarquee || !s.exceeded {
		return Region{}, false
	}
	return regionFromPoints(s.Press, s.MarqueeTo), true
}

func (s *DragSession) anchor() (Entity, bool) {
	for _, e := range s.Snapshot {
		if e.ID == s.AnchorID {
			return e, true
		}
	}
	return Entity{}, false
}

// foldAnchor makes sure the pressed entity takes part in the gesture:
// replace the selection with it, or add it when shift is held.
func (c *Controller) foldAnchor(id int, mods Modifiers) {
	if c.sel.Contains(id) {
		return
	}
	if mods.Shift {
		c.sel.Add(id)
	} else {
		c.sel.Replace(id)
	}
}

// duplicateSelection clones every selected entity with fresh ids in one
// atomic write and re-targets the session to the clones, so a subsequent
// move drags the copies and leaves the originals untouched.
func (c *Controller) duplicateSelection(s *DragSession) {
	clones, sources := c.container.Duplicate(c.sel.IDs())
	if len(clones) == 0 {
		s.Snapshot = nil
		return
	}
	ids := make([]int, len(clones))
	anchorClone := -1
	for i, e := range clones {
		ids[i] = e.ID
		if sources[i] == s.AnchorID {
			anchorClone = e.ID
		}
	}
	c.sel.Replace(ids...)
	if anchorClone >= 0 {
		s.AnchorID = anchorClone
	} else {
		s.AnchorID = clones[0].ID
		c.host.Warn("duplicate lost track of the dragged entity")
	}
	s.Snapshot = clones
	s.Duplicate = true
}

// rollbackDuplicate unwinds the press-time Duplicate write. Going through
// Rollback rather than Replace keeps the cancelled gesture out of the undo
// history.
func (c *Controller) rollbackDuplicate(s *DragSession) {
	c.container.Rollback()
	c.sel.Replace(s.baseSel...)
}

// clickCreate materializes a new entity from a zero-movement unmodified
// press on empty space, snapped down to the grid cell under the pointer.
// Modified presses finalize as an empty marquee instead.
func (c *Controller) clickCreate(cp ContentPoint) {
	start := snapFloor(cp.Beat, c.host.Snap())
	lane := int(math.Floor(cp.Lane))
	b := c.container.Bounds()
	if start < 0 || lane < 0 {
		return
	}
	if b.Lanes > 0 && lane >= b.Lanes {
		return
	}
	if b.Bounded && start >= b.Duration {
		return
	}
	e, ok := c.container.Create(start, lane)
	if !ok {
		return
	}
	c.container.Replace(append(c.container.Entities(), e))
	c.sel.Replace(e.ID)
}

// commit writes the resolved entities back in a single atomic Replace.
func (c *Controller) commit(resolved []Entity) {
	c.container.Replace(mergeResolved(c.container.Entities(), resolved))
}

func (c *Controller) selectedEntities() []Entity {
	var out []Entity
	byID := make(map[int]Entity)
	for _, e := range c.container.Entities() {
		byID[e.ID] = e
	}
	for _, id := range c.sel.IDs() {
		if e, ok := byID[id]; ok {
			out = append(out, e)
		}
	}
	return out
}

// invalidated reports whether the container was mutated outside the session
// or a snapshot entity vanished; such sessions are aborted without commit.
func (c *Controller) invalidated(s *DragSession) bool {
	if c.container.Generation() != s.generation {
		return true
	}
	if len(s.Snapshot) > 0 {
		alive := make(map[int]bool)
		for _, e := range c.container.Entities() {
			alive[e.ID] = true
		}
		for _, e := range s.Snapshot {
			if !alive[e.ID] {
				return true
			}
		}
	}
	return false
}

func (c *Controller) clampBeat(beat float64) float64 {
	if b := c.container.Bounds(); b.Bounded {
		return clampF(beat, 0, b.Duration)
	}
	return max(beat, 0)
}
