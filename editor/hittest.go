package editor

// Pixel margins for hit classification. An entity edge reacts within
// EdgeMargin pixels inside the entity rectangle; the playhead and the
// container boundary lines react within their own margins on either side.
const (
	EdgeMargin     = 4
	PlayheadMargin = 5
	BoundaryMargin = 4
)

// HitZone tells what part of the editor a point landed on.
type HitZone int

const (
	HitNone HitZone = iota
	HitBody
	HitStart
	HitEnd
	HitPlayhead
	HitBoundaryStart
	HitBoundaryEnd
)

// Hit is the result of a hit test. Entity is meaningful only for HitBody,
// HitStart and HitEnd.
type Hit struct {
	Zone   HitZone
	Entity Entity
}

// HitTest resolves an editor-local point against the container. The
// playhead strip and, for bounded containers, the container's own boundary
// strips take precedence over entities. Entities already selected are
// checked first in selection order, then the rest in container order, so an
// overlapped selected entity wins. Returns Zone HitNone when nothing is
// under the point or the viewport is degenerate.
func HitTest(p Point, v Viewport, c Container, sel *Selection, playhead float64) Hit {
	if _, ok := v.ToContent(p); !ok {
		return Hit{}
	}
	if px := v.BeatToPx(playhead); absF32(p.X-px) <= PlayheadMargin {
		return Hit{Zone: HitPlayhead}
	}
	if b := c.Bounds(); b.Bounded {
		if absF32(p.X-v.BeatToPx(0)) <= BoundaryMargin {
			return Hit{Zone: HitBoundaryStart}
		}
		if absF32(p.X-v.BeatToPx(b.Duration)) <= BoundaryMargin {
			return Hit{Zone: HitBoundaryEnd}
		}
	}
	entities := c.Entities()
	byID := make(map[int]Entity, len(entities))
	for _, e := range entities {
		byID[e.ID] = e
	}
	for _, id := range sel.IDs() {
		if e, ok := byID[id]; ok {
			if h, ok := hitEntity(p, v, e); ok {
				return h
			}
		}
	}
	for _, e := range entities {
		if sel.Contains(e.ID) {
			continue
		}
		if h, ok := hitEntity(p, v, e); ok {
			return h
		}
	}
	return Hit{}
}

func hitEntity(p Point, v Viewport, e Entity) (Hit, bool) {
	x1 := v.BeatToPx(e.Start)
	x2 := v.BeatToPx(e.End())
	y1 := v.LaneToPx(e.Lane)
	y2 := y1 + v.PxPerLane
	if p.X < x1 || p.X > x2 || p.Y < y1 || p.Y > y2 {
		return Hit{}, false
	}
	zone := HitBody
	switch {
	case p.X <= x1+EdgeMargin:
		zone = HitStart
	case p.X >= x2-EdgeMargin:
		zone = HitEnd
	}
	return Hit{Zone: zone, Entity: e}, true
}

func absF32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
