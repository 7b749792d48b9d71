package editor

import "math"

// Zoom limits in pixels per unit. PxPerBeat covers the primary axis,
// PxPerLane the secondary.
const (
	MinPxPerBeat = 4
	MaxPxPerBeat = 256
	MinPxPerLane = 4
	MaxPxPerLane = 48
)

type (
	// Point is a position in editor-local pixels.
	Point struct {
		X, Y float32
	}

	// ContentPoint is a position in content space: Beat along the primary
	// axis and a continuous Lane coordinate along the secondary axis (lane n
	// covers [n, n+1)).
	ContentPoint struct {
		Beat float64
		Lane float64
	}

	// Viewport maps between screen pixels and content space. Zooms and
	// scroll offsets are the whole state; there is no cached transform.
	Viewport struct {
		PxPerBeat float32
		PxPerLane float32
		ScrollX   float32
		ScrollY   float32
	}
)

// NewViewport returns a viewport at the default zoom, scrolled to origin.
func NewViewport() Viewport {
	return Viewport{PxPerBeat: 32, PxPerLane: 16}
}

// ToContent maps an editor-local pixel position to content space. ok is
// false when the viewport is degenerate or the result is non-finite; callers
// must treat that as "no mapping" and do nothing.
func (v Viewport) ToContent(p Point) (c ContentPoint, ok bool) {
	if v.PxPerBeat <= 0 || v.PxPerLane <= 0 {
		return ContentPoint{}, false
	}
	c.Beat = float64((p.X + v.ScrollX) / v.PxPerBeat)
	c.Lane = float64((p.Y + v.ScrollY) / v.PxPerLane)
	if !finite(c.Beat) || !finite(c.Lane) {
		return ContentPoint{}, false
	}
	return c, true
}

// FromContent maps a content position to editor-local pixels.
func (v Viewport) FromContent(c ContentPoint) (p Point, ok bool) {
	p.X = float32(c.Beat)*v.PxPerBeat - v.ScrollX
	p.Y = float32(c.Lane)*v.PxPerLane - v.ScrollY
	if !finite(float64(p.X)) || !finite(float64(p.Y)) {
		return Point{}, false
	}
	return p, true
}

// BeatToPx maps a beat to an editor-local x coordinate.
func (v Viewport) BeatToPx(beat float64) float32 {
	return float32(beat)*v.PxPerBeat - v.ScrollX
}

// LaneToPx maps a lane index to the editor-local y of its top edge.
func (v Viewport) LaneToPx(lane int) float32 {
	return float32(lane)*v.PxPerLane - v.ScrollY
}

// ZoomBeat changes the primary zoom by 2^steps, keeping the content under
// the anchor pixel visually stationary. The scroll offset is recomputed as
// anchor content position times the new scale minus the anchor screen
// position. Degenerate states are left untouched.
func (v *Viewport) ZoomBeat(anchor Point, steps float32) {
	c, ok := v.ToContent(anchor)
	if !ok {
		return
	}
	scale := float32(math.Pow(2, float64(steps)))
	v.PxPerBeat = clampF32(v.PxPerBeat*scale, MinPxPerBeat, MaxPxPerBeat)
	v.ScrollX = float32(c.Beat)*v.PxPerBeat - anchor.X
}

// ZoomLane is ZoomBeat for the secondary axis.
func (v *Viewport) ZoomLane(anchor Point, steps float32) {
	c, ok := v.ToContent(anchor)
	if !ok {
		return
	}
	scale := float32(math.Pow(2, float64(steps)))
	v.PxPerLane = clampF32(v.PxPerLane*scale, MinPxPerLane, MaxPxPerLane)
	v.ScrollY = float32(c.Lane)*v.PxPerLane - anchor.Y
}

// Scroll pans the viewport by the given pixel deltas, never past the
// content origin.
func (v *Viewport) Scroll(dx, dy float32) {
	v.ScrollX = max(v.ScrollX+dx, 0)
	v.ScrollY = max(v.ScrollY+dy, 0)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func clampF32(a, min, max float32) float32 {
	if a < min {
		return min
	}
	if a > max {
		return max
	}
	return a
}
