package editor_test

import (
	"math"
	"testing"

	"github.com/ajankelo/claviature/editor"
)

func TestViewportRoundTrip(t *testing.T) {
	v := editor.Viewport{PxPerBeat: 32, PxPerLane: 16, ScrollX: 100, ScrollY: 50}
	c, ok := v.ToContent(editor.Point{X: 67.2, Y: 30})
	if !ok {
		t.Fatalf("mapping failed for a healthy viewport")
	}
	p, ok := v.FromContent(c)
	if !ok {
		t.Fatalf("inverse mapping failed")
	}
	if math.Abs(float64(p.X)-67.2) > 1e-3 || math.Abs(float64(p.Y)-30) > 1e-3 {
		t.Fatalf("round trip moved the point to %v", p)
	}
}

func TestViewportDegenerate(t *testing.T) {
	v := editor.Viewport{PxPerBeat: 0, PxPerLane: 16}
	if _, ok := v.ToContent(editor.Point{X: 10, Y: 10}); ok {
		t.Fatalf("zero-extent viewport must return no mapping")
	}
	v = editor.Viewport{PxPerBeat: 32, PxPerLane: -1}
	if _, ok := v.ToContent(editor.Point{X: 10, Y: 10}); ok {
		t.Fatalf("negative zoom must return no mapping")
	}
}

func TestViewportZoomKeepsAnchor(t *testing.T) {
	v := editor.Viewport{PxPerBeat: 32, PxPerLane: 16, ScrollX: 64}
	anchor := editor.Point{X: 100, Y: 0}
	before, _ := v.ToContent(anchor)
	v.ZoomBeat(anchor, 1)
	after, _ := v.ToContent(anchor)
	if math.Abs(before.Beat-after.Beat) > 1e-6 {
		t.Fatalf("content under the anchor moved from beat %v to %v", before.Beat, after.Beat)
	}
	if v.PxPerBeat != 64 {
		t.Fatalf("zoom step of 1 should double PxPerBeat, got %v", v.PxPerBeat)
	}
}

func TestViewportZoomClamped(t *testing.T) {
	v := editor.Viewport{PxPerBeat: 32, PxPerLane: 16}
	for range 20 {
		v.ZoomBeat(editor.Point{}, 1)
	}
	if v.PxPerBeat != editor.MaxPxPerBeat {
		t.Fatalf("zoom in not clamped: %v", v.PxPerBeat)
	}
	for range 20 {
		v.ZoomBeat(editor.Point{}, -1)
	}
	if v.PxPerBeat != editor.MinPxPerBeat {
		t.Fatalf("zoom out not clamped: %v", v.PxPerBeat)
	}
}

func TestViewportScrollStopsAtOrigin(t *testing.T) {
	v := editor.NewViewport()
	v.Scroll(-1000, -1000)
	if v.ScrollX != 0 || v.ScrollY != 0 {
		t.Fatalf("scrolled past origin: %v %v", v.ScrollX, v.ScrollY)
	}
	v.Scroll(10, 20)
	if v.ScrollX != 10 || v.ScrollY != 20 {
		t.Fatalf("scroll delta not applied: %v %v", v.ScrollX, v.ScrollY)
	}
}
