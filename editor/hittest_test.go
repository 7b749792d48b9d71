package editor_test

import (
	"testing"

	"github.com/ajankelo/claviature/editor"
)

func TestHitTestZones(t *testing.T) {
	s := newScene(editor.Entity{ID: 1, Start: 2, Duration: 2, Lane: 10})
	// entity rect spans x 64..128, y 160..176
	for _, tc := range []struct {
		name string
		p    editor.Point
		zone editor.HitZone
	}{
		{"body", editor.Point{X: 96, Y: 168}, editor.HitBody},
		{"start edge", editor.Point{X: 66, Y: 168}, editor.HitStart},
		{"end edge", editor.Point{X: 126, Y: 168}, editor.HitEnd},
		{"above", editor.Point{X: 96, Y: 150}, editor.HitNone},
		{"past end", editor.Point{X: 140, Y: 168}, editor.HitNone},
	} {
		hit := editor.HitTest(tc.p, *s.view, s.container, s.sel, s.host.playhead)
		if hit.Zone != tc.zone {
			t.Errorf("%s: zone = %v, expected %v", tc.name, hit.Zone, tc.zone)
		}
		if tc.zone == editor.HitBody || tc.zone == editor.HitStart || tc.zone == editor.HitEnd {
			if hit.Entity.ID != 1 {
				t.Errorf("%s: hit entity %d, expected 1", tc.name, hit.Entity.ID)
			}
		}
	}
}

func TestHitTestPlayheadPrecedence(t *testing.T) {
	s := newScene(editor.Entity{ID: 1, Start: 2, Duration: 2, Lane: 10})
	s.host.playhead = 3 // x = 96, the middle of the entity
	hit := editor.HitTest(editor.Point{X: 96, Y: 168}, *s.view, s.container, s.sel, s.host.playhead)
	if hit.Zone != editor.HitPlayhead {
		t.Fatalf("playhead strip must win over entities, got %v", hit.Zone)
	}
}

func TestHitTestContainerBoundary(t *testing.T) {
	s := newScene(editor.Entity{ID: 1, Start: 0, Duration: 8, Lane: 10})
	// container start boundary at x=0, end at x=256; both beat entity hits
	hit := editor.HitTest(editor.Point{X: 2, Y: 168}, *s.view, s.container, s.sel, s.host.playhead)
	if hit.Zone != editor.HitBoundaryStart {
		t.Fatalf("start boundary strip must win, got %v", hit.Zone)
	}
	hit = editor.HitTest(editor.Point{X: 254, Y: 168}, *s.view, s.container, s.sel, s.host.playhead)
	if hit.Zone != editor.HitBoundaryEnd {
		t.Fatalf("end boundary strip must win, got %v", hit.Zone)
	}
}

func TestHitTestUnboundedHasNoBoundary(t *testing.T) {
	s := newScene()
	s.container.bounds = editor.Bounds{Lanes: 4}
	hit := editor.HitTest(editor.Point{X: 2, Y: 8}, *s.view, s.container, s.sel, s.host.playhead)
	if hit.Zone != editor.HitNone {
		t.Fatalf("unbounded container has no boundary strips, got %v", hit.Zone)
	}
}

func TestHitTestSelectedFirst(t *testing.T) {
	// two entities fully overlapping; the selected one must win even
	// though it comes later in container order
	s := newScene(
		editor.Entity{ID: 1, Start: 2, Duration: 2, Lane: 10},
		editor.Entity{ID: 2, Start: 2, Duration: 2, Lane: 10},
	)
	p := editor.Point{X: 96, Y: 168}
	hit := editor.HitTest(p, *s.view, s.container, s.sel, s.host.playhead)
	if hit.Entity.ID != 1 {
		t.Fatalf("with nothing selected container order wins, got %d", hit.Entity.ID)
	}
	s.sel.Replace(2)
	hit = editor.HitTest(p, *s.view, s.container, s.sel, s.host.playhead)
	if hit.Entity.ID != 2 {
		t.Fatalf("selected entity must win, got %d", hit.Entity.ID)
	}
}

func TestHitTestDegenerateViewport(t *testing.T) {
	s := newScene(editor.Entity{ID: 1, Start: 2, Duration: 2, Lane: 10})
	s.view.PxPerBeat = 0
	hit := editor.HitTest(editor.Point{X: 96, Y: 168}, *s.view, s.container, s.sel, s.host.playhead)
	if hit.Zone != editor.HitNone {
		t.Fatalf("degenerate viewport must hit nothing, got %v", hit.Zone)
	}
}
