package editor_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/ajankelo/claviature"
	"github.com/ajankelo/claviature/editor"
)

func TestClickCreateSnapsDown(t *testing.T) {
	s := newScene()
	// click at beat 2.1 in lane 67 (pitch 60 in the roll projection)
	p := s.at(2.1, 67.5)
	s.ctrl.Press(p, editor.Modifiers{})
	s.ctrl.Release(p)
	if len(s.container.entities) != 1 {
		t.Fatalf("expected one created entity, got %d", len(s.container.entities))
	}
	e := s.container.entities[0]
	if e.Start != 2.0 || e.Duration != 1 || e.Lane != 67 {
		t.Fatalf("created %+v, expected start 2.0, duration 1, lane 67", e)
	}
	if !s.sel.Contains(e.ID) {
		t.Fatalf("created entity must be selected")
	}
}

func TestModifiedClickOnEmptySpaceCreatesNothing(t *testing.T) {
	for _, mods := range []editor.Modifiers{{Alt: true}, {Shift: true}, {Shift: true, Alt: true}} {
		s := newScene()
		p := s.at(2.1, 67.5)
		s.ctrl.Press(p, mods)
		s.ctrl.Release(p)
		if len(s.container.entities) != 0 {
			t.Fatalf("click with %+v created %d entities, expected none", mods, len(s.container.entities))
		}
	}
}

func TestClickOnEntityIsIdempotent(t *testing.T) {
	s := newScene(editor.Entity{ID: 1, Start: 2, Duration: 2, Lane: 10})
	before := append([]editor.Entity(nil), s.container.entities...)
	gen := s.container.generation
	p := s.at(3, 10.5)
	s.ctrl.Press(p, editor.Modifiers{})
	s.ctrl.Release(p)
	if !reflect.DeepEqual(before, s.container.entities) || s.container.generation != gen {
		t.Fatalf("sub-threshold press+release on an entity mutated the container")
	}
	if !s.sel.Contains(1) {
		t.Fatalf("clicking an entity must select it")
	}
}

func TestGroupMove(t *testing.T) {
	s := newScene(
		editor.Entity{ID: 1, Start: 0, Duration: 1, Lane: 10},
		editor.Entity{ID: 2, Start: 2, Duration: 1, Lane: 10},
	)
	s.sel.Replace(1, 2)
	s.drag(s.at(0.5, 10.5), s.at(1.5, 10.5), editor.Modifiers{})
	e1, _ := s.find(1)
	e2, _ := s.find(2)
	if e1.Start != 1 || e2.Start != 3 {
		t.Fatalf("group move by +1: got starts %v and %v", e1.Start, e2.Start)
	}
	if e1.Duration != 1 || e2.Duration != 1 {
		t.Fatalf("move must not touch durations")
	}
}

func TestMoveClampsEachEntity(t *testing.T) {
	s := newScene(
		editor.Entity{ID: 1, Start: 0, Duration: 1, Lane: 0},
		editor.Entity{ID: 2, Start: 2, Duration: 1, Lane: 10},
	)
	s.sel.Replace(1, 2)
	// drag entity 2 left by 4 beats and up out of the lane range
	s.drag(s.at(2.5, 10.5), s.at(-1.5, -5), editor.Modifiers{})
	e1, _ := s.find(1)
	e2, _ := s.find(2)
	if e1.Start != 0 || e2.Start != 0 {
		t.Fatalf("starts must clamp at 0, got %v and %v", e1.Start, e2.Start)
	}
	if e1.Lane != 0 {
		t.Fatalf("lane must clamp at 0, got %d", e1.Lane)
	}
}

func TestMoveAcrossLanes(t *testing.T) {
	s := newScene(editor.Entity{ID: 1, Start: 2, Duration: 1, Lane: 10})
	s.drag(s.at(2.5, 10.5), s.at(2.5, 13.5), editor.Modifiers{})
	e, _ := s.find(1)
	if e.Lane != 13 || e.Start != 2 {
		t.Fatalf("cross-lane move got lane %d start %v", e.Lane, e.Start)
	}
}

func TestResizeEnd(t *testing.T) {
	s := newScene(editor.Entity{ID: 1, Start: 0, Duration: 2, Lane: 10})
	from := editor.Point{X: 63, Y: 168} // within the end-edge margin of x=64
	s.drag(from, editor.Point{X: 79, Y: 168}, editor.Modifiers{})
	e, _ := s.find(1)
	if e.Duration != 2.5 || e.Start != 0 {
		t.Fatalf("resize end by +0.5 got start %v duration %v", e.Start, e.Duration)
	}
}

func TestResizeStartClampsToMinDuration(t *testing.T) {
	s := newScene(editor.Entity{ID: 1, Start: 2, Duration: 1, Lane: 10})
	from := editor.Point{X: 65, Y: 168} // within the start-edge margin of x=64
	// drag far right, past the entity end
	s.drag(from, editor.Point{X: 300, Y: 168}, editor.Modifiers{})
	e, _ := s.find(1)
	if math.Abs(e.Duration-claviature.MinDuration) > 1e-9 {
		t.Fatalf("resize start must leave the minimum duration, got %v", e.Duration)
	}
	if math.Abs(e.End()-3) > 1e-9 {
		t.Fatalf("resize start must keep the end fixed, end moved to %v", e.End())
	}
}

func TestResizeFoldsAnchorIntoSelection(t *testing.T) {
	s := newScene(
		editor.Entity{ID: 1, Start: 0, Duration: 2, Lane: 10},
		editor.Entity{ID: 2, Start: 4, Duration: 2, Lane: 12},
	)
	s.sel.Replace(2)
	// grab the unselected entity 1 by its end edge without shift
	s.ctrl.Press(editor.Point{X: 63, Y: 168}, editor.Modifiers{})
	if !reflect.DeepEqual(s.sel.IDs(), []int{1}) {
		t.Fatalf("anchor must replace the selection, got %v", s.sel.IDs())
	}
	s.ctrl.Move(editor.Point{X: 79, Y: 168})
	s.ctrl.Release(editor.Point{X: 79, Y: 168})
	e1, _ := s.find(1)
	e2, _ := s.find(2)
	if e1.Duration != 2.5 || e2.Duration != 2 {
		t.Fatalf("only the folded selection resizes, got %v and %v", e1.Duration, e2.Duration)
	}
}

func TestAltDragDuplicates(t *testing.T) {
	s := newScene(editor.Entity{ID: 1, Start: 0, Duration: 1, Lane: 10})
	s.sel.Replace(1)
	s.drag(s.at(0.5, 10.5), s.at(4.5, 10.5), editor.Modifiers{Alt: true})
	if len(s.container.entities) != 2 {
		t.Fatalf("alt-drag must add one entity, got %d", len(s.container.entities))
	}
	orig, _ := s.find(1)
	if orig.Start != 0 || orig.Duration != 1 {
		t.Fatalf("original moved to %+v", orig)
	}
	var clone editor.Entity
	for _, e := range s.container.entities {
		if e.ID != 1 {
			clone = e
		}
	}
	if clone.Start != 4 || clone.Duration != 1 || clone.Lane != 10 {
		t.Fatalf("clone at %+v, expected start 4", clone)
	}
	if !reflect.DeepEqual(s.sel.IDs(), []int{clone.ID}) {
		t.Fatalf("selection must follow the clone, got %v", s.sel.IDs())
	}
}

func TestAltClickRollsBack(t *testing.T) {
	s := newScene(editor.Entity{ID: 1, Start: 0, Duration: 1, Lane: 10})
	s.sel.Replace(1)
	p := s.at(0.5, 10.5)
	s.ctrl.Press(p, editor.Modifiers{Alt: true})
	s.ctrl.Release(p)
	if len(s.container.entities) != 1 {
		t.Fatalf("sub-threshold alt-click must not leave clones, got %d entities", len(s.container.entities))
	}
	if !reflect.DeepEqual(s.sel.IDs(), []int{1}) {
		t.Fatalf("selection must be restored, got %v", s.sel.IDs())
	}
}

func TestCancelDiscardsGesture(t *testing.T) {
	s := newScene(editor.Entity{ID: 1, Start: 2, Duration: 1, Lane: 10})
	before := append([]editor.Entity(nil), s.container.entities...)
	s.ctrl.Press(s.at(2.5, 10.5), editor.Modifiers{})
	s.ctrl.Move(s.at(5.5, 10.5))
	s.ctrl.Cancel()
	if !reflect.DeepEqual(before, s.container.entities) {
		t.Fatalf("cancel must leave the container untouched")
	}
	if s.ctrl.Session() != nil {
		t.Fatalf("controller must be idle after cancel")
	}
	// a release after cancel does nothing
	s.ctrl.Release(s.at(5.5, 10.5))
	if !reflect.DeepEqual(before, s.container.entities) {
		t.Fatalf("release after cancel mutated the container")
	}
}

func TestCancelRollsBackDuplicate(t *testing.T) {
	s := newScene(editor.Entity{ID: 1, Start: 0, Duration: 1, Lane: 10})
	s.sel.Replace(1)
	s.ctrl.Press(s.at(0.5, 10.5), editor.Modifiers{Alt: true})
	s.ctrl.Move(s.at(3.5, 10.5))
	s.ctrl.Cancel()
	if len(s.container.entities) != 1 {
		t.Fatalf("cancel must remove the clones, got %d entities", len(s.container.entities))
	}
	if !reflect.DeepEqual(s.sel.IDs(), []int{1}) {
		t.Fatalf("cancel must restore the selection, got %v", s.sel.IDs())
	}
}

func TestMarqueeSelects(t *testing.T) {
	s := newScene(
		editor.Entity{ID: 1, Start: 1, Duration: 1, Lane: 5},
		editor.Entity{ID: 2, Start: 3, Duration: 1, Lane: 6},
		editor.Entity{ID: 3, Start: 6, Duration: 1, Lane: 20},
	)
	s.drag(s.at(0.5, 4.5), s.at(4.5, 7), editor.Modifiers{})
	if !reflect.DeepEqual(s.sel.IDs(), []int{1, 2}) {
		t.Fatalf("marquee selected %v, expected [1 2]", s.sel.IDs())
	}
	if len(s.container.entities) != 3 {
		t.Fatalf("marquee must not create entities")
	}
}

func TestMarqueeShiftUnions(t *testing.T) {
	s := newScene(
		editor.Entity{ID: 1, Start: 1, Duration: 1, Lane: 5},
		editor.Entity{ID: 2, Start: 6, Duration: 1, Lane: 20},
	)
	s.sel.Replace(2)
	s.drag(s.at(0.5, 4.5), s.at(2.5, 6), editor.Modifiers{Shift: true})
	if !reflect.DeepEqual(s.sel.IDs(), []int{2, 1}) {
		t.Fatalf("shift marquee must union, got %v", s.sel.IDs())
	}
}

func TestExternalMutationAbortsSession(t *testing.T) {
	s := newScene(editor.Entity{ID: 1, Start: 2, Duration: 1, Lane: 10})
	before := append([]editor.Entity(nil), s.container.entities...)
	s.ctrl.Press(s.at(2.5, 10.5), editor.Modifiers{})
	s.container.externalMutation()
	s.ctrl.Move(s.at(5.5, 10.5))
	if s.ctrl.Session() != nil {
		t.Fatalf("session must abort when the container changes under it")
	}
	s.ctrl.Release(s.at(5.5, 10.5))
	if !reflect.DeepEqual(before, s.container.entities) {
		t.Fatalf("aborted session must not commit")
	}
}

func TestPlayheadDrag(t *testing.T) {
	s := newScene()
	s.host.playhead = 2 // strip at x=64
	s.ctrl.Press(editor.Point{X: 64, Y: 100}, editor.Modifiers{})
	s.ctrl.Move(s.at(5, 6))
	if s.host.playhead != 5 {
		t.Fatalf("playhead drag applies live, got %v", s.host.playhead)
	}
	s.ctrl.Release(s.at(5, 6))
	if s.ctrl.Session() != nil {
		t.Fatalf("controller must be idle after release")
	}
}

func TestBoundaryResize(t *testing.T) {
	s := newScene(editor.Entity{ID: 1, Start: 4, Duration: 1, Lane: 10})
	// grab the container end boundary at x=256 and drag +2 beats
	s.drag(editor.Point{X: 256, Y: 100}, editor.Point{X: 320, Y: 100}, editor.Modifiers{})
	if s.container.resizedEnd != 2 || s.container.resizedStart != 0 {
		t.Fatalf("boundary resize got start %v end %v, expected end +2",
			s.container.resizedStart, s.container.resizedEnd)
	}
}

func TestPreviewDoesNotWrite(t *testing.T) {
	s := newScene(editor.Entity{ID: 1, Start: 2, Duration: 1, Lane: 10})
	gen := s.container.generation
	s.ctrl.Press(s.at(2.5, 10.5), editor.Modifiers{})
	s.ctrl.Move(s.at(4.5, 10.5))
	preview := s.ctrl.Preview()
	if len(preview) != 1 || preview[0].Start != 4 {
		t.Fatalf("preview should show the pending position, got %+v", preview)
	}
	if s.container.generation != gen {
		t.Fatalf("moving must not write to the container before release")
	}
	e, _ := s.find(1)
	if e.Start != 2 {
		t.Fatalf("container mutated mid-gesture")
	}
	s.ctrl.Release(s.at(4.5, 10.5))
	e, _ = s.find(1)
	if e.Start != 4 {
		t.Fatalf("commit missing, start %v", e.Start)
	}
}

func TestCommittedPositionsOnGrid(t *testing.T) {
	s := newScene(editor.Entity{ID: 1, Start: 1, Duration: 1, Lane: 10})
	s.drag(s.at(1.3, 10.5), s.at(3.413, 10.7), editor.Modifiers{})
	e, _ := s.find(1)
	mod := math.Mod(e.Start, 0.25)
	if math.Min(mod, 0.25-mod) > 1e-9 {
		t.Fatalf("committed start %v is not on the 0.25 grid", e.Start)
	}
}
