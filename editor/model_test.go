package editor_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/ajankelo/claviature"
	"github.com/ajankelo/claviature/editor"
)

func TestUndoRedoRestoresNotes(t *testing.T) {
	m := newTestModel(t)
	m.OpenBlock(1)
	roll := m.Roll()
	roll.Selection.Replace(2)
	roll.DeleteSelected()
	if b, _ := m.ActiveBlock(); len(b.Notes) != 1 {
		t.Fatalf("delete left %d notes", len(b.Notes))
	}
	if !m.Undo().Enabled() {
		t.Fatalf("undo must be enabled after a change")
	}
	m.Undo().Do()
	if b, _ := m.ActiveBlock(); len(b.Notes) != 2 {
		t.Fatalf("undo restored %d notes, expected 2", len(b.Notes))
	}
	m.Redo().Do()
	if b, _ := m.ActiveBlock(); len(b.Notes) != 1 {
		t.Fatalf("redo left %d notes, expected 1", len(b.Notes))
	}
}

func TestUndoCoalescesMinorChanges(t *testing.T) {
	m := newTestModel(t)
	bpm := m.BPM()
	for _, v := range []float64{121, 122, 123} {
		bpm.SetValue(v)
	}
	// three minor tweaks of the same kind share one undo entry
	m.Undo().Do()
	if got := m.BPM().Value(); got != 120 {
		t.Fatalf("undo landed on BPM %v, expected 120", got)
	}
	m.Redo().Do()
	if got := m.BPM().Value(); got != 123 {
		t.Fatalf("redo landed on BPM %v, expected 123", got)
	}
}

func TestCancelledDuplicateDragLeavesNoUndoEntry(t *testing.T) {
	m := newTestModel(t)
	tl := m.Timeline()
	tl.Selection.Replace(1)
	tl.Control.Press(editor.Point{X: 128, Y: 16}, editor.Modifiers{Alt: true})
	tl.Control.Move(editor.Point{X: 192, Y: 16})
	tl.Control.Cancel()
	if n := len(m.Song().Tracks[0].Blocks); n != 1 {
		t.Fatalf("cancel left %d blocks, expected the original only", n)
	}
	// the cancelled gesture must not be undoable: one undo steps straight
	// back past the setup, never through a state holding the clones
	m.Undo().Do()
	total := 0
	for _, tr := range m.Song().Tracks {
		total += len(tr.Blocks)
	}
	if total != 0 {
		t.Fatalf("undo after a cancelled duplicate re-materialized %d blocks", total)
	}
	if m.Undo().Enabled() {
		t.Fatalf("undo history must be back at its initial depth")
	}
}

func TestTimelineDragReparentsBlock(t *testing.T) {
	m := newTestModel(t)
	tl := m.Timeline()
	// block rect spans x 0..256, lane rows are 32 px tall
	tl.Control.Press(editor.Point{X: 128, Y: 16}, editor.Modifiers{})
	tl.Control.Move(editor.Point{X: 128, Y: 48})
	tl.Control.Release(editor.Point{X: 128, Y: 48})
	tracks := m.Song().Tracks
	if len(tracks[0].Blocks) != 0 {
		t.Fatalf("block must leave the first track, %d left", len(tracks[0].Blocks))
	}
	if len(tracks[1].Blocks) != 1 {
		t.Fatalf("block must land on the second track")
	}
	b := tracks[1].Blocks[0]
	if b.ID != 1 || b.Name != "A" || len(b.Notes) != 2 {
		t.Fatalf("reparenting must keep the block payload, got %+v", b)
	}
	if b.Start != 0 {
		t.Fatalf("pure lane move must not shift the start, got %v", b.Start)
	}
	m.Undo().Do()
	tracks = m.Song().Tracks
	if len(tracks[0].Blocks) != 1 || len(tracks[1].Blocks) != 0 {
		t.Fatalf("undo must move the block back")
	}
}

func TestRollBoundaryResizeRebasesNotes(t *testing.T) {
	m := newTestModel(t)
	m.OpenBlock(1)
	m.SetPlayheadBeat(100) // park the playhead strip out of the way
	roll := m.Roll()
	roll.Control.Press(editor.Point{X: 2, Y: 50}, editor.Modifiers{})
	roll.Control.Move(editor.Point{X: 34, Y: 50})
	roll.Control.Release(editor.Point{X: 34, Y: 50})
	b, _ := m.ActiveBlock()
	if b.Start != 1 || b.Duration != 7 {
		t.Fatalf("block at %v for %v beats, expected 1 and 7", b.Start, b.Duration)
	}
	// note starts stay put in song time, so they shift down in block time
	if b.Notes[0].Start != 0 || b.Notes[1].Start != 1 {
		t.Fatalf("notes rebased to %v and %v, expected 0 and 1", b.Notes[0].Start, b.Notes[1].Start)
	}
}

// checkInvariants asserts the properties every edit must preserve no matter
// how the gesture went: unique ids, nonnegative starts, minimum durations,
// pitches in range, per-track block order and selections that only name
// live entities.
func checkInvariants(t *testing.T, m *editor.Model) {
	t.Helper()
	seen := make(map[int]bool)
	for ti, tr := range m.Song().Tracks {
		prev := math.Inf(-1)
		for _, b := range tr.Blocks {
			if seen[b.ID] {
				t.Fatalf("duplicate id %d", b.ID)
			}
			seen[b.ID] = true
			if b.Start < 0 || b.Duration < claviature.MinDuration {
				t.Fatalf("block %d degenerate: start %v duration %v", b.ID, b.Start, b.Duration)
			}
			if b.Start < prev {
				t.Fatalf("track %d blocks out of order", ti)
			}
			prev = b.Start
			for _, n := range b.Notes {
				if seen[n.ID] {
					t.Fatalf("duplicate id %d", n.ID)
				}
				seen[n.ID] = true
				if n.Start < 0 || n.Duration < claviature.MinDuration {
					t.Fatalf("note %d degenerate: start %v duration %v", n.ID, n.Start, n.Duration)
				}
				if n.Pitch < 0 || n.Pitch > claviature.MaxPitch {
					t.Fatalf("note %d pitch %d out of range", n.ID, n.Pitch)
				}
			}
		}
	}
	if b, ok := m.ActiveBlock(); ok {
		alive := make(map[int]bool)
		for _, n := range b.Notes {
			alive[n.ID] = true
		}
		for _, id := range m.Roll().Selection.IDs() {
			if !alive[id] {
				t.Fatalf("roll selection holds dead id %d", id)
			}
		}
	}
	alive := make(map[int]bool)
	for _, tr := range m.Song().Tracks {
		for _, b := range tr.Blocks {
			alive[b.ID] = true
		}
	}
	for _, id := range m.Timeline().Selection.IDs() {
		if !alive[id] {
			t.Fatalf("timeline selection holds dead id %d", id)
		}
	}
}

func TestRollRandomWalkInvariants(t *testing.T) {
	m := newTestModel(t)
	m.OpenBlock(1)
	roll := m.Roll()
	rng := rand.New(rand.NewSource(42))
	pt := func() editor.Point {
		return editor.Point{
			X: float32(rng.Float64()*340 - 20),
			Y: float32(rng.Float64()*220 - 20),
		}
	}
	var clip []byte
	for i := 0; i < 400; i++ {
		switch rng.Intn(10) {
		case 0:
			m.SetPlayheadBeat(rng.Float64() * 8)
		case 1:
			m.Undo().Do()
		case 2:
			m.Redo().Do()
		case 3:
			if data, ok := roll.CopyYAML(); ok {
				clip = data
			}
		case 4:
			if clip != nil {
				roll.PasteYAML(clip)
			}
		case 5:
			roll.DeleteSelected()
		case 6:
			roll.Escape()
		default:
			mods := editor.Modifiers{Shift: rng.Intn(2) == 0, Alt: rng.Intn(4) == 0}
			roll.Control.Press(pt(), mods)
			for j := rng.Intn(3); j > 0; j-- {
				roll.Control.Move(pt())
			}
			if rng.Intn(5) == 0 {
				roll.Control.Cancel()
			} else {
				roll.Control.Release(pt())
			}
		}
		checkInvariants(t, m)
	}
}
