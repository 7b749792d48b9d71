package editor

import (
	"math"

	"github.com/ajankelo/claviature"
	"gopkg.in/yaml.v3"
)

// Clipboard payloads are yaml documents of detached value copies, so they
// travel through the system clipboard as plain text and can be pasted
// across claviature instances. Paste normalizes against the earliest start
// in the payload and re-bases at the playhead.
type (
	noteClip struct {
		ClaviatureNotes []claviature.Note `yaml:",flow"`
	}

	blockClipItem struct {
		Lane  int
		Block claviature.Block
	}

	blockClip struct {
		ClaviatureBlocks []blockClipItem
	}
)

// CopyYAML marshals the selected notes; ok is false when nothing is
// selected.
func (e *RollEditor) CopyYAML() ([]byte, bool) {
	b, active := e.m.ActiveBlock()
	if !active || e.Selection.Len() == 0 {
		return nil, false
	}
	var clip noteClip
	for _, n := range b.Notes {
		if e.Selection.Contains(n.ID) {
			clip.ClaviatureNotes = append(clip.ClaviatureNotes, n)
		}
	}
	data, err := yaml.Marshal(clip)
	if err != nil {
		return nil, false
	}
	return data, true
}

// PasteYAML inserts clipboard notes at the playhead with fresh ids. Notes
// that would stick out of the block are dropped; the survivors become the
// selection and the playhead advances to the furthest pasted end.
func (e *RollEditor) PasteYAML(data []byte) bool {
	var clip noteClip
	if err := yaml.Unmarshal(data, &clip); err != nil || len(clip.ClaviatureNotes) == 0 {
		return false
	}
	m := e.m
	b, active := m.ActiveBlock()
	if !active {
		return false
	}
	defer m.change("PasteNotes", MajorChange)()
	minStart := math.Inf(1)
	for _, n := range clip.ClaviatureNotes {
		minStart = min(minStart, n.Start)
	}
	ref := clampF((*rollHost)(m).Playhead(), 0, b.Duration)
	var ids []int
	furthest := ref
	for _, n := range clip.ClaviatureNotes {
		n.Start = n.Start - minStart + ref
		if n.End() > b.Duration {
			continue
		}
		n.ID = m.nextID()
		b.Notes = append(b.Notes, n)
		ids = append(ids, n.ID)
		furthest = max(furthest, n.End())
	}
	if len(ids) == 0 {
		m.changeCancel = true
		return false
	}
	e.Selection.Replace(ids...)
	(*rollHost)(m).SetPlayhead(furthest)
	return true
}

// DeleteSelected removes every selected note and clears the selection.
func (e *RollEditor) DeleteSelected() {
	b, active := e.m.ActiveBlock()
	if !active || e.Selection.Len() == 0 {
		return
	}
	defer e.m.change("DeleteNotes", MajorChange)()
	kept := b.Notes[:0]
	for _, n := range b.Notes {
		if !e.Selection.Contains(n.ID) {
			kept = append(kept, n)
		}
	}
	b.Notes = kept
	e.Selection.Clear()
}

// SelectAll selects every note in the open block.
func (e *RollEditor) SelectAll() {
	b, active := e.m.ActiveBlock()
	if !active {
		return
	}
	ids := make([]int, len(b.Notes))
	for i, n := range b.Notes {
		ids[i] = n.ID
	}
	e.Selection.Replace(ids...)
}

// Escape cancels an in-flight gesture if one exists, else clears the
// selection.
func (e *RollEditor) Escape() {
	if e.Control.Session() != nil {
		e.Control.Cancel()
		return
	}
	e.Selection.Clear()
}

// CopyYAML marshals the selected blocks with their track lanes.
func (e *TimelineEditor) CopyYAML() ([]byte, bool) {
	if e.Selection.Len() == 0 {
		return nil, false
	}
	var clip blockClip
	for ti, t := range e.m.d.Song.Tracks {
		for _, b := range t.Blocks {
			if e.Selection.Contains(b.ID) {
				clip.ClaviatureBlocks = append(clip.ClaviatureBlocks, blockClipItem{Lane: ti, Block: b.Copy()})
			}
		}
	}
	data, err := yaml.Marshal(clip)
	if err != nil {
		return nil, false
	}
	return data, true
}

// PasteYAML inserts clipboard blocks at the playhead, keeping their track
// lanes (clamped to existing tracks), with fresh ids for the blocks and
// their notes.
func (e *TimelineEditor) PasteYAML(data []byte) bool {
	var clip blockClip
	if err := yaml.Unmarshal(data, &clip); err != nil || len(clip.ClaviatureBlocks) == 0 {
		return false
	}
	m := e.m
	if len(m.d.Song.Tracks) == 0 {
		return false
	}
	defer m.change("PasteBlocks", MajorChange)()
	minStart := math.Inf(1)
	for _, item := range clip.ClaviatureBlocks {
		minStart = min(minStart, item.Block.Start)
	}
	ref := max(m.d.Playhead, 0)
	var ids []int
	furthest := ref
	for _, item := range clip.ClaviatureBlocks {
		b := item.Block.Copy()
		b.Start = b.Start - minStart + ref
		b.ID = m.nextID()
		for i := range b.Notes {
			b.Notes[i].ID = m.nextID()
		}
		ti := clamp(item.Lane, 0, len(m.d.Song.Tracks)-1)
		m.d.Song.Tracks[ti].Blocks = append(m.d.Song.Tracks[ti].Blocks, b)
		ids = append(ids, b.ID)
		furthest = max(furthest, b.End())
	}
	e.Selection.Replace(ids...)
	m.SetPlayheadBeat(furthest)
	return true
}

// DeleteSelected removes every selected block and clears the selection.
func (e *TimelineEditor) DeleteSelected() {
	if e.Selection.Len() == 0 {
		return
	}
	defer e.m.change("DeleteBlocks", MajorChange)()
	for ti := range e.m.d.Song.Tracks {
		blocks := e.m.d.Song.Tracks[ti].Blocks
		kept := blocks[:0]
		for _, b := range blocks {
			if !e.Selection.Contains(b.ID) {
				kept = append(kept, b)
			}
		}
		e.m.d.Song.Tracks[ti].Blocks = kept
	}
	e.Selection.Clear()
}

// SelectAll selects every block on every track.
func (e *TimelineEditor) SelectAll() {
	var ids []int
	for _, t := range e.m.d.Song.Tracks {
		for _, b := range t.Blocks {
			ids = append(ids, b.ID)
		}
	}
	e.Selection.Replace(ids...)
}

// Escape cancels an in-flight gesture if one exists, else clears the
// selection.
func (e *TimelineEditor) Escape() {
	if e.Control.Session() != nil {
		e.Control.Cancel()
		return
	}
	e.Selection.Clear()
}
