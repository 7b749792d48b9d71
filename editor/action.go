package editor

import (
	"fmt"

	"github.com/ajankelo/claviature"
)

type (
	// Action describes a user action that can be performed on the model,
	// initiated by calling the Do() method, usually from a button or a key
	// binding. Action advertises whether it is enabled, so the UI can gray
	// out buttons when the underlying operation is not allowed. The
	// underlying Doer can optionally implement Enabler; if it does not, the
	// action is always allowed.
	Action struct {
		doer Doer
	}

	Doer interface {
		Do()
	}

	Enabler interface {
		Enabled() bool
	}
)

func MakeAction(doer Doer) Action {
	return Action{doer: doer}
}

func (a Action) Do() {
	if e, ok := a.doer.(Enabler); ok && !e.Enabled() {
		return
	}
	if a.doer != nil {
		a.doer.Do()
	}
}

func (a Action) Enabled() bool {
	if a.doer == nil {
		return false
	}
	e, ok := a.doer.(Enabler)
	if !ok {
		return true
	}
	return e.Enabled()
}

// undo
type undo Model

func (m *Model) Undo() Action { return MakeAction((*undo)(m)) }
func (m *undo) Enabled() bool { return len(m.d.UndoStack) > 0 }
func (m *undo) Do() {
	mm := (*Model)(m)
	if len(m.d.RedoStack) >= maxUndo {
		m.d.RedoStack = m.d.RedoStack[1:]
	}
	m.d.RedoStack = append(m.d.RedoStack, m.d.Song.Copy())
	m.d.Song = m.d.UndoStack[len(m.d.UndoStack)-1]
	m.d.UndoStack = m.d.UndoStack[:len(m.d.UndoStack)-1]
	m.d.PrevUndoKind = ""
	m.d.ChangedSinceSave = true
	mm.finishChange()
}

// redo
type redo Model

func (m *Model) Redo() Action { return MakeAction((*redo)(m)) }
func (m *redo) Enabled() bool { return len(m.d.RedoStack) > 0 }
func (m *redo) Do() {
	mm := (*Model)(m)
	if len(m.d.UndoStack) >= maxUndo {
		m.d.UndoStack = m.d.UndoStack[1:]
	}
	m.d.UndoStack = append(m.d.UndoStack, m.d.Song.Copy())
	m.d.Song = m.d.RedoStack[len(m.d.RedoStack)-1]
	m.d.RedoStack = m.d.RedoStack[:len(m.d.RedoStack)-1]
	m.d.PrevUndoKind = ""
	m.d.ChangedSinceSave = true
	mm.finishChange()
}

// togglePlay
type togglePlay Model

func (m *Model) TogglePlay() Action { return MakeAction((*togglePlay)(m)) }
func (m *togglePlay) Do() {
	mm := (*Model)(m)
	mm.playing = !mm.playing
	TrySend(mm.broker.ToPlayer, MsgToPlayer{HasPlaying: true, Playing: mm.playing})
}

// rewind
type rewind Model

func (m *Model) Rewind() Action { return MakeAction((*rewind)(m)) }
func (m *rewind) Do()           { (*Model)(m).SetPlayheadBeat(0) }

// addTrack
type addTrack Model

func (m *Model) AddTrack() Action { return MakeAction((*addTrack)(m)) }
func (m *addTrack) Do() {
	mm := (*Model)(m)
	defer mm.change("AddTrack", MajorChange)()
	m.d.Song.Tracks = append(m.d.Song.Tracks, claviature.Track{
		Name: fmt.Sprintf("Track %d", len(m.d.Song.Tracks)+1),
	})
	m.d.ActiveTrack = len(m.d.Song.Tracks) - 1
}

// deleteTrack
type deleteTrack Model

func (m *Model) DeleteTrack() Action { return MakeAction((*deleteTrack)(m)) }
func (m *deleteTrack) Enabled() bool { return len(m.d.Song.Tracks) > 1 }
func (m *deleteTrack) Do() {
	mm := (*Model)(m)
	defer mm.change("DeleteTrack", MajorChange)()
	i := clamp(m.d.ActiveTrack, 0, len(m.d.Song.Tracks)-1)
	m.d.Song.Tracks = append(m.d.Song.Tracks[:i], m.d.Song.Tracks[i+1:]...)
}

// newSong
type newSong Model

func (m *Model) NewSong() Action { return MakeAction((*newSong)(m)) }
func (m *newSong) Do() {
	mm := (*Model)(m)
	defer mm.change("NewSong", MajorChange)()
	m.d.Song = claviature.NewSong()
	m.d.ActiveBlock = -1
	m.d.ActiveTrack = 0
	m.d.Playhead = 0
	m.d.FilePath = ""
	m.d.MaxID = m.d.Song.MaxID()
}

// closeBlock
type closeBlock Model

func (m *Model) CloseBlockAction() Action { return MakeAction((*closeBlock)(m)) }
func (m *closeBlock) Enabled() bool       { return m.d.ActiveBlock >= 0 }
func (m *closeBlock) Do()                 { (*Model)(m).CloseBlock() }
