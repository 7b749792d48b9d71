package editor

import (
	"os"

	"github.com/ajankelo/claviature"
)

// Model implements the mutable state for the claviature GUI.
//
// It is owned by the GUI goroutine; the player goroutine owns its own copy
// of the song and the two communicate only through the broker. All editing,
// selection and gesture logic runs synchronously on input events.
type (
	// modelData is the part of the model that is saved to the recovery file.
	modelData struct {
		Song claviature.Song

		// ActiveTrack is the track whose block list the timeline cursor is
		// on; ActiveBlock is the id of the block open in the note editor,
		// or -1 when the timeline is being edited.
		ActiveTrack int
		ActiveBlock int

		Grid     float64
		Playhead float64
		Loop     bool

		MaxID            int
		FilePath         string
		ChangedSinceSave bool

		RecoveryFilePath     string
		ChangedSinceRecovery bool

		PrevUndoKind    string
		UndoSkipCounter int
		UndoStack       []claviature.Song
		RedoStack       []claviature.Song
	}

	Model struct {
		d modelData

		broker  *Broker
		alerts  []Alert
		playing bool

		// generation counts completed container mutations; the gesture
		// controller aborts a session when it moved under it.
		generation int

		changeLevel    int
		changeCancel   bool
		changeSeverity ChangeSeverity
		changeKind     string
		undoSnapshot   claviature.Song

		roll     *RollEditor
		timeline *TimelineEditor

		synther claviature.Synther
	}

	// ChangeSeverity controls undo coalescing: MinorChange lets repeats of
	// the same kind share one undo entry.
	ChangeSeverity int
)

const (
	MinorChange ChangeSeverity = iota
	MajorChange
)

const maxUndo = 256
const undoSkip = 10

func NewModel(broker *Broker, recoveryFilePath string) *Model {
	m := &Model{broker: broker}
	m.d.Song = claviature.NewSong()
	m.d.Grid = claviature.GridDefault
	m.d.ActiveBlock = -1
	m.d.MaxID = m.d.Song.MaxID()
	m.roll = newRollEditor(m)
	m.timeline = newTimelineEditor(m)
	m.d.RecoveryFilePath = recoveryFilePath
	if recoveryFilePath != "" {
		if data, err := os.ReadFile(recoveryFilePath); err == nil {
			m.UnmarshalRecovery(data)
		}
	}
	return m
}

func (m *Model) Roll() *RollEditor         { return m.roll }
func (m *Model) Timeline() *TimelineEditor { return m.timeline }
func (m *Model) Song() *claviature.Song    { return &m.d.Song }
func (m *Model) FilePath() string          { return m.d.FilePath }
func (m *Model) ChangedSinceSave() bool    { return m.d.ChangedSinceSave }

// SetChangedSinceSave is for save paths that bypass SaveSong, e.g. writing
// through a file dialog stream.
func (m *Model) SetChangedSinceSave(value bool) { m.d.ChangedSinceSave = value }

// change brackets a mutation of the model data. Call it at the start of the
// mutation and defer the returned closure; the closure pushes the undo
// entry, prunes selections, bumps the generation counter and notifies the
// player. Nested changes coalesce into the outermost one. Setting
// changeCancel inside the bracket abandons the change without an undo
// entry.
func (m *Model) change(kind string, severity ChangeSeverity) func() {
	if m.changeLevel == 0 {
		m.undoSnapshot = m.d.Song.Copy()
		m.changeCancel = false
		m.changeKind = kind
		m.changeSeverity = severity
	}
	m.changeLevel++
	if severity > m.changeSeverity {
		m.changeSeverity = severity
	}
	return func() {
		m.changeLevel--
		if m.changeLevel > 0 {
			return
		}
		if m.changeCancel {
			return
		}
		m.pushUndo()
		m.d.ChangedSinceSave = true
		m.d.ChangedSinceRecovery = true
		m.finishChange()
	}
}

// finishChange is the bookkeeping every completed mutation shares, whether
// it came through change or through undo/redo.
func (m *Model) finishChange() {
	m.generation++
	m.d.MaxID = max(m.d.MaxID, m.d.Song.MaxID())
	m.d.Song.SortBlocks()
	m.pruneSelections()
	m.sendToPlayer()
}

func (m *Model) pushUndo() {
	if m.changeSeverity == MinorChange && m.changeKind == m.d.PrevUndoKind && m.d.UndoSkipCounter < undoSkip {
		m.d.UndoSkipCounter++
		return
	}
	m.d.PrevUndoKind = m.changeKind
	m.d.UndoSkipCounter = 0
	if len(m.d.UndoStack) >= maxUndo {
		m.d.UndoStack = m.d.UndoStack[1:]
	}
	m.d.UndoStack = append(m.d.UndoStack, m.undoSnapshot)
	m.d.RedoStack = m.d.RedoStack[:0]
}

// pruneSelections drops selected ids that no longer exist, keeping the
// selection a subset of the container at all times. Also closes the note
// editor if its block vanished.
func (m *Model) pruneSelections() {
	if m.d.ActiveBlock >= 0 {
		if _, _, ok := m.findBlock(m.d.ActiveBlock); !ok {
			m.d.ActiveBlock = -1
		}
	}
	rollAlive := make(map[int]bool)
	if b, _, ok := m.findBlock(m.d.ActiveBlock); ok {
		for _, n := range b.Notes {
			rollAlive[n.ID] = true
		}
	}
	m.roll.Selection.Prune(func(id int) bool { return rollAlive[id] })
	blockAlive := make(map[int]bool)
	for _, t := range m.d.Song.Tracks {
		for _, b := range t.Blocks {
			blockAlive[b.ID] = true
		}
	}
	m.timeline.Selection.Prune(func(id int) bool { return blockAlive[id] })
	if m.d.ActiveTrack >= len(m.d.Song.Tracks) {
		m.d.ActiveTrack = max(len(m.d.Song.Tracks)-1, 0)
	}
}

func (m *Model) sendToPlayer() {
	song := m.d.Song.Copy()
	TrySend(m.broker.ToPlayer, MsgToPlayer{Song: &song})
}

// rollbackLastChange undoes the most recent change without leaving an undo
// entry, for unwinding the press-time duplicate write of a cancelled
// gesture.
func (m *Model) rollbackLastChange() {
	if len(m.d.UndoStack) == 0 {
		return
	}
	m.d.Song = m.d.UndoStack[len(m.d.UndoStack)-1]
	m.d.UndoStack = m.d.UndoStack[:len(m.d.UndoStack)-1]
	m.d.PrevUndoKind = ""
	m.finishChange()
}

// nextID hands out a fresh entity id, never reused within the session.
func (m *Model) nextID() int {
	m.d.MaxID++
	return m.d.MaxID
}

// findBlock locates a block by id; returns the block, its track index and
// whether it exists.
func (m *Model) findBlock(id int) (*claviature.Block, int, bool) {
	if id < 0 {
		return nil, 0, false
	}
	for ti := range m.d.Song.Tracks {
		blocks := m.d.Song.Tracks[ti].Blocks
		for bi := range blocks {
			if blocks[bi].ID == id {
				return &blocks[bi], ti, true
			}
		}
	}
	return nil, 0, false
}

// OpenBlock opens the block with the given id in the note editor.
func (m *Model) OpenBlock(id int) {
	if _, _, ok := m.findBlock(id); !ok {
		return
	}
	m.d.ActiveBlock = id
	m.roll.Selection.Clear()
}

// CloseBlock returns from the note editor to the timeline.
func (m *Model) CloseBlock() {
	m.d.ActiveBlock = -1
}

// ActiveBlock returns the block open in the note editor, ok=false when the
// timeline is active.
func (m *Model) ActiveBlock() (*claviature.Block, bool) {
	b, _, ok := m.findBlock(m.d.ActiveBlock)
	return b, ok
}

// PlayheadBeat returns the playhead position in song beats.
func (m *Model) PlayheadBeat() float64 { return m.d.Playhead }

// SetPlayheadBeat moves the playhead and asks the player to seek when
// playing. Not an undoable change.
func (m *Model) SetPlayheadBeat(beat float64) {
	beat = max(beat, 0)
	if m.d.Playhead == beat {
		return
	}
	m.d.Playhead = beat
	TrySend(m.broker.ToPlayer, MsgToPlayer{HasSeek: true, Seek: beat})
}

// GridBeats returns the snap grid in beats.
func (m *Model) GridBeats() float64 { return m.d.Grid }

// SetGridBeats sets the snap grid; nonpositive values are ignored.
func (m *Model) SetGridBeats(g float64) {
	if g > 0 {
		m.d.Grid = g
	}
}

// IsPlaying reports the playback state as last heard from the player.
func (m *Model) IsPlaying() bool { return m.playing }

// ProcessMsg handles one message from the broker queue. A func() in Data is
// executed on the model goroutine; goroutines use this to hand results back.
func (m *Model) ProcessMsg(msg MsgToModel) {
	if msg.HasPlayhead {
		m.d.Playhead = msg.Playhead
		m.playing = msg.Playing
	}
	if f, ok := msg.Data.(func()); ok {
		f()
	}
}

func (m *Model) Broker() *Broker { return m.broker }

// Generation exposes the container mutation counter for the editors.
func (m *Model) Generation() int { return m.generation }
