package gioui

import (
	"fmt"
	"image"
	"io"
	"time"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/io/transfer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/x/explorer"

	"github.com/ajankelo/claviature/editor"
)

// Editor is the GUI shell around the model. It owns the window loop and the
// two views; all model access happens on the GUI goroutine.
type Editor struct {
	Theme        *Theme
	RollView     *RollView
	TimelineView *TimelineView
	SongPanel    *SongPanel
	PopupAlert   *PopupAlert
	Explorer     *explorer.Explorer
	Exploring    bool

	preferences Preferences

	quitted     bool
	confirmQuit bool
	saveBtn     widget.Clickable
	discardBtn  widget.Clickable
	cancelBtn   widget.Clickable

	*editor.Model
}

func NewEditor(model *editor.Model) *Editor {
	e := &Editor{
		Theme:        NewTheme(),
		RollView:     NewRollView(),
		TimelineView: NewTimelineView(),
		preferences:  MakePreferences(),
		Model:        model,
	}
	e.SongPanel = NewSongPanel(e)
	e.PopupAlert = NewPopupAlert(model.Alerts())
	if e.preferences.YmlError != nil {
		model.Alertf(editor.Warning, "preferences: %v", e.preferences.YmlError)
	}
	return e
}

// Main runs the window loop until the editor quits. A closed window is
// recreated while a quit confirmation is pending, so unsaved changes always
// get their dialog.
func (e *Editor) Main() {
	recoveryTicker := time.NewTicker(30 * time.Second)
	var ops op.Ops
	titlePath := ""
	for !e.quitted {
		w := e.newWindow(titlePath)
		e.Explorer = explorer.NewExplorer(w)
		acks := make(chan struct{})
		events := make(chan event.Event)
		go func() {
			for {
				ev := w.Event()
				events <- ev
				<-acks
				if _, ok := ev.(app.DestroyEvent); ok {
					return
				}
			}
		}()
	F:
		for {
			select {
			case msg := <-e.Broker().ToModel:
				e.ProcessMsg(msg)
				w.Invalidate()
			case ev := <-events:
				switch ev := ev.(type) {
				case app.DestroyEvent:
					e.requestQuit()
					acks <- struct{}{}
					break F // this window is done; the outer loop decides if we get a new one
				case app.FrameEvent:
					if titlePath != e.FilePath() {
						titlePath = e.FilePath()
						w.Option(app.Title(titleFromPath(titlePath)))
					}
					gtx := app.NewContext(&ops, ev)
					e.Layout(gtx)
					ev.Frame(gtx.Ops)
					if e.quitted {
						w.Perform(system.ActionClose)
					}
				}
				acks <- struct{}{}
			case <-recoveryTicker.C:
				e.SaveRecovery()
			}
		}
	}
	recoveryTicker.Stop()
	e.SaveRecovery()
}

func (e *Editor) newWindow(titlePath string) *app.Window {
	w := new(app.Window)
	w.Option(app.Title(titleFromPath(titlePath)))
	w.Option(app.Size(e.preferences.WindowSize()))
	if e.preferences.Window.Maximized {
		w.Option(app.Maximized.Option())
	}
	return w
}

func titleFromPath(path string) string {
	if path == "" {
		return "Claviature"
	}
	return fmt.Sprintf("Claviature - %s", path)
}

func (e *Editor) requestQuit() {
	if e.ChangedSinceSave() {
		e.confirmQuit = true
		return
	}
	e.quitted = true
}

func (e *Editor) Layout(gtx C) {
	defer clip.Rect(image.Rectangle{Max: gtx.Constraints.Max}).Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, backgroundColor)
	event.Op(gtx.Ops, e)

	layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min.Y = gtx.Dp(unit.Dp(40))
			return e.SongPanel.Layout(gtx, e)
		}),
		layout.Flexed(1, func(gtx C) D {
			if _, open := e.ActiveBlock(); open {
				return e.RollView.Layout(gtx, e)
			}
			return e.TimelineView.Layout(gtx, e)
		}),
	)
	e.PopupAlert.Layout(gtx, e.Theme)
	e.layoutQuitDialog(gtx)

	// top level input handler: global key bindings and clipboard paste
	for {
		ev, ok := gtx.Event(
			key.Filter{Name: "", Optional: key.ModAlt | key.ModCommand | key.ModShift | key.ModShortcut | key.ModSuper},
			transfer.TargetFilter{Target: e, Type: "application/text"},
		)
		if !ok {
			break
		}
		switch ev := ev.(type) {
		case key.Event:
			e.KeyEvent(ev, gtx)
		case transfer.DataEvent:
			e.readClipboard(ev.Open())
		}
	}
}

func (e *Editor) layoutQuitDialog(gtx C) {
	if !e.confirmQuit {
		return
	}
	for e.saveBtn.Clicked(gtx) {
		e.confirmQuit = false
		e.SaveSongFile()
	}
	for e.discardBtn.Clicked(gtx) {
		e.confirmQuit = false
		e.quitted = true
	}
	for e.cancelBtn.Clicked(gtx) {
		e.confirmQuit = false
	}
	th := e.Theme.Material
	layout.Center.Layout(gtx, func(gtx C) D {
		gtx.Constraints.Min = image.Point{}
		recording := op.Record(gtx.Ops)
		dims := layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx C) D {
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
				layout.Rigid(body(e.Theme, "Save changes to the song before quitting?").Layout),
				layout.Rigid(func(gtx C) D {
					return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
						layout.Rigid(func(gtx C) D { return LowEmphasisButton(th, &e.saveBtn, "Save").Layout(gtx) }),
						layout.Rigid(func(gtx C) D { return LowEmphasisButton(th, &e.discardBtn, "Don't save").Layout(gtx) }),
						layout.Rigid(func(gtx C) D { return LowEmphasisButton(th, &e.cancelBtn, "Cancel").Layout(gtx) }),
					)
				}),
			)
		})
		macro := recording.Stop()
		fillRect(gtx, image.Rectangle{Max: dims.Size}, popupSurfaceColor)
		macro.Add(gtx.Ops)
		return dims
	})
}

// activeCopy serializes the selection of whichever editor is visible.
func (e *Editor) activeCopy() ([]byte, bool) {
	if _, open := e.ActiveBlock(); open {
		return e.Roll().CopyYAML()
	}
	return e.Timeline().CopyYAML()
}

func (e *Editor) activePaste(data []byte) bool {
	if _, open := e.ActiveBlock(); open {
		return e.Roll().PasteYAML(data)
	}
	return e.Timeline().PasteYAML(data)
}

func (e *Editor) activeDelete() {
	if _, open := e.ActiveBlock(); open {
		e.Roll().DeleteSelected()
		return
	}
	e.Timeline().DeleteSelected()
}

func (e *Editor) activeEscape() {
	if _, open := e.ActiveBlock(); open {
		e.Roll().Escape()
		return
	}
	e.Timeline().Escape()
}

func (e *Editor) activeSelectAll() {
	if _, open := e.ActiveBlock(); open {
		e.Roll().SelectAll()
		return
	}
	e.Timeline().SelectAll()
}

func (e *Editor) readClipboard(rc io.ReadCloser) {
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return
	}
	if !e.activePaste(data) {
		e.Alerts().AddNamed("Paste", "clipboard did not contain anything pasteable here", editor.Warning)
	}
}
