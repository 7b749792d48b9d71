package gioui

import (
	"fmt"
	"image"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/ajankelo/claviature/version"
)

// SongPanel is the transport and file toolbar across the top of the window.
type SongPanel struct {
	PlayBtn *BoolClickable
	LoopBtn *BoolClickable

	RewindBtn      *ActionClickable
	UndoBtn        *ActionClickable
	RedoBtn        *ActionClickable
	NewSongBtn     *ActionClickable
	AddTrackBtn    *ActionClickable
	DeleteTrackBtn *ActionClickable
	CloseBlockBtn  *ActionClickable

	OpenBtn   widget.Clickable
	SaveBtn   widget.Clickable
	ImportBtn widget.Clickable

	BPMUpBtn    widget.Clickable
	BPMDownBtn  widget.Clickable
	GridUpBtn   widget.Clickable
	GridDownBtn widget.Clickable

	playHint, loopHint, undoHint, redoHint string
}

func NewSongPanel(e *Editor) *SongPanel {
	p := &SongPanel{
		PlayBtn:        NewBoolClickable(e.Playing()),
		LoopBtn:        NewBoolClickable(e.Loop()),
		RewindBtn:      NewActionClickable(e.Rewind()),
		UndoBtn:        NewActionClickable(e.Undo()),
		RedoBtn:        NewActionClickable(e.Redo()),
		NewSongBtn:     NewActionClickable(e.NewSong()),
		AddTrackBtn:    NewActionClickable(e.AddTrack()),
		DeleteTrackBtn: NewActionClickable(e.DeleteTrack()),
		CloseBlockBtn:  NewActionClickable(e.CloseBlockAction()),
	}
	p.playHint = makeHint("Play", " (%s)", "PlayingToggle")
	p.loopHint = makeHint("Loop", " (%s)", "LoopToggle")
	p.undoHint = makeHint("Undo", " (%s)", "Undo")
	p.redoHint = makeHint("Redo", " (%s)", "Redo")
	return p
}

func (p *SongPanel) update(gtx C, e *Editor) {
	p.PlayBtn.Update(gtx)
	p.LoopBtn.Update(gtx)
	p.RewindBtn.Update(gtx)
	p.UndoBtn.Update(gtx)
	p.RedoBtn.Update(gtx)
	p.NewSongBtn.Update(gtx)
	p.AddTrackBtn.Update(gtx)
	p.DeleteTrackBtn.Update(gtx)
	p.CloseBlockBtn.Update(gtx)
	for p.OpenBtn.Clicked(gtx) {
		e.OpenSongFile()
	}
	for p.SaveBtn.Clicked(gtx) {
		e.SaveSongFile()
	}
	for p.ImportBtn.Clicked(gtx) {
		e.ImportMIDIFile()
	}
	for p.BPMUpBtn.Clicked(gtx) {
		e.BPM().Add(1)
	}
	for p.BPMDownBtn.Clicked(gtx) {
		e.BPM().Add(-1)
	}
	for p.GridUpBtn.Clicked(gtx) {
		e.Grid().SetValue(e.Grid().Value() * 2)
	}
	for p.GridDownBtn.Clicked(gtx) {
		e.Grid().SetValue(e.Grid().Value() / 2)
	}
}

func (p *SongPanel) Layout(gtx C, e *Editor) D {
	p.update(gtx, e)
	th := e.Theme.Material
	paint.FillShape(gtx.Ops, panelSurfaceColor, clip.Rect{Max: image.Pt(gtx.Constraints.Max.X, gtx.Constraints.Min.Y)}.Op())

	playIcon := icons.AVPlayArrow
	if e.IsPlaying() {
		playIcon = icons.AVStop
	}
	bpmText := fmt.Sprintf("%.0f bpm", e.BPM().Value())
	gridText := fmt.Sprintf("grid 1/%.0f", 1/e.Grid().Value())

	children := []layout.FlexChild{
		layout.Rigid(p.RewindBtn.layoutIcon(th, icons.AVFastRewind)),
		layout.Rigid(func(gtx C) D {
			return IconButton(th, &p.PlayBtn.Clickable, playIcon, true).Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			return IconButton(th, &p.LoopBtn.Clickable, icons.AVLoop, p.LoopBtn.Bool.Value()).Layout(gtx)
		}),
		layout.Rigid(p.UndoBtn.layoutIcon(th, icons.ContentUndo)),
		layout.Rigid(p.RedoBtn.layoutIcon(th, icons.ContentRedo)),
		layout.Rigid(p.NewSongBtn.layoutIcon(th, icons.AVFiberNew)),
		layout.Rigid(func(gtx C) D {
			return IconButton(th, &p.OpenBtn, icons.FileFolderOpen, true).Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			return IconButton(th, &p.SaveBtn, icons.ContentSave, true).Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			return IconButton(th, &p.ImportBtn, icons.FileFileUpload, true).Layout(gtx)
		}),
		layout.Rigid(p.AddTrackBtn.layoutIcon(th, icons.ContentAdd)),
		layout.Rigid(p.DeleteTrackBtn.layoutIcon(th, icons.ActionDelete)),
		layout.Rigid(func(gtx C) D {
			return LowEmphasisButton(th, &p.BPMDownBtn, "-").Layout(gtx)
		}),
		layout.Rigid(panelLabel(e.Theme, bpmText)),
		layout.Rigid(func(gtx C) D {
			return LowEmphasisButton(th, &p.BPMUpBtn, "+").Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			return LowEmphasisButton(th, &p.GridDownBtn, "-").Layout(gtx)
		}),
		layout.Rigid(panelLabel(e.Theme, gridText)),
		layout.Rigid(func(gtx C) D {
			return LowEmphasisButton(th, &p.GridUpBtn, "+").Layout(gtx)
		}),
	}
	if _, open := e.ActiveBlock(); open {
		children = append(children,
			layout.Rigid(panelLabel(e.Theme, e.BlockName().Value())),
			layout.Rigid(p.CloseBlockBtn.layoutIcon(th, icons.NavigationArrowBack)),
		)
	}
	children = append(children,
		layout.Flexed(1, func(gtx C) D { return D{Size: gtx.Constraints.Min} }),
		layout.Rigid(func(gtx C) D {
			l := material.Label(th, unit.Sp(11), version.VersionOrHash)
			l.Color = disabledTextColor
			return layout.UniformInset(unit.Dp(6)).Layout(gtx, l.Layout)
		}),
	)
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx, children...)
}

func (a *ActionClickable) layoutIcon(th *material.Theme, icon []byte) layout.Widget {
	return func(gtx C) D {
		return IconButton(th, &a.Clickable, icon, a.Action.Enabled()).Layout(gtx)
	}
}

func panelLabel(th *Theme, txt string) layout.Widget {
	return func(gtx C) D {
		l := material.Label(th.Material, unit.Sp(13), txt)
		l.Color = th.Material.Palette.Fg
		return layout.UniformInset(unit.Dp(4)).Layout(gtx, l.Layout)
	}
}
