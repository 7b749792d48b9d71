package gioui

import (
	"image"
	"image/color"
	"time"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ajankelo/claviature/editor"
)

const doubleClickInterval = 400 * time.Millisecond

var laneTitler = cases.Upper(language.Und)

// TimelineView draws the arrangement: one lane per track, blocks as
// entities. Double-clicking a block opens it in the piano roll.
type TimelineView struct {
	lastClick   time.Time
	lastClickID int
}

func NewTimelineView() *TimelineView { return &TimelineView{lastClickID: -1} }

func (tv *TimelineView) Layout(gtx C, e *Editor) D {
	size := gtx.Constraints.Max
	defer clip.Rect(image.Rectangle{Max: size}).Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, backgroundColor)
	event.Op(gtx.Ops, tv)

	tl := e.Timeline()
	view := &tl.View
	processPointer(gtx, tv, tl.Control, view, func(p editor.Point, ev pointer.Event) bool {
		return tv.maybeOpen(e, p)
	}, nil)

	tv.drawLanes(gtx, e, view, size)
	drawGrid(gtx, view, e.GridBeats(), size)
	drawEntities(gtx, view, tl.Entities(), &tl.Selection, tl.Control.Preview(), size)
	tv.drawNames(gtx, e, view, size)
	drawMarquee(gtx, view, tl.Control)
	drawPlayhead(gtx, view, tl.PlayheadBeat(), size.Y)
	return D{Size: size}
}

// maybeOpen opens the pressed block when this press completes a
// double-click; returns true to swallow the press from the gesture
// controller.
func (tv *TimelineView) maybeOpen(e *Editor, p editor.Point) bool {
	now := time.Now()
	ent, ok := e.Timeline().EntityAt(p)
	if !ok {
		tv.lastClickID = -1
		return false
	}
	if ent.ID == tv.lastClickID && now.Sub(tv.lastClick) < doubleClickInterval {
		tv.lastClickID = -1
		e.OpenBlock(ent.ID)
		return true
	}
	tv.lastClick = now
	tv.lastClickID = ent.ID
	return false
}

func (tv *TimelineView) drawLanes(gtx C, e *Editor, v *editor.Viewport, size image.Point) {
	if v.PxPerLane <= 0 {
		return
	}
	lanes := len(e.Song().Tracks)
	first := max(int(v.ScrollY/v.PxPerLane), 0)
	last := min(int((v.ScrollY+float32(size.Y))/v.PxPerLane)+1, lanes-1)
	for lane := first; lane <= last; lane++ {
		y := int(v.LaneToPx(lane))
		if lane%2 == 1 {
			fillRect(gtx, image.Rect(0, y, size.X, y+int(v.PxPerLane)), laneShadeColor)
		}
		fillRect(gtx, image.Rect(0, y, size.X, y+1), laneDividerColor)
	}
	if y := int(v.LaneToPx(lanes)); y < size.Y {
		fillRect(gtx, image.Rect(0, y, size.X, size.Y), outOfBoundsShadeColor)
	}
}

// drawNames labels each lane with its track name and each visible block with
// its block name.
func (tv *TimelineView) drawNames(gtx C, e *Editor, v *editor.Viewport, size image.Point) {
	tracks := e.Song().Tracks
	for ti, t := range tracks {
		y := int(v.LaneToPx(ti))
		if y > size.Y || y+int(v.PxPerLane) < 0 {
			continue
		}
		drawLabelAt(gtx, e.Theme, image.Pt(4, y+2), laneTitler.String(t.Name), mediumEmphasisTextColor)
		for _, b := range t.Blocks {
			r := entityRect(v, editor.Entity{ID: b.ID, Start: b.Start, Duration: b.Duration, Lane: ti})
			if !r.Overlaps(image.Rectangle{Max: size}) {
				continue
			}
			drawLabelAt(gtx, e.Theme, image.Pt(r.Min.X+4, r.Min.Y+2), b.Name, black)
		}
	}
}

func drawLabelAt(gtx C, th *Theme, pos image.Point, txt string, col color.NRGBA) {
	defer op.Offset(pos).Push(gtx.Ops).Pop()
	l := material.Label(th.Material, unit.Sp(11), txt)
	l.Color = col
	l.MaxLines = 1
	gtx.Constraints.Min = image.Point{}
	l.Layout(gtx)
}
