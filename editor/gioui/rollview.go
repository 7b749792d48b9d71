package gioui

import (
	"image"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/ajankelo/claviature/editor"
)

// RollView draws the piano roll for the open block and feeds its pointer
// events to the roll's gesture controller. Pressing a note auditions its
// pitch through the player.
type RollView struct {
	auditioning bool
}

func NewRollView() *RollView { return &RollView{} }

// blackKey reports whether a lane maps to a black piano key, for the
// alternating row shading.
func blackKey(lane int) bool {
	switch editor.LaneToPitch(lane) % 12 {
	case 1, 3, 6, 8, 10:
		return true
	}
	return false
}

func (rv *RollView) Layout(gtx C, e *Editor) D {
	size := gtx.Constraints.Max
	defer clip.Rect(image.Rectangle{Max: size}).Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, backgroundColor)
	event.Op(gtx.Ops, rv)

	roll := e.Roll()
	view := &roll.View
	processPointer(gtx, rv, roll.Control, view, func(p editor.Point, ev pointer.Event) bool {
		rv.auditionAt(e, p)
		return false
	}, func() {
		rv.stopAudition(e)
	})

	bounds := roll.Bounds()
	rv.drawLanes(gtx, view, bounds, size)
	drawGrid(gtx, view, e.GridBeats(), size)
	rv.drawBounds(gtx, view, bounds, size)
	drawEntities(gtx, view, roll.Entities(), &roll.Selection, roll.Control.Preview(), size)
	drawMarquee(gtx, view, roll.Control)
	drawPlayhead(gtx, view, roll.PlayheadBeat(), size.Y)
	return D{Size: size}
}

func (rv *RollView) drawLanes(gtx C, v *editor.Viewport, b editor.Bounds, size image.Point) {
	if v.PxPerLane <= 0 {
		return
	}
	first := max(int(v.ScrollY/v.PxPerLane), 0)
	last := min(int((v.ScrollY+float32(size.Y))/v.PxPerLane)+1, b.Lanes-1)
	for lane := first; lane <= last; lane++ {
		y := int(v.LaneToPx(lane))
		if blackKey(lane) {
			fillRect(gtx, image.Rect(0, y, size.X, y+int(v.PxPerLane)), laneShadeColor)
		}
		fillRect(gtx, image.Rect(0, y, size.X, y+1), laneDividerColor)
	}
}

// drawBounds shades the area past the block end and draws the two resize
// handles of the block extent.
func (rv *RollView) drawBounds(gtx C, v *editor.Viewport, b editor.Bounds, size image.Point) {
	if !b.Bounded {
		return
	}
	xStart := int(v.BeatToPx(0))
	xEnd := int(v.BeatToPx(b.Duration))
	if xEnd < size.X {
		fillRect(gtx, image.Rect(xEnd, 0, size.X, size.Y), outOfBoundsShadeColor)
	}
	fillRect(gtx, image.Rect(xStart-1, 0, xStart+1, size.Y), boundaryColor)
	fillRect(gtx, image.Rect(xEnd-1, 0, xEnd+1, size.Y), boundaryColor)
}

// auditionAt sends a preview note for the entity under the pointer, if any.
func (rv *RollView) auditionAt(e *Editor, p editor.Point) {
	roll := e.Roll()
	for _, ent := range roll.Entities() {
		r := entityRect(&roll.View, ent)
		if int(p.X) >= r.Min.X && int(p.X) < r.Max.X && int(p.Y) >= r.Min.Y && int(p.Y) < r.Max.Y {
			rv.auditionID(e, ent.ID)
			return
		}
	}
}

func (rv *RollView) auditionID(e *Editor, id int) {
	for _, ent := range e.Roll().Entities() {
		if ent.ID == id {
			editor.TrySend(e.Broker().ToPlayer, editor.MsgToPlayer{NoteOn: &editor.PreviewNote{
				Pitch:    editor.LaneToPitch(ent.Lane),
				Velocity: 100,
			}})
			rv.auditioning = true
			return
		}
	}
}

func (rv *RollView) stopAudition(e *Editor) {
	if !rv.auditioning {
		return
	}
	editor.TrySend(e.Broker().ToPlayer, editor.MsgToPlayer{NoteOff: true})
	rv.auditioning = false
}
