package gioui

import (
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/ajankelo/claviature/editor"
)

// Both editor views funnel their pointer events through the same gesture
// controller; the only per-view work is drawing and the odd extra (note
// audition, open-on-double-click). Pointer positions are local to the view
// area, matching what the viewport expects.

func processPointer(gtx C, tag event.Tag, ctl *editor.Controller, view *editor.Viewport,
	onPress func(p editor.Point, e pointer.Event) bool, onDone func()) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  tag,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel | pointer.Scroll,
			ScrollX: pointer.ScrollRange{Min: -256, Max: 256},
			ScrollY: pointer.ScrollRange{Min: -256, Max: 256},
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		p := editor.Point{X: e.Position.X, Y: e.Position.Y}
		switch e.Kind {
		case pointer.Press:
			if e.Buttons != pointer.ButtonPrimary {
				ctl.Cancel()
				if onDone != nil {
					onDone()
				}
				break
			}
			if onPress != nil && onPress(p, e) {
				break
			}
			ctl.Press(p, editor.Modifiers{
				Shift: e.Modifiers.Contain(key.ModShift),
				Alt:   e.Modifiers.Contain(key.ModAlt),
			})
		case pointer.Drag:
			ctl.Move(p)
		case pointer.Release:
			ctl.Release(p)
			if onDone != nil {
				onDone()
			}
		case pointer.Cancel:
			ctl.Cancel()
			if onDone != nil {
				onDone()
			}
		case pointer.Scroll:
			switch {
			case e.Modifiers.Contain(key.ModShortcut):
				view.ZoomBeat(p, -e.Scroll.Y/128)
			case e.Modifiers.Contain(key.ModAlt):
				view.ZoomLane(p, -e.Scroll.Y/128)
			case e.Modifiers.Contain(key.ModShift):
				view.Scroll(e.Scroll.Y, 0)
			default:
				view.Scroll(e.Scroll.X, e.Scroll.Y)
			}
		}
	}
}

func fillRect(gtx C, r image.Rectangle, col color.NRGBA) {
	if r.Empty() {
		return
	}
	paint.FillShape(gtx.Ops, col, clip.Rect(r).Op())
}

func strokeRect(gtx C, r image.Rectangle, col color.NRGBA) {
	if r.Dx() < 2 || r.Dy() < 2 {
		fillRect(gtx, r, col)
		return
	}
	fillRect(gtx, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), col)
	fillRect(gtx, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), col)
	fillRect(gtx, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), col)
	fillRect(gtx, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), col)
}

func entityRect(v *editor.Viewport, e editor.Entity) image.Rectangle {
	x1 := int(v.BeatToPx(e.Start))
	x2 := int(v.BeatToPx(e.Start + e.Duration))
	y1 := int(v.LaneToPx(e.Lane))
	return image.Rect(x1, y1, x2, y1+int(v.PxPerLane))
}

// drawEntities paints the container contents: committed entities, with the
// pending gesture preview drawn in place of the entities it is about to
// replace.
func drawEntities(gtx C, v *editor.Viewport, entities []editor.Entity, sel *editor.Selection, preview []editor.Entity, size image.Point) {
	previewed := make(map[int]bool, len(preview))
	for _, e := range preview {
		previewed[e.ID] = true
	}
	visible := image.Rectangle{Max: size}
	for _, e := range entities {
		if previewed[e.ID] {
			continue
		}
		r := entityRect(v, e)
		if !r.Overlaps(visible) {
			continue
		}
		col := entityColor
		if sel.Contains(e.ID) {
			col = entitySelectedColor
		}
		fillRect(gtx, r, col)
		strokeRect(gtx, r, entityBorderColor)
	}
	for _, e := range preview {
		r := entityRect(v, e)
		if !r.Overlaps(visible) {
			continue
		}
		fillRect(gtx, r, entityPreviewColor)
		strokeRect(gtx, r, entitySelectedColor)
	}
}

func drawMarquee(gtx C, v *editor.Viewport, ctl *editor.Controller) {
	region, ok := ctl.Marquee()
	if !ok {
		return
	}
	p1, ok1 := v.FromContent(editor.ContentPoint{Beat: region.BeatMin, Lane: region.LaneMin})
	p2, ok2 := v.FromContent(editor.ContentPoint{Beat: region.BeatMax, Lane: region.LaneMax})
	if !ok1 || !ok2 {
		return
	}
	r := image.Rect(int(p1.X), int(p1.Y), int(p2.X), int(p2.Y))
	fillRect(gtx, r, marqueeFillColor)
	strokeRect(gtx, r, marqueeBorderColor)
}

func drawPlayhead(gtx C, v *editor.Viewport, beat float64, height int) {
	x := int(v.BeatToPx(beat))
	fillRect(gtx, image.Rect(x-1, 0, x+1, height), playheadColor)
}

// drawGrid paints the vertical snap and beat lines over the visible range.
// Snap lines are skipped when they would be too dense to read.
func drawGrid(gtx C, v *editor.Viewport, snap float64, size image.Point) {
	if v.PxPerBeat <= 0 {
		return
	}
	firstBeat := float64(v.ScrollX / v.PxPerBeat)
	lastBeat := float64((v.ScrollX + float32(size.X)) / v.PxPerBeat)
	if snap > 0 && float64(v.PxPerBeat)*snap >= 4 {
		for b := snapDown(firstBeat, snap); b <= lastBeat; b += snap {
			x := int(v.BeatToPx(b))
			fillRect(gtx, image.Rect(x, 0, x+1, size.Y), gridLineColor)
		}
	}
	for b := float64(int(firstBeat)); b <= lastBeat; b++ {
		x := int(v.BeatToPx(b))
		fillRect(gtx, image.Rect(x, 0, x+1, size.Y), beatLineColor)
	}
}

func snapDown(beat, snap float64) float64 {
	if snap <= 0 {
		return beat
	}
	n := int(beat / snap)
	return float64(n) * snap
}
