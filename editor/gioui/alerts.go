package gioui

import (
	"image"
	"image/color"
	"time"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"

	"github.com/ajankelo/claviature/editor"
)

// PopupAlert renders the model's alert queue as popups sliding up from the
// bottom edge, newest on top of older ones.
type PopupAlert struct {
	alerts     *editor.Alerts
	prevUpdate time.Time
}

var alertMargin = layout.UniformInset(unit.Dp(6))
var alertInset = layout.UniformInset(unit.Dp(6))

func NewPopupAlert(alerts *editor.Alerts) *PopupAlert {
	return &PopupAlert{alerts: alerts, prevUpdate: time.Now()}
}

func (a *PopupAlert) Layout(gtx C, th *Theme) D {
	now := time.Now()
	if a.alerts.Update(now.Sub(a.prevUpdate)) {
		gtx.Execute(op.InvalidateCmd{At: now.Add(50 * time.Millisecond)})
	}
	a.prevUpdate = now

	totalY := float64(gtx.Dp(38))
	a.alerts.Iterate(func(_ int, alert editor.Alert) bool {
		var bg, fg color.NRGBA
		switch alert.Priority {
		case editor.Warning:
			bg, fg = warningColor, black
		case editor.Error:
			bg, fg = errorColor, black
		default:
			bg, fg = popupSurfaceColor, white
		}
		bgWidget := func(gtx C) D {
			paint.FillShape(gtx.Ops, bg, clip.Rect{Max: gtx.Constraints.Min}.Op())
			return D{Size: gtx.Constraints.Min}
		}
		label := body(th, alert.Message)
		label.Color = fg
		alertMargin.Layout(gtx, func(gtx C) D {
			return layout.S.Layout(gtx, func(gtx C) D {
				defer op.Offset(image.Point{}).Push(gtx.Ops).Pop()
				gtx.Constraints.Min.X = gtx.Constraints.Max.X
				recording := op.Record(gtx.Ops)
				dims := layout.Stack{Alignment: layout.Center}.Layout(gtx,
					layout.Expanded(bgWidget),
					layout.Stacked(func(gtx C) D {
						return alertInset.Layout(gtx, label.Layout)
					}),
				)
				macro := recording.Stop()
				delta := float64(dims.Size.Y + gtx.Dp(alertMargin.Bottom))
				op.Offset(image.Point{Y: int(-totalY*alert.FadeLevel + delta*(1-alert.FadeLevel))}).Add(gtx.Ops)
				totalY += delta
				macro.Add(gtx.Ops)
				return dims
			})
		})
		return true
	})
	return D{}
}
