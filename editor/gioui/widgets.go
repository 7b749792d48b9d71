package gioui

import (
	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/ajankelo/claviature/editor"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

// ActionClickable pairs a clickable with a model action so buttons fire the
// action and gray out when it is disabled.
type ActionClickable struct {
	Action editor.Action
	widget.Clickable
}

func NewActionClickable(a editor.Action) *ActionClickable {
	return &ActionClickable{Action: a}
}

func (a *ActionClickable) Update(gtx C) {
	for a.Clicked(gtx) {
		a.Action.Do()
	}
}

// BoolClickable toggles a model bool on click.
type BoolClickable struct {
	Bool editor.Bool
	widget.Clickable
}

func NewBoolClickable(b editor.Bool) *BoolClickable {
	return &BoolClickable{Bool: b}
}

func (b *BoolClickable) Update(gtx C) {
	for b.Clicked(gtx) {
		b.Bool.Toggle()
	}
}

var iconCache = map[*byte]*widget.Icon{}

// widgetForIcon caches the parsed widget.Icons, as parsing them is quite
// slow.
func widgetForIcon(icon []byte) *widget.Icon {
	if icon == nil {
		return nil
	}
	if w, ok := iconCache[&icon[0]]; ok {
		return w
	}
	w, err := widget.NewIcon(icon)
	if err != nil {
		panic(err)
	}
	iconCache[&icon[0]] = w
	return w
}

func IconButton(th *material.Theme, w *widget.Clickable, icon []byte, enabled bool) material.IconButtonStyle {
	ret := material.IconButton(th, w, widgetForIcon(icon), "")
	ret.Background = transparent
	ret.Inset = layout.UniformInset(unit.Dp(6))
	if enabled {
		ret.Color = primaryColor
	} else {
		ret.Color = disabledTextColor
	}
	return ret
}

func body(th *Theme, txt string) material.LabelStyle {
	l := material.Body1(th.Material, txt)
	l.Color = th.Material.Palette.Fg
	return l
}

func LowEmphasisButton(th *material.Theme, w *widget.Clickable, text string) material.ButtonStyle {
	ret := material.Button(th, w, text)
	ret.Color = th.Palette.Fg
	ret.Background = transparent
	ret.Inset = layout.UniformInset(unit.Dp(6))
	return ret
}
