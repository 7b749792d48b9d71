package gioui

import (
	"image/color"

	"gioui.org/font/gofont"
	"gioui.org/text"
	"gioui.org/widget/material"
)

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
var black = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
var transparent = color.NRGBA{A: 0}

var primaryColor = color.NRGBA{R: 206, G: 147, B: 216, A: 255}
var secondaryColor = color.NRGBA{R: 128, G: 222, B: 234, A: 255}

var highEmphasisTextColor = color.NRGBA{R: 222, G: 222, B: 222, A: 222}
var mediumEmphasisTextColor = color.NRGBA{R: 153, G: 153, B: 153, A: 153}
var disabledTextColor = color.NRGBA{R: 255, G: 255, B: 255, A: 97}

var backgroundColor = color.NRGBA{R: 18, G: 18, B: 18, A: 255}
var panelSurfaceColor = color.NRGBA{R: 37, G: 37, B: 38, A: 255}
var popupSurfaceColor = color.NRGBA{R: 50, G: 50, B: 51, A: 255}

var laneShadeColor = color.NRGBA{R: 26, G: 26, B: 27, A: 255}
var laneDividerColor = color.NRGBA{R: 255, G: 255, B: 255, A: 8}
var gridLineColor = color.NRGBA{R: 255, G: 255, B: 255, A: 16}
var beatLineColor = color.NRGBA{R: 255, G: 255, B: 255, A: 40}

var entityColor = color.NRGBA{R: 128, G: 222, B: 234, A: 200}
var entitySelectedColor = color.NRGBA{R: 255, G: 255, B: 130, A: 230}
var entityPreviewColor = color.NRGBA{R: 255, G: 255, B: 255, A: 90}
var entityBorderColor = color.NRGBA{R: 0, G: 0, B: 0, A: 160}

var marqueeFillColor = color.NRGBA{R: 100, G: 140, B: 255, A: 24}
var marqueeBorderColor = color.NRGBA{R: 100, G: 140, B: 255, A: 128}

var playheadColor = color.NRGBA{R: 252, G: 186, B: 3, A: 255}
var boundaryColor = color.NRGBA{R: 206, G: 147, B: 216, A: 96}
var outOfBoundsShadeColor = color.NRGBA{R: 0, G: 0, B: 0, A: 120}

var warningColor = color.NRGBA{R: 251, G: 192, B: 45, A: 255}
var errorColor = color.NRGBA{R: 207, G: 102, B: 121, A: 255}

type Theme struct {
	Material *material.Theme
}

func NewTheme() *Theme {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
	th.Palette.Bg = backgroundColor
	th.Palette.Fg = highEmphasisTextColor
	th.Palette.ContrastBg = primaryColor
	th.Palette.ContrastFg = black
	return &Theme{Material: th}
}
