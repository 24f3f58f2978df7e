/*
Package debug provides tools for debugging the layout of 9-Patch surfaces.
*/
package debug

import (
	"image/color"

	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

// ContentColor outlines the content area of a surface.
var ContentColor = color.NRGBA{R: 255, A: 200}

// Outline traces a thin outline around the provided widget when enabled, so
// that the content inset of a surface can be checked by eye.
func Outline(enabled bool, gtx C, w layout.Widget) D {
	if !enabled {
		return w(gtx)
	}
	return widget.Border{
		Color: ContentColor,
		Width: unit.Dp(1),
	}.Layout(gtx, w)
}
