// Package ninepatch implements 9-Patch textures: the platform chunk format,
// lazily decoded textures, and their rendering in Gio.
// https://developer.android.com/guide/topics/graphics/drawables#nine-patch
package ninepatch

import (
	"image"
	"log"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

// Surface is a 9-Patch themed container that lays content in the content
// area described by the texture's paddings.
type Surface struct {
	Texture *Texture
	// Canvas retains image operations between frames. Optional.
	Canvas *GioCanvas
}

// Layout content atop the 9-Patch themed surface.
//
// If the texture cannot be loaded the content is laid out bare.
func (s Surface) Layout(gtx C, w layout.Widget) D {
	pad, err := s.Texture.Paddings()
	if err != nil {
		log.Printf("laying out surface: %v", err)
		return w(gtx)
	}
	var (
		inset = image.Pt(pad.Left+pad.Right, pad.Top+pad.Bottom)
		cgtx  = gtx
	)
	cgtx.Constraints.Min = nonNegative(gtx.Constraints.Min.Sub(inset))
	cgtx.Constraints.Max = nonNegative(gtx.Constraints.Max.Sub(inset))
	macro := op.Record(gtx.Ops)
	dims := w(cgtx)
	call := macro.Stop()
	size := gtx.Constraints.Constrain(dims.Size.Add(inset))
	canvas := s.Canvas
	if canvas == nil {
		canvas = &GioCanvas{}
	}
	canvas.Ops = gtx.Ops
	if err := s.Texture.Draw(canvas, 0, 0, size.X, size.Y); err != nil {
		log.Printf("drawing surface: %v", err)
	}
	func() {
		defer op.Affine(f32.Affine2D{}.Offset(f32.Pt(float32(pad.Left), float32(pad.Top)))).Push(gtx.Ops).Pop()
		call.Add(gtx.Ops)
	}()
	return D{Size: size, Baseline: dims.Baseline + pad.Bottom}
}

func nonNegative(pt image.Point) image.Point {
	if pt.X < 0 {
		pt.X = 0
	}
	if pt.Y < 0 {
		pt.Y = 0
	}
	return pt
}
