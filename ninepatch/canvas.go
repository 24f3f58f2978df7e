package ninepatch

import (
	"image"

	"gioui.org/f32"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
)

// GioCanvas draws 9-Patch textures into a Gio operation list.
//
// Image operations are cached per texture so the bitmap is uploaded once.
// Set Ops to the current frame's operations before drawing.
type GioCanvas struct {
	Ops    *op.Ops
	images map[*Texture]paint.ImageOp
}

// DrawNinePatch implements Canvas.
//
// The bitmap is cut along the chunk dividers into a grid; static cells are
// drawn at their source size and stretchable cells are scaled to fill the
// rest. Transparent cells are skipped, solid cells are filled with their color
// rather than sampled.
func (c *GioCanvas) DrawNinePatch(t *Texture, x, y, w, h int) error {
	bitmap, err := t.Bitmap()
	if err != nil {
		return err
	}
	chunk, err := t.Chunk()
	if err != nil {
		return err
	}
	size, err := t.Size()
	if err != nil {
		return err
	}
	img := c.image(t, bitmap)
	defer op.Affine(f32.Affine2D{}.Offset(f32.Pt(float32(x), float32(y)))).Push(c.Ops).Pop()
	for _, cell := range cells(chunk, size, w, h) {
		if cell.Hint.Solid() {
			paint.FillShape(c.Ops, cell.Hint.NRGBA(), clip.Rect(cell.Dst).Op())
			continue
		}
		c.drawCell(img, cell.Src, cell.Dst)
	}
	return nil
}

// cell of the patch grid: a region of the bitmap and where it lands.
type cell struct {
	Src, Dst image.Rectangle
	Hint     ColorHint
}

// cells lays the patch grid of a bitmap of the given size over the rectangle
// (0, 0)-(w, h), in row-major order. Collapsed and transparent cells are left
// out, as are sampled cells without source pixels.
func cells(chunk *Chunk, size image.Point, w, h int) []cell {
	var (
		cols = Stretch(chunk.xDivs, size.X, w)
		rows = Stretch(chunk.yDivs, size.Y, h)
		out  = make([]cell, 0, len(cols)*len(rows))
	)
	for rr, row := range rows {
		for cc, col := range cols {
			c := cell{
				Src:  image.Rect(col.SrcMin, row.SrcMin, col.SrcMax, row.SrcMax),
				Dst:  image.Rect(col.DstMin, row.DstMin, col.DstMax, row.DstMax),
				Hint: chunk.Hint(cc, rr),
			}
			switch {
			case c.Dst.Empty(), c.Hint == Transparent:
				continue
			case !c.Hint.Solid() && c.Src.Empty():
				continue
			}
			out = append(out, c)
		}
	}
	return out
}

// drawCell draws the src region of the image scaled into dst.
func (c *GioCanvas) drawCell(img paint.ImageOp, src, dst image.Rectangle) {
	scale := f32.Pt(
		float32(dst.Dx())/float32(src.Dx()),
		float32(dst.Dy())/float32(src.Dy()),
	)
	tr := f32.Affine2D{}.
		Offset(f32.Pt(-float32(src.Min.X), -float32(src.Min.Y))).
		Scale(f32.Point{}, scale).
		Offset(f32.Pt(float32(dst.Min.X), float32(dst.Min.Y)))
	defer clip.Rect(dst).Push(c.Ops).Pop()
	defer op.Affine(tr).Push(c.Ops).Pop()
	img.Add(c.Ops)
	paint.PaintOp{}.Add(c.Ops)
}

// image returns the cached image operation for the texture, baking it on
// first use.
func (c *GioCanvas) image(t *Texture, bitmap image.Image) paint.ImageOp {
	if c.images == nil {
		c.images = make(map[*Texture]paint.ImageOp)
	}
	img, ok := c.images[t]
	if !ok {
		img = paint.NewImageOp(ToNRGBA(bitmap))
		c.images[t] = img
	}
	return img
}
