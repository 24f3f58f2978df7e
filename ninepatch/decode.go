package ninepatch

import (
	"fmt"
	"image"
	"image/draw"
)

// axis along which the border is walked.
type axis bool

const (
	horizontal axis = false
	vertical   axis = true
)

// convert maps a (main, cross) coordinate pair to an image point.
func (a axis) convert(main, cross int) image.Point {
	if a == vertical {
		return image.Point{X: cross, Y: main}
	}
	return image.Point{X: main, Y: cross}
}

// ChunkFromImage extracts 9-Patch data from the 1px marker border of an
// uncompiled 9-Patch source image.
//
// The top and left borders mark the stretch regions, every run of marked
// pixels becoming a divider pair. The right and bottom borders mark the
// content area, which defaults to the stretch regions on an unmarked axis. The returned image is the source with the border cropped off,
// and all chunk offsets are relative to it.
//
// Note: Any pixel with non-zero alpha along the border is considered a
// marker.
func ChunkFromImage(src image.Image) (*image.NRGBA, *Chunk, error) {
	b := src.Bounds()
	if b.Dx() < 3 || b.Dy() < 3 {
		return nil, nil, fmt.Errorf("%w: %v is too small to carry a marker border", ErrMalformedChunk, b.Size())
	}
	var (
		inner   = image.Rect(b.Min.X+1, b.Min.Y+1, b.Max.X-1, b.Max.Y-1)
		padding Padding
	)
	xDivs := walk(src, inner, b.Min.Y, horizontal)
	yDivs := walk(src, inner, b.Min.X, vertical)
	// Without content markers on an axis, the content spans the stretch
	// regions of that axis.
	bottom := walk(src, inner, b.Max.Y-1, horizontal)
	if len(bottom) == 0 {
		bottom = xDivs
	}
	if len(bottom) > 0 {
		padding.Left = int(bottom[0])
		padding.Right = inner.Dx() - int(bottom[len(bottom)-1])
	}
	right := walk(src, inner, b.Max.X-1, vertical)
	if len(right) == 0 {
		right = yDivs
	}
	if len(right) > 0 {
		padding.Top = int(right[0])
		padding.Bottom = inner.Dy() - int(right[len(right)-1])
	}
	chunk, err := NewChunk(xDivs, yDivs, padding, nil)
	if err != nil {
		return nil, nil, err
	}
	return cropBorder(src, inner), chunk, nil
}

// walk the border pixels at the given cross-axis offset, returning every run
// of marked pixels as a [start, end) pair relative to the inner rectangle.
func walk(src image.Image, inner image.Rectangle, offset int, a axis) []int32 {
	var (
		start, end = inner.Min.X, inner.Max.X
		divs       []int32
		open       = -1
	)
	if a == vertical {
		start, end = inner.Min.Y, inner.Max.Y
	}
	for ii := start; ii < end; ii++ {
		pt := a.convert(ii, offset)
		_, _, _, alpha := src.At(pt.X, pt.Y).RGBA()
		marked := alpha > 0
		if marked && open < 0 {
			open = ii
		}
		if !marked && open >= 0 {
			divs = append(divs, int32(open-start), int32(ii-start))
			open = -1
		}
	}
	if open >= 0 {
		divs = append(divs, int32(open-start), int32(end-start))
	}
	return divs
}

// cropBorder copies the region inside the 1px marker border into a fresh
// image anchored at the origin.
//
// TODO [performance]: type switch src to an *image.NRGBA and return a SubImage
// rather than copying when the caller does not mutate the result.
func cropBorder(src image.Image, inner image.Rectangle) *image.NRGBA {
	out := image.NewNRGBA(image.Rectangle{Max: inner.Size()})
	draw.Draw(out, out.Bounds(), src, inner.Min, draw.Src)
	return out
}

// ToNRGBA returns src as an *image.NRGBA anchored at the origin, copying only
// when necessary.
func ToNRGBA(src image.Image) *image.NRGBA {
	if nrgba, ok := src.(*image.NRGBA); ok && nrgba.Bounds().Min == (image.Point{}) {
		return nrgba
	}
	b := src.Bounds()
	out := image.NewNRGBA(image.Rectangle{Max: b.Size()})
	draw.Draw(out, out.Bounds(), src, b.Min, draw.Src)
	return out
}
