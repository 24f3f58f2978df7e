package ninepatch

import (
	"image"
	"image/color"
	"sync"
)

// Img wraps an image.NRGBA with mutators for creating mock 9-Patch source
// images. The marker offsets are relative to the content inside the 1px
// border, like the chunk offsets they produce.
type Img struct {
	*image.NRGBA
}

// NewImg allocates an Img whose content is sz, plus the marker border.
func NewImg(sz image.Point) *Img {
	img := &Img{
		NRGBA: image.NewNRGBA(image.Rectangle{Max: sz.Add(image.Pt(2, 2))}),
	}
	for xx := 1; xx <= sz.X; xx++ {
		for yy := 1; yy <= sz.Y; yy++ {
			img.Set(xx, yy, color.NRGBA{R: uint8(xx), G: uint8(yy), A: 255})
		}
	}
	return img
}

var marker = color.NRGBA{A: 255}

// Top marks a horizontal stretch region [start, end).
func (img *Img) Top(start, end int) *Img {
	for ii := start; ii < end; ii++ {
		img.Set(ii+1, 0, marker)
	}
	return img
}

// Left marks a vertical stretch region [start, end).
func (img *Img) Left(start, end int) *Img {
	for ii := start; ii < end; ii++ {
		img.Set(0, ii+1, marker)
	}
	return img
}

// Bottom marks the horizontal content area [start, end).
func (img *Img) Bottom(start, end int) *Img {
	for ii := start; ii < end; ii++ {
		img.Set(ii+1, img.Bounds().Max.Y-1, marker)
	}
	return img
}

// Right marks the vertical content area [start, end).
func (img *Img) Right(start, end int) *Img {
	for ii := start; ii < end; ii++ {
		img.Set(img.Bounds().Max.X-1, ii+1, marker)
	}
	return img
}

// countingDecoder is a Decoder that records how often it is invoked.
type countingDecoder struct {
	sync.Mutex
	calls  int
	opts   []DecodeOptions
	bitmap *Bitmap
	err    error
}

func (d *countingDecoder) Decode(id ResourceID, opts DecodeOptions) (*Bitmap, error) {
	d.Lock()
	defer d.Unlock()
	d.calls++
	d.opts = append(d.opts, opts)
	return d.bitmap, d.err
}

func (d *countingDecoder) Calls() int {
	d.Lock()
	defer d.Unlock()
	return d.calls
}

// mustChunk builds a chunk, panicking on failure.
func mustChunk(xDivs, yDivs []int32, padding Padding, colors []ColorHint) *Chunk {
	c, err := NewChunk(xDivs, yDivs, padding, colors)
	if err != nil {
		panic(err)
	}
	return c
}

// mustMarshal serializes a chunk, panicking on failure.
func mustMarshal(c *Chunk) []byte {
	data, err := c.MarshalBinary()
	if err != nil {
		panic(err)
	}
	return data
}

// patchBitmap is a 10x10 bitmap with a centered stretch region and a 2px
// content inset.
func patchBitmap() *Bitmap {
	return &Bitmap{
		Image: image.NewNRGBA(image.Rect(0, 0, 10, 10)),
		Chunk: mustMarshal(mustChunk(
			[]int32{3, 7},
			[]int32{3, 7},
			Padding{Left: 2, Top: 2, Right: 2, Bottom: 2},
			nil,
		)),
	}
}
