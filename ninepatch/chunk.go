package ninepatch

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ErrMalformedChunk reports a 9-Patch chunk that does not match the platform
// binary layout.
var ErrMalformedChunk = errors.New("malformed nine-patch chunk")

// chunkHeaderSize is the fixed size of the serialized chunk before the
// divider arrays.
const chunkHeaderSize = 32

// chunkOrder is the byte order of the serialized chunk. Chunks are handed
// over in device-native order, which is little-endian on every platform that
// produces them.
var chunkOrder = binary.LittleEndian

// ColorHint describes how a single region of the patch grid is filled.
type ColorHint uint32

const (
	// Transparent regions are fully transparent and need not be drawn.
	Transparent ColorHint = 0x00000000
	// NoColor regions contain more than one color and must be drawn from the
	// bitmap.
	NoColor ColorHint = 0x00000001
)

// Solid reports whether the region is filled with a single opaque-or-not
// color that can be drawn without sampling the bitmap.
func (h ColorHint) Solid() bool {
	return h != Transparent && h != NoColor
}

// NRGBA returns the hint as a color. Only meaningful for solid hints.
func (h ColorHint) NRGBA() color.NRGBA {
	return color.NRGBA{
		A: uint8(h >> 24),
		R: uint8(h >> 16),
		G: uint8(h >> 8),
		B: uint8(h),
	}
}

// Padding is the content inset of a 9-Patch in pixels.
type Padding struct {
	Left, Top, Right, Bottom int
}

// Chunk is the layout data of a 9-Patch: where it stretches and where its
// content goes. A Chunk is immutable once constructed.
type Chunk struct {
	xDivs   []int32
	yDivs   []int32
	padding Padding
	colors  []ColorHint
}

// NewChunk builds a chunk from its parts, applying the same checks as
// Deserialize.
func NewChunk(xDivs, yDivs []int32, padding Padding, colors []ColorHint) (*Chunk, error) {
	c := &Chunk{
		xDivs:   append([]int32(nil), xDivs...),
		yDivs:   append([]int32(nil), yDivs...),
		padding: padding,
		colors:  append([]ColorHint(nil), colors...),
	}
	if err := c.check(); err != nil {
		return nil, err
	}
	return c, nil
}

// Deserialize a chunk from the platform's binary layout.
//
// 	[0]     wasDeserialized marker, non-zero
// 	[1]     number of x dividers
// 	[2]     number of y dividers
// 	[3]     number of colors
// 	[4:12]  divider offsets, ignored
// 	[12:28] padding left, right, top, bottom
// 	[28:32] color offset, ignored
// 	[32:]   x dividers, y dividers, colors
//
func Deserialize(data []byte) (*Chunk, error) {
	if len(data) < chunkHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrMalformedChunk, len(data))
	}
	if data[0] == 0 {
		return nil, fmt.Errorf("%w: missing serialization marker", ErrMalformedChunk)
	}
	var (
		nx = int(int8(data[1]))
		ny = int(int8(data[2]))
		nc = int(int8(data[3]))
	)
	if nx < 0 || ny < 0 || nc < 0 {
		return nil, fmt.Errorf("%w: negative count (x:%d y:%d colors:%d)", ErrMalformedChunk, nx, ny, nc)
	}
	if want := chunkHeaderSize + 4*(nx+ny+nc); len(data) < want {
		return nil, fmt.Errorf("%w: truncated, have %d bytes, want %d", ErrMalformedChunk, len(data), want)
	}
	var (
		c   = &Chunk{}
		off = chunkHeaderSize
	)
	c.padding = Padding{
		Left:   int(int32(chunkOrder.Uint32(data[12:]))),
		Right:  int(int32(chunkOrder.Uint32(data[16:]))),
		Top:    int(int32(chunkOrder.Uint32(data[20:]))),
		Bottom: int(int32(chunkOrder.Uint32(data[24:]))),
	}
	c.xDivs, off = readDivs(data, off, nx)
	c.yDivs, off = readDivs(data, off, ny)
	if nc > 0 {
		c.colors = make([]ColorHint, nc)
		for ii := range c.colors {
			c.colors[ii] = ColorHint(chunkOrder.Uint32(data[off:]))
			off += 4
		}
	}
	if err := c.check(); err != nil {
		return nil, err
	}
	return c, nil
}

func readDivs(data []byte, off, n int) ([]int32, int) {
	divs := make([]int32, n)
	for ii := range divs {
		divs[ii] = int32(chunkOrder.Uint32(data[off:]))
		off += 4
	}
	return divs, off
}

// check the structural invariants that hold regardless of image size.
func (c *Chunk) check() error {
	if err := checkDivs("x", c.xDivs); err != nil {
		return err
	}
	if err := checkDivs("y", c.yDivs); err != nil {
		return err
	}
	if len(c.colors) > 127 {
		return fmt.Errorf("%w: %d colors do not fit the layout", ErrMalformedChunk, len(c.colors))
	}
	if regions := (len(c.xDivs) + 1) * (len(c.yDivs) + 1); len(c.colors) > regions {
		return fmt.Errorf("%w: %d colors for %d regions", ErrMalformedChunk, len(c.colors), regions)
	}
	p := c.padding
	if p.Left < 0 || p.Top < 0 || p.Right < 0 || p.Bottom < 0 {
		return fmt.Errorf("%w: negative padding %+v", ErrMalformedChunk, p)
	}
	return nil
}

func checkDivs(axis string, divs []int32) error {
	if len(divs) == 0 || len(divs)%2 != 0 || len(divs) > 127 {
		return fmt.Errorf("%w: invalid %s divider count %d", ErrMalformedChunk, axis, len(divs))
	}
	var prev int32
	for ii, d := range divs {
		if d < prev {
			return fmt.Errorf("%w: %s divider %d (%d) precedes %d", ErrMalformedChunk, axis, ii, d, prev)
		}
		prev = d
	}
	return nil
}

// Validate that the dividers and paddings fit an image of the given size.
func (c *Chunk) Validate(size image.Point) error {
	if len(c.xDivs) == 0 || len(c.yDivs) == 0 {
		return fmt.Errorf("%w: missing dividers", ErrMalformedChunk)
	}
	if last := c.xDivs[len(c.xDivs)-1]; int(last) > size.X {
		return fmt.Errorf("%w: x divider %d outside width %d", ErrMalformedChunk, last, size.X)
	}
	if last := c.yDivs[len(c.yDivs)-1]; int(last) > size.Y {
		return fmt.Errorf("%w: y divider %d outside height %d", ErrMalformedChunk, last, size.Y)
	}
	p := c.padding
	if p.Left+p.Right > size.X || p.Top+p.Bottom > size.Y {
		return fmt.Errorf("%w: padding %+v exceeds size %v", ErrMalformedChunk, p, size)
	}
	return nil
}

// MarshalBinary encodes the chunk in the layout read by Deserialize.
func (c *Chunk) MarshalBinary() ([]byte, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	var (
		nx, ny, nc = len(c.xDivs), len(c.yDivs), len(c.colors)
		data       = make([]byte, chunkHeaderSize+4*(nx+ny+nc))
		off        = chunkHeaderSize
	)
	data[0] = 1
	data[1] = byte(nx)
	data[2] = byte(ny)
	data[3] = byte(nc)
	// The offset fields are filled like the platform does, relative to the
	// start of the chunk.
	chunkOrder.PutUint32(data[4:], uint32(chunkHeaderSize))
	chunkOrder.PutUint32(data[8:], uint32(chunkHeaderSize+4*nx))
	chunkOrder.PutUint32(data[12:], uint32(int32(c.padding.Left)))
	chunkOrder.PutUint32(data[16:], uint32(int32(c.padding.Right)))
	chunkOrder.PutUint32(data[20:], uint32(int32(c.padding.Top)))
	chunkOrder.PutUint32(data[24:], uint32(int32(c.padding.Bottom)))
	chunkOrder.PutUint32(data[28:], uint32(chunkHeaderSize+4*(nx+ny)))
	for _, d := range c.xDivs {
		chunkOrder.PutUint32(data[off:], uint32(d))
		off += 4
	}
	for _, d := range c.yDivs {
		chunkOrder.PutUint32(data[off:], uint32(d))
		off += 4
	}
	for _, h := range c.colors {
		chunkOrder.PutUint32(data[off:], uint32(h))
		off += 4
	}
	return data, nil
}

// XDivs returns the horizontal stretch dividers, in pairs of [start, end).
func (c *Chunk) XDivs() []int32 {
	return append([]int32(nil), c.xDivs...)
}

// YDivs returns the vertical stretch dividers, in pairs of [start, end).
func (c *Chunk) YDivs() []int32 {
	return append([]int32(nil), c.yDivs...)
}

// Padding returns the content inset.
func (c *Chunk) Padding() Padding {
	return c.padding
}

// Colors returns the per-region color hints, if any.
func (c *Chunk) Colors() []ColorHint {
	return append([]ColorHint(nil), c.colors...)
}

// Hint returns the color hint for the region at (col, row) of the patch grid.
// Regions without a hint report NoColor.
func (c *Chunk) Hint(col, row int) ColorHint {
	ii := row*(len(c.xDivs)+1) + col
	if ii < 0 || ii >= len(c.colors) {
		return NoColor
	}
	return c.colors[ii]
}
