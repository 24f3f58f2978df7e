package ninepatch

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"
)

// ErrDecode reports that a resource yielded no image data.
var ErrDecode = errors.New("decoding nine-patch resource")

// ResourceID identifies a texture resource, such as a slash-separated path
// within a resource filesystem.
type ResourceID string

// PixelFormat requested from a Decoder.
type PixelFormat byte

const (
	// RGBA8888 is 32 bits per pixel with non-premultiplied alpha.
	RGBA8888 PixelFormat = iota
)

// DecodeOptions configure a Decoder.
type DecodeOptions struct {
	PixelFormat PixelFormat
}

// Bitmap is a decoded resource: the pixels and the serialized 9-Patch chunk
// that was embedded alongside them, if any.
type Bitmap struct {
	Image image.Image
	Chunk []byte
}

// Decoder performs the blocking decode of a resource.
// A nil Bitmap with a nil error means the resource had no data.
type Decoder interface {
	Decode(id ResourceID, opts DecodeOptions) (*Bitmap, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(id ResourceID, opts DecodeOptions) (*Bitmap, error)

// Decode implements Decoder.
func (fn DecoderFunc) Decode(id ResourceID, opts DecodeOptions) (*Bitmap, error) {
	return fn(id, opts)
}

// Canvas draws 9-Patch textures.
type Canvas interface {
	// DrawNinePatch draws the texture stretched into the rectangle at (x, y)
	// sized (w, h).
	DrawNinePatch(t *Texture, x, y, w, h int) error
}

// Texture is a texture backed by a 9-Patch resource.
//
// Decoding is deferred until the bitmap or any of its geometry is first
// needed, and happens at most once: a failed decode is remembered and
// reported by every subsequent call.
type Texture struct {
	id      ResourceID
	decoder Decoder
	// once guards the load. bitmap, chunk, size and err are written once
	// inside it and read-only afterwards.
	once   sync.Once
	loaded atomic.Bool
	bitmap image.Image
	chunk  *Chunk
	size   image.Point
	err    error
}

// NewTexture allocates a texture for the resource. Nothing is decoded until
// first use.
func NewTexture(decoder Decoder, id ResourceID) *Texture {
	return &Texture{id: id, decoder: decoder}
}

// ID of the resource backing the texture.
func (t *Texture) ID() ResourceID {
	return t.id
}

// Loaded reports whether the load has been attempted.
func (t *Texture) Loaded() bool {
	return t.loaded.Load()
}

// Bitmap returns the decoded pixels, decoding on first use.
func (t *Texture) Bitmap() (image.Image, error) {
	t.once.Do(t.load)
	return t.bitmap, t.err
}

// Size returns the pixel dimensions of the bitmap, decoding on first use.
func (t *Texture) Size() (image.Point, error) {
	t.once.Do(t.load)
	return t.size, t.err
}

// Paddings returns the content inset specified by the 9-Patch.
func (t *Texture) Paddings() (Padding, error) {
	t.once.Do(t.load)
	if t.err != nil {
		return Padding{}, t.err
	}
	return t.chunk.Padding(), nil
}

// Chunk returns the 9-Patch layout data.
func (t *Texture) Chunk() (*Chunk, error) {
	t.once.Do(t.load)
	return t.chunk, t.err
}

// Draw the texture onto the canvas.
func (t *Texture) Draw(c Canvas, x, y, w, h int) error {
	return c.DrawNinePatch(t, x, y, w, h)
}

// load decodes the resource and parses its chunk. Either both the bitmap and
// chunk are populated, or err is.
func (t *Texture) load() {
	defer t.loaded.Store(true)
	bitmap, chunk, err := t.decode()
	if err != nil {
		t.err = err
		return
	}
	t.bitmap = bitmap.Image
	t.size = bitmap.Image.Bounds().Size()
	t.chunk = chunk
}

func (t *Texture) decode() (*Bitmap, *Chunk, error) {
	bitmap, err := t.decoder.Decode(t.id, DecodeOptions{PixelFormat: RGBA8888})
	if err != nil {
		return nil, nil, fmt.Errorf("%w %q: %w", ErrDecode, t.id, err)
	}
	if bitmap == nil || bitmap.Image == nil {
		return nil, nil, fmt.Errorf("%w %q: no image data", ErrDecode, t.id)
	}
	if bitmap.Chunk == nil {
		return nil, nil, fmt.Errorf("invalid nine-patch image %q: %w", t.id, ErrMalformedChunk)
	}
	chunk, err := Deserialize(bitmap.Chunk)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid nine-patch image %q: %w", t.id, err)
	}
	if err := chunk.Validate(bitmap.Image.Bounds().Size()); err != nil {
		return nil, nil, fmt.Errorf("invalid nine-patch image %q: %w", t.id, err)
	}
	return bitmap, chunk, nil
}
