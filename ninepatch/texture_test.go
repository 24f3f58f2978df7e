package ninepatch

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextureDecodesOnce(t *testing.T) {
	dec := &countingDecoder{bitmap: patchBitmap()}
	tex := NewTexture(dec, "bubble.9.png")
	assert.False(t, tex.Loaded())
	assert.Equal(t, 0, dec.Calls(), "construction must not decode")

	for ii := 0; ii < 5; ii++ {
		img, err := tex.Bitmap()
		require.NoError(t, err)
		assert.Same(t, dec.bitmap.Image, img)
	}
	_, _ = tex.Paddings()
	_, _ = tex.Chunk()
	_, _ = tex.Size()

	assert.True(t, tex.Loaded())
	assert.Equal(t, 1, dec.Calls())
	assert.Equal(t, []DecodeOptions{{PixelFormat: RGBA8888}}, dec.opts)
}

func TestTexturePaddingsBeforeBitmap(t *testing.T) {
	dec := &countingDecoder{bitmap: patchBitmap()}
	tex := NewTexture(dec, "bubble.9.png")

	pad, err := tex.Paddings()
	require.NoError(t, err)
	assert.Equal(t, Padding{Left: 2, Top: 2, Right: 2, Bottom: 2}, pad)
	assert.Equal(t, 1, dec.Calls())

	size, err := tex.Size()
	require.NoError(t, err)
	assert.Equal(t, image.Pt(10, 10), size)

	chunk, err := tex.Chunk()
	require.NoError(t, err)
	assert.Equal(t, []int32{3, 7}, chunk.XDivs())
	assert.Equal(t, 1, dec.Calls())
}

func TestTextureFailures(t *testing.T) {
	for _, tt := range []struct {
		Label   string
		Decoder *countingDecoder
		Want    error
	}{
		{
			Label:   "decoder returns nothing",
			Decoder: &countingDecoder{},
			Want:    ErrDecode,
		},
		{
			Label:   "decoder returns no image",
			Decoder: &countingDecoder{bitmap: &Bitmap{Chunk: patchBitmap().Chunk}},
			Want:    ErrDecode,
		},
		{
			Label:   "decoder fails",
			Decoder: &countingDecoder{err: errors.New("disk on fire")},
			Want:    ErrDecode,
		},
		{
			Label: "no embedded chunk",
			Decoder: &countingDecoder{bitmap: &Bitmap{
				Image: image.NewNRGBA(image.Rect(0, 0, 4, 4)),
			}},
			Want: ErrMalformedChunk,
		},
		{
			Label: "garbage chunk",
			Decoder: &countingDecoder{bitmap: &Bitmap{
				Image: image.NewNRGBA(image.Rect(0, 0, 4, 4)),
				Chunk: []byte{1, 2, 3},
			}},
			Want: ErrMalformedChunk,
		},
		{
			Label: "chunk outside the image",
			Decoder: &countingDecoder{bitmap: &Bitmap{
				Image: image.NewNRGBA(image.Rect(0, 0, 4, 4)),
				Chunk: patchBitmap().Chunk,
			}},
			Want: ErrMalformedChunk,
		},
	} {
		t.Run(tt.Label, func(t *testing.T) {
			tex := NewTexture(tt.Decoder, "broken.9.png")

			img, err := tex.Bitmap()
			assert.ErrorIs(t, err, tt.Want)
			assert.Nil(t, img)

			pad, padErr := tex.Paddings()
			assert.Equal(t, err, padErr, "paddings must fail identically")
			assert.Equal(t, Padding{}, pad)

			chunk, chunkErr := tex.Chunk()
			assert.Equal(t, err, chunkErr)
			assert.Nil(t, chunk)

			assert.Equal(t, 1, tt.Decoder.Calls(), "failed decode must not be retried")
		})
	}
}

// recordingCanvas records draw calls.
type recordingCanvas struct {
	textures []*Texture
	rects    []image.Rectangle
}

func (c *recordingCanvas) DrawNinePatch(t *Texture, x, y, w, h int) error {
	c.textures = append(c.textures, t)
	c.rects = append(c.rects, image.Rect(x, y, x+w, y+h))
	return nil
}

func TestTextureDraw(t *testing.T) {
	dec := &countingDecoder{bitmap: patchBitmap()}
	tex := NewTexture(dec, "bubble.9.png")
	canvas := &recordingCanvas{}

	require.NoError(t, tex.Draw(canvas, 5, 6, 100, 40))
	assert.Equal(t, []*Texture{tex}, canvas.textures)
	assert.Equal(t, []image.Rectangle{image.Rect(5, 6, 105, 46)}, canvas.rects)
	assert.Equal(t, 0, dec.Calls(), "the canvas decides when to decode")
	assert.Equal(t, ResourceID("bubble.9.png"), tex.ID())
}
