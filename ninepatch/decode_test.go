package ninepatch

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestChunkFromImage tests that 9-Patch data is successfully read from the
// marker border of a source image.
func TestChunkFromImage(t *testing.T) {
	for _, tt := range []struct {
		Label   string
		Src     image.Image
		XDivs   []int32
		YDivs   []int32
		Padding Padding
	}{
		{
			// Without content markers the content area is the stretch area.
			Label:   "stretch regions without content inset",
			Src:     NewImg(image.Pt(10, 10)).Top(3, 7).Left(2, 8),
			XDivs:   []int32{3, 7},
			YDivs:   []int32{2, 8},
			Padding: Padding{Left: 3, Top: 2, Right: 3, Bottom: 2},
		},
		{
			Label:   "content marked on one axis only",
			Src:     NewImg(image.Pt(10, 10)).Top(3, 7).Left(2, 8).Bottom(1, 9),
			XDivs:   []int32{3, 7},
			YDivs:   []int32{2, 8},
			Padding: Padding{Left: 1, Top: 2, Right: 1, Bottom: 2},
		},
		{
			Label:   "stretch regions and content inset",
			Src:     NewImg(image.Pt(10, 10)).Top(3, 7).Left(2, 8).Bottom(1, 9).Right(2, 6),
			XDivs:   []int32{3, 7},
			YDivs:   []int32{2, 8},
			Padding: Padding{Left: 1, Top: 2, Right: 1, Bottom: 4},
		},
		{
			Label:   "multiple stretch regions",
			Src:     NewImg(image.Pt(10, 10)).Top(1, 3).Top(5, 8).Left(0, 10),
			XDivs:   []int32{1, 3, 5, 8},
			YDivs:   []int32{0, 10},
			Padding: Padding{Left: 1, Right: 2},
		},
		{
			Label:   "markers running into the corners",
			Src:     NewImg(image.Pt(6, 4)).Top(0, 6).Left(0, 4).Bottom(0, 6).Right(0, 4),
			XDivs:   []int32{0, 6},
			YDivs:   []int32{0, 4},
			Padding: Padding{},
		},
	} {
		t.Run(tt.Label, func(t *testing.T) {
			img, chunk, err := ChunkFromImage(tt.Src)
			require.NoError(t, err)
			assert.Equal(t, tt.XDivs, chunk.XDivs())
			assert.Equal(t, tt.YDivs, chunk.YDivs())
			assert.Equal(t, tt.Padding, chunk.Padding())
			inner := tt.Src.Bounds().Inset(1)
			assert.Equal(t, inner.Size(), img.Bounds().Size())
			assert.NoError(t, chunk.Validate(img.Bounds().Size()))
		})
	}
}

func TestChunkFromImageCropsBorder(t *testing.T) {
	src := NewImg(image.Pt(4, 3)).Top(1, 2).Left(1, 2)
	img, _, err := ChunkFromImage(src)
	require.NoError(t, err)
	assert.Equal(t, src.NRGBAAt(1, 1), img.NRGBAAt(0, 0))
	assert.Equal(t, src.NRGBAAt(4, 3), img.NRGBAAt(3, 2))
}

func TestChunkFromImageRejects(t *testing.T) {
	for _, tt := range []struct {
		Label string
		Src   image.Image
	}{
		{
			Label: "empty image",
			Src:   image.NewNRGBA(image.Rectangle{}),
		},
		{
			Label: "image with no border",
			Src:   NewImg(image.Pt(10, 10)),
		},
		{
			Label: "image without vertical stretch",
			Src:   NewImg(image.Pt(10, 10)).Top(2, 4),
		},
	} {
		t.Run(tt.Label, func(t *testing.T) {
			_, _, err := ChunkFromImage(tt.Src)
			assert.ErrorIs(t, err, ErrMalformedChunk)
		})
	}
}

func TestToNRGBA(t *testing.T) {
	nrgba := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	assert.Same(t, nrgba, ToNRGBA(nrgba))

	offset := image.NewRGBA(image.Rect(5, 5, 7, 8))
	got := ToNRGBA(offset)
	assert.Equal(t, image.Rect(0, 0, 2, 3), got.Bounds())
}
