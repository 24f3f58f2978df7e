package ninepatch

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// FSDecoder decodes uncompiled 9-Patch images out of a filesystem, treating
// each ResourceID as a path within it.
//
// The 9-Patch markers are read from the 1px image border and serialized into
// the Bitmap's chunk, so textures consume FSDecoder output the same way they
// consume a platform decoder's.
type FSDecoder struct {
	FS fs.FS
}

// Decode implements Decoder.
func (d FSDecoder) Decode(id ResourceID, opts DecodeOptions) (*Bitmap, error) {
	if opts.PixelFormat != RGBA8888 {
		return nil, fmt.Errorf("unsupported pixel format %d", opts.PixelFormat)
	}
	data, err := fs.ReadFile(d.FS, string(id))
	if err != nil {
		return nil, fmt.Errorf("reading resource: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	if !filetype.IsImage(data) {
		kind, _ := filetype.Match(data)
		return nil, fmt.Errorf("resource is not an image: %s", kind.MIME.Value)
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	img, chunk, err := ChunkFromImage(src)
	if err != nil {
		return nil, err
	}
	serialized, err := chunk.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return &Bitmap{Image: img, Chunk: serialized}, nil
}
