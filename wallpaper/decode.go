package wallpaper

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrDecode reports that the cropped image could not be decoded.
var ErrDecode = errors.New("decoding wallpaper")

// Decoder decodes the image written by the cropper.
type Decoder interface {
	Decode(r io.Reader) (image.Image, error)
}

// sniffLen is the header length filetype needs to match every image type.
const sniffLen = 262

// ImageDecoder decodes any registered raster format, rejecting data that
// does not look like an image before handing it to the codecs.
type ImageDecoder struct{}

// Decode implements Decoder.
func (ImageDecoder) Decode(r io.Reader) (image.Image, error) {
	br := bufio.NewReaderSize(r, sniffLen)
	head, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: reading header: %v", ErrDecode, err)
	}
	if len(head) == 0 {
		return nil, fmt.Errorf("%w: no data", ErrDecode)
	}
	if !filetype.IsImage(head) {
		return nil, fmt.Errorf("%w: not an image", ErrDecode)
	}
	img, _, err := image.Decode(br)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrDecode)
	}
	return img, nil
}
