package wallpaper

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/transform"
)

// Sink stores and displays the wallpaper.
type Sink interface {
	SetBitmap(img image.Image) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(img image.Image) error

// SetBitmap implements Sink.
func (fn SinkFunc) SetBitmap(img image.Image) error {
	return fn(img)
}

// FileSink stores the wallpaper as a PNG file, for desktops that display
// whatever image sits at a well-known path.
type FileSink struct {
	// Path of the wallpaper file.
	Path string
	// Size to scale the wallpaper to. Zero keeps the image size.
	Size image.Point
}

// SetBitmap implements Sink. The file is replaced atomically so that the
// desktop never observes a partially written wallpaper.
func (s FileSink) SetBitmap(img image.Image) error {
	if s.Size.X > 0 && s.Size.Y > 0 && img.Bounds().Size() != s.Size {
		img = transform.Resize(img, s.Size.X, s.Size.Y, transform.Linear)
	}
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating wallpaper directory: %w", err)
	}
	f, err := os.CreateTemp(dir, ".wallpaper-*.png")
	if err != nil {
		return fmt.Errorf("creating wallpaper file: %w", err)
	}
	defer os.Remove(f.Name())
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding wallpaper: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing wallpaper: %w", err)
	}
	if err := os.Rename(f.Name(), s.Path); err != nil {
		return fmt.Errorf("installing wallpaper: %w", err)
	}
	return nil
}
