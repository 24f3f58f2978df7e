package main

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"

	"github.com/anthonynsimon/bild/transform"

	"git.sr.ht/~gioverse/wallpaper/wallpaper"
)

// pickResult is what the cropper reports back to the UI context.
type pickResult struct {
	Code    wallpaper.RequestCode
	Result  wallpaper.ResultCode
	HasData bool
}

// cropper stands in for the platform crop activity: it center-crops the
// source to the requested aspect, scales it to the requested size, and
// writes it where the request says.
//
// Picking is not supported; a request without a source is canceled.
type cropper struct {
	results chan<- pickResult
}

// Launch implements wallpaper.Picker. The crop runs in the background, like
// an external activity would.
func (c cropper) Launch(code wallpaper.RequestCode, req wallpaper.CropRequest) error {
	go func() {
		res := pickResult{Code: code, Result: wallpaper.ResultCanceled}
		if err := crop(req); err != nil {
			log.Printf("cropping: %v", err)
		} else {
			res.Result, res.HasData = wallpaper.ResultOK, true
		}
		c.results <- res
	}()
	return nil
}

func crop(req wallpaper.CropRequest) error {
	if req.Source == "" {
		return fmt.Errorf("no source image, pass -source")
	}
	if req.Format != wallpaper.PNG {
		return fmt.Errorf("unsupported output format %q", req.Format)
	}
	src, err := os.Open(req.Source)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer src.Close()
	img, err := wallpaper.ImageDecoder{}.Decode(src)
	if err != nil {
		return err
	}
	img = transform.Crop(img, centered(img.Bounds(), req.Aspect))
	if req.Scale && req.OutputSize.X > 0 && req.OutputSize.Y > 0 {
		img = transform.Resize(img, req.OutputSize.X, req.OutputSize.Y, transform.Linear)
	}
	out, err := os.Create(req.Output)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return fmt.Errorf("encoding output: %w", err)
	}
	return out.Close()
}

// centered returns the largest rectangle of the given aspect centered in b.
func centered(b image.Rectangle, aspect image.Point) image.Rectangle {
	if aspect.X <= 0 || aspect.Y <= 0 {
		return b
	}
	w, h := b.Dx(), b.Dy()
	if w*aspect.Y > h*aspect.X {
		w = h * aspect.X / aspect.Y
	} else {
		h = w * aspect.Y / aspect.X
	}
	origin := b.Min.Add(image.Pt((b.Dx()-w)/2, (b.Dy()-h)/2))
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(w, h))}
}
