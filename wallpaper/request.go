package wallpaper

import "image"

// OutputFormat is the raster format the cropper writes.
type OutputFormat string

// PNG is lossless, so the wallpaper is not degraded by the round trip
// through the temporary file.
const PNG OutputFormat = "PNG"

// CropRequest describes the image the picker or cropper must produce.
type CropRequest struct {
	// Source is the image to crop. Empty means the user picks one.
	Source string
	// MimeType filters what can be picked.
	MimeType string
	// OutputSize is the size of the produced image.
	OutputSize image.Point
	// Aspect is the aspect ratio of the crop selection.
	Aspect image.Point
	Scale  bool
	// NoFaceDetection disables positioning the selection on faces.
	NoFaceDetection bool
	// Output is the path the image is written to.
	Output string
	Format OutputFormat
}

// Picker launches the external pick or crop activity. The activity reports
// back through Task.OnResult with the same request code.
type Picker interface {
	Launch(code RequestCode, req CropRequest) error
}

// PickerFunc adapts a function to the Picker interface.
type PickerFunc func(code RequestCode, req CropRequest) error

// Launch implements Picker.
func (fn PickerFunc) Launch(code RequestCode, req CropRequest) error {
	return fn(code, req)
}

// SavedState is what a task needs to resume after being torn down between
// launching the picker and receiving its result.
type SavedState struct {
	DoLaunch bool   `toml:"do_launch"`
	TempFile string `toml:"temp_file"`
}

// Progress is the UI's progress indicator. It is only ever driven from the
// UI context.
type Progress interface {
	// Show a blocking, non-cancelable indicator with the message.
	Show(message string)
	// Dismiss the indicator.
	Dismiss()
}
