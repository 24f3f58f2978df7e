package wallpaper

import (
	"errors"
	"fmt"
)

// ErrCanceled is the result of a task whose pick or crop was canceled, or
// returned no data.
var ErrCanceled = errors.New("wallpaper selection canceled")

// State of a Task.
type State byte

const (
	Idle State = iota
	Decoding
	ShowingProgress
	Applying
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Decoding:
		return "decoding"
	case ShowingProgress:
		return "showing progress"
	case Applying:
		return "applying"
	case Done:
		return "done"
	}
	return fmt.Sprintf("State(%d)", byte(s))
}

// SignalKind enumerates the messages a task posts to the UI context.
type SignalKind byte

const (
	// ShowProgress asks the UI to open the progress indicator.
	ShowProgress SignalKind = iota
	// Finish asks the UI to close the indicator and report the result.
	Finish
)

func (k SignalKind) String() string {
	switch k {
	case ShowProgress:
		return "show progress"
	case Finish:
		return "finish"
	}
	return fmt.Sprintf("SignalKind(%d)", byte(k))
}

// Signal is a message from a task to the UI context.
type Signal struct {
	Kind SignalKind
	// Err is the outcome of applying the wallpaper. Only set for Finish.
	Err error
}

// Result is the overall outcome of a task.
type Result struct {
	// Err is nil if the wallpaper was set.
	Err error
}

// OK reports whether the wallpaper was set.
func (r Result) OK() bool {
	return r.Err == nil
}

// RequestCode identifies which external activity produced a result.
type RequestCode int

const (
	// PhotoPicked is the result of picking (and cropping) an image.
	PhotoPicked RequestCode = iota + 1
	// CropDone is the result of cropping a given image.
	CropDone
)

// ResultCode reports how an external activity ended.
type ResultCode int

const (
	ResultCanceled ResultCode = iota
	ResultOK
)
