// Package wallpaper sets a picked and cropped image as the wallpaper.
//
// A Task is driven by a UI shell through an explicit controller interface:
// OnCreate, OnResume, OnResult, OnSaveState, OnPause and Close are called
// from the UI context, as is Handle for every Signal received from Signals.
// The blocking submission to the Sink happens on a worker, which reports
// back only through the signal channel.
package wallpaper

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"

	"git.sr.ht/~gioverse/wallpaper/async"
)

// DefaultMessage is shown by the progress indicator while applying.
const DefaultMessage = "Setting wallpaper…"

// Options configure a Task.
type Options struct {
	// Sink receives the wallpaper. Required.
	Sink Sink
	// Picker launches the pick or crop activity. Required for OnResume.
	Picker Picker
	// Progress is the UI's indicator. Required.
	Progress Progress
	// Decoder decodes the cropped image. Defaults to ImageDecoder.
	Decoder Decoder
	// Scheduler runs the apply worker. Defaults to async.Spawn.
	Scheduler async.Scheduler
	// TempFile is where the cropper writes its output.
	TempFile string
	// DesiredSize is the wallpaper size requested from the cropper.
	DesiredSize image.Point
	// Message for the progress indicator. Defaults to DefaultMessage.
	Message string
	// Logger for failures. Defaults to log.Default().
	Logger *log.Logger
}

// Task sets a single wallpaper.
//
// 	Idle -> Decoding -> ShowingProgress -> Applying -> Done
//
// Cancellation and decode failures go straight to Done. Every path ends in
// Done, with the progress indicator closed and the result reported on Done.
type Task struct {
	opts Options
	log  *log.Logger
	// signals to the UI context. Buffered for the one ShowProgress and one
	// Finish a task ever posts, so the worker never blocks on the UI.
	signals chan Signal
	// done is closed once the result is known.
	done chan struct{}

	// mu guards state, which the worker also writes.
	mu    sync.Mutex
	state State

	// UI context only.
	doLaunch bool
	showing  bool
	result   Result
}

// New allocates an idle task.
func New(opts Options) *Task {
	if opts.Decoder == nil {
		opts.Decoder = ImageDecoder{}
	}
	if opts.Scheduler == nil {
		opts.Scheduler = async.Spawn
	}
	if opts.Message == "" {
		opts.Message = DefaultMessage
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Task{
		opts:     opts,
		log:      logger,
		signals:  make(chan Signal, 2),
		done:     make(chan struct{}),
		doLaunch: true,
	}
}

// OnCreate restores state saved by OnSaveState, if any.
func (t *Task) OnCreate(saved *SavedState) {
	if saved == nil {
		return
	}
	t.doLaunch = saved.DoLaunch
	if saved.TempFile != "" {
		t.opts.TempFile = saved.TempFile
	}
}

// OnSaveState captures what is needed to resume the task.
func (t *Task) OnSaveState() SavedState {
	return SavedState{
		DoLaunch: t.doLaunch,
		TempFile: t.opts.TempFile,
	}
}

// OnResume launches the picker, unless it was already launched. With a
// source image the cropper is launched on it, otherwise the user picks an
// image to crop.
func (t *Task) OnResume(source string) error {
	if !t.doLaunch {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(t.opts.TempFile), 0o755); err != nil {
		return fmt.Errorf("preparing temp file: %w", err)
	}
	code, req := t.request(source)
	if err := t.opts.Picker.Launch(code, req); err != nil {
		return fmt.Errorf("launching picker: %w", err)
	}
	return nil
}

// request builds the crop request for the desired wallpaper size.
func (t *Task) request(source string) (RequestCode, CropRequest) {
	var (
		size = t.opts.DesiredSize
		code = CropDone
		req  = CropRequest{
			Source:          source,
			OutputSize:      size,
			Aspect:          size,
			Scale:           true,
			NoFaceDetection: true,
			Output:          t.opts.TempFile,
			Format:          PNG,
		}
	)
	if source == "" {
		code = PhotoPicked
		req.MimeType = "image/*"
	}
	return code, req
}

// OnResult receives the outcome of the pick or crop activity.
//
// Anything but a successful result with data finishes the task as canceled
// without touching the temporary file. Otherwise the image is decoded here
// and, if valid, applied on a worker while the progress indicator shows.
func (t *Task) OnResult(code RequestCode, result ResultCode, hasData bool) {
	if t.State() != Idle {
		t.log.Printf("ignoring duplicate result for wallpaper task in state %v", t.State())
		return
	}
	if (code != PhotoPicked && code != CropDone) || result != ResultOK || !hasData {
		t.finish(Result{Err: ErrCanceled})
		return
	}
	t.setState(Decoding)
	// The cropper is not relaunched, even if its output fails to decode.
	t.doLaunch = false
	img, err := t.decode()
	if err != nil {
		t.log.Printf("failed to set wallpaper: %v", err)
		t.finish(Result{Err: err})
		return
	}
	t.setState(ShowingProgress)
	t.signals <- Signal{Kind: ShowProgress}
	t.opts.Scheduler.Schedule(func() {
		t.apply(img)
	})
}

// decode the temporary file written by the cropper.
func (t *Task) decode() (image.Image, error) {
	f, err := os.Open(t.opts.TempFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("file not found: %s: %w", t.opts.TempFile, err)
		}
		return nil, fmt.Errorf("opening %s: %w", t.opts.TempFile, err)
	}
	defer f.Close()
	img, err := t.opts.Decoder.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("couldn't get bitmap for path %s: %w", t.opts.TempFile, err)
	}
	if img == nil {
		return nil, fmt.Errorf("couldn't get bitmap for path %s: %w", t.opts.TempFile, ErrDecode)
	}
	return img, nil
}

// apply runs on the worker. Whatever the sink does, the temporary file is
// deleted and Finish is posted.
func (t *Task) apply(img image.Image) {
	var err error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("setting wallpaper: panic: %v", r)
			t.log.Printf("failed to set wallpaper: %v", err)
		}
		if rmErr := os.Remove(t.opts.TempFile); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			t.log.Printf("removing temp file: %v", rmErr)
		}
		t.signals <- Signal{Kind: Finish, Err: err}
	}()
	t.setState(Applying)
	if err = t.opts.Sink.SetBitmap(img); err != nil {
		t.log.Printf("failed to set wallpaper: %v", err)
	}
}

// Signals returns the channel of signals for the UI context. Deliver each to
// Handle, in order.
func (t *Task) Signals() <-chan Signal {
	return t.signals
}

// Handle a signal on the UI context.
func (t *Task) Handle(s Signal) {
	switch s.Kind {
	case ShowProgress:
		if t.State() == Done || t.showing {
			return
		}
		t.opts.Progress.Show(t.opts.Message)
		t.showing = true
	case Finish:
		t.finish(Result{Err: s.Err})
	}
}

// finish closes the indicator and reports the result. Only the first call
// has any effect beyond closing the indicator.
func (t *Task) finish(r Result) {
	t.closeProgress()
	if t.State() == Done {
		return
	}
	t.result = r
	t.setState(Done)
	close(t.done)
}

func (t *Task) closeProgress() {
	if t.showing {
		t.opts.Progress.Dismiss()
		t.showing = false
	}
}

// Done returns a channel that is closed once the task has a result.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Result of the task, blocking until it is done.
func (t *Task) Result() Result {
	<-t.done
	return t.result
}

// Pump handles signals on the calling goroutine until the task is done or
// ctx expires. Useful for shells without an event loop of their own.
func (t *Task) Pump(ctx context.Context) (Result, error) {
	for {
		select {
		case <-t.done:
			return t.result, nil
		case s := <-t.signals:
			t.Handle(s)
		case <-ctx.Done():
			return Result{}, ctx.Err()
		}
	}
}

// OnPause closes the progress indicator, which cannot outlive the UI.
func (t *Task) OnPause() {
	t.closeProgress()
}

// Close releases the UI resources of the task. It does not cancel an apply
// in flight.
func (t *Task) Close() {
	t.closeProgress()
}

// State reports the current state.
func (t *Task) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *Task) setState(s State) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = s
}
