// Command wallpaper crops an image to the desired wallpaper size and sets it
// as the wallpaper, showing progress in a window.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"git.sr.ht/~gioverse/wallpaper/config"
	"git.sr.ht/~gioverse/wallpaper/ninepatch"
	"git.sr.ht/~gioverse/wallpaper/profile"
	"git.sr.ht/~gioverse/wallpaper/wallpaper"
)

func main() {
	var (
		configPath = flag.String("config", "wallpaper.toml", "configuration file")
		source     = flag.String("source", "", "image to crop into the wallpaper")
		debugFlag  = flag.Bool("debug", false, "outline the content area of the frame")
		profiler   profile.Opt
	)
	flag.Var(&profiler, "profile", fmt.Sprintf("profiling mode, one of %v", profile.Opts))
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	background, err := cfg.BackgroundColor()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	saved, err := config.LoadState(cfg.StateFile)
	if err != nil {
		log.Printf("restoring state: %v", err)
	}

	var (
		// Instantiate the window.
		w = app.NewWindow(
			app.Title("Wallpaper"),
			app.Size(unit.Dp(480), unit.Dp(320)),
		)
		// Define an operation list for gio.
		ops     op.Ops
		results = make(chan pickResult, 1)
		cache   = &ninepatch.Cache{
			Decoder:   ninepatch.FSDecoder{FS: os.DirFS(cfg.Resources)},
			Scheduler: cfg.PreloadScheduler(),
		}
		indicator = &progress{invalidate: w.Invalidate}
		task      = wallpaper.New(wallpaper.Options{
			Sink:        wallpaper.FileSink{Path: cfg.Output, Size: cfg.DesiredSize()},
			Picker:      cropper{results: results},
			Progress:    indicator,
			TempFile:    cfg.TempFile,
			DesiredSize: cfg.DesiredSize(),
		})
		frame = ninepatch.ResourceID(cfg.Frame)
		ui    = &UI{
			Theme:      material.NewTheme(gofont.Collection()),
			Background: background,
			Frame: ninepatch.Surface{
				Texture: cache.Texture(frame),
				Canvas:  &ninepatch.GioCanvas{},
			},
			Progress: indicator,
			Status:   "Cropping…",
			Debug:    *debugFlag,
		}
	)
	cache.Preload(frame)
	task.OnCreate(saved)
	if saved != nil && !saved.DoLaunch {
		// The crop finished before the last run was torn down; pick up its
		// output instead of cropping again.
		results <- pickResult{Code: wallpaper.CropDone, Result: wallpaper.ResultOK, HasData: true}
	}

	go func() {
		p := profiler.Start()
		if err := task.OnResume(*source); err != nil {
			log.Printf("%v", err)
			ui.Status = err.Error()
		}
		// Event loop executes indefinitely, until the app is signalled to quit.
		// The task's signals are handled here, making this the UI context.
		done := task.Done()
		for {
			select {
			case event := <-w.Events():
				switch event := event.(type) {
				case system.DestroyEvent:
					task.Close()
					if task.State() != wallpaper.Done {
						saveState(cfg.StateFile, task)
					}
					p.Stop()
					if err := event.Err; err != nil {
						fmt.Printf("error: premature window close: %v\n", err)
						os.Exit(1)
					}
					os.Exit(0)
				case system.FrameEvent:
					gtx := layout.NewContext(&ops, event)
					ui.Layout(gtx)
					p.Record(gtx)
					event.Frame(&ops)
				}
			case res := <-results:
				task.OnResult(res.Code, res.Result, res.HasData)
			case s := <-task.Signals():
				task.Handle(s)
			case <-done:
				done = nil
				r := task.Result()
				ui.Result = &r
				ui.Status = status(r)
				clearState(cfg.StateFile)
				w.Invalidate()
			case <-cache.Updated():
				w.Invalidate()
			}
		}
	}()
	// Surrender main thread to OS.
	// Necessary for certain platforms.
	app.Main()
}

// status describes the result to the user.
func status(r wallpaper.Result) string {
	switch {
	case r.OK():
		return "Wallpaper set."
	case errors.Is(r.Err, wallpaper.ErrCanceled):
		return "Canceled."
	default:
		return "Couldn't set the wallpaper."
	}
}

// clearState forgets a finished task.
func clearState(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("clearing state: %v", err)
	}
}

// saveState persists an unfinished task so a restart does not relaunch the
// cropper needlessly.
func saveState(path string, task *wallpaper.Task) {
	if err := config.SaveState(path, task.OnSaveState()); err != nil {
		log.Printf("saving state: %v", err)
	}
}
