// Package config loads the settings of the wallpaper shell.
package config

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"git.sr.ht/~gioverse/wallpaper/async"
	"git.sr.ht/~gioverse/wallpaper/wallpaper"
)

// Config of the wallpaper shell. Paths may start with ~.
type Config struct {
	// TempFile is where the cropper writes the cropped image.
	TempFile string `toml:"temp_file"`
	// Output is where the wallpaper is installed.
	Output string `toml:"output"`
	// Width and Height of the desired wallpaper.
	Width  int `toml:"width"`
	Height int `toml:"height"`
	// Resources is the directory 9-Patch resources are read from.
	Resources string `toml:"resources"`
	// Frame is the 9-Patch resource framing the preview.
	Frame string `toml:"frame"`
	// Background color of the window, as hex.
	Background string `toml:"background"`
	// StateFile persists the task across restarts.
	StateFile string `toml:"state_file"`
	// Preload selects the worker pool decoding textures ahead of use,
	// either "fixed" or "dynamic".
	Preload string `toml:"preload"`
	// PreloadWorkers bounds the preload pool. Zero means one per CPU.
	PreloadWorkers int `toml:"preload_workers"`
}

// Preload pool kinds.
const (
	FixedPreload   = "fixed"
	DynamicPreload = "dynamic"
)

// Default configuration.
func Default() Config {
	return Config{
		TempFile:       "~/.cache/wallpaper/temp-wallpaper",
		Output:         "~/.local/share/wallpaper/current.png",
		Width:          1920,
		Height:         1080,
		Resources:      "res",
		Frame:          "9-Patch/frame.9.png",
		Background:     "#1e2229",
		StateFile:      "~/.cache/wallpaper/state.toml",
		Preload:        DynamicPreload,
		PreloadWorkers: 2,
	}
}

// Load the configuration at path over the defaults. A missing file is not an
// error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.Printf("config %s not found, using defaults", path)
		case err != nil:
			return Config{}, fmt.Errorf("reading config: %w", err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}
	if err := cfg.expand(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// expand ~ in every path.
func (c *Config) expand() error {
	for _, p := range []*string{&c.TempFile, &c.Output, &c.Resources, &c.StateFile} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("expanding %q: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid wallpaper size %dx%d", c.Width, c.Height)
	}
	if c.TempFile == "" {
		return fmt.Errorf("temp_file must be set")
	}
	if c.Output == "" {
		return fmt.Errorf("output must be set")
	}
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	if c.Preload != FixedPreload && c.Preload != DynamicPreload {
		return fmt.Errorf("invalid preload %q, want %q or %q", c.Preload, FixedPreload, DynamicPreload)
	}
	if c.PreloadWorkers < 0 {
		return fmt.Errorf("invalid preload_workers %d", c.PreloadWorkers)
	}
	return nil
}

// PreloadScheduler allocates the worker pool for texture preloads.
func (c Config) PreloadScheduler() async.Scheduler {
	if c.Preload == FixedPreload {
		return &async.FixedWorkerPool{Workers: c.PreloadWorkers}
	}
	return &async.DynamicWorkerPool{Workers: c.PreloadWorkers}
}

// DesiredSize of the wallpaper.
func (c Config) DesiredSize() image.Point {
	return image.Pt(c.Width, c.Height)
}

// BackgroundColor parses the background hex color.
func (c Config) BackgroundColor() (color.NRGBA, error) {
	clr, err := colorful.Hex(c.Background)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parsing background: %w", err)
	}
	r, g, b := clr.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// LoadState reads a saved task state. A missing file yields nil.
func LoadState(path string) (*wallpaper.SavedState, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading state: %w", err)
	}
	var state wallpaper.SavedState
	if err := toml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parsing state %s: %w", path, err)
	}
	return &state, nil
}

// SaveState writes the task state for the next launch.
func SaveState(path string, state wallpaper.SavedState) error {
	data, err := toml.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	return nil
}
