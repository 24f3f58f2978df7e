package config

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~gioverse/wallpaper/async"
	"git.sr.ht/~gioverse/wallpaper/wallpaper"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wallpaper.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, image.Pt(1920, 1080), cfg.DesiredSize())
	assert.False(t, strings.HasPrefix(cfg.TempFile, "~"), "paths are expanded")

	home, err := homedir.Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".cache/wallpaper/temp-wallpaper"), cfg.TempFile)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
width = 800
height = 600
output = "/tmp/wall.png"
background = "#ff8000"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(800, 600), cfg.DesiredSize())
	assert.Equal(t, "/tmp/wall.png", cfg.Output)
	assert.Equal(t, Default().Frame, cfg.Frame, "unset keys keep their default")

	bg, err := cfg.BackgroundColor()
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0x80, A: 0xff}, bg)
}

func TestPreloadScheduler(t *testing.T) {
	cfg, err := Load(writeConfig(t, `preload_workers = 3`))
	require.NoError(t, err)
	dynamic, ok := cfg.PreloadScheduler().(*async.DynamicWorkerPool)
	require.True(t, ok, "dynamic pool by default")
	assert.Equal(t, 3, dynamic.Workers)

	cfg, err = Load(writeConfig(t, `preload = "fixed"`))
	require.NoError(t, err)
	fixed, ok := cfg.PreloadScheduler().(*async.FixedWorkerPool)
	require.True(t, ok)
	assert.Equal(t, 2, fixed.Workers)
}

func TestLoadInvalid(t *testing.T) {
	for _, tt := range []struct {
		Label   string
		Content string
	}{
		{Label: "syntax", Content: "width = "},
		{Label: "size", Content: "width = 0"},
		{Label: "color", Content: `background = "teal"`},
		{Label: "empty output", Content: `output = ""`},
		{Label: "preload", Content: `preload = "eager"`},
		{Label: "preload workers", Content: `preload_workers = -1`},
	} {
		t.Run(tt.Label, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.Content))
			assert.Error(t, err)
		})
	}
}

func TestState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.toml")

	state, err := LoadState(path)
	require.NoError(t, err)
	assert.Nil(t, state)

	want := wallpaper.SavedState{DoLaunch: false, TempFile: "/tmp/temp-wallpaper"}
	require.NoError(t, SaveState(path, want))
	state, err = LoadState(path)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, want, *state)
}
