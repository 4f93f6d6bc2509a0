// Package config loads and saves the game settings.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// DefaultPath is the settings file name, relative to the working directory.
const DefaultPath = "config.json"

// CurrentVersion is written to new and migrated settings.
const CurrentVersion = 1

// EnvPrefix starts every environment override.
const EnvPrefix = "TEMPO_"

// Config holds every persisted setting.
type Config struct {
	Version int          `json:"version"`
	Window  WindowConfig `json:"window"`
	Render  RenderConfig `json:"render"`
	Font    FontConfig   `json:"font"`
	Audio   AudioConfig  `json:"audio"`
	Songs   string       `json:"songs"` // Songs library directory
	Log     string       `json:"log"`   // debug, info, warn or error
}

// WindowConfig sizes the OS window.
type WindowConfig struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
	VSync  bool   `json:"vsync"`
}

// RenderConfig controls the offscreen frame and pacing.
type RenderConfig struct {
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	FrameCap   int     `json:"frameCap"`   // 0 disables pacing
	Transition float64 `json:"transition"` // Fade seconds per half
}

// FontConfig selects the UI font. An empty path uses the built-in font.
type FontConfig struct {
	Path string `json:"path"`
	Size int    `json:"size"`
}

// AudioConfig contains audio settings.
type AudioConfig struct {
	Enabled   bool    `json:"enabled"`
	Volume    float64 `json:"volume"`
	Crossfade float64 `json:"crossfade"` // Preview crossfade seconds
}

// Default returns the settings used when no file exists.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "tempo",
			VSync:  false,
		},
		Render: RenderConfig{
			Width:      1920,
			Height:     1080,
			FrameCap:   999,
			Transition: 0.3,
		},
		Font:  FontConfig{Size: 16},
		Audio: AudioConfig{Enabled: true, Volume: 1, Crossfade: 1.5},
		Songs: "songs",
		Log:   "info",
	}
}

// Load reads path from fs, falling back to defaults when it does not exist,
// then applies environment overrides. A nil fs reads the OS filesystem.
func Load(fs afero.Fs, path string) (*Config, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	cfg := Default()
	data, err := afero.ReadFile(fs, path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("config: %w", err)
	default:
		cfg = &Config{}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
		migrate(cfg)
	}

	cfg.applyEnv(os.LookupEnv)
	return cfg, nil
}

// Save writes cfg to path atomically.
func Save(fs afero.Fs, path string, cfg *Config) error {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := afero.WriteFile(fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := fs.Rename(tmp, path); err != nil {
		_ = fs.Remove(tmp)
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// migrate fills fields missing from older files.
func migrate(cfg *Config) {
	def := Default()
	if cfg.Version == 0 {
		cfg.Version = CurrentVersion
	}

	if cfg.Window.Width == 0 {
		cfg.Window.Width = def.Window.Width
	}
	if cfg.Window.Height == 0 {
		cfg.Window.Height = def.Window.Height
	}
	if cfg.Window.Title == "" {
		cfg.Window.Title = def.Window.Title
	}

	if cfg.Render.Width == 0 {
		cfg.Render.Width = def.Render.Width
	}
	if cfg.Render.Height == 0 {
		cfg.Render.Height = def.Render.Height
	}
	if cfg.Font.Size == 0 {
		cfg.Font.Size = def.Font.Size
	}
	if cfg.Audio.Volume == 0 {
		cfg.Audio.Volume = def.Audio.Volume
	}
	if cfg.Songs == "" {
		cfg.Songs = def.Songs
	}
	if cfg.Log == "" {
		cfg.Log = def.Log
	}
}

// applyEnv overrides fields from TEMPO_* variables. Unparseable values are
// ignored.
func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	env := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}

	if v, ok := env("SONGS"); ok {
		c.Songs = v
	}
	if v, ok := env("FONT"); ok {
		c.Font.Path = v
	}
	if v, ok := env("LOG"); ok {
		c.Log = v
	}
	if v, ok := env("VSYNC"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Window.VSync = b
		}
	}
	if v, ok := env("FRAME_CAP"); ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Render.FrameCap = n
		}
	}
	if v, ok := env("AUDIO_ENABLED"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Audio.Enabled = b
		}
	}

	// Volume is 0-100, stored as 0.0-1.0.
	if v, ok := env("VOLUME"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.Audio.Volume = min(max(float64(n)/100, 0), 1)
		}
	}
}

// TransitionDuration returns the fade duration per half.
func (c *Config) TransitionDuration() time.Duration {
	return seconds(c.Render.Transition)
}

// PreviewCrossfade returns the song preview crossfade.
func (c *Config) PreviewCrossfade() time.Duration {
	return seconds(c.Audio.Crossfade)
}

func seconds(s float64) time.Duration {
	if s <= 0 {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}

// Level returns the slog level named by Log, or Info when it is unknown.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Log)); err != nil {
		return slog.LevelInfo
	}
	return l
}
