// Command tempo runs the rhythm game: song select, play and results.
//
// Usage:
//
//	devbox shell
//	go run ./cmd/tempo/ -songs ./songs
//
// F1 toggles the FPS counter and F2 saves a screenshot to screenshots/.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/go-theft-auto/tempo"
	"github.com/go-theft-auto/tempo/audio"
	"github.com/go-theft-auto/tempo/backend/opengl"
	"github.com/go-theft-auto/tempo/chart"
	"github.com/go-theft-auto/tempo/config"
	"github.com/go-theft-auto/tempo/screens"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", config.DefaultPath, "settings file")
	songsDir := flag.String("songs", "", "songs directory (overrides the settings file)")
	flag.Parse()

	if err := run(*configPath, *songsDir); err != nil {
		tempo.Logger().Error("startup failed", "err", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, songsDir string) error {
	cfg, err := config.Load(nil, configPath)
	if err != nil {
		return err
	}
	if songsDir != "" {
		cfg.Songs = songsDir
	}
	tempo.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()})))

	win, err := opengl.OpenWindow(opengl.WindowConfig{
		Width:        cfg.Window.Width,
		Height:       cfg.Window.Height,
		Title:        cfg.Window.Title,
		VSync:        cfg.Window.VSync,
		RenderWidth:  cfg.Render.Width,
		RenderHeight: cfg.Render.Height,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	fonts := openFonts(win.Renderer(), cfg.Font.Path)
	defer fonts.Close()
	if err := fonts.Preload(cfg.Font.Size, screens.BodyFontSize, screens.TitleFontSize); err != nil {
		return err
	}

	music := openAudio(cfg)
	if c, ok := music.(interface{ Close() }); ok {
		defer c.Close()
	}

	overlayFont, err := fonts.Atlas(cfg.Font.Size)
	if err != nil {
		return err
	}
	fps := tempo.NewFPSCounter(overlayFont)

	app := tempo.New(win.Renderer(),
		tempo.WithSurface(win),
		tempo.WithInput(&hotkeys{win: win, fps: fps}),
		tempo.WithAudio(music),
		tempo.WithFonts(fonts),
		tempo.WithFrameCap(cfg.Render.FrameCap),
		tempo.WithTransition(cfg.TransitionDuration()),
		tempo.WithRenderSize(float32(cfg.Render.Width), float32(cfg.Render.Height)),
		tempo.WithOverlay(fps),
	)

	screens.Register(app, &screens.Deps{
		Library:          chart.NewLibrary(nil, cfg.Songs),
		Calculator:       chart.NewCachedCalculator(chart.DensityCalculator{}, chart.DefaultCacheSize),
		PreviewCrossfade: cfg.PreviewCrossfade(),
	})
	if err := app.Start(tempo.ScreenSongSelect, nil); err != nil {
		app.Close()
		return err
	}
	return app.Run()
}

// openFonts loads the configured font, falling back to Go Regular.
func openFonts(uploader tempo.TextureUploader, path string) *tempo.FontCache {
	if path == "" {
		return tempo.NewFontCache(uploader, goregular.TTF)
	}
	fonts, err := tempo.LoadFontCache(uploader, path)
	if err != nil {
		tempo.Logger().Warn("font unavailable, using built-in", "path", path, "err", err)
		return tempo.NewFontCache(uploader, goregular.TTF)
	}
	return fonts
}

// openAudio starts the speaker, or returns silence when audio is disabled
// or the device cannot be opened.
func openAudio(cfg *config.Config) tempo.Audio {
	if !cfg.Audio.Enabled {
		tempo.Logger().Info("audio disabled")
		return tempo.NopAudio{}
	}
	out, err := audio.OpenSpeaker(audio.DefaultSampleRate)
	if err != nil {
		tempo.Logger().Warn("audio unavailable, continuing without music", "err", err)
		return tempo.NopAudio{}
	}
	p := audio.NewPlayer(nil, out, audio.DefaultSampleRate)
	p.SetVolume(cfg.Audio.Volume)
	return p
}

// hotkeys passes window events through, handling the debug keys first.
type hotkeys struct {
	win *opengl.Window
	fps *tempo.FPSCounter
}

func (h *hotkeys) Poll() []tempo.Event {
	events := h.win.Poll()
	for _, ev := range events {
		switch {
		case ev.Pressed(tempo.KeyF1):
			h.fps.SetVisible(!h.fps.Visible())
		case ev.Pressed(tempo.KeyF2):
			h.screenshot()
		}
	}
	return events
}

func (h *hotkeys) screenshot() {
	path := filepath.Join("screenshots", time.Now().Format("20060102-150405.000")+".jpg")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tempo.Logger().Warn("screenshot failed", "err", err)
		return
	}
	if err := h.win.Screenshot(path); err != nil {
		tempo.Logger().Warn("screenshot failed", "err", err)
		return
	}
	tempo.Logger().Info("saved screenshot", "path", path)
}
