// Command tempo-shot drives every screen with a built-in demo library in a
// hidden window and saves JPEG screenshots to doc/imgs/.
//
// Usage:
//
//	devbox shell
//	go run ./cmd/tempo-shot/
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/go-theft-auto/tempo"
	"github.com/go-theft-auto/tempo/backend/opengl"
	"github.com/go-theft-auto/tempo/chart"
	"github.com/go-theft-auto/tempo/screens"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	outDir := flag.String("out", filepath.Join("doc", "imgs"), "output directory")
	flag.Parse()

	if err := run(*outDir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// shot drives the application to a state, then captures it.
type shot struct {
	name   string
	keys   []tempo.Key    // pressed first
	until  tempo.ScreenID // keep ticking until this screen is active
	hold   []tempo.Key    // pressed once the screen is active
	frames int            // extra frames after reaching it
}

func run(outDir string) error {
	win, err := opengl.OpenWindow(opengl.WindowConfig{
		Width:        960,
		Height:       540,
		Title:        "tempo-shot",
		Hidden:       true,
		RenderWidth:  1920,
		RenderHeight: 1080,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	fonts := tempo.NewFontCache(win.Renderer(), goregular.TTF)
	defer fonts.Close()

	keys := tempo.NewEventQueue()
	app := tempo.New(win.Renderer(),
		tempo.WithSurface(win),
		tempo.WithInput(keys),
		tempo.WithFonts(fonts),
		tempo.WithFrameCap(0),
		tempo.WithTransition(0),
	)
	defer app.Close()

	library, err := demoLibrary()
	if err != nil {
		return err
	}
	screens.Register(app, &screens.Deps{Library: library})
	if err := app.Start(tempo.ScreenSongSelect, nil); err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := []shot{
		{name: "songselect", until: tempo.ScreenSongSelect, frames: 20, keys: []tempo.Key{tempo.KeyDown, tempo.KeyRight}},
		{name: "play", until: tempo.ScreenPlay, frames: 30, keys: []tempo.Key{tempo.KeyEnter}, hold: []tempo.Key{tempo.KeyZ, tempo.KeyPeriod}},
		{name: "results", until: tempo.ScreenResults, frames: 2, keys: []tempo.Key{tempo.KeyEnter}},
	}
	for _, s := range shots {
		if err := capture(app, win, keys, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg\n", s.name)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func capture(app *tempo.App, win *opengl.Window, keys *tempo.EventQueue, s shot, outDir string) error {
	press(keys, s.keys)

	const maxFrames = 600
	for i := 0; app.ActiveID() != s.until || app.Transition().Active(); i++ {
		if i == maxFrames || !app.Tick() {
			return fmt.Errorf("never reached %s", s.until)
		}
	}
	press(keys, s.hold)
	for range s.frames {
		if !app.Tick() {
			return tempo.ErrClosed
		}
	}
	return win.Screenshot(filepath.Join(outDir, s.name+".jpg"))
}

func press(q *tempo.EventQueue, keys []tempo.Key) {
	for _, k := range keys {
		q.Push(tempo.Event{Type: tempo.EventKeyDown, Key: k})
	}
}

// demoSongs holds a few small charts, one per format.
var demoSongs = map[string]string{
	"songs/sunrise/sunrise.vsc": `title: Sunrise Drive
artist: Tempo Demo
version: Normal
audio: sunrise.ogg
previewTime: 15000
bpm: 128
[Notes]
` + stairs(64, 234, 4),

	"songs/nightfall/nightfall.osu": `osu file format v14

[General]
AudioFilename: nightfall.mp3
PreviewTime: 30000
Mode: 3

[Metadata]
Title:Nightfall
Artist:Tempo Demo
Version:Hard

[Difficulty]
CircleSize:4

[TimingPoints]
0,352.941176470588,4,2,0,60,1,0

[HitObjects]
64,192,0,1,0,0:0:0:0:
192,192,0,1,0,0:0:0:0:
320,192,176,128,0,900:0:0:0:0:
448,192,352,1,0,0:0:0:0:
64,192,528,1,0,0:0:0:0:
448,192,528,1,0,0:0:0:0:
`,

	"songs/ambient/ambient.vsc": "title: Ambient Loop\nartist: Tempo Demo\n",
}

// stairs writes n taps stepping across keys columns every step ms.
func stairs(n, step, keys int) string {
	var b strings.Builder
	for i := range n {
		fmt.Fprintf(&b, "%d,%d\n", i*step, i%keys)
	}
	return b.String()
}

func demoLibrary() (*chart.Library, error) {
	fs := afero.NewMemMapFs()
	for path, content := range demoSongs {
		if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
			return nil, err
		}
	}
	return chart.NewLibrary(fs, "songs"), nil
}
