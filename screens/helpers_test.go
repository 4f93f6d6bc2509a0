package screens_test

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/go-theft-auto/tempo"
	"github.com/go-theft-auto/tempo/chart"
	"github.com/go-theft-auto/tempo/screens"
)

var errNoDevice = errors.New("no audio device")

type switchCall struct {
	path      string
	crossfade time.Duration
	offset    time.Duration
}

// fakeAudio records what the screens ask of the music stream.
type fakeAudio struct {
	switches []switchCall
	fail     map[string]bool
	rate     float64
	stops    int
	position time.Duration
}

func (a *fakeAudio) SwitchStream(path string, crossfade, offset time.Duration) error {
	a.switches = append(a.switches, switchCall{path, crossfade, offset})
	if a.fail[path] {
		return errNoDevice
	}
	return nil
}

func (a *fakeAudio) Stop()                        { a.stops++ }
func (a *fakeAudio) SetPlaybackRate(rate float64) { a.rate = rate }
func (a *fakeAudio) Tick()                        {}
func (a *fakeAudio) Position() time.Duration      { return a.position }
func (a *fakeAudio) last() switchCall             { return a.switches[len(a.switches)-1] }

type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time        { return c.now }
func (c *manualClock) Sleep(d time.Duration) { c.now = c.now.Add(d) }

type fixture struct {
	app    *tempo.App
	audio  *fakeAudio
	clock  *manualClock
	frame  *tempo.DrawList
	deps   *screens.Deps
	charts *chart.Library
}

var defaultSongs = map[string]string{
	"songs/gamma/chart.vsc": "title: Gamma\n",
	"songs/alpha/chart.vsc": "title: Alpha\naudio: alpha.ogg\npreviewTime: 1200\n[Notes]\n0,0\n500,1\n1000,2,1400\n",
	"songs/beta/chart.vsc":  "title: Beta\n[Notes]\n0,3\n",
}

func newFixture(t *testing.T, songs map[string]string) *fixture {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range songs {
		if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	f := &fixture{
		audio: &fakeAudio{rate: 1},
		clock: &manualClock{now: time.Unix(1000, 0)},
		frame: &tempo.DrawList{},
	}
	f.charts = chart.NewLibrary(fs, "songs")
	f.deps = &screens.Deps{Library: f.charts}
	f.app = tempo.New(f.frame,
		tempo.WithFonts(tempo.NewFontCache(nil, goregular.TTF)),
		tempo.WithAudio(f.audio),
		tempo.WithClock(f.clock),
		tempo.WithFrameCap(0),
		tempo.WithTransition(0),
	)
	screens.Register(f.app, f.deps)
	return f
}

// tick advances the clock by d and runs one frame.
func (f *fixture) tick(d time.Duration) bool {
	f.clock.now = f.clock.now.Add(d)
	f.frame.Clear()
	return f.app.Tick()
}

// settle runs enough frames for a zero-length transition to finish.
func (f *fixture) settle() {
	f.tick(10 * time.Millisecond)
	f.tick(10 * time.Millisecond)
}

func keyDown(k tempo.Key) tempo.Event {
	return tempo.Event{Type: tempo.EventKeyDown, Key: k}
}

func keyUp(k tempo.Key) tempo.Event {
	return tempo.Event{Type: tempo.EventKeyUp, Key: k}
}

func (f *fixture) songSelect(t *testing.T) *screens.SongSelect {
	t.Helper()
	s, ok := f.app.Active().(*screens.SongSelect)
	if !ok {
		t.Fatalf("active screen = %T, want *screens.SongSelect", f.app.Active())
	}
	return s
}

func (f *fixture) play(t *testing.T) *screens.Play {
	t.Helper()
	s, ok := f.app.Active().(*screens.Play)
	if !ok {
		t.Fatalf("active screen = %T, want *screens.Play", f.app.Active())
	}
	return s
}
