package tempo_test

import (
	"errors"
	"strings"
	"time"

	"github.com/go-theft-auto/tempo"
)

// Metrics of fixedFont, in pixels at scale 1.
const (
	fixedAdvance    = 10
	fixedLineHeight = 20
	fixedAscent     = 16
	fixedGlyphW     = 8
	fixedGlyphH     = 12
	fixedBearingX   = 1
)

// fixedFont is a monospaced font covering printable ASCII. Every visible
// glyph is 8×12 with its top on the ascent line.
type fixedFont struct {
	measures int
}

func (f *fixedFont) Glyph(r rune) (tempo.Glyph, bool) {
	if r < 32 || r > 126 {
		return tempo.Glyph{}, false
	}
	if r == ' ' {
		return tempo.Glyph{Advance: fixedAdvance}, true
	}
	return tempo.Glyph{
		Texture: tempo.FullTexture(7),
		Size:    tempo.Vec2{X: fixedGlyphW, Y: fixedGlyphH},
		Bearing: tempo.Vec2{X: fixedBearingX, Y: fixedGlyphH},
		Advance: fixedAdvance,
	}, true
}

func (f *fixedFont) Measure(text string, scale float32) (w, h float32) {
	f.measures++
	lines := strings.Split(text, "\n")
	for _, line := range lines {
		var lw float32
		for _, r := range line {
			if _, ok := f.Glyph(r); ok {
				lw += fixedAdvance * scale
			}
		}
		w = max(w, lw)
	}
	return w, float32(len(lines)) * fixedLineHeight * scale
}

func (f *fixedFont) LineHeight(scale float32) float32 { return fixedLineHeight * scale }
func (f *fixedFont) Ascent(scale float32) float32     { return fixedAscent * scale }

// fakeUploader hands out increasing texture handles.
type fakeUploader struct {
	next    tempo.TextureHandle
	uploads int
	width   int
	height  int
	pixels  []byte
	deleted []tempo.TextureHandle
	fail    error
}

func (u *fakeUploader) UploadAlpha(width, height int, pixels []byte) (tempo.TextureHandle, error) {
	if u.fail != nil {
		return 0, u.fail
	}
	u.uploads++
	u.next++
	u.width, u.height = width, height
	u.pixels = pixels
	return u.next, nil
}

func (u *fakeUploader) DeleteTexture(h tempo.TextureHandle) {
	u.deleted = append(u.deleted, h)
}

// fakeClock only moves when slept or advanced, plus step per Now call.
type fakeClock struct {
	now       time.Time
	step      time.Duration
	oversleep time.Duration
	sleeps    []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d + c.oversleep)
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// testPayload targets a fixed screen.
type testPayload struct {
	target tempo.ScreenID
	value  string
}

func (p testPayload) Target() tempo.ScreenID { return p.target }

// recordingScreen counts lifecycle calls and appends to a shared log.
type recordingScreen struct {
	name     string
	log      *[]string
	ctx      *tempo.Context
	initErr  error
	inits    int
	payloads []tempo.Payload
	updates  int
	renders  int
	destroys int
	events   []tempo.Event
	onInput  func(ctx *tempo.Context, ev tempo.Event)
}

func (s *recordingScreen) record(what string) {
	if s.log != nil {
		*s.log = append(*s.log, s.name+"."+what)
	}
}

func (s *recordingScreen) Init(ctx *tempo.Context, payload tempo.Payload) error {
	s.ctx = ctx
	s.inits++
	s.payloads = append(s.payloads, payload)
	s.record("init")
	return s.initErr
}

func (s *recordingScreen) HandleInput(ev tempo.Event) {
	s.events = append(s.events, ev)
	if s.onInput != nil {
		s.onInput(s.ctx, ev)
	}
}

func (s *recordingScreen) Update(dt float64) {
	s.updates++
	s.record("update")
}

func (s *recordingScreen) Render(r tempo.Renderer) {
	s.renders++
	s.record("render")
	r.DrawFlatQuad(0, 0, 10, 10, tempo.ColorWhite)
}

func (s *recordingScreen) Destroy() {
	s.destroys++
	s.record("destroy")
}

// postScreen additionally implements PostPresenter.
type postScreen struct {
	recordingScreen
	posts int
}

func (s *postScreen) PostPresent() {
	s.posts++
	s.record("post")
}

// scriptedInput returns one batch of events per Poll.
type scriptedInput struct {
	batches [][]tempo.Event
	log     *[]string
}

func (in *scriptedInput) Poll() []tempo.Event {
	if in.log != nil {
		*in.log = append(*in.log, "poll")
	}
	if len(in.batches) == 0 {
		return nil
	}
	b := in.batches[0]
	in.batches = in.batches[1:]
	return b
}

// fakeSurface records frame boundaries.
type fakeSurface struct {
	log    *[]string
	closed bool
}

func (s *fakeSurface) BeginFrame()       { *s.log = append(*s.log, "begin") }
func (s *fakeSurface) Present()          { *s.log = append(*s.log, "present") }
func (s *fakeSurface) ShouldClose() bool { return s.closed }

// fakeAudio records calls and fails the first failures switches.
type fakeAudio struct {
	failures int
	switches []time.Duration // crossfade of each attempt
	stops    int
	ticks    int
	rate     float64
}

var errDecode = errors.New("decode failed")

func (a *fakeAudio) SwitchStream(path string, crossfade, offset time.Duration) error {
	a.switches = append(a.switches, crossfade)
	if a.failures > 0 {
		a.failures--
		return errDecode
	}
	return nil
}

func (a *fakeAudio) Stop()                     { a.stops++ }
func (a *fakeAudio) SetPlaybackRate(r float64) { a.rate = r }
func (a *fakeAudio) Tick()                     { a.ticks++ }

// countingOverlay records its calls.
type countingOverlay struct {
	log      *[]string
	updates  int
	destroys int
	last     tempo.FrameStats
}

func (o *countingOverlay) Update(stats tempo.FrameStats) {
	o.updates++
	o.last = stats
}

func (o *countingOverlay) Render(r tempo.Renderer) {
	if o.log != nil {
		*o.log = append(*o.log, "overlay")
	}
	r.DrawFlatQuad(0, 0, 1, 1, tempo.ColorYellow)
}

func (o *countingOverlay) Destroy() { o.destroys++ }
