package tempo

import (
	"fmt"
	"time"
)

// Surface is the presentation target: a window with an offscreen frame.
type Surface interface {
	// BeginFrame binds and clears the render-size frame.
	BeginFrame()
	// Present shows the finished frame.
	Present()
	ShouldClose() bool
}

// App owns the active screen, the transition between screens and the frame
// clock. All methods must be called from the goroutine that runs the loop.
type App struct {
	renderer Renderer
	surface  Surface
	source   InputSource
	audio    Audio
	fonts    *FontCache
	clock    Clock
	frameCap int

	factories map[ScreenID]ScreenFactory
	active    Screen
	activeID  ScreenID

	transition Transition
	governor   *FrameGovernor
	input      *InputState
	overlays   []Overlay
	renderSize Vec2
	fadeColor  Color
	ctx        *Context

	lastFrame time.Time
	frames    uint64
	quit      bool
	closed    bool
}

// New creates an application drawing through renderer.
func New(renderer Renderer, opts ...Option) *App {
	a := &App{
		renderer:   renderer,
		clock:      SystemClock(),
		frameCap:   DefaultFrameCap,
		factories:  make(map[ScreenID]ScreenFactory),
		transition: Transition{Duration: DefaultTransition},
		input:      NewInputState(),
		renderSize: Vec2{X: 1920, Y: 1080},
		fadeColor:  ColorBlack,
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.audio == nil {
		a.audio = NopAudio{}
	}
	a.governor = NewFrameGovernor(a.frameCap, a.clock)
	a.ctx = &Context{
		Renderer:   renderer,
		Fonts:      a.fonts,
		Audio:      a.audio,
		Input:      a.input,
		RenderSize: a.renderSize,
		app:        a,
	}
	return a
}

// Register binds a factory to a screen identifier.
func (a *App) Register(id ScreenID, factory ScreenFactory) {
	a.factories[id] = factory
}

// Context returns the context handed to screens.
func (a *App) Context() *Context { return a.ctx }

// Governor returns the frame governor.
func (a *App) Governor() *FrameGovernor { return a.governor }

// Active returns the current screen, or nil.
func (a *App) Active() Screen { return a.active }

// ActiveID returns the identifier of the current screen.
func (a *App) ActiveID() ScreenID { return a.activeID }

// Transition returns a snapshot of the transition state.
func (a *App) Transition() Transition { return a.transition }

// Frames returns the number of completed frames.
func (a *App) Frames() uint64 { return a.frames }

// Closed reports whether Close has run.
func (a *App) Closed() bool { return a.closed }

// Start installs the first screen immediately, without a fade.
func (a *App) Start(id ScreenID, payload Payload) error {
	if a.closed {
		return ErrClosed
	}
	if err := a.validate(id, payload); err != nil {
		return err
	}
	a.transition.Abandon()
	a.destroyActive()
	if err := a.install(id, payload); err != nil {
		return err
	}
	a.lastFrame = a.clock.Now()
	return nil
}

// Request starts a fade to another screen. It returns false, changing
// nothing, when a switch is already in flight, the screen is not
// registered or the payload targets a different screen.
func (a *App) Request(id ScreenID, payload Payload) bool {
	if a.closed {
		return false
	}
	if err := a.validate(id, payload); err != nil {
		Logger().Debug("switch rejected", "screen", id, "err", err)
		return false
	}
	if !a.transition.Request(id, payload) {
		Logger().Debug("switch rejected", "screen", id, "phase", a.transition.Phase)
		return false
	}
	Logger().Debug("switch requested", "from", a.activeID, "to", id)
	return true
}

func (a *App) validate(id ScreenID, payload Payload) error {
	if _, ok := a.factories[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownScreen, id)
	}
	if payload != nil && payload.Target() != id {
		return fmt.Errorf("%w: %s payload for %s", ErrPayloadMismatch, payload.Target(), id)
	}
	return nil
}

// Quit stops the loop at the next frame boundary.
func (a *App) Quit() { a.quit = true }

// Run ticks until the application quits, then closes it.
func (a *App) Run() error {
	if a.closed {
		return ErrClosed
	}
	Logger().Info("loop started",
		"screen", a.activeID,
		"frameCap", a.frameCap,
		"transition", a.transition.Duration)
	for a.Tick() {
	}
	return nil
}

// Tick runs one frame: poll input, advance the transition, update, render
// the screen, overlays and fade, present, run the post-present hook and
// pace. It returns false once the application has closed.
func (a *App) Tick() bool {
	if a.closed {
		return false
	}

	start := a.clock.Now()
	var dt float64
	if !a.lastFrame.IsZero() {
		dt = start.Sub(a.lastFrame).Seconds()
	}
	a.lastFrame = start

	a.pollInput()
	if a.quit || (a.surface != nil && a.surface.ShouldClose()) {
		a.Close()
		return false
	}

	if a.transition.Advance(dt) {
		a.swap()
	}
	a.audio.Tick()

	if a.active != nil {
		a.active.Update(dt)
	}
	stats := FrameStats{
		Delta:     dt,
		Now:       a.clock.Now(),
		LastInput: a.input.LastInput(),
		Frame:     a.frames,
	}
	for _, o := range a.overlays {
		o.Update(stats)
	}

	if a.surface != nil {
		a.surface.BeginFrame()
	}
	a.renderer.SetViewport(a.renderSize.X, a.renderSize.Y)
	if a.active != nil {
		a.active.Render(a.renderer)
	}
	for _, o := range a.overlays {
		o.Render(a.renderer)
	}
	if a.transition.Active() {
		a.renderer.DrawFlatQuad(0, 0, a.renderSize.X, a.renderSize.Y,
			a.fadeColor.WithAlpha(a.transition.Alpha()))
	}
	if a.surface != nil {
		a.surface.Present()
	}
	if pp, ok := a.active.(PostPresenter); ok {
		pp.PostPresent()
	}

	a.frames++
	a.governor.Pace(start)
	return true
}

func (a *App) pollInput() {
	if a.source == nil {
		return
	}
	for _, ev := range a.source.Poll() {
		a.input.Apply(ev)
		if a.active != nil {
			a.active.HandleInput(ev)
		}
	}
}

// swap replaces the active screen with the pending one. The old screen is
// destroyed before the new one is constructed.
func (a *App) swap() {
	id, payload := a.transition.Take()
	from := a.activeID
	a.destroyActive()
	if err := a.install(id, payload); err != nil {
		Logger().Error("screen init failed", "screen", id, "err", err)
		return
	}
	// Init may be slow; keep it out of the next frame's delta.
	a.lastFrame = a.clock.Now()
	Logger().Info("screen switched", "from", from, "to", id)
}

func (a *App) install(id ScreenID, payload Payload) error {
	s := a.factories[id]()
	if err := s.Init(a.ctx, payload); err != nil {
		s.Destroy()
		return fmt.Errorf("init %s: %w", id, err)
	}
	a.active = s
	a.activeID = id
	return nil
}

func (a *App) destroyActive() {
	if a.active == nil {
		return
	}
	a.active.Destroy()
	a.active = nil
	a.activeID = ScreenNone
}

// Close abandons any transition, destroys the active screen and overlays
// and stops audio. It is safe to call more than once.
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.transition.Abandon()
	a.destroyActive()
	a.audio.Stop()
	for _, o := range a.overlays {
		o.Destroy()
	}
	Logger().Info("application closed", "frames", a.frames)
}
