package tempo

import "time"

// Option configures an App.
type Option func(*App)

// WithSurface sets the window the loop presents to and polls for close.
func WithSurface(s Surface) Option {
	return func(a *App) { a.surface = s }
}

// WithInput sets the event source dispatched at the top of each frame.
func WithInput(src InputSource) Option {
	return func(a *App) { a.source = src }
}

// WithAudio sets the music stream exposed to screens.
func WithAudio(audio Audio) Option {
	return func(a *App) { a.audio = audio }
}

// WithFonts sets the font cache exposed to screens.
func WithFonts(fonts *FontCache) Option {
	return func(a *App) { a.fonts = fonts }
}

// WithClock replaces the wall clock for frame deltas and pacing.
func WithClock(c Clock) Option {
	return func(a *App) { a.clock = c }
}

// WithFrameCap sets the frame-rate cap. 0 disables pacing.
func WithFrameCap(fps int) Option {
	return func(a *App) { a.frameCap = fps }
}

// WithTransition sets the length of each fade half. 0 swaps screens on the
// next frame without a visible fade.
func WithTransition(d time.Duration) Option {
	return func(a *App) { a.transition.Duration = d }
}

// WithRenderSize sets the logical resolution screens draw at.
func WithRenderSize(w, h float32) Option {
	return func(a *App) { a.renderSize = Vec2{X: w, Y: h} }
}

// WithFadeColor sets the transition overlay color. Its alpha is ignored.
func WithFadeColor(c Color) Option {
	return func(a *App) { a.fadeColor = c }
}

// WithOverlay adds an overlay drawn above every screen. The App destroys
// overlays on Close.
func WithOverlay(o Overlay) Option {
	return func(a *App) { a.overlays = append(a.overlays, o) }
}
