// Package screens implements the song select, play and results screens.
package screens

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-theft-auto/tempo"
	"github.com/go-theft-auto/tempo/chart"
)

// Font sizes in pixels.
const (
	TitleFontSize = 20
	BodyFontSize  = 16
)

// DefaultPreviewCrossfade is the crossfade between song previews.
const DefaultPreviewCrossfade = 1500 * time.Millisecond

// Deps are the collaborators shared by every screen.
type Deps struct {
	Library          *chart.Library
	Calculator       chart.Calculator
	PreviewCrossfade time.Duration

	// Selection survives trips through play and results.
	selected int
	rate     float64
}

// Register installs factories for every screen on app.
func Register(app *tempo.App, deps *Deps) {
	if deps.Calculator == nil {
		deps.Calculator = chart.DensityCalculator{}
	}
	if deps.PreviewCrossfade == 0 {
		deps.PreviewCrossfade = DefaultPreviewCrossfade
	}
	if deps.rate == 0 {
		deps.rate = 1
	}

	app.Register(tempo.ScreenSongSelect, func() tempo.Screen { return NewSongSelect(deps) })
	app.Register(tempo.ScreenPlay, func() tempo.Screen { return NewPlay(deps) })
	app.Register(tempo.ScreenResults, func() tempo.Screen { return NewResults(deps) })
}

// PlayPayload starts a chart at a playback rate.
type PlayPayload struct {
	Chart *chart.ChartData
	Rate  float64
}

// Target implements tempo.Payload.
func (*PlayPayload) Target() tempo.ScreenID { return tempo.ScreenPlay }

// ResultsPayload summarizes a finished play.
type ResultsPayload struct {
	Chart      *chart.ChartData
	Rate       float64
	Elapsed    time.Duration
	KeyPresses int
	Difficulty chart.FinalResult
}

// Target implements tempo.Payload.
func (*ResultsPayload) Target() tempo.ScreenID { return tempo.ScreenResults }

// newLabel creates a label on the atlas for size.
func newLabel(ctx *tempo.Context, size int) (*tempo.TextLabel, error) {
	font, err := ctx.Font(size)
	if err != nil {
		return nil, fmt.Errorf("font %dpx: %w", size, err)
	}
	return tempo.NewTextLabel(font), nil
}

// destroyLabels destroys every non-nil label.
func destroyLabels(labels ...*tempo.TextLabel) {
	for _, l := range labels {
		if l != nil {
			l.Destroy()
		}
	}
}

// FormatDifficulty renders a difficulty breakdown with three decimals.
func FormatDifficulty(r chart.FinalResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Raw Diff (MSD): %.3f (%.3fx)\n", r.RawDiff, r.PlaybackRate)
	fmt.Fprintf(&b, "Total Rice Skill: %.3f\n", r.RiceTotal)
	fmt.Fprintf(&b, "Total LN Skill: %.3f\n", r.LNTotal)

	s := r.Skills
	b.WriteString("\n+ Skill Breakdown (Rice)\n")
	fmt.Fprintf(&b, "Stream: %.3f\n", s.Stream)
	fmt.Fprintf(&b, "Jumpstream: %.3f\n", s.Jumpstream)
	fmt.Fprintf(&b, "Handstream: %.3f\n", s.Handstream)
	fmt.Fprintf(&b, "Jack: %.3f\n", s.Jack)
	fmt.Fprintf(&b, "Chordjack: %.3f\n", s.Chordjack)
	fmt.Fprintf(&b, "Technical: %.3f\n", s.Technical)
	fmt.Fprintf(&b, "Stamina: %.3f\n", s.Stamina)

	b.WriteString("\n+ Skill Breakdown (Long Notes)\n")
	fmt.Fprintf(&b, "LN Density: %.3f\n", s.Density)
	fmt.Fprintf(&b, "LN Speed: %.3f\n", s.Speed)
	fmt.Fprintf(&b, "LN Shields: %.3f\n", s.Shields)
	fmt.Fprintf(&b, "LN Complexity: %.3f", s.Complexity)
	return b.String()
}

// FormatClock renders d as m:ss.mmm.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	return fmt.Sprintf("%d:%02d.%03d", ms/60000, ms/1000%60, ms%1000)
}

// FormatRate renders a playback rate like "1.1x".
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.1fx", rate)
}
