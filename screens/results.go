package screens

import (
	"fmt"
	"strings"

	"github.com/go-theft-auto/tempo"
)

// Results shows the summary of a finished play.
type Results struct {
	deps *Deps
	ctx  *tempo.Context

	title   *tempo.TextLabel
	summary *tempo.TextLabel
	hint    *tempo.TextLabel

	destroyed bool
}

// NewResults creates the results screen.
func NewResults(deps *Deps) *Results {
	return &Results{deps: deps}
}

// Init builds the summary from a *ResultsPayload.
func (s *Results) Init(ctx *tempo.Context, payload tempo.Payload) error {
	s.ctx = ctx

	pl, ok := payload.(*ResultsPayload)
	if !ok || pl.Chart == nil {
		return fmt.Errorf("results: %w: %T", tempo.ErrPayloadMismatch, payload)
	}

	var err error
	if s.title, err = newLabel(ctx, TitleFontSize); err != nil {
		return fmt.Errorf("results: %w", err)
	}
	if s.summary, err = newLabel(ctx, BodyFontSize); err != nil {
		return fmt.Errorf("results: %w", err)
	}
	if s.hint, err = newLabel(ctx, BodyFontSize); err != nil {
		return fmt.Errorf("results: %w", err)
	}

	cx := ctx.RenderSize.X / 2
	s.title.SetText(pl.Chart.DisplayTitle())
	s.title.SetAlignment(tempo.AlignCenter, tempo.AlignBottom)
	s.title.SetAnchor(cx, ctx.RenderSize.Y/4)

	s.summary.SetText(summaryText(pl))
	s.summary.SetLineAlign(tempo.TextAlignCenter)
	s.summary.SetAlignment(tempo.AlignCenter, tempo.AlignTop)
	s.summary.SetAnchor(cx, ctx.RenderSize.Y/4+16)

	s.hint.SetText("Press Enter to continue")
	s.hint.SetColor(tempo.ColorGray)
	s.hint.SetAlignment(tempo.AlignCenter, tempo.AlignBottom)
	s.hint.SetAnchor(cx, ctx.RenderSize.Y-32)

	tempo.Logger().Info("play finished",
		"chart", pl.Chart.Filename,
		"presses", pl.KeyPresses,
		"elapsed", pl.Elapsed)
	return nil
}

func summaryText(pl *ResultsPayload) string {
	var b strings.Builder
	if pl.Chart.Artist != "" {
		fmt.Fprintf(&b, "%s\n", pl.Chart.Artist)
	}
	fmt.Fprintf(&b, "Rate: %s\n", FormatRate(pl.Rate))
	fmt.Fprintf(&b, "Time: %s\n", FormatClock(pl.Elapsed))
	fmt.Fprintf(&b, "Notes: %d\n", pl.Chart.NoteCount())
	fmt.Fprintf(&b, "Key presses: %d\n\n", pl.KeyPresses)
	fmt.Fprintf(&b, "Raw Diff (MSD): %.3f\n", pl.Difficulty.RawDiff)
	fmt.Fprintf(&b, "Total Rice Skill: %.3f\n", pl.Difficulty.RiceTotal)
	fmt.Fprintf(&b, "Total LN Skill: %.3f", pl.Difficulty.LNTotal)
	return b.String()
}

// SummaryText returns the summary label's text.
func (s *Results) SummaryText() string { return s.summary.Text() }

// HandleInput returns to song select on Enter or Escape.
func (s *Results) HandleInput(ev tempo.Event) {
	if s.destroyed {
		return
	}
	if ev.Pressed(tempo.KeyEnter) || ev.Pressed(tempo.KeyEscape) {
		s.ctx.SwitchTo(tempo.ScreenSongSelect, nil)
	}
}

// Update does nothing; the results are static.
func (s *Results) Update(float64) {}

// Render draws the labels.
func (s *Results) Render(r tempo.Renderer) {
	if s.destroyed {
		return
	}
	s.title.Render(r)
	s.summary.Render(r)
	s.hint.Render(r)
}

// Destroy releases the labels.
func (s *Results) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	destroyLabels(s.title, s.summary, s.hint)
}
