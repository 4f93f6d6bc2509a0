package screens

import (
	"fmt"
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/go-theft-auto/tempo"
	"github.com/go-theft-auto/tempo/chart"
)

// Song list layout and navigation.
const (
	titleMarginX   = 16
	infoMarginX    = 16
	lineSkip       = 32
	pageStep       = 5
	scrollDuration = 0.25 // seconds
	titleMaxWidth  = 900

	rateStep = 0.1
	minRate  = 0.1
	maxRate  = 3.0
)

// SongSelect lists the songs library. The selected title is yellow and
// scrolls to the vertical center; its difficulty is shown on the left and
// its preview plays.
type SongSelect struct {
	deps *Deps
	ctx  *tempo.Context

	charts []*chart.ChartData
	titles []*tempo.TextLabel
	info   *tempo.TextLabel

	selected int
	rate     float64

	offset float32
	scroll *gween.Tween

	destroyed bool
}

// NewSongSelect creates the song select screen.
func NewSongSelect(deps *Deps) *SongSelect {
	return &SongSelect{deps: deps, rate: 1}
}

// Init scans the library and builds one label per song.
func (s *SongSelect) Init(ctx *tempo.Context, _ tempo.Payload) error {
	s.ctx = ctx

	if s.deps.Library != nil {
		charts, err := s.deps.Library.Scan()
		if err != nil {
			return fmt.Errorf("song select: %w", err)
		}
		s.charts = charts
	}

	info, err := newLabel(ctx, BodyFontSize)
	if err != nil {
		return fmt.Errorf("song select: %w", err)
	}
	s.info = info
	s.info.SetAlignment(tempo.AlignLeft, tempo.AlignMiddle)
	s.info.SetAnchor(infoMarginX, ctx.RenderSize.Y/2)

	titleFont, err := ctx.Font(TitleFontSize)
	if err != nil {
		return fmt.Errorf("song select: font %dpx: %w", TitleFontSize, err)
	}
	for _, c := range s.charts {
		l := tempo.NewTextLabel(titleFont)
		l.SetText(tempo.TruncateText(titleFont, c.DisplayTitle(), 1, titleMaxWidth))
		l.SetAlignment(tempo.AlignRight, tempo.AlignMiddle)
		l.SetLineAlign(tempo.TextAlignRight)
		s.titles = append(s.titles, l)
	}

	if len(s.charts) == 0 {
		s.info.SetText("No charts found.")
		return nil
	}

	if s.deps.rate > 0 {
		s.rate = s.deps.rate
	}
	s.selected = min(max(s.deps.selected, 0), len(s.charts)-1)
	s.offset = s.targetOffset()
	s.layout()
	s.refreshInfo()
	s.playPreview()
	return nil
}

// Selected returns the index of the selected chart.
func (s *SongSelect) Selected() int { return s.selected }

// Rate returns the selected playback rate.
func (s *SongSelect) Rate() float64 { return s.rate }

// Charts returns the listed charts.
func (s *SongSelect) Charts() []*chart.ChartData { return s.charts }

// ScrollOffset returns the list's vertical offset from its resting place.
func (s *SongSelect) ScrollOffset() float32 { return s.offset }

// InfoText returns the text of the difficulty panel.
func (s *SongSelect) InfoText() string { return s.info.Text() }

// HandleInput navigates the list, changes rate, starts play or quits.
func (s *SongSelect) HandleInput(ev tempo.Event) {
	if s.destroyed || ev.Type != tempo.EventKeyDown {
		return
	}
	if ev.Pressed(tempo.KeyEscape) {
		s.ctx.Quit()
		return
	}
	if len(s.charts) == 0 {
		return
	}

	oldIndex, oldRate := s.selected, s.rate
	n := len(s.charts)

	switch ev.Key {
	case tempo.KeyDown:
		s.selected = (s.selected + 1) % n
	case tempo.KeyUp:
		s.selected = (s.selected - 1 + n) % n
	case tempo.KeyPageDown:
		s.selected = min(s.selected+pageStep, n-1)
	case tempo.KeyPageUp:
		s.selected = max(s.selected-pageStep, 0)
	case tempo.KeyHome:
		s.selected = 0
	case tempo.KeyEnd:
		s.selected = n - 1
	case tempo.KeyLeft:
		s.rate = stepRate(s.rate, -rateStep)
	case tempo.KeyRight:
		s.rate = stepRate(s.rate, rateStep)
	case tempo.KeyEnter:
		if !ev.Repeat {
			s.startPlay()
		}
		return
	}

	if s.selected != oldIndex {
		s.scroll = gween.New(s.offset, s.targetOffset(), scrollDuration, ease.OutCubic)
		s.refreshInfo()
		s.playPreview()
	}
	if s.rate != oldRate {
		s.ctx.Audio.SetPlaybackRate(s.rate)
		tempo.Logger().Info("selected rate", "rate", FormatRate(s.rate))
		s.refreshInfo()
	}
}

// stepRate moves rate by delta on the 0.1 grid, clamped.
func stepRate(rate, delta float64) float64 {
	r := math.Round((rate+delta)*10) / 10
	return min(max(r, minRate), maxRate)
}

func (s *SongSelect) targetOffset() float32 {
	return -float32(s.selected) * lineSkip
}

func (s *SongSelect) startPlay() {
	c := s.charts[s.selected]
	s.ctx.SwitchTo(tempo.ScreenPlay, &PlayPayload{Chart: c, Rate: s.rate})
}

func (s *SongSelect) refreshInfo() {
	result := s.deps.Calculator.Calculate(s.charts[s.selected], s.rate)
	s.info.SetText(FormatDifficulty(result))
}

func (s *SongSelect) playPreview() {
	c := s.charts[s.selected]
	tempo.Logger().Info("playing preview", "path", c.AudioPath(), "from", c.PreviewTime)
	if err := tempo.PlayStream(s.ctx.Audio, c.AudioPath(), s.deps.PreviewCrossfade, c.PreviewTime); err != nil {
		return
	}
	s.ctx.Audio.SetPlaybackRate(s.rate)
}

// Update advances the list scroll.
func (s *SongSelect) Update(dt float64) {
	if s.destroyed {
		return
	}
	if s.scroll != nil {
		v, done := s.scroll.Update(float32(dt))
		s.offset = v
		if done {
			s.scroll = nil
		}
	}
	s.layout()
}

// layout anchors every title at its row and colors the selection.
func (s *SongSelect) layout() {
	x := s.ctx.RenderSize.X - titleMarginX
	baseY := s.ctx.RenderSize.Y/2 + s.offset
	for i, l := range s.titles {
		l.SetAnchor(x, baseY+float32(i)*lineSkip)
		if i == s.selected {
			l.SetColor(tempo.ColorYellow)
		} else {
			l.SetColor(tempo.ColorWhite)
		}
	}
}

// Render draws the visible titles and the info panel.
func (s *SongSelect) Render(r tempo.Renderer) {
	if s.destroyed {
		return
	}
	h := s.ctx.RenderSize.Y
	for _, l := range s.titles {
		y := l.Anchor().Y
		if y < -lineSkip || y > h+lineSkip {
			continue
		}
		l.Render(r)
	}
	s.info.Render(r)
}

// Destroy stops the preview and releases every label.
func (s *SongSelect) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	tempo.Logger().Debug("destroying song select")

	if len(s.charts) > 0 {
		s.deps.selected = s.selected
		s.deps.rate = s.rate
	}
	if s.ctx != nil {
		s.ctx.Audio.Stop()
	}
	destroyLabels(s.titles...)
	destroyLabels(s.info)
	s.titles = nil
	s.charts = nil
}
