package screens

import (
	"fmt"
	"time"

	"github.com/go-theft-auto/tempo"
	"github.com/go-theft-auto/tempo/chart"
)

// Playfield layout, in render pixels.
const (
	laneWidth     = 100
	laneGap       = 4
	receptorH     = 40
	receptorFromY = 150 // Receptor top, measured up from the bottom edge
	noteH         = 24
	scrollSpeed   = 1200 // Pixels per second of chart time
	endDelay      = time.Second
	maxClockDrift = 50 * time.Millisecond
)

// LaneKeys binds the four lanes left to right.
var LaneKeys = [4]tempo.Key{tempo.KeyZ, tempo.KeyX, tempo.KeyComma, tempo.KeyPeriod}

var (
	laneColor     = tempo.RGBA(20, 20, 28, 255)
	receptorColor = tempo.ColorWhite.WithAlpha(0.3)
	pressedColor  = tempo.ColorYellow.WithAlpha(0.8)
	noteColor     = tempo.RGBA(120, 200, 255, 255)
	holdColor     = tempo.RGBA(120, 200, 255, 140)
)

type lane struct {
	key     tempo.Key
	pressed bool
	presses int
}

// Play runs a chart: four lanes, falling notes and a song clock. Notes are
// drawn as flat rectangles.
type Play struct {
	deps *Deps
	ctx  *tempo.Context

	chart *chart.ChartData
	rate  float64
	lanes [4]lane

	title *tempo.TextLabel
	clock *tempo.TextLabel

	songTime time.Duration
	finished bool

	destroyed bool
}

// NewPlay creates the play screen.
func NewPlay(deps *Deps) *Play {
	p := &Play{deps: deps}
	for i, k := range LaneKeys {
		p.lanes[i].key = k
	}
	return p
}

// Init starts the chart's song from the beginning at the payload rate.
func (p *Play) Init(ctx *tempo.Context, payload tempo.Payload) error {
	p.ctx = ctx

	switch pl := payload.(type) {
	case *PlayPayload:
		if pl.Chart == nil {
			return fmt.Errorf("play: %w: no chart", tempo.ErrPayloadMismatch)
		}
		p.chart = pl.Chart
		p.rate = pl.Rate
	default:
		return fmt.Errorf("play: %w: %T", tempo.ErrPayloadMismatch, payload)
	}
	if p.rate <= 0 {
		p.rate = 1
	}
	tempo.Logger().Info("starting play",
		"chart", p.chart.Filename,
		"song", p.chart.AudioPath(),
		"rate", FormatRate(p.rate))

	var err error
	if p.title, err = newLabel(ctx, TitleFontSize); err != nil {
		return fmt.Errorf("play: %w", err)
	}
	p.title.SetText(fmt.Sprintf("%s (%s)", p.chart.DisplayTitle(), FormatRate(p.rate)))
	p.title.SetAlignment(tempo.AlignCenter, tempo.AlignTop)
	p.title.SetAnchor(ctx.RenderSize.X/2, 16)

	if p.clock, err = newLabel(ctx, BodyFontSize); err != nil {
		return fmt.Errorf("play: %w", err)
	}
	p.clock.SetAlignment(tempo.AlignRight, tempo.AlignTop)
	p.clock.SetAnchor(ctx.RenderSize.X-16, 16)
	p.updateClock()

	if err := tempo.PlayStream(ctx.Audio, p.chart.AudioPath(), 0, 0); err == nil {
		ctx.Audio.SetPlaybackRate(p.rate)
	}
	return nil
}

// SongTime returns the chart position.
func (p *Play) SongTime() time.Duration { return p.songTime }

// Presses returns the key presses per lane.
func (p *Play) Presses() [4]int {
	var out [4]int
	for i, l := range p.lanes {
		out[i] = l.presses
	}
	return out
}

// Pressed reports whether lane i is held.
func (p *Play) Pressed(i int) bool {
	return i >= 0 && i < len(p.lanes) && p.lanes[i].pressed
}

// ClockText returns the song clock label's text.
func (p *Play) ClockText() string { return p.clock.Text() }

// HandleInput tracks lane keys; Escape returns to song select and Enter
// ends the play.
func (p *Play) HandleInput(ev tempo.Event) {
	if p.destroyed {
		return
	}
	switch ev.Type {
	case tempo.EventKeyDown:
		if ev.Repeat {
			return
		}
		if i := p.laneFor(ev.Key); i >= 0 {
			p.lanes[i].pressed = true
			p.lanes[i].presses++
			return
		}
		switch ev.Key {
		case tempo.KeyEscape:
			p.ctx.SwitchTo(tempo.ScreenSongSelect, nil)
		case tempo.KeyEnter:
			p.finish()
		}
	case tempo.EventKeyUp:
		if i := p.laneFor(ev.Key); i >= 0 {
			p.lanes[i].pressed = false
		}
	}
}

func (p *Play) laneFor(k tempo.Key) int {
	for i, l := range p.lanes {
		if l.key == k {
			return i
		}
	}
	return -1
}

// Update advances the song clock, following the audio position when the
// audio backend reports one, and ends the play after the last note.
func (p *Play) Update(dt float64) {
	if p.destroyed {
		return
	}
	p.songTime += time.Duration(dt * p.rate * float64(time.Second))
	if ac, ok := p.ctx.Audio.(tempo.AudioClock); ok {
		if pos := ac.Position(); pos > 0 {
			if drift := pos - p.songTime; drift > maxClockDrift || drift < -maxClockDrift {
				p.songTime = pos
			}
		}
	}
	p.updateClock()

	if p.songTime >= p.chart.Length()+endDelay {
		p.finish()
	}
}

func (p *Play) updateClock() {
	p.clock.SetText(FormatClock(p.songTime) + " / " + FormatClock(p.chart.Length()))
}

// finish requests the results screen once.
func (p *Play) finish() {
	if p.finished {
		return
	}
	total := 0
	for _, l := range p.lanes {
		total += l.presses
	}
	payload := &ResultsPayload{
		Chart:      p.chart,
		Rate:       p.rate,
		Elapsed:    p.songTime,
		KeyPresses: total,
		Difficulty: p.deps.Calculator.Calculate(p.chart, p.rate),
	}
	p.finished = p.ctx.SwitchTo(tempo.ScreenResults, payload)
}

// playfieldX returns the left edge of lane 0.
func (p *Play) playfieldX() float32 {
	width := float32(len(p.lanes))*laneWidth + float32(len(p.lanes)-1)*laneGap
	return (p.ctx.RenderSize.X - width) / 2
}

// Render draws lanes, notes, receptors and labels.
func (p *Play) Render(r tempo.Renderer) {
	if p.destroyed {
		return
	}
	h := p.ctx.RenderSize.Y
	x0 := p.playfieldX()
	receptorY := h - receptorFromY

	for i := range p.lanes {
		r.DrawFlatQuad(x0+float32(i)*(laneWidth+laneGap), 0, laneWidth, h, laneColor)
	}

	noteY := func(t time.Duration) float32 {
		return receptorY - float32((t-p.songTime).Seconds())*scrollSpeed
	}
	holdStart := map[int]time.Duration{}
	for _, n := range p.chart.Notes {
		if n.Column < 0 || n.Column >= len(p.lanes) {
			continue
		}
		x := x0 + float32(n.Column)*(laneWidth+laneGap)
		switch n.Type {
		case chart.HoldStart:
			holdStart[n.Column] = n.Time
			continue
		case chart.HoldEnd:
			start, ok := holdStart[n.Column]
			if !ok {
				continue
			}
			top, bottom := noteY(n.Time), noteY(start)+noteH
			if bottom >= 0 && top <= h {
				r.DrawFlatQuad(x, top, laneWidth, bottom-top, holdColor)
			}
			if y := noteY(start); y >= -noteH && y <= h {
				r.DrawFlatQuad(x, y, laneWidth, noteH, noteColor)
			}
			continue
		}
		if y := noteY(n.Time); y >= -noteH && y <= h {
			r.DrawFlatQuad(x, y, laneWidth, noteH, noteColor)
		}
	}

	// No skin textures: receptors draw as the renderer's fallback quad.
	for i, l := range p.lanes {
		c := receptorColor
		if l.pressed {
			c = pressedColor
		}
		r.DrawTexturedQuad(tempo.TextureRegion{}, x0+float32(i)*(laneWidth+laneGap), receptorY, laneWidth, receptorH, c)
	}

	p.title.Render(r)
	p.clock.Render(r)
}

// Destroy stops the song and releases the labels.
func (p *Play) Destroy() {
	if p.destroyed {
		return
	}
	p.destroyed = true
	tempo.Logger().Debug("destroying play")
	if p.ctx != nil {
		p.ctx.Audio.Stop()
	}
	destroyLabels(p.title, p.clock)
}
