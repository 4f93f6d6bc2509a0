package tempo

import (
	"fmt"
	"runtime"
	"time"
)

// FrameStats is passed to overlays once per frame.
type FrameStats struct {
	Delta     float64   // Seconds since the previous frame
	Now       time.Time // Time of the overlay update
	LastInput time.Time // Most recent key or button event
	Frame     uint64
}

// Overlay is drawn above the active screen and below the fade.
type Overlay interface {
	Update(stats FrameStats)
	Render(r Renderer)
	Destroy()
}

const fpsRefresh = 0.1 // seconds

// FPSCounter shows frame rate, frame time, memory and input latency in the
// top-left corner.
type FPSCounter struct {
	label   *TextLabel
	latency *TextLabel

	frames   int
	elapsed  float64
	lastSeen time.Time
	visible  bool

	// readMem returns the bytes obtained from the OS.
	readMem func() uint64
}

var _ Overlay = (*FPSCounter)(nil)

// NewFPSCounter creates a counter drawn with font.
func NewFPSCounter(font Font) *FPSCounter {
	c := &FPSCounter{
		label:   NewTextLabel(font),
		latency: NewTextLabel(font),
		visible: true,
		readMem: func() uint64 {
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			return ms.Sys
		},
	}
	c.label.SetLineGap(-2)
	c.label.SetAnchor(5, 4)
	c.label.SetText("FPS: --")
	c.latency.SetText("Input: --")
	c.placeLatency()
	return c
}

// SetVisible shows or hides the counter. Hidden counters keep sampling.
func (c *FPSCounter) SetVisible(v bool) { c.visible = v }

// Visible reports whether the counter is drawn.
func (c *FPSCounter) Visible() bool { return c.visible }

// Text returns the counter's current text.
func (c *FPSCounter) Text() string { return c.label.Text() }

// LatencyText returns the latency label's current text.
func (c *FPSCounter) LatencyText() string { return c.latency.Text() }

// Update accumulates frame time and refreshes the labels every 100 ms.
func (c *FPSCounter) Update(stats FrameStats) {
	c.frames++
	c.elapsed += stats.Delta

	if !stats.LastInput.IsZero() && stats.LastInput != c.lastSeen {
		c.lastSeen = stats.LastInput
		lat := max(stats.Now.Sub(stats.LastInput), 0)
		c.latency.SetText(fmt.Sprintf("Input: %.2fms", float64(lat.Microseconds())/1000))
	}

	if c.elapsed < fpsRefresh {
		return
	}
	fps := float64(c.frames) / c.elapsed
	frameMs := c.elapsed / float64(c.frames) * 1000
	c.label.SetText(fmt.Sprintf("FPS: %.0f\nFrame: %.2fms\nMem: %s",
		fps, frameMs, FormatMemorySize(c.readMem())))
	c.placeLatency()
	c.frames = 0
	c.elapsed = 0
}

func (c *FPSCounter) placeLatency() {
	b := c.label.Bounds()
	c.latency.SetAnchor(b.X, b.Y+b.H+5)
}

// Render draws both labels.
func (c *FPSCounter) Render(r Renderer) {
	if !c.visible {
		return
	}
	c.label.Render(r)
	c.latency.Render(r)
}

// Destroy releases both labels.
func (c *FPSCounter) Destroy() {
	c.label.Destroy()
	c.latency.Destroy()
}

// FormatMemorySize formats a byte count with two decimals in the largest
// unit that keeps the value at or above 1.
func FormatMemorySize(bytes uint64) string {
	units := [...]string{"B", "KB", "MB", "GB", "TB"}
	size := float64(bytes)
	unit := 0
	for size >= 1024 && unit < len(units)-1 {
		size /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f %s", size, units[unit])
}
