package tempo

import "time"

// DefaultFrameCap is the frame-rate cap used when none is configured.
const DefaultFrameCap = 999

// DefaultSpinMargin is how much of the remaining frame time is spun rather
// than slept, to absorb scheduler oversleep.
const DefaultSpinMargin = 500 * time.Microsecond

// Clock is the time source used for frame deltas and pacing.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// SystemClock returns the wall clock.
func SystemClock() Clock { return systemClock{} }

// FrameInterval returns the frame period for an fps cap; 0 for no cap.
func FrameInterval(fps int) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Second / time.Duration(fps)
}

// FrameGovernor holds each frame to a target interval. It sleeps through
// most of the remaining time and spins on the clock for the last margin.
type FrameGovernor struct {
	clock  Clock
	target time.Duration
	margin time.Duration
}

// NewFrameGovernor creates a governor for an fps cap. A cap of 0 disables
// pacing.
func NewFrameGovernor(fps int, clock Clock) *FrameGovernor {
	if clock == nil {
		clock = SystemClock()
	}
	return &FrameGovernor{
		clock:  clock,
		target: FrameInterval(fps),
		margin: DefaultSpinMargin,
	}
}

// SetTarget sets the frame interval directly.
func (g *FrameGovernor) SetTarget(d time.Duration) { g.target = d }

// Target returns the frame interval.
func (g *FrameGovernor) Target() time.Duration { return g.target }

// SetMargin sets the spin margin. Negative values are treated as zero.
func (g *FrameGovernor) SetMargin(d time.Duration) { g.margin = max(d, 0) }

// Margin returns the spin margin.
func (g *FrameGovernor) Margin() time.Duration { return g.margin }

// Pace blocks until frameStart + target and returns the total frame time.
// Frames that already overran return immediately.
func (g *FrameGovernor) Pace(frameStart time.Time) time.Duration {
	if g.target <= 0 {
		return g.clock.Now().Sub(frameStart)
	}
	deadline := frameStart.Add(g.target)
	now := g.clock.Now()
	remaining := deadline.Sub(now)
	if remaining <= 0 {
		return now.Sub(frameStart)
	}
	if remaining > g.margin {
		g.clock.Sleep(remaining - g.margin)
	}
	for {
		now = g.clock.Now()
		if !now.Before(deadline) {
			return now.Sub(frameStart)
		}
	}
}
