package chart

import (
	"math"
	"time"
)

// SkillSet breaks a difficulty down by pattern family. Rice skills cover
// taps; LN skills cover hold notes.
type SkillSet struct {
	Stream     float64
	Jumpstream float64
	Handstream float64
	Jack       float64
	Chordjack  float64
	Technical  float64
	Stamina    float64

	Density    float64
	Speed      float64
	Shields    float64
	Complexity float64
}

// FinalResult is the difficulty of a chart at one playback rate.
type FinalResult struct {
	RawDiff      float64
	RiceTotal    float64
	LNTotal      float64
	PlaybackRate float64
	Skills       SkillSet
}

// Calculator rates a chart. Implementations must be pure: the same chart
// and rate always give the same result.
type Calculator interface {
	Calculate(c *ChartData, rate float64) FinalResult
}

// densityWindow is the width of one density sample.
const densityWindow = time.Second

// staminaLength is the song length at which stamina reaches the raw
// difficulty.
const staminaLength = 3 * time.Minute

// DensityCalculator estimates difficulty from notes per second. Each skill
// is the raw difficulty weighted by how much of the chart its pattern
// family makes up.
type DensityCalculator struct {
	// P is the power mean exponent over density samples; higher values
	// favour the hardest sections. Zero means 4.
	P float64
}

var _ Calculator = DensityCalculator{}

// Calculate implements Calculator. A rate of zero or less is treated as 1.
func (d DensityCalculator) Calculate(c *ChartData, rate float64) FinalResult {
	if rate <= 0 {
		rate = 1
	}
	result := FinalResult{PlaybackRate: rate}
	if c == nil || len(c.Notes) == 0 {
		return result
	}
	p := d.P
	if p == 0 {
		p = 4
	}

	scaled := func(t time.Duration) time.Duration {
		return time.Duration(float64(t) / rate)
	}

	densities := windowDensities(c.Notes, scaled)
	result.RawDiff = powerMean(densities, p)

	chords := groupChords(c.Notes)
	var singles, jumps, hands, quads, jacks, chordjacks int
	for i, chord := range chords {
		switch {
		case len(chord) == 1:
			singles++
		case len(chord) == 2:
			jumps++
		case len(chord) == 3:
			hands++
		default:
			quads++
		}
		if i > 0 && sharesColumn(chords[i-1], chord) {
			if len(chord) == 1 {
				jacks++
			} else {
				chordjacks++
			}
		}
	}
	if len(chords) == 0 {
		return result
	}
	total := float64(len(chords))
	share := func(n int) float64 { return result.RawDiff * float64(n) / total }

	s := &result.Skills
	s.Stream = share(singles)
	s.Jumpstream = share(jumps)
	s.Handstream = share(hands + quads)
	s.Jack = share(jacks)
	s.Chordjack = share(chordjacks)
	s.Technical = StandardDeviation(densities)
	s.Stamina = result.RawDiff * math.Min(1, float64(scaled(c.Length()))/float64(staminaLength))

	holds := holdSpans(c.Notes)
	if len(holds) > 0 {
		var starts []Note
		lengths := make([]float64, 0, len(holds))
		for _, h := range holds {
			starts = append(starts, Note{Time: h.start, Column: h.column, Type: HoldStart})
			lengths = append(lengths, scaled(h.end-h.start).Seconds())
		}
		holdShare := float64(len(holds)) / total
		s.Density = result.RawDiff * holdShare
		s.Speed = powerMean(windowDensities(starts, scaled), p)
		s.Shields = result.RawDiff * shieldShare(c.Notes, holds)
		s.Complexity = StandardDeviation(lengths)
	}

	rice := []float64{s.Stream, s.Jumpstream, s.Handstream, s.Jack, s.Chordjack, s.Technical, s.Stamina}
	ln := []float64{s.Density, s.Speed, s.Shields, s.Complexity}
	result.RiceTotal = powerMean(rice, 2)
	result.LNTotal = powerMean(ln, 2)
	return result
}

// windowDensities counts notes per density window, excluding hold ends.
// Empty windows between notes count as zero.
func windowDensities(notes []Note, scaled func(time.Duration) time.Duration) []float64 {
	var counts []float64
	for _, n := range notes {
		if n.Type == HoldEnd {
			continue
		}
		i := int(scaled(n.Time) / densityWindow)
		if i < 0 {
			i = 0
		}
		for len(counts) <= i {
			counts = append(counts, 0)
		}
		counts[i]++
	}
	perSecond := float64(time.Second) / float64(densityWindow)
	for i := range counts {
		counts[i] *= perSecond
	}
	return counts
}

// groupChords groups simultaneous taps and hold starts. Notes must be
// sorted by time.
func groupChords(notes []Note) [][]int {
	var chords [][]int
	var last time.Duration = -1
	for _, n := range notes {
		if n.Type == HoldEnd {
			continue
		}
		if n.Time != last || len(chords) == 0 {
			chords = append(chords, nil)
			last = n.Time
		}
		chords[len(chords)-1] = append(chords[len(chords)-1], n.Column)
	}
	return chords
}

func sharesColumn(a, b []int) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

type holdSpan struct {
	start, end time.Duration
	column     int
}

// holdSpans pairs each hold start with the next hold end in its column.
func holdSpans(notes []Note) []holdSpan {
	open := make(map[int]time.Duration)
	var spans []holdSpan
	for _, n := range notes {
		switch n.Type {
		case HoldStart:
			open[n.Column] = n.Time
		case HoldEnd:
			if start, ok := open[n.Column]; ok {
				spans = append(spans, holdSpan{start: start, end: n.Time, column: n.Column})
				delete(open, n.Column)
			}
		}
	}
	return spans
}

// shieldShare is the fraction of taps landing in another column while a
// hold is down.
func shieldShare(notes []Note, holds []holdSpan) float64 {
	taps, shielded := 0, 0
	for _, n := range notes {
		if n.Type != Tap {
			continue
		}
		taps++
		for _, h := range holds {
			if h.column != n.Column && n.Time > h.start && n.Time < h.end {
				shielded++
				break
			}
		}
	}
	if taps == 0 {
		return 0
	}
	return float64(shielded) / float64(taps)
}

// PNorm returns (Σ (vᵢ·wᵢ)^p)^(1/p). Missing weights count as 1.
func PNorm(values, weights []float64, p float64) float64 {
	if len(values) == 0 || p == 0 {
		return 0
	}
	var sum float64
	for i, v := range values {
		w := 1.0
		if i < len(weights) {
			w = weights[i]
		}
		sum += math.Pow(v*w, p)
	}
	return math.Pow(sum, 1/p)
}

// powerMean is PNorm with every weight set so that equal values map to
// themselves.
func powerMean(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	w := math.Pow(float64(len(values)), -1/p)
	weights := make([]float64, len(values))
	for i := range weights {
		weights[i] = w
	}
	return PNorm(values, weights, p)
}

// StandardDeviation returns the population standard deviation, or 0 for
// fewer than two values.
func StandardDeviation(values []float64) float64 {
	if len(values) <= 1 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	return math.Sqrt(sq / float64(len(values)))
}
