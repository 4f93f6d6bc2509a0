// Package chart loads rhythm-game charts and estimates their difficulty.
package chart

import (
	"path/filepath"
	"strings"
	"time"
)

// DefaultAudioFile is used when a chart does not name its audio.
const DefaultAudioFile = "audio.mp3"

// DefaultKeyCount is the lane count assumed when a chart does not say.
const DefaultKeyCount = 4

// NoteType distinguishes taps from hold endpoints.
type NoteType int

const (
	Tap NoteType = iota
	HoldStart
	HoldEnd
)

// String returns the note type name.
func (t NoteType) String() string {
	switch t {
	case Tap:
		return "tap"
	case HoldStart:
		return "hold-start"
	case HoldEnd:
		return "hold-end"
	}
	return "unknown"
}

// Note is one timed event in a lane.
type Note struct {
	Time   time.Duration
	Column int
	Type   NoteType
}

// TimingPoint marks a tempo change.
type TimingPoint struct {
	Time time.Duration
	BPM  float64
}

// ChartData is a parsed chart. Notes are sorted by time.
type ChartData struct {
	Filename string // Path of the chart file
	Dir      string // Song directory containing the chart

	Title       string
	Artist      string
	Version     string
	AudioFile   string
	PreviewTime time.Duration
	KeyCount    int

	Notes        []Note
	TimingPoints []TimingPoint
	Metadata     map[string]string // Every key:value pair seen, as written
}

// DisplayTitle returns the title, or the chart file name without its
// extension when the chart has none.
func (c *ChartData) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	base := filepath.Base(c.Filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// AudioPath resolves the chart's audio file against its directory.
func (c *ChartData) AudioPath() string {
	name := c.AudioFile
	if name == "" {
		name = DefaultAudioFile
	}
	if filepath.IsAbs(name) {
		return name
	}
	dir := c.Dir
	if dir == "" {
		dir = filepath.Dir(c.Filename)
	}
	return filepath.Join(dir, name)
}

// Length returns the time of the last note.
func (c *ChartData) Length() time.Duration {
	if len(c.Notes) == 0 {
		return 0
	}
	return c.Notes[len(c.Notes)-1].Time
}

// NoteCount returns the number of notes a player has to hit: taps and hold
// starts.
func (c *ChartData) NoteCount() int {
	n := 0
	for _, note := range c.Notes {
		if note.Type != HoldEnd {
			n++
		}
	}
	return n
}

// BPM returns the first timing point's tempo, or 0.
func (c *ChartData) BPM() float64 {
	if len(c.TimingPoints) == 0 {
		return 0
	}
	return c.TimingPoints[0].BPM
}
