package chart_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-theft-auto/tempo/chart"
)

const sampleOsu = `osu file format v14

[General]
AudioFilename: song.ogg
PreviewTime: 12500
Mode: 3

[Metadata]
Title:Evening Train
Artist:Someone
Version:Hard

[Difficulty]
CircleSize:4

[TimingPoints]
0,500,4,2,0,100,1,0
1000,-100,4,2,0,100,0,0

[HitObjects]
448,192,2000,1,0,0:0:0:0:
64,192,1000,1,0,0:0:0:0:
192,192,1500,128,0,1800:0:0:0:0:
320,192,1500,1,0,0:0:0:0:
`

func TestParseOsu(t *testing.T) {
	c, err := chart.Parse(filepath.Join("songs", "train", "hard.osu"), []byte(sampleOsu))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if c.Title != "Evening Train" || c.Artist != "Someone" || c.Version != "Hard" {
		t.Errorf("metadata = %q/%q/%q", c.Title, c.Artist, c.Version)
	}
	if c.PreviewTime != 12500*time.Millisecond {
		t.Errorf("PreviewTime = %v, want 12.5s", c.PreviewTime)
	}
	if c.KeyCount != 4 {
		t.Errorf("KeyCount = %d, want 4", c.KeyCount)
	}
	if got := c.AudioPath(); got != filepath.Join("songs", "train", "song.ogg") {
		t.Errorf("AudioPath = %q", got)
	}
	if len(c.TimingPoints) != 1 || c.BPM() != 120 {
		t.Errorf("TimingPoints = %+v, want one point at 120 BPM", c.TimingPoints)
	}

	want := []chart.Note{
		{Time: 1000 * time.Millisecond, Column: 0, Type: chart.Tap},
		{Time: 1500 * time.Millisecond, Column: 1, Type: chart.HoldStart},
		{Time: 1500 * time.Millisecond, Column: 2, Type: chart.Tap},
		{Time: 1800 * time.Millisecond, Column: 1, Type: chart.HoldEnd},
		{Time: 2000 * time.Millisecond, Column: 3, Type: chart.Tap},
	}
	if len(c.Notes) != len(want) {
		t.Fatalf("got %d notes, want %d: %+v", len(c.Notes), len(want), c.Notes)
	}
	for i := range want {
		if c.Notes[i] != want[i] {
			t.Errorf("note %d = %+v, want %+v", i, c.Notes[i], want[i])
		}
	}
	if c.NoteCount() != 4 {
		t.Errorf("NoteCount = %d, want 4", c.NoteCount())
	}
	if c.Length() != 2*time.Second {
		t.Errorf("Length = %v, want 2s", c.Length())
	}
}

func TestParseVsc(t *testing.T) {
	src := `# comment
title: Morning
audio: track.mp3
previewTime: 750
keyCount: 4
bpm: 150

[Notes]
0,0
250,3,900
`
	c, err := chart.Parse("songs/morning/chart.VSC", []byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.DisplayTitle() != "Morning" {
		t.Errorf("DisplayTitle = %q", c.DisplayTitle())
	}
	if c.PreviewTime != 750*time.Millisecond {
		t.Errorf("PreviewTime = %v", c.PreviewTime)
	}
	if c.BPM() != 150 {
		t.Errorf("BPM = %v", c.BPM())
	}
	if len(c.Notes) != 3 || c.Notes[1].Type != chart.HoldStart || c.Notes[2].Time != 900*time.Millisecond {
		t.Errorf("Notes = %+v", c.Notes)
	}
	if c.Metadata["title"] != "Morning" {
		t.Errorf("Metadata[title] = %q", c.Metadata["title"])
	}
}

func TestParseMetadataOnlyVsc(t *testing.T) {
	c, err := chart.Parse("songs/quiet/info.vsc", []byte("artist: Nobody\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.DisplayTitle() != "info" {
		t.Errorf("DisplayTitle = %q, want file name fallback", c.DisplayTitle())
	}
	if got := c.AudioPath(); got != filepath.Join("songs", "quiet", chart.DefaultAudioFile) {
		t.Errorf("AudioPath = %q, want default audio", got)
	}
	if c.Length() != 0 {
		t.Errorf("Length = %v, want 0", c.Length())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
		want     error
	}{
		{"unknown extension", "a.sm", "", chart.ErrUnsupportedFormat},
		{"standard mode", "a.osu", "[General]\nMode: 0\n", chart.ErrNotMania},
		{"bad hit object", "a.osu", "[HitObjects]\n64,192,soon,1\n", chart.ErrMalformed},
		{"hold without end", "a.osu", "[HitObjects]\n64,192,100,128\n", chart.ErrMalformed},
		{"bad vsc line", "a.vsc", "no separator\n", chart.ErrMalformed},
		{"column out of range", "a.vsc", "[Notes]\n100,4\n", chart.ErrMalformed},
		{"hold ends early", "a.vsc", "[Notes]\n100,1,50\n", chart.ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := chart.Parse(tt.filename, []byte(tt.content))
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestIsChartFile(t *testing.T) {
	for name, want := range map[string]bool{
		"a.osu":     true,
		"b.VSC":     true,
		"audio.mp3": false,
		"osu":       false,
	} {
		if got := chart.IsChartFile(name); got != want {
			t.Errorf("IsChartFile(%q) = %v, want %v", name, got, want)
		}
	}
}
