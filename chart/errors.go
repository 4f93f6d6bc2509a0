package chart

import "errors"

var (
	// ErrUnsupportedFormat is returned for chart files that are neither .osu
	// nor .vsc.
	ErrUnsupportedFormat = errors.New("chart: unsupported format")

	// ErrNotMania is returned for .osu charts of another game mode.
	ErrNotMania = errors.New("chart: not an osu!mania chart")

	// ErrMalformed is returned for lines that cannot be parsed.
	ErrMalformed = errors.New("chart: malformed line")

	// ErrNoChart is returned when a song directory holds no chart file.
	ErrNoChart = errors.New("chart: no chart file")
)
