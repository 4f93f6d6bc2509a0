package chart

import (
	"bufio"
	"bytes"
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"
)

// osuPlayfieldWidth is the x range hit objects are spread over.
const osuPlayfieldWidth = 512

// Extensions lists the chart file extensions Parse accepts.
var Extensions = []string{".osu", ".vsc"}

// IsChartFile reports whether name has a chart extension, ignoring case.
func IsChartFile(name string) bool {
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(name)))
}

// Parse decodes a chart, choosing the format from the file extension.
func Parse(filename string, content []byte) (*ChartData, error) {
	var (
		c   *ChartData
		err error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".osu":
		c, err = parseOsu(content)
	case ".vsc":
		c, err = parseVsc(content)
	default:
		return nil, fmt.Errorf("%s: %w", filename, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	c.Filename = filename
	c.Dir = filepath.Dir(filename)
	slices.SortStableFunc(c.Notes, func(a, b Note) int {
		return cmp.Compare(a.Time, b.Time)
	})
	return c, nil
}

func newChartData() *ChartData {
	return &ChartData{
		KeyCount: DefaultKeyCount,
		Metadata: make(map[string]string),
	}
}

// parseOsu reads the osu!mania subset of the .osu format: [General],
// [Metadata], [Difficulty], [TimingPoints] and [HitObjects].
func parseOsu(content []byte) (*ChartData, error) {
	c := newChartData()
	section := ""

	scanner := bufio.NewScanner(bytes.NewReader(content))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = line[1 : len(line)-1]
			continue
		}

		var err error
		switch section {
		case "General", "Metadata", "Difficulty", "Editor":
			err = c.osuKeyValue(line)
		case "TimingPoints":
			err = c.osuTimingPoint(line)
		case "HitObjects":
			err = c.osuHitObject(line)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *ChartData) osuKeyValue(line string) error {
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return nil
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	c.Metadata[key] = value

	switch key {
	case "AudioFilename":
		c.AudioFile = value
	case "PreviewTime":
		ms, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: preview time %q", ErrMalformed, value)
		}
		if ms > 0 {
			c.PreviewTime = time.Duration(ms) * time.Millisecond
		}
	case "Mode":
		if value != "3" {
			return ErrNotMania
		}
	case "Title":
		c.Title = value
	case "Artist":
		c.Artist = value
	case "Version":
		c.Version = value
	case "CircleSize":
		keys, err := strconv.ParseFloat(value, 64)
		if err != nil || keys < 1 {
			return fmt.Errorf("%w: key count %q", ErrMalformed, value)
		}
		c.KeyCount = int(keys)
	}
	return nil
}

func (c *ChartData) osuTimingPoint(line string) error {
	fields := strings.Split(line, ",")
	if len(fields) < 2 {
		return fmt.Errorf("%w: timing point %q", ErrMalformed, line)
	}
	at, err1 := strconv.ParseFloat(fields[0], 64)
	beatLength, err2 := strconv.ParseFloat(fields[1], 64)
	if err1 != nil || err2 != nil {
		return fmt.Errorf("%w: timing point %q", ErrMalformed, line)
	}
	// Inherited points only change slider velocity.
	if beatLength <= 0 || (len(fields) > 6 && fields[6] == "0") {
		return nil
	}
	c.TimingPoints = append(c.TimingPoints, TimingPoint{
		Time: msToDuration(at),
		BPM:  60000 / beatLength,
	})
	return nil
}

func (c *ChartData) osuHitObject(line string) error {
	fields := strings.Split(line, ",")
	if len(fields) < 4 {
		return fmt.Errorf("%w: hit object %q", ErrMalformed, line)
	}
	x, err1 := strconv.Atoi(fields[0])
	at, err2 := strconv.Atoi(fields[2])
	kind, err3 := strconv.Atoi(fields[3])
	if err1 != nil || err2 != nil || err3 != nil {
		return fmt.Errorf("%w: hit object %q", ErrMalformed, line)
	}

	column := min(max(x*c.KeyCount/osuPlayfieldWidth, 0), c.KeyCount-1)
	start := time.Duration(at) * time.Millisecond

	const holdBit = 128
	if kind&holdBit == 0 {
		c.Notes = append(c.Notes, Note{Time: start, Column: column, Type: Tap})
		return nil
	}

	if len(fields) < 6 {
		return fmt.Errorf("%w: hold without end %q", ErrMalformed, line)
	}
	endField, _, _ := strings.Cut(fields[5], ":")
	end, err := strconv.Atoi(endField)
	if err != nil {
		return fmt.Errorf("%w: hold end %q", ErrMalformed, line)
	}
	c.Notes = append(c.Notes,
		Note{Time: start, Column: column, Type: HoldStart},
		Note{Time: time.Duration(end) * time.Millisecond, Column: column, Type: HoldEnd},
	)
	return nil
}

// parseVsc reads a .vsc chart: "key: value" metadata lines, then an
// optional [Notes] section of "time,column[,end]" lines in milliseconds.
func parseVsc(content []byte) (*ChartData, error) {
	c := newChartData()
	inNotes := false

	scanner := bufio.NewScanner(bytes.NewReader(content))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.EqualFold(line, "[Notes]") {
			inNotes = true
			continue
		}

		var err error
		if inNotes {
			err = c.vscNote(line)
		} else {
			err = c.vscKeyValue(line)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *ChartData) vscKeyValue(line string) error {
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return fmt.Errorf("%w: %q", ErrMalformed, line)
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	c.Metadata[key] = value

	switch strings.ToLower(key) {
	case "title":
		c.Title = value
	case "artist":
		c.Artist = value
	case "version", "difficulty":
		c.Version = value
	case "audio":
		c.AudioFile = value
	case "previewtime":
		ms, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: preview time %q", ErrMalformed, value)
		}
		if ms > 0 {
			c.PreviewTime = msToDuration(ms)
		}
	case "keycount", "keys":
		keys, err := strconv.Atoi(value)
		if err != nil || keys < 1 {
			return fmt.Errorf("%w: key count %q", ErrMalformed, value)
		}
		c.KeyCount = keys
	case "bpm":
		bpm, err := strconv.ParseFloat(value, 64)
		if err != nil || bpm <= 0 {
			return fmt.Errorf("%w: bpm %q", ErrMalformed, value)
		}
		c.TimingPoints = append(c.TimingPoints, TimingPoint{BPM: bpm})
	}
	return nil
}

func (c *ChartData) vscNote(line string) error {
	fields := strings.Split(line, ",")
	if len(fields) < 2 {
		return fmt.Errorf("%w: note %q", ErrMalformed, line)
	}
	at, err1 := strconv.Atoi(strings.TrimSpace(fields[0]))
	column, err2 := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err1 != nil || err2 != nil || column < 0 || column >= c.KeyCount {
		return fmt.Errorf("%w: note %q", ErrMalformed, line)
	}
	start := time.Duration(at) * time.Millisecond

	if len(fields) < 3 {
		c.Notes = append(c.Notes, Note{Time: start, Column: column, Type: Tap})
		return nil
	}
	end, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil || end < at {
		return fmt.Errorf("%w: hold end %q", ErrMalformed, line)
	}
	c.Notes = append(c.Notes,
		Note{Time: start, Column: column, Type: HoldStart},
		Note{Time: time.Duration(end) * time.Millisecond, Column: column, Type: HoldEnd},
	)
	return nil
}

func msToDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
