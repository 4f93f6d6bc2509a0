package audio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
	"github.com/spf13/afero"

	"github.com/go-theft-auto/tempo"
)

// resampleQuality trades CPU for quality when changing playback rate.
const resampleQuality = 4

// ErrUnsupportedFormat is returned for files that are not mp3, ogg or wav.
var ErrUnsupportedFormat = errors.New("audio: unsupported format")

// track is one decoded file in the mixer.
type track struct {
	path      string
	stream    beep.StreamSeekCloser
	format    beep.Format
	resampler *beep.Resampler
	gain      *effects.Gain
	ctrl      *beep.Ctrl
}

// setVolume sets the track's linear volume.
func (t *track) setVolume(v float64) {
	t.gain.Gain = v - 1
}

// volume returns the track's linear volume.
func (t *track) volume() float64 {
	return t.gain.Gain + 1
}

// stop removes the track from the mixer and closes its decoder.
func (t *track) stop() {
	t.ctrl.Streamer = nil
	_ = t.stream.Close()
}

// Player is the music stream. One track plays at a time; SwitchStream with
// a crossfade fades the new track in and the previous one out over the
// following Ticks. The zero value is not usable; call NewPlayer.
type Player struct {
	fs         afero.Fs
	out        Output
	sampleRate beep.SampleRate
	now        func() time.Time
	mixer      *beep.Mixer

	rate   float64
	volume float64

	current   *track
	fading    *track
	fadeStart time.Time
	fadeFor   time.Duration

	closed bool
}

var (
	_ tempo.Audio      = (*Player)(nil)
	_ tempo.AudioClock = (*Player)(nil)
)

// NewPlayer creates a player reading files from fs (nil for the OS file
// system) and playing into out at sampleRate.
func NewPlayer(fs afero.Fs, out Output, sampleRate beep.SampleRate) *Player {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	p := &Player{
		fs:         fs,
		out:        out,
		sampleRate: sampleRate,
		now:        time.Now,
		mixer:      &beep.Mixer{},
		rate:       1,
		volume:     1,
	}
	out.Play(p.mixer)
	return p
}

// SetVolume sets the music volume in [0, 1].
func (p *Player) SetVolume(v float64) {
	v = min(max(v, 0), 1)
	p.out.Lock()
	defer p.out.Unlock()
	p.volume = v
	if p.fadeFor == 0 && p.current != nil {
		p.current.setVolume(v)
	}
}

// SwitchStream implements tempo.Audio. The file is opened and positioned
// before anything changes, so a failure leaves the current track playing.
func (p *Player) SwitchStream(path string, crossfade, offset time.Duration) error {
	if p.closed {
		return tempo.ErrClosed
	}
	t, err := p.open(path)
	if err != nil {
		return err
	}
	if err := seek(t, offset); err != nil {
		_ = t.stream.Close()
		return fmt.Errorf("seek %s: %w", path, err)
	}

	p.out.Lock()
	defer p.out.Unlock()

	if p.fading != nil {
		p.fading.stop()
		p.fading = nil
	}
	old := p.current
	p.current = t

	if crossfade > 0 {
		p.fading = old
		p.fadeStart = p.now()
		p.fadeFor = crossfade
		t.setVolume(0)
	} else {
		if old != nil {
			old.stop()
		}
		p.fadeFor = 0
		t.setVolume(p.volume)
	}
	p.mixer.Add(t.ctrl)

	tempo.Logger().Debug("audio stream switched", "path", path, "crossfade", crossfade, "offset", offset)
	return nil
}

// Tick implements tempo.Audio by advancing the crossfade.
func (p *Player) Tick() {
	p.out.Lock()
	defer p.out.Unlock()

	if p.fadeFor <= 0 {
		return
	}
	progress := min(float64(p.now().Sub(p.fadeStart))/float64(p.fadeFor), 1)
	if p.current != nil {
		p.current.setVolume(p.volume * progress)
	}
	if p.fading != nil {
		p.fading.setVolume(p.volume * (1 - progress))
	}
	if progress >= 1 {
		if p.fading != nil {
			p.fading.stop()
			p.fading = nil
		}
		p.fadeFor = 0
	}
}

// SetPlaybackRate implements tempo.Audio. Rates at or below zero are
// ignored.
func (p *Player) SetPlaybackRate(rate float64) {
	if rate <= 0 {
		return
	}
	p.out.Lock()
	defer p.out.Unlock()

	p.rate = rate
	for _, t := range []*track{p.current, p.fading} {
		if t != nil {
			t.resampler.SetRatio(p.ratio(t.format))
		}
	}
}

// PlaybackRate returns the current rate.
func (p *Player) PlaybackRate() float64 {
	return p.rate
}

// Position implements tempo.AudioClock: the current track's position in
// source time, or 0 when nothing plays.
func (p *Player) Position() time.Duration {
	p.out.Lock()
	defer p.out.Unlock()

	if p.current == nil {
		return 0
	}
	return p.current.format.SampleRate.D(p.current.stream.Position())
}

// Playing returns the path of the current track, or "".
func (p *Player) Playing() string {
	p.out.Lock()
	defer p.out.Unlock()

	if p.current == nil {
		return ""
	}
	return p.current.path
}

// Stop implements tempo.Audio.
func (p *Player) Stop() {
	p.out.Lock()
	defer p.out.Unlock()

	for _, t := range []*track{p.current, p.fading} {
		if t != nil {
			t.stop()
		}
	}
	p.current, p.fading = nil, nil
	p.fadeFor = 0
}

// Close stops playback and releases the output. Safe to call more than
// once.
func (p *Player) Close() {
	if p.closed {
		return
	}
	p.Stop()
	p.closed = true
	p.out.Close()
}

func (p *Player) ratio(format beep.Format) float64 {
	return float64(format.SampleRate) / float64(p.sampleRate) * p.rate
}

func (p *Player) open(path string) (*track, error) {
	f, err := p.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	default:
		err = ErrUnsupportedFormat
	}
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	t := &track{path: path, stream: stream, format: format}
	t.resampler = beep.ResampleRatio(resampleQuality, p.ratio(format), stream)
	t.gain = &effects.Gain{Streamer: t.resampler}
	t.ctrl = &beep.Ctrl{Streamer: t.gain}
	return t, nil
}

// seek positions t at offset, clamped to the stream length.
func seek(t *track, offset time.Duration) error {
	if offset <= 0 {
		return nil
	}
	n := min(t.format.SampleRate.N(offset), t.stream.Len())
	return t.stream.Seek(n)
}
