package tempo

import (
	"fmt"
	"time"
)

// Audio is the music stream the screens control. Implementations run
// playback on their own goroutine; none of these calls may block on it.
type Audio interface {
	// SwitchStream starts path at offset, crossfading from the current
	// stream over crossfade (0 cuts immediately).
	SwitchStream(path string, crossfade, offset time.Duration) error
	Stop()
	SetPlaybackRate(rate float64)
	// Tick advances fades; called once per frame by the loop.
	Tick()
}

// AudioClock is implemented by Audio backends that can report the
// position of the current stream, in source time.
type AudioClock interface {
	Position() time.Duration
}

// NopAudio is a silent Audio.
type NopAudio struct{}

func (NopAudio) SwitchStream(string, time.Duration, time.Duration) error { return nil }
func (NopAudio) Stop()                                                   {}
func (NopAudio) SetPlaybackRate(float64)                                 {}
func (NopAudio) Tick()                                                   {}

// PlayStream switches a to path. If the crossfaded switch fails it retries
// once with no crossfade; a second failure is logged and returned, and the
// caller carries on without music.
func PlayStream(a Audio, path string, crossfade, offset time.Duration) error {
	if a == nil {
		return nil
	}
	err := a.SwitchStream(path, crossfade, offset)
	if err == nil {
		return nil
	}
	Logger().Warn("audio switch failed, retrying without crossfade", "path", path, "err", err)

	if err = a.SwitchStream(path, 0, offset); err != nil {
		Logger().Error("audio playback failed", "path", path, "err", err)
		return fmt.Errorf("play %s: %w", path, err)
	}
	return nil
}
