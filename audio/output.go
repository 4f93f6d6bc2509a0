// Package audio streams music through beep with crossfades, seeking and
// playback rate control.
package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// DefaultSampleRate is the output sample rate.
const DefaultSampleRate = beep.SampleRate(44100)

// Output is where the player's mixer plays. Lock and Unlock guard streamer
// state against the playback goroutine.
type Output interface {
	Play(s ...beep.Streamer)
	Lock()
	Unlock()
	Close()
}

// speakerOutput plays through the system speaker.
type speakerOutput struct{}

// OpenSpeaker initializes the system speaker with a 100ms buffer.
func OpenSpeaker(sampleRate beep.SampleRate) (Output, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio device: %w", err)
	}
	return speakerOutput{}, nil
}

func (speakerOutput) Play(s ...beep.Streamer) { speaker.Play(s...) }
func (speakerOutput) Lock()                   { speaker.Lock() }
func (speakerOutput) Unlock()                 { speaker.Unlock() }

func (speakerOutput) Close() {
	speaker.Clear()
	speaker.Close()
}
