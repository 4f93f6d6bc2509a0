package tempo

import "time"

// DefaultTransition is the length of each fade half.
const DefaultTransition = 300 * time.Millisecond

// TransitionPhase is the state of a screen switch.
type TransitionPhase int

const (
	TransitionIdle TransitionPhase = iota
	TransitionFadingOut
	TransitionFadingIn
)

// String returns the phase name.
func (p TransitionPhase) String() string {
	switch p {
	case TransitionFadingOut:
		return "fading-out"
	case TransitionFadingIn:
		return "fading-in"
	}
	return "idle"
}

// Transition runs the fade-out, swap, fade-in protocol. At most one switch
// is in flight; requests made while not idle are rejected.
type Transition struct {
	Phase    TransitionPhase
	Progress float64 // 0..1 within the current phase
	Duration time.Duration

	pendingID      ScreenID
	pendingPayload Payload
}

// Request starts fading out toward id. Returns false if a switch is
// already in progress.
func (t *Transition) Request(id ScreenID, payload Payload) bool {
	if t.Phase != TransitionIdle {
		return false
	}
	t.pendingID = id
	t.pendingPayload = payload
	t.Phase = TransitionFadingOut
	t.Progress = 0
	return true
}

// Advance moves the transition forward by dt seconds. It returns true on
// the tick the fade-out completes; the caller must then Take the pending
// screen and swap. A non-positive duration completes each phase in one
// tick.
func (t *Transition) Advance(dt float64) (swap bool) {
	if t.Phase == TransitionIdle {
		return false
	}
	if t.Duration <= 0 {
		t.Progress = 1
	} else {
		t.Progress += dt / t.Duration.Seconds()
	}
	if t.Progress < 1 {
		return false
	}

	t.Progress = 0
	if t.Phase == TransitionFadingOut {
		t.Phase = TransitionFadingIn
		return true
	}
	t.Phase = TransitionIdle
	return false
}

// Take returns the pending screen and clears the transition's reference
// to the payload.
func (t *Transition) Take() (ScreenID, Payload) {
	id, payload := t.pendingID, t.pendingPayload
	t.pendingID = ScreenNone
	t.pendingPayload = nil
	return id, payload
}

// Active reports whether a switch is in progress.
func (t Transition) Active() bool {
	return t.Phase != TransitionIdle
}

// Alpha returns the fade overlay opacity in [0, 1].
func (t Transition) Alpha() float32 {
	switch t.Phase {
	case TransitionFadingOut:
		return clampf(float32(t.Progress), 0, 1)
	case TransitionFadingIn:
		return clampf(float32(1-t.Progress), 0, 1)
	}
	return 0
}

// Abandon drops any switch in progress.
func (t *Transition) Abandon() {
	t.Phase = TransitionIdle
	t.Progress = 0
	t.pendingID = ScreenNone
	t.pendingPayload = nil
}
