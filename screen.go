package tempo

import "fmt"

// ScreenID identifies a registered screen.
type ScreenID int

const (
	ScreenNone ScreenID = iota
	ScreenSongSelect
	ScreenPlay
	ScreenResults
)

// String returns the screen name.
func (id ScreenID) String() string {
	switch id {
	case ScreenNone:
		return "none"
	case ScreenSongSelect:
		return "song-select"
	case ScreenPlay:
		return "play"
	case ScreenResults:
		return "results"
	}
	return fmt.Sprintf("screen(%d)", int(id))
}

// Payload carries data from one screen to the next. Target names the
// screen the payload was built for; receivers decode it with a type switch.
type Payload interface {
	Target() ScreenID
}

// Screen is one exclusive mode of the application. The loop calls Init
// once, then HandleInput, Update and Render every frame, then Destroy
// exactly once before dropping the screen. Destroy must be idempotent and
// release every label and backend resource the screen created.
type Screen interface {
	Init(ctx *Context, payload Payload) error
	HandleInput(ev Event)
	Update(dt float64)
	Render(r Renderer)
	Destroy()
}

// PostPresenter is implemented by screens that need a hook after the frame
// has been presented, for work that must not delay the frame.
type PostPresenter interface {
	PostPresent()
}

// ScreenFactory constructs a fresh, uninitialized screen.
type ScreenFactory func() Screen
