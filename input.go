package tempo

import "time"

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
	MouseButtonCount
)

// Key represents a keyboard key.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyBackspace
	KeySpace
	KeyEnter
	KeyEscape
	KeyZ
	KeyX
	KeyComma
	KeyPeriod
	KeyF1
	KeyF2
	KeyF3
	KeyCount
)

// EventType distinguishes input events.
type EventType int

const (
	EventKeyDown EventType = iota
	EventKeyUp
	EventMouseDown
	EventMouseUp
	EventMouseMove
	EventScroll
)

// Event is one input event, in render-space coordinates for mouse events.
type Event struct {
	Type   EventType
	Key    Key
	Repeat bool // Key auto-repeat; only set for EventKeyDown
	Button MouseButton
	X, Y   float32 // Cursor position, or scroll offsets for EventScroll
	Time   time.Time
}

// Pressed reports whether ev is a fresh (non-repeat) press of key.
func (ev Event) Pressed(key Key) bool {
	return ev.Type == EventKeyDown && ev.Key == key && !ev.Repeat
}

// Typed reports whether ev is a press or auto-repeat of key.
func (ev Event) Typed(key Key) bool {
	return ev.Type == EventKeyDown && ev.Key == key
}

// InputSource delivers the events collected since the previous Poll.
type InputSource interface {
	Poll() []Event
}

// EventQueue buffers events between polls. The slice returned by Poll is
// valid until the next Poll.
type EventQueue struct {
	front, back []Event
}

// NewEventQueue creates an empty queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{
		front: make([]Event, 0, 32),
		back:  make([]Event, 0, 32),
	}
}

// Push appends an event.
func (q *EventQueue) Push(ev Event) {
	q.back = append(q.back, ev)
}

// Poll returns the buffered events and starts a new batch.
func (q *EventQueue) Poll() []Event {
	q.front, q.back = q.back, q.front[:0]
	return q.front
}

// InputState tracks which keys and buttons are held, fed from events.
type InputState struct {
	MouseX, MouseY float32

	mouseDown [MouseButtonCount]bool
	keyDown   [KeyCount]bool
	lastInput time.Time
}

// NewInputState creates a new InputState.
func NewInputState() *InputState {
	return &InputState{}
}

// Apply updates held state from an event.
func (s *InputState) Apply(ev Event) {
	switch ev.Type {
	case EventKeyDown, EventKeyUp:
		if ev.Key > KeyNone && ev.Key < KeyCount {
			s.keyDown[ev.Key] = ev.Type == EventKeyDown
		}
	case EventMouseDown, EventMouseUp:
		if ev.Button >= 0 && ev.Button < MouseButtonCount {
			s.mouseDown[ev.Button] = ev.Type == EventMouseDown
		}
		s.MouseX, s.MouseY = ev.X, ev.Y
	case EventMouseMove:
		s.MouseX, s.MouseY = ev.X, ev.Y
	}
	if ev.Type != EventMouseMove && ev.Time.After(s.lastInput) {
		s.lastInput = ev.Time
	}
}

// KeyDown returns true if a key is currently held.
func (s *InputState) KeyDown(key Key) bool {
	if key < 0 || key >= KeyCount {
		return false
	}
	return s.keyDown[key]
}

// MouseDown returns true if a mouse button is currently held.
func (s *InputState) MouseDown(button MouseButton) bool {
	if button < 0 || button >= MouseButtonCount {
		return false
	}
	return s.mouseDown[button]
}

// LastInput returns the time of the most recent key or button event.
func (s *InputState) LastInput() time.Time {
	return s.lastInput
}

// KeyName returns a human-readable name for a key.
func KeyName(k Key) string {
	names := map[Key]string{
		KeyNone:      "--",
		KeyLeft:      "Left",
		KeyRight:     "Right",
		KeyUp:        "Up",
		KeyDown:      "Down",
		KeyPageUp:    "PgUp",
		KeyPageDown:  "PgDn",
		KeyHome:      "Home",
		KeyEnd:       "End",
		KeyBackspace: "Backspace",
		KeySpace:     "Space",
		KeyEnter:     "Enter",
		KeyEscape:    "Esc",
		KeyZ:         "Z",
		KeyX:         "X",
		KeyComma:     ",",
		KeyPeriod:    ".",
		KeyF1:        "F1",
		KeyF2:        "F2",
		KeyF3:        "F3",
	}
	if name, ok := names[k]; ok {
		return name
	}
	return "?"
}
