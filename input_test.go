package tempo_test

import (
	"testing"
	"time"

	"github.com/go-theft-auto/tempo"
)

func TestEventQueue(t *testing.T) {
	q := tempo.NewEventQueue()
	q.Push(tempo.Event{Type: tempo.EventKeyDown, Key: tempo.KeyZ})
	q.Push(tempo.Event{Type: tempo.EventKeyUp, Key: tempo.KeyZ})

	got := q.Poll()
	if len(got) != 2 || got[0].Type != tempo.EventKeyDown || got[1].Type != tempo.EventKeyUp {
		t.Fatalf("Poll() = %+v", got)
	}

	q.Push(tempo.Event{Type: tempo.EventKeyDown, Key: tempo.KeyX})
	got = q.Poll()
	if len(got) != 1 || got[0].Key != tempo.KeyX {
		t.Fatalf("second Poll() = %+v", got)
	}
	if got = q.Poll(); len(got) != 0 {
		t.Errorf("empty Poll() = %+v", got)
	}
}

func TestInputState(t *testing.T) {
	s := tempo.NewInputState()
	t0 := time.Unix(10, 0)

	s.Apply(tempo.Event{Type: tempo.EventKeyDown, Key: tempo.KeyComma, Time: t0})
	s.Apply(tempo.Event{Type: tempo.EventMouseDown, Button: tempo.MouseButtonLeft, X: 4, Y: 5, Time: t0.Add(time.Second)})
	s.Apply(tempo.Event{Type: tempo.EventMouseMove, X: 9, Y: 9, Time: t0.Add(2 * time.Second)})

	if !s.KeyDown(tempo.KeyComma) || s.KeyDown(tempo.KeyPeriod) {
		t.Error("key state wrong after press")
	}
	if !s.MouseDown(tempo.MouseButtonLeft) || s.MouseX != 9 || s.MouseY != 9 {
		t.Errorf("mouse state: down %v pos (%v, %v)", s.MouseDown(tempo.MouseButtonLeft), s.MouseX, s.MouseY)
	}
	if !s.LastInput().Equal(t0.Add(time.Second)) {
		t.Errorf("LastInput() = %v, mouse moves should not count", s.LastInput())
	}

	s.Apply(tempo.Event{Type: tempo.EventKeyUp, Key: tempo.KeyComma})
	if s.KeyDown(tempo.KeyComma) {
		t.Error("key still down after release")
	}
	if s.KeyDown(tempo.KeyCount) || s.MouseDown(tempo.MouseButtonCount) {
		t.Error("out of range lookups should be false")
	}
}

func TestEventPressed(t *testing.T) {
	press := tempo.Event{Type: tempo.EventKeyDown, Key: tempo.KeyEnter}
	repeat := tempo.Event{Type: tempo.EventKeyDown, Key: tempo.KeyEnter, Repeat: true}

	if !press.Pressed(tempo.KeyEnter) || repeat.Pressed(tempo.KeyEnter) {
		t.Error("Pressed should accept fresh presses only")
	}
	if !repeat.Typed(tempo.KeyEnter) {
		t.Error("Typed should accept repeats")
	}
	if tempo.KeyName(tempo.KeyComma) != "," || tempo.KeyName(tempo.Key(999)) != "?" {
		t.Error("KeyName mismatch")
	}
}
