package tempo_test

import (
	"testing"

	"github.com/go-theft-auto/tempo"
)

func TestLetterbox(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		want tempo.Rect
	}{
		{"exact fit", 1920, 1080, tempo.Rect{W: 1920, H: 1080}},
		{"half size", 960, 540, tempo.Rect{W: 960, H: 540}},
		{"taller window bars top and bottom", 1280, 1024, tempo.Rect{Y: 152, W: 1280, H: 720}},
		{"wider window bars left and right", 2560, 1080, tempo.Rect{X: 320, W: 1920, H: 1080}},
		{"minimized", 0, 0, tempo.Rect{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tempo.Letterbox(tt.w, tt.h, 1920, 1080); got != tt.want {
				t.Errorf("Letterbox(%d, %d) = %+v, want %+v", tt.w, tt.h, got, tt.want)
			}
		})
	}
}

func TestColorHelpers(t *testing.T) {
	if c := tempo.RGBA(255, 0, 255, 0); c != (tempo.Color{R: 1, B: 1}) {
		t.Errorf("RGBA = %+v", c)
	}
	if c := tempo.ColorBlack.WithAlpha(1.5); c.A != 1 {
		t.Errorf("WithAlpha(1.5).A = %v, want 1", c.A)
	}
	if c := tempo.ColorBlack.WithAlpha(-1); c.A != 0 {
		t.Errorf("WithAlpha(-1).A = %v, want 0", c.A)
	}
}

func TestRectContains(t *testing.T) {
	r := tempo.Rect{X: 10, Y: 10, W: 5, H: 5}
	if !r.Contains(tempo.Vec2{X: 10, Y: 14}) {
		t.Error("top-left edge should be inside")
	}
	if r.Contains(tempo.Vec2{X: 15, Y: 12}) {
		t.Error("right edge should be outside")
	}
}

func TestWindowToRender(t *testing.T) {
	box := tempo.Letterbox(1280, 1024, 1920, 1080)

	if got := tempo.WindowToRender(box, 1920, 1080, 640, 512); got != (tempo.Vec2{X: 960, Y: 540}) {
		t.Errorf("center = %+v, want {960 540}", got)
	}
	if got := tempo.WindowToRender(box, 1920, 1080, 0, 152); got != (tempo.Vec2{}) {
		t.Errorf("box corner = %+v, want origin", got)
	}
	if got := tempo.WindowToRender(box, 1920, 1080, 0, 0); got.Y >= 0 {
		t.Errorf("bar point Y = %v, want negative", got.Y)
	}
	if got := tempo.WindowToRender(tempo.Rect{}, 1920, 1080, 5, 5); got != (tempo.Vec2{}) {
		t.Errorf("empty box = %+v, want zero", got)
	}
}
