package tempo_test

import (
	"testing"

	"github.com/go-theft-auto/tempo"
)

func TestDrawListPreservesOrder(t *testing.T) {
	dl := tempo.AcquireDrawList()
	defer tempo.ReleaseDrawList(dl)

	tex := tempo.FullTexture(3)
	dl.DrawFlatQuad(0, 0, 10, 10, tempo.ColorBlack)
	dl.DrawTexturedQuad(tex, 5, 5, 4, 4, tempo.ColorWhite)
	dl.DrawFlatQuad(1, 1, 2, 2, tempo.ColorYellow)

	kinds := []tempo.DrawKind{tempo.DrawFlat, tempo.DrawTextured, tempo.DrawFlat}
	if dl.Len() != len(kinds) {
		t.Fatalf("Len() = %d, want %d", dl.Len(), len(kinds))
	}
	for i, k := range kinds {
		if dl.Commands[i].Kind != k {
			t.Errorf("command %d kind = %v, want %v", i, dl.Commands[i].Kind, k)
		}
	}
	if dl.Commands[1].Texture != tex {
		t.Errorf("texture = %+v, want %+v", dl.Commands[1].Texture, tex)
	}

	replayed := &tempo.DrawList{}
	dl.Replay(replayed)
	for i := range dl.Commands {
		if replayed.Commands[i] != dl.Commands[i] {
			t.Errorf("replayed %d = %+v, want %+v", i, replayed.Commands[i], dl.Commands[i])
		}
	}
}

func TestDrawListMissingTextureFallsBack(t *testing.T) {
	dl := &tempo.DrawList{}
	dl.DrawTexturedQuad(tempo.TextureRegion{}, 1, 2, 3, 4, tempo.ColorYellow)

	cmd := dl.Commands[0]
	if cmd.Kind != tempo.DrawFlat || cmd.Color != tempo.ColorYellow {
		t.Errorf("fallback = %+v, want flat yellow quad", cmd)
	}
	if cmd.Rect != (tempo.Rect{X: 1, Y: 2, W: 3, H: 4}) {
		t.Errorf("fallback rect = %+v", cmd.Rect)
	}
}

func TestDrawListBoundsAndClear(t *testing.T) {
	dl := &tempo.DrawList{}
	if dl.Bounds() != (tempo.Rect{}) {
		t.Errorf("empty bounds = %+v", dl.Bounds())
	}

	dl.DrawFlatQuad(10, 10, 5, 5, tempo.ColorWhite)
	dl.DrawFlatQuad(-2, 12, 4, 20, tempo.ColorWhite)
	want := tempo.Rect{X: -2, Y: 10, W: 17, H: 22}
	if got := dl.Bounds(); got != want {
		t.Errorf("Bounds() = %+v, want %+v", got, want)
	}

	dl.SetViewport(640, 480)
	if dl.Viewport != (tempo.Vec2{X: 640, Y: 480}) {
		t.Errorf("Viewport = %+v", dl.Viewport)
	}

	dl.Clear()
	if dl.Len() != 0 {
		t.Errorf("Len() after Clear = %d", dl.Len())
	}
}
