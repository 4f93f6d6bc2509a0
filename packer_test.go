package tempo

import "testing"

func TestShelfPacker(t *testing.T) {
	p := newShelfPacker(10, 1)

	x, y, ok := p.pack(4, 3)
	if !ok || x != 0 || y != 0 {
		t.Fatalf("first = (%d, %d, %v)", x, y, ok)
	}
	x, y, _ = p.pack(4, 2)
	if x != 5 || y != 0 {
		t.Errorf("second = (%d, %d), want (5, 0)", x, y)
	}
	// 10 + padding no longer fits: new shelf below the tallest (3 + 1).
	x, y, _ = p.pack(2, 2)
	if x != 0 || y != 4 {
		t.Errorf("third = (%d, %d), want (0, 4)", x, y)
	}
	if h := p.height(); h != 7 {
		t.Errorf("height() = %d, want 7", h)
	}

	if _, _, ok := p.pack(10, 1); ok {
		t.Error("packed a rectangle wider than the shelf")
	}
}

func TestNextPow2(t *testing.T) {
	for in, want := range map[int]int{0: 1, 1: 1, 3: 4, 256: 256, 257: 512} {
		if got := nextPow2(in); got != want {
			t.Errorf("nextPow2(%d) = %d, want %d", in, got, want)
		}
	}
}
