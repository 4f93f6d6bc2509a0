package tempo

// shelfPacker places rectangles left to right in rows of fixed width.
// A row is as tall as its tallest rectangle. Feeding rectangles sorted by
// height, tallest first, keeps the wasted space per row small.
type shelfPacker struct {
	width   int
	padding int
	x, y    int
	rowH    int
}

func newShelfPacker(width, padding int) *shelfPacker {
	return &shelfPacker{width: width, padding: padding}
}

// pack returns the top-left position for a w×h rectangle, or false when the
// rectangle is wider than the packer.
func (s *shelfPacker) pack(w, h int) (x, y int, ok bool) {
	pw, ph := w+s.padding, h+s.padding
	if pw > s.width {
		return -1, -1, false
	}
	if s.x+pw > s.width {
		s.x = 0
		s.y += s.rowH
		s.rowH = 0
	}
	if ph > s.rowH {
		s.rowH = ph
	}
	x, y = s.x, s.y
	s.x += pw
	return x, y, true
}

// height returns the total height used so far.
func (s *shelfPacker) height() int {
	return s.y + s.rowH
}

// nextPow2 returns the smallest power of two >= n (minimum 1).
func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
