package tempo

// Vec2 represents a 2D vector for positions and sizes.
type Vec2 struct {
	X, Y float32
}

// Add returns the sum of two vectors.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Rect represents a rectangle with position and size.
type Rect struct {
	X, Y float32 // Top-left position
	W, H float32 // Width and height
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Color is a straight-alpha RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Common colors.
var (
	ColorWhite       = Color{1, 1, 1, 1}
	ColorBlack       = Color{0, 0, 0, 1}
	ColorYellow      = Color{1, 1, 0, 1}
	ColorGray        = Color{0.5, 0.5, 0.5, 1}
	ColorDarkGray    = Color{0.25, 0.25, 0.25, 1}
	ColorTransparent = Color{}
)

// RGBA creates a color from 8-bit components.
func RGBA(r, g, b, a uint8) Color {
	return Color{
		R: float32(r) / 255,
		G: float32(g) / 255,
		B: float32(b) / 255,
		A: float32(a) / 255,
	}
}

// WithAlpha returns the color with its alpha replaced, clamped to [0, 1].
func (c Color) WithAlpha(a float32) Color {
	c.A = clampf(a, 0, 1)
	return c
}

// Letterbox returns the largest rectangle with the aspect ratio of the
// render size that fits inside the window, centered. Offsets are whole
// pixels so the blit stays pixel aligned.
func Letterbox(windowW, windowH int, renderW, renderH float32) Rect {
	if windowW <= 0 || windowH <= 0 || renderW <= 0 || renderH <= 0 {
		return Rect{}
	}
	scale := minf(float32(windowW)/renderW, float32(windowH)/renderH)
	w := int(renderW * scale)
	h := int(renderH * scale)
	return Rect{
		X: float32((windowW - w) / 2),
		Y: float32((windowH - h) / 2),
		W: float32(w),
		H: float32(h),
	}
}

// WindowToRender maps a point in window pixels to render coordinates
// through the letterbox rectangle box. Points outside the box map outside
// the render area.
func WindowToRender(box Rect, renderW, renderH, x, y float32) Vec2 {
	if box.W <= 0 || box.H <= 0 {
		return Vec2{}
	}
	return Vec2{
		X: (x - box.X) * renderW / box.W,
		Y: (y - box.Y) * renderH / box.H,
	}
}

// clampf clamps a float32 value to a range.
func clampf(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// maxf returns the maximum of two float32 values.
func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// minf returns the minimum of two float32 values.
func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
