package tempo

import "sync"

// drawListPool provides reuse of DrawList buffers between frames.
var drawListPool = sync.Pool{
	New: func() any {
		return &DrawList{Commands: make([]DrawCmd, 0, 256)}
	},
}

// AcquireDrawList gets a cleared DrawList from the pool.
// Call ReleaseDrawList when done to return it.
func AcquireDrawList() *DrawList {
	dl := drawListPool.Get().(*DrawList)
	dl.Clear()
	return dl
}

// ReleaseDrawList returns a DrawList to the pool for reuse.
func ReleaseDrawList(dl *DrawList) {
	if dl != nil {
		drawListPool.Put(dl)
	}
}

// DrawKind distinguishes flat from textured quads.
type DrawKind uint8

const (
	DrawFlat DrawKind = iota
	DrawTextured
)

// DrawCmd is one recorded quad.
type DrawCmd struct {
	Kind    DrawKind
	Texture TextureRegion // Zero for flat quads
	Rect    Rect
	Color   Color
}

// DrawList is a Renderer that records quads in submission order. It backs
// headless runs and tests, and can replay into another Renderer.
type DrawList struct {
	Commands []DrawCmd
	Viewport Vec2
}

var _ Renderer = (*DrawList)(nil)

// Clear resets the list for a new frame, keeping allocated capacity.
func (dl *DrawList) Clear() {
	dl.Commands = dl.Commands[:0]
}

// Len returns the number of recorded quads.
func (dl *DrawList) Len() int {
	return len(dl.Commands)
}

// DrawTexturedQuad records a textured quad, or a flat quad when the region
// has no texture.
func (dl *DrawList) DrawTexturedQuad(tex TextureRegion, x, y, w, h float32, tint Color) {
	if !tex.Valid() {
		dl.DrawFlatQuad(x, y, w, h, tint)
		return
	}
	dl.Commands = append(dl.Commands, DrawCmd{
		Kind:    DrawTextured,
		Texture: tex,
		Rect:    Rect{X: x, Y: y, W: w, H: h},
		Color:   tint,
	})
}

// DrawFlatQuad records a solid quad.
func (dl *DrawList) DrawFlatQuad(x, y, w, h float32, color Color) {
	dl.Commands = append(dl.Commands, DrawCmd{
		Kind:  DrawFlat,
		Rect:  Rect{X: x, Y: y, W: w, H: h},
		Color: color,
	})
}

// SetViewport records the viewport size.
func (dl *DrawList) SetViewport(width, height float32) {
	dl.Viewport = Vec2{X: width, Y: height}
}

// Replay submits every recorded quad to r in order.
func (dl *DrawList) Replay(r Renderer) {
	for _, cmd := range dl.Commands {
		if cmd.Kind == DrawTextured {
			r.DrawTexturedQuad(cmd.Texture, cmd.Rect.X, cmd.Rect.Y, cmd.Rect.W, cmd.Rect.H, cmd.Color)
			continue
		}
		r.DrawFlatQuad(cmd.Rect.X, cmd.Rect.Y, cmd.Rect.W, cmd.Rect.H, cmd.Color)
	}
}

// Bounds returns the smallest rectangle containing every recorded quad.
func (dl *DrawList) Bounds() Rect {
	if len(dl.Commands) == 0 {
		return Rect{}
	}
	first := dl.Commands[0].Rect
	x0, y0 := first.X, first.Y
	x1, y1 := first.X+first.W, first.Y+first.H
	for _, cmd := range dl.Commands[1:] {
		r := cmd.Rect
		x0 = minf(x0, r.X)
		y0 = minf(y0, r.Y)
		x1 = maxf(x1, r.X+r.W)
		y1 = maxf(y1, r.Y+r.H)
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
