package tempo

// Font is the glyph source used by TextLabel. GlyphAtlas is the production
// implementation; tests inject fixed-metric fonts.
type Font interface {
	// Glyph returns the glyph for r, or false if the font has none.
	Glyph(r rune) (Glyph, bool)

	// Measure returns the size of text at scale. Lines are split on '\n';
	// width is the widest line and height is lineCount × LineHeight(scale).
	Measure(text string, scale float32) (w, h float32)

	// LineHeight returns ascent + descent + line gap at scale.
	LineHeight(scale float32) float32

	// Ascent returns the distance from the top of a line to its baseline.
	Ascent(scale float32) float32
}

// Glyph is a rasterized character placed in an atlas texture.
type Glyph struct {
	Texture TextureRegion
	Size    Vec2    // Bitmap size in pixels
	Bearing Vec2    // X: left edge from the pen; Y: top edge above the baseline
	Advance float32 // Horizontal pen advance in pixels
}

// Visible reports whether the glyph has a bitmap to draw.
func (g Glyph) Visible() bool {
	return g.Size.X > 0 && g.Size.Y > 0
}
