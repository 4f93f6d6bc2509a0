package tempo

import "strings"

// XAlign selects which horizontal edge of a label sits on its anchor.
type XAlign int

const (
	AlignLeft XAlign = iota
	AlignCenter
	AlignRight
)

// YAlign selects which vertical edge of a label sits on its anchor.
type YAlign int

const (
	AlignTop YAlign = iota
	AlignMiddle
	AlignBottom
)

// TextAlign justifies each line inside the label's block.
type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

// TextLabel is a multi-line piece of text positioned by an anchor point and
// alignment. Measurement happens when text, scale or line gap change;
// alignment changes only move the block. Render never measures.
type TextLabel struct {
	font       Font
	text       string
	lines      []string
	lineWidths []float32

	color     Color
	scale     float32
	lineGap   float32
	anchor    Vec2
	xAlign    XAlign
	yAlign    YAlign
	lineAlign TextAlign

	size   Vec2
	origin Vec2

	destroyed bool
}

// NewTextLabel creates an empty white label drawn with font at scale 1.
func NewTextLabel(font Font) *TextLabel {
	return &TextLabel{
		font:  font,
		color: ColorWhite,
		scale: 1,
	}
}

// SetText replaces the text. Setting the current text does nothing.
func (l *TextLabel) SetText(text string) {
	if l.destroyed || text == l.text {
		return
	}
	l.text = text
	l.measure()
}

// Text returns the current text.
func (l *TextLabel) Text() string { return l.text }

// SetScale sets the glyph scale.
func (l *TextLabel) SetScale(scale float32) {
	if l.destroyed || scale == l.scale {
		return
	}
	l.scale = scale
	l.measure()
}

// Scale returns the glyph scale.
func (l *TextLabel) Scale() float32 { return l.scale }

// SetLineGap sets the extra space between lines. Negative values tighten.
func (l *TextLabel) SetLineGap(gap float32) {
	if l.destroyed || gap == l.lineGap {
		return
	}
	l.lineGap = gap
	l.measure()
}

// SetColor sets the text tint.
func (l *TextLabel) SetColor(c Color) { l.color = c }

// Color returns the text tint.
func (l *TextLabel) Color() Color { return l.color }

// SetAnchor moves the label's anchor point.
func (l *TextLabel) SetAnchor(x, y float32) {
	l.anchor = Vec2{X: x, Y: y}
	l.position()
}

// Anchor returns the anchor point.
func (l *TextLabel) Anchor() Vec2 { return l.anchor }

// SetXAlign sets the horizontal anchoring.
func (l *TextLabel) SetXAlign(a XAlign) {
	l.xAlign = a
	l.position()
}

// SetYAlign sets the vertical anchoring.
func (l *TextLabel) SetYAlign(a YAlign) {
	l.yAlign = a
	l.position()
}

// SetAlignment sets both anchorings at once.
func (l *TextLabel) SetAlignment(x XAlign, y YAlign) {
	l.xAlign = x
	l.yAlign = y
	l.position()
}

// SetLineAlign sets per-line justification.
func (l *TextLabel) SetLineAlign(a TextAlign) {
	l.lineAlign = a
	l.position()
}

// Size returns the measured block size.
func (l *TextLabel) Size() Vec2 { return l.size }

// Origin returns the top-left corner of the block.
func (l *TextLabel) Origin() Vec2 { return l.origin }

// Bounds returns the block rectangle.
func (l *TextLabel) Bounds() Rect {
	return Rect{X: l.origin.X, Y: l.origin.Y, W: l.size.X, H: l.size.Y}
}

// LineCount returns the number of lines; 0 for empty text.
func (l *TextLabel) LineCount() int { return len(l.lines) }

// measure recomputes line widths and block size, then repositions.
func (l *TextLabel) measure() {
	l.lines = SplitLines(l.text)
	l.lineWidths = l.lineWidths[:0]
	l.size = Vec2{}
	if len(l.lines) == 0 || l.font == nil {
		l.lines = nil
		l.position()
		return
	}

	for _, line := range l.lines {
		var w float32
		if line != "" {
			w, _ = l.font.Measure(line, l.scale)
		}
		l.lineWidths = append(l.lineWidths, w)
		l.size.X = maxf(l.size.X, w)
	}
	n := float32(len(l.lines))
	l.size.Y = n*l.font.LineHeight(l.scale) + l.lineGap*(n-1)
	l.position()
}

// position derives the block origin from anchor, alignment and size.
func (l *TextLabel) position() {
	l.origin = l.anchor
	switch l.xAlign {
	case AlignCenter:
		l.origin.X -= l.size.X / 2
	case AlignRight:
		l.origin.X -= l.size.X
	}
	switch l.yAlign {
	case AlignMiddle:
		l.origin.Y -= l.size.Y / 2
	case AlignBottom:
		l.origin.Y -= l.size.Y
	}
}

// lineOffset returns the x offset of line i inside the block.
func (l *TextLabel) lineOffset(i int) float32 {
	switch l.lineAlign {
	case TextAlignCenter:
		return (l.size.X - l.lineWidths[i]) / 2
	case TextAlignRight:
		return l.size.X - l.lineWidths[i]
	}
	return 0
}

// Render draws one textured quad per visible glyph.
func (l *TextLabel) Render(r Renderer) {
	if l.destroyed || l.font == nil || len(l.lines) == 0 {
		return
	}
	s := l.scale
	ascent := l.font.Ascent(s)
	advanceY := l.font.LineHeight(s) + l.lineGap

	lineTop := l.origin.Y
	for i, line := range l.lines {
		x := l.origin.X + l.lineOffset(i)
		for _, ch := range line {
			g, ok := l.font.Glyph(ch)
			if !ok {
				continue
			}
			if g.Visible() {
				r.DrawTexturedQuad(g.Texture,
					x+g.Bearing.X*s,
					lineTop+ascent-g.Bearing.Y*s,
					g.Size.X*s,
					g.Size.Y*s,
					l.color)
			}
			x += g.Advance * s
		}
		lineTop += advanceY
	}
}

// Destroy drops the font reference and clears the text. Safe to call more
// than once; a destroyed label draws nothing.
func (l *TextLabel) Destroy() {
	if l.destroyed {
		return
	}
	l.destroyed = true
	l.font = nil
	l.text = ""
	l.lines = nil
	l.lineWidths = nil
	l.size = Vec2{}
}

// SplitLines splits text on '\n'. Empty text has no lines; a trailing
// newline yields a trailing empty line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// WrapText breaks text into lines no wider than maxWidth at word
// boundaries. A single word wider than maxWidth gets its own line.
func WrapText(font Font, text string, scale, maxWidth float32) []string {
	if maxWidth <= 0 || font == nil {
		return []string{text}
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	var current string
	for _, word := range words {
		candidate := current
		if candidate != "" {
			candidate += " "
		}
		candidate += word

		w, _ := font.Measure(candidate, scale)
		if w > maxWidth && current != "" {
			lines = append(lines, current)
			current = word
		} else {
			current = candidate
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// TruncateText shortens text to fit within maxWidth, ending it with "..".
func TruncateText(font Font, text string, scale, maxWidth float32) string {
	return TruncateTextWithSuffix(font, text, scale, maxWidth, "..")
}

// TruncateTextWithSuffix shortens text to fit within maxWidth, ending it
// with suffix. Returns suffix alone when nothing else fits.
func TruncateTextWithSuffix(font Font, text string, scale, maxWidth float32, suffix string) string {
	if font == nil {
		return text
	}
	if w, _ := font.Measure(text, scale); w <= maxWidth {
		return text
	}

	suffixWidth, _ := font.Measure(suffix, scale)
	target := maxWidth - suffixWidth
	runes := []rune(text)
	for len(runes) > 0 {
		if w, _ := font.Measure(string(runes), scale); w <= target {
			return string(runes) + suffix
		}
		runes = runes[:len(runes)-1]
	}
	return suffix
}
