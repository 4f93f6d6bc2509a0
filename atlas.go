package tempo

import (
	"fmt"
	"image"
	"math"
	"os"
	"sort"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	atlasFirstRune = 32  // space
	atlasLastRune  = 126 // tilde
	atlasPadding   = 1
	atlasMinWidth  = 256
	atlasMaxSize   = 8192
)

// GlyphAtlas rasterizes the printable ASCII range of a font at one pixel
// size and packs the bitmaps into a single alpha texture.
type GlyphAtlas struct {
	uploader TextureUploader

	glyphs     map[rune]Glyph
	texture    TextureHandle
	width      int
	height     int
	pixelSize  int
	ascent     float32
	lineHeight float32
}

var _ Font = (*GlyphAtlas)(nil)

// NewGlyphAtlas creates an empty atlas. A nil uploader builds glyph metrics
// only; every glyph then carries the zero texture.
func NewGlyphAtlas(uploader TextureUploader) *GlyphAtlas {
	return &GlyphAtlas{uploader: uploader}
}

// Load reads a TrueType or OpenType file and builds the atlas.
func (a *GlyphAtlas) Load(path string, pixelSize int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoFont, err)
	}
	return a.LoadBytes(data, pixelSize)
}

type pendingGlyph struct {
	r     rune
	glyph Glyph
	img   *image.Alpha
	x, y  int
}

// LoadBytes builds the atlas from font data. On failure the atlas is left
// empty; a previously loaded atlas is released only after a successful
// rebuild.
func (a *GlyphAtlas) LoadBytes(data []byte, pixelSize int) error {
	if pixelSize <= 0 {
		return fmt.Errorf("tempo: invalid font pixel size %d", pixelSize)
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		a.Destroy()
		return fmt.Errorf("%w: %w", ErrNoFont, err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(pixelSize),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		a.Destroy()
		return fmt.Errorf("%w: %w", ErrNoFont, err)
	}
	defer func() {
		_ = face.Close()
	}()

	items, area, widest := rasterizeASCII(face)

	width := max(atlasMinWidth, nextPow2(int(math.Sqrt(float64(area)))+1), nextPow2(widest+atlasPadding))
	if width > atlasMaxSize {
		a.Destroy()
		return fmt.Errorf("%w: %d px font needs width %d", ErrAtlasFull, pixelSize, width)
	}

	// Tallest first keeps shelves tight.
	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return items[order[i]].glyph.Size.Y > items[order[j]].glyph.Size.Y
	})

	packer := newShelfPacker(width, atlasPadding)
	for _, idx := range order {
		it := &items[idx]
		if it.img == nil {
			continue
		}
		it.x, it.y, _ = packer.pack(it.img.Rect.Dx(), it.img.Rect.Dy())
	}
	height := nextPow2(max(packer.height(), 1))
	if height > atlasMaxSize {
		a.Destroy()
		return fmt.Errorf("%w: %d px font needs height %d", ErrAtlasFull, pixelSize, height)
	}

	pix := make([]byte, width*height)
	for _, it := range items {
		if it.img == nil {
			continue
		}
		w, h := it.img.Rect.Dx(), it.img.Rect.Dy()
		for row := 0; row < h; row++ {
			src := it.img.Pix[row*it.img.Stride : row*it.img.Stride+w]
			copy(pix[(it.y+row)*width+it.x:], src)
		}
	}

	var handle TextureHandle
	if a.uploader != nil {
		handle, err = a.uploader.UploadAlpha(width, height, pix)
		if err != nil {
			a.Destroy()
			return fmt.Errorf("tempo: upload glyph atlas: %w", err)
		}
	}

	glyphs := make(map[rune]Glyph, len(items))
	for _, it := range items {
		g := it.glyph
		if it.img != nil {
			g.Texture = TextureRegion{
				Handle: handle,
				U0:     float32(it.x) / float32(width),
				V0:     float32(it.y) / float32(height),
				U1:     float32(it.x+it.img.Rect.Dx()) / float32(width),
				V1:     float32(it.y+it.img.Rect.Dy()) / float32(height),
			}
		}
		glyphs[it.r] = g
	}

	metrics := face.Metrics()

	a.Destroy()
	a.glyphs = glyphs
	a.texture = handle
	a.width = width
	a.height = height
	a.pixelSize = pixelSize
	a.ascent = fixedToFloat(metrics.Ascent)
	a.lineHeight = fixedToFloat(metrics.Height)
	if a.lineHeight <= 0 {
		a.lineHeight = fixedToFloat(metrics.Ascent + metrics.Descent)
	}

	Logger().Info("glyph atlas built",
		"pixelSize", pixelSize,
		"glyphs", len(glyphs),
		"width", width,
		"height", height)
	return nil
}

// rasterizeASCII renders every printable ASCII glyph the face provides.
// It returns the glyphs, their padded area and the widest bitmap.
func rasterizeASCII(face font.Face) (items []pendingGlyph, area, widest int) {
	items = make([]pendingGlyph, 0, atlasLastRune-atlasFirstRune+1)
	for r := rune(atlasFirstRune); r <= atlasLastRune; r++ {
		dr, mask, maskp, advance, ok := face.Glyph(fixed.Point26_6{}, r)
		if !ok {
			continue
		}
		it := pendingGlyph{
			r: r,
			glyph: Glyph{
				Size:    Vec2{X: float32(dr.Dx()), Y: float32(dr.Dy())},
				Bearing: Vec2{X: float32(dr.Min.X), Y: float32(-dr.Min.Y)},
				Advance: fixedToFloat(advance),
			},
		}
		if !dr.Empty() {
			// The face reuses its mask buffer between calls.
			img := image.NewAlpha(image.Rect(0, 0, dr.Dx(), dr.Dy()))
			draw.Draw(img, img.Bounds(), mask, maskp, draw.Src)
			it.img = img
			area += (dr.Dx() + atlasPadding) * (dr.Dy() + atlasPadding)
			widest = max(widest, dr.Dx())
		}
		items = append(items, it)
	}
	return items, area, widest
}

// Loaded reports whether the atlas holds glyphs.
func (a *GlyphAtlas) Loaded() bool {
	return a.glyphs != nil
}

// PixelSize returns the size the atlas was rasterized at.
func (a *GlyphAtlas) PixelSize() int {
	return a.pixelSize
}

// Texture returns the atlas texture and its size in pixels.
func (a *GlyphAtlas) Texture() (TextureHandle, int, int) {
	return a.texture, a.width, a.height
}

// Glyph returns the glyph for r.
func (a *GlyphAtlas) Glyph(r rune) (Glyph, bool) {
	g, ok := a.glyphs[r]
	return g, ok
}

// LineHeight returns the line height at scale, or 0 if nothing is loaded.
func (a *GlyphAtlas) LineHeight(scale float32) float32 {
	return a.lineHeight * scale
}

// Ascent returns the ascent at scale.
func (a *GlyphAtlas) Ascent(scale float32) float32 {
	return a.ascent * scale
}

// Measure returns the size of text at scale. Runes without a glyph
// contribute no width.
func (a *GlyphAtlas) Measure(text string, scale float32) (w, h float32) {
	lines := 0
	for line := range strings.SplitSeq(text, "\n") {
		lines++
		w = maxf(w, a.lineWidth(line, scale))
	}
	return w, float32(lines) * a.LineHeight(scale)
}

func (a *GlyphAtlas) lineWidth(line string, scale float32) float32 {
	var w float32
	for _, r := range line {
		if g, ok := a.glyphs[r]; ok {
			w += g.Advance * scale
		}
	}
	return w
}

// Destroy releases the atlas texture. It is safe to call more than once.
func (a *GlyphAtlas) Destroy() {
	if a.texture != 0 && a.uploader != nil {
		a.uploader.DeleteTexture(a.texture)
	}
	a.texture = 0
	a.glyphs = nil
	a.width, a.height = 0, 0
	a.ascent, a.lineHeight = 0, 0
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
