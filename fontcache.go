package tempo

import (
	"fmt"
	"os"
)

// FontCache builds one GlyphAtlas per pixel size from a single font file
// and keeps them for the lifetime of the application, so screens that are
// recreated on every switch share rasterized glyphs.
type FontCache struct {
	uploader TextureUploader
	data     []byte
	atlases  map[int]*GlyphAtlas
}

// NewFontCache creates a cache over in-memory font data.
func NewFontCache(uploader TextureUploader, data []byte) *FontCache {
	return &FontCache{
		uploader: uploader,
		data:     data,
		atlases:  make(map[int]*GlyphAtlas),
	}
}

// LoadFontCache reads a font file into a new cache.
func LoadFontCache(uploader TextureUploader, path string) (*FontCache, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoFont, err)
	}
	return NewFontCache(uploader, data), nil
}

// Atlas returns the atlas for pixelSize, building it on first use.
func (c *FontCache) Atlas(pixelSize int) (*GlyphAtlas, error) {
	if a, ok := c.atlases[pixelSize]; ok {
		return a, nil
	}
	a := NewGlyphAtlas(c.uploader)
	if err := a.LoadBytes(c.data, pixelSize); err != nil {
		return nil, fmt.Errorf("font size %d: %w", pixelSize, err)
	}
	c.atlases[pixelSize] = a
	return a, nil
}

// Preload builds atlases for the given sizes, stopping at the first error.
func (c *FontCache) Preload(sizes ...int) error {
	for _, size := range sizes {
		if _, err := c.Atlas(size); err != nil {
			return err
		}
	}
	return nil
}

// Close destroys every atlas. The cache can be reused afterwards.
func (c *FontCache) Close() {
	for size, a := range c.atlases {
		a.Destroy()
		delete(c.atlases, size)
	}
}
