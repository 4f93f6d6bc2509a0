package tempo

// TextureHandle identifies a texture owned by a Renderer backend.
// The zero handle means "no texture".
type TextureHandle uint32

// TextureRegion is a sub-rectangle of a texture in normalized coordinates.
type TextureRegion struct {
	Handle TextureHandle
	U0, V0 float32 // Top-left texture coordinate
	U1, V1 float32 // Bottom-right texture coordinate
}

// FullTexture returns a region covering the whole texture.
func FullTexture(h TextureHandle) TextureRegion {
	return TextureRegion{Handle: h, U1: 1, V1: 1}
}

// Valid reports whether the region refers to a texture.
func (t TextureRegion) Valid() bool {
	return t.Handle != 0
}

// Renderer draws screen-space quads. Coordinates are in pixels of the
// current viewport with the origin at the top left and y growing down.
//
// Drawing a textured quad with an invalid region draws a flat quad in the
// tint color instead, so a missing texture stays visible.
type Renderer interface {
	DrawTexturedQuad(tex TextureRegion, x, y, w, h float32, tint Color)
	DrawFlatQuad(x, y, w, h float32, color Color)
	SetViewport(width, height float32)
}

// TextureUploader creates and releases single-channel textures. Each byte
// of an alpha texture is the coverage of one pixel, rows tightly packed.
type TextureUploader interface {
	UploadAlpha(width, height int, pixels []byte) (TextureHandle, error)
	DeleteTexture(h TextureHandle)
}
