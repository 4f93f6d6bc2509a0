package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/tempo"
)

// RenderTarget is an offscreen RGBA framebuffer the frame is drawn into at
// a fixed resolution before being scaled onto the window.
type RenderTarget struct {
	fbo     uint32
	texture uint32
	width   int
	height  int
}

// NewRenderTarget creates a width×height framebuffer with a color texture.
func NewRenderTarget(width, height int) (*RenderTarget, error) {
	t := &RenderTarget{}
	if err := t.Resize(width, height); err != nil {
		return nil, err
	}
	return t, nil
}

// Resize recreates the framebuffer at a new resolution.
func (t *RenderTarget) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("render target: invalid size %dx%d", width, height)
	}
	t.Delete()

	gl.GenFramebuffers(1, &t.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)

	gl.GenTextures(1, &t.texture)
	gl.BindTexture(gl.TEXTURE_2D, t.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.texture, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		t.Delete()
		return fmt.Errorf("render target: framebuffer incomplete (0x%x)", status)
	}

	t.width = width
	t.height = height
	return nil
}

// Size returns the resolution in pixels.
func (t *RenderTarget) Size() (width, height int) {
	return t.width, t.height
}

// TextureID returns the color texture.
func (t *RenderTarget) TextureID() uint32 {
	return t.texture
}

// Region returns the color texture flipped vertically, so drawing it with a
// top-left origin quad shows the frame upright.
func (t *RenderTarget) Region() tempo.TextureRegion {
	return tempo.TextureRegion{
		Handle: tempo.TextureHandle(t.texture),
		U0:     0,
		V0:     1,
		U1:     1,
		V1:     0,
	}
}

// Bind directs drawing into the target and sets the viewport to its size.
func (t *RenderTarget) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.Viewport(0, 0, int32(t.width), int32(t.height))
}

// Unbind restores the default framebuffer.
func (t *RenderTarget) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// Delete releases the framebuffer and texture. It is safe to call more than
// once.
func (t *RenderTarget) Delete() {
	if t.texture != 0 {
		gl.DeleteTextures(1, &t.texture)
		t.texture = 0
	}
	if t.fbo != 0 {
		gl.DeleteFramebuffers(1, &t.fbo)
		t.fbo = 0
	}
	t.width, t.height = 0, 0
}
