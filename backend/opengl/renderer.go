// Package opengl provides an OpenGL 4.1 backend for the tempo package.
package opengl

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/tempo"
)

// Renderer draws tempo quads with two shader programs: one sampling a
// texture and one filling a flat color. Every draw binds the program,
// texture and vertex array it needs.
type Renderer struct {
	texShader   uint32
	colorShader uint32
	vao, vbo    uint32
	ebo         uint32

	// Texture program uniforms
	texProjLoc   int32
	texRectLoc   int32
	texUVLoc     int32
	texTintLoc   int32
	texSampLoc   int32
	isRGBATexLoc int32

	// Color program uniforms
	colorProjLoc  int32
	colorRectLoc  int32
	colorValueLoc int32

	projection [16]float32
	width      float32
	height     float32

	// Track which textures are RGBA (vs alpha-only)
	rgbaTextures map[uint32]bool
}

var (
	_ tempo.Renderer        = (*Renderer)(nil)
	_ tempo.TextureUploader = (*Renderer)(nil)
)

// Both programs draw a unit quad scaled and moved into place by rect.
const quadVertexShaderSource = `
#version 410 core
layout (location = 0) in vec2 aPos;

out vec2 TexCoord;

uniform mat4 projection;
uniform vec4 rect;
uniform vec4 uvRect;

void main() {
    gl_Position = projection * vec4(rect.xy + aPos * rect.zw, 0.0, 1.0);
    TexCoord = mix(uvRect.xy, uvRect.zw, aPos);
}
` + "\x00"

// Alpha-only textures keep coverage in the R channel and take their color
// from the tint. RGBA textures are modulated by the tint.
const textureFragmentShaderSource = `
#version 410 core
in vec2 TexCoord;

out vec4 FragColor;

uniform sampler2D quadTexture;
uniform vec4 tint;
uniform bool isRGBATexture;

void main() {
    vec4 texColor = texture(quadTexture, TexCoord);
    if (isRGBATexture) {
        FragColor = texColor * tint;
    } else {
        FragColor = vec4(tint.rgb, tint.a * texColor.r);
    }
}
` + "\x00"

const colorVertexShaderSource = `
#version 410 core
layout (location = 0) in vec2 aPos;

uniform mat4 projection;
uniform vec4 rect;

void main() {
    gl_Position = projection * vec4(rect.xy + aPos * rect.zw, 0.0, 1.0);
}
` + "\x00"

const colorFragmentShaderSource = `
#version 410 core
out vec4 FragColor;

uniform vec4 color;

void main() {
    FragColor = color;
}
` + "\x00"

// NewRenderer creates a renderer for a width×height viewport. A GL context
// must be current.
func NewRenderer(width, height int) (*Renderer, error) {
	r := &Renderer{
		rgbaTextures: make(map[uint32]bool),
	}

	var err error
	r.texShader, err = createShaderProgram(quadVertexShaderSource, textureFragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create texture shader: %w", err)
	}
	r.colorShader, err = createShaderProgram(colorVertexShaderSource, colorFragmentShaderSource)
	if err != nil {
		r.Delete()
		return nil, fmt.Errorf("failed to create color shader: %w", err)
	}

	r.texProjLoc = gl.GetUniformLocation(r.texShader, gl.Str("projection\x00"))
	r.texRectLoc = gl.GetUniformLocation(r.texShader, gl.Str("rect\x00"))
	r.texUVLoc = gl.GetUniformLocation(r.texShader, gl.Str("uvRect\x00"))
	r.texTintLoc = gl.GetUniformLocation(r.texShader, gl.Str("tint\x00"))
	r.texSampLoc = gl.GetUniformLocation(r.texShader, gl.Str("quadTexture\x00"))
	r.isRGBATexLoc = gl.GetUniformLocation(r.texShader, gl.Str("isRGBATexture\x00"))

	r.colorProjLoc = gl.GetUniformLocation(r.colorShader, gl.Str("projection\x00"))
	r.colorRectLoc = gl.GetUniformLocation(r.colorShader, gl.Str("rect\x00"))
	r.colorValueLoc = gl.GetUniformLocation(r.colorShader, gl.Str("color\x00"))

	// Unit quad, top-left origin
	vertices := []float32{
		0, 0,
		1, 0,
		1, 1,
		0, 1,
	}
	indices := []uint32{0, 1, 2, 2, 3, 0}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)

	r.SetViewport(float32(width), float32(height))
	return r, nil
}

// SetViewport recomputes the orthographic projection for a width×height
// target with the origin at the top left.
func (r *Renderer) SetViewport(width, height float32) {
	r.width = width
	r.height = height
	r.projection = orthoMatrix(0, width, height, 0, -1, 1)
}

// Viewport returns the current projection size.
func (r *Renderer) Viewport() (width, height float32) {
	return r.width, r.height
}

// DrawTexturedQuad draws a region of a texture. A region without a texture
// draws a flat quad in the tint color.
func (r *Renderer) DrawTexturedQuad(tex tempo.TextureRegion, x, y, w, h float32, tint tempo.Color) {
	if !tex.Valid() {
		r.DrawFlatQuad(x, y, w, h, tint)
		return
	}

	enableBlend()
	gl.UseProgram(r.texShader)
	gl.UniformMatrix4fv(r.texProjLoc, 1, false, &r.projection[0])
	gl.Uniform4f(r.texRectLoc, x, y, w, h)
	gl.Uniform4f(r.texUVLoc, tex.U0, tex.V0, tex.U1, tex.V1)
	gl.Uniform4f(r.texTintLoc, tint.R, tint.G, tint.B, tint.A)

	id := uint32(tex.Handle)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.Uniform1i(r.texSampLoc, 0)
	if r.rgbaTextures[id] {
		gl.Uniform1i(r.isRGBATexLoc, 1)
	} else {
		gl.Uniform1i(r.isRGBATexLoc, 0)
	}

	r.drawQuad()
}

// DrawFlatQuad draws a solid rectangle.
func (r *Renderer) DrawFlatQuad(x, y, w, h float32, color tempo.Color) {
	enableBlend()
	gl.UseProgram(r.colorShader)
	gl.UniformMatrix4fv(r.colorProjLoc, 1, false, &r.projection[0])
	gl.Uniform4f(r.colorRectLoc, x, y, w, h)
	gl.Uniform4f(r.colorValueLoc, color.R, color.G, color.B, color.A)

	r.drawQuad()
}

func (r *Renderer) drawQuad() {
	gl.BindVertexArray(r.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, 6, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

func enableBlend() {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}

// UploadAlpha creates a single-channel texture from tightly packed rows.
func (r *Renderer) UploadAlpha(width, height int, pixels []byte) (tempo.TextureHandle, error) {
	if width <= 0 || height <= 0 || len(pixels) < width*height {
		return 0, fmt.Errorf("upload alpha texture: invalid %dx%d with %d bytes", width, height, len(pixels))
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, int32(width), int32(height), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteTextures(1, &tex)
		return 0, fmt.Errorf("upload alpha texture %dx%d: gl error 0x%x", width, height, code)
	}
	return tempo.TextureHandle(tex), nil
}

// DeleteTexture releases a texture created by UploadAlpha or registered as
// RGBA. The zero handle is ignored.
func (r *Renderer) DeleteTexture(h tempo.TextureHandle) {
	if h == 0 {
		return
	}
	tex := uint32(h)
	gl.DeleteTextures(1, &tex)
	delete(r.rgbaTextures, tex)
}

// RegisterRGBATexture marks a texture as RGBA (vs alpha-only).
func (r *Renderer) RegisterRGBATexture(textureID uint32) {
	r.rgbaTextures[textureID] = true
}

// UnregisterRGBATexture removes a texture from the RGBA tracking.
func (r *Renderer) UnregisterRGBATexture(textureID uint32) {
	delete(r.rgbaTextures, textureID)
}

// Delete releases OpenGL resources. It is safe to call more than once.
func (r *Renderer) Delete() {
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
		r.ebo = 0
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.texShader != 0 {
		gl.DeleteProgram(r.texShader)
		r.texShader = 0
	}
	if r.colorShader != 0 {
		gl.DeleteProgram(r.colorShader)
		r.colorShader = 0
	}
}

var errShaderCompile = errors.New("shader compilation failed")

// compileShader compiles one shader stage.
func compileShader(kind uint32, source string) (uint32, error) {
	shader := gl.CreateShader(kind)
	csource, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w: %s", errShaderCompile, string(log))
	}
	return shader, nil
}

// createShaderProgram compiles and links a shader program.
func createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(gl.VERTEX_SHADER, vertexSource)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(gl.FRAGMENT_SHADER, fragmentSource)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("shader program linking failed: %s", string(log))
	}

	return program, nil
}

// orthoMatrix creates an orthographic projection matrix.
func orthoMatrix(left, right, bottom, top, near, far float32) [16]float32 {
	return [16]float32{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, -2 / (far - near), 0,
		-(right + left) / (right - left), -(top + bottom) / (top - bottom), -(far + near) / (far - near), 1,
	}
}
