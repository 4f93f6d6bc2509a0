package opengl

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/tempo"
)

// WindowConfig describes the window and the fixed render resolution.
type WindowConfig struct {
	Width, Height             int
	Title                     string
	VSync                     bool
	Hidden                    bool
	RenderWidth, RenderHeight int
}

// Window owns the GLFW window, the GL context, the quad renderer and the
// offscreen frame. It is the tempo Surface and InputSource.
type Window struct {
	win      *glfw.Window
	renderer *Renderer
	target   *RenderTarget
	queue    *tempo.EventQueue

	renderW, renderH float32
	clear            tempo.Color
	closed           bool
}

var (
	_ tempo.Surface     = (*Window)(nil)
	_ tempo.InputSource = (*Window)(nil)
)

// OpenWindow initializes GLFW and OpenGL 4.1 core, then creates the window,
// renderer and render target. Must be called from the main thread.
func OpenWindow(cfg WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	if cfg.Hidden {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init: %w", err)
	}

	w := &Window{
		win:     win,
		queue:   tempo.NewEventQueue(),
		renderW: float32(cfg.RenderWidth),
		renderH: float32(cfg.RenderHeight),
		clear:   tempo.ColorBlack,
	}

	w.renderer, err = NewRenderer(cfg.RenderWidth, cfg.RenderHeight)
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("renderer: %w", err)
	}
	w.target, err = NewRenderTarget(cfg.RenderWidth, cfg.RenderHeight)
	if err != nil {
		w.Close()
		return nil, err
	}
	w.renderer.RegisterRGBATexture(w.target.TextureID())

	win.SetKeyCallback(w.keyCallback)
	win.SetMouseButtonCallback(w.mouseButtonCallback)
	win.SetCursorPosCallback(w.cursorPosCallback)
	win.SetScrollCallback(w.scrollCallback)

	tempo.Logger().Info("window opened",
		"size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"render", fmt.Sprintf("%dx%d", cfg.RenderWidth, cfg.RenderHeight),
		"vsync", cfg.VSync,
		"gl", gl.GoStr(gl.GetString(gl.VERSION)))
	return w, nil
}

// Renderer returns the quad renderer, which is also the texture uploader.
func (w *Window) Renderer() *Renderer {
	return w.renderer
}

// SetClearColor sets the color of the frame and the letterbox bars.
func (w *Window) SetClearColor(c tempo.Color) {
	w.clear = c
}

// Poll processes pending window events and returns the input they produced.
func (w *Window) Poll() []tempo.Event {
	glfw.PollEvents()
	return w.queue.Poll()
}

// ShouldClose reports whether the user asked to close the window.
func (w *Window) ShouldClose() bool {
	return w.closed || w.win.ShouldClose()
}

// FramebufferSize returns the window's drawable size in pixels.
func (w *Window) FramebufferSize() (int, int) {
	return w.win.GetFramebufferSize()
}

// BeginFrame binds and clears the offscreen frame.
func (w *Window) BeginFrame() {
	w.target.Bind()
	gl.ClearColor(w.clear.R, w.clear.G, w.clear.B, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	w.renderer.SetViewport(w.renderW, w.renderH)
}

// Present scales the offscreen frame onto the window with letterboxing
// and swaps buffers.
func (w *Window) Present() {
	w.target.Unbind()

	fbW, fbH := w.win.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	box := tempo.Letterbox(fbW, fbH, w.renderW, w.renderH)
	if box.W > 0 && box.H > 0 {
		w.renderer.SetViewport(float32(fbW), float32(fbH))
		w.renderer.DrawTexturedQuad(w.target.Region(), box.X, box.Y, box.W, box.H, tempo.ColorWhite)
		w.renderer.SetViewport(w.renderW, w.renderH)
	}

	w.win.SwapBuffers()
}

// Screenshot writes the last rendered frame to path as a JPEG.
func (w *Window) Screenshot(path string) error {
	width, height := w.target.Size()
	pixels := make([]byte, width*height*4)

	w.target.Bind()
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	w.target.Unbind()

	// Flip vertically (OpenGL origin is bottom-left)
	rowLen := width * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < height/2; y++ {
		top := y * rowLen
		bot := (height - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, pixels)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 90}); err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	return nil
}

// Close releases GL resources and terminates GLFW. It is safe to call more
// than once.
func (w *Window) Close() {
	if w.closed {
		return
	}
	w.closed = true
	if w.target != nil {
		w.renderer.UnregisterRGBATexture(w.target.TextureID())
		w.target.Delete()
	}
	if w.renderer != nil {
		w.renderer.Delete()
	}
	w.win.Destroy()
	glfw.Terminate()
}

// toRender maps window coordinates to render coordinates.
func (w *Window) toRender(x, y float64) (float32, float32) {
	winW, winH := w.win.GetSize()
	fbW, fbH := w.win.GetFramebufferSize()
	if winW <= 0 || winH <= 0 {
		return 0, 0
	}
	// HiDPI: cursor positions are in screen coordinates, not pixels.
	px := float32(x) * float32(fbW) / float32(winW)
	py := float32(y) * float32(fbH) / float32(winH)
	p := tempo.WindowToRender(tempo.Letterbox(fbW, fbH, w.renderW, w.renderH), w.renderW, w.renderH, px, py)
	return p.X, p.Y
}

func (w *Window) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	k := glfwKeyToKey(key)
	if k == tempo.KeyNone {
		return
	}

	ev := tempo.Event{Key: k, Time: time.Now()}
	switch action {
	case glfw.Press:
		ev.Type = tempo.EventKeyDown
	case glfw.Repeat:
		ev.Type = tempo.EventKeyDown
		ev.Repeat = true
	case glfw.Release:
		ev.Type = tempo.EventKeyUp
	default:
		return
	}
	w.queue.Push(ev)
}

func (w *Window) mouseButtonCallback(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	b := glfwMouseButtonToButton(button)
	if b < 0 {
		return
	}

	x, y := w.toRender(w.win.GetCursorPos())
	ev := tempo.Event{Button: b, X: x, Y: y, Time: time.Now()}
	switch action {
	case glfw.Press:
		ev.Type = tempo.EventMouseDown
	case glfw.Release:
		ev.Type = tempo.EventMouseUp
	default:
		return
	}
	w.queue.Push(ev)
}

func (w *Window) cursorPosCallback(_ *glfw.Window, xpos, ypos float64) {
	x, y := w.toRender(xpos, ypos)
	w.queue.Push(tempo.Event{Type: tempo.EventMouseMove, X: x, Y: y, Time: time.Now()})
}

func (w *Window) scrollCallback(_ *glfw.Window, xoff, yoff float64) {
	w.queue.Push(tempo.Event{Type: tempo.EventScroll, X: float32(xoff), Y: float32(yoff), Time: time.Now()})
}

// glfwKeyToKey maps GLFW keys to tempo keys.
func glfwKeyToKey(key glfw.Key) tempo.Key {
	switch key {
	case glfw.KeyLeft:
		return tempo.KeyLeft
	case glfw.KeyRight:
		return tempo.KeyRight
	case glfw.KeyUp:
		return tempo.KeyUp
	case glfw.KeyDown:
		return tempo.KeyDown
	case glfw.KeyPageUp:
		return tempo.KeyPageUp
	case glfw.KeyPageDown:
		return tempo.KeyPageDown
	case glfw.KeyHome:
		return tempo.KeyHome
	case glfw.KeyEnd:
		return tempo.KeyEnd
	case glfw.KeyBackspace:
		return tempo.KeyBackspace
	case glfw.KeySpace:
		return tempo.KeySpace
	case glfw.KeyEnter, glfw.KeyKPEnter:
		return tempo.KeyEnter
	case glfw.KeyEscape:
		return tempo.KeyEscape
	case glfw.KeyZ:
		return tempo.KeyZ
	case glfw.KeyX:
		return tempo.KeyX
	case glfw.KeyComma:
		return tempo.KeyComma
	case glfw.KeyPeriod:
		return tempo.KeyPeriod
	case glfw.KeyF1:
		return tempo.KeyF1
	case glfw.KeyF2:
		return tempo.KeyF2
	case glfw.KeyF3:
		return tempo.KeyF3
	default:
		return tempo.KeyNone
	}
}

// glfwMouseButtonToButton maps GLFW mouse buttons to tempo buttons.
func glfwMouseButtonToButton(button glfw.MouseButton) tempo.MouseButton {
	switch button {
	case glfw.MouseButtonLeft:
		return tempo.MouseButtonLeft
	case glfw.MouseButtonRight:
		return tempo.MouseButtonRight
	case glfw.MouseButtonMiddle:
		return tempo.MouseButtonMiddle
	default:
		return -1
	}
}
