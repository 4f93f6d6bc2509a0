package tempo

import "time"

// Context is what a screen sees of the application. It is valid from Init
// until Destroy.
type Context struct {
	Renderer   Renderer
	Fonts      *FontCache
	Audio      Audio
	Input      *InputState
	RenderSize Vec2

	app *App
}

// SwitchTo requests a fade to another screen. It returns false when a
// switch is already in progress, the screen is unknown or the payload
// targets a different screen.
func (c *Context) SwitchTo(id ScreenID, payload Payload) bool {
	if c.app == nil {
		return false
	}
	return c.app.Request(id, payload)
}

// Quit asks the loop to stop after the current frame.
func (c *Context) Quit() {
	if c.app != nil {
		c.app.Quit()
	}
}

// Font returns the atlas for pixelSize.
func (c *Context) Font(pixelSize int) (*GlyphAtlas, error) {
	if c.Fonts == nil {
		return nil, ErrNoFont
	}
	return c.Fonts.Atlas(pixelSize)
}

// Now returns the loop clock's current time.
func (c *Context) Now() time.Time {
	if c.app == nil {
		return time.Now()
	}
	return c.app.clock.Now()
}
