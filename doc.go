/*
Package tempo is the presentation core of a rhythm game client: an
application loop that owns the active screen, a fade transition between
screens, a frame pacer, a glyph atlas and a text layout engine that draws
through a small quad renderer.

# Overview

An App holds exactly one active Screen. Screens never replace themselves;
they ask for a switch through their Context and the loop fades out, destroys
the old screen, constructs and initializes the new one, then fades in.
Requests made while a switch is in flight are rejected.

Everything is drawn into a fixed render resolution (1920x1080 by default).
The OpenGL backend renders into an offscreen target and letterboxes it into
the window, so screens lay out in render coordinates only.

# Quick Start

	win, _ := opengl.OpenWindow(opengl.WindowConfig{
	    Width: 1280, Height: 720, Title: "tempo",
	    RenderWidth: 1920, RenderHeight: 1080,
	})
	fonts := tempo.NewFontCache(win.Renderer(), goregular.TTF)

	app := tempo.New(win.Renderer(),
	    tempo.WithSurface(win),
	    tempo.WithInput(win),
	    tempo.WithFonts(fonts),
	    tempo.WithFrameCap(999),
	    tempo.WithTransition(300*time.Millisecond),
	)
	screens.Register(app, &screens.Deps{Library: chart.NewLibrary(nil, "songs")})
	_ = app.Start(tempo.ScreenSongSelect, nil)
	_ = app.Run()

# Frame Order

Each Tick runs, in order:

	poll input and dispatch it to the active screen
	advance the transition (swapping screens at the midpoint)
	advance audio fades
	Update(dt) on the screen, then the overlays
	Render the screen, the overlays, then the fade quad
	Present, then PostPresent
	pace to the frame cap

# Frame Pacing

FrameGovernor sleeps for most of the remaining frame budget and spins for
the last stretch, since OS sleeps overshoot. A cap of 0 disables pacing.

# Text

GlyphAtlas rasterizes a font at one pixel size into a single packed alpha
texture. TextLabel lays a multi-line string out against an anchor point with
independent horizontal and vertical alignment; the label's size and origin
are recomputed on every change, never during Render.

# Keyboard Reference

	Song select
	    Up/Down          Move selection (wraps)
	    PageUp/PageDown  Move by 5
	    Home/End         First/last song
	    Left/Right       Playback rate -/+ 0.1
	    Enter            Play
	    Escape           Quit

	Play
	    Z X , .          Lanes 1-4
	    Enter            End the song
	    Escape           Back to song select

	Results
	    Enter/Escape     Back to song select

	Global (cmd/tempo)
	    F1               Toggle the FPS counter
	    F2               Save a screenshot
*/
package tempo
