package tempo

import "errors"

var (
	// ErrNoFont is returned when a font file cannot be read or parsed.
	ErrNoFont = errors.New("tempo: font unavailable")

	// ErrAtlasFull is returned when the glyphs of a font do not fit in the
	// largest atlas texture.
	ErrAtlasFull = errors.New("tempo: glyph atlas full")

	// ErrUnknownScreen is returned when no factory is registered for a
	// screen identifier.
	ErrUnknownScreen = errors.New("tempo: unknown screen")

	// ErrPayloadMismatch is returned when a payload targets a different
	// screen than the one requested, or a screen receives a payload of the
	// wrong type.
	ErrPayloadMismatch = errors.New("tempo: payload does not match screen")

	// ErrClosed is returned by operations on an application or audio
	// player that has shut down.
	ErrClosed = errors.New("tempo: closed")
)
