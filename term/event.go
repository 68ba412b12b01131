package term

import (
	"time"

	"go.jacobcolvin.com/ferrisfollow/geom"
)

// Event is an input event read from a [Host]. It is one of [PointerEvent],
// [ResizeEvent], or [KeyEvent].
type Event interface {
	event()
}

// PointerEvent reports the pointer over the cell at Pos.
type PointerEvent struct {
	At  time.Time
	Pos geom.Position
}

// ResizeEvent reports a new terminal size.
type ResizeEvent struct {
	Size geom.Size
}

// KeyEvent reports a key press. Rune is set only when Key is [KeyRune].
type KeyEvent struct {
	Key  Key
	Rune rune
}

func (PointerEvent) event() {}
func (ResizeEvent) event()  {}
func (KeyEvent) event()     {}

// Key identifies a key the program reacts to.
type Key uint8

// Keys.
const (
	KeyRune Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
	KeyCtrlC
	KeyOther
)

// String returns the key name.
func (k Key) String() string {
	switch k {
	case KeyRune:
		return "rune"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyEscape:
		return "esc"
	case KeyCtrlC:
		return "ctrl+c"
	case KeyOther:
		return "other"
	}

	return "unknown"
}
