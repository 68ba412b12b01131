package render

import "go.jacobcolvin.com/ferrisfollow/motion"

// Glyphs selects the rune drawn for each animation phase and for the trail.
type Glyphs struct {
	Idle  rune
	Left  rune
	Right rune
	Up    rune
	Down  rune
	Trail rune
}

// DefaultGlyphs returns a crab for every phase and a dot trail.
func DefaultGlyphs() Glyphs {
	return Glyphs{
		Idle:  '🦀',
		Left:  '🦀',
		Right: '🦀',
		Up:    '🦀',
		Down:  '🦀',
		Trail: '.',
	}
}

// For returns the glyph for phase p. Unset glyphs fall back to Idle, then to
// the default crab.
func (g Glyphs) For(p motion.Phase) rune {
	var r rune

	switch p {
	case motion.MovingLeft:
		r = g.Left
	case motion.MovingRight:
		r = g.Right
	case motion.MovingUp:
		r = g.Up
	case motion.MovingDown:
		r = g.Down
	case motion.Idle:
		r = g.Idle
	}

	if r == 0 {
		r = g.Idle
	}

	if r == 0 {
		r = DefaultGlyphs().Idle
	}

	return r
}

// Palette colors.
var (
	// ColorFerris is the actor color.
	ColorFerris = RGB(0xF7, 0x4C, 0x00)
	// ColorTrailEnd is the color the trail fades toward.
	ColorTrailEnd = RGB(0x3A, 0x3A, 0x3A)
	// ColorStatus is the status line color.
	ColorStatus = RGB(0xA0, 0xA0, 0xA0)
)
