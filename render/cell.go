package render

// Color is a 24-bit terminal color. The zero value is the terminal's
// default color.
type Color uint32

// ColorDefault selects the terminal's default color.
const ColorDefault Color = 0

const colorSet = 1 << 24

// RGB returns a 24-bit color.
func RGB(r, g, b uint8) Color {
	return Color(colorSet | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// IsDefault reports whether c is the terminal's default color.
func (c Color) IsDefault() bool {
	return c&colorSet == 0
}

// RGB returns the color components. ok is false for [ColorDefault].
func (c Color) RGB() (r, g, b uint8, ok bool) {
	if c.IsDefault() {
		return 0, 0, 0, false
	}

	return uint8(c >> 16), uint8(c >> 8), uint8(c), true
}

// Hex returns the color as 0xRRGGBB.
func (c Color) Hex() uint32 {
	return uint32(c) & 0xFFFFFF
}

// Blend mixes c toward o by t in [0, 1]. Blending with a default color
// returns the non-default side.
func (c Color) Blend(o Color, t float64) Color {
	switch {
	case c.IsDefault():
		return o
	case o.IsDefault():
		return c
	}

	t = min(max(t, 0), 1)
	r1, g1, b1, _ := c.RGB()
	r2, g2, b2, _ := o.RGB()

	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}

	return RGB(mix(r1, r2), mix(g1, g2), mix(b1, b2))
}

// Attr is a set of text attributes.
type Attr uint8

// Text attributes.
const (
	AttrBold Attr = 1 << iota
	AttrDim
	AttrReverse
	AttrNone Attr = 0
)

// Style is the foreground, background and attributes of a cell.
type Style struct {
	Fg    Color
	Bg    Color
	Attrs Attr
}

// Cell is one terminal cell. A zero Rune is blank. Cont marks the right half
// of a double-width rune drawn in the cell to its left; hosts skip it.
type Cell struct {
	Rune  rune
	Style Style
	Cont  bool
}

// Blank reports whether c draws nothing.
func (c Cell) Blank() bool {
	return c == Cell{}
}
