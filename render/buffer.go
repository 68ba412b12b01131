package render

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"go.jacobcolvin.com/ferrisfollow/geom"
)

// Buffer is a row-major grid of cells.
type Buffer struct {
	cells []Cell
	size  geom.Size
}

// NewBuffer creates a blank buffer. Negative dimensions are treated as zero.
func NewBuffer(size geom.Size) *Buffer {
	b := &Buffer{}
	b.Resize(size)

	return b
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() geom.Size {
	return b.size
}

// Resize changes the dimensions and blanks every cell. The backing array is
// reused when it is large enough.
func (b *Buffer) Resize(size geom.Size) {
	size.Width = max(size.Width, 0)
	size.Height = max(size.Height, 0)

	n := size.Area()
	if cap(b.cells) < n {
		b.cells = make([]Cell, n)
	} else {
		b.cells = b.cells[:n]
	}

	b.size = size
	b.Clear()
}

// Clear blanks every cell.
func (b *Buffer) Clear() {
	clear(b.cells)
}

// At returns the cell at p, or a blank cell when p is out of bounds.
func (b *Buffer) At(p geom.Position) Cell {
	if !b.size.Contains(p) {
		return Cell{}
	}

	return b.cells[p.Y*b.size.Width+p.X]
}

// Set writes c at p. It reports false when p is out of bounds.
func (b *Buffer) Set(p geom.Position, c Cell) bool {
	if !b.size.Contains(p) {
		return false
	}

	b.cells[p.Y*b.size.Width+p.X] = c

	return true
}

// SetRune draws r with style at p. A double-width rune also claims the cell
// to its right and is shifted left if it would cross the right edge. It
// returns the column the rune was drawn at, or -1 if nothing was drawn.
func (b *Buffer) SetRune(p geom.Position, r rune, style Style) int {
	w := max(runewidth.RuneWidth(r), 1)
	if w > b.size.Width || p.Y < 0 || p.Y >= b.size.Height {
		return -1
	}

	x := min(max(p.X, 0), b.size.Width-w)

	b.clearWide(geom.Position{X: x, Y: p.Y})
	b.Set(geom.Position{X: x, Y: p.Y}, Cell{Rune: r, Style: style})

	if w == 2 {
		next := geom.Position{X: x + 1, Y: p.Y}
		b.clearWide(next)
		b.Set(next, Cell{Style: style, Cont: true})
	}

	return x
}

// SetString draws s starting at p, truncated at the right edge. It returns
// the number of columns used.
func (b *Buffer) SetString(p geom.Position, s string, style Style) int {
	if p.Y < 0 || p.Y >= b.size.Height || p.X >= b.size.Width {
		return 0
	}

	s = runewidth.Truncate(s, b.size.Width-p.X, "…")

	x := p.X
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}

		if x+w > b.size.Width {
			break
		}

		if x >= 0 {
			b.SetRune(geom.Position{X: x, Y: p.Y}, r, style)
		}

		x += w
	}

	return x - p.X
}

// clearWide blanks the other half of a double-width rune overlapping p so
// that overwriting one half never leaves an orphan.
func (b *Buffer) clearWide(p geom.Position) {
	c := b.At(p)

	switch {
	case c.Cont:
		b.Set(p.Add(-1, 0), Cell{})
	case c.Rune != 0 && runewidth.RuneWidth(c.Rune) == 2:
		b.Set(p.Add(1, 0), Cell{})
	}
}

// String returns the buffer text, one line per row, with blanks as spaces
// and trailing spaces trimmed. Styles are ignored.
func (b *Buffer) String() string {
	var sb strings.Builder

	for y := range b.size.Height {
		if y > 0 {
			sb.WriteByte('\n')
		}

		var line strings.Builder

		for x := range b.size.Width {
			c := b.cells[y*b.size.Width+x]

			switch {
			case c.Cont:
			case c.Rune == 0:
				line.WriteByte(' ')
			default:
				line.WriteRune(c.Rune)
			}
		}

		sb.WriteString(strings.TrimRight(line.String(), " "))
	}

	return sb.String()
}
