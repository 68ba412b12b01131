package render

import "go.jacobcolvin.com/ferrisfollow/geom"

// Change is a single cell update.
type Change struct {
	Cell Cell
	Pos  geom.Position
}

// DiffSet is the set of cells that changed between two frames, in row-major
// order.
type DiffSet struct {
	Changes []Change
	// Size is the frame size the diff was computed for.
	Size geom.Size
	// Full marks a diff that repaints every cell.
	Full bool
}

// Len returns the number of changed cells.
func (d DiffSet) Len() int {
	return len(d.Changes)
}

// Empty reports whether d changes nothing.
func (d DiffSet) Empty() bool {
	return len(d.Changes) == 0
}

// diff appends to dst every cell of cur that differs from prev. With full
// set, every cell of cur is appended. Both buffers must share one size.
func diff(dst []Change, prev, cur *Buffer, full bool) []Change {
	w := cur.size.Width

	for i, c := range cur.cells {
		if !full && prev.cells[i] == c {
			continue
		}

		dst = append(dst, Change{
			Pos:  geom.Position{X: i % w, Y: i / w},
			Cell: c,
		})
	}

	return dst
}
