// Package geom provides integer cell coordinates and terminal bounds.
package geom

import "fmt"

// Position is a cell coordinate: X is the column, Y is the row.
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// String returns the position formatted as "(x,y)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns p offset by dx columns and dy rows.
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Size is the dimension of a terminal grid in cells.
type Size struct {
	Width  int
	Height int
}

// String returns the size formatted as "WxH".
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Empty reports whether s has no cells.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Area returns the number of cells in s.
func (s Size) Area() int {
	if s.Empty() {
		return 0
	}

	return s.Width * s.Height
}

// Contains reports whether p lies within [0, Width) × [0, Height).
func (s Size) Contains(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < s.Width && p.Y < s.Height
}

// Center returns the middle cell of s.
func (s Size) Center() Position {
	return Position{X: s.Width / 2, Y: s.Height / 2}
}

// Clamp returns p moved to the nearest cell inside s. An empty size clamps
// everything to the origin.
func (s Size) Clamp(p Position) Position {
	return Position{
		X: clampInt(p.X, 0, s.Width-1),
		Y: clampInt(p.Y, 0, s.Height-1),
	}
}

// ClampFloat clamps sub-cell coordinates to the same range as [Size.Clamp].
func (s Size) ClampFloat(x, y float64) (float64, float64) {
	return clampFloat(x, 0, float64(s.Width-1)), clampFloat(y, 0, float64(s.Height-1))
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}

	return min(max(v, lo), hi)
}

func clampFloat(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}

	return min(max(v, lo), hi)
}
