package motion

import (
	"math"

	"go.jacobcolvin.com/ferrisfollow/geom"
)

// Phase is the actor's discrete animation phase.
type Phase uint8

// Animation phases.
const (
	Idle Phase = iota
	MovingLeft
	MovingRight
	MovingUp
	MovingDown
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case MovingLeft:
		return "left"
	case MovingRight:
		return "right"
	case MovingUp:
		return "up"
	case MovingDown:
		return "down"
	}

	return "unknown"
}

// State is the actor's state between ticks.
type State struct {
	// Pos is the cell the actor occupies.
	Pos geom.Position
	// Dest is the cell the actor is moving toward.
	Dest geom.Position
	// X and Y are the exact sub-cell coordinates; Pos is their rounding.
	X, Y float64
	// VX and VY are the velocity in cells per second.
	VX, VY float64
	Phase  Phase
}

// NewState returns an actor at rest on p.
func NewState(p geom.Position) State {
	return State{
		Pos:  p,
		Dest: p,
		X:    float64(p.X),
		Y:    float64(p.Y),
	}
}

// Speed returns the magnitude of the velocity in cells per second.
func (s State) Speed() float64 {
	return math.Hypot(s.VX, s.VY)
}

// Distance returns the exact remaining distance to the destination.
func (s State) Distance() float64 {
	return math.Hypot(float64(s.Dest.X)-s.X, float64(s.Dest.Y)-s.Y)
}

// Horizontal motion wins ties.
func phaseOf(vx, vy float64) Phase {
	switch {
	case vx == 0 && vy == 0:
		return Idle
	case math.Abs(vx) >= math.Abs(vy):
		if vx < 0 {
			return MovingLeft
		}

		return MovingRight
	case vy < 0:
		return MovingUp
	}

	return MovingDown
}
