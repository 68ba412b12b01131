package motion

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"

	"go.jacobcolvin.com/ferrisfollow/geom"
)

const (
	// DefaultMaxSpeed is the default speed cap in cells per second.
	DefaultMaxSpeed = 20.0
	// DefaultFrequency is the default spring angular frequency in radians per
	// second.
	DefaultFrequency = 40.0
	// MinFrequency is the lowest frequency at which the speed cap, not the
	// spring, limits travel time. At or above it a move of distance d takes
	// at most ⌈d / (MaxSpeed·dt)⌉ ticks.
	MinFrequency = DefaultFrequency

	// Speeds below this (cells per second) are treated as rest.
	restSpeed = 1e-3
)

// Model holds the motion parameters. The zero value never moves; create
// instances with [NewModel].
type Model struct {
	// Bounds is the terminal grid every produced position is clamped to.
	Bounds geom.Size
	// MaxSpeed caps the actor's speed in cells per second.
	MaxSpeed float64
	// Frequency is the angular frequency of the critically damped spring.
	// Higher values ease in more sharply near the destination.
	Frequency float64
}

// Option configures a [Model].
type Option func(*Model)

// NewModel creates a [Model] for the given bounds.
func NewModel(bounds geom.Size, opts ...Option) Model {
	m := Model{
		Bounds:    bounds,
		MaxSpeed:  DefaultMaxSpeed,
		Frequency: DefaultFrequency,
	}

	for _, opt := range opts {
		opt(&m)
	}

	return m
}

// WithMaxSpeed sets the speed cap in cells per second. Negative values are
// treated as zero.
func WithMaxSpeed(speed float64) Option {
	return func(m *Model) {
		m.MaxSpeed = math.Max(0, speed)
	}
}

// WithFrequency sets the spring angular frequency in radians per second.
func WithFrequency(freq float64) Option {
	return func(m *Model) {
		m.Frequency = math.Max(0, freq)
	}
}

// WithBounds returns a copy of m with new bounds.
func (m Model) WithBounds(bounds geom.Size) Model {
	m.Bounds = bounds

	return m
}

// Resize returns a model for the new bounds together with s clamped into
// them.
func (m Model) Resize(s State, bounds geom.Size) (Model, State) {
	m = m.WithBounds(bounds)

	return m, m.Clamp(s)
}

// Clamp moves every coordinate of s inside m's bounds.
func (m Model) Clamp(s State) State {
	s.X, s.Y = m.Bounds.ClampFloat(s.X, s.Y)
	s.Dest = m.Bounds.Clamp(s.Dest)
	s.Pos = m.Bounds.Clamp(roundPosition(s.X, s.Y))

	return s
}

// Advance returns the state one tick of length dt after s.
//
// A non-nil target replaces the destination (clamped to the bounds). The
// actor then moves toward the destination by the distance a critically
// damped spring covers in dt, capped at MaxSpeed·dt. The step never exceeds
// the remaining distance, and when the remaining distance fits in one capped
// step the actor lands on the destination exactly. At the destination the
// velocity decays toward zero and the phase is [Idle].
func (m Model) Advance(s State, target *geom.Position, dt time.Duration) State {
	if dt <= 0 {
		return s
	}

	sec := dt.Seconds()

	if target != nil {
		s.Dest = m.Bounds.Clamp(*target)
	}

	destX, destY := float64(s.Dest.X), float64(s.Dest.Y)
	dx, dy := destX-s.X, destY-s.Y
	dist := math.Hypot(dx, dy)

	if dist == 0 {
		decay := math.Exp(-m.Frequency * sec)

		s.VX *= decay
		s.VY *= decay
		if math.Hypot(s.VX, s.VY) < restSpeed {
			s.VX, s.VY = 0, 0
		}

		s.Pos = s.Dest
		s.Phase = Idle

		return s
	}

	ux, uy := dx/dist, dy/dist

	// Only the velocity component toward the destination carries over.
	speed := math.Max(0, s.VX*ux+s.VY*uy)

	spring := harmonica.NewSpring(sec, m.Frequency, 1)
	remaining, _ := spring.Update(dist, -speed, 0)

	step := dist - remaining
	maxStep := m.MaxSpeed * sec

	switch {
	case dist <= maxStep:
		step = dist
	case step > maxStep:
		step = maxStep
	case step < 0:
		step = 0
	}

	if step >= dist {
		s.X, s.Y = destX, destY
	} else {
		s.X += ux * step
		s.Y += uy * step
	}

	s.VX, s.VY = ux*step/sec, uy*step/sec
	s.Phase = phaseOf(s.VX, s.VY)

	return m.Clamp(s)
}

func roundPosition(x, y float64) geom.Position {
	return geom.Position{X: int(math.Round(x)), Y: int(math.Round(y))}
}
