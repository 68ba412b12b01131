// Package sample turns terminal input into target positions.
//
// A [Sampler] drains every pending event from a [Source] without blocking
// and keeps only the newest target. Resizes and quit keys seen while
// draining are collected for the caller.
package sample

import (
	"errors"
	"fmt"
	"time"

	"go.jacobcolvin.com/ferrisfollow/geom"
	"go.jacobcolvin.com/ferrisfollow/term"
)

// ErrSampler indicates the input source failed.
var ErrSampler = errors.New("sample input")

const (
	// DefaultStride is the number of cells moved by shifted direction keys.
	DefaultStride = 4

	// maxDrain bounds the events read per call so a flooding source cannot
	// stall a tick.
	maxDrain = 4096
)

// Source yields input events without blocking. [term.Host] implements it.
type Source interface {
	Poll() (ev term.Event, ok bool, err error)
}

// Event is a target position and when it was observed.
type Event struct {
	At  time.Time
	Pos geom.Position
}

// Sampler reads targets from a [Source].
//
// Create instances with [New].
type Sampler struct {
	src     Source
	now     func() time.Time
	last    geom.Position
	bounds  geom.Size
	resize  geom.Size
	stride  int
	reserve int
	resized bool
	quit    bool
}

// Option configures a [Sampler].
type Option func(*Sampler)

// WithStride sets how many cells H, J, K, and L move the target.
// Values less than 1 are clamped to 1.
func WithStride(n int) Option {
	return func(s *Sampler) {
		s.stride = max(n, 1)
	}
}

// WithOrigin sets the target that the first keyboard move starts from.
func WithOrigin(p geom.Position) Option {
	return func(s *Sampler) {
		s.last = p
	}
}

// WithBounds sets the grid keyboard targets are kept inside. Resize events
// update it.
func WithBounds(size geom.Size) Option {
	return func(s *Sampler) {
		s.bounds = size
	}
}

// WithReservedRows keeps keyboard targets out of the bottom n rows of the
// terminal, such as a status line. Terminals no taller than n rows are not
// reduced.
func WithReservedRows(n int) Option {
	return func(s *Sampler) {
		s.reserve = max(n, 0)
	}
}

// WithClock sets the time source for keyboard targets and pointer events
// without a timestamp.
func WithClock(now func() time.Time) Option {
	return func(s *Sampler) {
		s.now = now
	}
}

// New creates a [Sampler] reading from src.
func New(src Source, opts ...Option) *Sampler {
	s := &Sampler{
		src:    src,
		now:    time.Now,
		stride: DefaultStride,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Sample drains pending events and returns the newest target, or ok=false if
// none arrived since the last call. Errors from the source wrap
// [ErrSampler] and are fatal.
func (s *Sampler) Sample() (Event, bool, error) {
	var (
		out Event
		got bool
	)

	for range maxDrain {
		ev, ok, err := s.src.Poll()
		if err != nil {
			return Event{}, false, fmt.Errorf("%w: %w", ErrSampler, err)
		}

		if !ok {
			break
		}

		switch ev := ev.(type) {
		case term.PointerEvent:
			at := ev.At
			if at.IsZero() {
				at = s.now()
			}

			s.last = ev.Pos
			out, got = Event{Pos: ev.Pos, At: at}, true

		case term.ResizeEvent:
			s.SetBounds(s.targetBounds(ev.Size))
			s.resize = ev.Size
			s.resized = true

		case term.KeyEvent:
			if p, ok := s.key(ev); ok {
				s.last = p
				out, got = Event{Pos: p, At: s.now()}, true
			}
		}
	}

	return out, got, nil
}

// Resized returns the newest size seen since the last call, if any.
func (s *Sampler) Resized() (geom.Size, bool) {
	size, ok := s.resize, s.resized
	s.resized = false

	return size, ok
}

// SetBounds replaces the grid keyboard targets are kept inside and moves the
// last target into it.
func (s *Sampler) SetBounds(size geom.Size) {
	s.bounds = size
	if !size.Empty() {
		s.last = size.Clamp(s.last)
	}
}

// QuitRequested reports whether a quit key has been read.
func (s *Sampler) QuitRequested() bool {
	return s.quit
}

// key applies a key press, returning a new target for direction keys.
func (s *Sampler) key(ev term.KeyEvent) (geom.Position, bool) {
	dx, dy := 0, 0

	switch ev.Key {
	case term.KeyCtrlC, term.KeyEscape:
		s.quit = true

		return geom.Position{}, false

	case term.KeyUp:
		dy = -1
	case term.KeyDown:
		dy = 1
	case term.KeyLeft:
		dx = -1
	case term.KeyRight:
		dx = 1

	case term.KeyRune:
		switch ev.Rune {
		case 'q', 'Q':
			s.quit = true

			return geom.Position{}, false

		case 'h':
			dx = -1
		case 'j':
			dy = 1
		case 'k':
			dy = -1
		case 'l':
			dx = 1
		case 'H':
			dx = -s.stride
		case 'J':
			dy = s.stride
		case 'K':
			dy = -s.stride
		case 'L':
			dx = s.stride
		default:
			return geom.Position{}, false
		}

	default:
		return geom.Position{}, false
	}

	p := s.last.Add(dx, dy)
	if !s.bounds.Empty() {
		p = s.bounds.Clamp(p)
	}

	return p, true
}

// targetBounds returns the part of a terminal of the given size that
// keyboard targets may reach.
func (s *Sampler) targetBounds(size geom.Size) geom.Size {
	if s.reserve > 0 && size.Height > s.reserve {
		size.Height -= s.reserve
	}

	return size
}
