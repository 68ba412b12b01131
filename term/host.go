package term

import (
	"errors"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"go.jacobcolvin.com/ferrisfollow/render"
)

var (
	// ErrInit indicates the terminal could not be prepared for drawing.
	ErrInit = errors.New("initialize terminal")
	// ErrDetached indicates the terminal went away while running.
	ErrDetached = errors.New("terminal detached")
	// ErrUnknownBackend indicates an unsupported [Backend] name.
	ErrUnknownBackend = errors.New("unknown backend")
)

// eventBuffer is the capacity of a host's input channel.
const eventBuffer = 256

// Host is a terminal that can be drawn on and polled for input.
type Host interface {
	render.Surface

	// Poll returns the next pending input event without blocking. It returns
	// ok=false when no event is pending. A non-nil error is fatal.
	Poll() (ev Event, ok bool, err error)

	// Close stops input and restores the terminal. It is safe to call more
	// than once.
	Close() error
}

// Backend names a [Host] implementation.
type Backend string

// Backends.
const (
	BackendTcell Backend = "tcell"
	BackendANSI  Backend = "ansi"
)

// Backends returns every supported backend name.
func Backends() []string {
	return []string{string(BackendTcell), string(BackendANSI)}
}

// ParseBackend parses a backend name.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(s); b {
	case BackendTcell, BackendANSI:
		return b, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
}

// Open creates a [Host] for the controlling terminal using backend b.
func Open(b Backend) (Host, error) {
	switch b {
	case BackendTcell:
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInit, err)
		}

		return NewTcellHost(screen)

	case BackendANSI:
		return OpenANSI(os.Stdin, os.Stdout)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, b)
}
