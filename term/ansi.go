package term

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/cancelreader"
	xterm "golang.org/x/term"

	"go.jacobcolvin.com/ferrisfollow/geom"
	"go.jacobcolvin.com/ferrisfollow/render"
)

// ANSIHost is a [Host] that writes ANSI sequences directly and reads raw
// input bytes.
//
// Create instances with [OpenANSI] for a real terminal or [NewANSIHost] for
// arbitrary streams.
type ANSIHost struct {
	in         cancelreader.CancelReader
	out        *bufio.Writer
	events     chan Event
	errs       chan error
	stop       chan struct{}
	restore    func() error
	sizeFn     func() (geom.Size, error)
	resizeSig  <-chan os.Signal
	stopResize func()
	closeErr   error
	style      render.Style
	cursor     geom.Position
	size       geom.Size
	mu         sync.Mutex
	once       sync.Once
	styleValid bool
	cursorOK   bool
	closed     bool
}

// ANSIOption configures an [ANSIHost].
type ANSIOption func(*ANSIHost)

// WithRestore sets a function run by [ANSIHost.Close] after the terminal
// modes are reset, typically to leave raw mode.
func WithRestore(fn func() error) ANSIOption {
	return func(h *ANSIHost) {
		h.restore = fn
	}
}

// WithResize makes the host query size on every value received from sig and
// report the result as a [ResizeEvent]. stop, if non-nil, is called on
// close.
func WithResize(sig <-chan os.Signal, size func() (geom.Size, error), stop func()) ANSIOption {
	return func(h *ANSIHost) {
		h.resizeSig = sig
		h.sizeFn = size
		h.stopResize = stop
	}
}

// OpenANSI puts the terminal on in into raw mode and creates an [ANSIHost]
// drawing to out. Resizes are detected with SIGWINCH where supported.
func OpenANSI(in, out *os.File) (*ANSIHost, error) {
	inFd := int(in.Fd())
	outFd := int(out.Fd())

	if !xterm.IsTerminal(inFd) {
		return nil, fmt.Errorf("%w: %s is not a terminal", ErrInit, in.Name())
	}

	sizeFn := func() (geom.Size, error) {
		w, h, err := xterm.GetSize(outFd)
		if err != nil {
			return geom.Size{}, fmt.Errorf("get terminal size: %w", err)
		}

		return geom.Size{Width: w, Height: h}, nil
	}

	size, err := sizeFn()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInit, err)
	}

	state, err := xterm.MakeRaw(inFd)
	if err != nil {
		return nil, fmt.Errorf("%w: enter raw mode: %w", ErrInit, err)
	}

	restore := func() error {
		return xterm.Restore(inFd, state)
	}

	sig, stop := notifyResize()

	h, err := NewANSIHost(in, out, size,
		WithRestore(restore),
		WithResize(sig, sizeFn, stop),
	)
	if err != nil {
		stop()

		return nil, errors.Join(err, restore())
	}

	return h, nil
}

// NewANSIHost creates an [ANSIHost] reading from in and writing to out,
// assuming a terminal of the given size. It switches to the alternate
// screen, hides the cursor, and enables SGR mouse motion reporting.
func NewANSIHost(in io.Reader, out io.Writer, size geom.Size, opts ...ANSIOption) (*ANSIHost, error) {
	cr, err := cancelreader.NewReader(in)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInit, err)
	}

	h := &ANSIHost{
		in:     cr,
		out:    bufio.NewWriterSize(out, 64*1024),
		events: make(chan Event, eventBuffer),
		errs:   make(chan error, 1),
		stop:   make(chan struct{}),
		size:   size,
	}

	for _, opt := range opts {
		opt(h)
	}

	h.out.WriteString(ansi.SetModeAltScreenSaveCursor)
	h.out.WriteString(ansi.HideCursor)
	h.out.WriteString(ansi.SetModeMouseAnyEvent)
	h.out.WriteString(ansi.SetModeMouseExtSgr)
	h.out.WriteString(ansi.ResetStyle)
	h.out.WriteString(ansi.EraseEntireScreen)

	err = h.out.Flush()
	if err != nil {
		cr.Close()

		return nil, fmt.Errorf("%w: %w", ErrInit, err)
	}

	go h.readLoop()

	if h.resizeSig != nil && h.sizeFn != nil {
		go h.watchResize()
	}

	return h, nil
}

// Size returns the last known terminal size.
func (h *ANSIHost) Size() geom.Size {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.size
}

// SetCell writes c at p into the output buffer. Cursor moves and style
// changes are only written when needed.
func (h *ANSIHost) SetCell(p geom.Position, c render.Cell) {
	if c.Cont {
		return
	}

	if !h.cursorOK || h.cursor != p {
		h.out.WriteString(ansi.CursorPosition(p.X+1, p.Y+1))
		h.cursor = p
		h.cursorOK = true
	}

	if !h.styleValid || h.style != c.Style {
		h.out.WriteString(sgr(c.Style))
		h.style = c.Style
		h.styleValid = true
	}

	r := c.Rune
	if r == 0 {
		r = ' '
	}

	h.out.WriteRune(r)
	h.cursor.X += max(runewidth.RuneWidth(r), 1)
}

// Show resets the style and flushes buffered output to the terminal.
func (h *ANSIHost) Show() error {
	h.out.WriteString(ansi.ResetStyle)
	h.styleValid = false

	err := h.out.Flush()
	if err != nil {
		return fmt.Errorf("write frame: %w", err)
	}

	return nil
}

// Poll returns the next pending event. Input errors are reported once all
// events read before them have been returned.
func (h *ANSIHost) Poll() (Event, bool, error) {
	if h.closed {
		return nil, false, nil
	}

	select {
	case ev := <-h.events:
		if re, ok := ev.(ResizeEvent); ok {
			h.cursorOK = false
			h.styleValid = false

			return re, true, nil
		}

		return ev, true, nil
	default:
	}

	select {
	case err := <-h.errs:
		return nil, false, err
	default:
		return nil, false, nil
	}
}

// Close stops reading input, resets terminal modes, leaves the alternate
// screen, and runs the restore function.
func (h *ANSIHost) Close() error {
	h.once.Do(func() {
		h.closed = true
		close(h.stop)

		if h.stopResize != nil {
			h.stopResize()
		}

		h.in.Cancel()

		h.out.WriteString(ansi.ResetStyle)
		h.out.WriteString(ansi.ResetModeMouseExtSgr)
		h.out.WriteString(ansi.ResetModeMouseAnyEvent)
		h.out.WriteString(ansi.ShowCursor)
		h.out.WriteString(ansi.ResetModeAltScreenSaveCursor)

		errs := []error{h.out.Flush()}
		if h.restore != nil {
			errs = append(errs, h.restore())
		}

		h.closeErr = errors.Join(errs...)
	})

	return h.closeErr
}

func (h *ANSIHost) readLoop() {
	defer h.in.Close()

	buf := make([]byte, 256)

	var pending []byte

	for {
		n, err := h.in.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)

			evs, used := DecodeInput(pending)
			pending = pending[:copy(pending, pending[used:])]

			if PendingEscape(pending) {
				evs = append(evs, KeyEvent{Key: KeyEscape})
				pending = pending[:0]
			}

			now := time.Now()
			for _, ev := range evs {
				if pe, ok := ev.(PointerEvent); ok {
					pe.At = now
					ev = pe
				}

				if !h.send(ev) {
					return
				}
			}
		}

		if err != nil {
			if errors.Is(err, cancelreader.ErrCanceled) {
				return
			}

			h.errs <- fmt.Errorf("%w: read input: %w", ErrDetached, err)

			return
		}
	}
}

func (h *ANSIHost) watchResize() {
	for {
		select {
		case <-h.stop:
			return

		case <-h.resizeSig:
			size, err := h.sizeFn()
			if err != nil || size.Empty() {
				continue
			}

			h.mu.Lock()
			h.size = size
			h.mu.Unlock()

			if !h.send(ResizeEvent{Size: size}) {
				return
			}
		}
	}
}

// send queues ev, reporting false once the host is closed.
func (h *ANSIHost) send(ev Event) bool {
	select {
	case h.events <- ev:
		return true
	case <-h.stop:
		return false
	}
}

// sgr returns the sequence selecting s, starting from a reset.
func sgr(s render.Style) string {
	st := ansi.Style{}.Reset()

	if s.Attrs&render.AttrBold != 0 {
		st = st.Bold()
	}

	if s.Attrs&render.AttrDim != 0 {
		st = st.Faint()
	}

	if s.Attrs&render.AttrReverse != 0 {
		st = st.Reverse(true)
	}

	if r, g, b, ok := s.Fg.RGB(); ok {
		st = st.ForegroundColor(ansi.RGBColor{R: r, G: g, B: b})
	}

	if r, g, b, ok := s.Bg.RGB(); ok {
		st = st.BackgroundColor(ansi.RGBColor{R: r, G: g, B: b})
	}

	return st.String()
}
