package term

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"go.jacobcolvin.com/ferrisfollow/geom"
	"go.jacobcolvin.com/ferrisfollow/render"
)

// TcellHost is a [Host] backed by a [tcell.Screen].
//
// Create instances with [NewTcellHost].
type TcellHost struct {
	screen tcell.Screen
	events chan tcell.Event
	quit   chan struct{}
	once   sync.Once
	closed bool
}

// NewTcellHost initializes screen with mouse motion reporting and a hidden
// cursor, and starts forwarding its events.
func NewTcellHost(screen tcell.Screen) (*TcellHost, error) {
	err := screen.Init()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInit, err)
	}

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()
	screen.Clear()

	h := &TcellHost{
		screen: screen,
		events: make(chan tcell.Event, eventBuffer),
		quit:   make(chan struct{}),
	}

	go screen.ChannelEvents(h.events, h.quit)

	return h, nil
}

// Size returns the screen size in cells.
func (h *TcellHost) Size() geom.Size {
	w, ht := h.screen.Size()

	return geom.Size{Width: w, Height: ht}
}

// SetCell stages c at p. Continuation cells are skipped since tcell draws
// wide runes across both cells.
func (h *TcellHost) SetCell(p geom.Position, c render.Cell) {
	if c.Cont {
		return
	}

	r := c.Rune
	if r == 0 {
		r = ' '
	}

	h.screen.SetContent(p.X, p.Y, r, nil, tcellStyle(c.Style))
}

// Show presents staged cells.
func (h *TcellHost) Show() error {
	h.screen.Show()

	return nil
}

// Poll returns the next pending event. Events the program does not handle
// are skipped.
func (h *TcellHost) Poll() (Event, bool, error) {
	if h.closed {
		return nil, false, nil
	}

	for {
		select {
		case ev, ok := <-h.events:
			if !ok {
				return nil, false, ErrDetached
			}

			out, err := convertTcell(ev)
			if err != nil {
				return nil, false, err
			}

			if out != nil {
				return out, true, nil
			}

		default:
			return nil, false, nil
		}
	}
}

// Close stops event forwarding and restores the terminal.
func (h *TcellHost) Close() error {
	h.once.Do(func() {
		h.closed = true
		close(h.quit)
		h.screen.Fini()
	})

	return nil
}

func convertTcell(ev tcell.Event) (Event, error) {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		x, y := ev.Position()

		return PointerEvent{Pos: geom.Position{X: x, Y: y}, At: ev.When()}, nil

	case *tcell.EventResize:
		w, h := ev.Size()

		return ResizeEvent{Size: geom.Size{Width: w, Height: h}}, nil

	case *tcell.EventKey:
		return convertTcellKey(ev), nil

	case *tcell.EventError:
		return nil, fmt.Errorf("%w: %w", ErrDetached, ev)
	}

	return nil, nil
}

func convertTcellKey(ev *tcell.EventKey) KeyEvent {
	switch ev.Key() {
	case tcell.KeyRune:
		return KeyEvent{Key: KeyRune, Rune: ev.Rune()}
	case tcell.KeyUp:
		return KeyEvent{Key: KeyUp}
	case tcell.KeyDown:
		return KeyEvent{Key: KeyDown}
	case tcell.KeyLeft:
		return KeyEvent{Key: KeyLeft}
	case tcell.KeyRight:
		return KeyEvent{Key: KeyRight}
	case tcell.KeyEscape:
		return KeyEvent{Key: KeyEscape}
	case tcell.KeyCtrlC:
		return KeyEvent{Key: KeyCtrlC}
	}

	return KeyEvent{Key: KeyOther}
}

func tcellStyle(s render.Style) tcell.Style {
	st := tcell.StyleDefault

	if r, g, b, ok := s.Fg.RGB(); ok {
		st = st.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
	}

	if r, g, b, ok := s.Bg.RGB(); ok {
		st = st.Background(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
	}

	return st.
		Bold(s.Attrs&render.AttrBold != 0).
		Dim(s.Attrs&render.AttrDim != 0).
		Reverse(s.Attrs&render.AttrReverse != 0)
}
