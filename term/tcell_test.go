package term_test

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/ferrisfollow/geom"
	"go.jacobcolvin.com/ferrisfollow/render"
	"go.jacobcolvin.com/ferrisfollow/term"
)

func newSimHost(t *testing.T) (*term.TcellHost, tcell.SimulationScreen) {
	t.Helper()

	sim := tcell.NewSimulationScreen("UTF-8")

	h, err := term.NewTcellHost(sim)
	require.NoError(t, err)

	sim.SetSize(20, 5)

	t.Cleanup(func() {
		assert.NoError(t, h.Close())
	})

	return h, sim
}

// waitFor polls h until match accepts an event.
func waitFor(t *testing.T, h term.Host, match func(term.Event) bool) {
	t.Helper()

	require.Eventually(t, func() bool {
		for {
			ev, ok, err := h.Poll()
			if err != nil || !ok {
				return false
			}

			if match(ev) {
				return true
			}
		}
	}, time.Second, time.Millisecond)
}

// withoutTime zeroes pointer timestamps so events compare by value.
func withoutTime(ev term.Event) term.Event {
	if pe, ok := ev.(term.PointerEvent); ok {
		pe.At = time.Time{}

		return pe
	}

	return ev
}

func TestTcellHostDraws(t *testing.T) {
	t.Parallel()

	h, sim := newSimHost(t)

	assert.Equal(t, geom.Size{Width: 20, Height: 5}, h.Size())

	h.SetCell(geom.Position{X: 3, Y: 1}, render.Cell{
		Rune:  '@',
		Style: render.Style{Fg: render.RGB(0xF7, 0x4C, 0x00), Attrs: render.AttrBold},
	})
	h.SetCell(geom.Position{X: 4, Y: 1}, render.Cell{Rune: 'x', Cont: true})
	require.NoError(t, h.Show())

	cells, w, _ := sim.GetContents()
	cell := cells[1*w+3]

	assert.Equal(t, []rune{'@'}, cell.Runes)

	fg, _, attrs := cell.Style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(0xF7, 0x4C, 0x00), fg)
	assert.NotZero(t, attrs&tcell.AttrBold)
	assert.NotEqual(t, []rune{'x'}, cells[1*w+4].Runes)
}

func TestTcellHostPoll(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		inject func(*testing.T, tcell.SimulationScreen)
		want   term.Event
	}{
		"mouse motion": {
			inject: func(t *testing.T, s tcell.SimulationScreen) {
				s.InjectMouse(7, 2, tcell.ButtonNone, tcell.ModNone)
			},
			want: term.PointerEvent{Pos: geom.Position{X: 7, Y: 2}},
		},
		"rune key": {
			inject: func(t *testing.T, s tcell.SimulationScreen) {
				s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
			},
			want: term.KeyEvent{Key: term.KeyRune, Rune: 'q'},
		},
		"arrow key": {
			inject: func(t *testing.T, s tcell.SimulationScreen) {
				s.InjectKey(tcell.KeyLeft, 0, tcell.ModNone)
			},
			want: term.KeyEvent{Key: term.KeyLeft},
		},
		"ctrl+c": {
			inject: func(t *testing.T, s tcell.SimulationScreen) {
				s.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
			},
			want: term.KeyEvent{Key: term.KeyCtrlC},
		},
		"resize": {
			inject: func(t *testing.T, s tcell.SimulationScreen) {
				require.NoError(t, s.PostEvent(tcell.NewEventResize(30, 9)))
			},
			want: term.ResizeEvent{Size: geom.Size{Width: 30, Height: 9}},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			h, sim := newSimHost(t)

			tc.inject(t, sim)

			waitFor(t, h, func(ev term.Event) bool {
				return withoutTime(ev) == tc.want
			})
		})
	}
}

func TestTcellHostPollEmpty(t *testing.T) {
	t.Parallel()

	h, _ := newSimHost(t)

	// Poll never blocks, even with nothing queued.
	done := make(chan struct{})

	go func() {
		defer close(done)

		for range 100 {
			_, _, err := h.Poll()
			assert.NoError(t, err)
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Poll blocked")
	}
}

func TestTcellHostCloseIdempotent(t *testing.T) {
	t.Parallel()

	sim := tcell.NewSimulationScreen("UTF-8")

	h, err := term.NewTcellHost(sim)
	require.NoError(t, err)

	require.NoError(t, h.Close())
	require.NoError(t, h.Close())

	_, ok, err := h.Poll()
	require.NoError(t, err)
	assert.False(t, ok)
}
