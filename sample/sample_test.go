package sample_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/ferrisfollow/geom"
	"go.jacobcolvin.com/ferrisfollow/sample"
	"go.jacobcolvin.com/ferrisfollow/term"
)

var epoch = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

// fakeSource returns queued events, then err once the queue is empty.
type fakeSource struct {
	err    error
	events []term.Event
	polls  int
}

func (f *fakeSource) Poll() (term.Event, bool, error) {
	f.polls++

	if len(f.events) == 0 {
		return nil, false, f.err
	}

	ev := f.events[0]
	f.events = f.events[1:]

	return ev, true, nil
}

func pointer(x, y int) term.PointerEvent {
	return term.PointerEvent{Pos: geom.Position{X: x, Y: y}, At: epoch}
}

func key(r rune) term.KeyEvent {
	return term.KeyEvent{Key: term.KeyRune, Rune: r}
}

func TestSampleLatestWins(t *testing.T) {
	t.Parallel()

	src := &fakeSource{events: []term.Event{pointer(1, 1), pointer(5, 2), pointer(9, 3)}}
	s := sample.New(src)

	ev, ok, err := s.Sample()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, geom.Position{X: 9, Y: 3}, ev.Pos)
	assert.Equal(t, epoch, ev.At)
	assert.Empty(t, src.events)

	_, ok, err = s.Sample()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSampleKeyboard(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		events []term.Event
		want   geom.Position
		ok     bool
	}{
		"arrow": {
			events: []term.Event{term.KeyEvent{Key: term.KeyRight}},
			want:   geom.Position{X: 11, Y: 5},
			ok:     true,
		},
		"vi keys": {
			events: []term.Event{key('h'), key('h'), key('k')},
			want:   geom.Position{X: 8, Y: 4},
			ok:     true,
		},
		"stride": {
			events: []term.Event{key('L'), key('J')},
			want:   geom.Position{X: 13, Y: 8},
			ok:     true,
		},
		"from pointer": {
			events: []term.Event{pointer(2, 2), term.KeyEvent{Key: term.KeyDown}},
			want:   geom.Position{X: 2, Y: 3},
			ok:     true,
		},
		"clamped to bounds": {
			events: []term.Event{key('K'), key('K'), key('K')},
			want:   geom.Position{X: 10, Y: 0},
			ok:     true,
		},
		"other keys ignored": {
			events: []term.Event{key('x'), term.KeyEvent{Key: term.KeyOther}},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			src := &fakeSource{events: tc.events}
			s := sample.New(src,
				sample.WithOrigin(geom.Position{X: 10, Y: 5}),
				sample.WithBounds(geom.Size{Width: 20, Height: 10}),
				sample.WithStride(3),
				sample.WithClock(func() time.Time { return epoch }),
			)

			ev, ok, err := s.Sample()
			require.NoError(t, err)
			assert.Equal(t, tc.ok, ok)

			if tc.ok {
				assert.Equal(t, tc.want, ev.Pos)
				assert.Equal(t, epoch, ev.At)
			}

			assert.False(t, s.QuitRequested())
		})
	}
}

func TestSampleQuit(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		ev term.Event
	}{
		"q":      {ev: key('q')},
		"escape": {ev: term.KeyEvent{Key: term.KeyEscape}},
		"ctrl+c": {ev: term.KeyEvent{Key: term.KeyCtrlC}},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s := sample.New(&fakeSource{events: []term.Event{pointer(3, 3), tc.ev}})

			ev, ok, err := s.Sample()
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, geom.Position{X: 3, Y: 3}, ev.Pos)
			assert.True(t, s.QuitRequested())
		})
	}
}

func TestSampleResized(t *testing.T) {
	t.Parallel()

	src := &fakeSource{events: []term.Event{
		term.ResizeEvent{Size: geom.Size{Width: 100, Height: 40}},
		term.ResizeEvent{Size: geom.Size{Width: 60, Height: 20}},
	}}
	s := sample.New(src)

	_, ok := s.Resized()
	assert.False(t, ok)

	_, ok, err := s.Sample()
	require.NoError(t, err)
	assert.False(t, ok)

	size, ok := s.Resized()
	require.True(t, ok)
	assert.Equal(t, geom.Size{Width: 60, Height: 20}, size)

	_, ok = s.Resized()
	assert.False(t, ok)
}

func TestSampleReservedRows(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		size geom.Size
		want geom.Position
	}{
		"status row kept free": {
			size: geom.Size{Width: 20, Height: 5},
			want: geom.Position{X: 10, Y: 3},
		},
		"single row terminal": {
			size: geom.Size{Width: 20, Height: 1},
			want: geom.Position{X: 10, Y: 0},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			src := &fakeSource{events: []term.Event{
				term.ResizeEvent{Size: tc.size},
				key('j'), key('j'), key('j'), key('j'), key('j'),
			}}
			s := sample.New(src,
				sample.WithOrigin(geom.Position{X: 10, Y: 0}),
				sample.WithReservedRows(1),
			)

			ev, ok, err := s.Sample()
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tc.want, ev.Pos)

			size, ok := s.Resized()
			require.True(t, ok)
			assert.Equal(t, tc.size, size, "resize reports the full terminal")
		})
	}
}

func TestSampleSetBounds(t *testing.T) {
	t.Parallel()

	src := &fakeSource{}
	s := sample.New(src,
		sample.WithOrigin(geom.Position{X: 30, Y: 15}),
		sample.WithBounds(geom.Size{Width: 40, Height: 20}),
	)

	s.SetBounds(geom.Size{Width: 10, Height: 4})

	src.events = []term.Event{key('k')}

	ev, ok, err := s.Sample()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, geom.Position{X: 9, Y: 2}, ev.Pos)
}

func TestSamplePointerWithoutTimestamp(t *testing.T) {
	t.Parallel()

	src := &fakeSource{events: []term.Event{term.PointerEvent{Pos: geom.Position{X: 1, Y: 2}}}}
	s := sample.New(src, sample.WithClock(func() time.Time { return epoch }))

	ev, ok, err := s.Sample()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, epoch, ev.At)
}

func TestSampleSourceError(t *testing.T) {
	t.Parallel()

	cause := errors.New("read /dev/tty: input/output error")
	src := &fakeSource{err: cause}
	s := sample.New(src)

	_, ok, err := s.Sample()
	assert.False(t, ok)
	require.ErrorIs(t, err, sample.ErrSampler)
	require.ErrorIs(t, err, cause)
}

func TestSampleStopsWhenDrained(t *testing.T) {
	t.Parallel()

	src := &fakeSource{events: []term.Event{pointer(4, 4)}}

	var _ sample.Source = term.Host(nil)

	s := sample.New(src)

	ev, ok, err := s.Sample()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, geom.Position{X: 4, Y: 4}, ev.Pos)
	assert.Equal(t, 2, src.polls)
}
