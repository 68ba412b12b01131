package geom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/ferrisfollow/geom"
)

func TestSizeClamp(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		size geom.Size
		in   geom.Position
		want geom.Position
	}{
		"inside": {
			size: geom.Size{Width: 80, Height: 24},
			in:   geom.Position{X: 10, Y: 5},
			want: geom.Position{X: 10, Y: 5},
		},
		"negative": {
			size: geom.Size{Width: 80, Height: 24},
			in:   geom.Position{X: -3, Y: -100},
			want: geom.Position{X: 0, Y: 0},
		},
		"past edge": {
			size: geom.Size{Width: 80, Height: 24},
			in:   geom.Position{X: 80, Y: 24},
			want: geom.Position{X: 79, Y: 23},
		},
		"empty size": {
			size: geom.Size{},
			in:   geom.Position{X: 5, Y: 5},
			want: geom.Position{X: 0, Y: 0},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := tc.size.Clamp(tc.in)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSizeContains(t *testing.T) {
	t.Parallel()

	s := geom.Size{Width: 3, Height: 2}

	assert.True(t, s.Contains(geom.Position{X: 0, Y: 0}))
	assert.True(t, s.Contains(geom.Position{X: 2, Y: 1}))
	assert.False(t, s.Contains(geom.Position{X: 3, Y: 1}))
	assert.False(t, s.Contains(geom.Position{X: 0, Y: -1}))
	assert.Equal(t, 6, s.Area())
	assert.Equal(t, geom.Position{X: 1, Y: 1}, s.Center())
}

func TestSizeClampFloat(t *testing.T) {
	t.Parallel()

	s := geom.Size{Width: 80, Height: 24}

	x, y := s.ClampFloat(-0.5, 30.25)
	assert.InDelta(t, 0.0, x, 1e-9)
	assert.InDelta(t, 23.0, y, 1e-9)
}
