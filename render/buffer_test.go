package render_test

import (
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/ferrisfollow/geom"
	"go.jacobcolvin.com/ferrisfollow/render"
	"go.jacobcolvin.com/ferrisfollow/stringtest"
)

func TestBufferSetOutOfBounds(t *testing.T) {
	t.Parallel()

	b := render.NewBuffer(geom.Size{Width: 3, Height: 2})

	assert.False(t, b.Set(geom.Position{X: 3, Y: 0}, render.Cell{Rune: 'x'}))
	assert.False(t, b.Set(geom.Position{X: 0, Y: -1}, render.Cell{Rune: 'x'}))
	assert.True(t, b.Set(geom.Position{X: 2, Y: 1}, render.Cell{Rune: 'x'}))
	assert.True(t, b.At(geom.Position{X: 9, Y: 9}).Blank())
	assert.Equal(t, stringtest.JoinLF("", "  x"), b.String())
}

func TestBufferSetRune(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		setup  func(*render.Buffer)
		want   string
		pos    geom.Position
		r      rune
		wantAt int
	}{
		"narrow": {
			pos:    geom.Position{X: 1, Y: 0},
			r:      'a',
			want:   " a",
			wantAt: 1,
		},
		"wide shifted from right edge": {
			pos:    geom.Position{X: 5, Y: 0},
			r:      '🦀',
			want:   "    🦀",
			wantAt: 4,
		},
		"overwrite right half of wide": {
			setup: func(b *render.Buffer) {
				b.SetRune(geom.Position{X: 0, Y: 0}, '🦀', render.Style{})
			},
			pos:    geom.Position{X: 1, Y: 0},
			r:      'b',
			want:   " b",
			wantAt: 1,
		},
		"overwrite left half of wide": {
			setup: func(b *render.Buffer) {
				b.SetRune(geom.Position{X: 2, Y: 0}, '🦀', render.Style{})
			},
			pos:    geom.Position{X: 2, Y: 0},
			r:      'c',
			want:   "  c",
			wantAt: 2,
		},
		"row out of bounds": {
			pos:    geom.Position{X: 0, Y: 1},
			r:      'a',
			want:   "",
			wantAt: -1,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			b := render.NewBuffer(geom.Size{Width: 6, Height: 1})
			if tc.setup != nil {
				tc.setup(b)
			}

			got := b.SetRune(tc.pos, tc.r, render.Style{})
			assert.Equal(t, tc.wantAt, got)
			assert.Equal(t, tc.want, b.String())
		})
	}
}

func TestBufferSetString(t *testing.T) {
	t.Parallel()

	b := render.NewBuffer(geom.Size{Width: 8, Height: 1})

	n := b.SetString(geom.Position{X: 1, Y: 0}, "abc", render.Style{})
	assert.Equal(t, 3, n)
	assert.Equal(t, " abc", b.String())

	b.Clear()

	n = b.SetString(geom.Position{X: 0, Y: 0}, "a very long status line", render.Style{})
	assert.LessOrEqual(t, n, 8)
	assert.LessOrEqual(t, runewidth.StringWidth(b.String()), 8)
}

func TestBufferResizeBlanks(t *testing.T) {
	t.Parallel()

	b := render.NewBuffer(geom.Size{Width: 4, Height: 4})
	b.Set(geom.Position{X: 1, Y: 1}, render.Cell{Rune: 'x'})

	b.Resize(geom.Size{Width: 2, Height: 2})
	assert.Equal(t, geom.Size{Width: 2, Height: 2}, b.Size())
	assert.Equal(t, stringtest.JoinLF("", ""), b.String())

	b.Resize(geom.Size{Width: -1, Height: 3})
	assert.Equal(t, 0, b.Size().Area())
}

func TestColorBlend(t *testing.T) {
	t.Parallel()

	black := render.RGB(0, 0, 0)
	white := render.RGB(0xFF, 0xFF, 0xFF)

	assert.Equal(t, black, black.Blend(white, 0))
	assert.Equal(t, white, black.Blend(white, 1))
	assert.Equal(t, render.RGB(0x80, 0x80, 0x80), black.Blend(white, 0.5))
	assert.Equal(t, white, render.ColorDefault.Blend(white, 0.3))

	r, g, b, ok := render.RGB(1, 2, 3).RGB()
	assert.True(t, ok)
	assert.Equal(t, []uint8{1, 2, 3}, []uint8{r, g, b})

	_, _, _, ok = render.ColorDefault.RGB()
	assert.False(t, ok)
	assert.Equal(t, uint32(0x010203), render.RGB(1, 2, 3).Hex())
}
