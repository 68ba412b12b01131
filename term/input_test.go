package term_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/ferrisfollow/geom"
	"go.jacobcolvin.com/ferrisfollow/term"
)

func TestDecodeInput(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input    string
		want     []term.Event
		consumed int
	}{
		"empty": {
			input: "",
		},
		"runes": {
			input: "hé",
			want: []term.Event{
				term.KeyEvent{Key: term.KeyRune, Rune: 'h'},
				term.KeyEvent{Key: term.KeyRune, Rune: 'é'},
			},
			consumed: 3,
		},
		"ctrl+c": {
			input:    "\x03",
			want:     []term.Event{term.KeyEvent{Key: term.KeyCtrlC}},
			consumed: 1,
		},
		"lone escape waits": {
			input:    "\x1b",
			consumed: 0,
		},
		"double escape": {
			input:    "\x1b\x1b",
			want:     []term.Event{term.KeyEvent{Key: term.KeyEscape}},
			consumed: 1,
		},
		"csi arrows": {
			input: "\x1b[A\x1b[B\x1b[C\x1b[D",
			want: []term.Event{
				term.KeyEvent{Key: term.KeyUp},
				term.KeyEvent{Key: term.KeyDown},
				term.KeyEvent{Key: term.KeyRight},
				term.KeyEvent{Key: term.KeyLeft},
			},
			consumed: 12,
		},
		"ss3 arrow": {
			input:    "\x1bOD",
			want:     []term.Event{term.KeyEvent{Key: term.KeyLeft}},
			consumed: 3,
		},
		"modified arrow dropped": {
			input:    "\x1b[1;5A",
			consumed: 6,
		},
		"sgr mouse motion": {
			input:    "\x1b[<35;8;3M",
			want:     []term.Event{term.PointerEvent{Pos: geom.Position{X: 7, Y: 2}}},
			consumed: 10,
		},
		"sgr mouse release": {
			input:    "\x1b[<0;1;1m",
			want:     []term.Event{term.PointerEvent{Pos: geom.Position{X: 0, Y: 0}}},
			consumed: 9,
		},
		"sgr wheel dropped": {
			input:    "\x1b[<64;10;10M",
			consumed: 12,
		},
		"incomplete sgr mouse": {
			input:    "q\x1b[<35;8",
			want:     []term.Event{term.KeyEvent{Key: term.KeyRune, Rune: 'q'}},
			consumed: 1,
		},
		"incomplete csi": {
			input:    "\x1b[",
			consumed: 0,
		},
		"incomplete utf-8": {
			input:    "\xf0\x9f",
			consumed: 0,
		},
		"malformed sgr params": {
			input:    "\x1b[<1;2M",
			consumed: 7,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, n := term.DecodeInput([]byte(tc.input))
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.consumed, n)
		})
	}
}

func TestDecodeInputSplitSequence(t *testing.T) {
	t.Parallel()

	full := []byte("\x1b[<35;12;4M")

	var got []term.Event

	pending := []byte{}
	for _, b := range full {
		pending = append(pending, b)

		evs, n := term.DecodeInput(pending)
		got = append(got, evs...)
		pending = pending[n:]
	}

	assert.Equal(t, []term.Event{term.PointerEvent{Pos: geom.Position{X: 11, Y: 3}}}, got)
	assert.Empty(t, pending)
}

func TestPendingEscape(t *testing.T) {
	t.Parallel()

	assert.True(t, term.PendingEscape([]byte{0x1b}))
	assert.False(t, term.PendingEscape([]byte("\x1b[")))
	assert.False(t, term.PendingEscape(nil))
}
