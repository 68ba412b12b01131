package term

import (
	"unicode/utf8"

	"go.jacobcolvin.com/ferrisfollow/geom"
)

const esc = 0x1b

// DecodeInput decodes raw terminal input into events. It returns the events
// and the number of bytes consumed; an incomplete trailing sequence is left
// unconsumed so it can be completed by the next read.
//
// Recognized input: printable runes, Ctrl+C, Esc, arrow keys (CSI and SS3
// forms), and SGR (1006) mouse reports. Other sequences are consumed and
// dropped. A lone ESC at the end of data is left unconsumed; see
// [PendingEscape]. Pointer events carry no timestamp.
func DecodeInput(data []byte) ([]Event, int) {
	var events []Event

	i := 0
	for i < len(data) {
		b := data[i]

		switch {
		case b == esc:
			n, ev := decodeEscape(data[i:])
			if n == 0 {
				return events, i
			}

			if ev != nil {
				events = append(events, ev)
			}

			i += n

		case b == 0x03:
			events = append(events, KeyEvent{Key: KeyCtrlC})
			i++

		case b < 0x20 || b == 0x7f:
			events = append(events, KeyEvent{Key: KeyOther})
			i++

		case b < utf8.RuneSelf:
			events = append(events, KeyEvent{Key: KeyRune, Rune: rune(b)})
			i++

		default:
			if !utf8.FullRune(data[i:]) {
				return events, i
			}

			r, n := utf8.DecodeRune(data[i:])
			if r != utf8.RuneError {
				events = append(events, KeyEvent{Key: KeyRune, Rune: r})
			}

			i += n
		}
	}

	return events, i
}

// PendingEscape reports whether rest, the unconsumed input after a complete
// read, is a lone ESC. Terminals write escape sequences in one piece, so such
// a byte is the Esc key.
func PendingEscape(rest []byte) bool {
	return len(rest) == 1 && rest[0] == esc
}

// decodeEscape decodes the sequence starting at data[0] == ESC. It returns
// zero when more data is needed, and a nil event for sequences that are
// consumed but ignored.
func decodeEscape(data []byte) (int, Event) {
	if len(data) == 1 {
		return 0, nil
	}

	switch data[1] {
	case '[':
		return decodeCSI(data)
	case 'O':
		if len(data) < 3 {
			return 0, nil
		}

		return 3, arrowKey(data[2])
	case esc:
		return 1, KeyEvent{Key: KeyEscape}
	}

	// Alt+key.
	return 2, KeyEvent{Key: KeyOther}
}

func decodeCSI(data []byte) (int, Event) {
	if len(data) < 3 {
		return 0, nil
	}

	if data[2] == '<' {
		return decodeSGRMouse(data)
	}

	for end := 2; end < len(data); end++ {
		b := data[end]

		switch {
		case b >= 0x40 && b <= 0x7e:
			// Only unmodified arrows are reported.
			if end == 2 {
				return end + 1, arrowKey(b)
			}

			return end + 1, nil

		case b < 0x20 || b > 0x7e:
			// Malformed; drop the introducer.
			return 2, nil
		}
	}

	return 0, nil
}

func arrowKey(b byte) Event {
	switch b {
	case 'A':
		return KeyEvent{Key: KeyUp}
	case 'B':
		return KeyEvent{Key: KeyDown}
	case 'C':
		return KeyEvent{Key: KeyRight}
	case 'D':
		return KeyEvent{Key: KeyLeft}
	}

	return nil
}

// decodeSGRMouse decodes ESC [ < Btn ; X ; Y (M|m).
func decodeSGRMouse(data []byte) (int, Event) {
	end := 3
	for end < len(data) && data[end] != 'M' && data[end] != 'm' {
		if end >= 32 {
			return 3, nil
		}

		end++
	}

	if end >= len(data) {
		return 0, nil
	}

	btn, x, y, ok := parseSGRParams(data[3:end])
	if !ok || x < 1 || y < 1 {
		return end + 1, nil
	}

	// Wheel events do not move the pointer.
	if btn&64 != 0 {
		return end + 1, nil
	}

	return end + 1, PointerEvent{Pos: geom.Position{X: x - 1, Y: y - 1}}
}

// parseSGRParams parses "Btn;X;Y".
func parseSGRParams(data []byte) (btn, x, y int, ok bool) {
	var vals [3]int

	field := 0
	for _, b := range data {
		switch {
		case b == ';':
			field++
			if field > 2 {
				return 0, 0, 0, false
			}

		case b >= '0' && b <= '9':
			vals[field] = vals[field]*10 + int(b-'0')
			if vals[field] > 9999 {
				return 0, 0, 0, false
			}

		default:
			return 0, 0, 0, false
		}
	}

	if field != 2 {
		return 0, 0, 0, false
	}

	return vals[0], vals[1], vals[2], true
}
