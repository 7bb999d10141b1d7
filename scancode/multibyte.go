package scancode

import "github.com/Alia5/overdrive/keycode"

// Sequence is a fixed byte sequence for a key that does not fit the table.
// A nil Break means the key only produces output on press.
type Sequence struct {
	Make  []byte
	Break []byte
}

var (
	seqPause = Sequence{
		Make: []byte{0xE1, 0x14, 0x77, 0xE1, 0xF0, 0x14, 0xF0, 0x77},
	}
	seqCtrlBreak = Sequence{
		Make: []byte{0xE0, 0x7E, 0xE0, 0xF0, 0x7E},
	}
	seqPrintScreen = Sequence{
		Make:  []byte{0xE0, 0x12, 0xE0, 0x7C},
		Break: []byte{0xE0, 0xF0, 0x7C, 0xE0, 0xF0, 0x12},
	}
)

// Multibyte returns the sequence for Pause, Ctrl+Break and PrintScreen.
func Multibyte(kc keycode.Code) (Sequence, bool) {
	switch kc {
	case keycode.KeyPause:
		return seqPause, true
	case keycode.KeyCtrlBreak:
		return seqCtrlBreak, true
	case keycode.KeyPrintScreen:
		return seqPrintScreen, true
	}
	return Sequence{}, false
}

// Bytes returns the bytes for an edge; nil when the edge emits nothing.
func (s Sequence) Bytes(pressed bool) []byte {
	if pressed {
		return s.Make
	}
	return s.Break
}
