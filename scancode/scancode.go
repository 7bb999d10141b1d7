// Package scancode translates abstract keycodes into PS/2 set-2 scancodes.
//
// Most keys map to a single byte or to an E0-prefixed byte. Both fit the same
// byte-wide table: bit 0x80 marks the E0 prefix because no set-2 code in use
// needs it, with the exception of F7 (0x83). The value that would unpack to
// E0 03 is special-cased back to 0x83 since E0 03 does not exist.
package scancode

import (
	"fmt"

	"github.com/Alia5/overdrive/action"
	"github.com/Alia5/overdrive/keycode"
)

// Scancode is an unpacked set-2 scancode. Extended codes carry 0xE0 in the
// high byte.
type Scancode uint16

const (
	// PrefixExtended precedes extended codes.
	PrefixExtended byte = 0xE0
	// PrefixBreak precedes the code of a released key.
	PrefixBreak byte = 0xF0

	ext       = 0x80
	f7        = 0x83
	collision = Scancode(0xE003)
)

// Extended reports whether s needs the E0 prefix.
func (s Scancode) Extended() bool { return byte(s>>8) == PrefixExtended }

// Code returns the byte following any prefix.
func (s Scancode) Code() byte { return byte(s) }

// Make returns the bytes sent when the key goes down.
func (s Scancode) Make() []byte {
	if s.Extended() {
		return []byte{PrefixExtended, s.Code()}
	}
	return []byte{s.Code()}
}

// Break returns the bytes sent when the key goes up.
func (s Scancode) Break() []byte {
	if s.Extended() {
		return []byte{PrefixExtended, PrefixBreak, s.Code()}
	}
	return []byte{PrefixBreak, s.Code()}
}

// Bytes returns Make or Break depending on pressed.
func (s Scancode) Bytes(pressed bool) []byte {
	if pressed {
		return s.Make()
	}
	return s.Break()
}

func (s Scancode) String() string {
	if s.Extended() {
		return fmt.Sprintf("E0 %02X", s.Code())
	}
	return fmt.Sprintf("%02X", s.Code())
}

// Unpack expands a compressed table byte.
func Unpack(c byte) Scancode {
	if c&ext == 0 {
		return Scancode(c)
	}
	s := Scancode(PrefixExtended)<<8 | Scancode(c&^ext)
	if s == collision {
		return f7
	}
	return s
}

// Compressed returns the raw table byte for kc, or 0 when kc has no entry.
func Compressed(kc keycode.Code) byte {
	return table[kc]
}

// Encode looks up the scancode for kc. It reports false for keycodes with no
// table entry, including the multi-byte keys handled by Multibyte.
func Encode(kc keycode.Code) (Scancode, bool) {
	c := table[kc]
	if c == 0 {
		return 0, false
	}
	return Unpack(c), true
}

// Decode returns the lowest keycode that encodes to s.
func Decode(s Scancode) (keycode.Code, bool) {
	kc, ok := reverse[s]
	return kc, ok
}

var reverse = func() map[Scancode]keycode.Code {
	m := make(map[Scancode]keycode.Code, len(table))
	for i := len(table) - 1; i > 0; i-- {
		if table[i] != 0 {
			m[Unpack(table[i])] = keycode.Code(i)
		}
	}
	return m
}()

var modifiers = [8]Scancode{
	0x14,   // LCTL
	0x11,   // LALT
	0x12,   // LSFT
	0xE01F, // LGUI
	0xE014, // RCTL
	0xE011, // RALT
	0x59,   // RSFT
	0xE027, // RGUI
}

// Modifier returns the scancodes for every modifier set in m, in
// ctrl, alt, shift, gui order. The right bit makes all of them right-hand.
func Modifier(m action.Mods) []Scancode {
	offset := 0
	if m.Right() {
		offset = 4
	}
	var out []Scancode
	for i := 0; i < 4; i++ {
		if m&(1<<i) != 0 {
			out = append(out, modifiers[offset+i])
		}
	}
	return out
}

// Missing lists the keycodes below SafeArea that neither the table nor
// Multibyte can emit.
func Missing() []keycode.Code {
	var out []keycode.Code
	for _, kc := range keycode.All() {
		if table[kc] != 0 {
			continue
		}
		if _, ok := Multibyte(kc); ok {
			continue
		}
		out = append(out, kc)
	}
	return out
}
