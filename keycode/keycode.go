// Package keycode defines the abstract keycode space used by keymaps.
//
// Keycodes are 8-bit values independent of any output protocol. The scancode
// package translates them into PS/2 set-2 scancodes.
package keycode

import (
	"fmt"
	"strconv"
	"strings"
)

// Code is an abstract keycode. It occupies the low byte of an action word.
type Code uint8

// No is the no-op keycode.
const No Code = 0

// Keycodes in table order. The numbering is part of the keymap file format and
// the scancode table layout, so new codes may only be appended before SafeArea.
const (
	KeyA Code = iota + 1
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	KeyBackspace
	KeyBackslash
	KeyCapsLock
	KeyComma
	KeyInsert
	KeyDelete
	KeyDot
	KeyDown
	KeyEnd
	KeyEnter
	KeyEqual
	KeyEscape
	KeyGrave
	KeyHome
	KeyLeftAlt
	KeyLeftBracket
	KeyLeftCtrl
	KeyLeft
	KeyLeftShift
	KeyLeftGUI
	KeyRightGUI
	KeyApplication
	KeyMinus
	KeyNumLock
	KeyNonUSBackslash
	KeyQuote
	KeyRightAlt
	KeyRightBracket
	KeyRightCtrl
	KeyRight
	KeyRightShift
	KeySemicolon
	KeySlash
	KeySpace
	KeyTab
	KeyUp

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	KeyKp0
	KeyKp1
	KeyKp2
	KeyKp3
	KeyKp4
	KeyKp5
	KeyKp6
	KeyKp7
	KeyKp8
	KeyKp9
	KeyKpAsterisk
	KeyKpDot
	KeyKpEnter
	KeyPageDown
	KeyPageUp
	KeyKpInsert
	KeyKpMinus
	KeyKpPlus
	KeyKpSlash

	KeyMediaSelect
	KeyMediaNext
	KeyMediaPrevious
	KeyMediaPlayPause

	KeyVolumeDown
	KeyVolumeUp
	KeyMute

	KeyPause
	KeyCtrlBreak
	KeyPrintScreen
	KeyScrollLock

	KeyBrightnessDown
	KeyBrightnessUp
	KeyRfkill

	// SafeArea is the first keycode free for board or user defined keys.
	SafeArea
)

// Aliases.
const (
	KeyLeftWin  = KeyLeftGUI
	KeyRightWin = KeyRightGUI
)

var names = map[Code]string{
	No: "NO",

	KeyA: "A", KeyB: "B", KeyC: "C", KeyD: "D", KeyE: "E", KeyF: "F", KeyG: "G",
	KeyH: "H", KeyI: "I", KeyJ: "J", KeyK: "K", KeyL: "L", KeyM: "M", KeyN: "N",
	KeyO: "O", KeyP: "P", KeyQ: "Q", KeyR: "R", KeyS: "S", KeyT: "T", KeyU: "U",
	KeyV: "V", KeyW: "W", KeyX: "X", KeyY: "Y", KeyZ: "Z",

	Key0: "0", Key1: "1", Key2: "2", Key3: "3", Key4: "4",
	Key5: "5", Key6: "6", Key7: "7", Key8: "8", Key9: "9",

	KeyBackspace:      "BS",
	KeyBackslash:      "BSLS",
	KeyCapsLock:       "CAPS",
	KeyComma:          "COMM",
	KeyInsert:         "INS",
	KeyDelete:         "DEL",
	KeyDot:            "DOT",
	KeyDown:           "DOWN",
	KeyEnd:            "END",
	KeyEnter:          "ENT",
	KeyEqual:          "EQL",
	KeyEscape:         "ESC",
	KeyGrave:          "GRV",
	KeyHome:           "HOME",
	KeyLeftAlt:        "LALT",
	KeyLeftBracket:    "LBRC",
	KeyLeftCtrl:       "LCTL",
	KeyLeft:           "LEFT",
	KeyLeftShift:      "LSFT",
	KeyLeftGUI:        "LGUI",
	KeyRightGUI:       "RGUI",
	KeyApplication:    "APP",
	KeyMinus:          "MINS",
	KeyNumLock:        "NLCK",
	KeyNonUSBackslash: "NUBS",
	KeyQuote:          "QUOT",
	KeyRightAlt:       "RALT",
	KeyRightBracket:   "RBRC",
	KeyRightCtrl:      "RCTL",
	KeyRight:          "RGHT",
	KeyRightShift:     "RSFT",
	KeySemicolon:      "SCLN",
	KeySlash:          "SLSH",
	KeySpace:          "SPC",
	KeyTab:            "TAB",
	KeyUp:             "UP",

	KeyF1: "F1", KeyF2: "F2", KeyF3: "F3", KeyF4: "F4", KeyF5: "F5", KeyF6: "F6",
	KeyF7: "F7", KeyF8: "F8", KeyF9: "F9", KeyF10: "F10", KeyF11: "F11", KeyF12: "F12",

	KeyKp0: "KP_0", KeyKp1: "KP_1", KeyKp2: "KP_2", KeyKp3: "KP_3", KeyKp4: "KP_4",
	KeyKp5: "KP_5", KeyKp6: "KP_6", KeyKp7: "KP_7", KeyKp8: "KP_8", KeyKp9: "KP_9",
	KeyKpAsterisk: "PAST",
	KeyKpDot:      "PDOT",
	KeyKpEnter:    "PENT",
	KeyPageDown:   "PGDN",
	KeyPageUp:     "PGUP",
	KeyKpInsert:   "PINS",
	KeyKpMinus:    "PMNS",
	KeyKpPlus:     "PPLS",
	KeyKpSlash:    "PSLS",

	KeyMediaSelect:    "MSEL",
	KeyMediaNext:      "MNXT",
	KeyMediaPrevious:  "MPRV",
	KeyMediaPlayPause: "MPLY",

	KeyVolumeDown: "VOLD",
	KeyVolumeUp:   "VOLU",
	KeyMute:       "MUTE",

	KeyPause:       "PAUS",
	KeyCtrlBreak:   "CTBR",
	KeyPrintScreen: "PSCR",
	KeyScrollLock:  "SLCK",

	KeyBrightnessDown: "BRND",
	KeyBrightnessUp:   "BRNU",
	KeyRfkill:         "RFKL",
}

var aliases = map[string]Code{
	"LWIN":  KeyLeftWin,
	"RWIN":  KeyRightWin,
	"MENU":  KeyApplication,
	"BSPC":  KeyBackspace,
	"ENTER": KeyEnter,
	"SPACE": KeySpace,
}

var byName = func() map[string]Code {
	m := make(map[string]Code, len(names)+len(aliases))
	for c, n := range names {
		m[n] = c
	}
	for n, c := range aliases {
		m[n] = c
	}
	return m
}()

// Name returns the short name of a keycode without the KC_ prefix, or a hex
// literal for codes outside the known table.
func (c Code) Name() string {
	if n, ok := names[c]; ok {
		return n
	}
	return fmt.Sprintf("0x%02X", uint8(c))
}

func (c Code) String() string {
	if n, ok := names[c]; ok {
		return "KC_" + n
	}
	return c.Name()
}

// Known reports whether c is one of the predefined keycodes.
func (c Code) Known() bool {
	_, ok := names[c]
	return ok
}

// Parse looks up a keycode by name. The KC_ prefix is optional and matching is
// case-insensitive; decimal and 0x-prefixed hex literals are accepted as well.
func Parse(s string) (Code, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	name = strings.TrimPrefix(name, "KC_")
	if c, ok := byName[name]; ok {
		return c, nil
	}
	if n, err := strconv.ParseUint(name, 0, 8); err == nil {
		return Code(n), nil
	}
	return No, fmt.Errorf("unknown keycode %q", s)
}

// All returns every predefined keycode below SafeArea in ascending order.
func All() []Code {
	out := make([]Code, 0, int(SafeArea)-1)
	for c := KeyA; c < SafeArea; c++ {
		out = append(out, c)
	}
	return out
}
