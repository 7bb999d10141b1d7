// Package framework supports the Framework laptop keyboard: its keymap, the
// FN and backlight keys, the caps-lock LED and FN lock persistence.
package framework

import (
	"fmt"
	"strings"

	"github.com/Alia5/overdrive/action"
	"github.com/Alia5/overdrive/keycode"
	"github.com/Alia5/overdrive/keymap"
)

// Layers.
const (
	LayerBase uint8 = iota
	LayerFnAny
	LayerFnPressed
)

// Board specific keycodes.
const (
	KeyBacklight = keycode.SafeArea
	KeyFn        = keycode.SafeArea + 1
)

var (
	Backlight = action.Key(KeyBacklight)
	Fn        = action.Key(KeyFn)
	FnLock    = action.TG(LayerFnAny)
	Project   = action.Mod(action.LGUI, keycode.KeyP) // Win+P
)

// Names lets keymap files use the board keycodes.
var Names = action.Names{
	"FK_BKLT": Backlight,
	"FK_FN":   Fn,
	"FK_FLCK": FnLock,
	"FK_PROJ": Project,
}

const baseISO = `
ESC     F1   F2   F3   F4   F5   F6   F7   F8   F9   F10  F11  F12  DEL
GRV     1    2    3    4    5    6    7    8    9    0    MINS EQL  BS
TAB     Q    W    E    R    T    Y    U    I    O    P    LBRC RBRC
CAPS    A    S    D    F    G    H    J    K    L    SCLN QUOT BSLS ENT
LSFT    NUBS Z    X    C    V    B    N    M    COMM DOT  SLSH      RSFT
                                                          UP
LCTL    FK_FN LWIN LALT          SPC           RALT RCTL LEFT DOWN RGHT
`

const fnAnyISO = `
_______ MUTE VOLD VOLU MPRV MPLY MNXT BRND BRNU FK_PROJ RFKL PSCR MSEL _______
_______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______
_______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______
_______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______
_______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______
_______
_______ _______ _______ _______ _______ _______ _______ _______ _______ _______
`

const fnPressedISO = `
FK_FLCK _______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______ INS
_______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______
_______ _______ _______ _______ _______ _______ _______ _______ _______ _______ PAUS    _______ _______
_______ _______ _______ _______ _______ _______ _______ _______ SLCK    _______ _______ _______ _______ _______
_______ _______ _______ _______ _______ _______ CTBR    _______ _______ _______ _______ _______ _______
PGUP
_______ _______ _______ _______ FK_BKLT _______ _______ HOME    PGDN    END
`

// ANSI moves backslash above enter and has no key between left shift and Z.
const baseANSI = `
ESC     F1   F2   F3   F4   F5   F6   F7   F8   F9   F10  F11  F12  DEL
GRV     1    2    3    4    5    6    7    8    9    0    MINS EQL  BS
TAB     Q    W    E    R    T    Y    U    I    O    P    LBRC RBRC BSLS
CAPS    A    S    D    F    G    H    J    K    L    SCLN QUOT      ENT
LSFT         Z    X    C    V    B    N    M    COMM DOT  SLSH      RSFT
                                                          UP
LCTL    FK_FN LWIN LALT          SPC           RALT RCTL LEFT DOWN RGHT
`

const fnAnyANSI = `
_______ MUTE VOLD VOLU MPRV MPLY MNXT BRND BRNU FK_PROJ RFKL PSCR MSEL _______
_______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______
_______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______
_______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______
_______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______
_______
_______ _______ _______ _______ _______ _______ _______ _______ _______ _______
`

const fnPressedANSI = `
FK_FLCK _______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______ INS
_______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______ _______
_______ _______ _______ _______ _______ _______ _______ _______ _______ _______ PAUS    _______ _______ _______
_______ _______ _______ _______ _______ _______ _______ _______ SLCK    _______ _______ _______ _______
_______ _______ _______ _______ _______ CTBR    _______ _______ _______ _______ _______ _______
PGUP
_______ _______ _______ _______ FK_BKLT _______ _______ HOME    PGDN    END
`

func build(lo keymap.Layout, src string) keymap.Layer {
	fields := strings.Fields(src)
	words := make([]action.Word, len(fields))
	for i, f := range fields {
		w, err := action.Parse(f, Names)
		if err != nil {
			panic(fmt.Sprintf("framework %s keymap: %v", lo.Name, err))
		}
		words[i] = w
	}
	return lo.MustBuild(words...)
}

// KeymapISO returns the stock ISO keymap.
func KeymapISO() *keymap.Keymap {
	lo := keymap.LayoutISO
	return keymap.New(build(lo, baseISO), build(lo, fnAnyISO), build(lo, fnPressedISO))
}

// KeymapANSI returns the stock ANSI keymap.
func KeymapANSI() *keymap.Keymap {
	lo := keymap.LayoutANSI
	return keymap.New(build(lo, baseANSI), build(lo, fnAnyANSI), build(lo, fnPressedANSI))
}

// Keymaps maps built-in keymap names to constructors.
var Keymaps = map[string]func() *keymap.Keymap{
	"framework-iso":  KeymapISO,
	"framework-ansi": KeymapANSI,
}
