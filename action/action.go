// Package action encodes and decodes keymap action words.
//
// An action word is 16 bits wide:
//
//	bits 15..13  opcode
//	bits 12..8   modifier set or layer index
//	bits  7..0   base keycode
//
// Two sentinel words are reserved: NoOp (0) and Transparent (0xFFFF). The
// latter defers resolution to the next lower active layer.
package action

import (
	"fmt"

	"github.com/Alia5/overdrive/keycode"
)

// Word is an encoded keymap cell.
type Word uint16

// Op is the 3-bit opcode of an action word.
type Op uint8

const (
	// OpPlain emits a keycode, optionally wrapped in modifiers.
	OpPlain Op = 0b000
	// OpModTap is a modifier when held and a keycode when tapped.
	OpModTap Op = 0b001
	// OpLayerTap is a momentary layer when held and a keycode when tapped.
	OpLayerTap Op = 0b010
	// OpLayerToggle inverts a layer on press.
	OpLayerToggle Op = 0b011
	// OpSpecial is reserved. Transparent lives in this opcode range.
	OpSpecial Op = 0b111
)

const (
	opShift    = 13
	fieldShift = 8
	fieldMask  = 0x1f
	codeMask   = 0xff
)

const (
	NoOp        Word = 0
	Transparent Word = 0xFFFF
)

func (o Op) String() string {
	switch o {
	case OpPlain:
		return "plain"
	case OpModTap:
		return "mod-tap"
	case OpLayerTap:
		return "layer-tap"
	case OpLayerToggle:
		return "layer-toggle"
	default:
		return fmt.Sprintf("reserved(%d)", uint8(o))
	}
}

// Action is the decoded form of a Word.
type Action struct {
	Op      Op
	Mods    Mods
	Layer   uint8
	Keycode keycode.Code
}

// Op returns the raw opcode bits.
func (w Word) Op() Op { return Op((w >> opShift) & 0x7) }

// Field returns the 5-bit modifier or layer field.
func (w Word) Field() uint8 { return uint8((w >> fieldShift) & fieldMask) }

// Keycode returns the base keycode.
func (w Word) Keycode() keycode.Code { return keycode.Code(w & codeMask) }

// Decode splits w into its opcode and payload. Reserved opcodes, including the
// Transparent sentinel, decode as a plain no-op.
func Decode(w Word) Action {
	switch op := w.Op(); op {
	case OpPlain, OpModTap:
		return Action{Op: op, Mods: Mods(w.Field()), Keycode: w.Keycode()}
	case OpLayerTap:
		return Action{Op: op, Layer: w.Field(), Keycode: w.Keycode()}
	case OpLayerToggle:
		return Action{Op: op, Layer: w.Field()}
	default:
		return Action{Op: OpPlain}
	}
}

func encode(op Op, field uint8, kc keycode.Code) Word {
	return Word(op)<<opShift | Word(field&fieldMask)<<fieldShift | Word(kc)
}

// Key is a plain keycode.
func Key(kc keycode.Code) Word { return encode(OpPlain, 0, kc) }

// Mod is a plain keycode sent with the modifiers held around it.
func Mod(m Mods, kc keycode.Code) Word { return encode(OpPlain, uint8(m), kc) }

// ModTap sends kc when tapped and holds m otherwise.
func ModTap(m Mods, kc keycode.Code) Word { return encode(OpModTap, uint8(m), kc) }

// LayerTap sends kc when tapped and activates layer while held.
func LayerTap(layer uint8, kc keycode.Code) Word { return encode(OpLayerTap, layer, kc) }

// LayerToggle inverts layer on every press.
func LayerToggle(layer uint8) Word { return encode(OpLayerToggle, layer, keycode.No) }

// QMK-style shorthands.
func MO(layer uint8) Word                  { return LayerTap(layer, keycode.No) }
func LT(layer uint8, kc keycode.Code) Word { return LayerTap(layer, kc) }
func TG(layer uint8) Word                  { return LayerToggle(layer) }
func MT(m Mods, kc keycode.Code) Word      { return ModTap(m, kc) }

// String renders w in the expression syntax accepted by Parse.
func (w Word) String() string {
	switch w {
	case Transparent:
		return "_______"
	case NoOp:
		return "KC_NO"
	}
	a := Decode(w)
	switch w.Op() {
	case OpPlain:
		if a.Mods == 0 {
			return a.Keycode.String()
		}
		if n, ok := singleModName(a.Mods); ok {
			return fmt.Sprintf("%s(%s)", n, a.Keycode)
		}
		return fmt.Sprintf("MOD(%s,%s)", a.Mods, a.Keycode)
	case OpModTap:
		return fmt.Sprintf("MT(%s,%s)", a.Mods, a.Keycode)
	case OpLayerTap:
		if a.Keycode == keycode.No {
			return fmt.Sprintf("MO(%d)", a.Layer)
		}
		return fmt.Sprintf("LT(%d,%s)", a.Layer, a.Keycode)
	case OpLayerToggle:
		return fmt.Sprintf("TG(%d)", a.Layer)
	default:
		return fmt.Sprintf("0x%04X", uint16(w))
	}
}
