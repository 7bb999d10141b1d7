// Package keymap holds layered keymaps and resolves matrix positions to action
// words.
package keymap

import (
	"github.com/Alia5/overdrive/action"
	"github.com/Alia5/overdrive/layer"
	"github.com/Alia5/overdrive/matrix"
)

// Layer is one overlay of the keymap, indexed by row then column.
type Layer [matrix.Rows][matrix.Cols]action.Word

// Transparent returns a layer with every cell transparent.
func Transparent() Layer {
	var l Layer
	for r := range l {
		for c := range l[r] {
			l[r][c] = action.Transparent
		}
	}
	return l
}

// Keymap is an immutable stack of layers.
type Keymap struct {
	layers []Layer
}

// New returns a keymap with the given layers, layer 0 first. Layers beyond
// layer.Max are ignored.
func New(layers ...Layer) *Keymap {
	if len(layers) > layer.Max {
		layers = layers[:layer.Max]
	}
	return &Keymap{layers: append([]Layer(nil), layers...)}
}

// Len returns the number of layers.
func (k *Keymap) Len() int { return len(k.layers) }

// At returns the cell at p on layer l. Layers beyond the table read as
// transparent, positions outside the matrix as NoOp.
func (k *Keymap) At(l uint8, p matrix.Position) action.Word {
	if !p.Valid() {
		return action.NoOp
	}
	if int(l) >= len(k.layers) {
		return action.Transparent
	}
	return k.layers[l][p.Row][p.Col]
}

// Resolve walks the layers in effective from the highest down and returns the
// first cell at p that is not transparent, together with its layer. When every
// layer is transparent it returns NoOp on the base layer.
func (k *Keymap) Resolve(p matrix.Position, effective layer.Mask) (action.Word, uint8) {
	for l := uint8(layer.Max); l > 0; l-- {
		if !effective.Has(l - 1) {
			continue
		}
		if w := k.At(l-1, p); w != action.Transparent {
			return w, l - 1
		}
	}
	return action.NoOp, layer.Base
}

// Each calls fn for every cell of every layer in layer, row, column order.
func (k *Keymap) Each(fn func(l uint8, p matrix.Position, w action.Word)) {
	for l := range k.layers {
		for r := uint8(0); r < matrix.Rows; r++ {
			for c := uint8(0); c < matrix.Cols; c++ {
				fn(uint8(l), matrix.Pos(r, c), k.layers[l][r][c])
			}
		}
	}
}
