package keymap

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Alia5/overdrive/action"
	"github.com/Alia5/overdrive/layer"
	"gopkg.in/yaml.v3"
)

// File is the YAML form of a keymap. Each layer is a list of rows; a row is a
// whitespace separated list of action expressions.
//
//	layout: iso
//	layers:
//	  - - ESC F1 F2 ...
//	    - GRV 1 2 ...
type File struct {
	Layout string     `yaml:"layout"`
	Layers [][]string `yaml:"layers"`
}

// Load decodes a YAML keymap. Expressions are parsed with action.Parse, names
// resolving custom keycodes.
func Load(r io.Reader, names action.Names) (*Keymap, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode keymap: %w", err)
	}
	return f.Keymap(names)
}

// LoadFile is Load for a file path.
func LoadFile(path string, names action.Names) (*Keymap, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open keymap: %w", err)
	}
	defer fh.Close()
	km, err := Load(fh, names)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return km, nil
}

// Keymap builds the keymap described by f.
func (f File) Keymap(names action.Names) (*Keymap, error) {
	if f.Layout == "" {
		f.Layout = LayoutISO.Name
	}
	lo, err := Lookup(f.Layout)
	if err != nil {
		return nil, err
	}
	if len(f.Layers) == 0 {
		return nil, fmt.Errorf("keymap has no layers")
	}
	if len(f.Layers) > layer.Max {
		return nil, fmt.Errorf("keymap has %d layers, at most %d supported", len(f.Layers), layer.Max)
	}

	layers := make([]Layer, 0, len(f.Layers))
	for i, rows := range f.Layers {
		var words []action.Word
		for _, row := range rows {
			for _, expr := range strings.Fields(row) {
				w, err := action.Parse(expr, names)
				if err != nil {
					return nil, fmt.Errorf("layer %d: %w", i, err)
				}
				words = append(words, w)
			}
		}
		l, err := lo.Build(words...)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		layers = append(layers, l)
	}
	return New(layers...), nil
}
