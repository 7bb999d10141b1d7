package keymap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Alia5/overdrive/action"
	"github.com/Alia5/overdrive/matrix"
)

// ErrLayoutMismatch is returned when the number of words does not match the
// number of keys in a layout.
var ErrLayoutMismatch = errors.New("key count does not match layout")

// Layout lists the physical keys of a board in reading order.
type Layout struct {
	Name string
	Keys []matrix.Position
}

// Framework laptop matrix. Letters are columns (KSI0 = A), digits rows.
var (
	LayoutISO = Layout{Name: "iso", Keys: positions(`
		F7 F3 F2 E6 E3 K4 K3 K2 P1 L3 I4 I6 N3 B0
		C4 C5 F5 E5 G5 G4 H4 H5 K5 I5 N4 N2 O4 O5
		C3 C0 F6 E2 G6 G3 H3 H6 K6 I3 N5 N6 O6
		E4 C7 F4 O7 G7 G2 H2 H7 K7 I7 N7 O0 I2 O1
		J1 L5 F1 F0 A0 G0 G1 H1 H0 K0 I0 N0 J0
		N1
		M1 C2 B3 D1 E1 D0 M0 L6 I1 P2`)}

	LayoutANSI = Layout{Name: "ansi", Keys: positions(`
		F7 F3 F2 E6 E3 K4 K3 K2 P1 L3 I4 I6 N3 B0
		C4 C5 F5 E5 G5 G4 H4 H5 K5 I5 N4 N2 O4 O5
		C3 C0 F6 E2 G6 G3 H3 H6 K6 I3 N5 N6 O6 I2
		E4 C7 F4 O7 G7 G2 H2 H7 K7 I7 N7 O0 O1
		J1 F1 F0 A0 G0 G1 H1 H0 K0 I0 N0 J0
		N1
		M1 C2 B3 D1 E1 D0 M0 L6 I1 P2`)}
)

// Layouts maps layout names to layouts.
var Layouts = map[string]Layout{
	LayoutISO.Name:  LayoutISO,
	LayoutANSI.Name: LayoutANSI,
}

func positions(grid string) []matrix.Position {
	fields := strings.Fields(grid)
	out := make([]matrix.Position, len(fields))
	for i, f := range fields {
		out[i] = matrix.Pos(f[1]-'0', f[0]-'A')
	}
	return out
}

// Build places words on the layout's keys. Positions not on the layout are
// NoOp.
func (lo Layout) Build(words ...action.Word) (Layer, error) {
	var l Layer
	if len(words) != len(lo.Keys) {
		return l, fmt.Errorf("%w: %s has %d keys, got %d", ErrLayoutMismatch, lo.Name, len(lo.Keys), len(words))
	}
	for i, p := range lo.Keys {
		l[p.Row][p.Col] = words[i]
	}
	return l, nil
}

// MustBuild is Build for static keymaps; it panics on a count mismatch.
func (lo Layout) MustBuild(words ...action.Word) Layer {
	l, err := lo.Build(words...)
	if err != nil {
		panic(err)
	}
	return l
}

// Lookup returns the layout with the given name.
func Lookup(name string) (Layout, error) {
	lo, ok := Layouts[strings.ToLower(name)]
	if !ok {
		return Layout{}, fmt.Errorf("unknown layout %q", name)
	}
	return lo, nil
}
