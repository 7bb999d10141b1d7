package keymap_test

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/Alia5/overdrive/action"
	"github.com/Alia5/overdrive/keycode"
	"github.com/Alia5/overdrive/keymap"
	"github.com/Alia5/overdrive/layer"
	"github.com/Alia5/overdrive/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	p := matrix.Pos(2, 3)
	base := keymap.Layer{}
	base[2][3] = action.Key(keycode.KeyA)
	l1 := keymap.Transparent()
	l2 := keymap.Transparent()
	l2[2][3] = action.Key(keycode.KeyB)
	km := keymap.New(base, l1, l2)

	cases := []struct {
		name  string
		mask  layer.Mask
		word  action.Word
		layer uint8
	}{
		{"base only", 0b001, action.Key(keycode.KeyA), 0},
		{"transparent layer falls through", 0b011, action.Key(keycode.KeyA), 0},
		{"top layer wins", 0b111, action.Key(keycode.KeyB), 2},
		{"beyond table", 0b1000_0001, action.Key(keycode.KeyA), 0},
		{"nothing active", 0, action.NoOp, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, l := km.Resolve(p, tc.mask)
			assert.Equal(t, tc.word, w)
			assert.Equal(t, tc.layer, l)
		})
	}
}

func TestResolveAllTransparent(t *testing.T) {
	km := keymap.New(keymap.Transparent(), keymap.Transparent())
	w, l := km.Resolve(matrix.Pos(0, 0), 0b11)
	assert.Equal(t, action.NoOp, w)
	assert.Equal(t, uint8(0), l)
}

// Masking out a transparent top layer never changes the result.
func TestTransparencyFallThrough(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	layers := make([]keymap.Layer, layer.Max)
	for i := range layers {
		for r := 0; r < matrix.Rows; r++ {
			for c := 0; c < matrix.Cols; c++ {
				if i > 0 && rng.Intn(2) == 0 {
					layers[i][r][c] = action.Transparent
				} else {
					layers[i][r][c] = action.Key(keycode.Code(rng.Intn(int(keycode.SafeArea))))
				}
			}
		}
	}
	km := keymap.New(layers...)

	for m := 0; m < 256; m++ {
		mask := layer.Mask(m)
		for r := uint8(0); r < matrix.Rows; r++ {
			for c := uint8(0); c < matrix.Cols; c++ {
				p := matrix.Pos(r, c)
				w, l := km.Resolve(p, mask)
				if mask == 0 {
					assert.Equal(t, action.NoOp, w)
					continue
				}
				top := mask.Top()
				if km.At(top, p) == action.Transparent {
					w2, l2 := km.Resolve(p, mask&^layer.Bit(top))
					assert.Equal(t, w2, w)
					assert.Equal(t, l2, l)
				} else {
					assert.Equal(t, top, l)
					assert.Equal(t, km.At(top, p), w)
				}
			}
		}
	}
}

func TestAt(t *testing.T) {
	km := keymap.New(keymap.Layer{})
	assert.Equal(t, action.NoOp, km.At(0, matrix.Pos(1, 1)))
	assert.Equal(t, action.Transparent, km.At(3, matrix.Pos(1, 1)))
	assert.Equal(t, action.NoOp, km.At(0, matrix.Pos(8, 1)))
	assert.Equal(t, 1, km.Len())
}

func TestLayouts(t *testing.T) {
	assert.Len(t, keymap.LayoutISO.Keys, 79)
	assert.Len(t, keymap.LayoutANSI.Keys, 78)

	for _, lo := range []keymap.Layout{keymap.LayoutISO, keymap.LayoutANSI} {
		seen := map[matrix.Position]bool{}
		for _, p := range lo.Keys {
			assert.True(t, p.Valid(), "%s: %s", lo.Name, p)
			assert.False(t, seen[p], "%s: duplicate %s", lo.Name, p)
			seen[p] = true
		}
	}
	// Escape sits at KSI5 / KSO7, the space bar at KSI4 / KSO1.
	assert.Equal(t, matrix.Pos(7, 5), keymap.LayoutISO.Keys[0])
	assert.Equal(t, matrix.Pos(1, 4), keymap.LayoutISO.Keys[73])
}

func TestBuildMismatch(t *testing.T) {
	_, err := keymap.LayoutANSI.Build(action.NoOp)
	assert.True(t, errors.Is(err, keymap.ErrLayoutMismatch))
	assert.Panics(t, func() { keymap.LayoutISO.MustBuild() })
}

func TestBuild(t *testing.T) {
	words := make([]action.Word, len(keymap.LayoutANSI.Keys))
	for i := range words {
		words[i] = action.Transparent
	}
	words[0] = action.Key(keycode.KeyEscape)
	l, err := keymap.LayoutANSI.Build(words...)
	require.NoError(t, err)
	assert.Equal(t, action.Key(keycode.KeyEscape), l[7][5])
	// A1 and P7 are not on the layout
	assert.Equal(t, action.NoOp, l[1][0])
	assert.Equal(t, action.NoOp, l[7][15])

	for i := range words {
		words[i] = action.Key(keycode.KeyA)
	}
	l, err = keymap.LayoutANSI.Build(words...)
	require.NoError(t, err)
	on := map[matrix.Position]bool{}
	for _, p := range keymap.LayoutANSI.Keys {
		on[p] = true
		assert.Equal(t, action.Key(keycode.KeyA), l[p.Row][p.Col], "%+v", p)
	}
	assert.Len(t, on, len(keymap.LayoutANSI.Keys), "duplicate layout positions")
	for r := uint8(0); r < matrix.Rows; r++ {
		for c := uint8(0); c < matrix.Cols; c++ {
			if !on[matrix.Pos(r, c)] {
				assert.Equal(t, action.NoOp, l[r][c], "row %d col %d", r, c)
			}
		}
	}
}

func yamlLayer(lo keymap.Layout, first, fill string) string {
	var b strings.Builder
	b.WriteString("  - - " + first)
	for i := 1; i < len(lo.Keys); i++ {
		b.WriteString(" " + fill)
	}
	b.WriteString("\n")
	return b.String()
}

func TestLoad(t *testing.T) {
	doc := "layout: ansi\nlayers:\n" +
		yamlLayer(keymap.LayoutANSI, "LT(1,KC_ESC)", "KC_A") +
		yamlLayer(keymap.LayoutANSI, "FK_X", "_______")
	names := action.Names{"FK_X": action.Key(keycode.SafeArea)}

	km, err := keymap.Load(strings.NewReader(doc), names)
	require.NoError(t, err)
	assert.Equal(t, 2, km.Len())
	assert.Equal(t, action.LT(1, keycode.KeyEscape), km.At(0, matrix.Pos(7, 5)))
	assert.Equal(t, action.Key(keycode.SafeArea), km.At(1, matrix.Pos(7, 5)))
	assert.Equal(t, action.Transparent, km.At(1, keymap.LayoutANSI.Keys[1]))
	assert.Equal(t, action.Key(keycode.KeyA), km.At(0, keymap.LayoutANSI.Keys[1]))
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"bad yaml", "layers: [:"},
		{"no layers", "layout: iso\n"},
		{"unknown layout", "layout: dvorak\nlayers:\n  - - A\n"},
		{"short layer", "layout: iso\nlayers:\n  - - A B C\n"},
		{"bad expr", "layout: ansi\nlayers:\n" + yamlLayer(keymap.LayoutANSI, "LT(1", "A")},
		{"too many layers", "layout: ansi\nlayers:\n" + strings.Repeat(yamlLayer(keymap.LayoutANSI, "A", "A"), layer.Max+1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := keymap.Load(strings.NewReader(tc.doc), nil)
			assert.Error(t, err)
		})
	}
}

func ExampleKeymap_Resolve() {
	base := keymap.Layer{}
	base[0][0] = action.Key(keycode.KeyA)
	km := keymap.New(base, keymap.Transparent())
	w, l := km.Resolve(matrix.Pos(0, 0), 0b11)
	fmt.Println(w, l)
	// Output: KC_A 0
}

func TestLoadRejectsLayerOutOfRange(t *testing.T) {
	for _, expr := range []string{"TG(9)", "MO(31)", "LT(8,KC_A)"} {
		t.Run(expr, func(t *testing.T) {
			doc := "layout: ansi\nlayers:\n" + yamlLayer(keymap.LayoutANSI, expr, "KC_A")
			_, err := keymap.Load(strings.NewReader(doc), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid layer")
		})
	}
}
