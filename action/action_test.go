package action_test

import (
	"testing"

	"github.com/Alia5/overdrive/action"
	"github.com/Alia5/overdrive/keycode"
	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	type testCase struct {
		name     string
		word     action.Word
		expected action.Action
	}

	cases := []testCase{
		{
			name:     "no-op",
			word:     action.NoOp,
			expected: action.Action{Op: action.OpPlain},
		},
		{
			name:     "transparent decodes as no-op",
			word:     action.Transparent,
			expected: action.Action{Op: action.OpPlain},
		},
		{
			name:     "plain key",
			word:     action.Key(keycode.KeyA),
			expected: action.Action{Op: action.OpPlain, Keycode: keycode.KeyA},
		},
		{
			name:     "plain key with modifier",
			word:     action.Mod(action.LGUI, keycode.KeyP),
			expected: action.Action{Op: action.OpPlain, Mods: action.LGUI, Keycode: keycode.KeyP},
		},
		{
			name:     "mod tap",
			word:     action.MT(action.RCtl, keycode.KeyEscape),
			expected: action.Action{Op: action.OpModTap, Mods: action.RCtl, Keycode: keycode.KeyEscape},
		},
		{
			name:     "layer tap",
			word:     action.LT(1, keycode.KeyA),
			expected: action.Action{Op: action.OpLayerTap, Layer: 1, Keycode: keycode.KeyA},
		},
		{
			name:     "momentary layer",
			word:     action.MO(2),
			expected: action.Action{Op: action.OpLayerTap, Layer: 2},
		},
		{
			name:     "layer toggle",
			word:     action.TG(1),
			expected: action.Action{Op: action.OpLayerToggle, Layer: 1},
		},
		{
			name:     "reserved opcode",
			word:     action.Word(0b100<<13 | 0x0142),
			expected: action.Action{Op: action.OpPlain},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, action.Decode(tc.word))
		})
	}
}

func TestEncodingBits(t *testing.T) {
	assert.Equal(t, action.Word(0x2101), action.MT(action.LCtl, keycode.KeyA))
	assert.Equal(t, action.Word(0x4101), action.LT(1, keycode.KeyA))
	assert.Equal(t, action.Word(0x6100), action.TG(1))
	assert.Equal(t, action.Word(0x0810), action.Mod(action.LGUI, keycode.KeyP))
	assert.Equal(t, action.OpSpecial, action.Transparent.Op())
}

func TestParse(t *testing.T) {
	extra := action.Names{
		"FK_FN":   action.Key(keycode.SafeArea + 1),
		"FK_FLCK": action.TG(1),
	}

	cases := []struct {
		expr     string
		expected action.Word
	}{
		{"KC_A", action.Key(keycode.KeyA)},
		{"a", action.Key(keycode.KeyA)},
		{"KC_NO", action.NoOp},
		{"_______", action.Transparent},
		{"KC_TRNS", action.Transparent},
		{"LT(1, KC_A)", action.LT(1, keycode.KeyA)},
		{"MT(LCTL|LSFT,KC_B)", action.MT(action.LCtl|action.LSft, keycode.KeyB)},
		{"MT(RSFT|LCTL,KC_B)", action.MT(action.RSft|action.RCtl, keycode.KeyB)},
		{"MO(2)", action.MO(2)},
		{"TG(1)", action.TG(1)},
		{"LGUI(KC_P)", action.Mod(action.LGUI, keycode.KeyP)},
		{"lwin(p)", action.Mod(action.LGUI, keycode.KeyP)},
		{"MOD(LCTL|LALT,KC_DEL)", action.Mod(action.LCtl|action.LAlt, keycode.KeyDelete)},
		{"FK_FN", action.Key(keycode.SafeArea + 1)},
		{"fk_flck", action.TG(1)},
		{"LT(2,FK_FN)", action.LT(2, keycode.SafeArea+1)},
		{"0x6100", action.TG(1)},
	}

	for _, tc := range cases {
		t.Run(tc.expr, func(t *testing.T) {
			w, err := action.Parse(tc.expr, extra)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, w)
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, expr := range []string{
		"",
		"KC_BOGUS",
		"LT(1,KC_A",
		"LT(1)",
		"MO(40)",
		"MO(31)",
		"TG(9)",
		"LT(8,KC_A)",
		"MT(XCTL,KC_A)",
		"FOO(KC_A)",
		"LT(1,FK_FLCK)",
	} {
		t.Run(expr, func(t *testing.T) {
			_, err := action.Parse(expr, action.Names{"FK_FLCK": action.TG(1)})
			assert.Error(t, err)
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	words := []action.Word{
		action.NoOp,
		action.Transparent,
		action.Key(keycode.KeyEscape),
		action.Mod(action.LGUI, keycode.KeyP),
		action.Mod(action.RCtl|action.RAlt, keycode.KeyDelete),
		action.MT(action.LSft, keycode.KeyZ),
		action.LT(3, keycode.KeySpace),
		action.MO(2),
		action.TG(1),
		action.Key(keycode.SafeArea),
	}
	for _, w := range words {
		t.Run(w.String(), func(t *testing.T) {
			back, err := action.Parse(w.String(), nil)
			assert.NoError(t, err)
			assert.Equal(t, w, back)
		})
	}
}

func TestModsString(t *testing.T) {
	assert.Equal(t, "LCTL|LSFT", (action.LCtl | action.LSft).String())
	assert.Equal(t, "RGUI", action.RGUI.String())
	assert.True(t, action.RGUI.Right())
	assert.True(t, (action.LCtl | action.LAlt).Has(action.RCtl))
	assert.False(t, action.LCtl.Has(action.LAlt))
}
