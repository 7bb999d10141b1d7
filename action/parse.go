package action

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Alia5/overdrive/keycode"
	"github.com/Alia5/overdrive/layer"
)

// Names maps extra identifiers (board specific keycodes and macros) to words.
// Lookups are made with the upper-cased identifier.
type Names map[string]Word

// Parse reads an action expression such as "KC_A", "_______", "LT(1,KC_ESC)",
// "MT(LCTL|LSFT,KC_B)", "MO(2)", "TG(1)", "LGUI(KC_P)" or a raw 16-bit literal.
func Parse(s string, extra Names) (Word, error) {
	expr := strings.TrimSpace(s)
	if expr == "" {
		return NoOp, fmt.Errorf("empty action")
	}
	upper := strings.ToUpper(expr)
	switch upper {
	case "_______", "TRNS", "KC_TRNS", "KC_TRANSPARENT":
		return Transparent, nil
	}
	if w, ok := extra[upper]; ok {
		return w, nil
	}

	if open := strings.IndexByte(upper, '('); open > 0 {
		if !strings.HasSuffix(upper, ")") {
			return NoOp, fmt.Errorf("unterminated call in %q", s)
		}
		fn := strings.TrimSpace(upper[:open])
		args := strings.Split(upper[open+1:len(upper)-1], ",")
		for i := range args {
			args[i] = strings.TrimSpace(args[i])
		}
		w, err := parseCall(fn, args, extra)
		if err != nil {
			return NoOp, fmt.Errorf("%q: %w", s, err)
		}
		return w, nil
	}

	if kc, err := keycode.Parse(upper); err == nil {
		return Key(kc), nil
	}
	if n, err := strconv.ParseUint(upper, 0, 16); err == nil {
		return Word(n), nil
	}
	return NoOp, fmt.Errorf("unknown action %q", s)
}

func parseCall(fn string, args []string, extra Names) (Word, error) {
	want := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("%s takes %d argument(s), got %d", fn, n, len(args))
		}
		return nil
	}
	switch fn {
	case "MO", "TG":
		if err := want(1); err != nil {
			return NoOp, err
		}
		l, err := parseLayer(args[0])
		if err != nil {
			return NoOp, err
		}
		if fn == "MO" {
			return MO(l), nil
		}
		return TG(l), nil
	case "LT":
		if err := want(2); err != nil {
			return NoOp, err
		}
		l, err := parseLayer(args[0])
		if err != nil {
			return NoOp, err
		}
		kc, err := parseKey(args[1], extra)
		if err != nil {
			return NoOp, err
		}
		return LT(l, kc), nil
	case "MT", "MOD":
		if err := want(2); err != nil {
			return NoOp, err
		}
		m, err := ParseMods(args[0])
		if err != nil {
			return NoOp, err
		}
		kc, err := parseKey(args[1], extra)
		if err != nil {
			return NoOp, err
		}
		if fn == "MT" {
			return MT(m, kc), nil
		}
		return Mod(m, kc), nil
	default:
		m, err := ParseMods(fn)
		if err != nil {
			return NoOp, fmt.Errorf("unknown function %s", fn)
		}
		if err := want(1); err != nil {
			return NoOp, err
		}
		kc, err := parseKey(args[0], extra)
		if err != nil {
			return NoOp, err
		}
		return Mod(m, kc), nil
	}
}

func parseLayer(s string) (uint8, error) {
	n, err := strconv.ParseUint(s, 0, 8)
	if err != nil || n >= layer.Max {
		return 0, fmt.Errorf("invalid layer %q", s)
	}
	return uint8(n), nil
}

// parseKey accepts a keycode name or an extra name that resolves to a plain key.
func parseKey(s string, extra Names) (keycode.Code, error) {
	if w, ok := extra[s]; ok {
		if w.Op() != OpPlain || w.Field() != 0 {
			return keycode.No, fmt.Errorf("%s is not a plain keycode", s)
		}
		return w.Keycode(), nil
	}
	return keycode.Parse(s)
}
