package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Alia5/overdrive/action"
	"github.com/Alia5/overdrive/board/framework"
	"github.com/Alia5/overdrive/keycode"
	"github.com/Alia5/overdrive/keymap"
	"github.com/Alia5/overdrive/matrix"
	"github.com/Alia5/overdrive/output"
	"github.com/Alia5/overdrive/scancode"
)

type Check struct {
	Keymap  string `help:"Built-in keymap name or YAML keymap path" default:"framework-iso" env:"OVERDRIVE_KEYMAP"`
	Verbose bool   `short:"v" help:"Also list keycodes sent with the E0 prefix"`
}

// Run is called by Kong when the check command is executed.
func (c *Check) Run(logger *slog.Logger) error {
	km, err := LoadKeymap(c.Keymap)
	if err != nil {
		return err
	}
	if n := CheckKeymap(os.Stdout, km, c.Verbose); n > 0 {
		return fmt.Errorf("%d keymap cells cannot be emitted", n)
	}
	logger.Info("Keymap ok", "keymap", c.Keymap)
	return nil
}

// CheckKeymap prints the keycodes without a set-2 scancode, then every keymap
// cell whose keycode cannot be emitted. It returns the number of bad cells.
func CheckKeymap(w io.Writer, km *keymap.Keymap, verbose bool) int {
	for _, kc := range keycode.All() {
		if _, ok := scancode.Multibyte(kc); ok {
			continue
		}
		sc, ok := scancode.Encode(kc)
		switch {
		case !ok:
			if u, routed := output.HIDUsage(kc); routed {
				fmt.Fprintf(w, "%s missing, sent as hid %s\n", kc, u)
			} else {
				fmt.Fprintf(w, "%s missing\n", kc)
			}
		case verbose && sc.Extended():
			fmt.Fprintf(w, "%s special: %04X\n", kc, uint16(sc))
		}
	}

	board := make(map[action.Word]bool, len(framework.Names))
	for _, bw := range framework.Names {
		board[bw] = true
	}

	bad := 0
	km.Each(func(l uint8, p matrix.Position, cell action.Word) {
		if cell == action.Transparent || cell == action.NoOp || board[cell] {
			return
		}
		a := action.Decode(cell)
		if a.Keycode == keycode.No {
			return
		}
		if !a.Keycode.Known() {
			fmt.Fprintf(w, "%d %d,%d OUT OF RANGE\n", l, p.Col, p.Row)
			bad++
			return
		}
		if !emittable(a.Keycode) {
			fmt.Fprintf(w, "%d %d,%d HAS NO SCANCODE\n", l, p.Col, p.Row)
			bad++
		}
	})
	return bad
}

func emittable(kc keycode.Code) bool {
	if _, ok := scancode.Encode(kc); ok {
		return true
	}
	if _, ok := scancode.Multibyte(kc); ok {
		return true
	}
	_, ok := output.HIDUsage(kc)
	return ok
}
