package action

import (
	"fmt"
	"strings"
)

// Mods is the 5-bit modifier field. Bits 0-3 select Ctrl, Alt, Shift and GUI;
// bit 4 moves every selected modifier to the right-hand side.
type Mods uint8

const (
	ModCtrl  Mods = 0b00001
	ModAlt   Mods = 0b00010
	ModShift Mods = 0b00100
	ModGUI   Mods = 0b01000
	ModRight Mods = 0b10000
)

const (
	LCtl Mods = ModCtrl
	LAlt Mods = ModAlt
	LSft Mods = ModShift
	LGUI Mods = ModGUI
	RCtl Mods = ModRight | ModCtrl
	RAlt Mods = ModRight | ModAlt
	RSft Mods = ModRight | ModShift
	RGUI Mods = ModRight | ModGUI

	LWin = LGUI
	RWin = RGUI
)

var modNames = []struct {
	name string
	mod  Mods
}{
	{"CTL", ModCtrl},
	{"ALT", ModAlt},
	{"SFT", ModShift},
	{"GUI", ModGUI},
}

// Right reports whether the right-hand bit is set.
func (m Mods) Right() bool { return m&ModRight != 0 }

// Has reports whether m selects every modifier in o, ignoring the side bit.
func (m Mods) Has(o Mods) bool {
	o &^= ModRight
	return m&o == o
}

func (m Mods) String() string {
	side := "L"
	if m.Right() {
		side = "R"
	}
	var parts []string
	for _, n := range modNames {
		if m&n.mod != 0 {
			parts = append(parts, side+n.name)
		}
	}
	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, "|")
}

func singleModName(m Mods) (string, bool) {
	s := m.String()
	if strings.Contains(s, "|") || s == "0" {
		return "", false
	}
	return s, true
}

// ParseMods parses a '|' separated modifier list such as "LCTL|LSFT".
// Any right-hand modifier makes the whole set right-handed.
func ParseMods(s string) (Mods, error) {
	var m Mods
	for _, part := range strings.Split(s, "|") {
		p := strings.ToUpper(strings.TrimSpace(part))
		p = strings.TrimPrefix(p, "MOD_")
		if p == "" {
			return 0, fmt.Errorf("empty modifier in %q", s)
		}
		side := p[0]
		if side != 'L' && side != 'R' {
			return 0, fmt.Errorf("unknown modifier %q", part)
		}
		name := p[1:]
		if name == "WIN" {
			name = "GUI"
		}
		found := false
		for _, n := range modNames {
			if n.name == name {
				m |= n.mod
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown modifier %q", part)
		}
		if side == 'R' {
			m |= ModRight
		}
	}
	return m, nil
}
