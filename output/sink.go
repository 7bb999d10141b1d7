// Package output carries the engine's emitted key events to their consumers.
package output

import (
	"github.com/Alia5/overdrive/hid"
	"github.com/Alia5/overdrive/scancode"
)

// Sink receives everything the engine emits.
type Sink interface {
	// Scancode emits the make or break bytes of sc.
	Scancode(sc scancode.Scancode, pressed bool)
	// Sequence emits a fixed multi-byte sequence.
	Sequence(b []byte)
	// HID updates the side channel report.
	HID(u hid.Usage, pressed bool)
}

// Discard is a Sink that drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) Scancode(scancode.Scancode, bool) {}
func (discard) Sequence([]byte)                  {}
func (discard) HID(hid.Usage, bool)              {}
