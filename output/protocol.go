package output

import (
	"github.com/Alia5/overdrive/action"
	"github.com/Alia5/overdrive/hid"
	"github.com/Alia5/overdrive/keycode"
	"github.com/Alia5/overdrive/layer"
	"github.com/Alia5/overdrive/matrix"
)

var hidRoutes = map[keycode.Code]hid.Usage{
	keycode.KeyBrightnessDown: hid.UsageBrightnessDown,
	keycode.KeyBrightnessUp:   hid.UsageBrightnessUp,
	keycode.KeyRfkill:         hid.UsageAirplaneMode,
}

// HIDUsage returns the side channel usage for keycodes the PS/2 stream cannot
// carry.
func HIDUsage(kc keycode.Code) (hid.Usage, bool) {
	u, ok := hidRoutes[kc]
	return u, ok
}

// PS2Protocol is the protocol level record hook for a PS/2 host. Keys with an
// HID route are sent through the side channel and consumed.
type PS2Protocol struct {
	Sink Sink
}

func (p PS2Protocol) ProcessRecord(_ *layer.State, w action.Word, rec *matrix.Record) bool {
	if w.Op() != action.OpPlain || w.Field() != 0 {
		return true
	}
	u, ok := HIDUsage(w.Keycode())
	if !ok {
		return true
	}
	p.Sink.HID(u, rec.Pressed)
	return false
}
