// Package hid holds the state of the HID side channel used for keys that have
// no PS/2 scancode.
package hid

import (
	"fmt"
	"io"
	"strings"
)

// Usage is a side channel usage code.
type Usage uint8

// Usages for keys routed around the scancode stream.
const (
	UsageBrightnessUp   Usage = 0x6F // consumer page
	UsageBrightnessDown Usage = 0x70 // consumer page
	UsageAirplaneMode   Usage = 0xC6 // generic desktop, wireless radio button
)

var usageNames = map[Usage]string{
	UsageBrightnessUp:   "brightness-up",
	UsageBrightnessDown: "brightness-down",
	UsageAirplaneMode:   "airplane-mode",
}

func (u Usage) String() string {
	if n, ok := usageNames[u]; ok {
		return n
	}
	return fmt.Sprintf("0x%02x", uint8(u))
}

// Keys is a report of the usages currently held down, one bit per usage.
type Keys struct {
	Bitmap [32]uint8
}

// Set marks u as held or released.
func (k *Keys) Set(u Usage, pressed bool) {
	if pressed {
		k.Bitmap[u/8] |= 1 << (u % 8)
	} else {
		k.Bitmap[u/8] &^= 1 << (u % 8)
	}
}

// Pressed reports whether u is held.
func (k *Keys) Pressed(u Usage) bool { return k.Bitmap[u/8]&(1<<(u%8)) != 0 }

// Usages lists the held usages in ascending order.
func (k *Keys) Usages() []Usage {
	var out []Usage
	for i := 0; i < 256; i++ {
		if k.Bitmap[i/8]&(1<<uint(i%8)) != 0 {
			out = append(out, Usage(i))
		}
	}
	return out
}

// MarshalBinary encodes the report.
//
// Wire format:
//
//	Byte 0: Usage count
//	Bytes 1+: Held usages
func (k *Keys) MarshalBinary() ([]byte, error) {
	us := k.Usages()
	b := make([]byte, 1+len(us))
	b[0] = uint8(len(us))
	for i, u := range us {
		b[1+i] = uint8(u)
	}
	return b, nil
}

// UnmarshalBinary decodes a report produced by MarshalBinary.
func (k *Keys) UnmarshalBinary(data []byte) error {
	if len(data) < 1 {
		return io.ErrUnexpectedEOF
	}
	n := int(data[0])
	if len(data) < 1+n {
		return io.ErrUnexpectedEOF
	}
	k.Bitmap = [32]uint8{}
	for _, u := range data[1 : 1+n] {
		k.Set(Usage(u), true)
	}
	return nil
}

func (k *Keys) String() string {
	us := k.Usages()
	parts := make([]string, len(us))
	for i, u := range us {
		parts[i] = u.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
