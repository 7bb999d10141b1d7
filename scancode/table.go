package scancode

import (
	kc "github.com/Alia5/overdrive/keycode"
)

var table = [256]byte{
	kc.Key0: 0x45, kc.Key1: 0x16, kc.Key2: 0x1E, kc.Key3: 0x26, kc.Key4: 0x25,
	kc.Key5: 0x2E, kc.Key6: 0x36, kc.Key7: 0x3D, kc.Key8: 0x3E, kc.Key9: 0x46,

	kc.KeyA: 0x1C, kc.KeyB: 0x32, kc.KeyC: 0x21, kc.KeyD: 0x23, kc.KeyE: 0x24,
	kc.KeyF: 0x2B, kc.KeyG: 0x34, kc.KeyH: 0x33, kc.KeyI: 0x43, kc.KeyJ: 0x3B,
	kc.KeyK: 0x42, kc.KeyL: 0x4B, kc.KeyM: 0x3A, kc.KeyN: 0x31, kc.KeyO: 0x44,
	kc.KeyP: 0x4D, kc.KeyQ: 0x15, kc.KeyR: 0x2D, kc.KeyS: 0x1B, kc.KeyT: 0x2C,
	kc.KeyU: 0x3C, kc.KeyV: 0x2A, kc.KeyW: 0x1D, kc.KeyX: 0x22, kc.KeyY: 0x35,
	kc.KeyZ: 0x1A,

	kc.KeyBackspace:      0x66,
	kc.KeyBackslash:      0x5D,
	kc.KeyCapsLock:       0x58,
	kc.KeyComma:          0x41,
	kc.KeyInsert:         ext | 0x70,
	kc.KeyDelete:         ext | 0x71,
	kc.KeyDot:            0x49,
	kc.KeyDown:           ext | 0x72,
	kc.KeyEnd:            ext | 0x69,
	kc.KeyEnter:          0x5A,
	kc.KeyEqual:          0x55,
	kc.KeyEscape:         0x76,
	kc.KeyGrave:          0x0E,
	kc.KeyHome:           ext | 0x6C,
	kc.KeyLeftAlt:        0x11,
	kc.KeyLeftBracket:    0x54,
	kc.KeyLeftCtrl:       0x14,
	kc.KeyLeft:           ext | 0x6B,
	kc.KeyLeftShift:      0x12,
	kc.KeyLeftGUI:        ext | 0x1F,
	kc.KeyRightGUI:       ext | 0x27,
	kc.KeyApplication:    ext | 0x2F,
	kc.KeyMinus:          0x4E,
	kc.KeyNumLock:        0x77,
	kc.KeyNonUSBackslash: 0x61,
	kc.KeyQuote:          0x52,
	kc.KeyRightAlt:       ext | 0x11,
	kc.KeyRightBracket:   0x5B,
	kc.KeyRightCtrl:      ext | 0x14,
	kc.KeyRight:          ext | 0x74,
	kc.KeyRightShift:     0x59,
	kc.KeySemicolon:      0x4C,
	kc.KeySlash:          0x4A,
	kc.KeySpace:          0x29,
	kc.KeyTab:            0x0D,
	kc.KeyUp:             ext | 0x75,

	kc.KeyF1: 0x05, kc.KeyF2: 0x06, kc.KeyF3: 0x04, kc.KeyF4: 0x0C,
	kc.KeyF5: 0x03, kc.KeyF6: 0x0B, kc.KeyF7: f7, kc.KeyF8: 0x0A,
	kc.KeyF9: 0x01, kc.KeyF10: 0x09, kc.KeyF11: 0x78, kc.KeyF12: 0x07,

	kc.KeyKp0: 0x70, kc.KeyKp1: 0x69, kc.KeyKp2: 0x72, kc.KeyKp3: 0x7A, kc.KeyKp4: 0x6B,
	kc.KeyKp5: 0x73, kc.KeyKp6: 0x74, kc.KeyKp7: 0x6C, kc.KeyKp8: 0x75, kc.KeyKp9: 0x7D,

	kc.KeyKpAsterisk: 0x7C,
	kc.KeyKpDot:      0x71,
	kc.KeyKpEnter:    ext | 0x5A,
	kc.KeyPageDown:   ext | 0x7A,
	kc.KeyPageUp:     ext | 0x7D,
	kc.KeyKpInsert:   ext | 0x70,
	kc.KeyKpMinus:    0x7B,
	kc.KeyKpPlus:     0x79,
	kc.KeyKpSlash:    ext | 0x4A,

	kc.KeyMediaSelect:    ext | 0x50,
	kc.KeyMediaNext:      ext | 0x4D,
	kc.KeyMediaPrevious:  ext | 0x15,
	kc.KeyMediaPlayPause: ext | 0x34,
	kc.KeyVolumeDown:     ext | 0x21,
	kc.KeyVolumeUp:       ext | 0x32,
	kc.KeyMute:           ext | 0x23,
	kc.KeyScrollLock:     0x7E,
}
