package output

import (
	"fmt"
	"io"
	"sync"

	"github.com/Alia5/overdrive/hid"
	"github.com/Alia5/overdrive/internal/log"
	"github.com/Alia5/overdrive/scancode"
)

// Text is a Sink that prints one human readable line per emission.
type Text struct {
	mu sync.Mutex
	w  io.Writer
}

// NewText returns a Text sink writing to w.
func NewText(w io.Writer) *Text { return &Text{w: w} }

func (t *Text) Scancode(sc scancode.Scancode, pressed bool) {
	name := "?"
	if kc, ok := scancode.Decode(sc); ok {
		name = kc.String()
	}
	t.printf("%-4s %-8s %s\n", edge(pressed), log.Hex(sc.Bytes(pressed)), name)
}

func (t *Text) Sequence(b []byte) {
	t.printf("seq  %s\n", log.Hex(b))
}

func (t *Text) HID(u hid.Usage, pressed bool) {
	t.printf("hid  %s %s\n", u, edge(pressed))
}

func (t *Text) printf(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = fmt.Fprintf(t.w, format, args...)
}

func edge(pressed bool) string {
	if pressed {
		return "down"
	}
	return "up"
}
