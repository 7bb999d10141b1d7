package log

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"
)

// RawLogger traces raw byte traffic, one hex dumped line per chunk.
type RawLogger interface {
	Log(in bool, data []byte)
}

// rawLogger implements RawLogger with thread-safe log.
type rawLogger struct {
	w   io.Writer
	mu  sync.Mutex
	now func() time.Time
}

// NewRaw creates a new RawLogger. If writer is nil, returns a no-op logger.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w, now: time.Now}
}

// Log emits a single-line raw chunk log with timestamp and hex dump.
// in=true means control traffic received by overdrive, in=false means
// scancode bytes sent to the host.
func (r *rawLogger) Log(in bool, data []byte) {
	if len(data) == 0 {
		return
	}
	if r.w == nil {
		return
	}

	dir := "KB->HOST"
	if in {
		dir = "CTL->KB"
	}

	line := fmt.Sprintf("%s %s chunk: %d bytes, hex: %s\n",
		r.now().Format("2006/01/02 15:04:05.000"),
		dir,
		len(data),
		Hex(data))

	r.mu.Lock()
	_, _ = r.w.Write([]byte(line))
	r.mu.Unlock()
}

// Hex formats data as space separated upper-case byte pairs.
func Hex(data []byte) string {
	var hexbuf bytes.Buffer
	const hexdigits = "0123456789ABCDEF"
	for i, b := range data {
		if i > 0 {
			hexbuf.WriteByte(' ')
		}
		hexbuf.WriteByte(hexdigits[b>>4])
		hexbuf.WriteByte(hexdigits[b&0x0f])
	}
	return hexbuf.String()
}
