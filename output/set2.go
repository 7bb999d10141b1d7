package output

import (
	"io"
	"log/slog"
	"sync"

	"github.com/Alia5/overdrive/hid"
	"github.com/Alia5/overdrive/internal/log"
	"github.com/Alia5/overdrive/scancode"
)

// Set2Writer writes set-2 bytes to an io.Writer and keeps the HID report.
type Set2Writer struct {
	mu     sync.Mutex
	w      io.Writer
	keys   hid.Keys
	logger *slog.Logger
	raw    log.RawLogger
}

// NewSet2Writer returns a writer-backed Sink. raw may be nil.
func NewSet2Writer(w io.Writer, logger *slog.Logger, raw log.RawLogger) *Set2Writer {
	if raw == nil {
		raw = log.NewRaw(nil)
	}
	return &Set2Writer{w: w, logger: logger, raw: raw}
}

func (s *Set2Writer) Scancode(sc scancode.Scancode, pressed bool) {
	s.write(sc.Bytes(pressed))
}

func (s *Set2Writer) Sequence(b []byte) {
	s.write(b)
}

func (s *Set2Writer) HID(u hid.Usage, pressed bool) {
	s.mu.Lock()
	s.keys.Set(u, pressed)
	report := s.keys.String()
	s.mu.Unlock()
	s.logger.Info("hid report", "usage", u, "pressed", pressed, "keys", report)
}

// Keys returns a copy of the current HID report.
func (s *Set2Writer) Keys() hid.Keys {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keys
}

func (s *Set2Writer) write(b []byte) {
	if len(b) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw.Log(false, b)
	if _, err := s.w.Write(b); err != nil {
		s.logger.Warn("scancode write failed", "error", err)
	}
}
