package output

import (
	"fmt"
	"sync"

	"github.com/Alia5/overdrive/hid"
	"github.com/Alia5/overdrive/internal/log"
	"github.com/Alia5/overdrive/scancode"
)

// Kind tells recorded events apart.
type Kind int

const (
	KindScancode Kind = iota + 1
	KindSequence
	KindHID
)

// Event is one recorded emission.
type Event struct {
	Kind     Kind
	Scancode scancode.Scancode
	Pressed  bool
	Bytes    []byte
	Usage    hid.Usage
}

func (e Event) String() string {
	edge := "up"
	if e.Pressed {
		edge = "down"
	}
	switch e.Kind {
	case KindScancode:
		return fmt.Sprintf("%s %s", e.Scancode, edge)
	case KindSequence:
		return "seq " + log.Hex(e.Bytes)
	case KindHID:
		return fmt.Sprintf("hid %s %s", e.Usage, edge)
	}
	return "?"
}

// Key returns a scancode event.
func Key(sc scancode.Scancode, pressed bool) Event {
	return Event{Kind: KindScancode, Scancode: sc, Pressed: pressed}
}

// Recorder is a Sink that keeps everything it receives.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Scancode(sc scancode.Scancode, pressed bool) {
	r.add(Key(sc, pressed))
}

func (r *Recorder) Sequence(b []byte) {
	r.add(Event{Kind: KindSequence, Bytes: append([]byte(nil), b...)})
}

func (r *Recorder) HID(u hid.Usage, pressed bool) {
	r.add(Event{Kind: KindHID, Usage: u, Pressed: pressed})
}

func (r *Recorder) add(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Strings renders Events for compact assertions.
func (r *Recorder) Strings() []string {
	evs := r.Events()
	out := make([]string, len(evs))
	for i, e := range evs {
		out[i] = e.String()
	}
	return out
}

// Bytes returns the set-2 byte stream the events would produce.
func (r *Recorder) Bytes() []byte {
	var out []byte
	for _, e := range r.Events() {
		switch e.Kind {
		case KindScancode:
			out = append(out, e.Scancode.Bytes(e.Pressed)...)
		case KindSequence:
			out = append(out, e.Bytes...)
		}
	}
	return out
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
