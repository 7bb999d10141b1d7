package output

import (
	"log/slog"
	"sync"
)

// DefaultDepth is the number of chunks buffered per subscriber.
const DefaultDepth = 64

// Fanout is an io.Writer that copies every chunk to its subscribers. A
// subscriber that falls behind by more than its buffer loses chunks instead of
// blocking the writer.
type Fanout struct {
	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	depth  int
	logger *slog.Logger
}

// NewFanout returns an empty fan-out.
func NewFanout(logger *slog.Logger, depth int) *Fanout {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Fanout{subs: map[*Subscription]struct{}{}, depth: depth, logger: logger}
}

// Subscription receives chunks on C until Close is called.
type Subscription struct {
	C <-chan []byte

	c chan []byte
	f *Fanout
}

// Subscribe attaches a new subscriber.
func (f *Fanout) Subscribe() *Subscription {
	c := make(chan []byte, f.depth)
	s := &Subscription{C: c, c: c, f: f}
	f.mu.Lock()
	f.subs[s] = struct{}{}
	f.mu.Unlock()
	return s
}

// Close detaches the subscriber and closes C. It is safe to call twice.
func (s *Subscription) Close() {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	if _, ok := s.f.subs[s]; !ok {
		return
	}
	delete(s.f.subs, s)
	close(s.c)
}

// Len returns the number of subscribers.
func (f *Fanout) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// Write never fails.
func (f *Fanout) Write(p []byte) (int, error) {
	chunk := append([]byte(nil), p...)
	f.mu.Lock()
	defer f.mu.Unlock()
	for s := range f.subs {
		select {
		case s.c <- chunk:
		default:
			f.logger.Warn("output subscriber too slow, dropping chunk", "bytes", len(chunk))
		}
	}
	return len(p), nil
}
