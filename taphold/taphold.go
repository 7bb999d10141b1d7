// Package taphold decides whether a dual-purpose key was tapped or held.
//
// A press is queued with a fire time one hold period away. Releasing the key
// before that cancels the entry and resolves it as a tap; otherwise the
// background loop resolves it as a hold press, and the later release as a hold
// release. Every resolution runs through the Executor while the serial lock is
// held, never under the queue lock.
package taphold

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Alia5/overdrive/action"
	"github.com/Alia5/overdrive/matrix"
)

const (
	// DefaultHold is the tap term.
	DefaultHold = 200 * time.Millisecond
	// DefaultCapacity is the number of presses that can be pending at once.
	DefaultCapacity = 16

	minWait = time.Microsecond
)

// Executor runs a resolved tap-hold action. rec.TapCount is 1 for the tap
// press/release pair and 0 for hold press and hold release.
type Executor interface {
	Execute(w action.Word, rec matrix.Record)
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(w action.Word, rec matrix.Record)

// Execute calls f.
func (f ExecutorFunc) Execute(w action.Word, rec matrix.Record) { f(w, rec) }

type event struct {
	fire      time.Time
	cancelled bool
	word      action.Word
	rec       matrix.Record
}

// Arbiter owns the pending tap-hold queue.
type Arbiter struct {
	mu     sync.Mutex
	events []event

	exec     Executor
	serial   sync.Locker
	clock    Clock
	hold     time.Duration
	capacity int
	logger   *slog.Logger

	signal chan struct{}
}

// Option configures an Arbiter.
type Option func(*Arbiter)

// WithHold sets the tap term.
func WithHold(d time.Duration) Option { return func(a *Arbiter) { a.hold = d } }

// WithCapacity bounds the queue.
func WithCapacity(n int) Option { return func(a *Arbiter) { a.capacity = n } }

// WithClock replaces the wall clock.
func WithClock(c Clock) Option { return func(a *Arbiter) { a.clock = c } }

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(a *Arbiter) { a.logger = l } }

// WithSerial sets the lock that serializes executions with the caller of
// Press and Release. The caller must hold it around both.
func WithSerial(l sync.Locker) Option { return func(a *Arbiter) { a.serial = l } }

// New returns an arbiter that resolves actions through exec.
func New(exec Executor, opts ...Option) *Arbiter {
	a := &Arbiter{
		exec:     exec,
		clock:    SystemClock,
		hold:     DefaultHold,
		capacity: DefaultCapacity,
		logger:   slog.Default(),
		signal:   make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(a)
	}
	if a.serial == nil {
		a.serial = &sync.Mutex{}
	}
	if a.hold <= 0 {
		a.hold = DefaultHold
	}
	if a.capacity <= 0 {
		a.capacity = DefaultCapacity
	}
	a.events = make([]event, 0, a.capacity)
	return a
}

// Hold returns the tap term.
func (a *Arbiter) Hold() time.Duration { return a.hold }

// Press queues w for resolution. It returns false when the queue is full; the
// press is then dropped.
func (a *Arbiter) Press(w action.Word, rec matrix.Record) bool {
	a.mu.Lock()
	if len(a.events) >= a.capacity {
		a.mu.Unlock()
		a.logger.Warn("tap-hold queue full, dropping press", "pos", rec.Pos, "act", w)
		return false
	}
	a.events = append(a.events, event{
		fire: a.clock.Now().Add(a.hold),
		word: w,
		rec:  rec,
	})
	a.mu.Unlock()
	a.wake()
	return true
}

// Release resolves the release of w. If a live press for the same position is
// still queued it is cancelled and a tap is executed; otherwise the hold is
// released.
func (a *Arbiter) Release(w action.Word, rec matrix.Record) {
	if a.cancel(rec.Pos) {
		a.logger.Debug("tap", "pos", rec.Pos, "act", w)
		tap := matrix.Record{Pos: rec.Pos, Pressed: true, TapCount: 1}
		a.exec.Execute(w, tap)
		tap.Pressed = false
		a.exec.Execute(w, tap)
		return
	}
	a.exec.Execute(w, matrix.Record{Pos: rec.Pos})
}

func (a *Arbiter) cancel(p matrix.Position) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.events {
		if !a.events[i].cancelled && a.events[i].rec.Pos == p {
			a.events[i].cancelled = true
			return true
		}
	}
	return false
}

// Pending returns the number of live queued presses.
func (a *Arbiter) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, e := range a.events {
		if !e.cancelled {
			n++
		}
	}
	return n
}

// Poll drops cancelled entries, executes every expired one as a hold press and
// stops at the first live entry that is not due. It returns the time until that
// entry fires, clamped to the hold period, or 0 when the queue is empty.
func (a *Arbiter) Poll() time.Duration {
	for {
		a.serial.Lock()
		a.mu.Lock()
		for len(a.events) > 0 && a.events[0].cancelled {
			a.pop()
		}
		if len(a.events) == 0 {
			a.mu.Unlock()
			a.serial.Unlock()
			return 0
		}
		head := a.events[0]
		if wait := head.fire.Sub(a.clock.Now()); wait > 0 {
			a.mu.Unlock()
			a.serial.Unlock()
			return min(max(wait, minWait), a.hold)
		}
		a.pop()
		a.mu.Unlock()

		a.logger.Debug("hold", "pos", head.rec.Pos, "act", head.word)
		a.exec.Execute(head.word, matrix.Record{Pos: head.rec.Pos, Pressed: true})
		a.serial.Unlock()
	}
}

func (a *Arbiter) pop() {
	copy(a.events, a.events[1:])
	a.events[len(a.events)-1] = event{}
	a.events = a.events[:len(a.events)-1]
}

func (a *Arbiter) wake() {
	select {
	case a.signal <- struct{}{}:
	default:
	}
}

// Run resolves holds until ctx is done. It sleeps until a press is queued or
// the next entry is due.
func (a *Arbiter) Run(ctx context.Context) error {
	timer := time.NewTimer(a.hold)
	defer timer.Stop()
	for {
		var due <-chan time.Time
		if wait := a.Poll(); wait > 0 {
			timer.Reset(wait)
			due = timer.C
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-a.signal:
		case <-due:
		}
	}
}
