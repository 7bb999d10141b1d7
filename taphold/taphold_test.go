package taphold_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Alia5/overdrive/action"
	"github.com/Alia5/overdrive/keycode"
	"github.com/Alia5/overdrive/matrix"
	"github.com/Alia5/overdrive/taphold"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock { return &fakeClock{now: time.Unix(1000, 0)} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type call struct {
	word action.Word
	rec  matrix.Record
}

type recorder struct {
	mu    sync.Mutex
	calls []call
}

func (r *recorder) Execute(w action.Word, rec matrix.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call{w, rec})
}

func (r *recorder) snapshot() []call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]call(nil), r.calls...)
}

var (
	ltA = action.LT(1, keycode.KeyA)
	pos = matrix.Pos(1, 2)
)

func setup(opts ...taphold.Option) (*taphold.Arbiter, *recorder, *fakeClock) {
	rec := &recorder{}
	clk := newFakeClock()
	a := taphold.New(rec, append([]taphold.Option{taphold.WithClock(clk)}, opts...)...)
	return a, rec, clk
}

func TestTap(t *testing.T) {
	a, rec, clk := setup()
	require.True(t, a.Press(ltA, matrix.Record{Pos: pos, Pressed: true}))
	assert.Equal(t, 1, a.Pending())

	clk.Advance(50 * time.Millisecond)
	assert.Equal(t, 150*time.Millisecond, a.Poll())
	assert.Empty(t, rec.snapshot())

	a.Release(ltA, matrix.Record{Pos: pos})
	assert.Equal(t, []call{
		{ltA, matrix.Record{Pos: pos, Pressed: true, TapCount: 1}},
		{ltA, matrix.Record{Pos: pos, Pressed: false, TapCount: 1}},
	}, rec.snapshot())
	assert.Equal(t, 0, a.Pending())

	// the cancelled entry is swept and never fires
	clk.Advance(time.Second)
	assert.Equal(t, time.Duration(0), a.Poll())
	assert.Len(t, rec.snapshot(), 2)
}

func TestHold(t *testing.T) {
	a, rec, clk := setup()
	a.Press(ltA, matrix.Record{Pos: pos, Pressed: true})

	clk.Advance(taphold.DefaultHold)
	assert.Equal(t, time.Duration(0), a.Poll())
	assert.Equal(t, []call{
		{ltA, matrix.Record{Pos: pos, Pressed: true}},
	}, rec.snapshot())

	clk.Advance(time.Second)
	a.Release(ltA, matrix.Record{Pos: pos})
	assert.Equal(t, []call{
		{ltA, matrix.Record{Pos: pos, Pressed: true}},
		{ltA, matrix.Record{Pos: pos, Pressed: false}},
	}, rec.snapshot())
}

func TestTapHoldExclusive(t *testing.T) {
	cases := []struct {
		name  string
		after time.Duration
		taps  int
		holds int
	}{
		{"immediate", 0, 2, 0},
		{"before term", 199 * time.Millisecond, 2, 0},
		{"at term", 200 * time.Millisecond, 0, 2},
		{"long after", 3 * time.Second, 0, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, rec, clk := setup()
			a.Press(ltA, matrix.Record{Pos: pos, Pressed: true})
			clk.Advance(tc.after)
			a.Poll()
			a.Release(ltA, matrix.Record{Pos: pos})
			a.Poll()

			taps, holds := 0, 0
			for _, c := range rec.snapshot() {
				if c.rec.TapCount == 1 {
					taps++
				} else {
					holds++
				}
			}
			assert.Equal(t, tc.taps, taps)
			assert.Equal(t, tc.holds, holds)
		})
	}
}

func TestPollOrder(t *testing.T) {
	a, rec, clk := setup()
	p2 := matrix.Pos(3, 3)
	mt := action.MT(action.LCtl, keycode.KeyB)

	a.Press(ltA, matrix.Record{Pos: pos, Pressed: true})
	clk.Advance(100 * time.Millisecond)
	a.Press(mt, matrix.Record{Pos: p2, Pressed: true})

	clk.Advance(100 * time.Millisecond)
	assert.Equal(t, 100*time.Millisecond, a.Poll())
	assert.Equal(t, []call{{ltA, matrix.Record{Pos: pos, Pressed: true}}}, rec.snapshot())

	clk.Advance(100 * time.Millisecond)
	assert.Equal(t, time.Duration(0), a.Poll())
	assert.Len(t, rec.snapshot(), 2)
	assert.Equal(t, mt, rec.snapshot()[1].word)
}

func TestReleaseSkipsCancelled(t *testing.T) {
	a, rec, clk := setup()
	// two quick taps before the first entry is swept
	a.Press(ltA, matrix.Record{Pos: pos, Pressed: true})
	a.Release(ltA, matrix.Record{Pos: pos})
	a.Press(ltA, matrix.Record{Pos: pos, Pressed: true})
	a.Release(ltA, matrix.Record{Pos: pos})
	assert.Len(t, rec.snapshot(), 4)

	clk.Advance(time.Second)
	a.Poll()
	assert.Len(t, rec.snapshot(), 4)
}

func TestQueueFull(t *testing.T) {
	a, rec, _ := setup(taphold.WithCapacity(2))
	assert.True(t, a.Press(ltA, matrix.Record{Pos: matrix.Pos(0, 0), Pressed: true}))
	assert.True(t, a.Press(ltA, matrix.Record{Pos: matrix.Pos(0, 1), Pressed: true}))
	assert.False(t, a.Press(ltA, matrix.Record{Pos: matrix.Pos(0, 2), Pressed: true}))
	assert.Equal(t, 2, a.Pending())

	// the dropped key's release resolves as a hold release
	a.Release(ltA, matrix.Record{Pos: matrix.Pos(0, 2)})
	assert.Equal(t, []call{{ltA, matrix.Record{Pos: matrix.Pos(0, 2)}}}, rec.snapshot())
}

func TestPollClamp(t *testing.T) {
	a, _, clk := setup(taphold.WithHold(50 * time.Millisecond))
	assert.Equal(t, 50*time.Millisecond, a.Hold())
	a.Press(ltA, matrix.Record{Pos: pos, Pressed: true})
	wait := a.Poll()
	assert.Greater(t, wait, time.Duration(0))
	assert.LessOrEqual(t, wait, 50*time.Millisecond)

	clk.Advance(50*time.Millisecond - time.Nanosecond)
	assert.Equal(t, time.Microsecond, a.Poll())
}

func TestSerialLockHeldDuringExecute(t *testing.T) {
	var serial sync.Mutex
	held := false
	clk := newFakeClock()
	a := taphold.New(taphold.ExecutorFunc(func(action.Word, matrix.Record) {
		held = !serial.TryLock()
		if !held {
			serial.Unlock()
		}
	}), taphold.WithClock(clk), taphold.WithSerial(&serial))

	serial.Lock()
	a.Press(ltA, matrix.Record{Pos: pos, Pressed: true})
	serial.Unlock()
	clk.Advance(time.Second)
	a.Poll()
	assert.True(t, held)
}

func TestRun(t *testing.T) {
	rec := &recorder{}
	a := taphold.New(rec, taphold.WithHold(10*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	a.Press(ltA, matrix.Record{Pos: pos, Pressed: true})
	assert.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, matrix.Record{Pos: pos, Pressed: true}, rec.snapshot()[0].rec)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
