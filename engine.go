package overdrive

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Alia5/overdrive/action"
	"github.com/Alia5/overdrive/keycode"
	"github.com/Alia5/overdrive/keymap"
	"github.com/Alia5/overdrive/layer"
	"github.com/Alia5/overdrive/matrix"
	"github.com/Alia5/overdrive/output"
	"github.com/Alia5/overdrive/scancode"
	"github.com/Alia5/overdrive/taphold"
)

// Engine dispatches matrix events.
type Engine struct {
	mu        sync.Mutex
	enabled   atomic.Bool
	suspended atomic.Bool

	keymap  *keymap.Keymap
	layers  *layer.State
	pressed matrix.PressedLayers
	arbiter *taphold.Arbiter
	sink    output.Sink
	logger  *slog.Logger

	user     []RecordHook
	keyboard []RecordHook
	protocol []RecordHook

	keyboardPower []PowerHook
	userPower     []PowerHook
}

type settings struct {
	logger   *slog.Logger
	hold     time.Duration
	capacity int
	clock    taphold.Clock
	enabled  bool

	user, keyboard, protocol []RecordHook
	keyboardLayer, userLayer []layer.Transform
	keyboardPower, userPower []PowerHook
}

// Option configures an Engine.
type Option func(*settings)

// WithLogger sets the logger. Keyscans are logged at debug level.
func WithLogger(l *slog.Logger) Option { return func(s *settings) { s.logger = l } }

// WithHold sets the tap term.
func WithHold(d time.Duration) Option { return func(s *settings) { s.hold = d } }

// WithQueueCapacity bounds the number of pending tap-hold presses.
func WithQueueCapacity(n int) Option { return func(s *settings) { s.capacity = n } }

// WithClock replaces the tap-hold clock.
func WithClock(c taphold.Clock) Option { return func(s *settings) { s.clock = c } }

// WithEnabled sets the initial state of the enable gate. Engines start
// disabled.
func WithEnabled(on bool) Option { return func(s *settings) { s.enabled = on } }

// WithUserHook appends a user level record hook. User hooks run first.
func WithUserHook(h RecordHook) Option {
	return func(s *settings) { s.user = append(s.user, h) }
}

// WithKeyboardHook appends a keyboard level record hook.
func WithKeyboardHook(h RecordHook) Option {
	return func(s *settings) { s.keyboard = append(s.keyboard, h) }
}

// WithProtocolHook appends a protocol level record hook. Protocol hooks run
// last, and also see keys emitted by tap resolutions.
func WithProtocolHook(h RecordHook) Option {
	return func(s *settings) { s.protocol = append(s.protocol, h) }
}

// WithKeyboardLayerTransform appends a keyboard level layer transform.
func WithKeyboardLayerTransform(t layer.Transform) Option {
	return func(s *settings) { s.keyboardLayer = append(s.keyboardLayer, t) }
}

// WithUserLayerTransform appends a user level layer transform.
func WithUserLayerTransform(t layer.Transform) Option {
	return func(s *settings) { s.userLayer = append(s.userLayer, t) }
}

// WithKeyboardPower appends a keyboard level power hook.
func WithKeyboardPower(h PowerHook) Option {
	return func(s *settings) { s.keyboardPower = append(s.keyboardPower, h) }
}

// WithUserPower appends a user level power hook. It runs after the keyboard
// hooks.
func WithUserPower(h PowerHook) Option {
	return func(s *settings) { s.userPower = append(s.userPower, h) }
}

// New builds an engine for km emitting to sink.
func New(km *keymap.Keymap, sink output.Sink, opts ...Option) *Engine {
	s := settings{
		logger:   slog.Default(),
		hold:     taphold.DefaultHold,
		capacity: taphold.DefaultCapacity,
		clock:    taphold.SystemClock,
	}
	for _, o := range opts {
		o(&s)
	}

	var lopts []layer.Option
	for _, t := range s.keyboardLayer {
		lopts = append(lopts, layer.WithKeyboardTransform(t))
	}
	for _, t := range s.userLayer {
		lopts = append(lopts, layer.WithUserTransform(t))
	}

	e := &Engine{
		keymap:        km,
		layers:        layer.New(lopts...),
		sink:          sink,
		logger:        s.logger,
		user:          s.user,
		keyboard:      s.keyboard,
		protocol:      s.protocol,
		keyboardPower: s.keyboardPower,
		userPower:     s.userPower,
	}
	e.arbiter = taphold.New(deferred{e},
		taphold.WithHold(s.hold),
		taphold.WithCapacity(s.capacity),
		taphold.WithClock(s.clock),
		taphold.WithLogger(s.logger),
		taphold.WithSerial(&e.mu),
	)
	e.enabled.Store(s.enabled)
	return e
}

// deferred runs arbiter resolutions. The arbiter holds the dispatch lock.
type deferred struct{ e *Engine }

func (d deferred) Execute(w action.Word, rec matrix.Record) { d.e.execute(w, rec) }

// Run resolves tap-hold expiries until ctx is done.
func (e *Engine) Run(ctx context.Context) error {
	return e.arbiter.Run(ctx)
}

// Start runs the arbiter in the background. A stop for any reason other than
// cancellation is logged at debug level.
func (e *Engine) Start(ctx context.Context) {
	go func() {
		if err := e.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			e.logger.Debug("tap-hold arbiter stopped", "error", err)
		}
	}()
}

// Poll runs one arbiter sweep; see taphold.Arbiter.Poll.
func (e *Engine) Poll() time.Duration { return e.arbiter.Poll() }

// SetEnabled opens or closes the enable gate.
func (e *Engine) SetEnabled(on bool) {
	if e.enabled.Swap(on) != on {
		e.logger.Info("keyboard overdrive", "enabled", on)
	}
}

// Enabled reports the gate state.
func (e *Engine) Enabled() bool { return e.enabled.Load() }

// Layers exposes the layer state for observers.
func (e *Engine) Layers() *layer.State { return e.layers }

// Keymap returns the keymap the engine resolves against.
func (e *Engine) Keymap() *keymap.Keymap { return e.keymap }

// OnMatrixEvent handles one switch transition. It never fails: events at
// positions outside the matrix are consumed without output.
func (e *Engine) OnMatrixEvent(row, col uint8, pressed bool) Result {
	if !e.enabled.Load() {
		return NotInstalled
	}
	p := matrix.Pos(row, col)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.logger.Debug("keyscan", "row", row, "col", col, "pressed", pressed, "lmask", e.layers.Effective())
	if !p.Valid() {
		e.logger.Warn("keyscan outside matrix", "row", row, "col", col)
		return Consumed
	}

	var (
		w action.Word
		l uint8
	)
	if pressed {
		w, l = e.keymap.Resolve(p, e.layers.Effective())
		e.pressed.Record(p, l)
	} else {
		l = e.pressed.Take(p)
		w = e.keymap.At(l, p)
	}
	e.logger.Debug("action", "act", w, "layer", l, "forced", !pressed)

	rec := matrix.Record{Pos: p, Pressed: pressed}
	for _, chain := range [][]RecordHook{e.user, e.keyboard, e.protocol} {
		for _, h := range chain {
			if !h.ProcessRecord(e.layers, w, &rec) {
				return Consumed
			}
		}
	}

	a := action.Decode(w)
	switch a.Op {
	case action.OpModTap, action.OpLayerTap:
		if rec.Pressed {
			e.arbiter.Press(w, rec)
		} else {
			e.arbiter.Release(w, rec)
		}
	case action.OpLayerToggle:
		if rec.Pressed {
			e.logger.Debug("layer toggle", "layer", a.Layer)
			e.layers.Invert(a.Layer)
		}
	default:
		e.plain(a, rec.Pressed)
	}
	return Consumed
}

// execute resolves a tap-hold action. rec.TapCount 1 is the tap, 0 the hold.
func (e *Engine) execute(w action.Word, rec matrix.Record) {
	a := action.Decode(w)
	tap := rec.TapCount > 0
	switch a.Op {
	case action.OpModTap:
		if tap {
			e.key(a.Keycode, rec)
		} else {
			e.mods(a.Mods, rec.Pressed)
		}
	case action.OpLayerTap:
		switch {
		case tap:
			e.key(a.Keycode, rec)
		case rec.Pressed:
			e.logger.Debug("layer on", "layer", a.Layer)
			e.layers.On(a.Layer)
		default:
			e.logger.Debug("layer off", "layer", a.Layer)
			e.layers.Off(a.Layer)
		}
	default:
		e.plain(a, rec.Pressed)
	}
}

// plain emits modifiers around the key: before it on press, after it on
// release.
func (e *Engine) plain(a action.Action, pressed bool) {
	if pressed {
		e.mods(a.Mods, true)
		e.emit(a.Keycode, pressed)
		return
	}
	e.emit(a.Keycode, pressed)
	e.mods(a.Mods, false)
}

// key emits a tap resolution, giving protocol hooks the chance to route it.
func (e *Engine) key(kc keycode.Code, rec matrix.Record) {
	if kc == keycode.No {
		return
	}
	w := action.Key(kc)
	for _, h := range e.protocol {
		if !h.ProcessRecord(e.layers, w, &rec) {
			return
		}
	}
	e.emit(kc, rec.Pressed)
}

func (e *Engine) mods(m action.Mods, pressed bool) {
	for _, sc := range scancode.Modifier(m) {
		e.sink.Scancode(sc, pressed)
	}
}

func (e *Engine) emit(kc keycode.Code, pressed bool) {
	if kc == keycode.No {
		return
	}
	if seq, ok := scancode.Multibyte(kc); ok {
		if b := seq.Bytes(pressed); b != nil {
			e.sink.Sequence(b)
		}
		return
	}
	sc, ok := scancode.Encode(kc)
	if !ok {
		e.logger.Warn("no scancode for keycode", "kc", kc)
		return
	}
	e.sink.Scancode(sc, pressed)
}
