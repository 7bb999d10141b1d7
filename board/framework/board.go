package framework

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/Alia5/overdrive"
	"github.com/Alia5/overdrive/action"
	"github.com/Alia5/overdrive/layer"
	"github.com/Alia5/overdrive/matrix"
	"github.com/Alia5/overdrive/output"
	"github.com/Alia5/overdrive/store"
)

// Backlight brightness levels in percent.
const (
	BrightnessOff  uint8 = 0
	BrightnessLow  uint8 = 20
	BrightnessMed  uint8 = 50
	BrightnessHigh uint8 = 100
)

// BacklightDriver controls the keyboard backlight.
type BacklightDriver interface {
	Brightness() uint8
	SetBrightness(percent uint8)
	Enable(on bool)
}

// LEDFunc drives the caps-lock LED.
type LEDFunc func(on bool)

// Board implements the Framework hooks on top of an engine.
type Board struct {
	store     store.Store
	backlight BacklightDriver
	led       LEDFunc
	logger    *slog.Logger
}

// New creates a board. A nil backlight or led is replaced by a logging
// software implementation.
func New(st store.Store, bl BacklightDriver, led LEDFunc, logger *slog.Logger) *Board {
	if logger == nil {
		logger = slog.Default()
	}
	if st == nil {
		st = store.NewMemory()
	}
	if bl == nil {
		bl = NewSoftBacklight(logger)
	}
	if led == nil {
		led = func(on bool) { logger.Debug("caps led", "on", on) }
	}
	return &Board{store: st, backlight: bl, led: led, logger: logger}
}

// Options wires the board into an engine emitting to sink.
func (b *Board) Options(sink output.Sink) []overdrive.Option {
	return []overdrive.Option{
		overdrive.WithUserHook(b),
		overdrive.WithProtocolHook(output.PS2Protocol{Sink: sink}),
		overdrive.WithUserLayerTransform(b.LayerStateSet),
		overdrive.WithUserPower(b),
	}
}

// ProcessRecord handles the FN and backlight keys.
func (b *Board) ProcessRecord(l *layer.State, w action.Word, rec *matrix.Record) bool {
	switch w {
	case Fn:
		// FN flips the top row for as long as it is held, so it also
		// undoes FN lock.
		l.Invert(LayerFnAny)
		if rec.Pressed {
			l.On(LayerFnPressed)
		} else {
			l.Off(LayerFnPressed)
		}
		return false
	case Backlight:
		if rec.Pressed {
			b.cycleBacklight()
		}
		return false
	}
	return true
}

func (b *Board) cycleBacklight() {
	next := BrightnessLow
	switch b.backlight.Brightness() {
	case BrightnessLow:
		next = BrightnessMed
	case BrightnessMed:
		next = BrightnessHigh
	case BrightnessHigh:
		b.backlight.Enable(false)
		next = BrightnessOff
	default:
		b.backlight.Enable(true)
	}
	b.backlight.SetBrightness(next)
}

// LayerStateSet lights the caps-lock LED unless the FN layer is active.
func (b *Board) LayerStateSet(m layer.Mask) layer.Mask {
	b.led(!m.Has(LayerFnAny))
	return m
}

// Suspend saves the FN lock state and clears it.
func (b *Board) Suspend(l *layer.State) {
	var v uint8
	if l.IsActive(LayerFnAny) {
		v = 1
	}
	if err := b.store.Set(store.SlotOverdriveState, v); err != nil {
		b.logger.Warn("failed to save fn lock state", "error", err)
	}
	l.Off(LayerFnAny)
}

// Resume restores the FN lock state saved by Suspend.
func (b *Board) Resume(l *layer.State) {
	v, err := b.store.Get(store.SlotOverdriveState)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			b.logger.Warn("failed to read fn lock state", "error", err)
		}
		return
	}
	if v != 0 {
		l.On(LayerFnAny)
	}
}

// SoftBacklight is a BacklightDriver that only tracks and logs its state.
type SoftBacklight struct {
	mu         sync.Mutex
	brightness uint8
	enabled    bool
	logger     *slog.Logger
}

func NewSoftBacklight(logger *slog.Logger) *SoftBacklight {
	return &SoftBacklight{logger: logger}
}

func (s *SoftBacklight) Brightness() uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.brightness
}

func (s *SoftBacklight) SetBrightness(percent uint8) {
	s.mu.Lock()
	s.brightness = percent
	s.mu.Unlock()
	s.logger.Info("backlight", "brightness", percent)
}

func (s *SoftBacklight) Enable(on bool) {
	s.mu.Lock()
	s.enabled = on
	s.mu.Unlock()
	s.logger.Debug("backlight enable", "on", on)
}

func (s *SoftBacklight) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}
