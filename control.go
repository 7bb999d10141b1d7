package overdrive

import (
	"fmt"

	"github.com/Alia5/overdrive/layer"
)

// Suspend runs the keyboard and then the user power hooks for a host suspend.
func (e *Engine) Suspend() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.suspended.Swap(true) {
		return
	}
	e.logger.Info("suspend")
	for _, h := range e.keyboardPower {
		h.Suspend(e.layers)
	}
	for _, h := range e.userPower {
		h.Suspend(e.layers)
	}
}

// Resume runs the keyboard and then the user power hooks for a host resume.
// It also runs on a fresh engine, matching boot.
func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.suspended.Store(false)
	e.logger.Info("resume")
	for _, h := range e.keyboardPower {
		h.Resume(e.layers)
	}
	for _, h := range e.userPower {
		h.Resume(e.layers)
	}
}

// LayerOp is an external layer edit.
type LayerOp string

const (
	LayerOn     LayerOp = "on"
	LayerOff    LayerOp = "off"
	LayerToggle LayerOp = "toggle"
)

// EditLayer applies op to layer l under the dispatch lock.
func (e *Engine) EditLayer(l uint8, op LayerOp) error {
	if l >= layer.Max {
		return fmt.Errorf("layer %d out of range [0,%d)", l, layer.Max)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	switch op {
	case LayerOn:
		e.layers.On(l)
	case LayerOff:
		e.layers.Off(l)
	case LayerToggle:
		e.layers.Invert(l)
	default:
		return fmt.Errorf("unknown layer op %q", op)
	}
	return nil
}

// Status is a point in time view of the engine.
type Status struct {
	Enabled   bool
	Suspended bool
	Active    layer.Mask
	Effective layer.Mask
	Layers    int
	Pending   int
}

// Status reads the engine state without taking the dispatch lock.
func (e *Engine) Status() Status {
	return Status{
		Enabled:   e.Enabled(),
		Suspended: e.suspended.Load(),
		Active:    e.layers.Active(),
		Effective: e.layers.Effective(),
		Layers:    e.keymap.Len(),
		Pending:   e.arbiter.Pending(),
	}
}
