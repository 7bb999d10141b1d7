// Package overdrive turns key matrix transitions into layered, tap-hold aware
// key actions and emits them as PS/2 set-2 scancodes.
//
// An Engine owns the layer state, the pressed-layer cache and the tap-hold
// arbiter. Matrix events, deferred tap-hold resolutions, power transitions and
// external layer edits are serialized by a single dispatch lock.
package overdrive

import (
	"github.com/Alia5/overdrive/action"
	"github.com/Alia5/overdrive/layer"
	"github.com/Alia5/overdrive/matrix"
)

// Result is the outcome of OnMatrixEvent.
type Result int

const (
	// NotInstalled means the engine is disabled and the caller should handle
	// the event itself.
	NotInstalled Result = iota
	// Consumed means the engine handled the event.
	Consumed
)

func (r Result) String() string {
	if r == Consumed {
		return "consumed"
	}
	return "not_installed"
}

// RecordHook observes a resolved action before it executes. Returning false
// consumes the event and stops the chain. Hooks run under the dispatch lock
// and may change layers through l, but must not call back into the Engine.
type RecordHook interface {
	ProcessRecord(l *layer.State, w action.Word, rec *matrix.Record) bool
}

// RecordHookFunc adapts a function to RecordHook.
type RecordHookFunc func(l *layer.State, w action.Word, rec *matrix.Record) bool

func (f RecordHookFunc) ProcessRecord(l *layer.State, w action.Word, rec *matrix.Record) bool {
	return f(l, w, rec)
}

// PowerHook runs on host suspend and resume.
type PowerHook interface {
	Suspend(l *layer.State)
	Resume(l *layer.State)
}
