// Package store persists the few bytes of engine state that survive a power
// transition.
package store

import (
	"errors"
	"sync"
)

// ErrNotFound is returned for a slot that was never written.
var ErrNotFound = errors.New("slot not found")

// Slot names a persisted byte.
type Slot string

// SlotOverdriveState holds the FN lock state across suspend.
const SlotOverdriveState Slot = "keyboard_overdrive_state"

// Store reads and writes slots.
type Store interface {
	Get(slot Slot) (uint8, error)
	Set(slot Slot, v uint8) error
}

// Memory is a volatile Store.
type Memory struct {
	mu    sync.Mutex
	slots map[Slot]uint8
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{slots: map[Slot]uint8{}}
}

func (m *Memory) Get(slot Slot) (uint8, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.slots[slot]
	if !ok {
		return 0, ErrNotFound
	}
	return v, nil
}

func (m *Memory) Set(slot Slot, v uint8) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[slot] = v
	return nil
}
