// Package layer tracks which keymap layers are active.
package layer

import (
	"fmt"
	"strings"
	"sync"
)

// Max is the number of layers a Mask can address.
const Max = 8

// Base is the layer that is always active.
const Base uint8 = 0

// Mask is a set of layers, bit n standing for layer n.
type Mask uint8

// Bit returns the mask with only layer l set. Layers outside [0, Max) yield
// an empty mask.
func Bit(l uint8) Mask {
	if l >= Max {
		return 0
	}
	return 1 << l
}

// Has reports whether layer l is in m.
func (m Mask) Has(l uint8) bool { return m&Bit(l) != 0 }

// Top returns the highest layer in m, or Base when m is empty.
func (m Mask) Top() uint8 {
	for l := uint8(Max); l > 0; l-- {
		if m.Has(l - 1) {
			return l - 1
		}
	}
	return Base
}

// Layers lists the layers in m in ascending order.
func (m Mask) Layers() []uint8 {
	var out []uint8
	for l := uint8(0); l < Max; l++ {
		if m.Has(l) {
			out = append(out, l)
		}
	}
	return out
}

func (m Mask) String() string {
	ls := m.Layers()
	parts := make([]string, len(ls))
	for i, l := range ls {
		parts[i] = fmt.Sprint(l)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// Transform may rewrite a candidate mask before it is committed. Returning the
// input unchanged accepts it.
type Transform func(Mask) Mask

// State holds the active layer mask. The base mask is fixed at layer 0 and is
// never part of the active mask.
type State struct {
	mu     sync.RWMutex
	base   Mask
	active Mask

	keyboard []Transform
	user     []Transform
}

// Option configures a State.
type Option func(*State)

// WithKeyboardTransform appends a keyboard level transform. Keyboard
// transforms run before user transforms.
func WithKeyboardTransform(t Transform) Option {
	return func(s *State) { s.keyboard = append(s.keyboard, t) }
}

// WithUserTransform appends a user level transform.
func WithUserTransform(t Transform) Option {
	return func(s *State) { s.user = append(s.user, t) }
}

// New returns a State with only the base layer in effect.
func New(opts ...Option) *State {
	s := &State{base: Bit(Base)}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Set pipes m through the keyboard and then the user transforms and commits
// the result.
func (s *State) Set(m Mask) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(m)
}

func (s *State) set(m Mask) {
	for _, t := range s.keyboard {
		m = t(m)
	}
	for _, t := range s.user {
		m = t(m)
	}
	s.active = m
}

// On activates layer l.
func (s *State) On(l uint8) { s.update(func(m Mask) Mask { return m | Bit(l) }) }

// Off deactivates layer l.
func (s *State) Off(l uint8) { s.update(func(m Mask) Mask { return m &^ Bit(l) }) }

// Invert flips layer l.
func (s *State) Invert(l uint8) { s.update(func(m Mask) Mask { return m ^ Bit(l) }) }

func (s *State) update(f func(Mask) Mask) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(f(s.active))
}

// IsActive reports whether layer l is in the active mask.
func (s *State) IsActive(l uint8) bool { return s.Active().Has(l) }

// Active returns the active mask without the base layer.
func (s *State) Active() Mask {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Base returns the base mask.
func (s *State) Base() Mask { return s.base }

// Effective returns base | active, the mask used for resolution.
func (s *State) Effective() Mask {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.base | s.active
}
