package matrix

// LayerBits is the width of a cached layer number.
const LayerBits = 3

const layerMask = 1<<LayerBits - 1

// PressedLayers remembers, for every position, which layer resolved its last
// press so the release can be decoded against the same layer. Fields are
// LayerBits wide and packed into bytes.
//
// The zero value is ready to use. PressedLayers is not safe for concurrent
// use; the engine guards it with its dispatch lock.
type PressedLayers struct {
	bits [(Keys*LayerBits + 7) / 8]byte
}

// Record stores layer for p. Layers above 7 are truncated and positions
// outside the matrix are ignored.
func (c *PressedLayers) Record(p Position, layer uint8) {
	if !p.Valid() {
		return
	}
	c.write(p.Index(), layer&layerMask)
}

// Take returns the layer recorded for p and resets the field to 0.
func (c *PressedLayers) Take(p Position) uint8 {
	if !p.Valid() {
		return 0
	}
	l := c.Get(p)
	c.write(p.Index(), 0)
	return l
}

// Get returns the layer recorded for p without clearing it.
func (c *PressedLayers) Get(p Position) uint8 {
	if !p.Valid() {
		return 0
	}
	var v uint16
	bit := p.Index() * LayerBits
	for i := 0; i < LayerBits; i++ {
		if c.bits[(bit+i)/8]&(1<<((bit+i)%8)) != 0 {
			v |= 1 << i
		}
	}
	return uint8(v)
}

func (c *PressedLayers) write(idx int, layer uint8) {
	bit := idx * LayerBits
	for i := 0; i < LayerBits; i++ {
		b := &c.bits[(bit+i)/8]
		m := byte(1) << ((bit + i) % 8)
		if layer&(1<<i) != 0 {
			*b |= m
		} else {
			*b &^= m
		}
	}
}

// Reset clears every recorded layer.
func (c *PressedLayers) Reset() { *c = PressedLayers{} }
