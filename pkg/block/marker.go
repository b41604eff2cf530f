package block

import (
	"sync"

	"github.com/bits-and-blooms/bitset"
)

// Marker tracks which blocks of a device are currently readable.
type Marker struct {
	bitset *bitset.BitSet
	mu     sync.RWMutex
}

func NewMarker(blocks uint) *Marker {
	return &Marker{
		bitset: bitset.New(blocks),
	}
}

func (m *Marker) Mark(block int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.bitset.Set(uint(block))
}

func (m *Marker) Unmark(block int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.bitset.Clear(uint(block))
}

func (m *Marker) IsMarked(block int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.bitset.Test(uint(block))
}
