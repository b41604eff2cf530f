package block

import (
	"fmt"
	"sync"
)

// MockStorage is an in-memory Storage backed by a byte slice. It
// enforces the collaborator contract strictly: reads must be aligned
// to the configured block size and stay within the device, and reads
// touching an unmarked block fail with ErrBytesNotAvailable. Tests use
// it to fault-inject I/O errors and to observe open/close symmetry.
type MockStorage struct {
	data      []byte
	blockSize uint64
	marker    *Marker

	mu       sync.RWMutex
	isOpen   bool
	denyOpen bool
	opens    int
	closes   int
	reads    int
}

// NewMockStorage creates a mock device over data with the given block
// size. All blocks start out marked readable.
func NewMockStorage(data []byte, blockSize uint64) *MockStorage {
	var marker *Marker

	if blockSize > 0 {
		marker = NewMarker(uint((uint64(len(data)) + blockSize - 1) / blockSize))
		for i := int64(0); i < int64(len(data)); i += int64(blockSize) {
			marker.Mark(i / int64(blockSize))
		}
	}

	return &MockStorage{
		data:      data,
		blockSize: blockSize,
		marker:    marker,
	}
}

// FailBlock makes subsequent reads covering the given block fail.
func (m *MockStorage) FailBlock(block int64) {
	m.marker.Unmark(block)
}

// DenyOpen makes Open report an access failure.
func (m *MockStorage) DenyOpen() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.denyOpen = true
}

func (m *MockStorage) PreferredBlockSize() uint64 {
	return m.blockSize
}

func (m *MockStorage) Open(access AccessMode) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.denyOpen || access != AccessReader {
		return false
	}

	m.isOpen = true
	m.opens++

	return true
}

func (m *MockStorage) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.isOpen = false
	m.closes++
}

func (m *MockStorage) ReadAt(p []byte, off int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reads++

	if !m.isOpen {
		return 0, fmt.Errorf("read on a device that is not open")
	}

	bs := int64(m.blockSize)
	if off%bs != 0 || int64(len(p))%bs != 0 {
		return 0, fmt.Errorf("misaligned device read: %d bytes at %d with block size %d", len(p), off, bs)
	}

	if off < 0 || off+int64(len(p)) > int64(len(m.data)) {
		return 0, fmt.Errorf("device read out of range: %d bytes at %d", len(p), off)
	}

	for i := off; i < off+int64(len(p)); i += bs {
		if !m.marker.IsMarked(i / bs) {
			return 0, ErrBytesNotAvailable{}
		}
	}

	return copy(p, m.data[off:off+int64(len(p))]), nil
}

// OpenCount returns how many times Open succeeded.
func (m *MockStorage) OpenCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.opens
}

// CloseCount returns how many times Close was called.
func (m *MockStorage) CloseCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.closes
}

// ReadCount returns how many device reads were attempted.
func (m *MockStorage) ReadCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.reads
}
