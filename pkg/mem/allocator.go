package mem

import "errors"

// ErrOutOfMemory is returned when an allocator cannot satisfy a request.
var ErrOutOfMemory = errors.New("out of memory")

// Allocator hands out and reclaims byte slices. Callers own a returned
// slice exclusively until they pass it back to Release, exactly once.
type Allocator interface {
	Allocate(size int) ([]byte, error)
	Release(p []byte)
}

type systemAllocator struct{}

// System returns the heap-backed allocator.
func System() Allocator {
	return systemAllocator{}
}

func (systemAllocator) Allocate(size int) ([]byte, error) {
	if size < 0 {
		return nil, ErrOutOfMemory
	}

	return make([]byte, size), nil
}

func (systemAllocator) Release([]byte) {}
