package mem

import "sync"

// CountingAllocator wraps another allocator and tracks outstanding
// allocations. It can be armed to fail upcoming requests, which lets
// tests drive the read path through its allocation-failure branches.
type CountingAllocator struct {
	base Allocator

	mu          sync.Mutex
	outstanding int
	allocations int
	lastSize    int
	failNext    int
}

func NewCountingAllocator(base Allocator) *CountingAllocator {
	return &CountingAllocator{base: base}
}

// FailNext makes the next n calls to Allocate return ErrOutOfMemory.
func (c *CountingAllocator) FailNext(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.failNext = n
}

func (c *CountingAllocator) Allocate(size int) ([]byte, error) {
	c.mu.Lock()
	if c.failNext > 0 {
		c.failNext--
		c.mu.Unlock()

		return nil, ErrOutOfMemory
	}
	c.mu.Unlock()

	p, err := c.base.Allocate(size)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.outstanding++
	c.allocations++
	c.lastSize = size
	c.mu.Unlock()

	return p, nil
}

func (c *CountingAllocator) Release(p []byte) {
	c.mu.Lock()
	c.outstanding--
	c.mu.Unlock()

	c.base.Release(p)
}

// Outstanding returns the number of allocations not yet released.
func (c *CountingAllocator) Outstanding() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.outstanding
}

// Allocations returns the total number of successful allocations.
func (c *CountingAllocator) Allocations() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.allocations
}

// LastSize returns the size of the most recent successful allocation.
func (c *CountingAllocator) LastSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lastSize
}
