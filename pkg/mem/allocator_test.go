package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemAllocator(t *testing.T) {
	alloc := System()

	p, err := alloc.Allocate(64)
	require.NoError(t, err)
	assert.Len(t, p, 64)

	alloc.Release(p)
}

func TestSystemAllocatorNegativeSize(t *testing.T) {
	_, err := System().Allocate(-1)
	assert.ErrorIs(t, err, ErrOutOfMemory)
}

func TestCountingAllocator(t *testing.T) {
	alloc := NewCountingAllocator(System())

	p, err := alloc.Allocate(128)
	require.NoError(t, err)
	assert.Equal(t, 1, alloc.Outstanding())
	assert.Equal(t, 1, alloc.Allocations())
	assert.Equal(t, 128, alloc.LastSize())

	alloc.Release(p)
	assert.Equal(t, 0, alloc.Outstanding())
}

func TestCountingAllocatorFailNext(t *testing.T) {
	alloc := NewCountingAllocator(System())
	alloc.FailNext(1)

	_, err := alloc.Allocate(16)
	assert.ErrorIs(t, err, ErrOutOfMemory)
	assert.Equal(t, 0, alloc.Outstanding())

	// The failure window is consumed, the next request succeeds.
	p, err := alloc.Allocate(16)
	require.NoError(t, err)
	alloc.Release(p)
}
