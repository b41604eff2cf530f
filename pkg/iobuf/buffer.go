package iobuf

import (
	"fmt"

	"github.com/nagyist/IOLVMPartitionScheme/pkg/mem"
)

// Buffer is an owned, fixed-capacity byte buffer used as the transfer
// target for device reads. Its capacity never changes after creation
// and the backing memory stays owned by the buffer until Free.
type Buffer struct {
	data  []byte
	alloc mem.Allocator
}

// New allocates a buffer of exactly capacity bytes from alloc.
// On allocation failure no partial buffer is left behind.
func New(alloc mem.Allocator, capacity int) (*Buffer, error) {
	data, err := alloc.Allocate(capacity)
	if err != nil {
		return nil, fmt.Errorf("allocating %d byte buffer: %w", capacity, err)
	}

	return &Buffer{
		data:  data,
		alloc: alloc,
	}, nil
}

// Bytes returns the buffer's contents without copying. Consumers must
// treat the slice as read-only; only the device read path fills it.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Cap returns the buffer's fixed capacity in bytes.
func (b *Buffer) Cap() int {
	return len(b.data)
}

// Free returns the backing memory to the allocator. It must be called
// exactly once; the buffer is unusable afterwards.
func (b *Buffer) Free() {
	b.alloc.Release(b.data)
	b.data = nil
}
