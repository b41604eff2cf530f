// Package device implements the read shim between a volume-metadata
// parser and a block storage collaborator. Callers issue arbitrary
// byte-range reads; the device handle translates them into reads
// aligned to the device's native block size, using a scratch buffer
// when the request is misaligned.
package device

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/nagyist/IOLVMPartitionScheme/pkg/block"
	"github.com/nagyist/IOLVMPartitionScheme/pkg/iobuf"
	"github.com/nagyist/IOLVMPartitionScheme/pkg/mem"
)

// Device owns an open, read-only storage reference together with the
// device's block size recorded at open time. A handle is single-use:
// once closed it cannot be reopened, and at most one Read may be in
// flight per handle.
type Device struct {
	storage   block.Storage
	blockSize uint32
	alloc     mem.Allocator
	log       *zap.Logger
	closed    bool
}

type Option func(*Device)

// WithAllocator sets the allocator used for scratch buffers on the
// misaligned read path. Defaults to mem.System().
func WithAllocator(alloc mem.Allocator) Option {
	return func(d *Device) {
		d.alloc = alloc
	}
}

// WithLogger sets the logger for the error-reporting side channel.
// Defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(d *Device) {
		d.log = log
	}
}

// Open validates the storage's preferred block size, opens the storage
// for read-only access, and returns a handle owning the open reference.
// On any failure after the storage has been opened, the storage is
// closed again before Open returns: a device is never left open without
// an owning handle.
func Open(storage block.Storage, opts ...Option) (*Device, error) {
	d := &Device{
		alloc: mem.System(),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}

	blockSize := storage.PreferredBlockSize()
	if blockSize == 0 || blockSize > math.MaxUint32 {
		d.log.Error("unrealistic media block size", zap.Uint64("block_size", blockSize))

		return nil, fmt.Errorf("%w: %d", ErrInvalidBlockSize, blockSize)
	}

	if !storage.Open(block.AccessReader) {
		d.log.Error("error while opening media")

		return nil, ErrAccessDenied
	}

	d.storage = storage
	d.blockSize = uint32(blockSize)

	return d, nil
}

// BlockSize returns the device-native block size recorded at open time.
func (d *Device) BlockSize() uint32 {
	return d.blockSize
}

// Close closes the owned storage reference. It must be called exactly
// once; further calls return ErrClosed without touching the storage.
func (d *Device) Close() error {
	if d.closed {
		return ErrClosed
	}
	d.closed = true

	d.storage.Close()

	return nil
}

// Read fills into with count bytes starting at byte offset pos in the
// device's byte stream. count must equal into.Cap(); the destination
// buffer is never resized, only written into.
//
// When the request already starts and ends on block boundaries and
// exactly fills the destination, the storage read goes directly into
// the caller's buffer. Otherwise the request is widened to block
// boundaries, read into a scratch buffer, and the requested sub-range
// is copied back. The scratch buffer is released on every exit path.
// Either way the storage sees exactly one read per call.
func (d *Device) Read(pos uint64, count uint64, into *iobuf.Buffer) error {
	if d.closed {
		return ErrClosed
	}

	if count > uint64(math.MaxInt) {
		return fmt.Errorf("%w: %d bytes", ErrReadTooLarge, count)
	}

	blockSize := uint64(d.blockSize)
	leadIn := pos % blockSize
	leadOut := (blockSize - (leadIn+count)%blockSize) % blockSize

	if leadIn == 0 && leadOut == 0 && count == uint64(into.Cap()) {
		if _, err := d.storage.ReadAt(into.Bytes(), int64(pos)); err != nil {
			return fmt.Errorf("%w: %d bytes at %d: %w", ErrIO, count, pos, err)
		}

		return nil
	}

	alignedPos := pos - leadIn
	alignedCount := leadIn + count + leadOut

	d.log.Warn("unaligned read, aligning",
		zap.Uint64("pos", pos),
		zap.Uint64("count", count),
		zap.Uint64("aligned_pos", alignedPos),
		zap.Uint64("aligned_count", alignedCount),
	)

	scratch, err := iobuf.New(d.alloc, int(alignedCount))
	if err != nil {
		d.log.Error("scratch buffer allocation failed",
			zap.Uint64("bytes", alignedCount),
			zap.Error(err),
		)

		return err
	}
	defer scratch.Free()

	if _, err := d.storage.ReadAt(scratch.Bytes(), int64(alignedPos)); err != nil {
		return fmt.Errorf("%w: %d bytes at %d: %w", ErrIO, alignedCount, alignedPos, err)
	}

	n := copy(into.Bytes(), scratch.Bytes()[leadIn:leadIn+count])
	if uint64(n) != count {
		// Short copies only happen when the caller breaks the
		// count == into.Cap() obligation. Reported, not escalated.
		d.log.Warn("short copy into destination buffer",
			zap.Int("copied", n),
			zap.Uint64("requested", count),
		)
	}

	return nil
}
