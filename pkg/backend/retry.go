package backend

import (
	"errors"
	"io"
	"time"

	"github.com/nagyist/IOLVMPartitionScheme/pkg/block"
)

const (
	ReadRetries    = 3
	ReadRetryDelay = 1 * time.Millisecond
)

// Retrier wraps a block.Storage and retries transient read failures
// with a fixed delay. Open, Close, and the block size delegate to the
// wrapped storage untouched.
type Retrier struct {
	base       block.Storage
	maxRetries int
	retryDelay time.Duration
}

func NewRetrier(base block.Storage, maxRetries int, retryDelay time.Duration) *Retrier {
	return &Retrier{
		base:       base,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
	}
}

func (r *Retrier) PreferredBlockSize() uint64 {
	return r.base.PreferredBlockSize()
}

func (r *Retrier) Open(access block.AccessMode) bool {
	return r.base.Open(access)
}

func (r *Retrier) Close() {
	r.base.Close()
}

func (r *Retrier) ReadAt(p []byte, off int64) (n int, err error) {
	for i := 0; i < r.maxRetries; i++ {
		n, err = r.base.ReadAt(p, off)
		if err != nil && !errors.Is(err, io.EOF) {
			time.Sleep(r.retryDelay)

			continue
		}

		return n, err
	}

	return n, err
}
