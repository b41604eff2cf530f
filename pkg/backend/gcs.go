package backend

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"cloud.google.com/go/storage"
	"github.com/googleapis/gax-go/v2"

	"github.com/nagyist/IOLVMPartitionScheme/pkg/block"
)

const fetchTimeout = 10 * time.Second

// GCS is a block.Storage over an object in a GCS bucket. Object stores
// have no native sector size, so the block size is caller-configured.
type GCS struct {
	object    *storage.ObjectHandle
	ctx       context.Context
	blockSize uint64
	isOpen    bool
}

func NewGCS(ctx context.Context, client *storage.Client, bucket, objectPath string, blockSize uint64) *GCS {
	obj := client.Bucket(bucket).Object(objectPath).Retryer(
		storage.WithBackoff(gax.Backoff{
			Initial:    10 * time.Millisecond,
			Max:        10 * time.Second,
			Multiplier: 2,
		}),
		storage.WithPolicy(storage.RetryAlways),
	)

	return &GCS{
		object:    obj,
		ctx:       ctx,
		blockSize: blockSize,
	}
}

func (g *GCS) PreferredBlockSize() uint64 {
	return g.blockSize
}

// Open verifies the object is reachable. GCS objects need no open
// handle, so this only gates reads behind an existence check.
func (g *GCS) Open(access block.AccessMode) bool {
	if access != block.AccessReader {
		return false
	}

	ctx, cancel := context.WithTimeout(g.ctx, fetchTimeout)
	defer cancel()

	if _, err := g.object.Attrs(ctx); err != nil {
		return false
	}
	g.isOpen = true

	return true
}

func (g *GCS) Close() {
	g.isOpen = false
}

func (g *GCS) ReadAt(p []byte, off int64) (int, error) {
	if !g.isOpen {
		return 0, fmt.Errorf("read on a GCS object that is not open")
	}

	ctx, cancel := context.WithTimeout(g.ctx, fetchTimeout)
	defer cancel()

	reader, err := g.object.NewRangeReader(ctx, off, int64(len(p)))
	if err != nil {
		return 0, fmt.Errorf("failed to create GCS range reader: %w", err)
	}

	defer func() {
		closeErr := reader.Close()
		if closeErr != nil {
			log.Printf("failed to close GCS reader: %v", closeErr)
		}
	}()

	n, err := io.ReadFull(reader, p)
	if err != nil {
		return n, fmt.Errorf("failed to read GCS object range at %d: %w", off, err)
	}

	return n, nil
}

// Size returns the object's size in bytes.
func (g *GCS) Size() (int64, error) {
	ctx, cancel := context.WithTimeout(g.ctx, fetchTimeout)
	defer cancel()

	attrs, err := g.object.Attrs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get GCS object attributes: %w", err)
	}

	return attrs.Size, nil
}
