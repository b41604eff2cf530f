package backend

import (
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/nagyist/IOLVMPartitionScheme/pkg/block"
)

// Mmap is a block.Storage over a read-only memory mapping of an image
// file. Reads copy out of the mapping.
type Mmap struct {
	path      string
	blockSize uint64
	file      *os.File
	mmap      mmap.MMap
	size      int64
}

func NewMmap(path string, blockSize uint64) *Mmap {
	return &Mmap{
		path:      path,
		blockSize: blockSize,
	}
}

func (m *Mmap) PreferredBlockSize() uint64 {
	return m.blockSize
}

func (m *Mmap) Open(access block.AccessMode) bool {
	if access != block.AccessReader {
		return false
	}

	f, err := os.Open(m.path)
	if err != nil {
		return false
	}

	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()

		return false
	}

	m.file = f
	m.mmap = mm
	m.size = int64(len(mm))

	return true
}

func (m *Mmap) Close() {
	if m.file == nil {
		return
	}

	m.mmap.Unmap()
	m.file.Close()
	m.file = nil
	m.mmap = nil
}

func (m *Mmap) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= m.size {
		return 0, io.EOF
	}
	if off+int64(len(p)) > m.size {
		return 0, fmt.Errorf("read past end of mapping: %d bytes at %d: %w", len(p), off, io.ErrUnexpectedEOF)
	}

	return copy(p, m.mmap[off:off+int64(len(p))]), nil
}
