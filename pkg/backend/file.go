// Package backend provides concrete storage collaborators for the
// device layer: local files, memory-mapped images, and GCS objects.
package backend

import (
	"os"

	"golang.org/x/sys/unix"

	"github.com/nagyist/IOLVMPartitionScheme/pkg/block"
)

// DefaultBlockSize is used when the filesystem does not report a
// usable block size for an image file.
const DefaultBlockSize = 512

// File is a block.Storage over a local file or block device node.
type File struct {
	path      string
	file      *os.File
	blockSize uint64
}

type FileOption func(*File)

// WithBlockSize overrides the discovered block size. Useful for image
// files whose filesystem block size differs from the imaged device's.
func WithBlockSize(size uint64) FileOption {
	return func(f *File) {
		f.blockSize = size
	}
}

func NewFile(path string, opts ...FileOption) *File {
	f := &File{path: path}
	for _, opt := range opts {
		opt(f)
	}

	return f
}

func (f *File) PreferredBlockSize() uint64 {
	if f.blockSize != 0 {
		return f.blockSize
	}

	var st unix.Stat_t
	if err := unix.Stat(f.path, &st); err != nil || st.Blksize <= 0 {
		return DefaultBlockSize
	}

	return uint64(st.Blksize)
}

func (f *File) Open(access block.AccessMode) bool {
	if access != block.AccessReader {
		return false
	}

	file, err := os.Open(f.path)
	if err != nil {
		return false
	}
	f.file = file

	return true
}

func (f *File) Close() {
	if f.file == nil {
		return
	}

	f.file.Close()
	f.file = nil
}

func (f *File) ReadAt(p []byte, off int64) (int, error) {
	return f.file.ReadAt(p, off)
}
