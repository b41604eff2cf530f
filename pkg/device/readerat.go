package device

import (
	"fmt"
	"io"

	"github.com/nagyist/IOLVMPartitionScheme/pkg/iobuf"
)

// ReaderAt adapts the device to io.ReaderAt so metadata parsers can
// consume it with standard readers. Each ReadAt performs one aligned
// device read through an internal buffer of len(p) bytes.
func (d *Device) ReaderAt() io.ReaderAt {
	return readerAt{d: d}
}

type readerAt struct {
	d *Device
}

func (r readerAt) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("negative read offset: %d", off)
	}

	buf, err := iobuf.New(r.d.alloc, len(p))
	if err != nil {
		return 0, err
	}
	defer buf.Free()

	if err := r.d.Read(uint64(off), uint64(len(p)), buf); err != nil {
		return 0, err
	}

	return copy(p, buf.Bytes()), nil
}
