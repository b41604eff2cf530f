package block

// AccessMode selects how a storage device is opened.
type AccessMode int

const (
	// AccessReader opens the device for reading only.
	AccessReader AccessMode = iota
	// AccessReaderWriter opens the device for reading and writing.
	// The device layer in this module never requests it.
	AccessReaderWriter
)

// ErrBytesNotAvailable is reported by a storage collaborator when the
// requested blocks cannot be served.
type ErrBytesNotAvailable struct{}

func (ErrBytesNotAvailable) Error() string {
	return "The requested bytes are not available on the device"
}

// Storage is the narrow contract the device layer consumes from an
// underlying block storage collaborator. Offsets and lengths passed to
// ReadAt must be multiples of the preferred block size; the device
// layer is responsible for aligning requests before they reach here.
type Storage interface {
	// PreferredBlockSize returns the device-native block size in bytes.
	// It is available before Open and does not change afterwards.
	PreferredBlockSize() uint64

	// Open opens the device for the given access mode. It returns false
	// when access is denied.
	Open(access AccessMode) bool

	// Close releases the open device reference.
	Close()

	// ReadAt reads len(p) bytes at byte offset off. It follows
	// io.ReaderAt semantics: a read that returns fewer than len(p)
	// bytes carries a non-nil error.
	ReadAt(p []byte, off int64) (int, error)
}
