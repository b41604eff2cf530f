package device

import "errors"

var (
	// ErrInvalidBlockSize is returned by Open when the device reports a
	// block size of zero or one that does not fit in 32 bits.
	ErrInvalidBlockSize = errors.New("device block size out of range")

	// ErrAccessDenied is returned by Open when the storage collaborator
	// refuses to open for reading.
	ErrAccessDenied = errors.New("device could not be opened for reading")

	// ErrReadTooLarge is returned by Read when the requested length
	// exceeds the platform's signed-size limit. No I/O is attempted.
	ErrReadTooLarge = errors.New("read length exceeds addressable range")

	// ErrIO wraps a failed read reported by the storage collaborator.
	ErrIO = errors.New("device read failed")

	// ErrClosed is returned when the handle has already been closed.
	ErrClosed = errors.New("device handle is closed")
)
