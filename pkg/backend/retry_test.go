package backend

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagyist/IOLVMPartitionScheme/pkg/block"
)

// flakyStorage fails the first failures reads, then delegates.
type flakyStorage struct {
	base     block.Storage
	failures int
}

func (f *flakyStorage) PreferredBlockSize() uint64 { return f.base.PreferredBlockSize() }

func (f *flakyStorage) Open(access block.AccessMode) bool { return f.base.Open(access) }

func (f *flakyStorage) Close() { f.base.Close() }

func (f *flakyStorage) ReadAt(p []byte, off int64) (int, error) {
	if f.failures > 0 {
		f.failures--

		return 0, errors.New("transient read failure")
	}

	return f.base.ReadAt(p, off)
}

func TestRetrierRecovers(t *testing.T) {
	content := make([]byte, 1024)
	for i := range content {
		content[i] = byte(i)
	}

	flaky := &flakyStorage{base: block.NewMockStorage(content, 512), failures: 2}
	r := NewRetrier(flaky, ReadRetries, time.Microsecond)

	require.True(t, r.Open(block.AccessReader))
	defer r.Close()

	p := make([]byte, 512)
	n, err := r.ReadAt(p, 0)
	require.NoError(t, err)
	assert.Equal(t, 512, n)
	assert.Equal(t, content[:512], p)
}

func TestRetrierExhausted(t *testing.T) {
	flaky := &flakyStorage{base: block.NewMockStorage(make([]byte, 1024), 512), failures: 10}
	r := NewRetrier(flaky, ReadRetries, time.Microsecond)

	require.True(t, r.Open(block.AccessReader))
	defer r.Close()

	_, err := r.ReadAt(make([]byte, 512), 0)
	assert.Error(t, err)
	assert.Equal(t, 10-ReadRetries, flaky.failures)
}

func TestRetrierDelegates(t *testing.T) {
	mock := block.NewMockStorage(make([]byte, 1024), 512)
	r := NewRetrier(mock, ReadRetries, ReadRetryDelay)

	assert.Equal(t, uint64(512), r.PreferredBlockSize())

	require.True(t, r.Open(block.AccessReader))
	r.Close()
	assert.Equal(t, 1, mock.OpenCount())
	assert.Equal(t, 1, mock.CloseCount())
}
