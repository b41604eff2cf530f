package backend

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagyist/IOLVMPartitionScheme/pkg/block"
	"github.com/nagyist/IOLVMPartitionScheme/pkg/device"
	"github.com/nagyist/IOLVMPartitionScheme/pkg/iobuf"
	"github.com/nagyist/IOLVMPartitionScheme/pkg/mem"
)

func TestMmapStorage(t *testing.T) {
	path, content := writeImage(t, 4096)

	m := NewMmap(path, 512)
	assert.Equal(t, uint64(512), m.PreferredBlockSize())

	require.True(t, m.Open(block.AccessReader))
	defer m.Close()

	p := make([]byte, 512)
	n, err := m.ReadAt(p, 1024)
	require.NoError(t, err)
	assert.Equal(t, 512, n)
	assert.Equal(t, content[1024:1536], p)
}

func TestMmapStorageBounds(t *testing.T) {
	path, _ := writeImage(t, 1024)

	m := NewMmap(path, 512)
	require.True(t, m.Open(block.AccessReader))
	defer m.Close()

	_, err := m.ReadAt(make([]byte, 512), 1024)
	assert.ErrorIs(t, err, io.EOF)

	_, err = m.ReadAt(make([]byte, 1024), 512)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestMmapStorageMissingPath(t *testing.T) {
	m := NewMmap("does-not-exist.bin", 512)
	assert.False(t, m.Open(block.AccessReader))
}

func TestMmapStorageThroughDevice(t *testing.T) {
	path, content := writeImage(t, 4096)

	d, err := device.Open(NewMmap(path, 512))
	require.NoError(t, err)
	defer d.Close()

	buf, err := iobuf.New(mem.System(), 1)
	require.NoError(t, err)
	defer buf.Free()

	require.NoError(t, d.Read(513, 1, buf))
	assert.Equal(t, content[513:514], buf.Bytes())
}
