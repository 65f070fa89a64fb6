package pool

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len(), "new buffer should have zero length")
	assert.Equal(t, 1024, cap(bb.B), "new buffer should have specified capacity")
}

func TestByteBuffer_WriteAndReset(t *testing.T) {
	bb := NewByteBuffer(16)

	n, err := bb.Write([]byte("PPI1"))
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.NoError(t, bb.WriteByte(0x01))
	require.Equal(t, []byte("PPI1\x01"), bb.Bytes())

	originalCap := cap(bb.B)
	bb.Reset()
	assert.Equal(t, 0, bb.Len(), "Reset should clear the buffer length")
	assert.Equal(t, originalCap, cap(bb.B), "Reset should preserve capacity")
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("no-op with sufficient capacity", func(t *testing.T) {
		bb := NewByteBuffer(64)
		bb.Grow(32)
		require.Equal(t, 64, cap(bb.B))
	})

	t.Run("small buffer grows by default size", func(t *testing.T) {
		bb := NewByteBuffer(8)
		bb.B = append(bb.B, "data"...)
		bb.Grow(16)
		require.Equal(t, 4+ArchiveBufferDefaultSize, cap(bb.B))
		require.Equal(t, []byte("data"), bb.Bytes(), "Grow should keep contents")
	})

	t.Run("large request wins", func(t *testing.T) {
		bb := NewByteBuffer(0)
		bb.Grow(3 * ArchiveBufferDefaultSize)
		require.GreaterOrEqual(t, cap(bb.B), 3*ArchiveBufferDefaultSize)
	})

	t.Run("large buffer grows by a quarter", func(t *testing.T) {
		size := 8 * ArchiveBufferDefaultSize
		bb := NewByteBuffer(size)
		bb.B = bb.B[:size]
		bb.Grow(1)
		require.Equal(t, size+size/4, cap(bb.B))
	})
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(16)
	_, _ = bb.Write([]byte("polygon"))

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(7), n)
	require.Equal(t, "polygon", out.String())
}

func TestByteBufferPool(t *testing.T) {
	p := NewByteBufferPool(32, 64)

	bb := p.Get()
	require.NotNil(t, bb)
	require.Equal(t, 0, bb.Len())

	_, _ = bb.Write([]byte("abc"))
	p.Put(bb)

	again := p.Get()
	require.Equal(t, 0, again.Len(), "pooled buffers come back empty")

	p.Put(nil)
	p.Put(NewByteBuffer(128))
}

func TestArchiveBufferPool_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := range 32 {
		wg.Go(func() {
			bb := GetArchiveBuffer()
			defer PutArchiveBuffer(bb)

			payload := bytes.Repeat([]byte{byte(i)}, 100)
			_, _ = bb.Write(payload)
			assert.Equal(t, payload, bb.Bytes())
		})
	}
	wg.Wait()
}
