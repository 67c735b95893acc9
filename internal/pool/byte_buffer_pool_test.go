package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(64)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 64, cap(bb.B))
}

func TestByteBuffer_Writes(t *testing.T) {
	bb := NewByteBuffer(4)

	n, err := bb.Write([]byte("ab"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, bb.WriteByte('c'))

	n, err = bb.WriteString("def")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	assert.Equal(t, []byte("abcdef"), bb.Bytes())
	assert.Equal(t, 6, bb.Len())
}

func TestByteBuffer_Grow(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.B = append(bb.B, 1, 2, 3)

	bb.Grow(2)
	assert.GreaterOrEqual(t, cap(bb.B)-len(bb.B), 2)
	assert.Equal(t, []byte{1, 2, 3}, bb.B, "grow must keep contents")

	before := cap(bb.B)
	bb.Grow(1)
	assert.Equal(t, before, cap(bb.B), "grow with enough room is a no-op")
}

func TestByteBuffer_ResetKeepsCapacity(t *testing.T) {
	bb := NewByteBuffer(32)
	bb.B = append(bb.B, "some data"...)

	bb.Reset()

	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 32, cap(bb.B))
}

func TestByteBuffer_CloneIsIndependent(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.B = append(bb.B, 9, 8, 7)

	out := bb.Clone()
	bb.B[0] = 0

	assert.Equal(t, []byte{9, 8, 7}, out)
}

func TestByteBufferPool_GetPut(t *testing.T) {
	p := NewByteBufferPool(16, 64)

	bb := p.Get()
	require.NotNil(t, bb)
	bb.B = append(bb.B, "hello"...)
	p.Put(bb)

	again := p.Get()
	require.NotNil(t, again)
	assert.Equal(t, 0, again.Len(), "pooled buffers come back empty")

	p.Put(nil)
}

func TestByteBufferPool_DropsOversized(t *testing.T) {
	p := NewByteBufferPool(16, 64)

	bb := p.Get()
	bb.Grow(1024)
	p.Put(bb)

	// sync.Pool gives no guarantee of reuse, so only the invariant that a fresh
	// buffer is always within the threshold can be checked.
	got := p.Get()
	assert.LessOrEqual(t, cap(got.B), 64)
}

func TestArtifactPool_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			bb := GetArtifactBuffer()
			defer PutArtifactBuffer(bb)

			for j := range 100 {
				_ = bb.WriteByte(byte(id + j))
			}
			assert.Equal(t, 100, bb.Len())
		}(i)
	}
	wg.Wait()
}
