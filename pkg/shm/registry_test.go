package shm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegion(t *testing.T, size int) *Memory {
	m, err := Create(context.Background(), testName(t), size, ReadWrite)
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func TestRegistryTrackGetDetach(t *testing.T) {
	reg := NewRegistry()
	m := testRegion(t, 128)

	assert.True(t, reg.Track(m))
	assert.False(t, reg.Track(m), "double track must be rejected")
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, []string{m.Name()}, reg.Names())

	got, ok := reg.Get(m.Name())
	assert.True(t, ok)
	assert.Same(t, m, got)

	detached, ok := reg.Detach(m.Name())
	assert.True(t, ok)
	assert.Same(t, m, detached)
	assert.True(t, detached.IsValid(), "detach must not close")
	assert.Equal(t, 0, reg.Len())
}

func TestRegistryRejectsInvalid(t *testing.T) {
	reg := NewRegistry()
	assert.False(t, reg.Track(nil))

	m := testRegion(t, 64)
	require.NoError(t, m.Close())
	assert.False(t, reg.Track(m))
}

func TestRegistryMappedBytes(t *testing.T) {
	reg := NewRegistry()
	a := testRegion(t, 256)
	b := testRegion(t, 512)
	require.True(t, reg.Track(a))
	require.True(t, reg.Track(b))

	assert.Equal(t, a.Size()+b.Size(), reg.MappedBytes())
}

func TestRegistryCloseAll(t *testing.T) {
	for _, parallelism := range []int{1, 4} {
		reg := NewRegistry()
		var regions []*Memory
		for i := 0; i < 8; i++ {
			m := testRegion(t, 64)
			require.True(t, reg.Track(m))
			regions = append(regions, m)
		}

		require.NoError(t, reg.CloseAll(parallelism))
		assert.Equal(t, 0, reg.Len())
		for _, m := range regions {
			assert.False(t, m.IsValid())
		}
	}
}
