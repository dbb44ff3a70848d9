package shm

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewSnapshot(t *testing.T) {
	ctx := context.Background()
	name := testName(t)

	m, err := Create(ctx, name, 256, ReadWrite)
	require.NoError(t, err)
	defer m.Close()

	v := m.View()
	assert.True(t, v.IsValid())
	assert.Equal(t, m.Size(), v.Size())
	assert.Equal(t, m.Name(), v.Name())
	assert.Equal(t, m.Mode(), v.Mode())

	// Writes through the handle are visible through the view: both alias
	// the same mapping.
	copy(m.Bytes(), "shared")
	assert.Equal(t, []byte("shared"), v.Bytes()[:6])
}

func TestViewOfInvalidHandle(t *testing.T) {
	var m *Memory
	v := m.View()
	assert.False(t, v.IsValid())
	assert.Nil(t, v.Bytes())
	assert.Equal(t, 0, v.Size())
}

func TestViewAcrossGoroutines(t *testing.T) {
	ctx := context.Background()
	name := testName(t)

	m, err := Create(ctx, name, 64, ReadWrite)
	require.NoError(t, err)
	defer m.Close()

	StoreUint64(m.Bytes(), 0, 7)

	v := m.View()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(v View) {
			defer wg.Done()
			assert.Equal(t, uint64(7), LoadUint64(v.Bytes(), 0))
		}(v)
	}
	wg.Wait()
}

func TestNewViewFromComponents(t *testing.T) {
	buf := make([]byte, 32)
	v := NewView(buf, "manual", ReadOnly)
	assert.True(t, v.IsValid())
	assert.Equal(t, 32, v.Size())
	assert.Equal(t, "manual", v.Name())
	assert.Equal(t, ReadOnly, v.Mode())
}
