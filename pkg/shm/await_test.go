package shm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenWaitRendezvous(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	name := testName(t)

	go func() {
		time.Sleep(50 * time.Millisecond)
		m, err := Create(context.Background(), name, 128, ReadWrite)
		if err == nil {
			copy(m.Bytes(), "late")
			// leak the handle until test cleanup; the waiter needs the
			// region to stay alive
			_ = m
		}
	}()

	m, err := OpenWait(ctx, name, ReadWrite)
	require.NoError(t, err)
	defer m.Close()
	assert.False(t, m.IsCreator())
	assert.Equal(t, []byte("late"), m.Bytes()[:4])
}

func TestOpenWaitTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	m, err := OpenWait(ctx, testName(t), ReadWrite)
	assert.Nil(t, m)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestOpenWaitPermanentFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// An invalid name can never appear; the wait must abort immediately
	// instead of polling out the context.
	start := time.Now()
	_, err := OpenWait(ctx, "bad/name", ReadWrite)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidName))
	assert.Less(t, time.Since(start), time.Second)
}
