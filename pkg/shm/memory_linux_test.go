//go:build linux

package shm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExactSize(t *testing.T) {
	ctx := context.Background()
	name := testName(t)

	m, err := Create(ctx, name, 1000, ReadWrite)
	require.NoError(t, err)
	defer m.Close()

	// POSIX reports the exact requested size, no rounding.
	assert.Equal(t, 1000, m.Size())

	opener, err := Open(ctx, name, ReadWrite)
	require.NoError(t, err)
	defer opener.Close()
	assert.Equal(t, 1000, opener.Size())
}

func TestRemoveAbsent(t *testing.T) {
	assert.False(t, Remove(testName(t)))
}

func TestNamePersistsAfterClose(t *testing.T) {
	ctx := context.Background()
	name := testName(t)

	m, err := Create(ctx, name, 64, ReadWrite)
	require.NoError(t, err)
	require.NoError(t, m.Close())

	// The name survives the handle until an explicit unlink.
	assert.True(t, Exists(name))
	assert.True(t, Remove(name))
	assert.False(t, Exists(name))
	assert.False(t, Remove(name))
}

func TestLeadingSlashNames(t *testing.T) {
	ctx := context.Background()
	name := testName(t)

	creator, err := Create(ctx, "/"+name, 128, ReadWrite)
	require.NoError(t, err)
	defer creator.Close()

	// The accessor returns the user-supplied form, slash included.
	assert.Equal(t, "/"+name, creator.Name())

	// Raw and logical forms address the same region.
	copy(creator.Bytes(), "same")
	opener, err := Open(ctx, name, ReadWrite)
	require.NoError(t, err)
	defer opener.Close()
	assert.Equal(t, []byte("same"), opener.Bytes()[:4])
}

func TestNameGrammar(t *testing.T) {
	assert.False(t, validName(""))
	assert.False(t, validName("/"))
	assert.False(t, validName("a/b"))
	assert.False(t, validName("/a/b"))
	assert.True(t, validName("a"))
	assert.True(t, validName("/a"))

	long := make([]byte, 256)
	for i := range long {
		long[i] = 'x'
	}
	assert.False(t, validName(string(long)))
	assert.True(t, validName(string(long[:255])))
}

func TestCreateReadOnlyFails(t *testing.T) {
	// ftruncate needs a writable descriptor; creating a region read-only
	// fails with the host error mapped to the domain taxonomy.
	_, err := Create(context.Background(), testName(t), 64, ReadOnly)
	require.Error(t, err)
}
