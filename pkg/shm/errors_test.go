package shm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeMessages(t *testing.T) {
	assert.Equal(t, "success", CodeSuccess.String())
	assert.Equal(t, "shared memory already exists", CodeAlreadyExists.String())
	assert.Equal(t, "shared memory not found", CodeNotFound.String())
	assert.Equal(t, "invalid size (must be greater than zero)", CodeInvalidSize.String())
	assert.Equal(t, "unknown error", CodeUnknown.String())
	assert.Equal(t, "unknown error", Code(42).String())
}

func TestErrorFormatting(t *testing.T) {
	err := opError("open", "region", CodeNotFound, nil)
	assert.Equal(t, "shm: open region: shared memory not found", err.Error())

	wrapped := opError("mmap", "region", CodeMappingFailed, errors.New("boom"))
	assert.Equal(t, "shm: mmap region: memory mapping failed: boom", wrapped.Error())
}

func TestErrorSentinelMatching(t *testing.T) {
	host := errors.New("host detail")
	err := opError("open", "r", CodeAlreadyExists, host)

	assert.True(t, errors.Is(err, ErrAlreadyExists))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, host, errors.Unwrap(err))

	var shmErr *Error
	assert.True(t, errors.As(err, &shmErr))
	assert.Equal(t, CodeAlreadyExists, shmErr.Code)
}

func TestEveryCodeHasSentinel(t *testing.T) {
	codes := []Code{
		CodeAlreadyExists, CodeNotFound, CodePermissionDenied,
		CodeInvalidArgument, CodeSizeMismatch, CodeMappingFailed,
		CodeInvalidSize, CodeInvalidName, CodeUnknown,
	}
	for _, c := range codes {
		assert.True(t, errors.Is(opError("op", "n", c, nil), c.sentinel()), c.String())
	}
}
