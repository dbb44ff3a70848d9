package shm

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// OpenWait opens an existing region, retrying with exponential backoff while
// the name is absent, until the region appears or ctx ends. It is meant for
// process rendezvous where a peer is expected to create the region; any
// failure other than ErrNotFound aborts the wait immediately.
func OpenWait(ctx context.Context, name string, access AccessMode, opts ...Option) (*Memory, error) {
	var m *Memory
	op := func() error {
		var err error
		m, err = Open(ctx, name, access, opts...)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return backoff.Permanent(err)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 5 * time.Millisecond
	bo.MaxInterval = 250 * time.Millisecond
	bo.MaxElapsedTime = 0 // ctx bounds the wait

	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}
	return m, nil
}
