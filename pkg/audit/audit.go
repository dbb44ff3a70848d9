// Package audit buffers shared memory lifecycle events for later
// inspection. A Journal plugs into handle constructors through
// shm.WithRecorder.
package audit

import (
	"github.com/Workiva/go-datastructures/queue"

	"github.com/slickquant/shm-go/pkg/shm"
)

// Journal is a bounded, concurrency-safe buffer of lifecycle events. Writes
// never block: events are dropped once the buffer is full. It implements
// shm.Recorder.
type Journal struct {
	buf *queue.RingBuffer
}

var _ shm.Recorder = (*Journal)(nil)

// NewJournal returns a journal holding up to capacity events. The ring
// rounds capacity up to the next power of two.
func NewJournal(capacity uint64) *Journal {
	return &Journal{buf: queue.NewRingBuffer(capacity)}
}

// Record implements shm.Recorder.
func (j *Journal) Record(ev shm.Event) {
	_, _ = j.buf.Offer(ev)
}

// Len returns the number of buffered events.
func (j *Journal) Len() uint64 {
	return j.buf.Len()
}

// Cap returns the journal's capacity.
func (j *Journal) Cap() uint64 {
	return j.buf.Cap()
}

// Drain removes and returns all buffered events in record order. Drain is
// meant for a single consumer; concurrent drains split the events between
// them.
func (j *Journal) Drain() []shm.Event {
	out := make([]shm.Event, 0, j.buf.Len())
	for j.buf.Len() > 0 {
		item, err := j.buf.Get()
		if err != nil {
			break
		}
		if ev, ok := item.(shm.Event); ok {
			out = append(out, ev)
		}
	}
	return out
}

// Close disposes the underlying ring. Record and Drain must not be called
// afterwards.
func (j *Journal) Close() {
	j.buf.Dispose()
}
