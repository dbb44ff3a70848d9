package shm

import "time"

// Op identifies a lifecycle transition recorded into an Event.
type Op int

const (
	// OpCreate is an acquisition that brought the region into existence.
	OpCreate Op = iota
	// OpOpen is an acquisition of a pre-existing region.
	OpOpen
	// OpUnmap releases a mapping while the host handle stays held.
	OpUnmap
	// OpClose releases both the mapping and the host handle.
	OpClose
)

func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpOpen:
		return "open"
	case OpUnmap:
		return "unmap"
	case OpClose:
		return "close"
	}
	return "unknown"
}

func acquireOp(cm createMode, created bool) Op {
	if created {
		return OpCreate
	}
	return OpOpen
}

// Event describes one lifecycle transition of a named region as observed by
// a single handle. Err is non-nil for failed acquisitions and for teardown
// host-call failures.
type Event struct {
	Time    time.Time
	Op      Op
	Name    string
	Size    int
	Creator bool
	Err     error
}

// Recorder receives lifecycle events from handles constructed with
// WithRecorder. Implementations must be safe for concurrent use and must
// return promptly; handles call Record inline.
type Recorder interface {
	Record(Event)
}
