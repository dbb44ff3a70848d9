package shm

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Memory is an owning handle to a named shared memory region. The zero
// value is an invalid handle; use Create, OpenOrCreate, OpenAlways or Open.
//
// A Memory must not be copied. A single handle is not safe for concurrent
// mutation: Close, Unmap and the constructors require exclusive access,
// while the accessors may be called concurrently with each other. Use View
// to share a mapping with peer goroutines.
type Memory struct {
	region   region
	name     string
	mode     AccessMode
	creator  bool
	instr    *instruments
	tracer   trace.Tracer
	recorder Recorder
}

// Create creates a new region of size bytes and maps it. It fails with
// ErrAlreadyExists if the name is already taken. The returned handle
// reports IsCreator() == true.
func Create(ctx context.Context, name string, size int, access AccessMode, opts ...Option) (*Memory, error) {
	return construct(ctx, name, size, createOnly, access, opts)
}

// OpenOrCreate opens the named region if it exists, preserving its size, and
// otherwise creates it with size bytes. IsCreator reports which branch was
// taken.
func OpenOrCreate(ctx context.Context, name string, size int, access AccessMode, opts ...Option) (*Memory, error) {
	return construct(ctx, name, size, openOrCreate, access, opts)
}

// OpenAlways acquires the named region, creating it if absent. An existing
// region is never truncated; its established size wins over the requested
// one. IsCreator reports which branch was taken.
func OpenAlways(ctx context.Context, name string, size int, access AccessMode, opts ...Option) (*Memory, error) {
	return construct(ctx, name, size, openAlways, access, opts)
}

// Open opens an existing region and maps it at the size established by its
// creator. It fails with ErrNotFound if the name is absent. The returned
// handle reports IsCreator() == false.
func Open(ctx context.Context, name string, access AccessMode, opts ...Option) (*Memory, error) {
	return construct(ctx, name, 0, openExisting, access, opts)
}

func construct(ctx context.Context, name string, size int, cm createMode, access AccessMode, opts []Option) (*Memory, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var span trace.Span
	if o.tracer != nil {
		ctx, span = o.tracer.Start(ctx, "shm."+cm.String(),
			trace.WithAttributes(
				attribute.String("shm.name", name),
				attribute.String("shm.mode", access.String()),
			))
		defer span.End()
	}

	m, err := func() (*Memory, error) {
		if !validName(name) {
			return nil, opError(cm.String(), name, CodeInvalidName, nil)
		}
		if cm != openExisting && size <= 0 {
			return nil, opError(cm.String(), name, CodeInvalidSize, nil)
		}
		m := &Memory{
			name:     name,
			mode:     access,
			instr:    newInstruments(o.meter),
			tracer:   o.tracer,
			recorder: o.recorder,
		}
		created, err := m.region.acquire(name, size, cm, access)
		if err != nil {
			return nil, err
		}
		m.creator = created
		return m, nil
	}()

	if err != nil {
		if span != nil {
			span.RecordError(err)
		}
		o.record(Event{Time: time.Now(), Op: acquireOp(cm, cm == createOnly), Name: name, Err: err})
		return nil, err
	}

	m.instr.acquired(ctx, m.name, m.region.size)
	m.record(acquireOp(cm, m.creator), nil)
	return m, nil
}

// Bytes returns the mapped bytes, or nil if the handle is not mapped. The
// slice aliases the shared region directly; it is invalidated by Unmap and
// Close.
func (m *Memory) Bytes() []byte {
	if m == nil {
		return nil
	}
	return m.region.data
}

// Size returns the number of bytes actually mapped, or 0 if the handle is
// not mapped. On POSIX hosts this equals the size requested at creation; on
// Windows it is rounded up to the system allocation granularity.
func (m *Memory) Size() int {
	if m == nil {
		return 0
	}
	return m.region.size
}

// Name returns the user-supplied region name, unmodified, regardless of the
// host-native form used in syscalls.
func (m *Memory) Name() string {
	if m == nil {
		return ""
	}
	return m.name
}

// Mode returns the access mode the region was mapped with.
func (m *Memory) Mode() AccessMode {
	if m == nil {
		return ReadOnly
	}
	return m.mode
}

// IsValid reports whether the handle currently holds a mapping.
func (m *Memory) IsValid() bool {
	return m != nil && m.region.data != nil
}

// IsCreator reports whether this handle's construction brought the region
// into existence. It is false for Open, false for OpenOrCreate and
// OpenAlways calls that found an existing region, and false after Close.
func (m *Memory) IsCreator() bool {
	return m != nil && m.creator
}

// Unmap releases the mapping while keeping the host handle. It is
// idempotent and a no-op on invalid handles.
func (m *Memory) Unmap() error {
	if m == nil || m.region.data == nil {
		return nil
	}
	ctx := context.Background()
	size := m.region.size
	err := m.region.unmap()
	if err != nil {
		logf(levelWarn, "unmap %s: %v", m.name, err)
	}
	m.instr.released(ctx, m.name, size)
	m.record(OpUnmap, err)
	return err
}

// Close releases the mapping and the host handle. The region's name is
// unaffected: on Linux it persists until Remove, on Windows until the last
// handle anywhere is released. Close is idempotent; afterwards all
// accessors return zero values.
func (m *Memory) Close() error {
	if m == nil || (m.region.data == nil && !m.region.held) {
		return nil
	}
	ctx := context.Background()
	size := m.region.size
	mapped := m.region.data != nil
	err := m.region.release()
	if err != nil {
		logf(levelWarn, "close %s: %v", m.name, err)
	}
	if mapped {
		m.instr.released(ctx, m.name, size)
	}
	m.record(OpClose, err)
	m.creator = false
	return err
}

func (m *Memory) record(op Op, err error) {
	if m.recorder == nil {
		return
	}
	m.recorder.Record(Event{
		Time:    time.Now(),
		Op:      op,
		Name:    m.name,
		Size:    m.region.size,
		Creator: m.creator,
		Err:     err,
	})
}

// Remove detaches the region's name from the host namespace. On Linux this
// unlinks the backing object and returns false if the name is absent or
// invalid; existing mappings stay usable until their handles close. On
// Windows reclamation is automatic with the last handle, so Remove is a
// no-op that returns true for any valid name.
func Remove(name string) bool {
	return removeRegion(name)
}

// Exists reports whether a region with the given name can currently be
// looked up in the host namespace.
func Exists(name string) bool {
	return regionExists(name)
}
