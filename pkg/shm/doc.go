// Package shm provides a portable, owning handle to a named shared memory
// region that multiple processes on the same host can map and observe
// coherently.
//
// The package manages the lifecycle of a region only: acquisition (Create,
// OpenOrCreate, OpenAlways, Open), mapping into the caller's address space,
// identity and size accessors, explicit release (Unmap, Close), and removal
// from the host namespace (Remove). The bytes inside a region are opaque;
// callers own all concurrency discipline on them, typically via the atomic
// helpers in this package.
//
// The two supported hosts have genuinely different reclamation models and
// the package exposes this truthfully. On Linux a region name persists until
// Remove unlinks it, even after every handle is closed. On Windows the
// region lives exactly as long as some process holds a handle and Remove is
// a documented no-op.
//
// Constructors accept optional OpenTelemetry instrumentation (WithMeter,
// WithTracer) and a lifecycle event hook (WithRecorder).
//
// Example:
//
//	m, err := shm.Create(ctx, "quotes", 1<<16, shm.ReadWrite)
//	if err != nil {
//	    return err
//	}
//	defer m.Close()
//	copy(m.Bytes(), payload)
package shm
