package shm

import (
	"sync/atomic"
	"unsafe"
)

// Atomic accessors for fields living inside a shared region.
//
// Plain writes into a freshly created region are not ordered for peer
// processes: a creator must publish header fields with release-ordered
// stores after mapping, and peers must read them with acquiring loads.
// These helpers provide exactly that, on top of the host memory model the
// mapping already guarantees.
//
// off must be aligned to the size of the accessed word and inside b;
// misaligned or out-of-range offsets panic.

// LoadUint64 atomically loads the uint64 at b[off:].
func LoadUint64(b []byte, off int) uint64 {
	return atomic.LoadUint64((*uint64)(unsafe.Pointer(&b[off])))
}

// StoreUint64 atomically stores val at b[off:].
func StoreUint64(b []byte, off int, val uint64) {
	atomic.StoreUint64((*uint64)(unsafe.Pointer(&b[off])), val)
}

// CompareAndSwapUint64 atomically compares and swaps the uint64 at b[off:].
func CompareAndSwapUint64(b []byte, off int, old, new uint64) bool {
	return atomic.CompareAndSwapUint64((*uint64)(unsafe.Pointer(&b[off])), old, new)
}

// LoadUint32 atomically loads the uint32 at b[off:].
func LoadUint32(b []byte, off int) uint32 {
	return atomic.LoadUint32((*uint32)(unsafe.Pointer(&b[off])))
}

// StoreUint32 atomically stores val at b[off:].
func StoreUint32(b []byte, off int, val uint32) {
	atomic.StoreUint32((*uint32)(unsafe.Pointer(&b[off])), val)
}
