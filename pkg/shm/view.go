package shm

// View is a non-owning snapshot of a handle's identifying fields. Views are
// freely copyable and safe to hand to peer goroutines; they are the
// supported way to share one mapping inside a process.
//
// A view does not track the lifetime of the mapping it points into. The
// owning handle must outlive every view taken from it; using a view after
// the handle's Unmap or Close is undefined.
type View struct {
	data []byte
	name string
	mode AccessMode
}

// View snapshots the handle's address, size, name and mode. The view of an
// invalid handle is itself invalid.
func (m *Memory) View() View {
	if !m.IsValid() {
		return View{}
	}
	return View{data: m.region.data, name: m.name, mode: m.mode}
}

// NewView builds a view from explicit components, for callers that obtained
// a mapping by other means.
func NewView(data []byte, name string, mode AccessMode) View {
	return View{data: data, name: name, mode: mode}
}

// Bytes returns the viewed bytes, or nil for an invalid view.
func (v View) Bytes() []byte { return v.data }

// Size returns the number of viewed bytes.
func (v View) Size() int { return len(v.data) }

// Name returns the region name the view was taken under.
func (v View) Name() string { return v.name }

// Mode returns the access mode of the underlying mapping.
func (v View) Mode() AccessMode { return v.mode }

// IsValid reports whether the view points at a mapping. It says nothing
// about whether that mapping is still alive.
func (v View) IsValid() bool { return v.data != nil }
