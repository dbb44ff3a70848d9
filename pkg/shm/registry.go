package shm

import (
	"sync"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/panjf2000/ants/v2"
)

// Registry tracks open handles by region name within one process, so that
// teardown paths and health checks can reach every mapping the process owns.
// It holds no cross-process state: peers discover regions only through the
// host namespace.
type Registry struct {
	handles cmap.ConcurrentMap[string, *Memory]
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handles: cmap.New[*Memory]()}
}

// Track registers a valid handle under its name. It returns false if the
// handle is invalid or the name is already tracked.
func (r *Registry) Track(m *Memory) bool {
	if !m.IsValid() {
		return false
	}
	return r.handles.SetIfAbsent(m.Name(), m)
}

// Get returns the tracked handle for name.
func (r *Registry) Get(name string) (*Memory, bool) {
	return r.handles.Get(name)
}

// Detach removes name from the registry and returns its handle without
// closing it.
func (r *Registry) Detach(name string) (*Memory, bool) {
	return r.handles.Pop(name)
}

// Names returns the tracked region names.
func (r *Registry) Names() []string {
	return r.handles.Keys()
}

// Len returns the number of tracked handles.
func (r *Registry) Len() int {
	return r.handles.Count()
}

// MappedBytes returns the total bytes currently mapped by tracked handles.
func (r *Registry) MappedBytes() int {
	total := 0
	for _, name := range r.handles.Keys() {
		if m, ok := r.handles.Get(name); ok {
			total += m.Size()
		}
	}
	return total
}

// CloseAll detaches and closes every tracked handle, sweeping on a worker
// pool of the given size. parallelism <= 1 closes inline. The first close
// error is returned; the sweep always runs to completion.
func (r *Registry) CloseAll(parallelism int) error {
	names := r.handles.Keys()

	var (
		mu    sync.Mutex
		first error
	)
	closeOne := func(m *Memory) {
		if err := m.Close(); err != nil {
			mu.Lock()
			if first == nil {
				first = err
			}
			mu.Unlock()
		}
	}

	if parallelism <= 1 {
		for _, name := range names {
			if m, ok := r.handles.Pop(name); ok {
				closeOne(m)
			}
		}
		return first
	}

	pool, err := ants.NewPool(parallelism)
	if err != nil {
		logf(levelWarn, "close pool unavailable, sweeping inline: %v", err)
		return r.CloseAll(1)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for _, name := range names {
		m, ok := r.handles.Pop(name)
		if !ok {
			continue
		}
		wg.Add(1)
		task := func() {
			defer wg.Done()
			closeOne(m)
		}
		if err := pool.Submit(task); err != nil {
			task()
		}
	}
	wg.Wait()
	return first
}
