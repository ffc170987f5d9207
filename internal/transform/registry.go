package transform

import (
	"sort"
	"sync"
)

// Registry maps transform names to implementations. Entries are added or
// overwritten, never removed.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: map[string]Func{}}
}

// Add stores d under d.Name. A later registration with the same name wins.
func (r *Registry) Add(d Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.funcs == nil {
		r.funcs = map[string]Func{}
	}
	r.funcs[d.Name] = d.Transform
}

// AddAll registers every descriptor in order.
func (r *Registry) AddAll(ds []Descriptor) {
	for _, d := range ds {
		r.Add(d)
	}
}

// Resolve returns the transform registered under name.
func (r *Registry) Resolve(name string) (Func, error) {
	r.mu.RLock()
	fn, ok := r.funcs[name]
	r.mu.RUnlock()
	if !ok || fn == nil {
		return nil, &UnknownTransformError{Name: name}
	}
	return fn, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.funcs))
	for n := range r.funcs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Default is the process-wide registry used by Register and Run.
var Default = NewRegistry()

// Register adds a transform to the Default registry.
func Register(name string, fn Func) {
	Default.Add(Descriptor{Name: name, Transform: fn})
}
