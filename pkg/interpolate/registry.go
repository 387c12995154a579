package interpolate

import (
	"sort"
	"sync"
)

// Registry maps prefixes to resolvers.
//
// Prefixes are case-sensitive and each prefix holds at most one resolver;
// registering a prefix again replaces the previous resolver. Registry is safe
// for concurrent use, but it is meant to be built once and then only read
// while substitutions run.
type Registry struct {
	mu        sync.RWMutex
	resolvers map[string]Resolver
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		resolvers: make(map[string]Resolver),
	}
}

// Register binds prefix to r, replacing any existing binding.
// Registering a nil resolver removes the prefix.
func (r *Registry) Register(prefix string, resolver Resolver) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if resolver == nil {
		delete(r.resolvers, prefix)
		return r
	}
	r.resolvers[prefix] = resolver
	return r
}

// RegisterMany binds every entry of resolvers.
func (r *Registry) RegisterMany(resolvers map[string]Resolver) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	for prefix, resolver := range resolvers {
		if resolver == nil {
			delete(r.resolvers, prefix)
			continue
		}
		r.resolvers[prefix] = resolver
	}
	return r
}

// Unregister removes prefix. Removing an unknown prefix is a no-op.
func (r *Registry) Unregister(prefix string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.resolvers, prefix)
}

// Get returns the resolver bound to prefix.
func (r *Registry) Get(prefix string) (Resolver, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.resolvers[prefix]
	return v, ok
}

// Has reports whether prefix is bound.
func (r *Registry) Has(prefix string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.resolvers[prefix]
	return ok
}

// Prefixes returns the registered prefixes in sorted order.
func (r *Registry) Prefixes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	prefixes := make([]string, 0, len(r.resolvers))
	for p := range r.resolvers {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)
	return prefixes
}

// Len returns the number of registered prefixes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.resolvers)
}

// Range calls fn for each binding in prefix order until fn returns false.
//
// Range iterates over a snapshot, so fn may call Register or Unregister
// without affecting the current iteration.
func (r *Registry) Range(fn func(prefix string, resolver Resolver) bool) {
	snapshot := r.Clone()
	for _, p := range snapshot.Prefixes() {
		if !fn(p, snapshot.resolvers[p]) {
			return
		}
	}
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c := &Registry{resolvers: make(map[string]Resolver, len(r.resolvers))}
	for p, v := range r.resolvers {
		c.resolvers[p] = v
	}
	return c
}
