package grouper

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps grouping names to their root groups. It is the site-wide
// output of the lifecycle hook, consumed by template and render-time code.
//
// Entries are filled or replaced per key; the registry is never reset
// between hook invocations.
type Registry struct {
	mu        sync.RWMutex
	groupings map[string]*Group
}

// NewRegistry creates a new empty grouper registry.
func NewRegistry() *Registry {
	return &Registry{groupings: make(map[string]*Group)}
}

// Set stores the root group for a grouping name, replacing any previous one.
func (r *Registry) Set(name string, g *Group) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.groupings[name] = g
}

// Get retrieves a grouping's root group by name.
func (r *Registry) Get(name string) (*Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.groupings[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGroupingNotFound, name)
	}
	return g, nil
}

// Has checks if a grouping with the given name exists.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.groupings[name]
	return ok
}

// Names returns all grouping names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.groupings))
	for name := range r.groupings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clear removes all groupings from the registry.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.groupings = make(map[string]*Group)
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide grouper registry.
func DefaultRegistry() *Registry { return defaultRegistry }
