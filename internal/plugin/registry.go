package plugin

import (
	"context"
	"fmt"
	"sync"
)

// Registry manages plugin registration and lifecycle dispatch.
type Registry struct {
	mu      sync.RWMutex
	ordered []Plugin // registration order drives hook invocation order
	byName  map[string]Plugin
}

// NewRegistry creates a new empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Plugin)}
}

// Register adds a plugin to the registry.
// Returns an error if a plugin with the same name already exists.
func (r *Registry) Register(p Plugin) error {
	if p == nil {
		return fmt.Errorf("cannot register nil plugin")
	}

	metadata := p.Metadata()
	if err := metadata.Validate(); err != nil {
		return fmt.Errorf("invalid plugin metadata: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[metadata.Name]; exists {
		return fmt.Errorf("plugin %s already registered", metadata.Name)
	}

	r.byName[metadata.Name] = p
	r.ordered = append(r.ordered, p)
	return nil
}

// Get retrieves a plugin by name.
func (r *Registry) Get(name string) (Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("plugin %s not found", name)
	}
	return p, nil
}

// Has checks if a plugin with the given name exists.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byName[name]
	return ok
}

// List returns all registered plugins in registration order.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Plugin, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Clear removes all plugins from the registry.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ordered = nil
	r.byName = make(map[string]Plugin)
}

// RunBeginSite invokes BeginSite on every registered lifecycle plugin, in
// registration order. The first failure aborts the run.
func (r *Registry) RunBeginSite(ctx context.Context, pctx *Context) error {
	for _, p := range r.List() {
		hook, ok := p.(SiteLifecycle)
		if !ok {
			continue
		}
		if err := hook.BeginSite(ctx, pctx); err != nil {
			return fmt.Errorf("plugin %s: begin_site failed: %w", p.Metadata().Name, err)
		}
	}
	return nil
}

// globalRegistry is the default plugin registry used throughout the application.
var globalRegistry = NewRegistry()

// DefaultRegistry returns the global plugin registry.
func DefaultRegistry() *Registry { return globalRegistry }

// Register adds a plugin to the global registry.
func Register(p Plugin) error { return globalRegistry.Register(p) }

// RunBeginSite dispatches the begin-site hook on the global registry.
func RunBeginSite(ctx context.Context, pctx *Context) error {
	return globalRegistry.RunBeginSite(ctx, pctx)
}
