package grouper

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"sort"
	"sync"

	"git.home.luguber.info/inful/sitegrouper/internal/logfields"
)

// ErrGroupingNotFound indicates a traversal query for an unregistered name.
var ErrGroupingNotFound = errors.New("grouping not found")

// Capabilities is the per-grouping-name traversal table.
//
// Constructing a group registers it here under its own name, at every level
// of the tree. Registering a name twice overwrites: the last constructed
// group wins for all future queries, matching the shared-type attachment
// semantics of the original plugin but as an explicit, visible map.
type Capabilities struct {
	mu     sync.RWMutex
	groups map[string]*Group
}

// NewCapabilities creates an empty capability table.
func NewCapabilities() *Capabilities {
	return &Capabilities{groups: make(map[string]*Group)}
}

func (c *Capabilities) register(g *Group) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, exists := c.groups[g.Name]; exists && prev != g {
		slog.Debug("Overwriting traversal capability", logfields.Group(g.Name))
	}
	c.groups[g.Name] = g
}

// Get returns the group registered under name.
func (c *Capabilities) Get(name string) (*Group, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	g, ok := c.groups[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGroupingNotFound, name)
	}
	return g, nil
}

// WalkGroups yields the groups registered under name that have at least one
// directly matching resource under node. This is the walk_<name>_groups
// capability of the original plugin.
func (c *Capabilities) WalkGroups(name string, node Node) (iter.Seq[*Group], error) {
	g, err := c.Get(name)
	if err != nil {
		return nil, err
	}
	return g.WalkGroupsIn(node), nil
}

// WalkResourcesGroupedBy yields the node's resources for every group
// registered under name, in group-then-resource order. This is the
// walk_resources_grouped_by_<name> capability of the original plugin.
func (c *Capabilities) WalkResourcesGroupedBy(name string, node Node) (iter.Seq[Resource], error) {
	g, err := c.Get(name)
	if err != nil {
		return nil, err
	}
	return g.WalkResourcesIn(node), nil
}

// Names returns the registered capability names, sorted.
func (c *Capabilities) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.groups))
	for name := range c.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clear removes all registered capabilities.
func (c *Capabilities) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.groups = make(map[string]*Group)
}

var defaultCapabilities = NewCapabilities()

// DefaultCapabilities returns the process-wide capability table.
func DefaultCapabilities() *Capabilities { return defaultCapabilities }
