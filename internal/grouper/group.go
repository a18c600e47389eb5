// Package grouper builds configured hierarchies of named groups over the
// site tree and exposes traversal over groups and their matching resources.
//
// A grouping classifies resources by one metadata field: the field is named
// after the grouping's root group, and a resource belongs to the group whose
// name equals the resource's value for that field.
package grouper

import (
	"iter"
	"log/slog"
	"maps"

	"git.home.luguber.info/inful/sitegrouper/internal/config"
	"git.home.luguber.info/inful/sitegrouper/internal/logfields"
)

// Resource is the view of a content resource the grouper needs.
type Resource interface {
	// MetaField returns the string value of a metadata field, or false if
	// the resource has no such field.
	MetaField(name string) (string, bool)
}

// Node is the part of the site tree the grouper traverses.
type Node interface {
	// WalkResources yields the node's resources. The sequence is finite and
	// restartable; each call begins a fresh traversal.
	WalkResources() iter.Seq[Resource]

	// WalkResourcesSortedBy yields the node's resources ordered by the named
	// sort strategy, reporting false when the node has no such strategy.
	WalkResourcesSortedBy(sorter string) (iter.Seq[Resource], bool)
}

// Group is one node in a grouping's tree.
//
// Groups are constructed once during site-generation startup and never
// mutated afterwards.
type Group struct {
	Name        string
	Description string
	// Sorter is the resolved sort strategy name: the group's own if
	// configured, otherwise the nearest ancestor's.
	Sorter string
	Parent *Group
	// Groups are the child groups in configuration order.
	Groups []*Group
	// Extra carries unrecognized configuration fields for template use.
	Extra map[string]any

	root *Group
	caps *Capabilities
}

// NewGroup constructs a group tree from a grouping spec and registers its
// traversal capabilities in the default capability table.
func NewGroup(spec *config.GroupingSpec, parent *Group) *Group {
	caps := DefaultCapabilities()
	if parent != nil {
		caps = parent.caps
	}
	return newGroup(caps, spec, parent)
}

// NewGroupWith is NewGroup with an explicit capability table.
func NewGroupWith(caps *Capabilities, spec *config.GroupingSpec) *Group {
	return newGroup(caps, spec, nil)
}

func newGroup(caps *Capabilities, spec *config.GroupingSpec, parent *Group) *Group {
	g := &Group{
		Name:        "groups",
		Description: spec.Description,
		Sorter:      spec.Sorter,
		Parent:      parent,
		caps:        caps,
	}
	g.root = g
	if parent != nil {
		g.root = parent.root
	}
	if spec.Name != "" {
		g.Name = spec.Name
	}
	if g.Sorter == "" && parent != nil {
		g.Sorter = parent.Sorter
	}
	if len(spec.Extra) > 0 {
		g.Extra = maps.Clone(spec.Extra)
	}
	for _, child := range spec.Groups {
		g.Groups = append(g.Groups, newGroup(caps, child, g))
	}
	caps.register(g)
	return g
}

// Root returns the top-most group of this tree; its name is the metadata
// field matched at every level.
func (g *Group) Root() *Group { return g.root }

// WalkGroups yields this group and all descendants, depth-first pre-order,
// self first, children in configuration order. Restartable per call.
func (g *Group) WalkGroups() iter.Seq[*Group] {
	return func(yield func(*Group) bool) {
		g.walk(yield)
	}
}

func (g *Group) walk(yield func(*Group) bool) bool {
	if !yield(g) {
		return false
	}
	for _, child := range g.Groups {
		if !child.walk(yield) {
			return false
		}
	}
	return true
}

// ListResources yields the node's resources that belong to this group: those
// whose metadata field named after the tree's root equals this group's name.
// Resources without the field are ungrouped, not errors.
func (g *Group) ListResources(node Node) iter.Seq[Resource] {
	return func(yield func(Resource) bool) {
		walk := node.WalkResources()
		if g.Sorter != "" {
			if sorted, ok := node.WalkResourcesSortedBy(g.Sorter); ok {
				walk = sorted
			} else {
				slog.Debug("Sorter not available on node, falling back to unsorted traversal",
					logfields.Sorter(g.Sorter), logfields.Group(g.Name))
			}
		}
		field := g.root.Name
		for r := range walk {
			value, ok := r.MetaField(field)
			if !ok {
				continue
			}
			if value == g.Name && !yield(r) {
				return
			}
		}
	}
}

// WalkResourcesIn yields, for each group in this subtree's depth-first walk,
// all of the node's matching resources, in group-then-resource order.
func (g *Group) WalkResourcesIn(node Node) iter.Seq[Resource] {
	return func(yield func(Resource) bool) {
		for group := range g.WalkGroups() {
			for r := range group.ListResources(node) {
				if !yield(r) {
					return
				}
			}
		}
	}
}

// WalkGroupsIn yields the groups of this subtree that have at least one
// directly matching resource under the node.
//
// The filter is existence-based, not recursive: a group whose descendants
// match but which has no direct match of its own is excluded, while its
// descendants still pass their own check.
func (g *Group) WalkGroupsIn(node Node) iter.Seq[*Group] {
	return func(yield func(*Group) bool) {
		for group := range g.WalkGroups() {
			if group.hasResourceIn(node) && !yield(group) {
				return
			}
		}
	}
}

func (g *Group) hasResourceIn(node Node) bool {
	for range g.ListResources(node) {
		return true
	}
	return false
}
