package site

import (
	"iter"

	"git.home.luguber.info/inful/sitegrouper/internal/sorter"
)

// Node is a directory-like container in the site tree.
type Node struct {
	Name      string
	Path      string // absolute path
	RelPath   string // path relative to the content root, "." for the root
	Parent    *Node
	Nodes     []*Node     // child nodes, lexical order
	Resources []*Resource // discovery order
}

// Walk yields this node and all descendant nodes, depth-first pre-order.
func (n *Node) Walk() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.walk(yield)
	}
}

func (n *Node) walk(yield func(*Node) bool) bool {
	if !yield(n) {
		return false
	}
	for _, child := range n.Nodes {
		if !child.walk(yield) {
			return false
		}
	}
	return true
}

// WalkResources yields this node's resources followed by each child
// subtree's, depth-first. The sequence is restartable; each call begins a
// fresh traversal.
func (n *Node) WalkResources() iter.Seq[*Resource] {
	return func(yield func(*Resource) bool) {
		n.walkResources(yield)
	}
}

func (n *Node) walkResources(yield func(*Resource) bool) bool {
	for _, r := range n.Resources {
		if !yield(r) {
			return false
		}
	}
	for _, child := range n.Nodes {
		if !child.walkResources(yield) {
			return false
		}
	}
	return true
}

// WalkResourcesSortedBy yields the subtree's resources ordered by the named
// sort strategy. Reports false when no such strategy is registered.
func (n *Node) WalkResourcesSortedBy(name string) (iter.Seq[*Resource], bool) {
	strategy, ok := sorter.Default().Lookup(name)
	if !ok {
		return nil, false
	}
	return func(yield func(*Resource) bool) {
		var items []sorter.Item
		for r := range n.WalkResources() {
			items = append(items, sortItem{r})
		}
		strategy(items)
		for _, it := range items {
			if !yield(it.(sortItem).r) {
				return
			}
		}
	}, true
}

// sortItem adapts a Resource to the sorter registry's item contract.
type sortItem struct{ r *Resource }

func (s sortItem) SortName() string  { return s.r.Name }
func (s sortItem) SortTitle() string { return s.r.Title }
func (s sortItem) MetaField(key string) (string, bool) {
	return s.r.MetaField(key)
}
