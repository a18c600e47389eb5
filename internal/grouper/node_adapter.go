package grouper

import (
	"iter"

	"git.home.luguber.info/inful/sitegrouper/internal/site"
)

// NodeOf adapts a site tree node to the grouper's traversal contract.
func NodeOf(n *site.Node) Node { return siteNode{n} }

type siteNode struct{ n *site.Node }

func (s siteNode) WalkResources() iter.Seq[Resource] {
	return func(yield func(Resource) bool) {
		for r := range s.n.WalkResources() {
			if !yield(r) {
				return
			}
		}
	}
}

func (s siteNode) WalkResourcesSortedBy(sorter string) (iter.Seq[Resource], bool) {
	seq, ok := s.n.WalkResourcesSortedBy(sorter)
	if !ok {
		return nil, false
	}
	return func(yield func(Resource) bool) {
		for r := range seq {
			if !yield(r) {
				return
			}
		}
	}, true
}
