package grouper

import (
	"iter"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegrouper/internal/config"
)

type fakeResource struct {
	name string
	meta map[string]string
}

func (f *fakeResource) MetaField(name string) (string, bool) {
	v, ok := f.meta[name]
	return v, ok
}

// fakeNode exposes resources and optional named sorted variants.
type fakeNode struct {
	resources []Resource
	sorted    map[string][]Resource
}

func (n *fakeNode) WalkResources() iter.Seq[Resource] {
	return func(yield func(Resource) bool) {
		for _, r := range n.resources {
			if !yield(r) {
				return
			}
		}
	}
}

func (n *fakeNode) WalkResourcesSortedBy(sorter string) (iter.Seq[Resource], bool) {
	rs, ok := n.sorted[sorter]
	if !ok {
		return nil, false
	}
	return func(yield func(Resource) bool) {
		for _, r := range rs {
			if !yield(r) {
				return
			}
		}
	}, true
}

func res(name, field, value string) *fakeResource {
	return &fakeResource{name: name, meta: map[string]string{field: value}}
}

func groupNames(seq iter.Seq[*Group]) []string {
	var out []string
	for g := range seq {
		out = append(out, g.Name)
	}
	return out
}

func resourceNames(seq iter.Seq[Resource]) []string {
	var out []string
	for r := range seq {
		out = append(out, r.(*fakeResource).name)
	}
	return out
}

// topicsSpec is the worked configuration: topics -> [a, b].
func topicsSpec() *config.GroupingSpec {
	return &config.GroupingSpec{
		Name: "topics",
		Groups: []*config.GroupingSpec{
			{Name: "a"},
			{Name: "b"},
		},
	}
}

func TestNewGroup_DefaultsNameToGroups(t *testing.T) {
	g := NewGroupWith(NewCapabilities(), &config.GroupingSpec{})
	require.Equal(t, "groups", g.Name)
	require.Nil(t, g.Parent)
	require.Same(t, g, g.Root())
}

func TestNewGroup_BuildsChildrenWithParentAndRoot(t *testing.T) {
	root := NewGroupWith(NewCapabilities(), &config.GroupingSpec{
		Name: "topics",
		Groups: []*config.GroupingSpec{
			{Name: "a", Groups: []*config.GroupingSpec{{Name: "deep"}}},
		},
	})

	require.Len(t, root.Groups, 1)
	a := root.Groups[0]
	require.Same(t, root, a.Parent)
	require.Same(t, root, a.Root())

	deep := a.Groups[0]
	require.Same(t, a, deep.Parent)
	require.Same(t, root, deep.Root())
}

func TestNewGroup_CopiesExtraFields(t *testing.T) {
	g := NewGroupWith(NewCapabilities(), &config.GroupingSpec{
		Name:        "topics",
		Description: "Articles by topic",
		Extra:       map[string]any{"icon": "tag"},
	})
	require.Equal(t, "Articles by topic", g.Description)
	require.Equal(t, "tag", g.Extra["icon"])
}

func TestWalkGroups_DepthFirstPreOrderEachOnce(t *testing.T) {
	root := NewGroupWith(NewCapabilities(), &config.GroupingSpec{
		Name: "topics",
		Groups: []*config.GroupingSpec{
			{Name: "a", Groups: []*config.GroupingSpec{{Name: "a1"}, {Name: "a2"}}},
			{Name: "b"},
		},
	})

	require.Equal(t, []string{"topics", "a", "a1", "a2", "b"}, groupNames(root.WalkGroups()))

	// Restartable: a second walk repeats the same sequence.
	require.Equal(t, []string{"topics", "a", "a1", "a2", "b"}, groupNames(root.WalkGroups()))
}

func TestWalkGroups_EmptyGroupsYieldsOnlyRoot(t *testing.T) {
	root := NewGroupWith(NewCapabilities(), &config.GroupingSpec{Name: "topics"})
	require.Equal(t, []string{"topics"}, groupNames(root.WalkGroups()))
}

func TestWalkGroups_StopsWhenConsumerStops(t *testing.T) {
	root := NewGroupWith(NewCapabilities(), topicsSpec())

	var first string
	for g := range root.WalkGroups() {
		first = g.Name
		break
	}
	require.Equal(t, "topics", first)
}

func TestSorterResolution_InheritanceAndOverride(t *testing.T) {
	root := NewGroupWith(NewCapabilities(), &config.GroupingSpec{
		Name:   "topics",
		Sorter: "created",
		Groups: []*config.GroupingSpec{
			{Name: "inherits"},
			{Name: "overrides", Sorter: "title", Groups: []*config.GroupingSpec{
				{Name: "nested"},
			}},
			{Name: "sibling"},
		},
	})

	require.Equal(t, "created", root.Sorter)
	require.Equal(t, "created", root.Groups[0].Sorter)
	require.Equal(t, "title", root.Groups[1].Sorter)
	// Nested child inherits the nearest ancestor's sorter, not the root's.
	require.Equal(t, "title", root.Groups[1].Groups[0].Sorter)
	// An override does not leak to siblings.
	require.Equal(t, "created", root.Groups[2].Sorter)
}

func TestListResources_MatchesRootFieldAgainstGroupName(t *testing.T) {
	root := NewGroupWith(NewCapabilities(), topicsSpec())
	a := root.Groups[0]

	node := &fakeNode{resources: []Resource{
		res("one.md", "topics", "a"),
		res("two.md", "topics", "b"),
		res("three.md", "topics", "a"),
		res("other.md", "category", "a"), // lacks the topics field: ungrouped
	}}

	require.Equal(t, []string{"one.md", "three.md"}, resourceNames(a.ListResources(node)))
}

func TestListResources_MissingMetaFieldIsSilentlySkipped(t *testing.T) {
	root := NewGroupWith(NewCapabilities(), topicsSpec())
	node := &fakeNode{resources: []Resource{
		&fakeResource{name: "bare.md", meta: map[string]string{}},
	}}

	require.Empty(t, resourceNames(root.Groups[0].ListResources(node)))
}

func TestListResources_UsesSortedWalkerWhenAvailable(t *testing.T) {
	ra := res("a.md", "topics", "a")
	rb := res("b.md", "topics", "a")
	node := &fakeNode{
		resources: []Resource{ra, rb},
		sorted:    map[string][]Resource{"created": {rb, ra}},
	}

	root := NewGroupWith(NewCapabilities(), &config.GroupingSpec{
		Name:   "topics",
		Sorter: "created",
		Groups: []*config.GroupingSpec{{Name: "a"}},
	})

	require.Equal(t, []string{"b.md", "a.md"}, resourceNames(root.Groups[0].ListResources(node)))
}

func TestListResources_FallsBackWhenSorterMissingOnNode(t *testing.T) {
	ra := res("a.md", "topics", "a")
	rb := res("b.md", "topics", "a")
	node := &fakeNode{resources: []Resource{ra, rb}}

	root := NewGroupWith(NewCapabilities(), &config.GroupingSpec{
		Name:   "topics",
		Sorter: "popularity",
		Groups: []*config.GroupingSpec{{Name: "a"}},
	})

	require.Equal(t, []string{"a.md", "b.md"}, resourceNames(root.Groups[0].ListResources(node)))
}

// The worked example: two resources tagged a and b under one node.
func TestWalkResourcesIn_GroupThenResourceOrder(t *testing.T) {
	root := NewGroupWith(NewCapabilities(), topicsSpec())
	node := &fakeNode{resources: []Resource{
		res("rb.md", "topics", "b"),
		res("ra.md", "topics", "a"),
	}}

	// Group order [a, b] wins over node resource order.
	require.Equal(t, []string{"ra.md", "rb.md"}, resourceNames(root.WalkResourcesIn(node)))
}

func TestWalkGroupsIn_FiltersGroupsWithoutDirectMatches(t *testing.T) {
	root := NewGroupWith(NewCapabilities(), topicsSpec())
	node := &fakeNode{resources: []Resource{
		res("ra.md", "topics", "a"),
		res("rb.md", "topics", "b"),
	}}

	// The root's own name "topics" matches no resource, so the root is
	// excluded; only a and b pass.
	require.Equal(t, []string{"a", "b"}, groupNames(root.WalkGroupsIn(node)))
}

func TestWalkGroupsIn_EmptyGroupingYieldsNothing(t *testing.T) {
	root := NewGroupWith(NewCapabilities(), &config.GroupingSpec{Name: "topics"})
	node := &fakeNode{resources: []Resource{res("r.md", "topics", "a")}}

	require.Empty(t, groupNames(root.WalkGroupsIn(node)))
}

// A group with no direct matches is excluded even when its descendants
// match; the descendants still pass their own check.
func TestWalkGroupsIn_ExclusionIsNotRecursive(t *testing.T) {
	root := NewGroupWith(NewCapabilities(), &config.GroupingSpec{
		Name: "topics",
		Groups: []*config.GroupingSpec{
			{Name: "parent", Groups: []*config.GroupingSpec{{Name: "child"}}},
		},
	})
	node := &fakeNode{resources: []Resource{res("r.md", "topics", "child")}}

	require.Equal(t, []string{"child"}, groupNames(root.WalkGroupsIn(node)))
}

func TestCapabilities_LastRegistrationWins(t *testing.T) {
	caps := NewCapabilities()

	first := NewGroupWith(caps, topicsSpec())
	second := NewGroupWith(caps, &config.GroupingSpec{
		Name:   "topics",
		Groups: []*config.GroupingSpec{{Name: "c"}},
	})

	got, err := caps.Get("topics")
	require.NoError(t, err)
	require.Same(t, second, got)

	// The displaced tree keeps answering its own queries unaffected.
	node := &fakeNode{resources: []Resource{res("ra.md", "topics", "a")}}
	require.Equal(t, []string{"ra.md"}, resourceNames(first.Groups[0].ListResources(node)))
}

func TestCapabilities_ChildGroupsRegisterTheirOwnNames(t *testing.T) {
	caps := NewCapabilities()
	root := NewGroupWith(caps, topicsSpec())

	a, err := caps.Get("a")
	require.NoError(t, err)
	require.Same(t, root.Groups[0], a)
	require.Equal(t, []string{"a", "b", "topics"}, caps.Names())
}

func TestCapabilities_UnknownGroupingReturnsError(t *testing.T) {
	caps := NewCapabilities()
	_, err := caps.Get("nope")
	require.ErrorIs(t, err, ErrGroupingNotFound)

	_, err = caps.WalkGroups("nope", &fakeNode{})
	require.ErrorIs(t, err, ErrGroupingNotFound)

	_, err = caps.WalkResourcesGroupedBy("nope", &fakeNode{})
	require.ErrorIs(t, err, ErrGroupingNotFound)
}

func TestCapabilities_WalkEntryPoints(t *testing.T) {
	caps := NewCapabilities()
	NewGroupWith(caps, topicsSpec())

	node := &fakeNode{resources: []Resource{
		res("ra.md", "topics", "a"),
		res("rb.md", "topics", "b"),
	}}

	groups, err := caps.WalkGroups("topics", node)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, groupNames(groups))

	resources, err := caps.WalkResourcesGroupedBy("topics", node)
	require.NoError(t, err)
	require.Equal(t, []string{"ra.md", "rb.md"}, resourceNames(resources))
}

func TestCapabilities_Clear(t *testing.T) {
	caps := NewCapabilities()
	NewGroupWith(caps, topicsSpec())
	caps.Clear()
	require.Empty(t, caps.Names())
}
