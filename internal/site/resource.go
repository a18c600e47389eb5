package site

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Resource is a single content file with frontmatter metadata.
type Resource struct {
	Name    string // file name including extension
	Path    string // absolute path
	RelPath string // path relative to the content root
	Node    *Node  // owning node
	Meta    map[string]any
	Title   string
}

func newResource(name, path, relPath string, node *Node, meta map[string]any, body []byte) *Resource {
	r := &Resource{
		Name:    name,
		Path:    path,
		RelPath: relPath,
		Node:    node,
		Meta:    meta,
	}
	r.Title = resolveTitle(meta, body, name)
	return r
}

// MetaField returns the string form of a scalar metadata value.
//
// Missing keys and non-scalar values (mappings, sequences) report false;
// non-string scalars are formatted so a group named "3" can match `topics: 3`.
func (r *Resource) MetaField(key string) (string, bool) {
	v, ok := r.Meta[key]
	if !ok || v == nil {
		return "", false
	}
	switch val := v.(type) {
	case string:
		return val, true
	case bool, int, int64, uint64, float64:
		return fmt.Sprintf("%v", val), true
	default:
		return "", false
	}
}

func resolveTitle(meta map[string]any, body []byte, name string) string {
	if t, ok := meta["title"].(string); ok && t != "" {
		return t
	}
	if h := firstHeading(body); h != "" {
		return h
	}
	return strings.TrimSuffix(name, "."+extension(name))
}

func extension(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 {
		return ""
	}
	return name[idx+1:]
}

// firstHeading extracts the text of the first markdown heading in body.
func firstHeading(body []byte) string {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))

	var title string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if _, ok := n.(*gmast.Heading); ok {
			title = inlineText(n, body)
			return gmast.WalkStop, nil
		}
		return gmast.WalkContinue, nil
	})
	return strings.TrimSpace(title)
}

func inlineText(n gmast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *gmast.Text:
			buf.Write(t.Segment.Value(source))
		case *gmast.String:
			buf.Write(t.Value)
		default:
			buf.WriteString(inlineText(c, source))
		}
	}
	return buf.String()
}
