// Package site holds the host site model: a tree of nodes (directories)
// and resources (markdown files with frontmatter metadata).
package site

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitegrouper/internal/frontmatter"
	"git.home.luguber.info/inful/sitegrouper/internal/logfields"
)

// ErrNotADirectory indicates the content root is not a directory.
var ErrNotADirectory = errors.New("content root is not a directory")

// Site is the loaded content tree.
type Site struct {
	ContentDir string
	Root       *Node
}

// markdownExtensions are the resource file types the grouper operates on.
// Assets (images etc.) carry no frontmatter and are ignored.
var markdownExtensions = map[string]bool{".md": true, ".markdown": true}

// Load builds a site tree from a content directory.
//
// Hidden files and directories are skipped. Files with malformed frontmatter
// are logged and excluded; they never abort the load.
func Load(root string) (*Site, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve content dir: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to stat content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, root)
	}

	rootNode := &Node{Name: filepath.Base(abs), Path: abs, RelPath: "."}
	nodes := map[string]*Node{".": rootNode}
	resourceCount := 0

	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, relErr := filepath.Rel(abs, path)
		if relErr != nil {
			return relErr
		}
		if rel == "." {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		parent := nodes[filepath.Dir(rel)]
		if parent == nil {
			// Parent was skipped; skip the subtree too.
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			node := &Node{Name: d.Name(), Path: path, RelPath: rel, Parent: parent}
			parent.Nodes = append(parent.Nodes, node)
			nodes[rel] = node
			return nil
		}

		if !markdownExtensions[strings.ToLower(filepath.Ext(d.Name()))] {
			return nil
		}

		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return fmt.Errorf("failed to read resource: %w", readErr)
		}
		meta, body, fmErr := frontmatter.Extract(content)
		if fmErr != nil {
			slog.Warn("Skipping resource with malformed frontmatter",
				logfields.Path(rel), logfields.Error(fmErr))
			return nil
		}

		r := newResource(d.Name(), path, rel, parent, meta, body)
		parent.Resources = append(parent.Resources, r)
		resourceCount++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk content dir: %w", err)
	}

	slog.Debug("Loaded site content", logfields.Path(abs), logfields.Count(resourceCount))
	return &Site{ContentDir: abs, Root: rootNode}, nil
}

// NodeAt returns the node at the given content-relative path, or nil.
func (s *Site) NodeAt(relPath string) *Node {
	relPath = filepath.Clean(relPath)
	for n := range s.Root.Walk() {
		if n.RelPath == relPath {
			return n
		}
	}
	return nil
}
