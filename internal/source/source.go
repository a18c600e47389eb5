// Package source materializes the content tree a site is built from,
// either a local directory or a git checkout.
package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"git.home.luguber.info/inful/sitegrouper/internal/config"
	"git.home.luguber.info/inful/sitegrouper/internal/logfields"
)

// ErrNoContentSource indicates a configuration with neither a dir nor a URL.
var ErrNoContentSource = errors.New("no content source configured")

// Fetch resolves the configured content source to a local directory.
//
// Local directories pass through untouched. Git URLs are cloned (single
// branch) into a temporary workspace; the returned cleanup removes it.
// cleanup is never nil.
func Fetch(ctx context.Context, content config.Content) (string, func(), error) {
	noop := func() {}

	if content.URL == "" {
		if content.Dir == "" {
			return "", noop, ErrNoContentSource
		}
		return filepath.Join(content.Dir, content.Path), noop, nil
	}

	workspace, err := os.MkdirTemp("", "sitegrouper-*")
	if err != nil {
		return "", noop, fmt.Errorf("failed to create workspace: %w", err)
	}
	cleanup := func() {
		if err := os.RemoveAll(workspace); err != nil {
			slog.Warn("Failed to remove workspace", logfields.Path(workspace), logfields.Error(err))
		}
	}

	slog.Debug("Cloning content repository",
		logfields.URL(content.URL), slog.String("branch", content.Branch), logfields.Path(workspace))

	cloneOptions := &git.CloneOptions{URL: content.URL}
	if content.Branch != "" {
		cloneOptions.ReferenceName = plumbing.ReferenceName("refs/heads/" + content.Branch)
		cloneOptions.SingleBranch = true
	}
	if _, err := git.PlainCloneContext(ctx, workspace, false, cloneOptions); err != nil {
		cleanup()
		return "", noop, fmt.Errorf("failed to clone content repository: %w", err)
	}

	dir := filepath.Join(workspace, content.Path)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		cleanup()
		return "", noop, fmt.Errorf("content path %s not found in repository %s", content.Path, content.URL)
	}
	return dir, cleanup, nil
}
