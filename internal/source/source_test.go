package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegrouper/internal/config"
)

func TestFetch_NoSource_ReturnsError(t *testing.T) {
	_, cleanup, err := Fetch(context.Background(), config.Content{})
	defer cleanup()
	require.ErrorIs(t, err, ErrNoContentSource)
}

func TestFetch_LocalDirPassthrough(t *testing.T) {
	dir, cleanup, err := Fetch(context.Background(), config.Content{Dir: "/srv/content", Path: "docs"})
	defer cleanup()
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/srv/content", "docs"), dir)
}

// initContentRepo creates a local git repository with one committed file.
func initContentRepo(t *testing.T) string {
	t.Helper()
	repoDir := t.TempDir()

	repo, err := git.PlainInit(repoDir, false)
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(repoDir, "docs"), 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(repoDir, "docs", "post.md"),
		[]byte("---\ntopics: a\n---\n# Post\n"), 0644))

	w, err := repo.Worktree()
	require.NoError(t, err)
	_, err = w.Add("docs/post.md")
	require.NoError(t, err)
	_, err = w.Commit("add post", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com"},
	})
	require.NoError(t, err)

	return repoDir
}

func TestFetch_ClonesGitRepository(t *testing.T) {
	repoDir := initContentRepo(t)

	dir, cleanup, err := Fetch(context.Background(), config.Content{
		URL:  repoDir, // file-path URLs are valid clone sources
		Path: "docs",
	})
	require.NoError(t, err)
	defer cleanup()

	require.FileExists(t, filepath.Join(dir, "post.md"))

	cleanup()
	_, statErr := os.Stat(dir)
	require.True(t, os.IsNotExist(statErr))
}

func TestFetch_MissingContentPathInRepo_ReturnsError(t *testing.T) {
	repoDir := initContentRepo(t)

	_, cleanup, err := Fetch(context.Background(), config.Content{URL: repoDir, Path: "missing"})
	defer cleanup()
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found in repository")
}
