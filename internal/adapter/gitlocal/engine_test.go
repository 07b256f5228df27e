package gitlocal_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	goGit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkyoung/gh-summary/internal/adapter/gitlocal"
)

// initRepo creates a repository with one commit per entry in commits,
// in order, each a (author, email, message, when) tuple.
type testCommit struct {
	author  string
	email   string
	message string
	when    time.Time
}

func initRepo(t *testing.T, commits []testCommit) string {
	t.Helper()
	dir := t.TempDir()

	repo, err := goGit.PlainInit(dir, false)
	require.NoError(t, err)
	worktree, err := repo.Worktree()
	require.NoError(t, err)

	for i, tc := range commits {
		name := filepath.Join(dir, "file.txt")
		require.NoError(t, os.WriteFile(name, []byte(tc.message+"\n"), 0o644))
		_, err = worktree.Add("file.txt")
		require.NoError(t, err)

		sig := &object.Signature{Name: tc.author, Email: tc.email, When: tc.when}
		_, err = worktree.Commit(tc.message, &goGit.CommitOptions{Author: sig, Committer: sig})
		require.NoError(t, err, "commit %d", i)
	}

	return dir
}

func TestCommitsFiltersByAuthor(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	dir := initRepo(t, []testCommit{
		{"Octo Dev", "octo-dev@example.com", "first change", base},
		{"Someone Else", "other@example.com", "unrelated change", base.Add(time.Hour)},
		{"Octo Dev", "octo-dev@example.com", "second change", base.Add(2 * time.Hour)},
	})

	engine := gitlocal.NewEngine(dir)
	commits, err := engine.Commits(context.Background(), "Octo Dev", nil, nil)

	require.NoError(t, err)
	require.Len(t, commits, 2)
	// Ascending by commit date.
	assert.Equal(t, "first change", commits[0].Message)
	assert.Equal(t, "second change", commits[1].Message)
	assert.Equal(t, filepath.Base(dir), commits[0].RepoName)
	assert.NotEmpty(t, commits[0].SHA)
}

func TestCommitsMatchesEmailLocalPart(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	dir := initRepo(t, []testCommit{
		{"Display Name", "octo-dev@example.com", "by email", base},
	})

	engine := gitlocal.NewEngine(dir)
	commits, err := engine.Commits(context.Background(), "octo-dev", nil, nil)

	require.NoError(t, err)
	require.Len(t, commits, 1)
	assert.Equal(t, "by email", commits[0].Message)
}

func TestCommitsHonorsDateBounds(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	dir := initRepo(t, []testCommit{
		{"Octo Dev", "octo-dev@example.com", "too early", base},
		{"Octo Dev", "octo-dev@example.com", "in range", base.Add(48 * time.Hour)},
	})

	since := base.Add(24 * time.Hour)
	engine := gitlocal.NewEngine(dir)
	commits, err := engine.Commits(context.Background(), "Octo Dev", &since, nil)

	require.NoError(t, err)
	require.Len(t, commits, 1)
	assert.Equal(t, "in range", commits[0].Message)
}

func TestCommitsFailsOutsideRepository(t *testing.T) {
	engine := gitlocal.NewEngine(t.TempDir())
	_, err := engine.Commits(context.Background(), "anyone", nil, nil)
	assert.Error(t, err)
}
