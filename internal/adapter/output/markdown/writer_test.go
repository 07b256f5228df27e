package markdown

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkyoung/gh-summary/internal/domain"
)

func fixedNow() time.Time {
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

func sampleArtifact(dir string) domain.Artifact {
	return domain.Artifact{
		Summary: domain.Summary{
			Author:    "octocat",
			StartDate: "2024-01-01",
			EndDate:   "2024-01-31",
			Commits: []domain.Commit{
				{
					SHA:      "abc123",
					RepoName: "octocat/hello",
					Author:   "octocat",
					Date:     "2024-01-10T12:00:00Z",
					Message:  "Fix the thing",
					HTMLURL:  "https://github.com/octocat/hello/commit/abc123",
				},
			},
			PullRequests: []domain.PullRequest{
				{
					RepoURL:  "https://api.github.com/repos/octocat/hello",
					HTMLURL:  "https://github.com/octocat/hello/pull/1",
					MergedAt: "2024-01-12T08:00:00Z",
					Title:    "Add feature",
					Body:     "Implements the feature.",
					Diff: "diff --git a/x.py b/x.py\n" +
						"@@ -1,2 +1,3 @@\n" +
						" import os\n" +
						"+import sys\n" +
						" print('hi')\n" +
						"diff --git a/notes.txt b/notes.txt\n" +
						"@@ -1,1 +1,1 @@\n" +
						"-old\n" +
						"+new\n",
				},
			},
		},
		OutputDir: dir,
		Filename:  "summary",
	}
}

func TestWriterRendersSections(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(Options{IncludeDiffs: true, DiffExtensions: []string{".py"}}, fixedNow)

	path, err := w.Write(context.Background(), sampleArtifact(dir))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "summary.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "# Activity Summary: octocat")
	assert.Contains(t, content, "Period: 2024-01-01 to 2024-01-31")
	assert.Contains(t, content, "Generated: 2024-06-01 12:00:00 UTC")
	assert.Contains(t, content, "## Pull Requests (1)")
	assert.Contains(t, content, "## Commits (1)")
	assert.Contains(t, content, "- Commit ID: `abc123`")

	// PR section comes before the commit section.
	assert.Less(t, strings.Index(content, "## Pull Requests"), strings.Index(content, "## Commits"))
}

func TestWriterDiffExtensionFilter(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(Options{IncludeDiffs: true, DiffExtensions: []string{".py"}}, fixedNow)

	path, err := w.Write(context.Background(), sampleArtifact(dir))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "```diff")
	assert.Contains(t, content, "+import sys")
	assert.NotContains(t, content, "notes.txt")
}

func TestWriterDiffsDisabled(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(Options{IncludeDiffs: false, DiffExtensions: []string{".py"}}, fixedNow)

	path, err := w.Write(context.Background(), sampleArtifact(dir))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "```diff")
}

func TestWriterDiffLineLimit(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(Options{IncludeDiffs: true, MaxDiffLines: 2, DiffExtensions: []string{".py"}}, fixedNow)

	path, err := w.Write(context.Background(), sampleArtifact(dir))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "+import sys")
	assert.NotContains(t, content, "print('hi')")
	assert.Contains(t, content, "*[diff truncated]*")
}
