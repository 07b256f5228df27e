package json

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkyoung/gh-summary/internal/domain"
)

func TestWriterRoundTrip(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(true)

	artifact := domain.Artifact{
		Summary: domain.Summary{
			Author:    "octocat",
			StartDate: "2024-01-01",
			EndDate:   "2024-01-31",
			Commits: []domain.Commit{
				{SHA: "abc123", RepoName: "octocat/hello", Author: "octocat"},
			},
			PullRequests: []domain.PullRequest{
				{Title: "Add feature", Diff: "+added\n"},
			},
		},
		OutputDir: dir,
		Filename:  "summary",
	}

	path, err := w.Write(context.Background(), artifact)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "summary.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got domain.Summary
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "octocat", got.Author)
	require.Len(t, got.Commits, 1)
	assert.Equal(t, "abc123", got.Commits[0].SHA)
	require.Len(t, got.PullRequests, 1)
	assert.Equal(t, "+added\n", got.PullRequests[0].Diff)
}

func TestWriterStripsDiffsWhenDisabled(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(false)

	original := domain.PullRequest{Title: "Add feature", Diff: "+added\n"}
	artifact := domain.Artifact{
		Summary: domain.Summary{
			Author:       "octocat",
			PullRequests: []domain.PullRequest{original},
		},
		OutputDir: dir,
		Filename:  "summary",
	}

	path, err := w.Write(context.Background(), artifact)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got domain.Summary
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got.PullRequests, 1)
	assert.Empty(t, got.PullRequests[0].Diff)

	// Caller's slice is untouched.
	assert.Equal(t, "+added\n", original.Diff)
	assert.Equal(t, "+added\n", artifact.Summary.PullRequests[0].Diff)
}
