package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterCommits(t *testing.T) {
	commits := []Commit{
		{SHA: "a", RepoName: "octo/widgets"},
		{SHA: "b", RepoName: "octo/gadgets"},
		{SHA: "c", RepoName: "octo/scratch"},
	}

	t.Run("no lists keeps everything", func(t *testing.T) {
		assert.Len(t, FilterCommits(commits, nil, nil), 3)
	})

	t.Run("include list wins", func(t *testing.T) {
		got := FilterCommits(commits, []string{"octo/widgets"}, []string{"octo/widgets"})
		assert.Len(t, got, 1)
		assert.Equal(t, "a", got[0].SHA)
	})

	t.Run("exclude list drops matches", func(t *testing.T) {
		got := FilterCommits(commits, nil, []string{"octo/scratch"})
		assert.Len(t, got, 2)
	})
}

func TestFilterPullRequests(t *testing.T) {
	prs := []PullRequest{
		{Title: "one", RepoURL: "https://api.github.com/repos/octo/widgets"},
		{Title: "two", RepoURL: "https://api.github.com/repos/octo/gadgets"},
	}

	got := FilterPullRequests(prs, []string{"octo/gadgets"}, nil)
	assert.Len(t, got, 1)
	assert.Equal(t, "two", got[0].Title)
}

func TestSortCommits(t *testing.T) {
	commits := []Commit{
		{SHA: "later", Date: "2026-02-01T00:00:00Z"},
		{SHA: "earlier", Date: "2026-01-01T00:00:00Z"},
	}

	SortCommits(commits)

	assert.Equal(t, "earlier", commits[0].SHA)
	assert.Equal(t, "later", commits[1].SHA)
}

func TestPullRequestRepoName(t *testing.T) {
	pr := PullRequest{RepoURL: "https://api.github.com/repos/octo/widgets"}
	assert.Equal(t, "octo/widgets", pr.RepoName())

	assert.Empty(t, PullRequest{}.RepoName())
}
