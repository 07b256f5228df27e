package github_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkyoung/gh-summary/internal/adapter/github"
	"github.com/bkyoung/gh-summary/internal/adapter/httpx"
)

func noRetry() httpx.RetryConfig {
	return httpx.RetryConfig{MaxRetries: 0, InitialBackoff: time.Millisecond, MaxBackoff: time.Millisecond, Multiplier: 1.0}
}

func newTestClient(serverURL string) *github.Client {
	client := github.NewClient("test-token")
	client.SetBaseURL(serverURL)
	client.SetRetryConfig(noRetry())
	return client
}

const commitPage = `{
	"total_count": 2,
	"items": [
		{
			"sha": "def456",
			"html_url": "https://github.com/octo/widgets/commit/def456",
			"commit": {
				"author": {"name": "Octo Dev", "date": "2026-02-02T08:00:00Z"},
				"committer": {"name": "Octo Dev", "date": "2026-02-02T09:00:00Z"},
				"message": "Second change"
			},
			"repository": {"full_name": "octo/widgets", "html_url": "https://github.com/octo/widgets"}
		},
		{
			"sha": "abc123",
			"html_url": "https://github.com/octo/widgets/commit/abc123",
			"commit": {
				"author": {"name": "Octo Dev", "date": "2026-01-01T08:00:00Z"},
				"committer": {"name": "Octo Dev", "date": "2026-01-01T09:00:00Z"},
				"message": "First change"
			},
			"repository": {"full_name": "octo/widgets", "html_url": "https://github.com/octo/widgets"}
		}
	]
}`

func TestSearchCommits(t *testing.T) {
	var gotPath, gotQuery, gotAuth, gotVersion string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("q")
		gotAuth = r.Header.Get("Authorization")
		gotVersion = r.Header.Get("X-GitHub-Api-Version")
		fmt.Fprint(w, commitPage)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	commits, err := client.SearchCommits(context.Background(), "octo-dev", "2026-01-01..2026-02-28")

	require.NoError(t, err)
	assert.Equal(t, "/search/commits", gotPath)
	assert.Equal(t, "author:octo-dev author-date:2026-01-01..2026-02-28", gotQuery)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "2022-11-28", gotVersion)

	require.Len(t, commits, 2)
	// Sorted ascending by commit date regardless of response order.
	assert.Equal(t, "abc123", commits[0].SHA)
	assert.Equal(t, "def456", commits[1].SHA)
	assert.Equal(t, "octo/widgets", commits[0].RepoName)
	assert.Equal(t, "First change", commits[0].Message)
	assert.Equal(t, "2026-01-01T09:00:00Z", commits[0].Date)
}

func TestSearchCommitsPaginates(t *testing.T) {
	pages := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pages++
		page := r.URL.Query().Get("page")
		if page == "1" {
			fmt.Fprintf(w, `{"total_count": 2, "items": [{"sha": "one", "commit": {"committer": {"date": "2026-01-01T00:00:00Z"}}, "repository": {"full_name": "octo/widgets"}}]}`)
			return
		}
		fmt.Fprintf(w, `{"total_count": 2, "items": [{"sha": "two", "commit": {"committer": {"date": "2026-01-02T00:00:00Z"}}, "repository": {"full_name": "octo/widgets"}}]}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	commits, err := client.SearchCommits(context.Background(), "octo-dev", "")

	require.NoError(t, err)
	assert.Equal(t, 2, pages)
	assert.Len(t, commits, 2)
}

func TestSearchPullRequestsKeepsOnlyClosed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/issues", r.URL.Path)
		assert.Equal(t, "type:pr is:merged author:octo-dev merged:>=2026-01-01", r.URL.Query().Get("q"))
		fmt.Fprint(w, `{
			"total_count": 2,
			"items": [
				{
					"title": "Add parser",
					"body": "Adds the parser",
					"state": "closed",
					"repository_url": "https://api.github.com/repos/octo/widgets",
					"pull_request": {
						"html_url": "https://github.com/octo/widgets/pull/7",
						"diff_url": "https://github.com/octo/widgets/pull/7.diff",
						"url": "https://api.github.com/repos/octo/widgets/pulls/7",
						"merged_at": "2026-01-05T10:00:00Z"
					}
				},
				{
					"title": "Still open",
					"state": "open",
					"repository_url": "https://api.github.com/repos/octo/widgets",
					"pull_request": {"merged_at": ""}
				}
			]
		}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	prs, err := client.SearchPullRequests(context.Background(), "octo-dev", ">=2026-01-01")

	require.NoError(t, err)
	require.Len(t, prs, 1)
	assert.Equal(t, "Add parser", prs[0].Title)
	assert.Equal(t, "octo/widgets", prs[0].RepoName())
	assert.Equal(t, "2026-01-05T10:00:00Z", prs[0].MergedAt)
}

func TestSearchCommitsMapsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message": "Bad credentials"}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.SearchCommits(context.Background(), "octo-dev", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, httpx.NewAuthenticationError(""))
}

func TestSearchCommitsRetriesServerErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `{"total_count": 0, "items": []}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.SetRetryConfig(httpx.RetryConfig{MaxRetries: 2, InitialBackoff: time.Millisecond, MaxBackoff: 2 * time.Millisecond, Multiplier: 2.0})

	commits, err := client.SearchCommits(context.Background(), "octo-dev", "")

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Empty(t, commits)
}

func TestFetchDiff(t *testing.T) {
	const rawDiff = "diff --git a/x.py b/x.py\n@@ -1 +1 @@\n-old\n+new\n"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rawDiff)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	got, err := client.FetchDiff(context.Background(), server.URL+"/octo/widgets/pull/7.diff")

	require.NoError(t, err)
	assert.Equal(t, rawDiff, got)
}

func TestFetchDiffReturnsErrorOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchDiff(context.Background(), server.URL+"/missing.diff")

	require.Error(t, err)
	assert.ErrorIs(t, err, httpx.NewNotFoundError(""))
}
