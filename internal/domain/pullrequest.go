package domain

import (
	"sort"
	"strings"
)

// PullRequest is a merged pull request returned by the issue search.
type PullRequest struct {
	RepoURL  string `json:"repoUrl"`
	HTMLURL  string `json:"htmlUrl"`
	DiffURL  string `json:"diffUrl"`
	APIURL   string `json:"apiUrl"`
	MergedAt string `json:"mergedAt"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	Diff     string `json:"diff,omitempty"`
}

// RepoName derives "owner/name" from the repository API URL.
func (pr PullRequest) RepoName() string {
	parts := strings.Split(strings.TrimSuffix(pr.RepoURL, "/"), "/")
	if len(parts) < 2 {
		return pr.RepoURL
	}
	return parts[len(parts)-2] + "/" + parts[len(parts)-1]
}

// SortPullRequests orders pull requests ascending by merge date.
func SortPullRequests(prs []PullRequest) {
	sort.SliceStable(prs, func(i, j int) bool {
		return prs[i].MergedAt < prs[j].MergedAt
	})
}
