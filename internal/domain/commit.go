package domain

import "sort"

// Commit is a single commit returned by the commit search.
type Commit struct {
	SHA       string `json:"sha"`
	HTMLURL   string `json:"htmlUrl"`
	RepoURL   string `json:"repoUrl"`
	RepoName  string `json:"repoName"`
	Author    string `json:"author"`
	Committer string `json:"committer"`
	Date      string `json:"date"`
	Message   string `json:"message"`
}

// SortCommits orders commits ascending by commit date. Dates are ISO-8601
// strings, so lexicographic order is chronological.
func SortCommits(commits []Commit) {
	sort.SliceStable(commits, func(i, j int) bool {
		return commits[i].Date < commits[j].Date
	})
}
