package github

import "github.com/bkyoung/gh-summary/internal/domain"

// commitSearchResponse mirrors the /search/commits payload.
type commitSearchResponse struct {
	TotalCount int          `json:"total_count"`
	Items      []commitItem `json:"items"`
}

type commitItem struct {
	SHA        string         `json:"sha"`
	HTMLURL    string         `json:"html_url"`
	Commit     commitDetail   `json:"commit"`
	Repository repositoryItem `json:"repository"`
}

type commitDetail struct {
	Author    signature `json:"author"`
	Committer signature `json:"committer"`
	Message   string    `json:"message"`
}

type signature struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

type repositoryItem struct {
	FullName string `json:"full_name"`
	HTMLURL  string `json:"html_url"`
}

// issueSearchResponse mirrors the /search/issues payload for PR queries.
type issueSearchResponse struct {
	TotalCount int         `json:"total_count"`
	Items      []issueItem `json:"items"`
}

type issueItem struct {
	Title         string          `json:"title"`
	Body          string          `json:"body"`
	State         string          `json:"state"`
	RepositoryURL string          `json:"repository_url"`
	PullRequest   pullRequestItem `json:"pull_request"`
}

type pullRequestItem struct {
	HTMLURL  string `json:"html_url"`
	DiffURL  string `json:"diff_url"`
	URL      string `json:"url"`
	MergedAt string `json:"merged_at"`
}

func (it commitItem) toDomain() domain.Commit {
	return domain.Commit{
		SHA:       it.SHA,
		HTMLURL:   it.HTMLURL,
		RepoURL:   it.Repository.HTMLURL,
		RepoName:  it.Repository.FullName,
		Author:    it.Commit.Author.Name,
		Committer: it.Commit.Committer.Name,
		Date:      it.Commit.Committer.Date,
		Message:   it.Commit.Message,
	}
}

func (it issueItem) toDomain() domain.PullRequest {
	return domain.PullRequest{
		RepoURL:  it.RepositoryURL,
		HTMLURL:  it.PullRequest.HTMLURL,
		DiffURL:  it.PullRequest.DiffURL,
		APIURL:   it.PullRequest.URL,
		MergedAt: it.PullRequest.MergedAt,
		Title:    it.Title,
		Body:     it.Body,
	}
}
