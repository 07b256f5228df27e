package domain

// Summary is the queried activity for one author and date range.
type Summary struct {
	Author       string        `json:"author"`
	StartDate    string        `json:"startDate,omitempty"`
	EndDate      string        `json:"endDate,omitempty"`
	Commits      []Commit      `json:"commits"`
	PullRequests []PullRequest `json:"pullRequests"`
}

// Artifact pairs a summary with its output destination.
type Artifact struct {
	Summary   Summary
	OutputDir string
	Filename  string
}
