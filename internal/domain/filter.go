package domain

// FilterCommits keeps commits whose repository passes the include/exclude
// lists. A non-empty include list wins over the exclude list.
func FilterCommits(commits []Commit, include, exclude []string) []Commit {
	if len(include) == 0 && len(exclude) == 0 {
		return commits
	}
	out := make([]Commit, 0, len(commits))
	for _, c := range commits {
		if repoAllowed(c.RepoName, include, exclude) {
			out = append(out, c)
		}
	}
	return out
}

// FilterPullRequests keeps pull requests whose repository passes the
// include/exclude lists.
func FilterPullRequests(prs []PullRequest, include, exclude []string) []PullRequest {
	if len(include) == 0 && len(exclude) == 0 {
		return prs
	}
	out := make([]PullRequest, 0, len(prs))
	for _, pr := range prs {
		if repoAllowed(pr.RepoName(), include, exclude) {
			out = append(out, pr)
		}
	}
	return out
}

func repoAllowed(name string, include, exclude []string) bool {
	if len(include) > 0 {
		for _, repo := range include {
			if repo == name {
				return true
			}
		}
		return false
	}
	for _, repo := range exclude {
		if repo == name {
			return false
		}
	}
	return true
}
