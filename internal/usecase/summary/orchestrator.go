// Package summary implements the activity-summary use case: collect a
// user's commits and merged pull requests for a date range, optionally
// attach unified diffs, and hand the result to an output writer.
package summary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bkyoung/gh-summary/internal/domain"
)

// SearchClient defines the outbound port for the GitHub search API.
type SearchClient interface {
	// SearchCommits returns the author's commits in the date range.
	SearchCommits(ctx context.Context, author, dateRange string) ([]domain.Commit, error)

	// SearchPullRequests returns the author's merged pull requests in the
	// date range.
	SearchPullRequests(ctx context.Context, author, dateRange string) ([]domain.PullRequest, error)

	// FetchDiff retrieves the raw unified diff behind a pull request's
	// diff URL.
	FetchDiff(ctx context.Context, diffURL string) (string, error)
}

// LocalEngine defines the outbound port for reading commits from a local
// clone instead of the search API.
type LocalEngine interface {
	Commits(ctx context.Context, author string, since, until *time.Time) ([]domain.Commit, error)
}

// DiffCache defines the outbound port for caching fetched diff text.
type DiffCache interface {
	GetDiff(ctx context.Context, diffURL string) (string, bool, error)
	PutDiff(ctx context.Context, diffURL, diff string) error
}

// Writer persists a summary artifact to disk.
type Writer interface {
	Write(ctx context.Context, artifact domain.Artifact) (string, error)
}

// Logger provides structured logging for the summary use case.
type Logger interface {
	// LogWarning logs a warning message with structured fields.
	LogWarning(ctx context.Context, message string, fields map[string]interface{})

	// LogInfo logs an informational message with structured fields.
	LogInfo(ctx context.Context, message string, fields map[string]interface{})
}

// ProgressFunc reports human-readable progress. Wired only when stdout is
// an interactive terminal.
type ProgressFunc func(format string, args ...interface{})

// Deps captures the inbound dependencies for the orchestrator.
type Deps struct {
	Search   SearchClient
	Local    LocalEngine       // Optional: local clone mode (Request.RepoDir)
	Cache    DiffCache         // Optional: diff cache, hits skip the network
	Writers  map[string]Writer // Keyed by output format
	Logger   Logger            // Optional
	Progress ProgressFunc      // Optional
}

// Request represents an inbound CLI request.
type Request struct {
	Author    string
	StartDate string // YYYY-MM-DD, optional
	EndDate   string // YYYY-MM-DD, optional

	RepoDir string // Non-empty switches to local clone mode (commits only)

	IncludeRepos []string // owner/name, mutually exclusive with ExcludeRepos
	ExcludeRepos []string

	IncludeDiffs bool

	Format    string // pdf, markdown, or json
	OutputDir string
	Filename  string // Without extension; derived from author and dates when empty
}

// DiffResult records the outcome of one pull request diff fetch.
type DiffResult struct {
	URL string
	Err error // nil on success
}

// Result captures the orchestrator outcome.
type Result struct {
	Path        string
	Summary     domain.Summary
	DiffResults []DiffResult
}

// Orchestrator implements the summary flow.
type Orchestrator struct {
	deps Deps
}

// NewOrchestrator wires the orchestrator dependencies.
func NewOrchestrator(deps Deps) *Orchestrator {
	return &Orchestrator{deps: deps}
}

func (o *Orchestrator) validate(req Request) error {
	if req.Author == "" {
		return errors.New("author is required")
	}
	if len(req.IncludeRepos) > 0 && len(req.ExcludeRepos) > 0 {
		return errors.New("include and exclude repo lists are mutually exclusive")
	}
	if req.RepoDir == "" && o.deps.Search == nil {
		return errors.New("search client is required")
	}
	if req.RepoDir != "" && o.deps.Local == nil {
		return errors.New("local git engine is required for --repo-dir")
	}
	if _, ok := o.deps.Writers[req.Format]; !ok {
		return fmt.Errorf("unknown output format %q", req.Format)
	}
	return nil
}

// Run collects the author's activity, attaches diffs when requested, and
// writes the artifact. Diff fetch failures are recorded per item and never
// abort the run.
func (o *Orchestrator) Run(ctx context.Context, req Request) (Result, error) {
	if err := o.validate(req); err != nil {
		return Result{}, err
	}

	dateRange, err := DateRange(req.StartDate, req.EndDate)
	if err != nil {
		return Result{}, err
	}

	var commits []domain.Commit
	var prs []domain.PullRequest

	if req.RepoDir != "" {
		o.progress("Reading commits from %s...", req.RepoDir)
		since, until := dateBounds(req.StartDate, req.EndDate)
		commits, err = o.deps.Local.Commits(ctx, req.Author, since, until)
		if err != nil {
			return Result{}, fmt.Errorf("list local commits: %w", err)
		}
	} else {
		o.progress("Searching commits for %s...", req.Author)
		commits, err = o.deps.Search.SearchCommits(ctx, req.Author, dateRange)
		if err != nil {
			return Result{}, err
		}

		o.progress("Searching merged pull requests for %s...", req.Author)
		prs, err = o.deps.Search.SearchPullRequests(ctx, req.Author, dateRange)
		if err != nil {
			return Result{}, err
		}
	}

	commits = domain.FilterCommits(commits, req.IncludeRepos, req.ExcludeRepos)
	prs = domain.FilterPullRequests(prs, req.IncludeRepos, req.ExcludeRepos)

	var diffResults []DiffResult
	if req.IncludeDiffs && len(prs) > 0 {
		diffResults = o.attachDiffs(ctx, prs)
	}

	summary := domain.Summary{
		Author:       req.Author,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Commits:      commits,
		PullRequests: prs,
	}

	filename := req.Filename
	if filename == "" {
		filename = defaultFilename(req)
	}

	o.progress("Writing %s artifact to %s...", req.Format, req.OutputDir)
	path, err := o.deps.Writers[req.Format].Write(ctx, domain.Artifact{
		Summary:   summary,
		OutputDir: req.OutputDir,
		Filename:  filename,
	})
	if err != nil {
		return Result{}, err
	}

	return Result{Path: path, Summary: summary, DiffResults: diffResults}, nil
}

// attachDiffs fills in pr.Diff for each pull request, best effort. Cache
// hits skip the network; fetched diffs are written back to the cache.
func (o *Orchestrator) attachDiffs(ctx context.Context, prs []domain.PullRequest) []DiffResult {
	results := make([]DiffResult, 0, len(prs))
	failures := 0

	for i := range prs {
		pr := &prs[i]
		if pr.DiffURL == "" {
			continue
		}

		if o.deps.Cache != nil {
			cached, ok, err := o.deps.Cache.GetDiff(ctx, pr.DiffURL)
			if err != nil {
				o.warn(ctx, "diff cache read failed", map[string]interface{}{
					"url": pr.DiffURL, "error": err.Error(),
				})
			} else if ok {
				pr.Diff = cached
				results = append(results, DiffResult{URL: pr.DiffURL})
				continue
			}
		}

		o.progress("Fetching diff %d/%d...", i+1, len(prs))
		text, err := o.deps.Search.FetchDiff(ctx, pr.DiffURL)
		if err != nil {
			failures++
			results = append(results, DiffResult{URL: pr.DiffURL, Err: err})
			o.warn(ctx, "diff fetch failed", map[string]interface{}{
				"url": pr.DiffURL, "error": err.Error(),
			})
			continue
		}

		pr.Diff = text
		results = append(results, DiffResult{URL: pr.DiffURL})

		if o.deps.Cache != nil {
			if err := o.deps.Cache.PutDiff(ctx, pr.DiffURL, text); err != nil {
				o.warn(ctx, "diff cache write failed", map[string]interface{}{
					"url": pr.DiffURL, "error": err.Error(),
				})
			}
		}
	}

	if o.deps.Logger != nil {
		o.deps.Logger.LogInfo(ctx, "diff fetch complete", map[string]interface{}{
			"requested": len(results),
			"failed":    failures,
		})
	}
	return results
}

func defaultFilename(req Request) string {
	name := req.Author + "_summary"
	if req.StartDate != "" {
		name += "_" + req.StartDate
	}
	if req.EndDate != "" {
		name += "_" + req.EndDate
	}
	return name
}

func (o *Orchestrator) progress(format string, args ...interface{}) {
	if o.deps.Progress != nil {
		o.deps.Progress(format, args...)
	}
}

func (o *Orchestrator) warn(ctx context.Context, message string, fields map[string]interface{}) {
	if o.deps.Logger != nil {
		o.deps.Logger.LogWarning(ctx, message, fields)
	}
}
