// Package markdown renders activity summaries as a single Markdown report
// with fenced diff blocks for merged pull requests.
package markdown

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bkyoung/gh-summary/internal/diff"
	"github.com/bkyoung/gh-summary/internal/domain"
	"github.com/bkyoung/gh-summary/internal/render"
)

// Options configures the diff blocks embedded in the report.
type Options struct {
	IncludeDiffs   bool
	MaxDiffLines   int
	DiffExtensions []string
}

// Writer renders summaries into Markdown files.
type Writer struct {
	opts     Options
	renderer *render.DiffRenderer
	now      func() time.Time
}

// NewWriter constructs a Markdown writer. The now function supplies the
// generation timestamp stamped into the report header.
func NewWriter(opts Options, now func() time.Time) *Writer {
	if now == nil {
		now = time.Now
	}
	return &Writer{
		opts:     opts,
		renderer: render.NewDiffRenderer(opts.DiffExtensions),
		now:      now,
	}
}

// Write persists a Markdown artifact to disk and returns its path.
func (w *Writer) Write(ctx context.Context, artifact domain.Artifact) (string, error) {
	if err := os.MkdirAll(artifact.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	var b strings.Builder
	w.writeHeader(&b, artifact.Summary)
	w.writePullRequests(&b, artifact.Summary.PullRequests)
	w.writeCommits(&b, artifact.Summary.Commits)

	path := filepath.Join(artifact.OutputDir, artifact.Filename+".md")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write markdown: %w", err)
	}
	return path, nil
}

func (w *Writer) writeHeader(b *strings.Builder, summary domain.Summary) {
	fmt.Fprintf(b, "# Activity Summary: %s\n\n", summary.Author)
	fmt.Fprintf(b, "Period: %s to %s\n\n", summary.StartDate, summary.EndDate)
	fmt.Fprintf(b, "Generated: %s\n", w.now().UTC().Format("2006-01-02 15:04:05 MST"))
}

func (w *Writer) writeCommits(b *strings.Builder, commits []domain.Commit) {
	if len(commits) == 0 {
		return
	}

	fmt.Fprintf(b, "\n## Commits (%d)\n", len(commits))
	for i, commit := range commits {
		fmt.Fprintf(b, "\n### Commit #%d: %s\n\n", i+1, commit.RepoName)
		fmt.Fprintf(b, "- Commit ID: `%s`\n", commit.SHA)
		fmt.Fprintf(b, "- Date: %s\n", commit.Date)
		fmt.Fprintf(b, "- Author: %s\n", commit.Author)
		fmt.Fprintf(b, "- URL: %s\n", commit.HTMLURL)
		if commit.Message != "" {
			b.WriteString("\n")
			for _, line := range strings.Split(commit.Message, "\n") {
				fmt.Fprintf(b, "> %s\n", line)
			}
		}
	}
}

func (w *Writer) writePullRequests(b *strings.Builder, prs []domain.PullRequest) {
	if len(prs) == 0 {
		return
	}

	fmt.Fprintf(b, "\n## Pull Requests (%d)\n", len(prs))
	for i, pr := range prs {
		fmt.Fprintf(b, "\n### PR #%d: %s\n\n", i+1, pr.Title)
		fmt.Fprintf(b, "- Repository: %s\n", pr.RepoName())
		if pr.MergedAt != "" {
			fmt.Fprintf(b, "- Merged: %s\n", pr.MergedAt)
		}
		fmt.Fprintf(b, "- URL: %s\n", pr.HTMLURL)
		if pr.Body != "" {
			b.WriteString("\n")
			for _, line := range strings.Split(pr.Body, "\n") {
				fmt.Fprintf(b, "> %s\n", line)
			}
		}
		if w.opts.IncludeDiffs && pr.Diff != "" {
			w.writeDiff(b, pr.Diff)
		}
	}
}

// writeDiff emits a fenced diff block holding the files that pass the
// extension filter, truncated to the configured line limit.
func (w *Writer) writeDiff(b *strings.Builder, diffText string) {
	files := w.renderer.Filter(diff.Parse(diffText))
	if len(files) == 0 {
		return
	}

	b.WriteString("\n```diff\n")
	emitted := 0
	truncated := false

	for _, file := range files {
		if w.limitReached(emitted) {
			truncated = true
			break
		}
		fmt.Fprintf(b, "diff --git a/%s b/%s\n", file.OldPath, file.NewPath)

		for _, hunk := range file.Hunks {
			if w.limitReached(emitted) {
				truncated = true
				break
			}
			b.WriteString(hunk.Header + "\n")

			for _, line := range hunk.Lines {
				if w.limitReached(emitted) {
					truncated = true
					break
				}
				b.WriteString(marker(line.Type) + line.Content + "\n")
				emitted++
			}
		}
	}

	b.WriteString("```\n")
	if truncated {
		b.WriteString("\n*[diff truncated]*\n")
	}
}

func (w *Writer) limitReached(emitted int) bool {
	return w.opts.MaxDiffLines > 0 && emitted >= w.opts.MaxDiffLines
}

func marker(t diff.LineType) string {
	switch t {
	case diff.LineAddition:
		return "+"
	case diff.LineDeletion:
		return "-"
	default:
		return " "
	}
}
