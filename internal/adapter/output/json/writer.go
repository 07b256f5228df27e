// Package json renders activity summaries as machine-readable JSON files.
package json

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bkyoung/gh-summary/internal/domain"
)

// Writer renders summaries into JSON files.
type Writer struct {
	includeDiffs bool
}

// NewWriter constructs a JSON writer. When includeDiffs is false, fetched
// diff bodies are stripped before serialization.
func NewWriter(includeDiffs bool) *Writer {
	return &Writer{includeDiffs: includeDiffs}
}

// Write persists a JSON artifact to disk and returns its path.
func (w *Writer) Write(ctx context.Context, artifact domain.Artifact) (string, error) {
	if err := os.MkdirAll(artifact.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	summary := artifact.Summary
	if !w.includeDiffs {
		prs := make([]domain.PullRequest, len(summary.PullRequests))
		copy(prs, summary.PullRequests)
		for i := range prs {
			prs[i].Diff = ""
		}
		summary.PullRequests = prs
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal summary: %w", err)
	}

	path := filepath.Join(artifact.OutputDir, artifact.Filename+".json")
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write json: %w", err)
	}
	return path, nil
}
