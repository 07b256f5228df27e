// Package gitlocal lists commit activity from a local clone, as an
// offline alternative to the search API.
package gitlocal

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	goGit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/bkyoung/gh-summary/internal/domain"
)

// Engine reads commits from a repository on disk, backed by go-git.
type Engine struct {
	repoDir string
}

// NewEngine constructs an engine for the provided repository directory.
func NewEngine(repoDir string) *Engine {
	return &Engine{repoDir: repoDir}
}

// Commits walks history from HEAD and returns the author's commits within
// the optional date bounds, sorted ascending by commit date. The author
// matches either the signature name or the email local part,
// case-insensitively.
func (e *Engine) Commits(ctx context.Context, author string, since, until *time.Time) ([]domain.Commit, error) {
	repo, err := goGit.PlainOpenWithOptions(e.repoDir, &goGit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}

	iter, err := repo.Log(&goGit.LogOptions{From: head.Hash(), Since: since, Until: until})
	if err != nil {
		return nil, fmt.Errorf("walk history: %w", err)
	}
	defer iter.Close()

	repoName := e.repoName()

	var commits []domain.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !matchesAuthor(c.Author, author) {
			return nil
		}
		commits = append(commits, domain.Commit{
			SHA:       c.Hash.String(),
			RepoName:  repoName,
			Author:    c.Author.Name,
			Committer: c.Committer.Name,
			Date:      c.Committer.When.UTC().Format(time.RFC3339),
			Message:   strings.TrimSpace(c.Message),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterate commits: %w", err)
	}

	domain.SortCommits(commits)
	return commits, nil
}

func (e *Engine) repoName() string {
	abs, err := filepath.Abs(e.repoDir)
	if err != nil {
		return e.repoDir
	}
	return filepath.Base(abs)
}

func matchesAuthor(sig object.Signature, author string) bool {
	if author == "" {
		return true
	}
	if strings.EqualFold(sig.Name, author) {
		return true
	}
	local, _, found := strings.Cut(sig.Email, "@")
	return found && strings.EqualFold(local, author)
}
