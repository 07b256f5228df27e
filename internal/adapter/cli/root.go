package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bkyoung/gh-summary/internal/usecase/summary"
)

// ErrVersionRequested indicates the user requested the CLI version and no further work should be done.
var ErrVersionRequested = errors.New("version requested")

// Summarizer defines the dependency required to run the summary command.
type Summarizer interface {
	Run(ctx context.Context, req summary.Request) (summary.Result, error)
}

// Arguments encapsulates IO writers injected from the host process.
type Arguments struct {
	OutWriter io.Writer
	ErrWriter io.Writer
}

// Defaults holds default flag values resolved from config.
type Defaults struct {
	Author         string
	Token          string
	OutputDir      string
	Filename       string
	Format         string
	IncludeRepos   []string
	ExcludeRepos   []string
	IncludeDiffs   bool
	MaxDiffLines   int
	DiffExtensions []string
}

// Dependencies captures the collaborators for the CLI.
type Dependencies struct {
	Summarizer Summarizer
	Args       Arguments
	Defaults   Defaults
	Version    string

	// SetToken hands the resolved API token to the host process before the
	// summary runs. Unused in local clone mode.
	SetToken func(token string)

	// SetRenderOptions hands the resolved diff-view options to the host
	// process so it can build the output writers accordingly.
	SetRenderOptions func(includeDiffs bool, maxDiffLines int, diffExtensions []string)
}

// NewRootCommand constructs the root Cobra command.
func NewRootCommand(deps Dependencies) *cobra.Command {
	versionString := deps.Version
	if versionString == "" {
		versionString = "v0.0.0"
	}

	root := &cobra.Command{
		Use:   "ghsum",
		Short: "Summarize a GitHub user's commits and merged pull requests",
	}
	root.SilenceUsage = true
	root.SilenceErrors = true

	outWriter := deps.Args.OutWriter
	if outWriter == nil {
		outWriter = os.Stdout
	}
	errWriter := deps.Args.ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	root.SetOut(outWriter)
	root.SetErr(errWriter)

	root.AddCommand(summaryCommand(deps))

	var showVersion bool
	root.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "Show version and exit")
	versionHandler := func(cmd *cobra.Command, args []string) error {
		if showVersion {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), versionString)
			return ErrVersionRequested
		}
		return nil
	}
	root.PersistentPreRunE = versionHandler
	root.PreRunE = versionHandler
	root.RunE = func(cmd *cobra.Command, args []string) error {
		if err := versionHandler(cmd, args); err != nil {
			return err
		}
		return cmd.Help()
	}

	return root
}

func summaryCommand(deps Dependencies) *cobra.Command {
	defaults := deps.Defaults

	var author string
	var startDate string
	var endDate string
	var token string
	var includeRepos []string
	var excludeRepos []string
	var outputDir string
	var filename string
	var format string
	var includeDiffs bool
	var maxDiffLines int
	var diffExtensions []string
	var repoDir string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Collect activity for a date range and write a summary artifact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if author == "" {
				return fmt.Errorf("author not specified; pass --author or set github.author in config")
			}
			if len(includeRepos) > 0 && len(excludeRepos) > 0 {
				return fmt.Errorf("--include-repo and --exclude-repo are mutually exclusive")
			}

			// Local clone mode reads git objects directly and needs no token.
			if repoDir == "" {
				resolved, err := ResolveToken(token)
				if err != nil {
					return err
				}
				if deps.SetToken != nil {
					deps.SetToken(resolved)
				}
			}

			if deps.SetRenderOptions != nil {
				deps.SetRenderOptions(includeDiffs, maxDiffLines, diffExtensions)
			}

			result, err := deps.Summarizer.Run(ctx, summary.Request{
				Author:       author,
				StartDate:    startDate,
				EndDate:      endDate,
				RepoDir:      repoDir,
				IncludeRepos: includeRepos,
				ExcludeRepos: excludeRepos,
				IncludeDiffs: includeDiffs,
				Format:       format,
				OutputDir:    outputDir,
				Filename:     filename,
			})
			if err != nil {
				return err
			}

			for _, dr := range result.DiffResults {
				if dr.Err != nil {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: diff unavailable for %s: %v\n", dr.URL, dr.Err)
				}
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d commits, %d pull requests)\n",
				result.Path, len(result.Summary.Commits), len(result.Summary.PullRequests))
			return nil
		},
	}

	cmd.Flags().StringVar(&author, "author", defaults.Author, "GitHub username to summarize")
	cmd.Flags().StringVar(&startDate, "start-date", "", "Start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&endDate, "end-date", "", "End date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&token, "token", defaults.Token, "GitHub API token (falls back to GITHUB_TOKEN, then gh auth token)")
	cmd.Flags().StringSliceVar(&includeRepos, "include-repo", defaults.IncludeRepos, "Only include these repositories (owner/name)")
	cmd.Flags().StringSliceVar(&excludeRepos, "exclude-repo", defaults.ExcludeRepos, "Exclude these repositories (owner/name)")
	if defaults.OutputDir == "" {
		defaults.OutputDir = "out"
	}
	cmd.Flags().StringVar(&outputDir, "output", defaults.OutputDir, "Directory to write the summary artifact")
	cmd.Flags().StringVar(&filename, "filename", defaults.Filename, "Artifact filename without extension (derived from author and dates when empty)")
	if defaults.Format == "" {
		defaults.Format = "pdf"
	}
	cmd.Flags().StringVar(&format, "format", defaults.Format, "Output format: pdf, markdown, or json")
	cmd.Flags().BoolVar(&includeDiffs, "include-diffs", defaults.IncludeDiffs, "Fetch and render unified diffs for merged pull requests")
	cmd.Flags().IntVar(&maxDiffLines, "max-diff-lines", defaults.MaxDiffLines, "Cap on rendered diff lines per document (0 for unlimited)")
	cmd.Flags().StringSliceVar(&diffExtensions, "diff-extensions", defaults.DiffExtensions, "File extensions to include in the diff view")
	cmd.Flags().StringVar(&repoDir, "repo-dir", "", "Read commits from a local clone instead of the search API")

	return cmd
}
