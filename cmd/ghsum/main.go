package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/bkyoung/gh-summary/internal/adapter/cli"
	githubadapter "github.com/bkyoung/gh-summary/internal/adapter/github"
	"github.com/bkyoung/gh-summary/internal/adapter/gitlocal"
	"github.com/bkyoung/gh-summary/internal/adapter/httpx"
	jsonwriter "github.com/bkyoung/gh-summary/internal/adapter/output/json"
	"github.com/bkyoung/gh-summary/internal/adapter/output/markdown"
	"github.com/bkyoung/gh-summary/internal/adapter/output/pdf"
	"github.com/bkyoung/gh-summary/internal/adapter/store/sqlite"
	"github.com/bkyoung/gh-summary/internal/config"
	"github.com/bkyoung/gh-summary/internal/usecase/summary"
	"github.com/bkyoung/gh-summary/internal/version"
)

func main() {
	if err := run(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run() error {
	// Create cancellable context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(config.LoaderOptions{})
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	logger := buildLogger(cfg.Observability)

	client := githubadapter.NewClient(cfg.GitHub.Token)
	if cfg.GitHub.BaseURL != "" {
		client.SetBaseURL(cfg.GitHub.BaseURL)
	}
	if timeout, err := time.ParseDuration(cfg.HTTP.Timeout); err == nil {
		client.SetTimeout(timeout)
	}
	client.SetRetryConfig(retryConfig(cfg.HTTP))
	if logger != nil {
		client.SetLogger(logger)
	}

	app := &app{cfg: cfg, client: client, logger: logger}

	// Diff cache is opt-in.
	if cfg.Store.Enabled {
		if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755); err != nil {
			log.Printf("warning: failed to create store directory: %v", err)
		} else if store, err := sqlite.NewStore(cfg.Store.Path); err != nil {
			log.Printf("warning: failed to open diff cache: %v", err)
		} else {
			app.cache = store
			defer store.Close()
		}
	}

	root := cli.NewRootCommand(cli.Dependencies{
		Summarizer: app,
		Defaults: cli.Defaults{
			Author:         cfg.GitHub.Author,
			Token:          cfg.GitHub.Token,
			OutputDir:      cfg.Output.Directory,
			Filename:       cfg.Output.Filename,
			Format:         cfg.Output.Format,
			IncludeRepos:   cfg.GitHub.IncludeRepos,
			ExcludeRepos:   cfg.GitHub.ExcludeRepos,
			IncludeDiffs:   cfg.Render.IncludeDiffs,
			MaxDiffLines:   cfg.Render.MaxDiffLines,
			DiffExtensions: cfg.Render.DiffExtensions,
		},
		Version:          version.Value(),
		SetToken:         client.SetToken,
		SetRenderOptions: app.setRenderOptions,
	})

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, cli.ErrVersionRequested) {
			return nil
		}
		return fmt.Errorf("command failed: %w", err)
	}
	return nil
}

// app wires the orchestrator per invocation so flag-resolved render options
// reach the output writers.
type app struct {
	cfg    config.Config
	client *githubadapter.Client
	cache  summary.DiffCache
	logger *httpx.DefaultLogger

	render pdf.Options
}

func (a *app) setRenderOptions(includeDiffs bool, maxDiffLines int, diffExtensions []string) {
	a.render = pdf.Options{
		IncludeDiffs:   includeDiffs,
		MaxDiffLines:   maxDiffLines,
		DiffExtensions: diffExtensions,
	}
}

func (a *app) Run(ctx context.Context, req summary.Request) (summary.Result, error) {
	deps := summary.Deps{
		Search: a.client,
		Cache:  a.cache,
		Writers: map[string]summary.Writer{
			"pdf": pdf.NewWriter(a.render),
			"markdown": markdown.NewWriter(markdown.Options{
				IncludeDiffs:   a.render.IncludeDiffs,
				MaxDiffLines:   a.render.MaxDiffLines,
				DiffExtensions: a.render.DiffExtensions,
			}, nil),
			"json": jsonwriter.NewWriter(a.render.IncludeDiffs),
		},
	}
	if a.logger != nil {
		deps.Logger = a.logger
	}
	if req.RepoDir != "" {
		deps.Local = gitlocal.NewEngine(req.RepoDir)
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		deps.Progress = func(format string, args ...interface{}) {
			fmt.Printf(format+"\n", args...)
		}
	}

	return summary.NewOrchestrator(deps).Run(ctx, req)
}

func retryConfig(cfg config.HTTPConfig) httpx.RetryConfig {
	conf := httpx.DefaultRetryConfig()
	if cfg.MaxRetries > 0 {
		conf.MaxRetries = cfg.MaxRetries
	}
	if d, err := time.ParseDuration(cfg.InitialBackoff); err == nil {
		conf.InitialBackoff = d
	}
	if d, err := time.ParseDuration(cfg.MaxBackoff); err == nil {
		conf.MaxBackoff = d
	}
	if cfg.BackoffMultiplier > 0 {
		conf.Multiplier = cfg.BackoffMultiplier
	}
	return conf
}

func buildLogger(cfg config.ObservabilityConfig) *httpx.DefaultLogger {
	if !cfg.Logging.Enabled {
		return nil
	}

	level := httpx.LogLevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = httpx.LogLevelDebug
	case "error":
		level = httpx.LogLevelError
	}

	format := httpx.LogFormatHuman
	if cfg.Logging.Format == "json" {
		format = httpx.LogFormatJSON
	}

	return httpx.NewDefaultLogger(level, format, cfg.Logging.RedactTokens)
}
