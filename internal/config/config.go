package config

// Config represents the full application configuration.
type Config struct {
	GitHub        GitHubConfig        `yaml:"github"`
	HTTP          HTTPConfig          `yaml:"http"`
	Output        OutputConfig        `yaml:"output"`
	Render        RenderConfig        `yaml:"render"`
	Store         StoreConfig         `yaml:"store"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// GitHubConfig holds API access and default search settings.
type GitHubConfig struct {
	Token   string `yaml:"token"`
	BaseURL string `yaml:"baseURL"`

	// Author is the default search author; the --author flag overrides it.
	Author string `yaml:"author"`

	// IncludeRepos and ExcludeRepos are owner/name lists. They are mutually
	// exclusive; a non-empty include list wins.
	IncludeRepos []string `yaml:"includeRepos"`
	ExcludeRepos []string `yaml:"excludeRepos"`
}

// HTTPConfig holds global HTTP client settings.
type HTTPConfig struct {
	Timeout           string  `yaml:"timeout"`
	MaxRetries        int     `yaml:"maxRetries"`
	InitialBackoff    string  `yaml:"initialBackoff"`
	MaxBackoff        string  `yaml:"maxBackoff"`
	BackoffMultiplier float64 `yaml:"backoffMultiplier"`
}

// OutputConfig controls where and how artifacts are written.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Format    string `yaml:"format"` // pdf, markdown, json
	Filename  string `yaml:"filename"`
}

// RenderConfig controls the diff view embedded in artifacts.
type RenderConfig struct {
	IncludeDiffs bool `yaml:"includeDiffs"`

	// MaxDiffLines caps the total diff body rows per document. Zero or
	// negative means unlimited.
	MaxDiffLines int `yaml:"maxDiffLines"`

	// DiffExtensions selects which changed files are rendered, by suffix.
	DiffExtensions []string `yaml:"diffExtensions"`
}

// StoreConfig configures the diff cache.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ObservabilityConfig configures logging.
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures request/response logging.
type LoggingConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Level        string `yaml:"level"`        // debug, info, error
	Format       string `yaml:"format"`       // json, human
	RedactTokens bool   `yaml:"redactTokens"` // Redact API tokens in logs
}

// Merge combines multiple configuration instances, prioritising the latter ones.
func Merge(configs ...Config) Config {
	result := Config{}
	for _, cfg := range configs {
		result = merge(result, cfg)
	}
	return result
}

func merge(base, overlay Config) Config {
	result := base

	result.GitHub = chooseGitHub(base.GitHub, overlay.GitHub)
	result.HTTP = chooseHTTP(base.HTTP, overlay.HTTP)
	result.Output = chooseOutput(base.Output, overlay.Output)
	result.Render = chooseRender(base.Render, overlay.Render)
	result.Store = chooseStore(base.Store, overlay.Store)
	result.Observability = chooseObservability(base.Observability, overlay.Observability)

	return result
}

func chooseGitHub(base, overlay GitHubConfig) GitHubConfig {
	result := base
	if overlay.Token != "" {
		result.Token = overlay.Token
	}
	if overlay.BaseURL != "" {
		result.BaseURL = overlay.BaseURL
	}
	if overlay.Author != "" {
		result.Author = overlay.Author
	}
	if len(overlay.IncludeRepos) > 0 {
		result.IncludeRepos = overlay.IncludeRepos
	}
	if len(overlay.ExcludeRepos) > 0 {
		result.ExcludeRepos = overlay.ExcludeRepos
	}
	return result
}

func chooseHTTP(base, overlay HTTPConfig) HTTPConfig {
	if overlay.Timeout != "" || overlay.MaxRetries != 0 || overlay.InitialBackoff != "" || overlay.MaxBackoff != "" || overlay.BackoffMultiplier != 0 {
		return overlay
	}
	return base
}

func chooseOutput(base, overlay OutputConfig) OutputConfig {
	result := base
	if overlay.Directory != "" {
		result.Directory = overlay.Directory
	}
	if overlay.Format != "" {
		result.Format = overlay.Format
	}
	if overlay.Filename != "" {
		result.Filename = overlay.Filename
	}
	return result
}

func chooseRender(base, overlay RenderConfig) RenderConfig {
	if overlay.IncludeDiffs || overlay.MaxDiffLines != 0 || len(overlay.DiffExtensions) > 0 {
		return overlay
	}
	return base
}

func chooseStore(base, overlay StoreConfig) StoreConfig {
	if overlay.Enabled || overlay.Path != "" {
		return overlay
	}
	return base
}

func chooseObservability(base, overlay ObservabilityConfig) ObservabilityConfig {
	result := base
	if overlay.Logging.Enabled || overlay.Logging.Level != "" || overlay.Logging.Format != "" {
		result.Logging = overlay.Logging
	}
	return result
}
