package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// LoaderOptions describes how configuration should be discovered.
type LoaderOptions struct {
	ConfigPaths []string
	FileName    string
	EnvPrefix   string
}

// Load returns the merged configuration from files and environment variables.
func Load(opts LoaderOptions) (Config, error) {
	v := viper.New()

	name := opts.FileName
	if name == "" {
		name = "ghsum"
	}

	paths := opts.ConfigPaths
	if len(paths) == 0 {
		paths = defaultConfigPaths()
	}

	configFile := locateConfigFile(name, paths)
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(name)
	}

	prefix := opts.EnvPrefix
	if prefix == "" {
		prefix = "GHSUM"
	}
	v.SetEnvPrefix(prefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AllowEmptyEnv(true)

	setDefaults(v)

	if configFile != "" {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	// Expand environment variables in config values
	cfg = expandEnvVars(cfg)

	return cfg, nil
}

// expandEnvVars expands ${VAR} and $VAR syntax in configuration strings.
func expandEnvVars(cfg Config) Config {
	cfg.GitHub.Token = expandEnvString(cfg.GitHub.Token)
	cfg.GitHub.BaseURL = expandEnvString(cfg.GitHub.BaseURL)
	cfg.GitHub.Author = expandEnvString(cfg.GitHub.Author)

	cfg.HTTP.Timeout = expandEnvString(cfg.HTTP.Timeout)
	cfg.HTTP.InitialBackoff = expandEnvString(cfg.HTTP.InitialBackoff)
	cfg.HTTP.MaxBackoff = expandEnvString(cfg.HTTP.MaxBackoff)

	cfg.Output.Directory = expandEnvString(cfg.Output.Directory)
	cfg.Output.Filename = expandEnvString(cfg.Output.Filename)

	cfg.Store.Path = expandEnvString(cfg.Store.Path)

	cfg.Observability.Logging.Level = expandEnvString(cfg.Observability.Logging.Level)
	cfg.Observability.Logging.Format = expandEnvString(cfg.Observability.Logging.Format)

	return cfg
}

// expandEnvString replaces ${VAR} or $VAR with environment variable values.
func expandEnvString(s string) string {
	if s == "" {
		return s
	}

	// Replace ${VAR} syntax
	re := regexp.MustCompile(`\$\{([A-Z_][A-Z0-9_]*)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1] // Remove ${ and }
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match // Keep original if not found
	})

	// Replace $VAR syntax (without braces)
	re = regexp.MustCompile(`\$([A-Z_][A-Z0-9_]*)`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:] // Remove $
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match // Keep original if not found
	})

	return s
}

func defaultConfigPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "ghsum"))
	}
	return paths
}

func locateConfigFile(name string, paths []string) string {
	for _, dir := range paths {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name+".yaml")
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("github.baseURL", "https://api.github.com")

	// HTTP defaults
	v.SetDefault("http.timeout", "30s")
	v.SetDefault("http.maxRetries", 3)
	v.SetDefault("http.initialBackoff", "2s")
	v.SetDefault("http.maxBackoff", "32s")
	v.SetDefault("http.backoffMultiplier", 2.0)

	// Output defaults
	v.SetDefault("output.directory", "out")
	v.SetDefault("output.format", "pdf")

	// Render defaults
	v.SetDefault("render.includeDiffs", true)
	v.SetDefault("render.maxDiffLines", 200)
	v.SetDefault("render.diffExtensions", []string{".py", ".c", ".cpp", ".md"})

	// Store defaults (diff cache is opt-in)
	v.SetDefault("store.enabled", false)
	v.SetDefault("store.path", defaultStorePath())

	// Observability defaults
	v.SetDefault("observability.logging.enabled", true)
	v.SetDefault("observability.logging.level", "info")
	v.SetDefault("observability.logging.format", "human")
	v.SetDefault("observability.logging.redactTokens", true)
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./diffs.db"
	}
	return filepath.Join(home, ".config", "ghsum", "diffs.db")
}
