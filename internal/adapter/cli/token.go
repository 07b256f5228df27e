package cli

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ResolveToken resolves the GitHub API token: the --token flag (or config)
// first, then the GITHUB_TOKEN environment variable, then the gh CLI's
// stored credentials.
func ResolveToken(flagToken string) (string, error) {
	return resolveToken(flagToken, os.Getenv, ghAuthToken)
}

func resolveToken(flagToken string, getenv func(string) string, ghToken func() (string, error)) (string, error) {
	if flagToken != "" {
		return flagToken, nil
	}
	if token := getenv("GITHUB_TOKEN"); token != "" {
		return token, nil
	}

	token, err := ghToken()
	if err != nil {
		return "", fmt.Errorf("no GitHub token found: pass --token, set GITHUB_TOKEN, or run `gh auth login`: %w", err)
	}
	return token, nil
}

// ghAuthToken shells out to `gh auth token` and returns the trimmed output.
func ghAuthToken() (string, error) {
	out, err := exec.Command("gh", "auth", "token").Output()
	if err != nil {
		return "", fmt.Errorf("gh auth token: %w", err)
	}
	token := strings.TrimSpace(string(out))
	if token == "" {
		return "", fmt.Errorf("gh auth token returned no credentials")
	}
	return token, nil
}
