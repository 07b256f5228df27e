package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bkyoung/gh-summary/internal/adapter/httpx"
	"github.com/bkyoung/gh-summary/internal/domain"
)

const (
	defaultBaseURL = "https://api.github.com"
	defaultTimeout = 30 * time.Second
	apiVersion     = "2022-11-28"
	acceptJSON     = "application/vnd.github+json"
	perPage        = 100

	// The search API serves at most 1000 results per query.
	maxPages = 10
)

// Client is an HTTP client for the GitHub search API.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	retryConf  httpx.RetryConfig
	logger     httpx.Logger
}

// NewClient creates a new GitHub API client with the given token.
// The token should be a personal access token or GITHUB_TOKEN from Actions;
// an empty token sends unauthenticated requests.
func NewClient(token string) *Client {
	return &Client{
		token:      token,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		retryConf:  httpx.DefaultRetryConfig(),
	}
}

// SetBaseURL sets a custom base URL (for testing).
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

// SetTimeout sets the HTTP timeout.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.httpClient.Timeout = timeout
}

// SetRetryConfig overrides the default retry behavior.
func (c *Client) SetRetryConfig(conf httpx.RetryConfig) {
	c.retryConf = conf
}

// SetToken replaces the API token used for subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// SetLogger wires up structured request logging.
func (c *Client) SetLogger(logger httpx.Logger) {
	c.logger = logger
}

// SearchCommits returns the author's commits in the date range, sorted
// ascending by commit date. dateRange uses GitHub's search syntax
// ("start..end", ">=start", "<=end") or is empty for no restriction.
func (c *Client) SearchCommits(ctx context.Context, author, dateRange string) ([]domain.Commit, error) {
	q := "author:" + author
	if dateRange != "" {
		q += " author-date:" + dateRange
	}

	var commits []domain.Commit
	for page := 1; page <= maxPages; page++ {
		body, err := c.get(ctx, c.searchURL("/search/commits", q, page), acceptJSON)
		if err != nil {
			return nil, fmt.Errorf("search commits: %w", err)
		}

		var resp commitSearchResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("decode commit search response: %w", err)
		}
		if len(resp.Items) == 0 {
			break
		}
		for _, item := range resp.Items {
			commits = append(commits, item.toDomain())
		}
		if len(commits) >= resp.TotalCount {
			break
		}
	}

	domain.SortCommits(commits)
	return commits, nil
}

// SearchPullRequests returns the author's merged pull requests in the date
// range, sorted ascending by merge date. Only closed items are kept.
func (c *Client) SearchPullRequests(ctx context.Context, author, dateRange string) ([]domain.PullRequest, error) {
	q := "type:pr is:merged author:" + author
	if dateRange != "" {
		q += " merged:" + dateRange
	}

	var prs []domain.PullRequest
	for page := 1; page <= maxPages; page++ {
		body, err := c.get(ctx, c.searchURL("/search/issues", q, page), acceptJSON)
		if err != nil {
			return nil, fmt.Errorf("search pull requests: %w", err)
		}

		var resp issueSearchResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("decode issue search response: %w", err)
		}
		if len(resp.Items) == 0 {
			break
		}
		for _, item := range resp.Items {
			if item.State != "closed" {
				continue
			}
			prs = append(prs, item.toDomain())
		}
		// Merged PRs may be filtered out above, so page math rather than
		// the collected count decides when the search is exhausted.
		if page*perPage >= resp.TotalCount {
			break
		}
	}

	domain.SortPullRequests(prs)
	return prs, nil
}

// FetchDiff retrieves the raw unified diff for a pull request. The caller
// treats any error as an absent diff; it never aborts the batch.
func (c *Client) FetchDiff(ctx context.Context, diffURL string) (string, error) {
	body, err := c.get(ctx, diffURL, "")
	if err != nil {
		return "", fmt.Errorf("fetch diff %s: %w", diffURL, err)
	}
	return string(body), nil
}

func (c *Client) searchURL(path, query string, page int) string {
	params := url.Values{}
	params.Set("q", query)
	params.Set("per_page", fmt.Sprint(perPage))
	params.Set("page", fmt.Sprint(page))
	return c.baseURL + path + "?" + params.Encode()
}

// get executes a GET with auth headers, retry and logging; non-2xx
// statuses map to the typed error taxonomy.
func (c *Client) get(ctx context.Context, rawURL, accept string) ([]byte, error) {
	var body []byte

	err := httpx.RetryWithBackoff(ctx, func(ctx context.Context) error {
		start := time.Now()
		if c.logger != nil {
			c.logger.LogRequest(ctx, httpx.RequestLog{
				Method:    http.MethodGet,
				URL:       rawURL,
				Timestamp: start,
				Token:     c.token,
			})
		}

		req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if reqErr != nil {
			return &httpx.Error{Type: httpx.ErrTypeUnknown, Message: reqErr.Error(), Retryable: false}
		}
		if accept != "" {
			req.Header.Set("Accept", accept)
		}
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}
		req.Header.Set("X-GitHub-Api-Version", apiVersion)

		resp, callErr := c.httpClient.Do(req)
		if callErr != nil {
			// Could be timeout or network error
			err := httpx.NewTimeoutError(callErr.Error())
			c.logError(ctx, rawURL, start, err)
			return err
		}
		defer resp.Body.Close()

		data, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			err := &httpx.Error{
				Type:       httpx.ErrTypeUnknown,
				Message:    fmt.Sprintf("read response: %v", readErr),
				StatusCode: resp.StatusCode,
				Retryable:  true,
			}
			c.logError(ctx, rawURL, start, err)
			return err
		}

		if resp.StatusCode >= 400 {
			err := httpx.MapStatus(resp.StatusCode, string(data))
			c.logError(ctx, rawURL, start, err)
			return err
		}

		if c.logger != nil {
			c.logger.LogResponse(ctx, httpx.ResponseLog{
				Method:     http.MethodGet,
				URL:        rawURL,
				Timestamp:  start,
				Duration:   time.Since(start),
				StatusCode: resp.StatusCode,
				BodyBytes:  len(data),
			})
		}
		body = data
		return nil
	}, c.retryConf)

	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) logError(ctx context.Context, rawURL string, start time.Time, err *httpx.Error) {
	if c.logger == nil {
		return
	}
	c.logger.LogError(ctx, httpx.ErrorLog{
		Method:     http.MethodGet,
		URL:        rawURL,
		Timestamp:  start,
		Duration:   time.Since(start),
		Error:      err,
		ErrorType:  err.Type,
		StatusCode: err.StatusCode,
		Retryable:  err.Retryable,
	})
}
