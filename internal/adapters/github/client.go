// Package github implements the Forge port against the GitHub REST API.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.trai.ch/reinhard/internal/core/domain"
	"go.trai.ch/reinhard/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	defaultAPIURL     = "https://api.github.com"
	httpClientTimeout = 30 * time.Second
)

var _ ports.Forge = (*Client)(nil)

// Client implements ports.Forge for a single GitHub repository.
type Client struct {
	apiURL     string
	owner      string
	repo       string
	token      string
	httpClient *http.Client
}

// NewClient creates a Forge client for the repository the remote URL
// points at. An empty API URL selects the public GitHub API.
func NewClient(remoteURL, token, apiURL string) (*Client, error) {
	owner, repo, err := ParseRepoSlug(remoteURL)
	if err != nil {
		return nil, err
	}

	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	return &Client{
		apiURL: strings.TrimSuffix(apiURL, "/"),
		owner:  owner,
		repo:   repo,
		token:  token,
		httpClient: &http.Client{
			Timeout: httpClientTimeout,
		},
	}, nil
}

// sshRemote matches scp-style remotes such as git@github.com:owner/repo.git.
var sshRemote = regexp.MustCompile(`^[\w.-]+@[\w.-]+:(.+)$`)

// ParseRepoSlug extracts the owner and repository name from a git remote
// URL. It accepts https, ssh and scp-style forms.
func ParseRepoSlug(remote string) (owner, repo string, err error) {
	remote = strings.TrimSpace(remote)

	path := ""
	switch {
	case strings.HasPrefix(remote, "https://"), strings.HasPrefix(remote, "http://"), strings.HasPrefix(remote, "ssh://"):
		parsed, parseErr := url.Parse(remote)
		if parseErr != nil {
			return "", "", zerr.With(domain.ErrRemoteNotRecognized, "remote", remote)
		}
		path = parsed.Path
	default:
		match := sshRemote.FindStringSubmatch(remote)
		if match == nil {
			return "", "", zerr.With(domain.ErrRemoteNotRecognized, "remote", remote)
		}
		path = match[1]
	}

	path = strings.Trim(path, "/")
	path = strings.TrimSuffix(path, ".git")

	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", zerr.With(domain.ErrRemoteNotRecognized, "remote", remote)
	}

	return parts[0], parts[1], nil
}

// pullRequestResponse is the subset of the pull request resource we read.
type pullRequestResponse struct {
	Number  int    `json:"number"`
	HTMLURL string `json:"html_url"`
}

// EnsurePullRequest opens a pull request for the head branch, or updates
// the title and body of the already open one.
func (c *Client) EnsurePullRequest(ctx context.Context, pr domain.PullRequest) (string, bool, error) {
	existing, err := c.findOpen(ctx, pr.Head)
	if err != nil {
		return "", false, err
	}

	if existing != nil {
		updated, err := c.updatePullRequest(ctx, existing.Number, pr)
		if err != nil {
			return "", false, err
		}
		return updated.HTMLURL, false, nil
	}

	created, err := c.createPullRequest(ctx, pr)
	if err != nil {
		return "", false, err
	}
	return created.HTMLURL, true, nil
}

// findOpen returns the open pull request for the head branch, if any.
func (c *Client) findOpen(ctx context.Context, head string) (*pullRequestResponse, error) {
	query := url.Values{
		"state": {"open"},
		"head":  {c.owner + ":" + head},
	}
	path := fmt.Sprintf("/repos/%s/%s/pulls?%s", c.owner, c.repo, query.Encode())

	var results []pullRequestResponse
	if err := c.call(ctx, http.MethodGet, path, nil, &results); err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

// createPullRequest opens a new pull request.
func (c *Client) createPullRequest(ctx context.Context, pr domain.PullRequest) (*pullRequestResponse, error) {
	payload := map[string]string{
		"title": pr.Title,
		"head":  pr.Head,
		"base":  pr.Base,
		"body":  pr.Body,
	}
	path := fmt.Sprintf("/repos/%s/%s/pulls", c.owner, c.repo)

	var result pullRequestResponse
	if err := c.call(ctx, http.MethodPost, path, payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// updatePullRequest refreshes the title and body of an open pull request.
func (c *Client) updatePullRequest(ctx context.Context, number int, pr domain.PullRequest) (*pullRequestResponse, error) {
	payload := map[string]string{
		"title": pr.Title,
		"body":  pr.Body,
	}
	path := fmt.Sprintf("/repos/%s/%s/pulls/%d", c.owner, c.repo, number)

	var result pullRequestResponse
	if err := c.call(ctx, http.MethodPatch, path, payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// call performs an authenticated API request and decodes the JSON body.
func (c *Client) call(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader = http.NoBody
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return zerr.Wrap(err, domain.ErrForgeRequestFailed.Error())
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, body)
	if err != nil {
		return zerr.Wrap(err, domain.ErrForgeRequestFailed.Error())
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zerr.Wrap(err, domain.ErrForgeRequestFailed.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return zerr.Wrap(err, domain.ErrForgeRequestFailed.Error())
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := zerr.With(domain.ErrForgeRequestFailed, "status_code", resp.StatusCode)
		apiErr = zerr.With(apiErr, "path", path)
		return zerr.With(apiErr, "body", strings.TrimSpace(string(data)))
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return zerr.Wrap(err, domain.ErrForgeRequestFailed.Error())
		}
	}

	return nil
}
