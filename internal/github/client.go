// Package github pushes export artifacts to GitHub Actions repository
// variables through the REST API.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Variable names the crawler's workflow reads.
const (
	// VariableConfigYAML holds the rendered config.yaml text.
	VariableConfigYAML = "CONFIG_YAML"
	// VariableFrequencyWords holds the rendered frequency_words.txt text.
	VariableFrequencyWords = "FREQUENCY_WORDS"
)

// defaultBaseURL is the public GitHub API endpoint.
const defaultBaseURL = "https://api.github.com"

// Client talks to the GitHub REST API for one repository.
type Client struct {
	baseURL    string
	owner      string
	repo       string
	token      string
	httpClient *http.Client
}

// NewClient constructs a Client for a repository.
func NewClient(owner, repo, token string) *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		owner:      owner,
		repo:       repo,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// WithBaseURL overrides the API endpoint, used for GitHub Enterprise and
// tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// variablePayload is the request body for variable create/update calls.
type variablePayload struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SetVariable creates or updates one Actions repository variable. Update is
// attempted first; a 404 falls back to create, so the call is an upsert.
func (c *Client) SetVariable(ctx context.Context, name, value string) error {
	status, errPatch := c.send(ctx, http.MethodPatch,
		fmt.Sprintf("%s/repos/%s/%s/actions/variables/%s", c.baseURL, c.owner, c.repo, name),
		variablePayload{Name: name, Value: value})
	if errPatch != nil {
		return errPatch
	}
	if status == http.StatusNoContent {
		return nil
	}
	if status != http.StatusNotFound {
		return fmt.Errorf("github: update variable %s: status %d", name, status)
	}

	status, errPost := c.send(ctx, http.MethodPost,
		fmt.Sprintf("%s/repos/%s/%s/actions/variables", c.baseURL, c.owner, c.repo),
		variablePayload{Name: name, Value: value})
	if errPost != nil {
		return errPost
	}
	if status != http.StatusCreated {
		return fmt.Errorf("github: create variable %s: status %d", name, status)
	}
	return nil
}

// send issues one authenticated JSON request and returns the status code.
func (c *Client) send(ctx context.Context, method, url string, payload variablePayload) (int, error) {
	body, errEncode := json.Marshal(payload)
	if errEncode != nil {
		return 0, fmt.Errorf("github: encode payload: %w", errEncode)
	}

	req, errReq := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if errReq != nil {
		return 0, fmt.Errorf("github: build request: %w", errReq)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("Content-Type", "application/json")

	resp, errDo := c.httpClient.Do(req)
	if errDo != nil {
		return 0, fmt.Errorf("github: %s %s: %w", method, url, errDo)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}
