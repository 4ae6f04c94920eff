// Package jira is a thin proxy client for the Jira Cloud REST API. It
// forwards selected read-only endpoints and never exposes the API token
// to callers.
package jira

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

type Config struct {
	BaseURL  string
	Email    string
	APIToken string
}

type Client struct {
	cfg  Config
	http *http.Client
}

// Response carries the upstream status and raw body so handlers can relay
// Jira's own error payloads instead of masking them.
type Response struct {
	Status int
	Body   json.RawMessage
}

type User struct {
	AccountID    string `json:"accountId"`
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

// Enabled reports whether credentials are configured. When false every
// call returns an error, and the transport layer should answer 503.
func (c *Client) Enabled() bool {
	return c.cfg.BaseURL != "" && c.cfg.Email != "" && c.cfg.APIToken != ""
}

func (c *Client) do(ctx context.Context, method, path string, body any) (Response, error) {
	if !c.Enabled() {
		return Response{}, fmt.Errorf("jira integration is not configured")
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return Response{}, err
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reqBody)
	if err != nil {
		return Response{}, err
	}
	token := base64.StdEncoding.EncodeToString([]byte(c.cfg.Email + ":" + c.cfg.APIToken))
	req.Header.Set("Authorization", "Basic "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("jira request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}
	return Response{Status: resp.StatusCode, Body: data}, nil
}

func (c *Client) Projects(ctx context.Context) (Response, error) {
	return c.do(ctx, http.MethodGet, "/rest/api/3/project", nil)
}

func (c *Client) ProjectsDetailed(ctx context.Context) (Response, error) {
	return c.do(ctx, http.MethodGet, "/rest/api/3/project?expand=description,lead,issueTypes,url,projectKeys", nil)
}

func (c *Client) Project(ctx context.Context, key string) (Response, error) {
	return c.do(ctx, http.MethodGet, "/rest/api/3/project/"+url.PathEscape(key), nil)
}

// ProjectIssues searches issues for one project, newest first.
func (c *Client) ProjectIssues(ctx context.Context, key string, maxResults, startAt int) (Response, error) {
	if maxResults <= 0 {
		maxResults = 50
	}
	payload := map[string]any{
		"jql":        fmt.Sprintf("project = %s ORDER BY created DESC", key),
		"maxResults": maxResults,
		"startAt":    startAt,
		"fields":     []string{"summary", "status", "assignee", "priority", "issuetype", "created", "updated"},
	}
	return c.do(ctx, http.MethodPost, "/rest/api/3/search", payload)
}

func (c *Client) SearchUsersRaw(ctx context.Context, query string) (Response, error) {
	return c.do(ctx, http.MethodGet, "/rest/api/3/user/search?query="+url.QueryEscape(query), nil)
}

// User fetches one Jira user profile by account ID.
func (c *Client) User(ctx context.Context, accountID string) (User, error) {
	resp, err := c.do(ctx, http.MethodGet, "/rest/api/3/user?accountId="+url.QueryEscape(accountID), nil)
	if err != nil {
		return User{}, err
	}
	if resp.Status != http.StatusOK {
		return User{}, fmt.Errorf("jira user lookup returned status %d", resp.Status)
	}
	var user User
	if err := json.Unmarshal(resp.Body, &user); err != nil {
		return User{}, fmt.Errorf("jira user lookup: decode response: %w", err)
	}
	return user, nil
}

// SearchUsers returns matched Jira users as parsed structs, for flows
// that need account IDs rather than a passthrough payload.
func (c *Client) SearchUsers(ctx context.Context, query string) ([]User, error) {
	resp, err := c.SearchUsersRaw(ctx, query)
	if err != nil {
		return nil, err
	}
	if resp.Status != http.StatusOK {
		return nil, fmt.Errorf("jira user search returned status %d", resp.Status)
	}
	var users []User
	if err := json.Unmarshal(resp.Body, &users); err != nil {
		return nil, fmt.Errorf("jira user search: decode response: %w", err)
	}
	return users, nil
}
