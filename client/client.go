// Package client issues typed request/response operations against the
// scan-agent service. Every operation makes exactly one attempt; a
// non-2xx response is translated into a RequestError carrying the
// human-readable message the service provided.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"
)

const genericErrorMessage = "request failed"

// RequestError is the single error kind produced by the client.
type RequestError struct {
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// Client talks to the agent service. The auth credential is an opaque
// cookie set by login and carried by the jar; callers never see it.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
	}, nil
}

// ListSessions returns the session summaries for the current identity.
func (c *Client) ListSessions() ([]SessionSummary, error) {
	var wrapper struct {
		Sessions []SessionSummary `json:"sessions"`
	}
	if err := c.doJSON(http.MethodGet, "/api/sessions", nil, &wrapper); err != nil {
		return nil, err
	}
	return wrapper.Sessions, nil
}

// GetHistory returns the full message history of one session.
func (c *Client) GetHistory(sessionID string) ([]Message, error) {
	var wrapper struct {
		Messages []Message `json:"messages"`
	}
	path := "/api/history?session_id=" + url.QueryEscape(sessionID)
	if err := c.doJSON(http.MethodGet, path, nil, &wrapper); err != nil {
		return nil, err
	}
	return wrapper.Messages, nil
}

// DeleteSession removes a session and all of its messages.
func (c *Client) DeleteSession(sessionID string) error {
	path := "/api/sessions/" + url.PathEscape(sessionID)
	return c.doJSON(http.MethodDelete, path, nil, nil)
}

// SendChat submits one chat turn. An empty sessionID asks the service
// to create a new session; the response carries its id.
func (c *Client) SendChat(sessionID, message string) (*ChatResponse, error) {
	var resp ChatResponse
	req := chatRequest{SessionID: sessionID, Message: message}
	if err := c.doJSON(http.MethodPost, "/api/chat", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetConfig fetches the current model/provider configuration.
func (c *Client) GetConfig() (*LlmConfig, error) {
	var cfg LlmConfig
	if err := c.doJSON(http.MethodGet, "/api/config", nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// UpdateConfig saves the configuration and returns the confirmed state.
func (c *Client) UpdateConfig(update ConfigUpdate) (*LlmConfig, error) {
	var cfg LlmConfig
	if err := c.doJSON(http.MethodPut, "/api/config", update, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ListModels fetches the model identifiers visible to the service.
// With a nil override it relies on the service's stored credentials;
// with an override it sends the given credentials for this call only.
func (c *Client) ListModels(override *ModelsOverride) ([]string, error) {
	var wrapper struct {
		Models []string `json:"models"`
	}
	var err error
	if override != nil {
		err = c.doJSON(http.MethodPost, "/api/config/models", override, &wrapper)
	} else {
		err = c.doJSON(http.MethodGet, "/api/config/models", nil, &wrapper)
	}
	if err != nil {
		return nil, err
	}
	return wrapper.Models, nil
}

// ListSkills returns the skill catalog loaded by the service.
func (c *Client) ListSkills() ([]SkillSummary, error) {
	var skills []SkillSummary
	if err := c.doJSON(http.MethodGet, "/api/skills", nil, &skills); err != nil {
		return nil, err
	}
	return skills, nil
}

// Register creates an account. It does not authenticate; follow with
// Login using the same credentials.
func (c *Client) Register(username, password string) (*Identity, error) {
	var identity Identity
	req := authRequest{Username: username, Password: password}
	if err := c.doJSON(http.MethodPost, "/api/auth/register", req, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// Login authenticates and stores the session cookie in the jar.
func (c *Client) Login(username, password string) (*Identity, error) {
	var identity Identity
	req := authRequest{Username: username, Password: password}
	if err := c.doJSON(http.MethodPost, "/api/auth/login", req, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// Logout invalidates the session cookie server-side.
func (c *Client) Logout() error {
	return c.doJSON(http.MethodPost, "/api/auth/logout", nil, nil)
}

// Me resolves the current identity from the stored credential.
// Failure means "not authenticated" as far as callers are concerned.
func (c *Client) Me() (*Identity, error) {
	var identity Identity
	if err := c.doJSON(http.MethodGet, "/api/auth/me", nil, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// doJSON performs one request/response cycle. body and out may be nil.
func (c *Client) doJSON(method, path string, body any, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &RequestError{Message: fmt.Sprintf("encode request: %v", err)}
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return &RequestError{Message: err.Error()}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RequestError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.parseError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RequestError{Message: fmt.Sprintf("decode response: %v", err)}
	}
	return nil
}

// parseError extracts a message from a non-2xx response: the JSON
// body's detail field if present, else the HTTP status text, else a
// fixed generic message.
func (c *Client) parseError(resp *http.Response) error {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Detail != "" {
		return &RequestError{Message: body.Detail}
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return &RequestError{Message: text}
	}
	return &RequestError{Message: genericErrorMessage}
}
