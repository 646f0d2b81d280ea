package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client wraps HTTP calls to the relayarr server.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new relayarr API client.
func NewClient(serverURL, apiKey string) *Client {
	return &Client{
		baseURL: serverURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) do(method, path string, body any, result any) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal error: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func (c *Client) get(path string, result any) error {
	return c.do(http.MethodGet, path, nil, result)
}

func (c *Client) post(path string, body, result any) error {
	return c.do(http.MethodPost, path, body, result)
}

func (c *Client) put(path string, body, result any) error {
	return c.do(http.MethodPut, path, body, result)
}

// API response types (mirror server types)

type StatusResponse struct {
	Version            string `json:"version"`
	JellyfinConfigured bool   `json:"jellyfin_configured"`
	PushoverConfigured bool   `json:"pushover_configured"`
	Libraries          int    `json:"libraries"`
}

type TemplateResponse struct {
	TitleTemplate   string `json:"title_template"`
	BodyTemplate    string `json:"body_template"`
	IncludeOverview bool   `json:"include_overview"`
	IncludeCodec    bool   `json:"include_codec"`
	IncludeSize     bool   `json:"include_size"`
	IncludePath     bool   `json:"include_path"`
	EmojiEnabled    bool   `json:"emoji_enabled"`
}

type LibraryResponse struct {
	Name          string `json:"name"`
	DisplayName   string `json:"display_name"`
	ScanEnabled   bool   `json:"scan_enabled"`
	NotifyEnabled bool   `json:"notify_enabled"`
}

type PushoverResponse struct {
	Token      string `json:"token"`
	UserKey    string `json:"user_key"`
	Configured bool   `json:"configured"`
}

type KeyResponse struct {
	WebhookKey string `json:"webhook_key"`
}

type MessageResponse struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type SyncResponse struct {
	Synced int `json:"synced"`
}

// API methods

func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.get("/api/v1/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Template(kind string) (*TemplateResponse, error) {
	var resp TemplateResponse
	if err := c.get("/api/v1/templates/"+url.PathEscape(kind), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SetTemplate(kind string, tmpl *TemplateResponse) (*TemplateResponse, error) {
	var resp TemplateResponse
	if err := c.put("/api/v1/templates/"+url.PathEscape(kind), tmpl, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Libraries() ([]LibraryResponse, error) {
	var resp []LibraryResponse
	if err := c.get("/api/v1/libraries", &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) SetLibrary(name string, displayName *string, scan, notify bool) (*LibraryResponse, error) {
	req := map[string]any{
		"scan_enabled":   scan,
		"notify_enabled": notify,
	}
	if displayName != nil {
		req["display_name"] = *displayName
	}

	var resp LibraryResponse
	if err := c.put("/api/v1/libraries/"+url.PathEscape(name), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SyncLibraries() (*SyncResponse, error) {
	var resp SyncResponse
	if err := c.post("/api/v1/libraries/sync", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Pushover() (*PushoverResponse, error) {
	var resp PushoverResponse
	if err := c.get("/api/v1/pushover", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SetPushover(token, userKey string) (*PushoverResponse, error) {
	req := map[string]string{"token": token, "user_key": userKey}
	var resp PushoverResponse
	if err := c.put("/api/v1/pushover", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Preview(kind string, tmpl *TemplateResponse) (*MessageResponse, error) {
	req := map[string]any{"kind": kind, "config": tmpl}
	var resp MessageResponse
	if err := c.post("/api/v1/preview", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Test(kind string) (*MessageResponse, error) {
	req := map[string]string{"kind": kind}
	var resp MessageResponse
	if err := c.post("/api/v1/test", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Key() (*KeyResponse, error) {
	var resp KeyResponse
	if err := c.get("/api/v1/key", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) RegenerateKey() (*KeyResponse, error) {
	var resp KeyResponse
	if err := c.post("/api/v1/key/regenerate", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
