// Package jellyfin implements the small slice of the Jellyfin API the relay
// needs: listing libraries and triggering scans.
package jellyfin

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"
)

// Client interacts with a Jellyfin server.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Jellyfin client.
func NewClient(baseURL, apiKey string, log *slog.Logger) *Client {
	var clientLog *slog.Logger
	if log != nil {
		clientLog = log.With("component", "jellyfin")
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		log:     clientLog,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Library is a Jellyfin virtual folder.
type Library struct {
	Name      string   `json:"Name"`
	ItemID    string   `json:"ItemId"`
	Locations []string `json:"Locations"`
}

// Folders returns the on-disk folder basenames of the library's locations.
func (l Library) Folders() []string {
	folders := make([]string, 0, len(l.Locations))
	for _, loc := range l.Locations {
		folders = append(folders, filepath.Base(filepath.Clean(loc)))
	}
	return folders
}

// Libraries returns all virtual folders on the server.
func (c *Client) Libraries(ctx context.Context) ([]Library, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/Library/VirtualFolders", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var libraries []Library
	if err := json.NewDecoder(resp.Body).Decode(&libraries); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return libraries, nil
}

// FindByFolder finds the library whose locations include the given on-disk
// folder name (case-insensitive). Returns nil when no library matches.
func (c *Client) FindByFolder(ctx context.Context, folder string) (*Library, error) {
	libraries, err := c.Libraries(ctx)
	if err != nil {
		return nil, err
	}

	for _, lib := range libraries {
		for _, f := range lib.Folders() {
			if strings.EqualFold(f, folder) {
				return &lib, nil
			}
		}
	}
	return nil, nil
}

// RefreshLibrary triggers a scan of one library.
func (c *Client) RefreshLibrary(ctx context.Context, itemID string) error {
	path := fmt.Sprintf("/Items/%s/Refresh", url.PathEscape(itemID))
	req, err := c.newRequest(ctx, http.MethodPost, path, url.Values{
		"Recursive":           {"true"},
		"ImageRefreshMode":    {"Default"},
		"MetadataRefreshMode": {"Default"},
	})
	if err != nil {
		return err
	}
	return c.doRefresh(req)
}

// RefreshAll triggers a scan of every library on the server.
func (c *Client) RefreshAll(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/Library/Refresh", nil)
	if err != nil {
		return err
	}
	return c.doRefresh(req)
}

func (c *Client) doRefresh(req *http.Request) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Emby-Token", c.apiKey)
	req.Header.Set("Accept", "application/json")
	return req, nil
}
