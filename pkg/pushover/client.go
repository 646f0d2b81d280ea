// Package pushover implements the Pushover message API.
package pushover

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultAPIURL is the Pushover messages endpoint.
const DefaultAPIURL = "https://api.pushover.net/1/messages.json"

// ErrNotConfigured is returned when the client has no credentials.
var ErrNotConfigured = errors.New("pushover credentials not configured")

// RejectedError is returned when Pushover accepted the connection but
// refused the message: bad token, bad user key, rate limit. It indicates a
// configuration problem rather than a transient fault.
type RejectedError struct {
	Status  int
	Reasons []string
}

func (e *RejectedError) Error() string {
	if len(e.Reasons) == 0 {
		return fmt.Sprintf("pushover rejected message: status %d", e.Status)
	}
	return fmt.Sprintf("pushover rejected message: %s", strings.Join(e.Reasons, "; "))
}

// Client sends messages through the Pushover API.
type Client struct {
	apiURL     string
	token      string
	userKey    string
	httpClient *http.Client
}

// NewClient creates a Pushover client for one application token and user key.
func NewClient(token, userKey string) *Client {
	return &Client{
		apiURL:  DefaultAPIURL,
		token:   token,
		userKey: userKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewClientWithURL creates a client against a non-default API URL.
// Used by tests and by deployments that proxy the Pushover API.
func NewClientWithURL(apiURL, token, userKey string) *Client {
	c := NewClient(token, userKey)
	c.apiURL = apiURL
	return c
}

// apiResponse is the Pushover response envelope.
type apiResponse struct {
	Status  int      `json:"status"`
	Errors  []string `json:"errors"`
	Request string   `json:"request"`
}

// Send delivers one message. A non-nil error is either a *RejectedError
// (Pushover refused the message) or a transport error wrapping the cause.
// There is no retry at this layer.
func (c *Client) Send(ctx context.Context, title, message string) error {
	if c.token == "" || c.userKey == "" {
		return ErrNotConfigured
	}

	form := url.Values{}
	form.Set("token", c.token)
	form.Set("user", c.userKey)
	form.Set("title", title)
	form.Set("message", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("pushover request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var body apiResponse
	// A decode failure on an error status still surfaces as a rejection;
	// on 2xx it means the API contract changed under us.
	decodeErr := json.NewDecoder(resp.Body).Decode(&body)

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return &RejectedError{Status: resp.StatusCode, Reasons: body.Errors}
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pushover server error: status %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	if body.Status != 1 {
		return &RejectedError{Status: resp.StatusCode, Reasons: body.Errors}
	}
	return nil
}
