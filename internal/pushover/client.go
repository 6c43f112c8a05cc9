package pushover

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public Pushover API.
const DefaultBaseURL = "https://api.pushover.net"

// Client sends messages through the Pushover messages API.
type Client struct {
	baseURL *url.URL
	token   string
	userKey string
	http    *http.Client
}

// New creates a Pushover client for one application token and recipient key.
func New(rawURL, token, userKey string, timeout time.Duration) (*Client, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("base url is required")
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if parsed.Scheme == "" {
		return nil, fmt.Errorf("base url must include scheme")
	}
	parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	return &Client{
		baseURL: parsed,
		token:   token,
		userKey: userKey,
		http: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Send pushes one plain-text message to the configured recipient. The API is
// called exactly once; any transport or API-level failure is returned as an
// error.
func (c *Client) Send(ctx context.Context, message string) (*Response, error) {
	values := url.Values{}
	values.Set("token", c.token)
	values.Set("user", c.userKey)
	values.Set("message", message)

	endpoint := c.baseURL.String() + "/1/messages.json"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload Response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("send http status %s", resp.Status)
	}
	if resp.StatusCode != http.StatusOK || payload.Status != 1 {
		if len(payload.Errors) > 0 {
			return nil, fmt.Errorf("send failed: %s", strings.Join(payload.Errors, "; "))
		}
		return nil, fmt.Errorf("send http status %s", resp.Status)
	}
	return &payload, nil
}

// Response models the Pushover API reply. Status is 1 on success; Request is
// the API's receipt id for the call.
type Response struct {
	Status  int      `json:"status"`
	Request string   `json:"request"`
	Errors  []string `json:"errors"`
}
