package tailscale

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fleetwatch/tailscale-notifier/internal/model"
)

// DefaultBaseURL is the public Tailscale control-plane API.
const DefaultBaseURL = "https://api.tailscale.com"

// Client is a thin wrapper over the Tailscale v2 API.
type Client struct {
	baseURL *url.URL
	token   string
	http    *http.Client
}

// New creates a Tailscale API client authenticating with the given bearer token.
func New(rawURL, token string, timeout time.Duration) (*Client, error) {
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
		http: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Devices fetches every device in the tailnet, in the order the API returns
// them. Extra response fields are ignored.
func (c *Client) Devices(ctx context.Context, tailnet string) ([]model.Device, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.DevicesURL(tailnet), nil)
	if err != nil {
		return nil, err
	}
	c.decorate(req)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("devices http status %s", resp.Status)
	}
	var payload devicesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode devices: %w", err)
	}
	return payload.Devices, nil
}

// DevicesURL returns the inventory endpoint for the tailnet (diagnostics only).
func (c *Client) DevicesURL(tailnet string) string {
	return c.baseURL.String() + "/api/v2/tailnet/" + url.PathEscape(tailnet) + "/devices"
}

func (c *Client) decorate(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// devicesResponse models the Tailscale device list envelope.
type devicesResponse struct {
	Devices []model.Device `json:"devices"`
}
