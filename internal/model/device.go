package model

import "time"

// Device is one tailnet member as reported by the Tailscale API.
// Expires is the instant the node key becomes invalid; decoding it through
// time.Time means a malformed timestamp fails the whole response.
type Device struct {
	Hostname string    `json:"hostname"`
	Expires  time.Time `json:"expires"`
}
