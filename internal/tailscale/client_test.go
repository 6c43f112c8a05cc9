package tailscale

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNew_Validation(t *testing.T) {
	if _, err := New("", "token", time.Second); err == nil {
		t.Error("expected error for empty base url")
	}
	if _, err := New("api.tailscale.com", "token", time.Second); err == nil {
		t.Error("expected error for base url without scheme")
	}
	if _, err := New("https://api.tailscale.com", "token", time.Second); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDevices(t *testing.T) {
	var gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		// Trimmed-down real response shape: extra fields must be ignored.
		w.Write([]byte(`{
			"devices": [
				{"hostname": "gateway", "expires": "2026-03-04T09:00:00Z", "os": "linux", "authorized": true},
				{"hostname": "laptop", "expires": "2026-02-20T09:00:00Z", "addresses": ["100.64.0.2"]}
			]
		}`))
	}))
	defer server.Close()

	client, err := New(server.URL, "tskey-test", time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	devices, err := client.Devices(context.Background(), "example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/api/v2/tailnet/example.com/devices" {
		t.Errorf("unexpected request path %q", gotPath)
	}
	if gotAuth != "Bearer tskey-test" {
		t.Errorf("unexpected authorization header %q", gotAuth)
	}
	if len(devices) != 2 {
		t.Fatalf("expected 2 devices, got %d", len(devices))
	}
	if devices[0].Hostname != "gateway" || devices[1].Hostname != "laptop" {
		t.Errorf("expected response order preserved, got %+v", devices)
	}
	wantExpires := time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)
	if !devices[0].Expires.Equal(wantExpires) {
		t.Errorf("expected expires %v, got %v", wantExpires, devices[0].Expires)
	}
}

func TestDevices_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "unauthorized"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client, err := New(server.URL, "bad-token", time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := client.Devices(context.Background(), "example.com"); err == nil {
		t.Error("expected error for 401 response")
	}
}

func TestDevices_MalformedTimestamp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"devices": [{"hostname": "gateway", "expires": "not-a-date"}]}`))
	}))
	defer server.Close()

	client, err := New(server.URL, "tskey-test", time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := client.Devices(context.Background(), "example.com"); err == nil {
		t.Error("expected error for malformed expires timestamp")
	}
}
